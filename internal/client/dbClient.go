package client

import (
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDatabase opens the service's store and migrates the models it owns.
// Each service only migrates its own tables; there is no shared schema.
func InitDatabase(databaseURL string, log *logrus.Entry, models ...any) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(databaseURL), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.WithError(err).Fatal("failed to access database handle")
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(models...); err != nil {
		log.WithError(err).Fatal("failed to migrate database schema")
	}

	return db
}
