package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          uint            `gorm:"primaryKey"`
	Name        string          `gorm:"size:128;not null"`
	Description string          `gorm:"size:512"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Stock       int32           `gorm:"not null"`
	CategoryID  *uint           `gorm:"index"`
	Category    *Category
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Category struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:64;uniqueIndex;not null"`
}
