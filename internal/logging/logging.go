package logging

import (
	"github.com/Raulcudris/microservices-fargate-demo/internal/config"

	"github.com/sirupsen/logrus"
)

// Setup builds a logger configured from LOG_LEVEL / LOG_FORMAT and tagged
// with the service name so log lines from the different binaries can be
// told apart when aggregated.
func Setup(cfg config.Log, service string) *logrus.Entry {
	l := logrus.New()

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	if cfg.Format == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	return l.WithField("service", service)
}
