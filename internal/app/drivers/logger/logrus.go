package logger

import (
	"carerouter-service/internal/app/config"
	"carerouter-service/internal/pkg/constvars"
	"io"

	"github.com/sirupsen/logrus"
)

// NewLogrusLogger builds the terminal client logger. Output goes to w so the
// interactive chat on stdout stays readable.
func NewLogrusLogger(driverConfig *config.DriverConfig, internalConfig *config.InternalConfig, w io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)

	level, err := logrus.ParseLevel(driverConfig.Logger.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	switch internalConfig.App.Env {
	case constvars.AppEnvProduction:
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(newRotatingFile(driverConfig.Logger, driverConfig.Logger.OutputFileName))
	default:
		logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	}
	return logger
}
