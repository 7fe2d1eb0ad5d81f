package logger

import (
	"carerouter-service/internal/app/config"
	"carerouter-service/internal/pkg/constvars"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

func NewZapLogger(driverConfig *config.DriverConfig, internalConfig *config.InternalConfig) *zap.Logger {
	logLevel := parseZapLevel(driverConfig.Logger.Level)

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
	encoder := zapcore.NewJSONEncoder(encoderConfig)

	var core zapcore.Core
	switch internalConfig.App.Env {
	case constvars.AppEnvProduction:
		output := zapcore.AddSync(newRotatingFile(driverConfig.Logger, driverConfig.Logger.OutputFileName))
		errorOutput := zapcore.NewMultiWriteSyncer(
			zapcore.Lock(os.Stderr),
			zapcore.AddSync(newRotatingFile(driverConfig.Logger, driverConfig.Logger.OutputErrorFileName)),
		)
		core = zapcore.NewTee(
			zapcore.NewCore(encoder, output, logLevel),
			zapcore.NewCore(encoder, errorOutput, zap.ErrorLevel),
		)
	default:
		core = zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), logLevel)
	}

	options := []zap.Option{zap.AddCaller(), zap.ErrorOutput(zapcore.Lock(os.Stderr))}
	if internalConfig.App.Env == constvars.AppEnvDevelopment {
		options = append(options, zap.Development())
	}
	return zap.New(core, options...)
}

func newRotatingFile(cfg config.Logger, filename string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   filename,
		MaxSize:    cfg.MaxSizeInMegabyte,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeInDays,
		Compress:   true,
	}
}

func parseZapLevel(level string) zap.AtomicLevel {
	switch level {
	case "debug":
		return zap.NewAtomicLevelAt(zap.DebugLevel)
	case "warn":
		return zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		return zap.NewAtomicLevelAt(zap.ErrorLevel)
	default:
		return zap.NewAtomicLevelAt(zap.InfoLevel)
	}
}
