package config

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var Logger *zap.SugaredLogger

// InitLogger builds the process-wide logger: console output on stderr,
// plus a rotated JSON file sink when LOG_FILE is configured.
func InitLogger(cfg *Config) *zap.SugaredLogger {
	encoderConfig := zap.NewProductionEncoderConfig()
	level := zap.InfoLevel
	if cfg.Debug {
		level = zap.DebugLevel
	}

	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	consoleEncoder := zapcore.NewConsoleEncoder(encoderConfig)

	var core zapcore.Core
	if cfg.LogFile != "" {
		fileConfig := zap.NewProductionEncoderConfig()
		fileEncoder := zapcore.NewJSONEncoder(fileConfig)

		core = zapcore.NewTee(
			zapcore.NewCore(fileEncoder, zapcore.AddSync(&lumberjack.Logger{
				Filename:   cfg.LogFile,
				MaxSize:    cfg.LogMaxSize,
				MaxAge:     cfg.LogMaxAge,
				MaxBackups: cfg.LogMaxBackups,
			}), level),
			zapcore.NewCore(consoleEncoder, zapcore.AddSync(os.Stderr), level),
		)
	} else {
		core = zapcore.NewCore(consoleEncoder, zapcore.AddSync(os.Stderr), level)
	}

	Logger = zap.New(core).Sugar()
	return Logger
}
