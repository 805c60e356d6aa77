package logger

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	global *zap.Logger
	once   sync.Once
)

// Init initializes the global logger. Development config by default,
// production config when ENV=production.
func Init() {
	once.Do(func() {
		var (
			l   *zap.Logger
			err error
		)
		if os.Getenv("ENV") == "production" {
			l, err = zap.NewProduction()
		} else {
			cfg := zap.NewDevelopmentConfig()
			cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
			if os.Getenv("YUMYUM_DEBUG") != "" {
				cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			l, err = cfg.Build()
		}
		if err != nil {
			panic("failed to initialize logger: " + err.Error())
		}
		global = l
	})
}

// L returns the global logger instance.
func L() *zap.Logger {
	if global == nil {
		Init()
	}
	return global
}

// Sync flushes any buffered log entries.
func Sync() {
	_ = L().Sync()
}

func Debug(msg string, fields ...zapcore.Field) {
	L().Debug(msg, fields...)
}

func Warn(msg string, fields ...zapcore.Field) {
	L().Warn(msg, fields...)
}

func Error(msg string, fields ...zapcore.Field) {
	L().Error(msg, fields...)
}
