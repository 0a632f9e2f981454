// Package logger provides a structured logger for the federation registry.
// It exposes package-level logging functions backed by zap so call sites do
// not need to carry a logger instance around.
package logger

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	log *zap.SugaredLogger
	mu  sync.Mutex
)

// Initialize sets up the package-level logger. Subsequent calls replace the
// active logger, which is useful in tests. When debug is true the logger
// emits human-readable output at debug level, otherwise JSON at info level.
func Initialize(debug bool) {
	mu.Lock()
	defer mu.Unlock()

	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		// Building the default configs cannot realistically fail, but
		// a logger must always be available.
		l = zap.NewNop()
	}
	log = l.Sugar()
}

func get() *zap.SugaredLogger {
	mu.Lock()
	defer mu.Unlock()
	if log == nil {
		l, err := zap.NewProduction(zap.AddCallerSkip(1))
		if err != nil {
			l = zap.NewNop()
		}
		log = l.Sugar()
	}
	return log
}

// Debug logs at debug level.
func Debug(args ...any) { get().Debug(args...) }

// Debugf logs a formatted message at debug level.
func Debugf(format string, args ...any) { get().Debugf(format, args...) }

// Info logs at info level.
func Info(args ...any) { get().Info(args...) }

// Infof logs a formatted message at info level.
func Infof(format string, args ...any) { get().Infof(format, args...) }

// Warn logs at warning level.
func Warn(args ...any) { get().Warn(args...) }

// Warnf logs a formatted message at warning level.
func Warnf(format string, args ...any) { get().Warnf(format, args...) }

// Error logs at error level.
func Error(args ...any) { get().Error(args...) }

// Errorf logs a formatted message at error level.
func Errorf(format string, args ...any) { get().Errorf(format, args...) }

// Fatalf logs a formatted message at fatal level and exits.
func Fatalf(format string, args ...any) {
	get().Fatalf(format, args...)
}

// Sync flushes any buffered log entries.
func Sync() error {
	return get().Sync()
}
