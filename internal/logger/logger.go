// Package logger provides structured logging for the application,
// backed by zap.
package logger

import (
	"go.uber.org/zap"
)

// Logger wraps a zap.Logger with deferred, leveled initialization.
type Logger struct {
	// Log is the underlying zap logger. It is a no-op logger until Init
	// is called.
	Log *zap.Logger
}

// New returns a Logger holding a no-op zap logger.
func New() *Logger {
	return &Logger{Log: zap.NewNop()}
}

// Init replaces the logger with a production zap logger at the given level.
// Level names are case-insensitive ("Info", "debug", ...).
func (l *Logger) Init(level string) error {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl

	log, err := cfg.Build()
	if err != nil {
		return err
	}

	l.Log = log
	return nil
}
