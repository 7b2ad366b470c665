package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the process-wide logger. It is a no-op logger until Init is called,
// so packages can log from tests without setting anything up.
var Log = zap.NewNop()

// Init builds the development logger used by the viewer.
func Init() {
	InitWithLevel(zapcore.InfoLevel)
}

// InitWithLevel builds the logger at the given minimum level.
func InitWithLevel(level zapcore.Level) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.DisableStacktrace = true

	l, err := cfg.Build()
	if err != nil {
		// Build only fails on a bad sink; stderr always exists
		l = zap.NewExample()
	}
	Log = l
}

// Sync flushes buffered log entries; call once on shutdown.
func Sync() {
	_ = Log.Sync()
}
