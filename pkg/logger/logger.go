// Package logger builds the zap loggers used across stockroom.
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds logger configuration.
type Config struct {
	Level       string // debug, info, warn, error
	Development bool   // console encoder with colour levels
	OutputPaths []string
}

// New creates a zap logger from configuration. An unparsable level falls
// back to info.
func New(cfg Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	var config zap.Config
	if cfg.Development {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		config = zap.NewProductionConfig()
	}

	config.Level = zap.NewAtomicLevelAt(level)
	// CLI output goes to stdout; diagnostics stay on stderr.
	config.OutputPaths = []string{"stderr"}
	if len(cfg.OutputPaths) > 0 {
		config.OutputPaths = cfg.OutputPaths
	}

	return config.Build()
}

// Nop returns a logger that discards everything.
func Nop() *zap.Logger {
	return zap.NewNop()
}

// Component returns a sugared child logger tagged with the component name.
func Component(l *zap.Logger, name string) *zap.SugaredLogger {
	if l == nil {
		l = zap.NewNop()
	}
	return l.Sugar().With("component", name)
}
