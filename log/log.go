// Package log provides the levelled logging used throughout uhppoted-app-sheets-votes.
//
// The functions mirror the Debugf/Infof/Warnf/Errorf convention of the uhppoted tools
// and are backed by a zap sugared logger.
package log

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var guard sync.RWMutex
var logger = zap.NewNop().Sugar()

// Configure replaces the default (no-op) logger. level is one of debug, info, warn or
// error and format is either 'console' or 'json'.
func Configure(level, format string) error {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(level)))); err != nil {
		return fmt.Errorf("invalid log level '%v'", level)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "console", "text":
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	case "json":
		cfg.Encoding = "json"

	default:
		return fmt.Errorf("invalid log format '%v'", format)
	}

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return err
	}

	SetLogger(l)

	return nil
}

// SetLogger installs an existing zap logger, e.g. zaptest or zap/zaptest/observer in tests.
func SetLogger(l *zap.Logger) {
	guard.Lock()
	defer guard.Unlock()

	logger = l.Sugar()
}

func Sync() {
	guard.RLock()
	defer guard.RUnlock()

	logger.Sync()
}

func Debugf(format string, args ...any) {
	get().Debugf(format, args...)
}

func Infof(format string, args ...any) {
	get().Infof(format, args...)
}

func Warnf(format string, args ...any) {
	get().Warnf(format, args...)
}

func Errorf(format string, args ...any) {
	get().Errorf(format, args...)
}

func Fatalf(format string, args ...any) {
	get().Fatalf(format, args...)
}

// With returns a logger carrying the key/value pairs, for structured request logging.
func With(keysAndValues ...any) *zap.SugaredLogger {
	return get().With(keysAndValues...)
}

func get() *zap.SugaredLogger {
	guard.RLock()
	defer guard.RUnlock()

	return logger
}
