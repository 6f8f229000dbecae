// Package logger provides a simple leveled logger for the application.
// It supports three levels: off (no output), normal (info/warn/error),
// and verbose (includes debug). Output is produced by a zap core with a
// console encoder. The logger is safe for concurrent use.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level controls the verbosity of the logger.
type Level int

const (
	// LevelOff disables all log output.
	LevelOff Level = iota
	// LevelNormal enables info, warn, and error output.
	LevelNormal
	// LevelVerbose enables all output including debug.
	LevelVerbose
)

// String returns the config name of the level.
func (l Level) String() string {
	switch l {
	case LevelOff:
		return "off"
	case LevelNormal:
		return "normal"
	case LevelVerbose:
		return "verbose"
	default:
		return "unknown"
	}
}

// ParseLevel converts a config value to a Level. Common zap-style names
// ("debug", "info") are accepted as aliases.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off", "quiet", "none":
		return LevelOff, nil
	case "", "normal", "info":
		return LevelNormal, nil
	case "verbose", "debug":
		return LevelVerbose, nil
	default:
		return LevelNormal, fmt.Errorf("unknown log level %q", s)
	}
}

// zapLevel maps a Level to the minimum zap level it lets through.
// LevelOff sits above FatalLevel so nothing is enabled.
func (l Level) zapLevel() zapcore.Level {
	switch l {
	case LevelOff:
		return zapcore.FatalLevel + 1
	case LevelVerbose:
		return zapcore.DebugLevel
	default:
		return zapcore.InfoLevel
	}
}

// Logger is a leveled logger. All methods are safe for concurrent use.
type Logger struct {
	level zap.AtomicLevel // shared with children created by Named
	sugar *zap.SugaredLogger
}

// New creates a logger with the given level, writing to the given output.
// If out is nil, os.Stderr is used.
func New(level Level, out io.Writer) *Logger {
	if out == nil {
		out = os.Stderr
	}

	enc := zap.NewDevelopmentEncoderConfig()
	enc.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	enc.EncodeLevel = zapcore.CapitalLevelEncoder

	lvl := zap.NewAtomicLevelAt(level.zapLevel())
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(out), lvl)

	return &Logger{
		level: lvl,
		sugar: zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)).Sugar(),
	}
}

// SetLevel changes the log level at runtime.
func (l *Logger) SetLevel(level Level) {
	l.level.SetLevel(level.zapLevel())
}

// GetLevel returns the current log level.
func (l *Logger) GetLevel() Level {
	switch l.level.Level() {
	case zapcore.DebugLevel:
		return LevelVerbose
	case zapcore.InfoLevel:
		return LevelNormal
	default:
		return LevelOff
	}
}

// Named returns a child logger whose lines carry the given component name.
// The child shares the parent's level.
func (l *Logger) Named(name string) *Logger {
	return &Logger{level: l.level, sugar: l.sugar.Named(name)}
}

// Debug logs a message at debug level (only visible in verbose mode).
func (l *Logger) Debug(format string, args ...any) {
	l.sugar.Debugf(format, args...)
}

// Info logs a message at info level.
func (l *Logger) Info(format string, args ...any) {
	l.sugar.Infof(format, args...)
}

// Warn logs a message at warn level.
func (l *Logger) Warn(format string, args ...any) {
	l.sugar.Warnf(format, args...)
}

// Error logs a message at error level.
func (l *Logger) Error(format string, args ...any) {
	l.sugar.Errorf(format, args...)
}

// Sync flushes buffered output.
func (l *Logger) Sync() error {
	return l.sugar.Sync()
}
