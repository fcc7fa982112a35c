// Package logging provides level-gated logging over the standard logger.
package logging

import (
	"fmt"
	"log"
	"strings"
	"sync/atomic"
)

// Level orders log severities.
type Level int32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// ParseLevel maps a config string to a Level.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "", "info":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

var current atomic.Int32

func init() {
	current.Store(int32(LevelInfo))
}

// SetLevel sets the minimum level that produces output.
func SetLevel(l Level) {
	current.Store(int32(l))
}

// GetLevel returns the current minimum level.
func GetLevel() Level {
	return Level(current.Load())
}

// Enabled reports whether messages at l are written.
func Enabled(l Level) bool {
	return l >= GetLevel()
}

func logf(l Level, prefix, format string, args ...any) {
	if Enabled(l) {
		log.Printf(prefix+format, args...)
	}
}

// Debug logs a message at debug level.
func Debug(format string, args ...any) { logf(LevelDebug, "DEBUG: ", format, args...) }

// Info logs a message at info level.
func Info(format string, args ...any) { logf(LevelInfo, "INFO: ", format, args...) }

// Warn logs a message at warn level.
func Warn(format string, args ...any) { logf(LevelWarn, "WARN: ", format, args...) }

// Error logs a message at error level.
func Error(format string, args ...any) { logf(LevelError, "ERROR: ", format, args...) }
