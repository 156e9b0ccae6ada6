package logging

import (
	"log"
	"os"
	"strings"
)

// Level controls logging verbosity, lowest first.
type Level int

const (
	LevelError Level = iota
	LevelWarn
	LevelInfo
	LevelDebug
)

var current = levelFromEnv()

func levelFromEnv() Level {
	switch strings.ToUpper(os.Getenv("LOG_LEVEL")) {
	case "ERROR":
		return LevelError
	case "WARN":
		return LevelWarn
	case "DEBUG":
		return LevelDebug
	default:
		return LevelInfo
	}
}

// Logger prefixes every line with its component tag.
type Logger struct {
	component string
}

// For returns a logger tagged with the given component name.
func For(component string) *Logger {
	return &Logger{component: component}
}

func (l *Logger) printf(lv Level, format string, args ...interface{}) {
	if current >= lv {
		log.Printf("["+l.component+"] "+format, args...)
	}
}

// Errorf logs at ERROR, the only level that is always emitted.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.printf(LevelError, format, args...)
}

func (l *Logger) Warnf(format string, args ...interface{}) {
	l.printf(LevelWarn, format, args...)
}

func (l *Logger) Infof(format string, args ...interface{}) {
	l.printf(LevelInfo, format, args...)
}

func (l *Logger) Debugf(format string, args ...interface{}) {
	l.printf(LevelDebug, format, args...)
}
