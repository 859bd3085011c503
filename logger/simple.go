package logger

import (
	"io"
	"log"
)

// SimpleLogger writes tagged, level-gated lines through the standard
// library logger.
type SimpleLogger struct {
	out   *log.Logger
	level LogLevel
}

// NewSimpleLogger builds a SimpleLogger with the level taken from the
// environment.
func NewSimpleLogger(name string, out io.Writer) Logger {
	return NewSimpleLoggerWithLevel(name, out, LogLevelFromEnvironment())
}

// NewSimpleLoggerWithLevel builds a SimpleLogger with an explicit level.
func NewSimpleLoggerWithLevel(name string, out io.Writer, level LogLevel) Logger {
	return &SimpleLogger{
		out:   log.New(out, name+" ", log.LstdFlags),
		level: level,
	}
}

func (l *SimpleLogger) printf(level LogLevel, tag, f string, v ...interface{}) {
	if l.level <= level {
		l.out.Printf(tag+f, v...)
	}
}

func (l *SimpleLogger) Errorf(f string, v ...interface{}) {
	l.printf(LogError, "ERROR: ", f, v...)
}

func (l *SimpleLogger) Warningf(f string, v ...interface{}) {
	l.printf(LogWarn, "WARNING: ", f, v...)
}

func (l *SimpleLogger) Infof(f string, v ...interface{}) {
	l.printf(LogInfo, "INFO: ", f, v...)
}

func (l *SimpleLogger) Debugf(f string, v ...interface{}) {
	l.printf(LogDebug, "DEBUG: ", f, v...)
}

// Close satisfies Logger; there is nothing to flush.
func (l *SimpleLogger) Close() error { return nil }
