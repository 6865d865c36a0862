package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// Level represents a log level
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

// String returns the string representation of a log level
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel parses a log level string
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("invalid log level: %s", s)
	}
}

// Environment variables read when the default logger is created.
const (
	EnvLevel = "INQUIRY_LOG_LEVEL"
	EnvFile  = "INQUIRY_LOG_FILE"
)

// Logger is a leveled logger. Output is discarded until a file or writer is
// set, since the wizard owns the terminal.
type Logger struct {
	mu     sync.Mutex
	level  Level
	logger *log.Logger
	file   *os.File
}

// Default is the process-wide logger
var Default = New()

// New creates a logger configured from INQUIRY_LOG_LEVEL and INQUIRY_LOG_FILE.
func New() *Logger {
	l := &Logger{
		level:  LevelInfo,
		logger: log.New(io.Discard, "", log.LstdFlags),
	}
	if err := l.Configure(os.Getenv(EnvLevel), os.Getenv(EnvFile)); err != nil {
		l.level = LevelInfo
	}
	return l
}

// Configure applies a level name and an optional log file path. An empty
// path leaves the current output in place.
func (l *Logger) Configure(level, file string) error {
	lvl, err := ParseLevel(level)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = lvl

	if file == "" || (l.file != nil && l.file.Name() == file) {
		return nil
	}
	f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	if l.file != nil {
		_ = l.file.Close()
	}
	l.file = f
	l.logger.SetOutput(f)
	return nil
}

// Close closes the logger and any open file handles
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.file != nil {
		err := l.file.Close()
		l.file = nil
		l.logger.SetOutput(io.Discard)
		return err
	}
	return nil
}

// SetLevel sets the log level
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// Level returns the current level
func (l *Logger) Level() Level {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.level
}

// SetOutput sets the output writer
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logger.SetOutput(w)
}

// Debug logs a debug message
func (l *Logger) Debug(format string, v ...interface{}) {
	l.log(LevelDebug, "", format, v...)
}

// Info logs an info message
func (l *Logger) Info(format string, v ...interface{}) {
	l.log(LevelInfo, "", format, v...)
}

// Warn logs a warning message
func (l *Logger) Warn(format string, v ...interface{}) {
	l.log(LevelWarn, "", format, v...)
}

// Error logs an error message
func (l *Logger) Error(format string, v ...interface{}) {
	l.log(LevelError, "", format, v...)
}

func (l *Logger) log(level Level, component, format string, v ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.level {
		return
	}

	msg := fmt.Sprintf(format, v...)
	if component != "" {
		l.logger.Printf("[%s] [%s] %s", level, component, msg)
		return
	}
	l.logger.Printf("[%s] %s", level, msg)
}

// Component writes through a parent logger with a fixed "[name]" tag.
type Component struct {
	parent *Logger
	name   string
}

// Named returns a component logger backed by Default. Level and output
// changes on Default apply to it.
func Named(name string) *Component {
	return Default.Named(name)
}

// Named returns a component logger backed by l.
func (l *Logger) Named(name string) *Component {
	return &Component{parent: l, name: name}
}

func (c *Component) Debug(format string, v ...interface{}) {
	c.parent.log(LevelDebug, c.name, format, v...)
}

func (c *Component) Info(format string, v ...interface{}) {
	c.parent.log(LevelInfo, c.name, format, v...)
}

func (c *Component) Warn(format string, v ...interface{}) {
	c.parent.log(LevelWarn, c.name, format, v...)
}

func (c *Component) Error(format string, v ...interface{}) {
	c.parent.log(LevelError, c.name, format, v...)
}

// Package-level functions that use the default logger

// Debug logs a debug message using the default logger
func Debug(format string, v ...interface{}) {
	Default.Debug(format, v...)
}

// Info logs an info message using the default logger
func Info(format string, v ...interface{}) {
	Default.Info(format, v...)
}

// Warn logs a warning message using the default logger
func Warn(format string, v ...interface{}) {
	Default.Warn(format, v...)
}

// Error logs an error message using the default logger
func Error(format string, v ...interface{}) {
	Default.Error(format, v...)
}

// Configure applies config values to the default logger
func Configure(level, file string) error {
	return Default.Configure(level, file)
}

// Close closes the default logger
func Close() error {
	return Default.Close()
}
