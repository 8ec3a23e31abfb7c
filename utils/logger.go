package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Logger provides structured, leveled logging throughout the application.
// Every line goes to the console; when a durable sink file is configured the
// same line (uncoloured) is appended there as well. If the sink cannot be
// opened or written, logging degrades to console only.
type Logger struct {
	mu   sync.Mutex
	sink *os.File
}

// NewLogger creates a console-only Logger.
func NewLogger() *Logger {
	return &Logger{}
}

// NewFileLogger creates a Logger that also appends to the file at path,
// creating intermediate directories. Falls back to console-only logging when
// the sink cannot be opened.
func NewFileLogger(path string) *Logger {
	l := &Logger{}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		fmt.Fprintf(os.Stderr, "logger: cannot create log dir for %s: %v\n", path, err)
		return l
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: cannot open log file %s: %v\n", path, err)
		return l
	}
	l.sink = f
	return l
}

// Close closes the sink file, if any.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.sink == nil {
		return nil
	}
	err := l.sink.Close()
	l.sink = nil
	return err
}

func (l *Logger) log(level, colour string, console *os.File, format string, args ...any) {
	ts := time.Now().Format("2006-01-02 15:04:05")
	msg := fmt.Sprintf(format, args...)

	fmt.Fprintf(console, "[%s] %s%-5s\033[0m %s\n", ts, colour, level, msg)

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.sink != nil {
		if _, err := fmt.Fprintf(l.sink, "[%s] [%s] %s\n", ts, level, msg); err != nil {
			fmt.Fprintf(os.Stderr, "logger: sink write failed, console only from now on: %v\n", err)
			l.sink.Close()
			l.sink = nil
		}
	}
}

func (l *Logger) Info(format string, args ...any) {
	l.log("INFO", "\033[32m", os.Stdout, format, args...)
}

func (l *Logger) Warn(format string, args ...any) {
	l.log("WARN", "\033[33m", os.Stdout, format, args...)
}

func (l *Logger) Error(format string, args ...any) {
	l.log("ERROR", "\033[31m", os.Stderr, format, args...)
}

func (l *Logger) Debug(format string, args ...any) {
	l.log("DEBUG", "\033[36m", os.Stdout, format, args...)
}
