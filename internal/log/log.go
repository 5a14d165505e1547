// Package log provides centralized, prefixed logging for the compiler. It is
// silent until SetOutput is called.
package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

var (
	out io.Writer
	mu  sync.Mutex
)

// SetOutput sets the log destination. Pass nil to disable logging.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
}

// OpenFile appends log output to the file at path, creating its directory
// if needed. The returned function closes the file and disables logging.
func OpenFile(path string) (func() error, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	SetOutput(f)
	return func() error {
		SetOutput(nil)
		return f.Close()
	}, nil
}

func write(prefix, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if out != nil {
		fmt.Fprintf(out, prefix+format+"\n", args...)
	}
}

// Debug writes an unprefixed debug message if logging is enabled.
func Debug(format string, args ...any) {
	write("", format, args...)
}

// Compile writes a compile-prefixed log message.
func Compile(format string, args ...any) {
	write("[compile] ", format, args...)
}

// CTFE writes a ctfe-prefixed log message.
func CTFE(format string, args ...any) {
	write("[ctfe] ", format, args...)
}

// CLI writes a cli-prefixed log message.
func CLI(format string, args ...any) {
	write("[cli] ", format, args...)
}

// Enabled returns true if logging is enabled.
func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return out != nil
}
