// Package logs owns notedeck's diagnostic log file. The terminal belongs to
// the UI, so everything goes to <data_dir>/notedeck.log instead of stderr.
package logs

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FileName is the log file created inside the data directory.
const FileName = "notedeck.log"

const prefix = "[notedeck] "

var (
	mu      sync.Mutex
	logFile *os.File
	path    string
	// Logger discards output until Open is called.
	Logger = log.New(io.Discard, prefix, log.LstdFlags|log.Lshortfile)
)

// Open points Logger at <dir>/notedeck.log, creating the directory as needed.
func Open(dir string) error {
	mu.Lock()
	defer mu.Unlock()

	dir = strings.TrimSpace(dir)
	if dir == "" {
		return fmt.Errorf("log dir is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}
	target := filepath.Join(dir, FileName)
	f, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	if logFile != nil {
		_ = logFile.Close()
	}
	logFile = f
	path = target
	Logger.SetOutput(f)
	return nil
}

// Path returns the active log file path, or "" before Open.
func Path() string {
	mu.Lock()
	defer mu.Unlock()
	return path
}

// Printf logs through the package logger.
func Printf(format string, args ...any) {
	_ = Logger.Output(2, fmt.Sprintf(format, args...))
}

// Close flushes and closes the log file.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	Logger.SetOutput(io.Discard)
	path = ""
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}
