package logs

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
)

// The TUI owns the terminal, so diagnostics go to a file in the data
// directory. Until Initialize is called the logger discards everything,
// which keeps tests and one-shot invocations from littering the cwd.
var (
	Logger  = log.New(io.Discard, "[taskdeck] ", log.LstdFlags|log.Lshortfile)
	logFile *os.File
	mu      sync.Mutex
)

// Initialize points the logger at debug.log inside dir.
func Initialize(dir string) error {
	mu.Lock()
	defer mu.Unlock()

	if dir == "" {
		return nil
	}

	path := filepath.Join(dir, "debug.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}

	if logFile != nil {
		logFile.Close()
	}
	logFile = f
	Logger.SetOutput(f)
	return nil
}

// Close closes the log file, if one was opened.
func Close() error {
	mu.Lock()
	defer mu.Unlock()

	if logFile == nil {
		return nil
	}
	Logger.SetOutput(io.Discard)
	err := logFile.Close()
	logFile = nil
	return err
}
