package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// DefaultLogFile is written in the working directory unless --log overrides it
const DefaultLogFile = "expandlist.log"

const (
	// maxLogSize is the log file size that triggers rotation on startup (2 MB)
	maxLogSize    = 2 * 1024 * 1024
	maxLogBackups = 2
)

// InitLogger opens logPath for appending and returns a JSON logger writing to it.
// Debug enables DEBUG level with source locations. The returned closer releases
// the file.
func InitLogger(logPath string, debug bool) (*slog.Logger, io.Closer, error) {
	if logPath == "" {
		logPath = DefaultLogFile
	}

	if dir := filepath.Dir(logPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, nil, fmt.Errorf("failed to create log directory %s: %w", dir, err)
		}
	}

	if err := rotateIfNeeded(logPath); err != nil {
		return nil, nil, fmt.Errorf("failed to rotate log file: %w", err)
	}

	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file %s: %w", logPath, err)
	}

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	handler := slog.NewJSONHandler(logFile, &slog.HandlerOptions{
		Level:     level,
		AddSource: debug,
	})
	return slog.New(handler), logFile, nil
}

// Discard returns a logger that drops everything
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// rotateIfNeeded renames log → log.1 → log.2 once the file exceeds maxLogSize
func rotateIfNeeded(logPath string) error {
	info, err := os.Stat(logPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	if info.Size() < maxLogSize {
		return nil
	}

	for i := maxLogBackups; i >= 1; i-- {
		src := fmt.Sprintf("%s.%d", logPath, i)
		if i == maxLogBackups {
			_ = os.Remove(src)
			continue
		}
		dst := fmt.Sprintf("%s.%d", logPath, i+1)
		_ = os.Rename(src, dst)
	}
	return os.Rename(logPath, logPath+".1")
}
