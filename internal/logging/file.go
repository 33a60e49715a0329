package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Size limit in megabytes and number of rotated copies kept for the X error
// log.
var (
	errorLogMaxSizeMB = 4
	errorLogBackups   = 2
)

// openTrace opens path for a fresh trace, creating its directory.
func openTrace(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	return f, nil
}

// openErrorLog returns a size-rotated writer appending to path. The file is
// opened once here so an unusable path is reported at startup rather than
// on the first X error.
func openErrorLog(path string) (*lumberjack.Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}
	f.Close()
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    errorLogMaxSizeMB,
		MaxBackups: errorLogBackups,
	}, nil
}
