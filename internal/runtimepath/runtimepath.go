// Package runtimepath locates the per-session directory fawm writes its
// error log to.
package runtimepath

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Dir returns $XDG_RUNTIME_DIR, then /run/user/<uid> when it exists, and
// finally /tmp/fawm-runtime-<uid>, which is created if needed.
func Dir() (string, error) {
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return dir, nil
	}

	uid := strconv.Itoa(os.Getuid())
	if info, err := os.Stat(filepath.Join("/run/user", uid)); err == nil && info.IsDir() {
		return filepath.Join("/run/user", uid), nil
	}

	fallback := filepath.Join(os.TempDir(), "fawm-runtime-"+uid)
	if err := os.MkdirAll(fallback, 0o700); err != nil {
		return "", fmt.Errorf("failed to create runtime dir: %w", err)
	}
	return fallback, nil
}

// ErrorLogPath returns the default X error log path.
func ErrorLogPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "fawm-error.log"), nil
}
