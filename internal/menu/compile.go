package menu

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// CompilerName is the executable that turns a config file into a menu blob.
const CompilerName = "fawm-config"

var (
	execLookPath = exec.LookPath
	osExecutable = os.Executable
)

// CompilerPath locates the config compiler: next to the running executable
// first, then on PATH.
func CompilerPath() (string, error) {
	if self, err := osExecutable(); err == nil {
		sibling := filepath.Join(filepath.Dir(self), CompilerName)
		if info, err := os.Stat(sibling); err == nil && !info.IsDir() && info.Mode()&0o111 != 0 {
			return sibling, nil
		}
	}
	path, err := execLookPath(CompilerName)
	if err != nil {
		return "", fmt.Errorf("menu: %s not found next to the executable or on PATH: %w", CompilerName, err)
	}
	return path, nil
}

// Compile runs compiler on configPath and decodes the blob it prints.
func Compile(ctx context.Context, compiler, configPath string) (*Menu, error) {
	cmd := exec.CommandContext(ctx, compiler, configPath)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%s failed: %s", filepath.Base(compiler), msg)
		}
		return nil, fmt.Errorf("%s failed: %w", filepath.Base(compiler), err)
	}

	m, err := ReadStream(bytes.NewReader(out))
	if err != nil {
		return nil, fmt.Errorf("%s output: %w", filepath.Base(compiler), err)
	}
	return m, nil
}
