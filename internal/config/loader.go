package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Source records where a configuration value came from.
type Source struct {
	File   string
	Line   int
	Column int
}

// ValidationError reports a bad value together with its YAML path and,
// when known, its position in the file.
type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	switch {
	case e.Source.Line > 0:
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	case e.Path != "":
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	default:
		return e.Err.Error()
	}
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// LoadResult is a loaded configuration and the file positions of its keys.
type LoadResult struct {
	Config  *Config
	Sources map[string]Source
	File    string
}

// DefaultConfigPath returns ~/.config/fawm/config.yaml.
func DefaultConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "fawm", "config.yaml"), nil
}

// Load reads the configuration from the default location.
func Load() (*Config, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	res, err := LoadFromPath(path)
	if err != nil {
		return nil, err
	}
	return res.Config, nil
}

// LoadFromPath reads and validates the configuration at path. Keys missing
// from the file keep their defaults; an empty file yields DefaultConfig.
func LoadFromPath(path string) (*LoadResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open configuration file: %w", err)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	sources := keyPositions(&doc, path)

	cfg, err := Parse(data)
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			return nil, withPosition(verr, sources)
		}
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &LoadResult{Config: cfg, Sources: sources, File: path}, nil
}

// Parse decodes YAML on top of the defaults and validates the result.
// Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := decodeStrictYAML(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decodeStrictYAML(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// keyPositions maps every YAML path in doc ("appearance.font", "menu[2]")
// to the position of its value.
func keyPositions(doc *yaml.Node, file string) map[string]Source {
	out := make(map[string]Source)
	var walk func(n *yaml.Node, path string)
	walk = func(n *yaml.Node, path string) {
		switch n.Kind {
		case yaml.DocumentNode:
			for _, c := range n.Content {
				walk(c, path)
			}
		case yaml.MappingNode:
			for i := 1; i < len(n.Content); i += 2 {
				key := n.Content[i-1].Value
				if path != "" {
					key = path + "." + key
				}
				val := n.Content[i]
				out[key] = Source{File: file, Line: val.Line, Column: val.Column}
				walk(val, key)
			}
		case yaml.SequenceNode:
			for i, item := range n.Content {
				key := fmt.Sprintf("%s[%d]", path, i)
				out[key] = Source{File: file, Line: item.Line, Column: item.Column}
				walk(item, key)
			}
		}
	}
	walk(doc, "")
	return out
}

func withPosition(verr *ValidationError, sources map[string]Source) error {
	if src, ok := sources[verr.Path]; ok && verr.Path != "" {
		verr.Source = src
	}
	return verr
}
