package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

var ErrConfigExists = errors.New("config file already exists")

const fileHeader = `# EventPilot configuration
#
# Priority (highest first):
#   1. command-line flags
#   2. environment variables (EVENTPILOT_STORE_PATH, EVENTPILOT_LOG_LEVEL, ...)
#   3. this file
#   4. built-in defaults
#
# store.backend: sqlite (single database file) or file (one JSON file per project)

`

// Marshal renders cfg as YAML.
func Marshal(cfg Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return data, nil
}

// WriteDefault creates path with the built-in defaults. It refuses to
// overwrite an existing file.
func WriteDefault(path, home string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: %s", ErrConfigExists, path)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", path, err)
	}
	data, err := Marshal(Defaults(home))
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, append([]byte(fileHeader), data...), 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
