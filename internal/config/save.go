package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const savedHeader = "# orbitview configuration\n# Loaded from --config, ./orbitview.yaml or the user config dir.\n\n"

// SaveTo writes the config as YAML to path, creating parent directories.
// The result loads back through Load unchanged.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	out := append([]byte(savedHeader), data...)
	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("write config %s: %w", path, err)
	}
	return nil
}

// DefaultPath is where a saved config is picked up without --config.
func DefaultPath() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}
