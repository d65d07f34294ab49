package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// hostConfig holds the optional host-side settings read from
// $XDG_CONFIG_HOME/engliz/config.yaml. All fields are optional; flags and
// env vars take precedence.
type hostConfig struct {
	// Bank is the default item bank path.
	Bank string `yaml:"bank"`

	// Seed fixes the random source for reproducible sessions (0 = random).
	Seed uint64 `yaml:"seed"`

	// MinItems is the per-level minimum enforced by the validate command.
	MinItems int `yaml:"min_items"`
}

func loadHostConfig() (hostConfig, error) {
	var cfg hostConfig
	dir, err := os.UserConfigDir()
	if err != nil {
		return cfg, fmt.Errorf("resolve config dir: %w", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "engliz", "config.yaml"))
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
