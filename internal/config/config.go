package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config carries the analyst's defaults. Every field is optional; flags
// override whatever is set here.
type Config struct {
	DBPath string `yaml:"db_path"`
	Mode   string `yaml:"mode"`
	Months int    `yaml:"months"`
}

// Load parses the YAML configuration file at path. A missing file is not an
// error; it just means all defaults apply.
func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("read config %q: %w", path, err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return Config{}, fmt.Errorf("parse config %q: %w", path, err)
	}
	return c, nil
}
