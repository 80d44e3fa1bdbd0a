package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile decodes the YAML file at path over cfg. Unknown keys are errors.
func LoadFile(path string, cfg *Config) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("error opening config file %q: %w", path, err)
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)

	if err := decoder.Decode(cfg); err != nil {
		return fmt.Errorf("error parsing config file %q: %w", path, err)
	}

	return nil
}
