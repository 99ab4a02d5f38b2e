package mapgen

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadGenerationConfig reads a generation profile from a YAML file.
// Missing fields keep their default values, so partial profiles that
// only override a few knobs stay valid across format additions. The
// result is validated before it is returned.
func LoadGenerationConfig(path string) (*GenerationConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read generation config: %w", err)
	}

	cfg := DefaultGenerationConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse generation config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("generation config %s: %w", path, err)
	}

	return cfg, nil
}

// SaveGenerationConfig writes a generation profile as YAML.
func SaveGenerationConfig(cfg *GenerationConfig, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize generation config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write generation config: %w", err)
	}
	return nil
}

// LoadMapConfig reads a map skeleton from a YAML file and validates it.
func LoadMapConfig(path string) (*MapConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read map config: %w", err)
	}

	var cfg MapConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse map config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("map config %s: %w", path, err)
	}

	return &cfg, nil
}

// SaveMapConfig writes a map skeleton as YAML.
func SaveMapConfig(cfg *MapConfig, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize map config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write map config: %w", err)
	}
	return nil
}
