package presets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/TylerStocks1/gores-mapgen/internal/mapgen"
)

// Dir serves presets from YAML files on disk. Every .yaml/.yml file in
// ProfileDir becomes a generation profile and every one in MapDir a map
// skeleton, keyed by file name without the extension. An empty directory
// path yields an empty set, so both fields are optional.
type Dir struct {
	ProfileDir string
	MapDir     string
}

// GenerationConfigs loads all generation profiles from ProfileDir.
func (d Dir) GenerationConfigs() (map[string]*mapgen.GenerationConfig, error) {
	configs := make(map[string]*mapgen.GenerationConfig)
	err := scanDir(d.ProfileDir, func(path, key string) error {
		cfg, err := mapgen.LoadGenerationConfig(path)
		if err != nil {
			return err
		}
		configs[key] = cfg
		return nil
	})
	if err != nil {
		return nil, err
	}
	return configs, nil
}

// MapConfigs loads all map skeletons from MapDir.
func (d Dir) MapConfigs() (map[string]*mapgen.MapConfig, error) {
	configs := make(map[string]*mapgen.MapConfig)
	err := scanDir(d.MapDir, func(path, key string) error {
		cfg, err := mapgen.LoadMapConfig(path)
		if err != nil {
			return err
		}
		configs[key] = cfg
		return nil
	})
	if err != nil {
		return nil, err
	}
	return configs, nil
}

// scanDir calls load for every YAML file in dir with its path and its
// name without the extension.
func scanDir(dir string, load func(path, key string) error) error {
	if dir == "" {
		return nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read preset directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".yaml") && !strings.HasSuffix(name, ".yml") {
			continue
		}

		key := strings.TrimSuffix(strings.TrimSuffix(name, ".yaml"), ".yml")
		if err := load(filepath.Join(dir, name), key); err != nil {
			return fmt.Errorf("failed to load preset %s: %w", name, err)
		}
	}
	return nil
}
