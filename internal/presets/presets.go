// Package presets resolves profile and map skeleton names for the CLI and
// the daemon. The generation engine never sees a provider; callers look a
// name up here and hand the config down.
package presets

import (
	"errors"
	"fmt"

	"github.com/TylerStocks1/gores-mapgen/internal/mapgen"
	"github.com/TylerStocks1/gores-mapgen/internal/rng"
)

// ErrUnknownPreset is returned when a requested profile or map skeleton
// does not exist in the provider.
var ErrUnknownPreset = errors.New("presets: unknown preset")

// Provider supplies named generation profiles and map skeletons.
type Provider interface {
	GenerationConfigs() (map[string]*mapgen.GenerationConfig, error)
	MapConfigs() (map[string]*mapgen.MapConfig, error)
}

// Profile resolves a generation profile by name.
func Profile(p Provider, name string) (*mapgen.GenerationConfig, error) {
	configs, err := p.GenerationConfigs()
	if err != nil {
		return nil, err
	}
	cfg, ok := configs[name]
	if !ok {
		return nil, fmt.Errorf("%w: profile %q", ErrUnknownPreset, name)
	}
	return cfg, nil
}

// Skeleton resolves a map skeleton by name.
func Skeleton(p Provider, name string) (*mapgen.MapConfig, error) {
	configs, err := p.MapConfigs()
	if err != nil {
		return nil, err
	}
	cfg, ok := configs[name]
	if !ok {
		return nil, fmt.Errorf("%w: map %q", ErrUnknownPreset, name)
	}
	return cfg, nil
}

// Builtin serves the compiled-in presets. Every call returns fresh
// instances, so callers may tweak what they get back.
type Builtin struct{}

// GenerationConfigs returns the built-in generation profiles.
func (Builtin) GenerationConfigs() (map[string]*mapgen.GenerationConfig, error) {
	return map[string]*mapgen.GenerationConfig{
		"default": mapgen.DefaultGenerationConfig(),
		"narrow":  narrowProfile(),
		"chaos":   chaosProfile(),
	}, nil
}

// MapConfigs returns the built-in map skeletons.
func (Builtin) MapConfigs() (map[string]*mapgen.MapConfig, error) {
	return map[string]*mapgen.MapConfig{
		"small_s":  mapgen.DefaultMapConfig(),
		"straight": straightMap(),
	}, nil
}

// narrowProfile keeps the kernels small and the freeze margins tight, for
// levels that punish sloppy movement.
func narrowProfile() *mapgen.GenerationConfig {
	cfg := mapgen.DefaultGenerationConfig()
	cfg.Name = "narrow"
	cfg.Description = "Tight corridors with thin freeze margins"
	cfg.InnerSizeProbs = rng.NewDist([]int{3}, []float64{1})
	cfg.OuterMarginProbs = rng.NewDist([]int{0, 2}, []float64{0.7, 0.3})
	cfg.CircProbs = rng.NewDist([]float64{0.0, 0.6}, []float64{0.9, 0.1})
	cfg.FadeMaxSize = 4
	cfg.PlatMinDistance = 50
	cfg.PlatWidthBounds = mapgen.Bounds{Min: 3, Max: 3}
	cfg.PlatHeightBounds = mapgen.Bounds{Min: 1, Max: 1}
	cfg.PlatMinEmptyHeight = 3
	cfg.MaxSubwaypointDist = 40
	cfg.SubwaypointMaxShiftDist = 4
	return cfg
}

// chaosProfile mutates aggressively and pulses the carved width, for wide
// erratic caves.
func chaosProfile() *mapgen.GenerationConfig {
	cfg := mapgen.DefaultGenerationConfig()
	cfg.Name = "chaos"
	cfg.Description = "Wide erratic caves with pulsing width"
	cfg.InnerSizeMutProb = 0.8
	cfg.OuterMarginMutProb = 0.8
	cfg.InnerCircMutProb = 0.5
	cfg.OuterCircMutProb = 0.5
	cfg.ShiftWeights = []float64{0.3, 0.26, 0.23, 0.21}
	cfg.MomentumProb = 0.05
	cfg.InnerSizeProbs = rng.NewDist([]int{3, 5, 7}, []float64{0.2, 0.5, 0.3})
	cfg.OuterMarginProbs = rng.NewDist([]int{0, 2, 4}, []float64{0.3, 0.5, 0.2})
	cfg.CircProbs = rng.NewDist([]float64{0.0, 0.6, 0.8}, []float64{0.3, 0.4, 0.3})
	cfg.EnablePulse = true
	cfg.PulseMaxKernelSize = 8
	cfg.FadeMaxSize = 8
	cfg.FadeMinSize = 4
	cfg.WaypointReachedDist = 300
	cfg.SkipLengthBounds = mapgen.Bounds{Min: 3, Max: 14}
	cfg.MinFreezeSize = 8
	cfg.SubwaypointMaxShiftDist = 8
	cfg.PosLockMaxDelay = 1500
	return cfg
}

func straightMap() *mapgen.MapConfig {
	return &mapgen.MapConfig{
		Name: "straight",
		Waypoints: []mapgen.Position{
			{X: 50, Y: 150},
			{X: 250, Y: 150},
		},
		Width:  300,
		Height: 300,
	}
}

// Multi overlays providers; entries from later providers override earlier
// ones under the same name. The usual stack is Builtin first, then a Dir.
type Multi []Provider

// GenerationConfigs merges the generation profiles of all providers.
func (m Multi) GenerationConfigs() (map[string]*mapgen.GenerationConfig, error) {
	merged := make(map[string]*mapgen.GenerationConfig)
	for _, p := range m {
		configs, err := p.GenerationConfigs()
		if err != nil {
			return nil, err
		}
		for name, cfg := range configs {
			merged[name] = cfg
		}
	}
	return merged, nil
}

// MapConfigs merges the map skeletons of all providers.
func (m Multi) MapConfigs() (map[string]*mapgen.MapConfig, error) {
	merged := make(map[string]*mapgen.MapConfig)
	for _, p := range m {
		configs, err := p.MapConfigs()
		if err != nil {
			return nil, err
		}
		for name, cfg := range configs {
			merged[name] = cfg
		}
	}
	return merged, nil
}
