package mapgen

import (
	"fmt"

	"github.com/TylerStocks1/gores-mapgen/internal/rng"
)

// Bounds is an inclusive [Min, Max] integer range used for sampled sizes.
type Bounds struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

func (b Bounds) validate(name string) error {
	if b.Min < 0 || b.Max < b.Min {
		return fmt.Errorf("%w: %s must satisfy 0 <= min <= max, got [%d, %d]",
			ErrInvalidConfig, name, b.Min, b.Max)
	}
	return nil
}

// GenerationConfig is a generation profile: every tunable the walk consults.
// It is read-only input to a run; callers share one profile across runs.
type GenerationConfig struct {
	// Name identifies the profile in presets, artifacts and the store.
	Name string `yaml:"name"`

	// Description is free-form text about the profile.
	Description string `yaml:"description,omitempty"`

	// Version tracks the profile format for future migrations.
	Version string `yaml:"version"`

	// Probabilities for resampling each kernel property on a step.
	InnerSizeMutProb   float64 `yaml:"inner_size_mut_prob"`
	OuterMarginMutProb float64 `yaml:"outer_margin_mut_prob"`
	InnerCircMutProb   float64 `yaml:"inner_circ_mut_prob"`
	OuterCircMutProb   float64 `yaml:"outer_circ_mut_prob"`

	// ShiftWeights weights the four candidate directions from best to
	// worst towards the current goal. Must hold exactly four entries.
	ShiftWeights []float64 `yaml:"shift_weights"`

	// Platform placement.
	PlatMinDistance    int    `yaml:"plat_min_distance"`
	PlatWidthBounds    Bounds `yaml:"plat_width_bounds"`
	PlatHeightBounds   Bounds `yaml:"plat_height_bounds"`
	PlatMinEmptyHeight int    `yaml:"plat_min_empty_height"`
	PlatSoftOverhang   bool   `yaml:"plat_soft_overhang"`

	// MomentumProb is the chance of repeating the previous shift
	// direction instead of the freshly drawn one.
	MomentumProb float64 `yaml:"momentum_prob"`

	// WaypointReachedDist is the squared grid distance at which the
	// current subwaypoint counts as reached.
	WaypointReachedDist int `yaml:"waypoint_reached_dist"`

	// Discrete distributions for kernel mutation.
	InnerSizeProbs   rng.Dist[int]     `yaml:"inner_size_probs"`
	OuterMarginProbs rng.Dist[int]     `yaml:"outer_margin_probs"`
	CircProbs        rng.Dist[float64] `yaml:"circ_probs"`

	// Waypoint skips. Lengths count subwaypoint indices; spacing compares
	// squared distances between accepted skip positions; MaxLevelSkip is
	// the percentage of the total path length that may be skipped overall.
	SkipLengthBounds  Bounds `yaml:"skip_length_bounds"`
	SkipMinSpacingSqr int    `yaml:"skip_min_spacing_sqr"`
	MaxLevelSkip      int    `yaml:"max_level_skip"`

	// MinFreezeSize removes unconnected freeze islands smaller than this
	// during post-processing. Zero disables the cleanup.
	MinFreezeSize int `yaml:"min_freeze_size"`

	// Pulse oscillates the carved width with separate delays for straight
	// runs and corners.
	EnablePulse        bool `yaml:"enable_pulse"`
	PulseStraightDelay int  `yaml:"pulse_straight_delay"`
	PulseCornerDelay   int  `yaml:"pulse_corner_delay"`
	PulseMaxKernelSize int  `yaml:"pulse_max_kernel_size"`

	// Fade shrinks the carved width from FadeMaxSize to FadeMinSize over
	// the first FadeSteps steps of a run.
	FadeSteps   int `yaml:"fade_steps"`
	FadeMaxSize int `yaml:"fade_max_size"`
	FadeMinSize int `yaml:"fade_min_size"`

	// Subwaypoint expansion of the map skeleton.
	MaxSubwaypointDist      float64 `yaml:"max_subwaypoint_dist"`
	SubwaypointMaxShiftDist float64 `yaml:"subwaypoint_max_shift_dist"`

	// Stuck detection: a step counts as progress when it improves the best
	// distance to the goal by at least PosLockMaxDist; more than
	// PosLockMaxDelay steps without progress aborts the run.
	PosLockMaxDist  float64 `yaml:"pos_lock_max_dist"`
	PosLockMaxDelay int     `yaml:"pos_lock_max_delay"`
}

// Validate returns an error if running with this profile would crash or
// produce unplayable output. All failures wrap ErrInvalidConfig.
func (c *GenerationConfig) Validate() error {
	for _, size := range c.InnerSizeProbs.Values {
		if size <= 0 {
			return fmt.Errorf("%w: inner_size_probs contains kernel size %d",
				ErrInvalidConfig, size)
		}
	}

	if c.FadeMaxSize <= 0 || c.FadeMinSize <= 0 {
		return fmt.Errorf("%w: fade kernel sizes must be larger than zero", ErrInvalidConfig)
	}

	if c.MaxSubwaypointDist <= 0 {
		return fmt.Errorf("%w: max_subwaypoint_dist must be positive", ErrInvalidConfig)
	}

	if err := c.InnerSizeProbs.Validate(); err != nil {
		return fmt.Errorf("%w: inner_size_probs: %w", ErrInvalidConfig, err)
	}
	if err := c.OuterMarginProbs.Validate(); err != nil {
		return fmt.Errorf("%w: outer_margin_probs: %w", ErrInvalidConfig, err)
	}
	if err := c.CircProbs.Validate(); err != nil {
		return fmt.Errorf("%w: circ_probs: %w", ErrInvalidConfig, err)
	}

	if len(c.ShiftWeights) != len(AllShiftDirections()) {
		return fmt.Errorf("%w: shift_weights must hold exactly %d entries, got %d",
			ErrInvalidConfig, len(AllShiftDirections()), len(c.ShiftWeights))
	}
	sum := 0.0
	for i, w := range c.ShiftWeights {
		if w < 0 {
			return fmt.Errorf("%w: shift_weights[%d] is negative", ErrInvalidConfig, i)
		}
		sum += w
	}
	if sum <= 0 {
		return fmt.Errorf("%w: shift_weights sum to zero", ErrInvalidConfig)
	}

	for _, p := range []struct {
		name  string
		value float64
	}{
		{"inner_size_mut_prob", c.InnerSizeMutProb},
		{"outer_margin_mut_prob", c.OuterMarginMutProb},
		{"inner_circ_mut_prob", c.InnerCircMutProb},
		{"outer_circ_mut_prob", c.OuterCircMutProb},
		{"momentum_prob", c.MomentumProb},
	} {
		if p.value < 0 || p.value > 1 {
			return fmt.Errorf("%w: %s must lie in [0, 1], got %v",
				ErrInvalidConfig, p.name, p.value)
		}
	}

	if err := c.PlatWidthBounds.validate("plat_width_bounds"); err != nil {
		return err
	}
	if err := c.PlatHeightBounds.validate("plat_height_bounds"); err != nil {
		return err
	}
	if err := c.SkipLengthBounds.validate("skip_length_bounds"); err != nil {
		return err
	}

	return nil
}

// MapConfig is a map skeleton: the dimensions and the ordered waypoints
// the walk follows. The first waypoint doubles as the spawn position.
type MapConfig struct {
	Name      string     `yaml:"name"`
	Waypoints []Position `yaml:"waypoints"`
	Width     int        `yaml:"width"`
	Height    int        `yaml:"height"`
}

// Validate returns an error if the skeleton cannot host a run. All
// failures wrap ErrInvalidConfig.
func (c *MapConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: map dimensions must be positive, got %dx%d",
			ErrInvalidConfig, c.Width, c.Height)
	}
	if len(c.Waypoints) < 2 {
		return fmt.Errorf("%w: a map needs at least 2 waypoints, got %d",
			ErrInvalidConfig, len(c.Waypoints))
	}
	for i, wp := range c.Waypoints {
		if wp.X < 0 || wp.X >= c.Width || wp.Y < 0 || wp.Y >= c.Height {
			return fmt.Errorf("%w: waypoint %d at %v lies outside the %dx%d map",
				ErrInvalidConfig, i, wp, c.Width, c.Height)
		}
	}
	return nil
}

// Spawn returns the walk's starting position, the first waypoint.
func (c *MapConfig) Spawn() Position {
	return c.Waypoints[0]
}

// DefaultGenerationConfig returns the baseline profile. Useful as a
// starting point for custom profiles; the presets package carries the
// tuned ones.
func DefaultGenerationConfig() *GenerationConfig {
	return &GenerationConfig{
		Name:                "default",
		Version:             "1.0",
		InnerSizeMutProb:    0.5,
		OuterMarginMutProb:  0.5,
		InnerCircMutProb:    0.25,
		OuterCircMutProb:    0.25,
		ShiftWeights:        []float64{0.4, 0.22, 0.2, 0.18},
		PlatMinDistance:     75,
		PlatWidthBounds:     Bounds{Min: 3, Max: 5},
		PlatHeightBounds:    Bounds{Min: 1, Max: 2},
		PlatMinEmptyHeight:  4,
		PlatSoftOverhang:    false,
		MomentumProb:        0.01,
		WaypointReachedDist: 250,
		InnerSizeProbs: rng.Dist[int]{
			Values:  []int{3, 5},
			Weights: []float64{0.25, 0.75},
		},
		OuterMarginProbs: rng.Dist[int]{
			Values:  []int{0, 2},
			Weights: []float64{0.5, 0.5},
		},
		CircProbs: rng.Dist[float64]{
			Values:  []float64{0.0, 0.6, 0.8},
			Weights: []float64{0.75, 0.15, 0.05},
		},
		SkipLengthBounds:        Bounds{Min: 3, Max: 11},
		SkipMinSpacingSqr:       45,
		MaxLevelSkip:            90,
		MinFreezeSize:           0,
		EnablePulse:             false,
		PulseStraightDelay:      10,
		PulseCornerDelay:        5,
		PulseMaxKernelSize:      4,
		FadeSteps:               60,
		FadeMaxSize:             6,
		FadeMinSize:             3,
		MaxSubwaypointDist:      50.0,
		SubwaypointMaxShiftDist: 5.0,
		PosLockMaxDist:          20.0,
		PosLockMaxDelay:         1000,
	}
}

// DefaultMapConfig returns the S-shaped 300x300 skeleton.
func DefaultMapConfig() *MapConfig {
	return &MapConfig{
		Name: "small_s",
		Waypoints: []Position{
			{X: 50, Y: 250},
			{X: 250, Y: 250},
			{X: 250, Y: 150},
			{X: 50, Y: 150},
			{X: 50, Y: 50},
			{X: 250, Y: 50},
		},
		Width:  300,
		Height: 300,
	}
}
