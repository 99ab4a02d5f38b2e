package mapgen

import "errors"

var (
	// ErrInvalidConfig reports a generation or map profile that failed
	// validation. A run never starts with an invalid profile.
	ErrInvalidConfig = errors.New("mapgen: invalid config")

	// ErrOutOfBounds reports a walker move that would leave the grid.
	ErrOutOfBounds = errors.New("mapgen: position out of bounds")

	// ErrWalkerStuck reports a run whose walker stopped making progress
	// toward its goal for longer than the configured lock delay.
	ErrWalkerStuck = errors.New("mapgen: walker stuck")

	// ErrSkipRejected marks a waypoint skip that failed validation. It is
	// recovered inside the walker and never fails a run.
	ErrSkipRejected = errors.New("mapgen: skip rejected")
)
