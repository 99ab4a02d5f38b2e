package mapgen

import (
	"fmt"
	"math"

	"github.com/TylerStocks1/gores-mapgen/internal/rng"
)

// Walker is the random-walk agent that carves the level. One walker is
// created per generation run and mutated exclusively by that run's
// Generator; nothing retains a reference to it across runs.
type Walker struct {
	pos Position

	innerKernel Kernel
	outerKernel Kernel
	outerMargin int

	subwaypoints []Position
	waypointIdx  int
	pathLength   float64

	lastShift    ShiftDirection
	prevShift    ShiftDirection
	hasLastShift bool
	hasPrevShift bool

	steps              int
	lastPulse          int
	stepsSincePlatform int

	// progress bookkeeping for stuck detection
	bestDist      float64
	noProgressFor int

	// skip bookkeeping
	acceptedSkips []Position
	skippedLength float64
	skipsDisabled bool

	skipsAccepted int
	skipsRejected int
	platforms     int

	finished bool
}

func newWalker(pos Position, inner, outer Kernel, subwaypoints []Position) *Walker {
	w := &Walker{
		pos:          pos,
		innerKernel:  inner,
		outerKernel:  outer,
		outerMargin:  outer.Size - inner.Size,
		subwaypoints: subwaypoints,
		pathLength:   pathLength(subwaypoints),
	}
	w.resetProgress()
	return w
}

// buildSubwaypoints expands the skeleton waypoints so consecutive targets
// are never further apart than maxDist. Inserted points are jittered up to
// maxShift cells per axis and clamped to the grid; the skeleton's own
// waypoints are preserved exactly.
func buildSubwaypoints(waypoints []Position, width, height int, maxDist, maxShift float64, r *rng.Rand) []Position {
	points := []Position{waypoints[0]}

	for i := 1; i < len(waypoints); i++ {
		from, to := waypoints[i-1], waypoints[i]
		segments := int(math.Ceil(from.Distance(to) / maxDist))

		for s := 1; s < segments; s++ {
			t := float64(s) / float64(segments)
			p := Position{
				X: from.X + int(math.Round(t*float64(to.X-from.X))),
				Y: from.Y + int(math.Round(t*float64(to.Y-from.Y))),
			}
			p.X += int(math.Round(r.FloatRange(-maxShift, maxShift)))
			p.Y += int(math.Round(r.FloatRange(-maxShift, maxShift)))
			p.X = clampInt(p.X, 0, width-1)
			p.Y = clampInt(p.Y, 0, height-1)
			points = append(points, p)
		}

		points = append(points, to)
	}

	return points
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func pathLength(points []Position) float64 {
	total := 0.0
	for i := 1; i < len(points); i++ {
		total += points[i-1].Distance(points[i])
	}
	return total
}

// Pos returns the walker's live position.
func (w *Walker) Pos() Position {
	return w.pos
}

// Finished reports whether the waypoint sequence is exhausted.
func (w *Walker) Finished() bool {
	return w.finished
}

// Steps returns the number of movement steps taken so far.
func (w *Walker) Steps() int {
	return w.steps
}

// InnerKernel returns the current inner carving kernel.
func (w *Walker) InnerKernel() Kernel {
	return w.innerKernel
}

// OuterKernel returns the current outer carving kernel.
func (w *Walker) OuterKernel() Kernel {
	return w.outerKernel
}

// Subwaypoints returns the expanded waypoint sequence the walker follows.
// Callers must not modify the returned slice.
func (w *Walker) Subwaypoints() []Position {
	return w.subwaypoints
}

func (w *Walker) goal() Position {
	return w.subwaypoints[w.waypointIdx]
}

// resetProgress restarts the stuck-detection bookkeeping against the
// current goal. Called whenever the goal changes.
func (w *Walker) resetProgress() {
	if w.waypointIdx < len(w.subwaypoints) {
		w.bestDist = w.pos.Distance(w.goal())
	}
	w.noProgressFor = 0
}

// advanceGoal moves the waypoint cursor forward: by one when the current
// subwaypoint is reached, or by an accepted skip when the walk has come
// back within reach of a later subwaypoint. Rejected skips are recovered
// here; the walk simply continues toward its current goal.
func (w *Walker) advanceGoal(cfg *GenerationConfig) {
	if w.pos.DistanceSquared(w.goal()) < cfg.WaypointReachedDist {
		w.nextWaypoint()
		return
	}

	accepted, err := w.trySkip(cfg)
	switch {
	case err != nil:
		w.skipsRejected++
	case accepted:
		w.skipsAccepted++
		w.resetProgress()
	}
}

// nextWaypoint advances the cursor, finishing the walk when the sequence
// is exhausted.
func (w *Walker) nextWaypoint() {
	w.waypointIdx++
	if w.waypointIdx >= len(w.subwaypoints) {
		w.finished = true
		return
	}
	w.resetProgress()
}

// trySkip looks for the farthest later subwaypoint already within reach
// and, if the jump is topologically safe, moves the cursor there. The
// returned error always wraps ErrSkipRejected; an unsafe skip is a normal
// outcome, never fatal to the run.
func (w *Walker) trySkip(cfg *GenerationConfig) (bool, error) {
	if w.skipsDisabled {
		return false, nil
	}

	target := -1
	for i := w.waypointIdx + 1; i < len(w.subwaypoints); i++ {
		if w.pos.DistanceSquared(w.subwaypoints[i]) < cfg.WaypointReachedDist {
			target = i
		}
	}
	if target < 0 {
		return false, nil
	}

	length := target - w.waypointIdx
	if length < cfg.SkipLengthBounds.Min || length > cfg.SkipLengthBounds.Max {
		return false, fmt.Errorf("%w: jump of %d subwaypoints outside bounds [%d, %d]",
			ErrSkipRejected, length, cfg.SkipLengthBounds.Min, cfg.SkipLengthBounds.Max)
	}

	for _, prev := range w.acceptedSkips {
		if w.pos.DistanceSquared(prev) < cfg.SkipMinSpacingSqr {
			return false, fmt.Errorf("%w: too close to accepted skip at %v", ErrSkipRejected, prev)
		}
	}

	skipped := pathLength(w.subwaypoints[w.waypointIdx : target+1])
	budget := float64(cfg.MaxLevelSkip) / 100 * w.pathLength
	if w.skippedLength+skipped > budget {
		w.skipsDisabled = true
		return false, fmt.Errorf("%w: cumulative skip length %.1f exceeds %d%% of the path",
			ErrSkipRejected, w.skippedLength+skipped, cfg.MaxLevelSkip)
	}

	w.acceptedSkips = append(w.acceptedSkips, w.pos)
	w.skippedLength += skipped
	w.waypointIdx = target
	return true, nil
}

// mutateKernel rolls the four mutation gates and resamples the fired
// kernel properties from the profile's distributions. Kernels persist
// unchanged across steps whose gates all stay closed.
func (w *Walker) mutateKernel(cfg *GenerationConfig, r *rng.Rand) error {
	innerSize := w.innerKernel.Size
	innerCirc := w.innerKernel.Circularity
	outerCirc := w.outerKernel.Circularity
	margin := w.outerMargin
	modified := false

	if r.Prob(cfg.InnerSizeMutProb) {
		size, err := cfg.InnerSizeProbs.Sample(r)
		if err != nil {
			return fmt.Errorf("sampling inner kernel size: %w", err)
		}
		innerSize = size
		modified = true
	}

	if r.Prob(cfg.OuterMarginMutProb) {
		m, err := cfg.OuterMarginProbs.Sample(r)
		if err != nil {
			return fmt.Errorf("sampling outer kernel margin: %w", err)
		}
		margin = m
		modified = true
	}

	if r.Prob(cfg.InnerCircMutProb) {
		circ, err := cfg.CircProbs.Sample(r)
		if err != nil {
			return fmt.Errorf("sampling inner circularity: %w", err)
		}
		innerCirc = circ
		modified = true
	}

	if r.Prob(cfg.OuterCircMutProb) {
		circ, err := cfg.CircProbs.Sample(r)
		if err != nil {
			return fmt.Errorf("sampling outer circularity: %w", err)
		}
		outerCirc = circ
		modified = true
	}

	if modified {
		w.innerKernel = NewKernel(innerSize, innerCirc)
		w.outerKernel = NewKernel(innerSize+margin, outerCirc)
		w.outerMargin = margin
	}

	return nil
}

// step draws a direction, moves one cell and carves both kernels at the
// new position. The direction draw ranks all four shifts toward the
// current goal and samples a rank from the profile's weight table; with
// MomentumProb the draw is discarded in favor of the previous direction.
func (w *Walker) step(m *Map, cfg *GenerationConfig, r *rng.Rand) error {
	rated := w.pos.RatedShifts(w.goal())
	rank, err := r.WeightedIndex(cfg.ShiftWeights)
	if err != nil {
		return fmt.Errorf("sampling shift direction: %w", err)
	}
	shift := rated[rank]
	if r.Prob(cfg.MomentumProb) && w.hasLastShift {
		shift = w.lastShift
	}

	next := w.pos.Shifted(shift)
	if !m.InBounds(next) {
		return fmt.Errorf("%w: step %d would move the walker from %v to %v",
			ErrOutOfBounds, w.steps, w.pos, next)
	}

	w.prevShift, w.hasPrevShift = w.lastShift, w.hasLastShift
	w.lastShift, w.hasLastShift = shift, true
	w.pos = next

	inner, outer := w.effectiveKernels(cfg)
	m.ApplyKernel(w.pos, inner, BlockEmpty)
	m.ApplyKernel(w.pos, outer, BlockFreeze)

	w.steps++
	return nil
}

// effectiveKernels applies the deterministic stylistic modifiers on top
// of the mutated kernels for the current step: fading shrinks the carved
// width linearly over the run's first FadeSteps steps, pulsing widens it
// periodically, with a longer period on straight runs than on corners.
// Called exactly once per step; pulsing advances its own bookkeeping.
func (w *Walker) effectiveKernels(cfg *GenerationConfig) (inner, outer Kernel) {
	inner, outer = w.innerKernel, w.outerKernel

	if w.steps < cfg.FadeSteps {
		t := float64(w.steps) / float64(cfg.FadeSteps)
		size := cfg.FadeMaxSize - int(math.Round(t*float64(cfg.FadeMaxSize-cfg.FadeMinSize)))
		inner = NewKernel(size, inner.Circularity)
		outer = NewKernel(size+w.outerMargin, outer.Circularity)
	}

	if cfg.EnablePulse {
		delay := cfg.PulseCornerDelay
		if w.hasPrevShift && w.prevShift == w.lastShift {
			delay = cfg.PulseStraightDelay
		}
		if w.steps-w.lastPulse >= delay {
			w.lastPulse = w.steps
			inner = NewKernel(cfg.PulseMaxKernelSize, inner.Circularity)
			outer = NewKernel(cfg.PulseMaxKernelSize+w.outerMargin, outer.Circularity)
		}
	}

	return inner, outer
}

// tryPlacePlatform stamps a hookable resting platform below the walker
// once enough steps have passed since the last one and the surrounding
// space is open enough. A failed attempt keeps the counter running so
// the next step retries.
func (w *Walker) tryPlacePlatform(m *Map, cfg *GenerationConfig, r *rng.Rand) {
	w.stepsSincePlatform++
	if w.stepsSincePlatform < cfg.PlatMinDistance {
		return
	}

	width := r.IntRange(cfg.PlatWidthBounds.Min, cfg.PlatWidthBounds.Max)
	height := r.IntRange(cfg.PlatHeightBounds.Min, cfg.PlatHeightBounds.Max)

	left := w.pos.X - width/2
	right := left + width - 1
	top := w.pos.Y + 1
	bottom := top + height - 1

	// required clearance: the platform itself, the headroom above it and,
	// unless soft overhangs are allowed, one row below
	clearTop := top - cfg.PlatMinEmptyHeight
	clearBottom := bottom
	if !cfg.PlatSoftOverhang {
		clearBottom++
	}

	for y := clearTop; y <= clearBottom; y++ {
		for x := left; x <= right; x++ {
			p := Position{X: x, Y: y}
			if !m.InBounds(p) || m.At(p) != BlockEmpty {
				return
			}
		}
	}

	m.SetArea(Position{X: left, Y: top}, Position{X: right, Y: bottom}, BlockHookable, true)
	w.platforms++
	w.stepsSincePlatform = 0
}

// trackProgress updates the stuck detector after a movement step. A step
// counts as progress when it improves the best distance to the current
// goal by at least PosLockMaxDist; a walk that goes longer than
// PosLockMaxDelay steps without progress is aborted rather than left to
// wander, because it would produce an unreachable level.
func (w *Walker) trackProgress(cfg *GenerationConfig) error {
	dist := w.pos.Distance(w.goal())
	if dist <= w.bestDist-cfg.PosLockMaxDist {
		w.bestDist = dist
		w.noProgressFor = 0
		return nil
	}

	w.noProgressFor++
	if w.noProgressFor > cfg.PosLockMaxDelay {
		return fmt.Errorf("%w: no progress towards %v for %d steps (at step %d)",
			ErrWalkerStuck, w.goal(), w.noProgressFor, w.steps)
	}
	return nil
}
