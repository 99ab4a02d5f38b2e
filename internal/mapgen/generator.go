package mapgen

import (
	"github.com/TylerStocks1/gores-mapgen/internal/rng"
)

// roomMargin is the half-width of the carved start and finish rooms.
const roomMargin = 4

// Generator drives one full generation run: it owns the map, the walker
// and the sampler, advances them in lock-step and finishes with the
// post-processing passes. Instances are single-use and not safe for
// concurrent use; independent runs with their own Generator may run in
// parallel freely.
type Generator struct {
	cfg    *GenerationConfig
	mapCfg *MapConfig
	rnd    *rng.Rand
	m      *Map
	walker *Walker

	postProcessed bool
}

// Stats summarizes a run for callers that report on it.
type Stats struct {
	Steps         int
	SkipsAccepted int
	SkipsRejected int
	Platforms     int
	Finished      bool
}

// NewGenerator builds the initial run state from a profile, a map
// skeleton and a seed. Both configs are validated; an invalid one
// refuses to run with ErrInvalidConfig.
func NewGenerator(cfg *GenerationConfig, mapCfg *MapConfig, seed int64) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := mapCfg.Validate(); err != nil {
		return nil, err
	}

	rnd := rng.New(seed)
	spawn := mapCfg.Spawn()
	m := NewMap(mapCfg.Width, mapCfg.Height, BlockHookable, spawn)

	subwaypoints := buildSubwaypoints(mapCfg.Waypoints, mapCfg.Width, mapCfg.Height,
		cfg.MaxSubwaypointDist, cfg.SubwaypointMaxShiftDist, rnd)

	maxInner := rng.Max(cfg.InnerSizeProbs)
	maxMargin := rng.Max(cfg.OuterMarginProbs)
	inner := NewKernel(maxInner, 0.0)
	outer := NewKernel(maxInner+maxMargin, 0.1)

	return &Generator{
		cfg:    cfg,
		mapCfg: mapCfg,
		rnd:    rnd,
		m:      m,
		walker: newWalker(spawn, inner, outer, subwaypoints),
	}, nil
}

// Step executes one walker tick. It is a no-op once the walker has
// finished. Out-of-bounds movement and stuck detection abort the run;
// both leave the generator unusable for further steps.
func (g *Generator) Step() error {
	if g.walker.finished {
		return nil
	}

	g.walker.advanceGoal(g.cfg)
	if g.walker.finished {
		return nil
	}

	if err := g.walker.mutateKernel(g.cfg, g.rnd); err != nil {
		return err
	}
	if err := g.walker.step(g.m, g.cfg, g.rnd); err != nil {
		return err
	}
	g.walker.tryPlacePlatform(g.m, g.cfg, g.rnd)
	return g.walker.trackProgress(g.cfg)
}

// Finished reports whether the walker has exhausted its waypoints.
func (g *Generator) Finished() bool {
	return g.walker.finished
}

// Map returns the grid owned by this run.
func (g *Generator) Map() *Map {
	return g.m
}

// Walker returns the walker owned by this run.
func (g *Generator) Walker() *Walker {
	return g.walker
}

// Stats returns the run counters gathered so far.
func (g *Generator) Stats() Stats {
	return Stats{
		Steps:         g.walker.steps,
		SkipsAccepted: g.walker.skipsAccepted,
		SkipsRejected: g.walker.skipsRejected,
		Platforms:     g.walker.platforms,
		Finished:      g.walker.finished,
	}
}

// PostProcess repairs the carved terrain and stamps the start and finish
// rooms. It runs exactly once per generation; later calls are no-ops.
// The order matters: edge repair first so the buffer invariant holds
// everywhere, then island cleanup, then the rooms, whose platforms and
// trigger lines are deliberate exceptions to the buffer rule.
func (g *Generator) PostProcess() {
	if g.postProcessed {
		return
	}
	g.postProcessed = true

	g.fixEdgeBugs()
	g.removeFreezeIslands(g.cfg.MinFreezeSize)
	g.generateRoom(g.m.Spawn, roomMargin, BlockStart)
	g.generateRoom(g.walker.pos, roomMargin, BlockFinish)
}

// fixEdgeBugs converts every Empty cell with a Hookable 8-neighbor to
// Freeze. Certain inner/outer kernel combinations carve Empty right up
// against solid terrain; the game's physics requires at least one cell
// of freeze between the two.
func (g *Generator) fixEdgeBugs() {
	for y := 0; y < g.m.Height; y++ {
		for x := 0; x < g.m.Width; x++ {
			p := Position{X: x, Y: y}
			if g.m.At(p) != BlockEmpty {
				continue
			}
			if g.hasHookableNeighbor(p) {
				g.m.Set(p, BlockFreeze)
			}
		}
	}
}

func (g *Generator) hasHookableNeighbor(p Position) bool {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			n := Position{X: p.X + dx, Y: p.Y + dy}
			if g.m.InBounds(n) && g.m.At(n) == BlockHookable {
				return true
			}
		}
	}
	return false
}

// removeFreezeIslands clears connected freeze components (8-adjacency)
// that touch no hookable terrain and are smaller than minSize. These are
// carving leftovers floating in open space. A minSize of zero disables
// the pass.
func (g *Generator) removeFreezeIslands(minSize int) {
	if minSize <= 0 {
		return
	}

	visited := make([][]bool, g.m.Height)
	for y := range visited {
		visited[y] = make([]bool, g.m.Width)
	}

	for y := 0; y < g.m.Height; y++ {
		for x := 0; x < g.m.Width; x++ {
			if visited[y][x] || g.m.At(Position{X: x, Y: y}) != BlockFreeze {
				continue
			}

			component := []Position{{X: x, Y: y}}
			visited[y][x] = true
			touchesHookable := false

			for i := 0; i < len(component); i++ {
				p := component[i]
				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						if dx == 0 && dy == 0 {
							continue
						}
						n := Position{X: p.X + dx, Y: p.Y + dy}
						if !g.m.InBounds(n) {
							continue
						}
						switch g.m.At(n) {
						case BlockFreeze:
							if !visited[n.Y][n.X] {
								visited[n.Y][n.X] = true
								component = append(component, n)
							}
						case BlockHookable:
							touchesHookable = true
						}
					}
				}
			}

			if !touchesHookable && len(component) < minSize {
				for _, p := range component {
					g.m.Set(p, BlockEmpty)
				}
			}
		}
	}
}

// generateRoom carves a square room around pos: an empty interior, a
// hookable platform through the center, a spawn line above the platform
// for the start room, and a zone border ring one cell outside the room.
// The border never overwrites previously carved terrain, so the trigger
// line only shows where the room meets solid ground.
func (g *Generator) generateRoom(pos Position, margin int, zone BlockType) {
	g.m.SetArea(
		Position{X: pos.X - margin, Y: pos.Y - margin},
		Position{X: pos.X + margin, Y: pos.Y + margin},
		BlockEmpty, true)

	g.m.SetArea(
		Position{X: pos.X - (margin - 2), Y: pos.Y},
		Position{X: pos.X + (margin - 2), Y: pos.Y},
		BlockHookable, true)

	if zone == BlockStart {
		g.m.SetArea(
			Position{X: pos.X - (margin - 2), Y: pos.Y - 1},
			Position{X: pos.X + (margin - 2), Y: pos.Y - 1},
			BlockSpawn, true)
	}

	g.m.SetAreaBorder(
		Position{X: pos.X - margin - 1, Y: pos.Y - margin - 1},
		Position{X: pos.X + margin + 1, Y: pos.Y + margin + 1},
		zone, false)
}

// GenerateMap produces a complete level in a single call: it drives Step
// until the walker finishes or maxSteps is exhausted, then post-processes.
// Running out of budget is not an error; the unfinished grid is still
// returned with Stats.Finished false. A fixed (profile, skeleton, seed)
// reproduces the identical map, and this path stays behaviorally identical
// to stepping a Generator incrementally.
func GenerateMap(cfg *GenerationConfig, mapCfg *MapConfig, seed int64, maxSteps int) (*Map, Stats, error) {
	gen, err := NewGenerator(cfg, mapCfg, seed)
	if err != nil {
		return nil, Stats{}, err
	}

	for i := 0; i < maxSteps && !gen.Finished(); i++ {
		if err := gen.Step(); err != nil {
			return nil, Stats{}, err
		}
	}

	gen.PostProcess()
	return gen.Map(), gen.Stats(), nil
}
