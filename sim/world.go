// Package sim implements the mold simulation: world state, the five-phase
// tick, and the commands a presentation or tool layer drives it with. The
// engine is single-threaded; a World must never be shared across goroutines.
package sim

import (
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/viltered/mycelium/components"
	"github.com/viltered/mycelium/config"
	"github.com/viltered/mycelium/genome"
	"github.com/viltered/mycelium/grid"
	"github.com/viltered/mycelium/hex"
)

// World holds the complete simulation state.
type World struct {
	ecs *ecs.World
	rng *rand.Rand
	cfg *config.Config

	// Entity mappers
	moldMapper  *ecs.Map3[components.Body, components.Pool, components.Genetics]
	sporeMapper *ecs.Map2[components.Pod, components.Genetics]

	// Individual component mappers for lookups
	bodyMap *ecs.Map1[components.Body]
	poolMap *ecs.Map1[components.Pool]
	genMap  *ecs.Map1[components.Genetics]
	podMap  *ecs.Map1[components.Pod]

	// Read-only filter over molds for aggregate queries
	moldFilter *ecs.Filter2[components.Body, components.Pool]

	grid *grid.Grid

	// Id tables. The sorted id slices define the deterministic processing
	// order of every phase; the maps resolve ids to entities. Ids are never
	// reused, and id 0 is reserved so a zero Occupant stays meaningless.
	molds    map[components.MoldID]ecs.Entity
	spores   map[components.SporeID]ecs.Entity
	moldIDs  []components.MoldID
	sporeIDs []components.SporeID

	nextMold  components.MoldID
	nextSpore components.SporeID

	light  int
	tick   int64
	totals Totals
}

// New builds an empty world. The seed drives the world's own RNG, which
// feeds genome mutation during steps; command randomness comes from
// per-command seeds instead, so histories replay from plain data.
func New(cfg *config.Config, seed int64) *World {
	world := ecs.NewWorld()

	w := &World{
		ecs:         world,
		rng:         rand.New(rand.NewSource(seed)),
		cfg:         cfg,
		moldMapper:  ecs.NewMap3[components.Body, components.Pool, components.Genetics](world),
		sporeMapper: ecs.NewMap2[components.Pod, components.Genetics](world),
		bodyMap:     ecs.NewMap1[components.Body](world),
		poolMap:     ecs.NewMap1[components.Pool](world),
		genMap:      ecs.NewMap1[components.Genetics](world),
		podMap:      ecs.NewMap1[components.Pod](world),
		moldFilter:  ecs.NewFilter2[components.Body, components.Pool](world),
		grid:        grid.New(),
		molds:       make(map[components.MoldID]ecs.Entity),
		spores:      make(map[components.SporeID]ecs.Entity),
		nextMold:    1,
		nextSpore:   1,
		light:       cfg.World.LightDefault,
	}
	w.light = w.clampLight(w.light)
	return w
}

// genomeParams maps the config sections the genome package samples from.
func (w *World) genomeParams() genome.Params {
	return genome.Params{
		Size:        w.cfg.Genome.Size,
		StopChance:  w.cfg.Genome.StopChance,
		SporeChance: w.cfg.Genome.SporeChance,
		SporeDelay:  w.cfg.Genome.SporeDelay,
	}
}

func (w *World) clampLight(v int) int {
	if v < w.cfg.World.LightMin {
		return w.cfg.World.LightMin
	}
	if v > w.cfg.World.LightMax {
		return w.cfg.World.LightMax
	}
	return v
}

// Tick returns the number of completed steps.
func (w *World) Tick() int64 {
	return w.tick
}

// LightLevel returns the current light level.
func (w *World) LightLevel() int {
	return w.light
}

// SetLightLevel stores a new light level, clamped to the configured range.
func (w *World) SetLightLevel(v int) {
	w.light = w.clampLight(v)
}

// Occupant returns the grid content at p.
func (w *World) Occupant(p hex.Pos) grid.Occupant {
	return w.grid.Occupant(p)
}

// MoldCount returns the number of living molds.
func (w *World) MoldCount() int {
	return len(w.molds)
}

// SporeCount returns the number of planted spores.
func (w *World) SporeCount() int {
	return len(w.spores)
}

// CellCount returns the total body cells across living molds.
func (w *World) CellCount() int {
	total := 0
	query := w.moldFilter.Query()
	for query.Next() {
		body, _ := query.Get()
		total += len(body.Cells)
	}
	return total
}

// Extinct reports whether nothing lives or waits to live.
func (w *World) Extinct() bool {
	return len(w.molds) == 0 && len(w.spores) == 0
}

// MoldGenome returns the genome of a living mold.
func (w *World) MoldGenome(id components.MoldID) (*genome.Genome, bool) {
	entity, ok := w.molds[id]
	if !ok {
		return nil, false
	}
	return w.genMap.Get(entity).Genome, true
}
