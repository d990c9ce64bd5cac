package sim

import (
	"github.com/viltered/mycelium/components"
	"github.com/viltered/mycelium/genome"
	"github.com/viltered/mycelium/grid"
	"github.com/viltered/mycelium/hex"
)

// Step advances the simulation one tick under the given light level. Phases
// run in a fixed order and iterate ids ascending, so identical histories
// replay identically.
func (w *World) Step(lightLevel int) {
	w.light = w.clampLight(lightLevel)

	// 1. Spore timers.
	w.tickSpores()

	// 2. Growth.
	w.growthPhase()

	// 3. Energy income and upkeep.
	w.energyPhase()

	// 4. Death sweep: starved molds freed, their spores resolved.
	w.deathSweep()

	// 5. Advance the clock.
	w.tick++
}

func (w *World) tickSpores() {
	for _, id := range w.sporeIDs {
		w.podMap.Get(w.spores[id]).Tick()
	}
}

func (w *World) growthPhase() {
	for _, id := range w.moldIDs {
		entity := w.molds[id]
		w.growMold(w.bodyMap.Get(entity), w.genMap.Get(entity))
	}
}

// growMold runs the growth attempts of every cell the mold owned when the
// phase started. Cells appended during the loop sit past the bound and act
// for the first time next tick, which limits expansion to one generation
// per tick.
func (w *World) growMold(body *components.Body, gen *components.Genetics) {
	n := len(body.Cells)
	for i := 0; i < n; i++ {
		cell := body.Cells[i]
		if !gen.Genome.CanGrow(cell.Gene) {
			continue
		}
		dirs := hex.GrowthDirs(cell.Facing)
		for s := genome.Slot(0); s < genome.NumSlots; s++ {
			a := gen.Genome.Action(cell.Gene, s)
			if a.Kind == genome.NoGrowth {
				continue
			}
			d := dirs[s]
			target := cell.At.Step(d)
			if w.grid.Occupant(target).Kind != grid.Empty {
				// Contention is expected; the cell retries every tick.
				continue
			}
			switch a.Kind {
			case genome.GrowBody:
				w.grid.Place(target, grid.BodyOf(body.ID))
				body.Cells = append(body.Cells, components.Cell{At: target, Facing: d, Gene: a.Next})
			case genome.GrowSpore:
				w.plantSpore(body.ID, gen.Genome, target, d, a.Delay)
			}
		}
	}
}

func (w *World) energyPhase() {
	for _, id := range w.moldIDs {
		entity := w.molds[id]
		body := w.bodyMap.Get(entity)
		pool := w.poolMap.Get(entity)

		income := w.light * w.litCells(body)
		pool.Energy += income - upkeep(len(body.Cells), pool.Age, w.cfg.Energy.LossPerCell, w.cfg.Energy.TicksToAge)
		pool.Age++
	}
}

// litCells counts the owned cells that receive light: cells with at least
// one Empty neighbor bordered by no mold other than this one.
func (w *World) litCells(body *components.Body) int {
	count := 0
	for _, cell := range body.Cells {
		if w.cellLit(cell.At, body.ID) {
			count++
		}
	}
	return count
}

func (w *World) cellLit(p hex.Pos, owner components.MoldID) bool {
	for _, n := range p.Neighbors() {
		if w.grid.Occupant(n).Kind != grid.Empty {
			continue
		}
		if w.soleBorderingMold(n, owner) {
			return true
		}
	}
	return false
}

// soleBorderingMold reports whether owner is the only mold around the Empty
// cell e. SporeSite occupants count as their parent mold, so a mold's own
// spores never shade it while foreign ones do.
func (w *World) soleBorderingMold(e hex.Pos, owner components.MoldID) bool {
	found := false
	for _, n := range e.Neighbors() {
		occ := w.grid.Occupant(n)
		if occ.Kind == grid.Empty {
			continue
		}
		if occ.Mold != owner {
			return false
		}
		found = true
	}
	return found
}

// upkeep is the per-tick cost of a colony: every owned cell pays
// lossPerCell, scaled up by one extra multiple per full ticksToAge of age.
// Non-decreasing in both cell count and age.
func upkeep(cells, age, lossPerCell, ticksToAge int) int {
	return cells * lossPerCell * (1 + age/ticksToAge)
}

func (w *World) deathSweep() {
	// Collect before touching anything: a mold dying this tick must not
	// observe the partial grid updates of another death.
	var starved []components.MoldID
	for _, id := range w.moldIDs {
		if w.poolMap.Get(w.molds[id]).Energy <= 0 {
			starved = append(starved, id)
		}
	}
	for _, id := range starved {
		w.killMold(id)
	}
}
