package sim

import (
	"math/rand"

	"github.com/viltered/mycelium/components"
	"github.com/viltered/mycelium/genome"
	"github.com/viltered/mycelium/grid"
	"github.com/viltered/mycelium/hex"
)

// spawnPlacementTries bounds the rejection sampling for one random spawn.
const spawnPlacementTries = 100

// spawnMold creates a single-cell mold at an Empty position. The caller
// guarantees the position is free.
func (w *World) spawnMold(at hex.Pos, facing hex.Dir, g *genome.Genome, energy int) components.MoldID {
	id := w.nextMold
	w.nextMold++

	body := components.Body{ID: id, Cells: []components.Cell{{At: at, Facing: facing, Gene: 0}}}
	pool := components.Pool{Energy: energy}
	gen := components.Genetics{Genome: g, Color: g.Color()}

	entity := w.moldMapper.NewEntity(&body, &pool, &gen)
	w.molds[id] = entity
	w.moldIDs = append(w.moldIDs, id)
	w.grid.Place(at, grid.BodyOf(id))
	w.totals.MoldsCreated++
	return id
}

// plantSpore creates a spore during growth. The parent genome mutates once,
// here, so every spore carries its final program from the start; the pod
// begins Dormant unless the gene's delay is already spent.
func (w *World) plantSpore(parent components.MoldID, parentGenome *genome.Genome, site hex.Pos, facing hex.Dir, delay int) components.SporeID {
	id := w.nextSpore
	w.nextSpore++

	mutated := parentGenome.Mutate(w.cfg.Mutation.Rate, w.genomeParams(), w.rng)
	pod := components.Pod{
		ID:        id,
		Site:      site,
		Facing:    facing,
		Parent:    parent,
		Phase:     components.Dormant,
		Remaining: delay,
	}
	if delay <= 0 {
		pod.Phase = components.Active
		pod.Remaining = 0
	}
	gen := components.Genetics{Genome: mutated, Color: mutated.Color().Inverted()}

	entity := w.sporeMapper.NewEntity(&pod, &gen)
	w.spores[id] = entity
	w.sporeIDs = append(w.sporeIDs, id)
	w.grid.Place(site, grid.SporeSiteOf(id, parent))
	w.totals.SporesPlanted++
	return id
}

// Spawn places a single-cell mold with the given genome, the entry point
// for imported genomes. Reports false when the position is occupied.
// Commands run between ticks only.
func (w *World) Spawn(at hex.Pos, facing hex.Dir, g *genome.Genome) (components.MoldID, bool) {
	if w.grid.Occupant(at).Kind != grid.Empty {
		return 0, false
	}
	return w.spawnMold(at, facing, g, w.cfg.World.SeedEnergy), true
}

// SpawnRandom seeds up to count molds with fresh genomes at free positions
// inside the spawn disc. The seed makes the command replayable independent
// of world history. Crowded worlds may place fewer than count, since each
// mold gets a bounded number of placement tries.
func (w *World) SpawnRandom(count int, seed int64) []components.MoldID {
	rng := rand.New(rand.NewSource(seed))
	ids := make([]components.MoldID, 0, count)
	for i := 0; i < count; i++ {
		at, ok := w.randomFreePos(rng)
		if !ok {
			continue
		}
		g := genome.NewRandom(w.genomeParams(), rng)
		facing := hex.Dir(rng.Intn(hex.NumDirs))
		ids = append(ids, w.spawnMold(at, facing, g, w.cfg.World.SeedEnergy))
	}
	return ids
}

// SpawnLattice seeds fresh molds on a regular grid of the spawn disc, one
// per lattice point with the given spacing. Occupied points are skipped.
// Denser than random seeding at the same radius; the demo-world layout.
func (w *World) SpawnLattice(spacing int, seed int64) []components.MoldID {
	if spacing < 1 {
		spacing = 1
	}
	rng := rand.New(rand.NewSource(seed))
	radius := w.cfg.World.SpawnRadius
	origin := hex.Pos{}

	var ids []components.MoldID
	for q := -radius; q <= radius; q += spacing {
		for r := -radius; r <= radius; r += spacing {
			p := hex.Pos{Q: q, R: r}
			if hex.Distance(origin, p) > radius {
				continue
			}
			if w.grid.Occupant(p).Kind != grid.Empty {
				continue
			}
			g := genome.NewRandom(w.genomeParams(), rng)
			facing := hex.Dir(rng.Intn(hex.NumDirs))
			ids = append(ids, w.spawnMold(p, facing, g, w.cfg.World.SeedEnergy))
		}
	}
	return ids
}

func (w *World) randomFreePos(rng *rand.Rand) (hex.Pos, bool) {
	radius := w.cfg.World.SpawnRadius
	origin := hex.Pos{}
	for try := 0; try < spawnPlacementTries; try++ {
		p := hex.Pos{
			Q: rng.Intn(2*radius+1) - radius,
			R: rng.Intn(2*radius+1) - radius,
		}
		if hex.Distance(origin, p) > radius {
			continue
		}
		if w.grid.Occupant(p).Kind == grid.Empty {
			return p, true
		}
	}
	return hex.Pos{}, false
}

// Clear removes every mold and spore and empties the grid. The tick counter
// keeps its value: it is monotonic for the life of the World.
func (w *World) Clear() {
	for _, entity := range w.molds {
		w.moldMapper.Remove(entity)
	}
	for _, entity := range w.spores {
		w.sporeMapper.Remove(entity)
	}
	clear(w.molds)
	clear(w.spores)
	w.moldIDs = w.moldIDs[:0]
	w.sporeIDs = w.sporeIDs[:0]
	w.grid.Reset()
}
