package sim

import (
	"cmp"
	"slices"

	"github.com/viltered/mycelium/components"
	"github.com/viltered/mycelium/genome"
	"github.com/viltered/mycelium/grid"
	"github.com/viltered/mycelium/hex"
)

// Cell is one occupied grid position as a presentation layer sees it: the
// occupant tag plus the display color cached at the occupant's creation.
type Cell struct {
	At       hex.Pos
	Occupant grid.Occupant
	Color    genome.Color
}

// MoldInfo is a read-only summary of one living mold.
type MoldInfo struct {
	ID     components.MoldID
	Cells  int
	Energy int
	Age    int
}

// EachOccupied calls fn for every non-Empty cell in unspecified order. The
// per-frame read path: no allocation beyond what fn does itself.
func (w *World) EachOccupied(fn func(Cell)) {
	w.grid.Each(func(p hex.Pos, occ grid.Occupant) {
		fn(Cell{At: p, Occupant: occ, Color: w.occupantColor(occ)})
	})
}

// Snapshot returns every occupied cell sorted by position, a canonical form
// for determinism checks and world dumps.
func (w *World) Snapshot() []Cell {
	cells := make([]Cell, 0, w.grid.Len())
	w.EachOccupied(func(c Cell) {
		cells = append(cells, c)
	})
	slices.SortFunc(cells, func(a, b Cell) int {
		if c := cmp.Compare(a.At.Q, b.At.Q); c != 0 {
			return c
		}
		return cmp.Compare(a.At.R, b.At.R)
	})
	return cells
}

// occupantColor resolves the cached display color of an occupant: the
// genome color of the owning mold, or the inverted color of a spore.
func (w *World) occupantColor(occ grid.Occupant) genome.Color {
	switch occ.Kind {
	case grid.Body:
		return w.genMap.Get(w.molds[occ.Mold]).Color
	case grid.SporeSite:
		return w.genMap.Get(w.spores[occ.Spore]).Color
	}
	return genome.Color{}
}

// MoldInfo returns the summary of a living mold.
func (w *World) MoldInfo(id components.MoldID) (MoldInfo, bool) {
	entity, ok := w.molds[id]
	if !ok {
		return MoldInfo{}, false
	}
	body := w.bodyMap.Get(entity)
	pool := w.poolMap.Get(entity)
	return MoldInfo{ID: id, Cells: len(body.Cells), Energy: pool.Energy, Age: pool.Age}, true
}

// EachMold calls fn for every living mold in ascending id order.
func (w *World) EachMold(fn func(MoldInfo)) {
	for _, id := range w.moldIDs {
		info, _ := w.MoldInfo(id)
		fn(info)
	}
}

// SporeState returns a copy of a spore's pod.
func (w *World) SporeState(id components.SporeID) (components.Pod, bool) {
	entity, ok := w.spores[id]
	if !ok {
		return components.Pod{}, false
	}
	return *w.podMap.Get(entity), true
}

// MoldEnergies appends the energy of every living mold to buf and returns
// it, for telemetry percentile sampling.
func (w *World) MoldEnergies(buf []float64) []float64 {
	query := w.moldFilter.Query()
	for query.Next() {
		_, pool := query.Get()
		buf = append(buf, float64(pool.Energy))
	}
	return buf
}
