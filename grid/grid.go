// Package grid indexes cell occupancy over the unbounded hex plane. The
// grid stores ids, never entity handles, so ownership has a single source
// of truth in the world's tables.
package grid

import (
	"fmt"

	"github.com/viltered/mycelium/components"
	"github.com/viltered/mycelium/hex"
)

// Kind tags what occupies a cell.
type Kind uint8

const (
	Empty Kind = iota
	Body
	SporeSite
)

var kindNames = [...]string{"Empty", "Body", "SporeSite"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// Occupant is the content of one cell. Mold is the owning mold for Body
// cells and the parent mold for SporeSite cells; carrying the parent here
// lets energy queries resolve site ownership without a spore-table lookup
// (a spore's parent never changes). Spore is set only for SporeSite.
type Occupant struct {
	Kind  Kind
	Mold  components.MoldID
	Spore components.SporeID
}

// BodyOf returns the occupant tag for a cell owned by a mold.
func BodyOf(id components.MoldID) Occupant {
	return Occupant{Kind: Body, Mold: id}
}

// SporeSiteOf returns the occupant tag for a planted spore.
func SporeSiteOf(id components.SporeID, parent components.MoldID) Occupant {
	return Occupant{Kind: SporeSite, Mold: parent, Spore: id}
}

// Grid maps positions to occupants. Absent positions are Empty; the map
// only holds non-Empty cells, so its size tracks the live colony mass.
type Grid struct {
	cells map[hex.Pos]Occupant
}

// New returns an empty grid.
func New() *Grid {
	return &Grid{cells: make(map[hex.Pos]Occupant)}
}

// Occupant returns the content at p, Empty when nothing is there.
func (g *Grid) Occupant(p hex.Pos) Occupant {
	return g.cells[p]
}

// Place writes a non-Empty occupant to an Empty cell. Callers check
// Occupant first; placing over a used cell or placing an Empty tag is a
// contract violation, not runtime contention.
func (g *Grid) Place(p hex.Pos, o Occupant) {
	if o.Kind == Empty {
		panic(fmt.Sprintf("grid: Place of Empty occupant at %v", p))
	}
	if have, ok := g.cells[p]; ok {
		panic(fmt.Sprintf("grid: Place at occupied %v (holds %v)", p, have.Kind))
	}
	g.cells[p] = o
}

// Clear frees a cell back to Empty. Clearing an Empty cell is a contract
// violation.
func (g *Grid) Clear(p hex.Pos) {
	if _, ok := g.cells[p]; !ok {
		panic(fmt.Sprintf("grid: Clear of empty cell %v", p))
	}
	delete(g.cells, p)
}

// Reset drops every occupant.
func (g *Grid) Reset() {
	clear(g.cells)
}

// Len returns the number of non-Empty cells.
func (g *Grid) Len() int {
	return len(g.cells)
}

// Each calls fn for every non-Empty cell in unspecified order.
func (g *Grid) Each(fn func(hex.Pos, Occupant)) {
	for p, o := range g.cells {
		fn(p, o)
	}
}

// Neighbors returns the six positions adjacent to p.
func (g *Grid) Neighbors(p hex.Pos) [hex.NumDirs]hex.Pos {
	return p.Neighbors()
}

// ForwardLeftRight returns the three growth targets from p for a cell
// facing the given direction, in genome slot order.
func (g *Grid) ForwardLeftRight(p hex.Pos, facing hex.Dir) [3]hex.Pos {
	dirs := hex.GrowthDirs(facing)
	return [3]hex.Pos{p.Step(dirs[0]), p.Step(dirs[1]), p.Step(dirs[2])}
}
