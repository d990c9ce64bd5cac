// Package components defines the ECS components attached to molds and
// spores. They are plain data; behavior lives in the sim package.
package components

import (
	"github.com/viltered/mycelium/genome"
	"github.com/viltered/mycelium/hex"
)

// MoldID identifies a living mold. Ids are allocated monotonically and never
// reused; ascending id is the deterministic processing order of a tick.
type MoldID uint32

// SporeID identifies a spore, allocated like MoldID.
type SporeID uint32

// Cell is one grid cell owned by a mold body.
type Cell struct {
	At     hex.Pos
	Facing hex.Dir
	Gene   int // growth cursor: index of the gene driving this cell
}

// Body holds a mold's owned cells in creation order. The first cell is the
// origin; every later cell was grown adjacent to an earlier one, so the set
// stays connected without bookkeeping.
type Body struct {
	ID    MoldID
	Cells []Cell
}

// Pool is a mold's energy balance and age. Energy may only be negative
// transiently, between the energy phase and the death sweep of one tick.
type Pool struct {
	Energy int
	Age    int
}

// Genetics carries an entity's growth program with its cached display
// color: the genome's own color for molds, the inversion for spores.
type Genetics struct {
	Genome *genome.Genome
	Color  genome.Color
}

// Phase is the spore lifecycle state.
type Phase uint8

const (
	Dormant Phase = iota
	Active
)

var phaseNames = [...]string{"Dormant", "Active"}

func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "Unknown"
}

// Pod is a planted spore: where it sits, the facing a germinated mold will
// inherit, the countdown to activation, and the parent whose death triggers
// germination.
type Pod struct {
	ID        SporeID
	Site      hex.Pos
	Facing    hex.Dir
	Parent    MoldID
	Phase     Phase
	Remaining int
}

// Tick advances the dormancy countdown. Activation is one-way: an Active
// pod never reverts and ignores further ticks.
func (p *Pod) Tick() {
	if p.Phase != Dormant {
		return
	}
	p.Remaining--
	if p.Remaining <= 0 {
		p.Phase = Active
		p.Remaining = 0
	}
}
