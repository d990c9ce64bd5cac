// Package genome implements the growth program of a mold: a fixed table of
// genes, each mapping the three relative growth directions to an action.
// Genomes are immutable after construction; mutation returns a new genome.
package genome

import (
	"fmt"
	"math/rand"
)

// Kind discriminates the action variants of a gene slot.
type Kind uint8

const (
	// NoGrowth leaves the direction alone forever.
	NoGrowth Kind = iota
	// GrowBody claims the target cell as mold body; the new cell's growth
	// cursor is set to Next.
	GrowBody
	// GrowSpore places a dormant spore on the target cell with Delay ticks
	// until activation.
	GrowSpore
)

var kindNames = [...]string{"NoGrowth", "GrowBody", "GrowSpore"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Unknown"
}

// Action is one gene slot: a tagged variant of Kind with its payload.
// Next is meaningful for GrowBody, Delay for GrowSpore.
type Action struct {
	Kind  Kind
	Next  int
	Delay int
}

// Slot indexes the three relative growth directions of a gene, in the same
// order hex.GrowthDirs emits them.
type Slot uint8

const (
	SlotForward Slot = iota
	SlotLeft
	SlotRight
)

// NumSlots is the number of growth slots per gene.
const NumSlots = 3

// Gene maps each growth slot to an action.
type Gene [NumSlots]Action

// Params controls random generation and mutation sampling.
type Params struct {
	// Size is the gene-table length for freshly generated genomes.
	Size int
	// StopChance is the probability that a sampled slot is NoGrowth.
	StopChance float64
	// SporeChance is the probability that a non-stopping slot is GrowSpore.
	SporeChance float64
	// SporeDelay is the dormancy assigned to sampled GrowSpore actions.
	SporeDelay int
}

// Genome is an immutable growth program plus its cached display color.
type Genome struct {
	genes []Gene
	color Color
}

// New builds a genome from an explicit gene table, validating the
// construction invariants: a non-empty table, known action kinds, GrowBody
// targets inside the table, and non-negative spore delays.
func New(genes []Gene) (*Genome, error) {
	if len(genes) == 0 {
		return nil, fmt.Errorf("genome: empty gene table")
	}
	for i, gene := range genes {
		for s, a := range gene {
			switch a.Kind {
			case NoGrowth:
			case GrowBody:
				if a.Next < 0 || a.Next >= len(genes) {
					return nil, fmt.Errorf("genome: gene %d slot %d targets index %d of %d", i, s, a.Next, len(genes))
				}
			case GrowSpore:
				if a.Delay < 0 {
					return nil, fmt.Errorf("genome: gene %d slot %d has negative delay %d", i, s, a.Delay)
				}
			default:
				return nil, fmt.Errorf("genome: gene %d slot %d has unknown kind %d", i, s, a.Kind)
			}
		}
	}
	own := make([]Gene, len(genes))
	copy(own, genes)
	return &Genome{genes: own, color: deriveColor(own)}, nil
}

// NewRandom generates a genome of p.Size genes with every slot sampled from
// the generation distribution.
func NewRandom(p Params, rng *rand.Rand) *Genome {
	if p.Size < 1 {
		panic("genome: NewRandom with non-positive size")
	}
	genes := make([]Gene, p.Size)
	for i := range genes {
		for s := range genes[i] {
			genes[i][s] = sampleAction(p, p.Size, rng)
		}
	}
	return &Genome{genes: genes, color: deriveColor(genes)}
}

// sampleAction draws one slot. Stop first, then spore, then growth into a
// uniform gene index below size.
func sampleAction(p Params, size int, rng *rand.Rand) Action {
	if rng.Float64() < p.StopChance {
		return Action{Kind: NoGrowth}
	}
	if rng.Float64() < p.SporeChance {
		return Action{Kind: GrowSpore, Delay: p.SporeDelay}
	}
	return Action{Kind: GrowBody, Next: rng.Intn(size)}
}

// Len returns the number of genes in the table.
func (g *Genome) Len() int {
	return len(g.genes)
}

// Action looks up the slot of a gene. Pure; the index is trusted because
// every stored gene index is validated at construction time.
func (g *Genome) Action(gene int, slot Slot) Action {
	return g.genes[gene][slot]
}

// CanGrow reports whether any slot of the gene is not NoGrowth. Cells whose
// gene cannot grow are skipped by the growth phase.
func (g *Genome) CanGrow(gene int) bool {
	for _, a := range g.genes[gene] {
		if a.Kind != NoGrowth {
			return true
		}
	}
	return false
}

// Color returns the cached display color derived from the gene table.
func (g *Genome) Color() Color {
	return g.color
}

// Mutate returns a genome where every slot was independently resampled with
// probability rate, using the generation distribution over this genome's
// own table size. The receiver is returned unchanged when no slot mutates.
func (g *Genome) Mutate(rate float64, p Params, rng *rand.Rand) *Genome {
	var mutated []Gene
	for i := range g.genes {
		for s := range g.genes[i] {
			if rng.Float64() >= rate {
				continue
			}
			if mutated == nil {
				mutated = make([]Gene, len(g.genes))
				copy(mutated, g.genes)
			}
			mutated[i][s] = sampleAction(p, len(g.genes), rng)
		}
	}
	if mutated == nil {
		return g
	}
	return &Genome{genes: mutated, color: deriveColor(mutated)}
}
