package genome

import (
	"fmt"
	"hash/fnv"
)

// Color is a display color with channels confined to [10, 245], keeping
// colonies visible against both black and white backdrops.
type Color struct {
	R uint8
	G uint8
	B uint8
}

// String renders the color as a #rrggbb hex triplet.
func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Inverted returns the channel-wise inversion. Spores are drawn with the
// inversion of their genome's color; since channels never reach 128 exactly,
// a color and its inversion are always distinct.
func (c Color) Inverted() Color {
	return Color{R: 255 - c.R, G: 255 - c.G, B: 255 - c.B}
}

// deriveColor hashes the gene table so that equal programs always display
// alike and any mutation may shift the hue.
func deriveColor(genes []Gene) Color {
	h := fnv.New64a()
	h.Write(appendGenes(nil, genes))
	sum := h.Sum64()
	return Color{
		R: channel(sum),
		G: channel(sum >> 21),
		B: channel(sum >> 42),
	}
}

func channel(bits uint64) uint8 {
	return uint8(10 + bits%236)
}
