// Package hex implements the axial coordinates and direction algebra of the
// simulation grid. The third cube coordinate is implicit: s = -q - r.
package hex

// Pos is a position on the hex grid in axial coordinates.
type Pos struct {
	Q int
	R int
}

// Dir is one of the six hex directions. Consecutive values are 60 degree
// clockwise rotations, so rotation is modular arithmetic on the constant.
type Dir uint8

const (
	East Dir = iota
	SouthEast
	SouthWest
	West
	NorthWest
	NorthEast
)

// NumDirs is the number of hex directions.
const NumDirs = 6

// vectors[d] is the coordinate offset of one step along d, in the same
// clockwise order as the Dir constants.
var vectors = [NumDirs]Pos{
	{Q: 1, R: 0},
	{Q: 0, R: 1},
	{Q: -1, R: 1},
	{Q: -1, R: 0},
	{Q: 0, R: -1},
	{Q: 1, R: -1},
}

var dirNames = [NumDirs]string{"E", "SE", "SW", "W", "NW", "NE"}

func (d Dir) String() string {
	if d < NumDirs {
		return dirNames[d]
	}
	return "invalid"
}

// Left returns d rotated 60 degrees counterclockwise.
func (d Dir) Left() Dir {
	return (d + NumDirs - 1) % NumDirs
}

// Right returns d rotated 60 degrees clockwise.
func (d Dir) Right() Dir {
	return (d + 1) % NumDirs
}

// Vector returns the coordinate offset of one step along d.
func (d Dir) Vector() Pos {
	return vectors[d]
}

// Step returns the position one step from p along d.
func (p Pos) Step(d Dir) Pos {
	v := vectors[d]
	return Pos{Q: p.Q + v.Q, R: p.R + v.R}
}

// Neighbors returns the six adjacent positions, indexed by direction.
func (p Pos) Neighbors() [NumDirs]Pos {
	var out [NumDirs]Pos
	for d, v := range vectors {
		out[d] = Pos{Q: p.Q + v.Q, R: p.R + v.R}
	}
	return out
}

// S returns the implicit third cube coordinate.
func (p Pos) S() int {
	return -p.Q - p.R
}

// Distance returns the hex distance between a and b: the maximum absolute
// cube-coordinate difference.
func Distance(a, b Pos) int {
	dq := abs(a.Q - b.Q)
	dr := abs(a.R - b.R)
	ds := abs(a.S() - b.S())
	max := dq
	if dr > max {
		max = dr
	}
	if ds > max {
		max = ds
	}
	return max
}

// GrowthDirs returns the three growth directions for a cell facing d, in
// the order the genome encodes them: forward, left, right.
func GrowthDirs(facing Dir) [3]Dir {
	return [3]Dir{facing, facing.Left(), facing.Right()}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
