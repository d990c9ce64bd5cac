package grid

import (
	"testing"

	"github.com/viltered/mycelium/hex"
)

// ---------- occupancy ----------

func TestGrid_PlaceOccupantClear(t *testing.T) {
	g := New()
	p := hex.Pos{Q: 2, R: -1}

	if got := g.Occupant(p); got.Kind != Empty {
		t.Fatalf("fresh grid cell is %v, want Empty", got.Kind)
	}

	g.Place(p, BodyOf(7))
	got := g.Occupant(p)
	if got.Kind != Body || got.Mold != 7 {
		t.Errorf("placed body occupant came back as %+v", got)
	}
	if g.Len() != 1 {
		t.Errorf("Len = %d, want 1", g.Len())
	}

	g.Clear(p)
	if got := g.Occupant(p); got.Kind != Empty {
		t.Errorf("cleared cell is %v, want Empty", got.Kind)
	}
	if g.Len() != 0 {
		t.Errorf("Len after clear = %d, want 0", g.Len())
	}
}

func TestGrid_SporeSiteCarriesParent(t *testing.T) {
	g := New()
	p := hex.Pos{Q: 0, R: 3}
	g.Place(p, SporeSiteOf(12, 4))
	got := g.Occupant(p)
	if got.Kind != SporeSite {
		t.Fatalf("kind = %v, want SporeSite", got.Kind)
	}
	if got.Spore != 12 || got.Mold != 4 {
		t.Errorf("occupant = %+v, want spore 12 parent 4", got)
	}
}

func TestGrid_Reset(t *testing.T) {
	g := New()
	g.Place(hex.Pos{Q: 1, R: 0}, BodyOf(1))
	g.Place(hex.Pos{Q: 2, R: 0}, SporeSiteOf(1, 1))
	g.Reset()
	if g.Len() != 0 {
		t.Errorf("Len after reset = %d, want 0", g.Len())
	}
	if got := g.Occupant(hex.Pos{Q: 1, R: 0}); got.Kind != Empty {
		t.Errorf("cell survived reset: %+v", got)
	}
}

func TestGrid_EachVisitsEveryCell(t *testing.T) {
	g := New()
	want := map[hex.Pos]Occupant{
		{Q: 0, R: 0}:  BodyOf(1),
		{Q: 5, R: -2}: BodyOf(2),
		{Q: -1, R: 1}: SporeSiteOf(3, 1),
	}
	for p, o := range want {
		g.Place(p, o)
	}
	seen := map[hex.Pos]Occupant{}
	g.Each(func(p hex.Pos, o Occupant) {
		seen[p] = o
	})
	if len(seen) != len(want) {
		t.Fatalf("visited %d cells, want %d", len(seen), len(want))
	}
	for p, o := range want {
		if seen[p] != o {
			t.Errorf("at %v saw %+v, want %+v", p, seen[p], o)
		}
	}
}

// ---------- contract violations ----------

func mustPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s did not panic", name)
		}
	}()
	fn()
}

func TestGrid_PlaceOnOccupiedPanics(t *testing.T) {
	g := New()
	p := hex.Pos{Q: 0, R: 0}
	g.Place(p, BodyOf(1))
	mustPanic(t, "Place on occupied cell", func() {
		g.Place(p, BodyOf(2))
	})
}

func TestGrid_PlaceEmptyPanics(t *testing.T) {
	g := New()
	mustPanic(t, "Place of Empty occupant", func() {
		g.Place(hex.Pos{Q: 0, R: 0}, Occupant{})
	})
}

func TestGrid_ClearEmptyPanics(t *testing.T) {
	g := New()
	mustPanic(t, "Clear of empty cell", func() {
		g.Clear(hex.Pos{Q: 9, R: 9})
	})
}

// ---------- geometry passthrough ----------

func TestGrid_ForwardLeftRight(t *testing.T) {
	g := New()
	p := hex.Pos{Q: 4, R: 4}
	for facing := hex.Dir(0); facing < hex.NumDirs; facing++ {
		targets := g.ForwardLeftRight(p, facing)
		dirs := hex.GrowthDirs(facing)
		for i := range targets {
			if targets[i] != p.Step(dirs[i]) {
				t.Errorf("facing %v slot %d: got %v, want %v", facing, i, targets[i], p.Step(dirs[i]))
			}
			if hex.Distance(p, targets[i]) != 1 {
				t.Errorf("growth target %v not adjacent to %v", targets[i], p)
			}
		}
		if targets[0] == targets[1] || targets[0] == targets[2] || targets[1] == targets[2] {
			t.Errorf("facing %v produced duplicate growth targets %v", facing, targets)
		}
	}
}

func TestGrid_NeighborsMatchHex(t *testing.T) {
	g := New()
	p := hex.Pos{Q: -3, R: 8}
	if g.Neighbors(p) != p.Neighbors() {
		t.Error("grid neighbors disagree with hex neighbors")
	}
}
