package telemetry

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/viltered/mycelium/grid"
	"github.com/viltered/mycelium/sim"
)

// CellRow is one occupied world cell in snapshot CSV form.
type CellRow struct {
	Q     int    `csv:"q"`
	R     int    `csv:"r"`
	Kind  string `csv:"kind"`
	Mold  uint32 `csv:"mold"`
	Spore uint32 `csv:"spore"`
	Color string `csv:"color"`
}

// SnapshotRows converts a world snapshot to CSV rows. The input order is
// preserved, so rows from sim.Snapshot come out position-sorted.
func SnapshotRows(cells []sim.Cell) []CellRow {
	rows := make([]CellRow, len(cells))
	for i, c := range cells {
		rows[i] = CellRow{
			Q:     c.At.Q,
			R:     c.At.R,
			Kind:  c.Occupant.Kind.String(),
			Mold:  uint32(c.Occupant.Mold),
			Color: c.Color.String(),
		}
		if c.Occupant.Kind == grid.SporeSite {
			rows[i].Spore = uint32(c.Occupant.Spore)
		}
	}
	return rows
}

// WriteWorldSnapshot writes the occupied cells of a world to a CSV file.
func WriteWorldSnapshot(path string, cells []sim.Cell) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating snapshot file: %w", err)
	}
	defer f.Close()

	if err := gocsv.Marshal(SnapshotRows(cells), f); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return nil
}
