// Package telemetry aggregates simulation observations into windowed
// statistics and writes them to CSV alongside world snapshots and a hall of
// fame of the largest colonies. The engine itself records nothing; the
// driving loop samples the world and feeds the numbers in.
package telemetry

import "github.com/viltered/mycelium/sim"

// Sample is one observation of a world, taken by the caller at a window
// boundary. Totals are the world's lifetime counters; the collector turns
// them into per-window rates by differencing against the previous sample.
type Sample struct {
	Tick     int64
	Molds    int
	Spores   int
	Cells    int
	Light    int
	Totals   sim.Totals
	Energies []float64
}

// Collector produces WindowStats from successive world samples.
type Collector struct {
	windowTicks int64
	windowStart int64
	prev        sim.Totals
}

// NewCollector creates a collector flushing every windowTicks ticks.
func NewCollector(windowTicks int64) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{windowTicks: windowTicks}
}

// WindowTicks returns the window length in ticks.
func (c *Collector) WindowTicks() int64 {
	return c.windowTicks
}

// ShouldFlush reports whether the current window is complete.
func (c *Collector) ShouldFlush(currentTick int64) bool {
	return currentTick-c.windowStart >= c.windowTicks
}

// Flush produces the stats of the window ending at the sample and starts
// the next window.
func (c *Collector) Flush(s Sample) WindowStats {
	mean, p10, p50, p90 := ComputeEnergyStats(s.Energies)

	var cellsPerMold float64
	if s.Molds > 0 {
		cellsPerMold = float64(s.Cells) / float64(s.Molds)
	}

	stats := WindowStats{
		WindowStartTick: c.windowStart,
		WindowEndTick:   s.Tick,

		Molds:  s.Molds,
		Spores: s.Spores,
		Cells:  s.Cells,
		Light:  s.Light,

		Births:        s.Totals.MoldsCreated - c.prev.MoldsCreated,
		Deaths:        s.Totals.MoldsDied - c.prev.MoldsDied,
		SporesPlanted: s.Totals.SporesPlanted - c.prev.SporesPlanted,
		Germinations:  s.Totals.SporesGerminated - c.prev.SporesGerminated,
		SporesLost:    s.Totals.SporesLost - c.prev.SporesLost,

		CellsPerMold: cellsPerMold,

		EnergyMean: mean,
		EnergyP10:  p10,
		EnergyP50:  p50,
		EnergyP90:  p90,
	}

	c.windowStart = s.Tick
	c.prev = s.Totals

	return stats
}
