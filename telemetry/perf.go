package telemetry

import (
	"sort"
	"time"
)

// PerfTracker accumulates step wall times within a stats window.
type PerfTracker struct {
	samples []time.Duration
}

// NewPerfTracker creates an empty tracker.
func NewPerfTracker() *PerfTracker {
	return &PerfTracker{}
}

// Record adds one step duration to the current window.
func (p *PerfTracker) Record(d time.Duration) {
	p.samples = append(p.samples, d)
}

// PerfRow is one window of step timing for perf.csv.
type PerfRow struct {
	WindowEndTick int64   `csv:"window_end"`
	Steps         int     `csv:"steps"`
	MeanMs        float64 `csv:"step_mean_ms"`
	P50Ms         float64 `csv:"step_p50_ms"`
	P99Ms         float64 `csv:"step_p99_ms"`
	MaxMs         float64 `csv:"step_max_ms"`
}

// Flush summarizes the window's step timings and resets for the next one.
func (p *PerfTracker) Flush(windowEnd int64) PerfRow {
	row := PerfRow{WindowEndTick: windowEnd, Steps: len(p.samples)}
	if len(p.samples) == 0 {
		return row
	}

	ms := make([]float64, len(p.samples))
	var sum float64
	for i, d := range p.samples {
		ms[i] = float64(d) / float64(time.Millisecond)
		sum += ms[i]
	}
	sort.Float64s(ms)

	row.MeanMs = sum / float64(len(ms))
	row.P50Ms = Percentile(ms, 0.50)
	row.P99Ms = Percentile(ms, 0.99)
	row.MaxMs = ms[len(ms)-1]

	p.samples = p.samples[:0]
	return row
}
