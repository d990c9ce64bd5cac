package telemetry

import (
	"log/slog"
	"sort"
)

// WindowStats holds aggregated simulation statistics for one tick window.
type WindowStats struct {
	WindowStartTick int64 `csv:"-"`
	WindowEndTick   int64 `csv:"window_end"`

	// Population at window end
	Molds  int `csv:"molds"`
	Spores int `csv:"spores"`
	Cells  int `csv:"cells"`
	Light  int `csv:"light"`

	// Lifecycle events during the window
	Births        int `csv:"births"`
	Deaths        int `csv:"deaths"`
	SporesPlanted int `csv:"spores_planted"`
	Germinations  int `csv:"germinations"`
	SporesLost    int `csv:"spores_lost"`

	// Colony shape
	CellsPerMold float64 `csv:"cells_per_mold"`

	// Energy distribution across living molds (sampled at window end)
	EnergyMean float64 `csv:"energy_mean"`
	EnergyP10  float64 `csv:"energy_p10"`
	EnergyP50  float64 `csv:"energy_p50"`
	EnergyP90  float64 `csv:"energy_p90"`
}

// Percentile calculates the p-th percentile of a sorted slice with linear
// interpolation. p is in [0, 1]. Returns 0 for an empty slice.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeEnergyStats calculates mean and percentiles from energy values.
func ComputeEnergyStats(values []float64) (mean, p10, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	mean = sum / float64(n)

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = Percentile(sorted, 0.10)
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)

	return mean, p10, p50, p90
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"molds", s.Molds,
		"spores", s.Spores,
		"cells", s.Cells,
		"light", s.Light,
		"births", s.Births,
		"deaths", s.Deaths,
		"spores_planted", s.SporesPlanted,
		"germinations", s.Germinations,
		"spores_lost", s.SporesLost,
		"cells_per_mold", s.CellsPerMold,
		"energy_mean", s.EnergyMean,
		"energy_p10", s.EnergyP10,
		"energy_p50", s.EnergyP50,
		"energy_p90", s.EnergyP90,
	)
}
