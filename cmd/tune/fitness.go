package main

import (
	"math"
	"sync"

	"github.com/viltered/mycelium/config"
	"github.com/viltered/mycelium/sim"
	"github.com/viltered/mycelium/telemetry"
)

// FitnessEvaluator runs headless simulations and computes fitness.
// Evaluations share nothing: every seed gets its own config copy and World,
// so seeds run in parallel goroutines safely.
type FitnessEvaluator struct {
	params      *ParamVector
	maxTicks    int64
	seeds       []int64
	baseConfig  *config.Config
	windowTicks int64

	mu          sync.Mutex
	bestFitness float64
	lastQuality float64
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int64, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		seeds:       seeds,
		baseConfig:  baseCfg,
		windowTicks: 256,
		bestFitness: math.Inf(1),
	}
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// runResult holds the outcome of a single simulation run.
type runResult struct {
	survivalTicks int64
	windows       []telemetry.WindowStats
}

// Evaluate computes fitness for a parameter vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	type seedResult struct {
		fitness float64
		quality float64
	}
	results := make([]seedResult, len(fe.seeds))

	var wg sync.WaitGroup
	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			result := fe.runSimulation(x, s)
			quality := computeQuality(result.windows, fe.baseConfig.World.SpawnCount)
			results[idx] = seedResult{
				fitness: -(float64(result.survivalTicks) * (1.0 + 0.2*quality)),
				quality: quality,
			}
		}(i, seed)
	}
	wg.Wait()

	var totalFitness, totalQuality float64
	for _, r := range results {
		totalFitness += r.fitness
		totalQuality += r.quality
	}
	n := float64(len(fe.seeds))
	avgFitness := totalFitness / n

	fe.mu.Lock()
	if avgFitness < fe.bestFitness {
		fe.bestFitness = avgFitness
	}
	fe.lastQuality = totalQuality / n
	fe.mu.Unlock()

	return avgFitness
}

// runSimulation executes one headless run until extinction or maxTicks.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) *runResult {
	cfg := *fe.baseConfig
	fe.params.ApplyToConfig(&cfg, x)

	world := sim.New(&cfg, seed)
	world.SpawnRandom(cfg.World.SpawnCount, seed)

	collector := telemetry.NewCollector(fe.windowTicks)
	result := &runResult{}
	var energyBuf []float64

	for world.Tick() < fe.maxTicks {
		world.Step(cfg.World.LightDefault)

		if collector.ShouldFlush(world.Tick()) {
			energyBuf = world.MoldEnergies(energyBuf[:0])
			result.windows = append(result.windows, collector.Flush(telemetry.Sample{
				Tick:     world.Tick(),
				Molds:    world.MoldCount(),
				Spores:   world.SporeCount(),
				Cells:    world.CellCount(),
				Light:    world.LightLevel(),
				Totals:   world.Totals(),
				Energies: energyBuf,
			}))
		}

		if world.Extinct() {
			break
		}
	}

	result.survivalTicks = world.Tick()
	return result
}

// Quality component weights.
const (
	qualityWeightStability = 0.4
	qualityWeightTurnover  = 0.3
	qualityWeightOccupancy = 0.3

	qualityWarmupWindows = 2 // skip the seeding transient
	qualityMinMolds      = 2
)

// computeQuality scores an ecosystem in [0, 1] from its window history:
// stable total biomass, sustained reproduction through spores, and a
// population that fills a decent share of the initial seeding.
func computeQuality(windows []telemetry.WindowStats, spawnCount int) float64 {
	if len(windows) <= qualityWarmupWindows || spawnCount < 1 {
		return 0
	}

	var cells []float64
	var turnoverSum, occupancySum float64
	valid := 0

	for _, w := range windows[qualityWarmupWindows:] {
		if w.Molds < qualityMinMolds {
			continue
		}
		valid++
		cells = append(cells, float64(w.Cells))
		if w.Germinations > 0 {
			turnoverSum++
		}
		occupancySum += math.Min(float64(w.Molds)/float64(spawnCount), 1.0)
	}
	if valid == 0 {
		return 0
	}

	stability := 0.0
	if len(cells) >= 2 {
		c := cv(cells)
		stability = math.Exp(-c * c)
	}
	turnover := turnoverSum / float64(valid)
	occupancy := occupancySum / float64(valid)

	quality := qualityWeightStability*stability +
		qualityWeightTurnover*turnover +
		qualityWeightOccupancy*occupancy
	return clamp01(quality)
}

// cv computes the coefficient of variation (std/mean) for a slice of values.
func cv(values []float64) float64 {
	n := float64(len(values))
	if n == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	mean := sum / n
	if mean == 0 {
		return 0
	}
	var sqDiff float64
	for _, v := range values {
		d := v - mean
		sqDiff += d * d
	}
	return math.Sqrt(sqDiff/n) / mean
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
