// Package main provides CMA-ES search over engine parameters for
// long-lived mold ecosystems.
package main

import (
	"math"

	"github.com/viltered/mycelium/config"
)

// ParamSpec defines a single tunable parameter.
type ParamSpec struct {
	Name    string  // config path, dot separated
	Min     float64 // lower bound
	Max     float64 // upper bound
	Default float64 // starting value
	Integer bool    // rounded before application
}

// ParamVector holds the set of all tunable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of tunable engine parameters.
// Spawn geometry and the light clamp range stay fixed: they define the
// experiment, not the ecology.
func NewParamVector() *ParamVector {
	return &ParamVector{
		Specs: []ParamSpec{
			{Name: "genome.stop_chance", Min: 0.2, Max: 0.8, Default: 0.5},
			{Name: "genome.spore_chance", Min: 0.001, Max: 0.05, Default: 0.01},
			{Name: "genome.spore_delay", Min: 10, Max: 400, Default: 100, Integer: true},
			{Name: "mutation.rate", Min: 0.0002, Max: 0.02, Default: 0.002},
			{Name: "energy.loss_per_cell", Min: 1, Max: 12, Default: 5, Integer: true},
			{Name: "energy.ticks_to_age", Min: 50, Max: 800, Default: 200, Integer: true},
			{Name: "world.light_default", Min: 4, Max: 48, Default: 16, Integer: true},
			{Name: "world.seed_energy", Min: 0, Max: 400, Default: 0, Integer: true},
		},
	}
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds, rounding integer parameters.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := v[i]
		if val < spec.Min {
			val = spec.Min
		}
		if val > spec.Max {
			val = spec.Max
		}
		if spec.Integer {
			val = math.Round(val)
		}
		clamped[i] = val
	}
	return clamped
}

// ApplyToConfig applies parameter values to a Config. Order must match
// Specs order.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) {
	v := pv.Clamp(values)

	cfg.Genome.StopChance = v[0]
	cfg.Genome.SporeChance = v[1]
	cfg.Genome.SporeDelay = int(v[2])
	cfg.Mutation.Rate = v[3]
	cfg.Energy.LossPerCell = int(v[4])
	cfg.Energy.TicksToAge = int(v[5])
	cfg.World.LightDefault = int(v[6])
	cfg.World.SeedEnergy = int(v[7])
}

// ExtractFromConfig reads the current parameter values from a Config.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) []float64 {
	return []float64{
		cfg.Genome.StopChance,
		cfg.Genome.SporeChance,
		float64(cfg.Genome.SporeDelay),
		cfg.Mutation.Rate,
		float64(cfg.Energy.LossPerCell),
		float64(cfg.Energy.TicksToAge),
		float64(cfg.World.LightDefault),
		float64(cfg.World.SeedEnergy),
	}
}
