// Package config provides configuration loading and access for the
// simulation engine and its tools.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	World     WorldConfig     `yaml:"world"`
	Genome    GenomeConfig    `yaml:"genome"`
	Mutation  MutationConfig  `yaml:"mutation"`
	Energy    EnergyConfig    `yaml:"energy"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// WorldConfig holds world seeding and light parameters.
type WorldConfig struct {
	SpawnRadius  int `yaml:"spawn_radius"`  // hex radius of the disc SpawnRandom samples
	SpawnCount   int `yaml:"spawn_count"`   // default mold count for initial seeding
	SeedEnergy   int `yaml:"seed_energy"`   // starting energy of explicitly spawned molds
	LightDefault int `yaml:"light_default"` // light level a new world starts with
	LightMin     int `yaml:"light_min"`     // lower clamp for the light level
	LightMax     int `yaml:"light_max"`     // upper clamp for the light level
}

// GenomeConfig holds random genome generation parameters.
type GenomeConfig struct {
	Size        int     `yaml:"size"`         // genes per freshly generated genome
	StopChance  float64 `yaml:"stop_chance"`  // chance a sampled slot is NoGrowth
	SporeChance float64 `yaml:"spore_chance"` // chance a non-stopping slot is GrowSpore
	SporeDelay  int     `yaml:"spore_delay"`  // dormancy ticks of sampled GrowSpore actions
}

// MutationConfig holds genome mutation parameters.
type MutationConfig struct {
	Rate float64 `yaml:"rate"` // per-slot resample probability at spore creation
}

// EnergyConfig holds the upkeep model parameters.
type EnergyConfig struct {
	LossPerCell int `yaml:"loss_per_cell"` // base upkeep per owned cell per tick
	TicksToAge  int `yaml:"ticks_to_age"`  // ticks per senescence step of the upkeep multiplier
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow int `yaml:"stats_window"` // ticks per stats window
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if
// path is empty. Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate rejects values the engine cannot run with.
func (c *Config) validate() error {
	switch {
	case c.World.SpawnRadius < 1:
		return fmt.Errorf("config: world.spawn_radius must be at least 1, got %d", c.World.SpawnRadius)
	case c.World.SpawnCount < 0:
		return fmt.Errorf("config: world.spawn_count must not be negative, got %d", c.World.SpawnCount)
	case c.World.SeedEnergy < 0:
		return fmt.Errorf("config: world.seed_energy must not be negative, got %d", c.World.SeedEnergy)
	case c.World.LightMin > c.World.LightMax:
		return fmt.Errorf("config: world.light_min %d exceeds light_max %d", c.World.LightMin, c.World.LightMax)
	case c.Genome.Size < 1:
		return fmt.Errorf("config: genome.size must be at least 1, got %d", c.Genome.Size)
	case c.Genome.StopChance < 0 || c.Genome.StopChance > 1:
		return fmt.Errorf("config: genome.stop_chance must be in [0,1], got %g", c.Genome.StopChance)
	case c.Genome.SporeChance < 0 || c.Genome.SporeChance > 1:
		return fmt.Errorf("config: genome.spore_chance must be in [0,1], got %g", c.Genome.SporeChance)
	case c.Genome.SporeDelay < 0:
		return fmt.Errorf("config: genome.spore_delay must not be negative, got %d", c.Genome.SporeDelay)
	case c.Mutation.Rate < 0 || c.Mutation.Rate > 1:
		return fmt.Errorf("config: mutation.rate must be in [0,1], got %g", c.Mutation.Rate)
	case c.Energy.LossPerCell < 0:
		return fmt.Errorf("config: energy.loss_per_cell must not be negative, got %d", c.Energy.LossPerCell)
	case c.Energy.TicksToAge < 1:
		return fmt.Errorf("config: energy.ticks_to_age must be at least 1, got %d", c.Energy.TicksToAge)
	case c.Telemetry.StatsWindow < 1:
		return fmt.Errorf("config: telemetry.stats_window must be at least 1, got %d", c.Telemetry.StatsWindow)
	}
	return nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
