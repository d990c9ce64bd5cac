package config

import (
	"os"
	"path/filepath"
	"testing"
)

// ---------- loading and merging ----------

func TestLoad_EmbeddedDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load with defaults: %v", err)
	}
	if cfg.Genome.Size != 100 {
		t.Errorf("genome.size default = %d, want 100", cfg.Genome.Size)
	}
	if cfg.Energy.LossPerCell != 5 {
		t.Errorf("energy.loss_per_cell default = %d, want 5", cfg.Energy.LossPerCell)
	}
	if cfg.World.LightDefault != 16 {
		t.Errorf("world.light_default default = %d, want 16", cfg.World.LightDefault)
	}
	if cfg.World.LightMin > cfg.World.LightMax {
		t.Errorf("light clamp range inverted: [%d, %d]", cfg.World.LightMin, cfg.World.LightMax)
	}
}

func TestLoad_UserFileOverridesOnlyNamedFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "override.yaml")
	data := []byte("genome:\n  size: 7\nmutation:\n  rate: 0.5\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write override: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Genome.Size != 7 {
		t.Errorf("genome.size = %d, want override 7", cfg.Genome.Size)
	}
	if cfg.Mutation.Rate != 0.5 {
		t.Errorf("mutation.rate = %g, want override 0.5", cfg.Mutation.Rate)
	}
	// Untouched sections keep their defaults.
	if cfg.Energy.TicksToAge != 200 {
		t.Errorf("energy.ticks_to_age = %d, want default 200", cfg.Energy.TicksToAge)
	}
	if cfg.Genome.StopChance != 0.5 {
		t.Errorf("genome.stop_chance = %g, want default 0.5", cfg.Genome.StopChance)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name string
		body string
	}{
		{"zero ticks_to_age", "energy:\n  ticks_to_age: 0\n"},
		{"negative spore_delay", "genome:\n  spore_delay: -1\n"},
		{"rate above one", "mutation:\n  rate: 1.5\n"},
		{"inverted light clamp", "world:\n  light_min: 10\n  light_max: 5\n"},
		{"zero genome size", "genome:\n  size: 0\n"},
	}
	for _, c := range cases {
		path := filepath.Join(t.TempDir(), "bad.yaml")
		if err := os.WriteFile(path, []byte(c.body), 0644); err != nil {
			t.Fatalf("%s: write: %v", c.name, err)
		}
		if _, err := Load(path); err == nil {
			t.Errorf("%s: expected validation error", c.name)
		}
	}
}

// ---------- global accessor ----------

func TestInitThenCfg(t *testing.T) {
	if err := Init(""); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if Cfg() == nil {
		t.Fatal("Cfg returned nil after Init")
	}
	if Cfg().Genome.Size != 100 {
		t.Errorf("Cfg().Genome.Size = %d, want 100", Cfg().Genome.Size)
	}
}

// ---------- round trip ----------

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	cfg.World.SpawnRadius = 42

	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML: %v", err)
	}

	back, err := Load(path)
	if err != nil {
		t.Fatalf("Load written file: %v", err)
	}
	if back.World.SpawnRadius != 42 {
		t.Errorf("round-tripped spawn_radius = %d, want 42", back.World.SpawnRadius)
	}
	if back.Genome.Size != cfg.Genome.Size {
		t.Errorf("round-tripped genome.size = %d, want %d", back.Genome.Size, cfg.Genome.Size)
	}
}
