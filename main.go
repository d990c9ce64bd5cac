// Command mycelium runs the mold colony simulation headless: seed a world,
// step it, and report what grew.
package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/viltered/mycelium/config"
	"github.com/viltered/mycelium/sim"
	"github.com/viltered/mycelium/telemetry"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int64("ticks", 100000, "Stop after N ticks (0 = unlimited)")
	spawn := flag.Int("spawn", 0, "Initial mold count (0 = use config)")
	lattice := flag.Int("lattice", 0, "Seed on a lattice with this spacing instead of randomly (0 = random)")
	light := flag.Int("light", -1, "Light level (-1 = use config)")
	logStats := flag.Bool("log-stats", false, "Log window stats via slog")
	statsWindow := flag.Int64("stats-window", 0, "Stats window in ticks (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	snapshotPath := flag.String("snapshot", "", "Write the final world snapshot CSV to this path")
	hallSize := flag.Int("hall-size", 10, "Colonies kept in the hall of fame")

	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}
	spawnCount := *spawn
	if spawnCount == 0 {
		spawnCount = cfg.World.SpawnCount
	}
	lightLevel := *light
	if lightLevel < 0 {
		lightLevel = cfg.World.LightDefault
	}
	windowTicks := *statsWindow
	if windowTicks == 0 {
		windowTicks = int64(cfg.Telemetry.StatsWindow)
	}

	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to set up output directory", "error", err)
		os.Exit(1)
	}
	defer output.Close()
	if err := output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
		os.Exit(1)
	}

	world := sim.New(cfg, rngSeed)
	if *lattice > 0 {
		world.SpawnLattice(*lattice, rngSeed)
	} else {
		world.SpawnRandom(spawnCount, rngSeed)
	}

	slog.Info("starting simulation",
		"seed", rngSeed,
		"spawn", world.MoldCount(),
		"light", lightLevel,
		"max_ticks", *maxTicks,
		"stats_window", windowTicks,
	)

	collector := telemetry.NewCollector(windowTicks)
	perf := telemetry.NewPerfTracker()
	hall := telemetry.NewHallOfFame(*hallSize)
	var energyBuf []float64

	for *maxTicks == 0 || world.Tick() < *maxTicks {
		start := time.Now()
		world.Step(lightLevel)
		perf.Record(time.Since(start))

		if collector.ShouldFlush(world.Tick()) {
			energyBuf = world.MoldEnergies(energyBuf[:0])
			stats := collector.Flush(telemetry.Sample{
				Tick:     world.Tick(),
				Molds:    world.MoldCount(),
				Spores:   world.SporeCount(),
				Cells:    world.CellCount(),
				Light:    world.LightLevel(),
				Totals:   world.Totals(),
				Energies: energyBuf,
			})
			if *logStats {
				stats.LogStats()
			}
			if err := output.WriteTelemetry(stats); err != nil {
				slog.Error("telemetry write failed", "error", err)
				os.Exit(1)
			}
			if err := output.WritePerf(perf.Flush(world.Tick())); err != nil {
				slog.Error("perf write failed", "error", err)
				os.Exit(1)
			}
			world.EachMold(func(info sim.MoldInfo) {
				hall.Observe(info, world.Tick(), func() string {
					g, _ := world.MoldGenome(info.ID)
					return g.Encode()
				})
			})
		}

		if world.Extinct() {
			slog.Info("world went extinct", "tick", world.Tick())
			break
		}
	}

	slog.Info("simulation finished",
		"tick", world.Tick(),
		"molds", world.MoldCount(),
		"spores", world.SporeCount(),
		"cells", world.CellCount(),
	)

	if err := output.WriteSnapshot(world.Snapshot()); err != nil {
		slog.Error("snapshot write failed", "error", err)
		os.Exit(1)
	}
	if err := output.WriteHallOfFame(hall); err != nil {
		slog.Error("hall of fame write failed", "error", err)
		os.Exit(1)
	}
	if *snapshotPath != "" {
		if err := telemetry.WriteWorldSnapshot(*snapshotPath, world.Snapshot()); err != nil {
			slog.Error("snapshot write failed", "path", *snapshotPath, "error", err)
			os.Exit(1)
		}
	}
}
