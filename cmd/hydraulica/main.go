// Command hydraulica runs the headless erosion simulation: generate a
// height field from a seed, then tick the erosion driver, optionally
// exporting CSV telemetry between ticks.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strconv"
	"time"

	"github.com/pthm-cable/hydraulica/cellpool"
	"github.com/pthm-cable/hydraulica/collab"
	"github.com/pthm-cable/hydraulica/config"
	"github.com/pthm-cable/hydraulica/erosion"
	"github.com/pthm-cable/hydraulica/logging"
	"github.com/pthm-cable/hydraulica/noise"
	"github.com/pthm-cable/hydraulica/telemetry"
	"github.com/pthm-cable/hydraulica/terrain"
	"github.com/pthm-cable/hydraulica/vegetation"
	"github.com/pthm-cable/hydraulica/water"
)

var (
	ticks       = flag.Int("ticks", 0, "Number of ticks to run (0 = use config's simulation.ticks)")
	cycles      = flag.Int("cycles", 0, "Drops spawned per tick per node (0 = use config's water.cycles_per_tick)")
	configPath  = flag.String("config", "", "Path to a YAML config overriding the embedded defaults")
	csvDir      = flag.String("csv", "", "Directory to write telemetry.csv and perf.csv into (empty = disabled)")
	logInterval = flag.Int("log", 0, "Log progress every N ticks (0 = disabled)")
	logFile     = flag.String("logfile", "", "Write logs to file instead of stdout")
	perfLog     = flag.Bool("perf", false, "Enable performance logging to stderr")
)

func main() {
	flag.Parse()

	if *logFile != "" {
		f, err := os.Create(*logFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to create log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logging.SetLogWriter(f)
	}

	logger := logging.NewDefaultLogger()

	seed := resolveSeed(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if *ticks > 0 {
		cfg.Simulation.Ticks = *ticks
	}
	if *cycles > 0 {
		cfg.Water.CyclesPerTick = *cycles
	}

	m, err := buildMap(cfg)
	if err != nil {
		logging.PoolExhausted(logger, cfg.Derived.WorldSize*cfg.Derived.WorldSize, 0)
		fmt.Fprintf(os.Stderr, "failed to reserve cell arena: %v\n", err)
		os.Exit(1)
	}

	oracle := buildOracle(cfg, seed)
	terrain.Generate(m, oracle, cfg.Terrain.SeedMod, terrain.Options{RadialFalloff: cfg.Terrain.RadialFalloff})

	driver := erosion.New(m, seed, erosion.Params{
		LRate:         cfg.Water.LRate,
		CyclesPerTick: cfg.Water.CyclesPerTick,
		Water: water.Params{
			MapScale:          cfg.World.MapScale,
			Gravity:           cfg.Water.Gravity,
			MomentumTransfer:  cfg.Water.MomentumTransfer,
			DepositionRate:    cfg.Water.DepositionRate,
			Entrainment:       cfg.Water.Entrainment,
			EvapRate:          cfg.Water.EvapRate,
			MinVol:            cfg.Water.MinVol,
			MaxAge:            cfg.Water.MaxAge,
			MaxDiff:           cfg.Water.MaxDiff,
			Settling:          cfg.Water.Settling,
			FloodEnabled:      cfg.Water.FloodEnabled,
			FloodVolumeFactor: cfg.Water.FloodVolumeFactor,
		},
		Plant: vegetation.Params{
			MapScale:     cfg.World.MapScale,
			GrowRate:     cfg.Plant.GrowRate,
			MaxSize:      cfg.Plant.MaxSize,
			MaxSteep:     cfg.Plant.MaxSteep,
			MaxDischarge: cfg.Plant.MaxDischarge,
			DeathProb:    cfg.Plant.DeathProb,
			SpreadProb:   cfg.Plant.SpreadProb,
			SpreadRadius: cfg.Plant.SpreadRadius,
		},
	})

	out, err := telemetry.NewOutputManager(*csvDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open telemetry output: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	windowTicks := int(cfg.Telemetry.WindowDurationS)
	if windowTicks < 1 {
		windowTicks = 1
	}
	collector := telemetry.NewCollector(windowTicks)
	perf := telemetry.NewPerfCollector(60)

	runTicks := cfg.Simulation.Ticks
	logging.Logf("starting hydraulica: seed=%d ticks=%d cycles_per_tick=%d world=%dx%d",
		seed, runTicks, cfg.Water.CyclesPerTick, cfg.Derived.WorldSize, cfg.Derived.WorldSize)

	start := time.Now()
	for t := 0; t < runTicks; t++ {
		perf.StartTick()
		driver.Tick()
		perf.EndTick()

		if cfg.Telemetry.Enabled && out != nil {
			for i := 0; i < cfg.Water.CyclesPerTick*len(m.Nodes); i++ {
				collector.RecordDrop()
			}
			recordWindow(m, driver, collector)
			if collector.ShouldFlush(t + 1) {
				stats := collector.Flush(t+1, driver.Vegetation.Count(), poolVolume(m))
				if err := out.WriteTelemetry(stats); err != nil {
					logging.Logf("telemetry write failed: %v", err)
				}
			}
		}

		if *perfLog && (t+1)%60 == 0 {
			perf.Stats().LogStats()
			if out != nil {
				_ = out.WritePerf(perf.Stats(), t+1)
			}
		}

		if *logInterval > 0 && (t+1)%*logInterval == 0 {
			elapsed := time.Since(start)
			logging.Logf("tick %d/%d (%.0f ticks/sec)", t+1, runTicks, float64(t+1)/elapsed.Seconds())
		}
	}

	logging.Logf("done: %d ticks in %s", runTicks, time.Since(start).Round(time.Millisecond))
}

// resolveSeed reads the optional positional seed argument, falling back to
// a wall-clock seed when absent or unparseable.
func resolveSeed(logger *slog.Logger) int64 {
	args := flag.Args()
	if len(args) == 0 {
		seed := time.Now().UnixNano()
		logging.SeedReplaced(logger, "no seed given", seed)
		return seed
	}

	seed, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fallback := time.Now().UnixNano()
		logging.SeedReplaced(logger, fmt.Sprintf("invalid seed argument %q: %v", args[0], err), fallback)
		return fallback
	}
	return seed
}

func buildMap(cfg *config.Config) (*cellpool.Map, error) {
	pool := cellpool.NewPool(cfg.World.MapSize * cfg.World.MapSize * cfg.World.TileSize * cfg.World.TileSize)
	return cellpool.NewMap(pool, cfg.World.MapSize, cfg.World.TileSize)
}

func buildOracle(cfg *config.Config, seed int64) collab.NoiseOracle {
	if cfg.Terrain.NoiseKind == "opensimplex" {
		return noise.NewOpenSimplex(seed)
	}
	return noise.NewPerlin(seed)
}

func recordWindow(m *cellpool.Map, d *erosion.Driver, c *telemetry.Collector) {
	m.Each(func(_ cellpool.Vec2i, cell *cellpool.Cell) {
		c.RecordCell(cell.Discharge, math.Hypot(cell.MomentumX, cell.MomentumY))
	})
}

func poolVolume(m *cellpool.Map) float64 {
	var total float64
	m.Each(func(_ cellpool.Vec2i, c *cellpool.Cell) {
		total += c.Pool
	})
	return total
}
