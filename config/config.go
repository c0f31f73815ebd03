// Package config provides configuration loading and access for the
// simulation.
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
	World      WorldConfig      `yaml:"world"`
	Terrain    TerrainConfig    `yaml:"terrain"`
	Water      WaterConfig      `yaml:"water"`
	Plant      PlantConfig      `yaml:"plant"`
	Simulation SimulationConfig `yaml:"simulation"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading.
	Derived DerivedConfig `yaml:"-"`
}

// WorldConfig holds the grid layout.
type WorldConfig struct {
	Seed     int64   `yaml:"seed"`
	TileSize int     `yaml:"tile_size"`
	MapSize  int     `yaml:"map_size"`
	MapScale float64 `yaml:"map_scale"`
}

// TerrainConfig holds the fractal noise and island-shaping parameters.
type TerrainConfig struct {
	NoiseKind     string  `yaml:"noise_kind"` // "perlin" or "opensimplex"
	SeedMod       float64 `yaml:"seed_mod"`
	RadialFalloff bool    `yaml:"radial_falloff"`
}

// WaterConfig holds the cascade, descent, and flood coefficients.
type WaterConfig struct {
	LRate             float64 `yaml:"lrate"`
	MaxDiff           float64 `yaml:"maxdiff"`
	Settling          float64 `yaml:"settling"`
	Gravity           float64 `yaml:"gravity"`
	MomentumTransfer  float64 `yaml:"momentum_transfer"`
	Entrainment       float64 `yaml:"entrainment"`
	EvapRate          float64 `yaml:"evap_rate"`
	DepositionRate    float64 `yaml:"deposition_rate"`
	MinVol            float64 `yaml:"min_vol"`
	MaxAge            int     `yaml:"max_age"`
	CyclesPerTick     int     `yaml:"cycles_per_tick"`
	FloodEnabled      bool    `yaml:"flood_enabled"`
	FloodVolumeFactor float64 `yaml:"flood_volume_factor"`
}

// PlantConfig holds the vegetation tuning parameters.
type PlantConfig struct {
	GrowRate     float64 `yaml:"grow_rate"`
	MaxSize      float64 `yaml:"max_size"`
	MaxSteep     float64 `yaml:"max_steep"`
	MaxDischarge float64 `yaml:"max_discharge"`
	DeathProb    float64 `yaml:"death_prob"`
	SpreadProb   float64 `yaml:"spread_prob"`
	SpreadRadius int     `yaml:"spread_radius"`
}

// SimulationConfig holds top-level run parameters.
type SimulationConfig struct {
	Ticks int `yaml:"ticks"`
}

// TelemetryConfig holds CSV export settings.
type TelemetryConfig struct {
	Enabled         bool    `yaml:"enabled"`
	WindowDurationS float64 `yaml:"window_duration_sec"`
}

// DerivedConfig holds values computed after loading, not read from YAML.
type DerivedConfig struct {
	WorldSize int // MapSize * TileSize
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults
// if path is empty. Must be called before Cfg().
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

// Load loads configuration from a YAML file, merging with embedded
// defaults. If path is empty, only embedded defaults are used.
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
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.computeDerived()

	return cfg, nil
}

func (c *Config) computeDerived() {
	c.Derived.WorldSize = c.World.MapSize * c.World.TileSize
}
