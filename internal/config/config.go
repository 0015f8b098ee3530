package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"vacuumworld/internal/app/simulation"
	"vacuumworld/internal/domain/environment"

	"gopkg.in/yaml.v3"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	MinEnvironmentDim int    `yaml:"min_environment_dim"`
	MaxEnvironmentDim int    `yaml:"max_environment_dim"`
	GridSize          int    `yaml:"grid_size"`
	CycleDelayMS      int    `yaml:"cycle_delay_ms"`
	HTTPAddr          string `yaml:"http_addr"`
	ObserverAddr      string `yaml:"observer_addr"`
	CORSOrigin        string `yaml:"cors_origin"`
	DBDSN             string `yaml:"db_dsn"`
	SQLitePath        string `yaml:"sqlite_path"`
	SnapshotDir       string `yaml:"snapshot_dir"`
	LogLevel          string `yaml:"log_level"`

	SeedActors []SeedActor `yaml:"seed_actors"`
	SeedDirts  []SeedDirt  `yaml:"seed_dirts"`
}

type SeedActor struct {
	X           int    `yaml:"x"`
	Y           int    `yaml:"y"`
	Colour      string `yaml:"colour"`
	Orientation string `yaml:"orientation"`
	Mind        string `yaml:"mind"`
}

type SeedDirt struct {
	X      int    `yaml:"x"`
	Y      int    `yaml:"y"`
	Colour string `yaml:"colour"`
}

// Default is a 5x5 world with one agent of each colour, a user and some dirt.
func Default() Config {
	return Config{
		MinEnvironmentDim: environment.DefaultMinDim,
		MaxEnvironmentDim: environment.DefaultMaxDim,
		GridSize:          5,
		CycleDelayMS:      500,
		HTTPAddr:          ":8080",
		ObserverAddr:      ":8081",
		CORSOrigin:        "*",
		LogLevel:          "info",
		SeedActors: []SeedActor{
			{X: 0, Y: 0, Colour: "white", Orientation: "north", Mind: "reactive"},
			{X: 4, Y: 0, Colour: "green", Orientation: "west", Mind: "reactive"},
			{X: 0, Y: 4, Colour: "orange", Orientation: "east", Mind: "reactive"},
			{X: 2, Y: 2, Colour: "user", Orientation: "south", Mind: "reactive"},
		},
		SeedDirts: []SeedDirt{
			{X: 1, Y: 3, Colour: "green"},
			{X: 3, Y: 1, Colour: "orange"},
			{X: 4, Y: 4, Colour: "green"},
		},
	}
}

// Load reads path over the defaults, then applies VW_* environment overrides.
// An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, err
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("%s: %w", path, err)
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.MinEnvironmentDim = intEnv("VW_MIN_ENVIRONMENT_DIM", c.MinEnvironmentDim)
	c.MaxEnvironmentDim = intEnv("VW_MAX_ENVIRONMENT_DIM", c.MaxEnvironmentDim)
	c.GridSize = intEnv("VW_GRID_SIZE", c.GridSize)
	c.CycleDelayMS = intEnv("VW_CYCLE_DELAY_MS", c.CycleDelayMS)
	c.HTTPAddr = stringEnv("VW_HTTP_ADDR", c.HTTPAddr)
	c.ObserverAddr = stringEnv("VW_OBSERVER_ADDR", c.ObserverAddr)
	c.CORSOrigin = stringEnv("VW_CORS_ORIGIN", c.CORSOrigin)
	c.DBDSN = stringEnv("VW_DB_DSN", c.DBDSN)
	c.SQLitePath = stringEnv("VW_SQLITE_PATH", c.SQLitePath)
	c.SnapshotDir = stringEnv("VW_SNAPSHOT_DIR", c.SnapshotDir)
	c.LogLevel = stringEnv("VW_LOG_LEVEL", c.LogLevel)
}

func (c Config) Validate() error {
	if c.MinEnvironmentDim <= 0 || c.MaxEnvironmentDim <= 0 {
		return fmt.Errorf("%w: environment dims must be positive, got [%d, %d]", ErrInvalidConfig, c.MinEnvironmentDim, c.MaxEnvironmentDim)
	}
	if c.MinEnvironmentDim > c.MaxEnvironmentDim {
		return fmt.Errorf("%w: min_environment_dim %d is greater than max_environment_dim %d", ErrInvalidConfig, c.MinEnvironmentDim, c.MaxEnvironmentDim)
	}
	if c.GridSize < c.MinEnvironmentDim || c.GridSize > c.MaxEnvironmentDim {
		return fmt.Errorf("%w: grid_size %d not in [%d, %d]", ErrInvalidConfig, c.GridSize, c.MinEnvironmentDim, c.MaxEnvironmentDim)
	}
	if c.CycleDelayMS < 0 {
		return fmt.Errorf("%w: cycle_delay_ms must not be negative", ErrInvalidConfig)
	}
	if c.DBDSN != "" && c.SQLitePath != "" {
		return fmt.Errorf("%w: db_dsn and sqlite_path are mutually exclusive", ErrInvalidConfig)
	}
	return nil
}

func (c Config) Environment() environment.Config {
	return environment.Config{MinDim: c.MinEnvironmentDim, MaxDim: c.MaxEnvironmentDim}
}

func (c Config) CycleDelay() time.Duration {
	return time.Duration(c.CycleDelayMS) * time.Millisecond
}

func (c Config) Seed() simulation.SeedSpec {
	spec := simulation.SeedSpec{Size: c.GridSize}
	for _, a := range c.SeedActors {
		spec.Actors = append(spec.Actors, simulation.SeedActor{
			X:           a.X,
			Y:           a.Y,
			Colour:      a.Colour,
			Orientation: a.Orientation,
			Mind:        a.Mind,
		})
	}
	for _, d := range c.SeedDirts {
		spec.Dirts = append(spec.Dirts, simulation.SeedDirt{X: d.X, Y: d.Y, Colour: d.Colour})
	}
	return spec
}

func intEnv(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func stringEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
