package nbody

import (
	"github.com/JeremyLoy/config"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// Config carries the run parameters usually left as constants in toy
// n-body loops: tick count, worker pool size and world bounds are
// configuration values here, overridable per process through the
// environment.
type Config struct {
	Ticks    int    `config:"NBODY_TICKS"`
	Workers  int    `config:"NBODY_WORKERS"`
	LogLevel string `config:"NBODY_LOG_LEVEL"`
	BoundsX  int    `config:"NBODY_BOUNDS_X"`
	BoundsY  int    `config:"NBODY_BOUNDS_Y"`
}

func DefaultConfig() Config {
	return Config{
		Ticks:    100_000,
		Workers:  4,
		LogLevel: "info",
		BoundsX:  10,
		BoundsY:  10,
	}
}

// GetConfig loads the config from the environment on top of the defaults.
// A malformed environment is a fatal startup error.
func GetConfig() (Config, error) {
	cfg := DefaultConfig()
	if err := config.FromEnv().To(&cfg); err != nil {
		return cfg, eris.Wrap(err, "failed to load config from environment")
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Ticks < 0 {
		return eris.Errorf("tick count must not be negative, got %d", c.Ticks)
	}
	if c.Workers < 1 {
		return eris.Errorf("worker count must be at least 1, got %d", c.Workers)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return eris.Errorf("invalid log level %q", c.LogLevel)
	}
	if c.BoundsX <= 0 || c.BoundsY <= 0 {
		return eris.Errorf("world bounds must be positive, got %dx%d", c.BoundsX, c.BoundsY)
	}
	return nil
}
