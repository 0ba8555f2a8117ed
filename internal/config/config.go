// Package config loads the phototable command configuration from the
// environment and an optional .env file.
package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"

	"github.com/gogpu/phototable"
)

// Config is the command configuration.
type Config struct {
	// Dirs lists image directories, comma separated.
	Dirs []string `env:"PHOTOTABLE_DIRS"`
	// Seed seeds placement randomness. Zero picks a random seed.
	Seed int64 `env:"PHOTOTABLE_SEED" default:"0"`
	// Snapshot is a PNG path written with the last frame on exit.
	Snapshot string `env:"PHOTOTABLE_SNAPSHOT"`

	DropPeriod     time.Duration `env:"PHOTOTABLE_DROP_PERIOD" default:"5s"`
	FastDropPeriod time.Duration `env:"PHOTOTABLE_FAST_DROP_PERIOD" default:"1s"`
	NowDropDelay   time.Duration `env:"PHOTOTABLE_NOW_DROP_DELAY" default:"100ms"`
	FadeDuration   time.Duration `env:"PHOTOTABLE_FADE_DURATION" default:"1s"`
	FramePeriod    time.Duration `env:"PHOTOTABLE_FRAME_PERIOD" default:"33ms"`

	ImageRatio  float64 `env:"PHOTOTABLE_IMAGE_RATIO" default:"0.5"`
	TableRatio  float64 `env:"PHOTOTABLE_TABLE_RATIO" default:"0.3"`
	MaxRotation float64 `env:"PHOTOTABLE_MAX_ROTATION" default:"45"`

	Capacity  int  `env:"PHOTOTABLE_CAPACITY" default:"10"`
	Inset     int  `env:"PHOTOTABLE_INSET" default:"4"`
	TapToExit bool `env:"PHOTOTABLE_TAP_TO_EXIT" default:"true"`

	LogLevel  string `env:"LOG_LEVEL" default:"info"`
	LogFormat string `env:"LOG_FORMAT" default:"text"`
	LogFile   string `env:"LOG_FILE" default:"phototable.log"`
}

// Load reads envFile, or .env when envFile is empty, then the environment.
// A missing default .env file is not an error; a missing explicit one is.
// Variables already set in the environment win over the file.
func Load(envFile string) (*Config, error) {
	if envFile == "" {
		if err := godotenv.Load(); err != nil {
			slog.Debug("No .env file found, using environment variables")
		}
	} else if err := godotenv.Load(envFile); err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	var cfg Config
	if err := env.Load(&cfg, &env.Options{SliceSep: ","}); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := cfg.Table().Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Table maps the configuration onto the table tuning.
func (c *Config) Table() phototable.Config {
	return phototable.Config{
		DropPeriod:     c.DropPeriod,
		FastDropPeriod: c.FastDropPeriod,
		NowDropDelay:   c.NowDropDelay,
		FadeDuration:   c.FadeDuration,
		FramePeriod:    c.FramePeriod,
		ImageRatio:     c.ImageRatio,
		TableRatio:     c.TableRatio,
		MaxRotation:    c.MaxRotation,
		Capacity:       c.Capacity,
		Inset:          c.Inset,
		TapToExit:      c.TapToExit,
	}
}
