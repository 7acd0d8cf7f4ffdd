// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - Load layers a YAML file and BROKERLENS_* environment variables on top.
// - Validation failures wrap ErrInvalidConfig.
package config

import (
	"context"
	"fmt"
	"strings"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// DatasetPath points at a YAML or JSON fixture file. Empty means the
	// dataset is generated from Seed.
	DatasetPath string `koanf:"dataset_path"`

	// Seed, SeedNavigators and SeedPilots drive the synthetic dataset.
	Seed           int64 `koanf:"seed"`
	SeedNavigators int   `koanf:"seed_navigators"`
	SeedPilots     int   `koanf:"seed_pilots"`

	// MaxLeaderboardLimit caps GET /leaderboard?limit.
	MaxLeaderboardLimit int `koanf:"max_leaderboard_limit"`

	// ChartWidth and ChartHeight size the trend PNGs.
	ChartWidth  int `koanf:"chart_width"`
	ChartHeight int `koanf:"chart_height"`

	// Score blend weights for the revenue, pilot score and growth ranks.
	WeightRevenue float64 `koanf:"weight_revenue"`
	WeightQuality float64 `koanf:"weight_quality"`
	WeightGrowth  float64 `koanf:"weight_growth"`

	// TierHigh and TierMedium are the minimum scores of each tier.
	TierHigh   int `koanf:"tier_high"`
	TierMedium int `koanf:"tier_medium"`
}

// New creates a Config with defaults. The context is reserved for future use.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:            "info",
		LogFormat:           "text",
		Addr:                ":9080",
		Seed:                42,
		SeedNavigators:      24,
		SeedPilots:          120,
		MaxLeaderboardLimit: 100,
		ChartWidth:          900,
		ChartHeight:         400,
		WeightRevenue:       0.5,
		WeightQuality:       0.3,
		WeightGrowth:        0.2,
		TierHigh:            70,
		TierMedium:          40,
	}
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.MaxLeaderboardLimit <= 0:
		return fmt.Errorf("%w: max_leaderboard_limit must be positive", ErrInvalidConfig)
	case c.DatasetPath == "" && c.SeedNavigators <= 0:
		return fmt.Errorf("%w: seed_navigators must be positive", ErrInvalidConfig)
	case c.SeedPilots < 0:
		return fmt.Errorf("%w: seed_pilots must not be negative", ErrInvalidConfig)
	case c.ChartWidth <= 0 || c.ChartHeight <= 0:
		return fmt.Errorf("%w: chart size must be positive", ErrInvalidConfig)
	case c.WeightRevenue < 0 || c.WeightQuality < 0 || c.WeightGrowth < 0:
		return fmt.Errorf("%w: weights must not be negative", ErrInvalidConfig)
	case c.WeightRevenue+c.WeightQuality+c.WeightGrowth == 0:
		return fmt.Errorf("%w: at least one weight must be positive", ErrInvalidConfig)
	case c.TierMedium < 0 || c.TierHigh <= c.TierMedium || c.TierHigh > 100:
		return fmt.Errorf("%w: tiers need 0 <= tier_medium < tier_high <= 100", ErrInvalidConfig)
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: unknown log_format %q", ErrInvalidConfig, c.LogFormat)
	}
	return nil
}
