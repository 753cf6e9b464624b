package app

import (
	"fmt"
	"strings"

	"github.com/louisbranch/cookieclicker/internal/platform/config"
	"github.com/louisbranch/cookieclicker/internal/services/game/domain/catalog"
	"github.com/louisbranch/cookieclicker/internal/services/game/domain/pricing"
)

// Config holds the session service settings.
type Config struct {
	GrowthFactor   float64 `env:"COOKIECLICKER_PRICE_GROWTH_FACTOR" envDefault:"1.15"`
	RefundFactor   float64 `env:"COOKIECLICKER_REFUND_FACTOR" envDefault:"0.25"`
	TicksPerSecond int64   `env:"COOKIECLICKER_TICKS_PER_SECOND" envDefault:"30"`
	DBPath         string  `env:"COOKIECLICKER_DB_PATH" envDefault:"data/cookieclicker.db"`
}

// DefaultConfig returns the configuration used when no environment is set.
func DefaultConfig() Config {
	return Config{
		GrowthFactor:   pricing.DefaultGrowthFactor,
		RefundFactor:   pricing.DefaultRefundFactor,
		TicksPerSecond: catalog.DefaultTicksPerSecond,
		DBPath:         "data/cookieclicker.db",
	}
}

// LoadConfig reads the configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Pricing returns the economy the configuration describes.
func (c Config) Pricing() pricing.Config {
	return pricing.Config{GrowthFactor: c.GrowthFactor, RefundFactor: c.RefundFactor}
}

// Validate checks the economy and the tick rate.
func (c Config) Validate() error {
	if err := c.Pricing().Validate(); err != nil {
		return err
	}
	if c.TicksPerSecond < 1 {
		return fmt.Errorf("ticks per second must be at least 1, got %d", c.TicksPerSecond)
	}
	if strings.TrimSpace(c.DBPath) == "" {
		return fmt.Errorf("db path is required")
	}
	return nil
}
