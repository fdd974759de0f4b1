// Package config reads the price watcher's settings from the environment,
// optionally seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	lerrors "github.com/jamesp/lambdas/pkg/common/errors"
	"github.com/jamesp/lambdas/pkg/common/validation"
	"github.com/jamesp/lambdas/pkg/scheduling/scheduler"
)

const (
	DefaultProduct     = "my favorite product"
	DefaultSchedule    = "*/10 * * * * *"
	DefaultWorkers     = 4
	DefaultShopDelay   = time.Second
	DefaultMetricsAddr = ":9090"
)

type Config struct {
	Product     string
	Schedule    string
	Workers     int
	ShopDelay   time.Duration
	Rate        float64 // quotes per second; 0 is unlimited
	MetricsAddr string
	LogLevel    zerolog.Level
}

// Load reads the configuration from the environment after loading files
// into it. With no files an optional .env in the working directory is
// used; only its absence is ignored. Variables already set take precedence
// over file values.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: reading .env: %w", err)
		}
	} else if err := godotenv.Load(files...); err != nil {
		return nil, err
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds the configuration from getenv.
func FromEnv(getenv func(string) string) (*Config, error) {
	get := func(key, def string) string {
		if v := getenv(key); v != "" {
			return v
		}
		return def
	}

	cfg := &Config{
		Product:     get("PRICEWATCH_PRODUCT", DefaultProduct),
		Schedule:    get("PRICEWATCH_SCHEDULE", DefaultSchedule),
		MetricsAddr: get("METRICS_ADDR", DefaultMetricsAddr),
	}

	var err error
	if cfg.Workers, err = strconv.Atoi(get("PRICEWATCH_WORKERS", strconv.Itoa(DefaultWorkers))); err != nil {
		return nil, invalid("PRICEWATCH_WORKERS", getenv("PRICEWATCH_WORKERS"), "not an integer")
	}
	if cfg.ShopDelay, err = time.ParseDuration(get("PRICEWATCH_SHOP_DELAY", DefaultShopDelay.String())); err != nil {
		return nil, invalid("PRICEWATCH_SHOP_DELAY", getenv("PRICEWATCH_SHOP_DELAY"), "not a duration").
			WithHint(`use a Go duration such as "250ms" or "1s"`)
	}
	if cfg.Rate, err = strconv.ParseFloat(get("PRICEWATCH_RATE", "0"), 64); err != nil {
		return nil, invalid("PRICEWATCH_RATE", getenv("PRICEWATCH_RATE"), "not a number")
	}
	if cfg.LogLevel, err = zerolog.ParseLevel(get("LOG_LEVEL", "info")); err != nil {
		return nil, invalid("LOG_LEVEL", getenv("LOG_LEVEL"), "unknown level").
			WithHint("use debug, info, warn or error")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges and the cron schedule.
func (c *Config) Validate() error {
	if err := validation.ValidateMinLength("config", "PRICEWATCH_PRODUCT", c.Product, 2); err != nil {
		return err
	}
	if err := scheduler.ValidateCronExpression(c.Schedule); err != nil {
		return err
	}
	if err := validation.ValidatePositive("config", "PRICEWATCH_WORKERS", c.Workers); err != nil {
		return err
	}
	if err := validation.ValidateNonNegativeDuration("config", "PRICEWATCH_SHOP_DELAY", c.ShopDelay); err != nil {
		return err
	}
	if err := validation.ValidateNonNegative("config", "PRICEWATCH_RATE", c.Rate); err != nil {
		return err
	}
	return validation.ValidateNotEmpty("config", "METRICS_ADDR", c.MetricsAddr)
}

func invalid(key, value, reason string) *lerrors.ValidationError {
	return lerrors.NewValidationError("config", key, value, reason)
}
