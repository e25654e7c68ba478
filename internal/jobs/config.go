package jobs

import (
	"fmt"
	"time"
)

// Config holds background job configuration.
type Config struct {
	Enabled         bool          `mapstructure:"enabled"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
	MetricsInterval time.Duration `mapstructure:"metrics_interval"`
	StaleAfter      time.Duration `mapstructure:"stale_after"`
	ActiveWindow    time.Duration `mapstructure:"active_window"`
}

// ApplyDefaults applies default values to job configuration.
func (c *Config) ApplyDefaults() {
	if c.CleanupInterval == 0 {
		c.CleanupInterval = 24 * time.Hour
	}
	if c.MetricsInterval == 0 {
		c.MetricsInterval = time.Hour
	}
	if c.StaleAfter == 0 {
		c.StaleAfter = 2 * 365 * 24 * time.Hour
	}
	if c.ActiveWindow == 0 {
		c.ActiveWindow = 24 * time.Hour
	}
}

// Validate validates job configuration.
func (c *Config) Validate() error {
	if c.CleanupInterval < time.Minute {
		return fmt.Errorf("jobs.cleanup_interval must be at least 1m (got: %s)", c.CleanupInterval)
	}
	if c.MetricsInterval < time.Minute {
		return fmt.Errorf("jobs.metrics_interval must be at least 1m (got: %s)", c.MetricsInterval)
	}
	return nil
}
