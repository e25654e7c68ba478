// Package config loads application configuration from an optional YAML file,
// a .env file and environment variables, in increasing order of precedence.
package config

import (
	"fmt"

	"github.com/kbukum/vibeapi/internal/ai"
	"github.com/kbukum/vibeapi/internal/auth/password"
	"github.com/kbukum/vibeapi/internal/auth/token"
	"github.com/kbukum/vibeapi/internal/jobs"
	"github.com/kbukum/vibeapi/internal/logger"
	"github.com/kbukum/vibeapi/internal/observability"
	"github.com/kbukum/vibeapi/internal/server"
	"github.com/kbukum/vibeapi/internal/storage"
	"github.com/kbukum/vibeapi/internal/store/postgres"
)

// Base contains the service identity fields.
type Base struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	Debug       bool   `mapstructure:"debug"`
}

// ApplyDefaults applies default values to base configuration.
func (b *Base) ApplyDefaults() {
	if b.Name == "" {
		b.Name = "vibe-api"
	}
	if b.Environment == "" {
		b.Environment = "development"
	}
	if b.Environment == "development" {
		b.Debug = true
	}
}

// Validate validates base configuration.
func (b *Base) Validate() error {
	switch b.Environment {
	case "development", "staging", "production":
		return nil
	}
	return fmt.Errorf("base.environment must be one of [development, staging, production] (got: %s)", b.Environment)
}

// Config is the full application configuration.
type Config struct {
	Base          Base                 `mapstructure:"base"`
	Server        server.Config        `mapstructure:"server"`
	Database      postgres.Config      `mapstructure:"database"`
	JWT           token.Config         `mapstructure:"jwt"`
	Password      password.Config      `mapstructure:"password"`
	Log           logger.Config        `mapstructure:"log"`
	AI            ai.Config            `mapstructure:"ai"`
	Storage       storage.Config       `mapstructure:"storage"`
	Jobs          jobs.Config          `mapstructure:"jobs"`
	Observability observability.Config `mapstructure:"observability"`
}

// ApplyDefaults applies defaults across every section.
func (c *Config) ApplyDefaults() {
	c.Base.ApplyDefaults()
	c.Server.ApplyDefaults()
	c.Database.ApplyDefaults()
	c.JWT.ApplyDefaults()
	c.Password.ApplyDefaults()
	c.Log.ApplyDefaults()
	c.AI.ApplyDefaults()
	c.Storage.ApplyDefaults()
	c.Jobs.ApplyDefaults()
	c.Observability.ApplyDefaults()
}

// Validate validates every section. Storage is only validated when a bucket
// is configured; the storage endpoints are disabled otherwise.
func (c *Config) Validate() error {
	if err := c.Base.Validate(); err != nil {
		return err
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Database.Validate(); err != nil {
		return err
	}
	if err := c.JWT.Validate(); err != nil {
		return err
	}
	if err := c.Password.Validate(); err != nil {
		return err
	}
	if err := c.Log.Validate(); err != nil {
		return err
	}
	if err := c.AI.Validate(); err != nil {
		return err
	}
	if c.Storage.Bucket != "" {
		if err := c.Storage.Validate(); err != nil {
			return err
		}
	}
	if err := c.Jobs.Validate(); err != nil {
		return err
	}
	return c.Observability.Validate()
}

// StorageEnabled reports whether the object storage endpoints are configured.
func (c *Config) StorageEnabled() bool {
	return c.Storage.Bucket != ""
}
