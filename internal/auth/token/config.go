package token

import (
	"errors"
	"time"
)

// Config configures token signing and lifetime policy. It is loaded once at
// startup and treated as read-only afterwards; rotating the secret
// invalidates every outstanding token.
type Config struct {
	// Secret is the HMAC signing key. Required, minimum 32 bytes.
	Secret string `mapstructure:"secret"`

	// AccessTTL is the lifetime of access tokens (default: 24h).
	AccessTTL time.Duration `mapstructure:"access_ttl"`

	// RefreshTTL is the lifetime of refresh tokens (default: 30 days).
	RefreshTTL time.Duration `mapstructure:"refresh_ttl"`

	// Issuer is the "iss" claim stamped on and required of every token.
	Issuer string `mapstructure:"issuer"`
}

// ApplyDefaults fills in zero-value fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.AccessTTL == 0 {
		c.AccessTTL = 24 * time.Hour
	}
	if c.RefreshTTL == 0 {
		c.RefreshTTL = 30 * 24 * time.Hour
	}
	if c.Issuer == "" {
		c.Issuer = "vibe-api"
	}
}

// Validate checks required fields.
func (c *Config) Validate() error {
	if c.Secret == "" {
		return errors.New("jwt: secret is required")
	}
	if len(c.Secret) < 32 {
		return errors.New("jwt: secret must be at least 32 bytes")
	}
	if c.Issuer == "" {
		return errors.New("jwt: issuer is required")
	}
	return nil
}
