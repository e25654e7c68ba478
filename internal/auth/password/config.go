package password

import "fmt"

// Config configures password hashing behavior.
type Config struct {
	// Time is the number of argon2id iterations (default: 1).
	Time uint32 `mapstructure:"time"`

	// Memory is the memory usage in KiB (default: 65536 = 64MB).
	Memory uint32 `mapstructure:"memory"`

	// Threads is the parallelism (default: 4).
	Threads uint8 `mapstructure:"threads"`

	// MinLength is the minimum password length (default: 8).
	MinLength int `mapstructure:"min_length"`
}

// ApplyDefaults sets sensible defaults for zero-valued fields.
func (c *Config) ApplyDefaults() {
	if c.Time == 0 {
		c.Time = 1
	}
	if c.Memory == 0 {
		c.Memory = 64 * 1024
	}
	if c.Threads == 0 {
		c.Threads = 4
	}
	if c.MinLength == 0 {
		c.MinLength = 8
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.MinLength < 1 {
		return fmt.Errorf("password.min_length must be >= 1 (got: %d)", c.MinLength)
	}
	return nil
}

// NewHasher creates a Hasher from configuration.
func NewHasher(cfg Config) Hasher {
	cfg.ApplyDefaults()
	return NewArgon2Hasher(
		WithTime(cfg.Time),
		WithMemory(cfg.Memory),
		WithThreads(cfg.Threads),
	)
}
