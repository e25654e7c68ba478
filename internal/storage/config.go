package storage

import "fmt"

// Config holds S3 object storage configuration.
type Config struct {
	Bucket         string `mapstructure:"bucket"`
	Region         string `mapstructure:"region"`
	Endpoint       string `mapstructure:"endpoint"` // set for S3-compatible services (MinIO, etc.)
	AccessKey      string `mapstructure:"access_key"`
	SecretKey      string `mapstructure:"secret_key"`
	ForcePathStyle bool   `mapstructure:"force_path_style"`
	MaxUploadBytes int64  `mapstructure:"max_upload_bytes"`
}

// ApplyDefaults applies default values to storage configuration.
func (c *Config) ApplyDefaults() {
	if c.Region == "" {
		c.Region = "us-east-1"
	}
	if c.MaxUploadBytes == 0 {
		c.MaxUploadBytes = 10 << 20 // 10 MiB
	}
}

// Validate validates storage configuration.
func (c *Config) Validate() error {
	if c.Bucket == "" {
		return fmt.Errorf("storage.bucket is required")
	}
	return nil
}
