package ai

import (
	"fmt"
	"time"
)

// ProviderConfig holds the credentials and defaults for one provider.
type ProviderConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

// LocalConfig configures the local inference provider. It needs no
// credentials and is always available.
type LocalConfig struct {
	ModelPath string `mapstructure:"model_path"`
	Model     string `mapstructure:"model"`
}

// Config holds AI proxy configuration. A remote provider with an empty API
// key is disabled; requests naming it are rejected.
type Config struct {
	DefaultProvider Provider       `mapstructure:"default_provider"`
	Timeout         time.Duration  `mapstructure:"timeout"`
	OpenAI          ProviderConfig `mapstructure:"openai"`
	Anthropic       ProviderConfig `mapstructure:"anthropic"`
	Local           LocalConfig    `mapstructure:"local"`
}

// ApplyDefaults applies default values to AI configuration.
func (c *Config) ApplyDefaults() {
	if c.DefaultProvider == "" {
		c.DefaultProvider = ProviderOpenAI
	}
	if c.Timeout == 0 {
		c.Timeout = 60 * time.Second
	}
	if c.OpenAI.Model == "" {
		c.OpenAI.Model = "gpt-4o-mini"
	}
	if c.OpenAI.BaseURL == "" {
		c.OpenAI.BaseURL = "https://api.openai.com/v1"
	}
	if c.Anthropic.Model == "" {
		c.Anthropic.Model = "claude-sonnet-4-20250514"
	}
	if c.Anthropic.BaseURL == "" {
		c.Anthropic.BaseURL = "https://api.anthropic.com/v1"
	}
	if c.Local.ModelPath == "" {
		c.Local.ModelPath = "./models/local-model.gguf"
	}
	if c.Local.Model == "" {
		c.Local.Model = "local-model"
	}
}

// Validate validates AI configuration.
func (c *Config) Validate() error {
	if !c.DefaultProvider.Valid() {
		return fmt.Errorf("ai.default_provider must be one of [openai, anthropic, local] (got: %s)", c.DefaultProvider)
	}
	return nil
}
