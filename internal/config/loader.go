package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// envAliases maps well-known flat environment variables onto nested config
// keys. These take the same precedence as any other environment variable.
var envAliases = map[string]string{
	"PORT":         "server.port",
	"HOST":         "server.host",
	"DATABASE_URL": "database.url",
	"JWT_SECRET":   "jwt.secret",
	"LOG_LEVEL":    "log.level",
	"ENVIRONMENT":  "base.environment",
}

// Load reads configuration from configFile (optional YAML), a .env file when
// present, and the process environment, then applies defaults and validates.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", configFile, err)
		}
	} else if _, err := os.Stat("config.yml"); err == nil {
		v.SetConfigFile("config.yml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("config: read config.yml: %w", err)
		}
	}

	// .env is a developer convenience; a missing file is not an error.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "config: warning: load .env: %v\n", err)
	}

	bindEnv(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// bindEnv maps every environment variable onto viper keys: the alias table
// first, then every plausible nesting of SECTION_SUB_FIELD names. Setting
// all variants lets JWT_SECRET land on jwt.secret and AI_OPENAI_API_KEY on
// ai.openai.api_key without a hand-maintained binding list.
func bindEnv(v *viper.Viper) {
	for _, env := range os.Environ() {
		pair := strings.SplitN(env, "=", 2)
		if len(pair) != 2 || pair[1] == "" {
			continue
		}
		key, value := pair[0], pair[1]

		if alias, ok := envAliases[key]; ok {
			v.Set(alias, value)
			continue
		}

		for _, variant := range envKeyVariants(key) {
			v.Set(variant, value)
		}
	}
}

// envKeyVariants generates the nested key spellings an env var can map to.
// For AI_OPENAI_API_KEY: ai.openai_api_key, ai.openai.api_key,
// ai.openai.api.key.
func envKeyVariants(envKey string) []string {
	parts := strings.Split(strings.ToLower(envKey), "_")
	if len(parts) <= 1 {
		return nil
	}

	variants := make([]string, 0, len(parts)-1)
	for i := 1; i < len(parts); i++ {
		variants = append(variants, strings.Join(parts[:i], ".")+"."+strings.Join(parts[i:], "_"))
	}
	return variants
}
