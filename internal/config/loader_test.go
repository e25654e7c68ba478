package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return path
}

func TestLoad_FromFile(t *testing.T) {
	path := writeConfigFile(t, `
base:
  name: testsvc
  environment: staging
server:
  port: 9090
database:
  url: postgres://localhost/test
jwt:
  secret: `+testSecret+`
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Base.Name != "testsvc" {
		t.Errorf("expected name testsvc, got %s", cfg.Base.Name)
	}
	if cfg.Base.Environment != "staging" {
		t.Errorf("expected environment staging, got %s", cfg.Base.Environment)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("expected port 9090, got %d", cfg.Server.Port)
	}
	if cfg.JWT.Issuer != "vibe-api" {
		t.Errorf("expected default issuer, got %s", cfg.JWT.Issuer)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, `
server:
  port: 9090
database:
  url: postgres://localhost/test
jwt:
  secret: `+testSecret+`
`)
	t.Setenv("PORT", "7070")
	t.Setenv("DATABASE_URL", "postgres://localhost/envdb")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("expected env port 7070, got %d", cfg.Server.Port)
	}
	if cfg.Database.URL != "postgres://localhost/envdb" {
		t.Errorf("expected env database url, got %s", cfg.Database.URL)
	}
}

func TestLoad_NestedEnvKeys(t *testing.T) {
	path := writeConfigFile(t, `
database:
  url: postgres://localhost/test
jwt:
  secret: `+testSecret+`
`)
	t.Setenv("AI_OPENAI_API_KEY", "sk-from-env")
	t.Setenv("JWT_ACCESS_TTL", "1h")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.AI.OpenAI.APIKey != "sk-from-env" {
		t.Errorf("expected openai key from env, got %q", cfg.AI.OpenAI.APIKey)
	}
	if cfg.JWT.AccessTTL.String() != "1h0m0s" {
		t.Errorf("expected access ttl 1h, got %s", cfg.JWT.AccessTTL)
	}
}

func TestLoad_InvalidEnvironment(t *testing.T) {
	path := writeConfigFile(t, `
base:
  environment: sandbox
database:
  url: postgres://localhost/test
jwt:
  secret: `+testSecret+`
`)

	if _, err := Load(path); err == nil {
		t.Error("expected validation error for unknown environment")
	}
}

func TestLoad_ShortJWTSecret(t *testing.T) {
	path := writeConfigFile(t, `
database:
  url: postgres://localhost/test
jwt:
  secret: tooshort
`)

	if _, err := Load(path); err == nil {
		t.Error("expected validation error for short jwt secret")
	}
}

func TestEnvKeyVariants(t *testing.T) {
	tests := []struct {
		key  string
		want []string
	}{
		{"PORT", nil},
		{"JWT_SECRET", []string{"jwt.secret"}},
		{"SERVER_READ_TIMEOUT", []string{"server.read_timeout", "server.read.timeout"}},
		{"AI_OPENAI_API_KEY", []string{"ai.openai_api_key", "ai.openai.api_key", "ai.openai.api.key"}},
	}

	for _, tt := range tests {
		got := envKeyVariants(tt.key)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("envKeyVariants(%s): expected %v, got %v", tt.key, got, tt.want)
		}
	}
}
