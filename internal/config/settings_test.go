package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/saulo-duarte/yt-study-api/internal/config"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "APP_ENV", "NODE_ENV", "AI_SERVICES_URL", "DEFAULT_LANGUAGE", "REPORT_TIMEZONE",
		"UPSTREAM_TIMEOUT", "SESSION_TTL", "LLM_PROVIDER", "OPENAI_API_KEY", "OPENAI_BASE_URL",
		"OPENAI_MODEL", "GEMINI_API_KEY", "GEMINI_MODEL", "STUDY_CONFIG",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Port != 5000 {
		t.Errorf("expected default port 5000, got %d", cfg.Port)
	}
	if cfg.DevMode() {
		t.Error("default environment should not be development")
	}
	if cfg.UpstreamTimeout() != 30*time.Second {
		t.Errorf("unexpected upstream timeout %s", cfg.UpstreamTimeout())
	}
	if cfg.LLM.Provider != config.ProviderOpenAI {
		t.Errorf("unexpected provider %q", cfg.LLM.Provider)
	}
	if cfg.Addr() != ":5000" {
		t.Errorf("unexpected addr %q", cfg.Addr())
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8080")
	t.Setenv("NODE_ENV", "Development")
	t.Setenv("AI_SERVICES_URL", "http://ai.local/")
	t.Setenv("UPSTREAM_TIMEOUT", "5s")
	t.Setenv("SESSION_TTL", "90m")
	t.Setenv("LLM_PROVIDER", "Gemini")
	t.Setenv("DEFAULT_LANGUAGE", "en-US")

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("expected port 8080, got %d", cfg.Port)
	}
	if !cfg.DevMode() {
		t.Error("expected development mode from NODE_ENV")
	}
	if cfg.AIServicesURL != "http://ai.local" {
		t.Errorf("trailing slash not trimmed: %q", cfg.AIServicesURL)
	}
	if cfg.UpstreamTimeout() != 5*time.Second {
		t.Errorf("unexpected timeout %s", cfg.UpstreamTimeout())
	}
	if cfg.SessionTTL() != 90*time.Minute {
		t.Errorf("unexpected ttl %s", cfg.SessionTTL())
	}
	if cfg.LLM.Provider != config.ProviderGemini {
		t.Errorf("unexpected provider %q", cfg.LLM.Provider)
	}
	if cfg.DefaultLanguage != "en" {
		t.Errorf("expected base language en, got %q", cfg.DefaultLanguage)
	}
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "study.toml")
	contents := `
port = 7000
environment = "development"
report_timezone = "America/Sao_Paulo"

[llm]
provider = "openai"
openai_model = "gpt-4o"
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Port != 7000 || !cfg.DevMode() {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.LLM.OpenAIModel != "gpt-4o" {
		t.Errorf("unexpected model %q", cfg.LLM.OpenAIModel)
	}

	t.Setenv("PORT", "7100")
	cfg, err = config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Port != 7100 {
		t.Errorf("env should override file, got port %d", cfg.Port)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Port != 5000 {
		t.Errorf("expected defaults, got port %d", cfg.Port)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Settings)
	}{
		{"BadPort", func(s *config.Settings) { s.Port = 70000 }},
		{"BadProvider", func(s *config.Settings) { s.LLM.Provider = "claude" }},
		{"NoUpstream", func(s *config.Settings) { s.AIServicesURL = "" }},
		{"ZeroTimeout", func(s *config.Settings) { s.UpstreamTimeoutSeconds = 0 }},
		{"BadTimezone", func(s *config.Settings) { s.ReportTimezone = "Mars/Olympus" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}

	if err := config.Default().Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadInvalidEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "abc")
	if _, err := config.Load(""); err == nil {
		t.Error("expected error for non-numeric PORT")
	}
}

func TestLoadRejectsSubUnitDurations(t *testing.T) {
	tests := []struct {
		key, value, want string
	}{
		{"UPSTREAM_TIMEOUT", "500ms", "whole number of seconds"},
		{"UPSTREAM_TIMEOUT", "1500ms", "whole number of seconds"},
		{"SESSION_TTL", "30s", "whole number of minutes"},
		{"SESSION_TTL", "-5m", "whole number of minutes"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := config.Load("")
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.key) || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("unclear error: %v", err)
			}
		})
	}
}
