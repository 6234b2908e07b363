package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

const (
	defaultPort            = 5000
	defaultAIServicesURL   = "https://successful-youthfulness-production-692c.up.railway.app"
	defaultUpstreamTimeout = 30 * time.Second
	defaultSessionTTL      = 6 * time.Hour
	defaultLanguage        = "en"
	defaultOpenAIModel     = "gpt-4o-mini"
	defaultGeminiModel     = "gemini-2.0-flash"

	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Settings holds every runtime knob of the API. Values come from defaults,
// then an optional TOML file, then the environment.
type Settings struct {
	Port            int    `toml:"port"`
	Environment     string `toml:"environment"`
	AIServicesURL   string `toml:"ai_services_url"`
	DefaultLanguage string `toml:"default_language"`
	ReportTimezone  string `toml:"report_timezone"`

	UpstreamTimeoutSeconds int `toml:"upstream_timeout_seconds"`
	SessionTTLMinutes      int `toml:"session_ttl_minutes"`

	LLM LLMSettings `toml:"llm"`
}

type LLMSettings struct {
	Provider      string `toml:"provider"`
	OpenAIAPIKey  string `toml:"openai_api_key"`
	OpenAIBaseURL string `toml:"openai_base_url"`
	OpenAIModel   string `toml:"openai_model"`
	GeminiAPIKey  string `toml:"gemini_api_key"`
	GeminiModel   string `toml:"gemini_model"`
}

func Default() Settings {
	return Settings{
		Port:                   defaultPort,
		Environment:            "production",
		AIServicesURL:          defaultAIServicesURL,
		DefaultLanguage:        defaultLanguage,
		ReportTimezone:         "UTC",
		UpstreamTimeoutSeconds: int(defaultUpstreamTimeout / time.Second),
		SessionTTLMinutes:      int(defaultSessionTTL / time.Minute),
		LLM: LLMSettings{
			Provider:    ProviderOpenAI,
			OpenAIModel: defaultOpenAIModel,
			GeminiModel: defaultGeminiModel,
		},
	}
}

// Load builds the settings. An empty path falls back to STUDY_CONFIG; a
// missing file is not an error.
func Load(path string) (Settings, error) {
	cfg := Default()

	if path == "" {
		path = strings.TrimSpace(os.Getenv("STUDY_CONFIG"))
	}
	if path != "" {
		file, err := os.Open(path)
		switch {
		case err == nil:
			defer file.Close()
			if err := toml.NewDecoder(file).Decode(&cfg); err != nil {
				return Settings{}, fmt.Errorf("parse config: %w", err)
			}
		case errors.Is(err, fs.ErrNotExist):
		default:
			return Settings{}, fmt.Errorf("open config: %w", err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Settings{}, err
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Settings{}, err
	}
	return cfg, nil
}

func (s *Settings) applyEnv() error {
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		s.Port = port
	}
	if v := firstEnv("APP_ENV", "NODE_ENV"); v != "" {
		s.Environment = v
	}
	if v := os.Getenv("AI_SERVICES_URL"); v != "" {
		s.AIServicesURL = v
	}
	if v := os.Getenv("DEFAULT_LANGUAGE"); v != "" {
		s.DefaultLanguage = v
	}
	if v := os.Getenv("REPORT_TIMEZONE"); v != "" {
		s.ReportTimezone = v
	}
	if v := os.Getenv("UPSTREAM_TIMEOUT"); v != "" {
		n, err := envUnits("UPSTREAM_TIMEOUT", v, time.Second, "second")
		if err != nil {
			return err
		}
		s.UpstreamTimeoutSeconds = n
	}
	if v := os.Getenv("SESSION_TTL"); v != "" {
		n, err := envUnits("SESSION_TTL", v, time.Minute, "minute")
		if err != nil {
			return err
		}
		s.SessionTTLMinutes = n
	}
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		s.LLM.Provider = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		s.LLM.OpenAIAPIKey = v
	}
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		s.LLM.OpenAIBaseURL = v
	}
	if v := os.Getenv("OPENAI_MODEL"); v != "" {
		s.LLM.OpenAIModel = v
	}
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		s.LLM.GeminiAPIKey = v
	}
	if v := os.Getenv("GEMINI_MODEL"); v != "" {
		s.LLM.GeminiModel = v
	}
	return nil
}

func (s *Settings) normalize() {
	s.Environment = strings.ToLower(strings.TrimSpace(s.Environment))
	s.AIServicesURL = strings.TrimRight(strings.TrimSpace(s.AIServicesURL), "/")
	s.LLM.Provider = strings.ToLower(strings.TrimSpace(s.LLM.Provider))
	s.LLM.OpenAIAPIKey = strings.TrimSpace(s.LLM.OpenAIAPIKey)
	s.LLM.GeminiAPIKey = strings.TrimSpace(s.LLM.GeminiAPIKey)
	if s.LLM.OpenAIModel == "" {
		s.LLM.OpenAIModel = defaultOpenAIModel
	}
	if s.LLM.GeminiModel == "" {
		s.LLM.GeminiModel = defaultGeminiModel
	}
	if tag, err := language.Parse(strings.TrimSpace(s.DefaultLanguage)); err == nil {
		base, _ := tag.Base()
		s.DefaultLanguage = base.String()
	}
}

func (s Settings) Validate() error {
	var problems []string

	if s.Port <= 0 || s.Port > 65535 {
		problems = append(problems, fmt.Sprintf("port %d out of range", s.Port))
	}
	if s.AIServicesURL == "" {
		problems = append(problems, "ai_services_url is required")
	}
	if s.UpstreamTimeoutSeconds <= 0 {
		problems = append(problems, "upstream timeout must be positive")
	}
	if s.SessionTTLMinutes <= 0 {
		problems = append(problems, "session ttl must be positive")
	}
	if s.LLM.Provider != ProviderOpenAI && s.LLM.Provider != ProviderGemini {
		problems = append(problems, fmt.Sprintf("unknown llm provider %q", s.LLM.Provider))
	}
	if _, err := language.Parse(s.DefaultLanguage); err != nil {
		problems = append(problems, fmt.Sprintf("invalid default language %q", s.DefaultLanguage))
	}
	if _, err := time.LoadLocation(s.ReportTimezone); err != nil {
		problems = append(problems, fmt.Sprintf("invalid report timezone %q", s.ReportTimezone))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(problems, "; "))
	}
	return nil
}

func (s Settings) DevMode() bool {
	return s.Environment == "development"
}

func (s Settings) UpstreamTimeout() time.Duration {
	return time.Duration(s.UpstreamTimeoutSeconds) * time.Second
}

func (s Settings) SessionTTL() time.Duration {
	return time.Duration(s.SessionTTLMinutes) * time.Minute
}

func (s Settings) Addr() string {
	return ":" + strconv.Itoa(s.Port)
}

// envUnits parses a duration that must be a positive whole number of unit.
func envUnits(key, v string, unit time.Duration, unitName string) (int, error) {
	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	if d < unit || d%unit != 0 {
		return 0, fmt.Errorf("invalid %s %q: must be a whole number of %ss, at least one", key, v, unitName)
	}
	return int(d / unit), nil
}

func firstEnv(keys ...string) string {
	for _, key := range keys {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			return v
		}
	}
	return ""
}
