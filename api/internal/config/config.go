package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

type Provider string

const (
	ProviderGemini Provider = "gemini"
	ProviderOpenAI Provider = "openai"
)

// Limits are the request bounds checked on every call.
type Limits struct {
	MaxArrayLen      int   `toml:"max_array_len"`
	MaxAbsValue      int64 `toml:"max_abs_value"`
	MaxFibN          int   `toml:"max_fib_n"`
	MaxAIQuestionLen int   `toml:"max_ai_question_len"`
}

type Config struct {
	Port          string `toml:"port"`
	OfficialEmail string `toml:"official_email"`

	Limits Limits `toml:"limits"`

	AIProvider      Provider      `toml:"ai_provider"`
	AITimeout       time.Duration `toml:"-"`
	GeminiAPIKey    string        `toml:"-"`
	GeminiModel     string        `toml:"gemini_model"`
	GeminiTransport string        `toml:"gemini_transport"` // "rest" | "sdk"
	GeminiBaseURL   string        `toml:"gemini_base_url"`
	OpenAIAPIKey    string        `toml:"-"`
	OpenAIModel     string        `toml:"openai_model"`
	OpenAIBaseURL   string        `toml:"openai_base_url"`

	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"` // "json" | "console"

	// Warnings collects values that were ignored while loading.
	Warnings []string `toml:"-"`
}

// fileConfig mirrors Config for the optional TOML file; durations are strings there.
type fileConfig struct {
	Config
	AITimeout string `toml:"ai_timeout"`
}

func Defaults() *Config {
	return &Config{
		Port: "8080",
		Limits: Limits{
			MaxArrayLen:      1000,
			MaxAbsValue:      1_000_000,
			MaxFibN:          10_000,
			MaxAIQuestionLen: 500,
		},
		AIProvider:      ProviderGemini,
		AITimeout:       10 * time.Second,
		GeminiModel:     "gemini-1.5-flash",
		GeminiTransport: "rest",
		GeminiBaseURL:   "https://generativelanguage.googleapis.com/v1beta",
		OpenAIModel:     "gpt-4o-mini",
		OpenAIBaseURL:   "https://api.openai.com/v1",
		LogLevel:        "info",
		LogFormat:       "json",
	}
}

// Load builds the config: defaults, then the TOML file at path (if any),
// then .env files, then the process environment.
func Load(path string, envFiles ...string) (*Config, error) {
	cfg := Defaults()

	if path == "" {
		path = strings.TrimSpace(os.Getenv("BFHL_CONFIG"))
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if len(envFiles) == 0 {
		if _, err := os.Stat(".env"); err == nil {
			envFiles = []string{".env"}
		}
	}
	if len(envFiles) > 0 {
		// godotenv.Load never overrides variables that are already set.
		if err := godotenv.Load(envFiles...); err != nil {
			return nil, fmt.Errorf("load env file: %w", err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	fc := fileConfig{Config: *c}
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("config file %s not found", path)
		}
		return fmt.Errorf("decode config %s: %w", path, err)
	}
	*c = fc.Config
	if s := strings.TrimSpace(fc.AITimeout); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil || d <= 0 {
			c.warnf("ai_timeout %q in %s ignored", s, path)
		} else {
			c.AITimeout = d
		}
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Port = getEnv("PORT", c.Port)
	c.OfficialEmail = getEnv("OFFICIAL_EMAIL", c.OfficialEmail)

	c.Limits.MaxArrayLen = int(c.getEnvInt("MAX_ARRAY_LEN", int64(c.Limits.MaxArrayLen)))
	c.Limits.MaxAbsValue = c.getEnvInt("MAX_ABS_VALUE", c.Limits.MaxAbsValue)
	c.Limits.MaxFibN = int(c.getEnvInt("MAX_FIB_N", int64(c.Limits.MaxFibN)))
	c.Limits.MaxAIQuestionLen = int(c.getEnvInt("MAX_AI_QUESTION_LEN", int64(c.Limits.MaxAIQuestionLen)))

	c.AIProvider = c.parseProvider(getEnv("AI_PROVIDER", string(c.AIProvider)))
	c.AITimeout = c.getEnvDuration("AI_TIMEOUT", c.AITimeout)

	c.GeminiAPIKey = getEnv("GEMINI_API_KEY", c.GeminiAPIKey)
	c.GeminiModel = getEnv("GEMINI_MODEL", c.GeminiModel)
	c.GeminiTransport = strings.ToLower(getEnv("GEMINI_TRANSPORT", c.GeminiTransport))
	c.GeminiBaseURL = strings.TrimRight(getEnv("GEMINI_BASE_URL", c.GeminiBaseURL), "/")
	c.OpenAIAPIKey = getEnv("OPENAI_API_KEY", c.OpenAIAPIKey)
	c.OpenAIModel = getEnv("OPENAI_MODEL", c.OpenAIModel)
	c.OpenAIBaseURL = strings.TrimRight(getEnv("OPENAI_BASE_URL", c.OpenAIBaseURL), "/")

	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.LogFormat = getEnv("LOG_FORMAT", c.LogFormat)

	if c.GeminiTransport != "rest" && c.GeminiTransport != "sdk" {
		c.warnf("GEMINI_TRANSPORT %q unknown, using rest", c.GeminiTransport)
		c.GeminiTransport = "rest"
	}
	if c.OfficialEmail == "" {
		c.warnf("OFFICIAL_EMAIL is empty")
	}
}

// parseProvider keeps the historical behaviour: anything but "openai" selects gemini.
func (c *Config) parseProvider(v string) Provider {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case string(ProviderOpenAI):
		return ProviderOpenAI
	case string(ProviderGemini):
		return ProviderGemini
	default:
		c.warnf("AI_PROVIDER %q unknown, using gemini", v)
		return ProviderGemini
	}
}

func (c *Config) warnf(format string, args ...any) {
	c.Warnings = append(c.Warnings, fmt.Sprintf(format, args...))
}

func getEnv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func (c *Config) getEnvInt(k string, def int64) int64 {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n < 0 {
		c.warnf("%s=%q is not a non-negative integer, using %d", k, v, def)
		return def
	}
	return n
}

func (c *Config) getEnvDuration(k string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	// Bare numbers are seconds.
	if n, err := strconv.Atoi(v); err == nil && n > 0 {
		return time.Duration(n) * time.Second
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		c.warnf("%s=%q is not a positive duration, using %s", k, v, def)
		return def
	}
	return d
}
