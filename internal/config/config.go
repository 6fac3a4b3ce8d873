package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Environment string `envconfig:"ENVIRONMENT" default:"local"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	Host string `envconfig:"HOST" default:"0.0.0.0"`
	Port int    `envconfig:"PORT" default:"8080"`

	TranslationAPIKey         string `envconfig:"TRANSLATION_API_KEY" default:""`
	TranslationEndpoint       string `envconfig:"TRANSLATION_ENDPOINT" default:"https://api.openai.com/v1"`
	TranslationModel          string `envconfig:"TRANSLATION_MODEL" default:"gpt-4o-mini"`
	TranslationTimeoutSeconds int    `envconfig:"TRANSLATION_TIMEOUT_SECONDS" default:"15"`

	CacheTTLSeconds        int `envconfig:"CACHE_TTL_SECONDS" default:"3600"`
	CacheMaxEntries        int `envconfig:"CACHE_MAX_ENTRIES" default:"1024"`
	ProfileCacheTTLSeconds int `envconfig:"PROFILE_CACHE_TTL_SECONDS" default:"600"`

	DefaultLanguages string `envconfig:"DEFAULT_LANGUAGES" default:"en,fa"`

	LineChannelSecret    string `envconfig:"LINE_CHANNEL_SECRET" default:""`
	LineChannelToken     string `envconfig:"LINE_CHANNEL_TOKEN" default:""`
	WebhookAllowUnsigned bool   `envconfig:"WEBHOOK_ALLOW_UNSIGNED" default:"false"`

	HistoryDatabaseURL string `envconfig:"HISTORY_DATABASE_URL" default:""`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535")
	}
	if c.CacheMaxEntries < 1 {
		return fmt.Errorf("CACHE_MAX_ENTRIES must be >= 1")
	}
	if c.TranslationTimeoutSeconds < 1 {
		return fmt.Errorf("TRANSLATION_TIMEOUT_SECONDS must be >= 1")
	}
	if len(c.DefaultLanguagesList()) == 0 {
		return fmt.Errorf("DEFAULT_LANGUAGES must name at least one language code")
	}
	if c.WebhookAllowUnsigned && strings.EqualFold(strings.TrimSpace(c.Environment), "production") {
		return fmt.Errorf("WEBHOOK_ALLOW_UNSIGNED must not be enabled in production")
	}
	return nil
}

// DefaultLanguagesList splits DEFAULT_LANGUAGES into trimmed lowercase codes,
// preserving order.
func (c *Config) DefaultLanguagesList() []string {
	if c == nil {
		return nil
	}

	parts := strings.Split(c.DefaultLanguages, ",")
	codes := make([]string, 0, len(parts))
	for _, part := range parts {
		code := strings.ToLower(strings.TrimSpace(part))
		if code == "" {
			continue
		}
		codes = append(codes, code)
	}
	return codes
}

func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

func (c *Config) ProfileCacheTTL() time.Duration {
	return time.Duration(c.ProfileCacheTTLSeconds) * time.Second
}

func (c *Config) TranslationTimeout() time.Duration {
	return time.Duration(c.TranslationTimeoutSeconds) * time.Second
}
