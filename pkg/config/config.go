// Package config loads carikbot configuration from a JSON file with
// environment variable overrides.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Bot       BotConfig       `json:"bot"`
	Security  SecurityConfig  `json:"security"`
	Channels  ChannelsConfig  `json:"channels"`
	Providers ProvidersConfig `json:"providers"`
}

type BotConfig struct {
	Name   string `env:"CARIKBOT_BOT_NAME"   json:"name"`
	Prefix string `env:"CARIKBOT_BOT_PREFIX" json:"prefix"`
}

type SecurityConfig struct {
	RateLimit RateLimitConfig `json:"rate_limit"`
	Whitelist WhitelistConfig `json:"whitelist"`
}

type RateLimitConfig struct {
	MaxRequests   int    `env:"CARIKBOT_SECURITY_RATE_LIMIT_MAX_REQUESTS"   json:"max_requests"`
	WindowSeconds int    `env:"CARIKBOT_SECURITY_RATE_LIMIT_WINDOW_SECONDS" json:"window_seconds"`
	KeyPolicy     string `env:"CARIKBOT_SECURITY_RATE_LIMIT_KEY_POLICY"     json:"key_policy"` // "user" or "chat"
}

type WhitelistConfig struct {
	Enabled bool     `env:"CARIKBOT_SECURITY_WHITELIST_ENABLED" json:"enabled"`
	Users   []string `env:"CARIKBOT_SECURITY_WHITELIST_USERS"   json:"users"`
}

type ChannelsConfig struct {
	Telegram TelegramConfig `json:"telegram"`
	Discord  DiscordConfig  `json:"discord"`
	Console  ConsoleConfig  `json:"console"`
}

type TelegramConfig struct {
	Enabled   bool     `env:"CARIKBOT_CHANNELS_TELEGRAM_ENABLED"    json:"enabled"`
	Token     string   `env:"CARIKBOT_CHANNELS_TELEGRAM_TOKEN"      json:"token"`
	AllowFrom []string `env:"CARIKBOT_CHANNELS_TELEGRAM_ALLOW_FROM" json:"allow_from"`
}

type DiscordConfig struct {
	Enabled   bool     `env:"CARIKBOT_CHANNELS_DISCORD_ENABLED"    json:"enabled"`
	Token     string   `env:"CARIKBOT_CHANNELS_DISCORD_TOKEN"      json:"token"`
	AllowFrom []string `env:"CARIKBOT_CHANNELS_DISCORD_ALLOW_FROM" json:"allow_from"`
}

type ConsoleConfig struct {
	Enabled bool `env:"CARIKBOT_CHANNELS_CONSOLE_ENABLED" json:"enabled"`
}

type ProvidersConfig struct {
	Anthropic AnthropicConfig `json:"anthropic"`
}

type AnthropicConfig struct {
	APIKey    string `env:"CARIKBOT_PROVIDERS_ANTHROPIC_API_KEY"    json:"api_key"`
	APIBase   string `env:"CARIKBOT_PROVIDERS_ANTHROPIC_API_BASE"   json:"api_base"`
	Model     string `env:"CARIKBOT_PROVIDERS_ANTHROPIC_MODEL"      json:"model"`
	MaxTokens int    `env:"CARIKBOT_PROVIDERS_ANTHROPIC_MAX_TOKENS" json:"max_tokens"`
}

// DefaultConfig returns the built-in configuration: console channel
// only, rate limit of 20 requests per 60 seconds, whitelist disabled.
func DefaultConfig() *Config {
	return &Config{
		Bot: BotConfig{
			Name:   "carikbot",
			Prefix: "/",
		},
		Security: SecurityConfig{
			RateLimit: RateLimitConfig{
				MaxRequests:   20,
				WindowSeconds: 60,
				KeyPolicy:     "user",
			},
			Whitelist: WhitelistConfig{
				Enabled: false,
			},
		},
		Channels: ChannelsConfig{
			Console: ConsoleConfig{Enabled: true},
		},
		Providers: ProvidersConfig{
			Anthropic: AnthropicConfig{
				Model:     "claude-sonnet-4-5",
				MaxTokens: 1024,
			},
		},
	}
}

// LoadConfig reads the config file at path, falling back to defaults
// when the file does not exist, then applies environment overrides.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	} else if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("error parsing config %s: %w", path, err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SaveConfig writes the config as indented JSON, creating parent
// directories as needed.
func SaveConfig(path string, cfg *Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o600)
}

// Validate checks the invariants the pipeline construction relies on.
func (c *Config) Validate() error {
	if c.Security.RateLimit.MaxRequests <= 0 {
		return errors.New("security.rate_limit.max_requests must be > 0")
	}
	if c.Security.RateLimit.WindowSeconds <= 0 {
		return errors.New("security.rate_limit.window_seconds must be > 0")
	}
	switch c.Security.RateLimit.KeyPolicy {
	case "", "user", "chat":
	default:
		return fmt.Errorf("security.rate_limit.key_policy must be \"user\" or \"chat\", got %q", c.Security.RateLimit.KeyPolicy)
	}
	if c.Bot.Prefix == "" {
		return errors.New("bot.prefix must not be empty")
	}
	return nil
}

// IsUserWhitelisted reports whether the whitelist allows the given
// actor. A disabled whitelist allows everyone.
func (c *Config) IsUserWhitelisted(userID string) bool {
	if !c.Security.Whitelist.Enabled {
		return true
	}
	for _, u := range c.Security.Whitelist.Users {
		if u == userID {
			return true
		}
	}
	return false
}
