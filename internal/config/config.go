package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/robfig/cron/v3"
)

// Store drivers.
const (
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// envPrefix selects variables such as REMIND_SCHEDULER__POLL_INTERVAL.
const envPrefix = "REMIND_"

type Config struct {
	Telegram  TelegramConfig  `koanf:"telegram"`
	Store     StoreConfig     `koanf:"store"`
	Clock     ClockConfig     `koanf:"clock"`
	Scheduler SchedulerConfig `koanf:"scheduler"`
	Health    HealthConfig    `koanf:"health"`
}

type TelegramConfig struct {
	BotToken    string `koanf:"bot_token"`
	ChatID      string `koanf:"chat_id"` // the only chat allowed to issue commands
	APIURL      string `koanf:"api_url"`
	PollTimeout int    `koanf:"poll_timeout"` // getUpdates long-poll seconds
}

type StoreConfig struct {
	Driver  string `koanf:"driver"`
	Path    string `koanf:"path"`
	Table   string `koanf:"table"`
	Timeout int    `koanf:"timeout"` // seconds per store call
}

type ClockConfig struct {
	Timezone string `koanf:"timezone"`
}

type SchedulerConfig struct {
	PollInterval int    `koanf:"poll_interval"` // seconds
	InitialDelay int    `koanf:"initial_delay"` // seconds before the first poll
	ResetSpec    string `koanf:"reset_spec"`    // 5-field cron spec, local time
}

type HealthConfig struct {
	Enabled bool `koanf:"enabled"`
	Port    int  `koanf:"port"`
}

// Load merges defaults, the YAML file at configPath (if it exists) and the
// environment, in that order.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(NewDefaultProvider(), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath != "" {
		configPath = expandPath(configPath)

		if _, err := os.Stat(configPath); err == nil {
			if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load config file: %w", err)
			}
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(s, envPrefix)
		return strings.ReplaceAll(strings.ToLower(s), "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load env vars: %w", err)
	}

	// Plain variable names used by existing deployments.
	for name, key := range map[string]string{
		"TELEGRAM_TOKEN": "telegram.bot_token",
		"MY_CHAT_ID":     "telegram.chat_id",
		"PORT":           "health.port",
		"TZ_NAME":        "clock.timezone",
	} {
		if v := os.Getenv(name); v != "" {
			k.Set(key, v)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.Store.Path = expandPath(cfg.Store.Path)

	return &cfg, nil
}

// Validate checks everything the reminder engine needs. Telegram settings
// are checked separately by ValidateTelegram.
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case DriverSQLite:
		if c.Store.Path == "" {
			return fmt.Errorf("store.path is required for the sqlite driver")
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown store driver: %s (supported: %s, %s)",
			c.Store.Driver, DriverSQLite, DriverMemory)
	}

	if c.Store.Table == "" {
		return fmt.Errorf("store.table is required")
	}

	if c.Store.Timeout <= 0 {
		return fmt.Errorf("store.timeout must be positive")
	}

	if _, err := time.LoadLocation(c.Clock.Timezone); err != nil {
		return fmt.Errorf("invalid clock.timezone %q: %w", c.Clock.Timezone, err)
	}

	if c.Scheduler.PollInterval <= 0 {
		return fmt.Errorf("scheduler.poll_interval must be positive, got %d", c.Scheduler.PollInterval)
	}

	if c.Scheduler.InitialDelay < 0 {
		return fmt.Errorf("scheduler.initial_delay must not be negative")
	}

	if _, err := cron.ParseStandard(c.Scheduler.ResetSpec); err != nil {
		return fmt.Errorf("invalid scheduler.reset_spec %q: %w", c.Scheduler.ResetSpec, err)
	}

	if c.Health.Enabled && (c.Health.Port <= 0 || c.Health.Port > 65535) {
		return fmt.Errorf("health.port must be between 1 and 65535")
	}

	return nil
}

// ValidateTelegram checks the settings needed to run the bot.
func (c *Config) ValidateTelegram() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("telegram bot token is required (set TELEGRAM_TOKEN or telegram.bot_token)")
	}
	if c.Telegram.ChatID == "" {
		return fmt.Errorf("telegram chat id is required (set MY_CHAT_ID or telegram.chat_id)")
	}
	if c.Telegram.PollTimeout < 0 || c.Telegram.PollTimeout > 50 {
		return fmt.Errorf("telegram.poll_timeout must be between 0 and 50")
	}
	return nil
}

// Location loads the configured zone.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Clock.Timezone)
}

func (c *SchedulerConfig) Interval() time.Duration {
	return time.Duration(c.PollInterval) * time.Second
}

func (c *SchedulerConfig) Delay() time.Duration {
	return time.Duration(c.InitialDelay) * time.Second
}

func (c *StoreConfig) CallTimeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

func expandPath(path string) string {
	if path == "" {
		return path
	}

	if len(path) >= 2 && path[:2] == "~/" {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}

	return path
}
