package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"StockPortfolio/internal/model"
	"StockPortfolio/internal/sheet"
)

// DefaultTableColumns are the dashboard columns shown when none are configured.
var DefaultTableColumns = []string{"Symbol", "Avg Price", "Current", "Change %", "P& L"}

var cssLength = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?(%|px|em|rem|vw|ch)$`)

// Config holds all application configuration.
type Config struct {
	Sheet struct {
		URL     string   `yaml:"url" toml:"url"`
		Timeout Duration `yaml:"timeout" toml:"timeout"`
	} `yaml:"sheet" toml:"sheet"`
	Schedule struct {
		InitialDelay   Duration `yaml:"initial_delay" toml:"initial_delay"`
		UpdateInterval Duration `yaml:"update_interval" toml:"update_interval"`
		RetryDelay     Duration `yaml:"retry_delay" toml:"retry_delay"`
	} `yaml:"schedule" toml:"schedule"`
	Display struct {
		ShowSummary    *bool    `yaml:"show_summary" toml:"show_summary"`
		ShowTable      *bool    `yaml:"show_table" toml:"show_table"`
		TableColumns   []string `yaml:"table_columns" toml:"table_columns"`
		Currency       string   `yaml:"currency" toml:"currency"`
		CurrencySymbol string   `yaml:"currency_symbol" toml:"currency_symbol"`
		MaxWidth       string   `yaml:"max_width" toml:"max_width"`
	} `yaml:"display" toml:"display"`
	Aliases model.AliasTable `yaml:"aliases" toml:"aliases"`
	Server  struct {
		Addr string `yaml:"addr" toml:"addr"`
	} `yaml:"server" toml:"server"`
	Telegram struct {
		BotToken string `yaml:"bot_token" toml:"bot_token"`
		ChatID   string `yaml:"chat_id" toml:"chat_id"`
	} `yaml:"telegram" toml:"telegram"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path" toml:"sqlite_path"`
	} `yaml:"database" toml:"database"`
	Logging struct {
		Level string `yaml:"level" toml:"level"`
	} `yaml:"logging" toml:"logging"`
	Proxy string `yaml:"proxy" toml:"proxy"`
}

// Duration is a time.Duration read from strings such as "10m" or "5s".
type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Load reads config from a YAML or TOML file (chosen by extension), then
// applies environment variable overrides and defaults. A missing file is not
// an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := decode(path, data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	applyDefaults(cfg)
	return cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Unmarshal(data, cfg)
	default:
		return yaml.Unmarshal(data, cfg)
	}
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("SHEET_URL"); v != "" {
		cfg.Sheet.URL = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("UPDATE_INTERVAL"); v != "" {
		if err := cfg.Schedule.UpdateInterval.UnmarshalText([]byte(v)); err != nil {
			return fmt.Errorf("UPDATE_INTERVAL: %w", err)
		}
	}
	if v := os.Getenv("RETRY_DELAY"); v != "" {
		if err := cfg.Schedule.RetryDelay.UnmarshalText([]byte(v)); err != nil {
			return fmt.Errorf("RETRY_DELAY: %w", err)
		}
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("LISTEN_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Sheet.Timeout == 0 {
		cfg.Sheet.Timeout = Duration(30 * time.Second)
	}
	if cfg.Schedule.InitialDelay == 0 {
		cfg.Schedule.InitialDelay = Duration(2 * time.Second)
	}
	if cfg.Schedule.UpdateInterval == 0 {
		cfg.Schedule.UpdateInterval = Duration(10 * time.Minute)
	}
	if cfg.Schedule.RetryDelay == 0 {
		cfg.Schedule.RetryDelay = Duration(5 * time.Second)
	}
	if cfg.Display.ShowSummary == nil {
		cfg.Display.ShowSummary = boolPtr(true)
	}
	if cfg.Display.ShowTable == nil {
		cfg.Display.ShowTable = boolPtr(true)
	}
	if len(cfg.Display.TableColumns) == 0 {
		cfg.Display.TableColumns = append([]string(nil), DefaultTableColumns...)
	}
	if cfg.Display.MaxWidth == "" {
		cfg.Display.MaxWidth = "100%"
	}
	if cfg.Display.Currency == "" && cfg.Display.CurrencySymbol == "" {
		cfg.Display.Currency = "INR"
	}
	if len(cfg.Aliases) == 0 {
		cfg.Aliases = sheet.DefaultAliases()
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}

// Validate checks that the settings are usable. An empty sheet URL is allowed:
// the dashboard then asks for one instead of fetching.
func (c *Config) Validate() error {
	if c.Sheet.URL != "" && !strings.HasPrefix(c.Sheet.URL, "http://") &&
		!strings.HasPrefix(c.Sheet.URL, "https://") && !strings.HasPrefix(c.Sheet.URL, "file://") {
		if _, err := os.Stat(c.Sheet.URL); err != nil {
			return fmt.Errorf("sheet.url must be an http(s) URL or an existing file: %w", err)
		}
	}
	if c.Schedule.UpdateInterval.Std() < time.Second {
		return fmt.Errorf("schedule.update_interval must be at least 1s")
	}
	if c.Schedule.RetryDelay.Std() < time.Second {
		return fmt.Errorf("schedule.retry_delay must be at least 1s")
	}
	if c.Sheet.Timeout.Std() <= 0 {
		return fmt.Errorf("sheet.timeout must be positive")
	}
	if !cssLength.MatchString(c.Display.MaxWidth) {
		return fmt.Errorf("display.max_width %q must be a CSS length such as 100%% or 960px", c.Display.MaxWidth)
	}
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		return fmt.Errorf("telegram.bot_token and telegram.chat_id must be set together")
	}
	for i, g := range c.Aliases {
		if g.Key == "" {
			return fmt.Errorf("aliases[%d]: key is required", i)
		}
	}
	return nil
}

// ShowSummary reports whether the summary cards are displayed.
func (c *Config) ShowSummary() bool { return c.Display.ShowSummary == nil || *c.Display.ShowSummary }

// ShowTable reports whether the stock table is displayed.
func (c *Config) ShowTable() bool { return c.Display.ShowTable == nil || *c.Display.ShowTable }

func boolPtr(b bool) *bool { return &b }
