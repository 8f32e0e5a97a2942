package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Schedule.UpdateInterval.Std() != 10*time.Minute {
		t.Errorf("expected 10m update interval, got %v", cfg.Schedule.UpdateInterval.Std())
	}
	if cfg.Schedule.RetryDelay.Std() != 5*time.Second {
		t.Errorf("expected 5s retry delay, got %v", cfg.Schedule.RetryDelay.Std())
	}
	if len(cfg.Display.TableColumns) != len(DefaultTableColumns) {
		t.Errorf("expected default columns, got %v", cfg.Display.TableColumns)
	}
	if !cfg.ShowSummary() || !cfg.ShowTable() {
		t.Error("expected summary and table shown by default")
	}
	if len(cfg.Aliases) == 0 {
		t.Error("expected default alias table")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "config.yaml", `
sheet:
  url: https://docs.google.com/spreadsheets/d/e/abc/pub?output=csv
  timeout: 15s
schedule:
  update_interval: 1h
  retry_delay: 30s
display:
  show_summary: false
  table_columns: ["Symbol", "Qty", "P& L"]
  currency_symbol: "$"
aliases:
  qty: [quantity, shares]
  p_l: [profit_loss]
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Sheet.Timeout.Std() != 15*time.Second {
		t.Errorf("timeout: got %v", cfg.Sheet.Timeout.Std())
	}
	if cfg.Schedule.UpdateInterval.Std() != time.Hour || cfg.Schedule.RetryDelay.Std() != 30*time.Second {
		t.Errorf("schedule: got %v / %v", cfg.Schedule.UpdateInterval.Std(), cfg.Schedule.RetryDelay.Std())
	}
	if cfg.ShowSummary() {
		t.Error("expected show_summary false")
	}
	if !cfg.ShowTable() {
		t.Error("expected show_table to default to true")
	}
	if cfg.Display.Currency != "" {
		t.Errorf("expected no currency default when a symbol is set, got %q", cfg.Display.Currency)
	}
	if len(cfg.Aliases) != 2 || cfg.Aliases[0].Key != "qty" || cfg.Aliases[1].Key != "p_l" {
		t.Errorf("unexpected aliases %+v", cfg.Aliases)
	}
}

func TestLoad_TOML(t *testing.T) {
	path := writeFile(t, "config.toml", `
[sheet]
url = "https://example.com/sheet.csv"

[schedule]
update_interval = "5m"

[[aliases]]
key = "avg_price"
aliases = ["average_price"]
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Sheet.URL != "https://example.com/sheet.csv" {
		t.Errorf("url: got %q", cfg.Sheet.URL)
	}
	if cfg.Schedule.UpdateInterval.Std() != 5*time.Minute {
		t.Errorf("update interval: got %v", cfg.Schedule.UpdateInterval.Std())
	}
	if len(cfg.Aliases) != 1 || cfg.Aliases[0].Aliases[0] != "average_price" {
		t.Errorf("unexpected aliases %+v", cfg.Aliases)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeFile(t, "config.yaml", "sheet:\n  url: https://a.example/x.csv\n")
	t.Setenv("SHEET_URL", "https://b.example/y.csv")
	t.Setenv("UPDATE_INTERVAL", "2m")
	t.Setenv("LISTEN_ADDR", "127.0.0.1:9000")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Sheet.URL != "https://b.example/y.csv" {
		t.Errorf("expected env url, got %q", cfg.Sheet.URL)
	}
	if cfg.Schedule.UpdateInterval.Std() != 2*time.Minute {
		t.Errorf("expected env interval, got %v", cfg.Schedule.UpdateInterval.Std())
	}
	if cfg.Server.Addr != "127.0.0.1:9000" || cfg.Logging.Level != "debug" {
		t.Errorf("unexpected addr/level %q/%q", cfg.Server.Addr, cfg.Logging.Level)
	}
}

func TestLoad_BadEnvDuration(t *testing.T) {
	t.Setenv("RETRY_DELAY", "soon")
	if _, err := Load(filepath.Join(t.TempDir(), "none.yaml")); err == nil {
		t.Error("expected error for invalid RETRY_DELAY")
	}
}

func TestLoad_BadYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", "schedule:\n  update_interval: forever\n")
	if _, err := Load(path); err == nil {
		t.Error("expected parse error for invalid duration")
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		return cfg
	}

	cfg := base()
	cfg.Schedule.RetryDelay = Duration(100 * time.Millisecond)
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for sub-second retry delay")
	}

	cfg = base()
	cfg.Telegram.BotToken = "token"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for bot token without chat id")
	}

	cfg = base()
	cfg.Sheet.URL = "/definitely/not/here.csv"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for missing local sheet file")
	}

	cfg = base()
	cfg.Sheet.URL = writeFile(t, "sheet.csv", "Symbol,Stock Name\n")
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected local file to validate, got %v", err)
	}
}

func TestLoad_MaxWidth(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Display.MaxWidth != "100%" {
		t.Errorf("expected default max width 100%%, got %q", cfg.Display.MaxWidth)
	}

	path := writeFile(t, "config.yaml", "display:\n  max_width: 960px\n")
	cfg, err = Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Display.MaxWidth != "960px" {
		t.Errorf("expected 960px, got %q", cfg.Display.MaxWidth)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("960px should validate: %v", err)
	}

	for _, bad := range []string{"wide", "100", "1px;}body{display:none"} {
		cfg.Display.MaxWidth = bad
		if err := cfg.Validate(); err == nil {
			t.Errorf("expected error for max_width %q", bad)
		}
	}
}
