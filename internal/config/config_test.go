package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_YAMLAndEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
telegram:
  bot_token: "file-token"
  chat_id: "42"
data_source:
  provider: mock
watchlist: [COST, AAPL]
indicators:
  ma_windows: [5, 20]
  ema_days: 12
schedule:
  daily_cron: "0 0 17 * * 1-5"
`)
	t.Setenv("TELEGRAM_BOT_TOKEN", "env-token")
	t.Setenv("MA_WINDOWS", "10,30,200")
	t.Setenv("EMA_SMOOTHING", "2.5")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Telegram.BotToken != "env-token" {
		t.Errorf("bot token: got %q, want env override", cfg.Telegram.BotToken)
	}
	if cfg.Telegram.ChatID != "42" {
		t.Errorf("chat id: got %q", cfg.Telegram.ChatID)
	}
	if cfg.DataSource.Provider != ProviderMock {
		t.Errorf("provider: got %q", cfg.DataSource.Provider)
	}
	if !reflect.DeepEqual(cfg.Watchlist, []string{"COST", "AAPL"}) {
		t.Errorf("watchlist: got %v", cfg.Watchlist)
	}
	if !reflect.DeepEqual(cfg.Indicators.MAWindows, []int{10, 30, 200}) {
		t.Errorf("ma windows: got %v", cfg.Indicators.MAWindows)
	}
	if cfg.Indicators.EMASmoothing != 2.5 || cfg.Indicators.EMADays != 12 {
		t.Errorf("ema: got smoothing=%v days=%d", cfg.Indicators.EMASmoothing, cfg.Indicators.EMADays)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("validate: %v", err)
	}
	if !cfg.TelegramEnabled() {
		t.Error("telegram should be enabled")
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Schedule.DailyCron == "" || cfg.Database.SQLitePath == "" || cfg.Metrics.Addr == "" {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if cfg.Indicators.EMASmoothing != 2 {
		t.Errorf("ema smoothing default: got %v", cfg.Indicators.EMASmoothing)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "watchlist: [COST\n")
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		c := &Config{}
		c.applyDefaults()
		return c
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
		want   string
	}{
		{"unknown provider", func(c *Config) { c.DataSource.Provider = "bloomberg" }, "provider"},
		{"alpaca without keys", func(c *Config) { c.DataSource.Provider = ProviderAlpaca }, "alpaca_key"},
		{"lowercase ticker", func(c *Config) { c.Watchlist = []string{"cost"} }, "watchlist"},
		{"zero window", func(c *Config) { c.Indicators.MAWindows = []int{10, 0} }, "ma_windows"},
		{"negative smoothing", func(c *Config) { c.Indicators.EMASmoothing = -1 }, "ema_smoothing"},
		{"negative days", func(c *Config) { c.Indicators.EMADays = -3 }, "ema_days"},
		{"bad cron", func(c *Config) { c.Schedule.DailyCron = "every day" }, "daily_cron"},
		{"half telegram", func(c *Config) { c.Telegram.BotToken = "x" }, "telegram"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := c.Validate()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}

	if err := valid().Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}
