package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"

	"TrendScope/internal/symbol"
)

// Config holds all application configuration.
type Config struct {
	Telegram struct {
		BotToken string `yaml:"bot_token" envconfig:"TELEGRAM_BOT_TOKEN"`
		ChatID   string `yaml:"chat_id" envconfig:"TELEGRAM_CHAT_ID"`
	} `yaml:"telegram"`
	DataSource struct {
		Provider     string `yaml:"provider" envconfig:"DATA_PROVIDER"`
		AlpacaKey    string `yaml:"alpaca_key" envconfig:"ALPACA_API_KEY"`
		AlpacaSecret string `yaml:"alpaca_secret" envconfig:"ALPACA_SECRET_KEY"`
		LiveQuote    bool   `yaml:"live_quote" envconfig:"LIVE_QUOTE"`
	} `yaml:"data_source"`
	Watchlist  []string `yaml:"watchlist" envconfig:"WATCHLIST"`
	Indicators struct {
		MAWindows    []int   `yaml:"ma_windows" envconfig:"MA_WINDOWS"`
		EMASmoothing float64 `yaml:"ema_smoothing" envconfig:"EMA_SMOOTHING"`
		EMADays      int     `yaml:"ema_days" envconfig:"EMA_DAYS"`
	} `yaml:"indicators"`
	Schedule struct {
		DailyCron string `yaml:"daily_cron" envconfig:"CRON_DAILY"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path" envconfig:"SQLITE_PATH"`
	} `yaml:"database"`
	Metrics struct {
		Addr string `yaml:"addr" envconfig:"METRICS_ADDR"`
	} `yaml:"metrics"`
	Proxy string `yaml:"proxy" envconfig:"HTTPS_PROXY"`
}

// Provider names accepted in data_source.provider.
const (
	ProviderYahoo  = "yahoo"
	ProviderAlpaca = "alpaca"
	ProviderMock   = "mock"
)

// cronParser matches the seconds-enabled parser used by the scheduler.
var cronParser = cron.NewParser(cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// Load reads config from a YAML file, then a .env file in the working
// directory, then applies environment variable overrides and defaults.
// Both files are optional.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("environment overrides: %w", err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.DataSource.Provider == "" {
		c.DataSource.Provider = ProviderYahoo
	}
	if len(c.Watchlist) == 0 {
		c.Watchlist = []string{"COST"}
	}
	if len(c.Indicators.MAWindows) == 0 {
		c.Indicators.MAWindows = []int{10, 21, 50}
	}
	if c.Indicators.EMASmoothing == 0 {
		c.Indicators.EMASmoothing = 2
	}
	if c.Indicators.EMADays == 0 {
		c.Indicators.EMADays = 20
	}
	if c.Schedule.DailyCron == "" {
		c.Schedule.DailyCron = "0 30 16 * * 1-5"
	}
	if c.Database.SQLitePath == "" {
		c.Database.SQLitePath = "data/trendscope.db"
	}
	if c.Metrics.Addr == "" {
		c.Metrics.Addr = ":9108"
	}
}

// Validate checks the settings the analysis pipeline depends on. Telegram is
// optional; without it reports are only logged.
func (c *Config) Validate() error {
	switch c.DataSource.Provider {
	case ProviderYahoo, ProviderMock:
	case ProviderAlpaca:
		if c.DataSource.AlpacaKey == "" || c.DataSource.AlpacaSecret == "" {
			return fmt.Errorf("data_source.alpaca_key and alpaca_secret are required for provider %q", ProviderAlpaca)
		}
	default:
		return fmt.Errorf("data_source.provider %q is not one of yahoo, alpaca, mock", c.DataSource.Provider)
	}
	for _, s := range c.Watchlist {
		if !symbol.Valid(s) {
			return fmt.Errorf("watchlist: %q is not an uppercase ticker symbol", s)
		}
	}
	for _, w := range c.Indicators.MAWindows {
		if w <= 0 {
			return fmt.Errorf("indicators.ma_windows: window %d must be positive", w)
		}
	}
	if c.Indicators.EMASmoothing <= 0 {
		return fmt.Errorf("indicators.ema_smoothing must be positive")
	}
	if c.Indicators.EMADays < 0 {
		return fmt.Errorf("indicators.ema_days must not be negative")
	}
	if _, err := cronParser.Parse(c.Schedule.DailyCron); err != nil {
		return fmt.Errorf("schedule.daily_cron: %w", err)
	}
	if (c.Telegram.BotToken == "") != (c.Telegram.ChatID == "") {
		return fmt.Errorf("telegram.bot_token and telegram.chat_id must be set together")
	}
	return nil
}

// TelegramEnabled reports whether reports should be pushed to Telegram.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}
