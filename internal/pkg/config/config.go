package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Feed     FeedConfig     `yaml:"feed"`
	Fetcher  FetcherConfig  `yaml:"fetcher"`
	Pipeline PipelineConfig `yaml:"pipeline"`
	Postgres PostgresConfig `yaml:"postgres"`
	Redis    RedisConfig    `yaml:"redis"`
	Telegram TelegramConfig `yaml:"telegram"`
	Enrich   EnrichConfig   `yaml:"enrich"`
	Export   ExportConfig   `yaml:"export"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type FeedConfig struct {
	RSSURL   string        `yaml:"rss_url"`
	SiteURL  string        `yaml:"site_url"`  // Root page visited for the cookie-session fallback
	Interval time.Duration `yaml:"interval"`  // Time between normalization runs
	MaxItems int           `yaml:"max_items"` // Max feed items processed per run (0 = all)
	MaxAge   time.Duration `yaml:"max_age"`   // Drop items older than this (0 = keep all)
}

type FetcherConfig struct {
	Timeout     time.Duration     `yaml:"timeout"`      // Per-attempt RSS request timeout
	PageTimeout time.Duration     `yaml:"page_timeout"` // Headless browser page load timeout
	UserAgent   string            `yaml:"user_agent"`   // Browser UA for article pages
	Headers     map[string]string `yaml:"headers"`
}

// PipelineConfig overrides the built-in recognition dictionaries.
// Empty lists fall back to the compiled-in defaults.
type PipelineConfig struct {
	SportKeywords    []SportKeyword `yaml:"sport_keywords"`
	TeamKeywords     []TeamKeyword  `yaml:"team_keywords"`
	JunkPatterns     []string       `yaml:"junk_patterns"`
	TrendKeywords    []string       `yaml:"trend_keywords"`
	PickKeywords     []string       `yaml:"pick_keywords"`
	AnalysisKeywords []string       `yaml:"analysis_keywords"`
	InsightKeywords  []string       `yaml:"insight_keywords"`
}

// SportKeyword maps a surface form to a canonical sport key.
// List order is the recognizer's scan order.
type SportKeyword struct {
	Keyword string `yaml:"keyword"`
	Sport   string `yaml:"sport"`
}

// TeamKeyword maps a surface form to a canonical team display name.
type TeamKeyword struct {
	Keyword string `yaml:"keyword"`
	Team    string `yaml:"team"`
}

type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string        `yaml:"addr"`
	Password string        `yaml:"password"`
	DB       int           `yaml:"db"`
	TTL      time.Duration `yaml:"ttl"`
}

type TelegramConfig struct {
	BotToken string `yaml:"bot_token"`
	ChatID   int64  `yaml:"chat_id"`
}

type EnrichConfig struct {
	Provider string `yaml:"provider"` // "mock" or empty = auto-detect by api_key
	APIKey   string `yaml:"api_key"`
}

type ExportConfig struct {
	Path string `yaml:"path"` // Snapshot JSON output path (empty = no export)
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"` // Additional JSON log file (empty = stdout only)
}

func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config.applyEnvOverrides()
	return &config, nil
}

// applyEnvOverrides fills empty secret fields from the environment,
// so tokens and DSNs do not have to be committed into configs.
func (c *Config) applyEnvOverrides() {
	if c.Postgres.DSN == "" {
		c.Postgres.DSN = os.Getenv("POSTGRES_DSN")
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = os.Getenv("REDIS_ADDR")
	}
	if c.Redis.Password == "" {
		c.Redis.Password = os.Getenv("REDIS_PASSWORD")
	}
	if c.Telegram.BotToken == "" {
		c.Telegram.BotToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	}
	if c.Telegram.ChatID == 0 {
		if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
			if id, err := strconv.ParseInt(v, 10, 64); err == nil {
				c.Telegram.ChatID = id
			}
		}
	}
	if c.Enrich.APIKey == "" {
		c.Enrich.APIKey = os.Getenv("ENRICH_API_KEY")
	}
}
