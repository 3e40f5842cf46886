package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	AppName    = "Boil it down"
	AppVersion = "1.0.0"
)

// Config is read from the environment once at startup.
type Config struct {
	Addr      string `env:"BOILDOWN_ADDR"       envDefault:":8080"`
	DataDir   string `env:"BOILDOWN_DATA_DIR"   envDefault:"./data"`
	DBPath    string `env:"BOILDOWN_DB_PATH"`
	StaticDir string `env:"BOILDOWN_STATIC_DIR"`
	LogLevel  string `env:"BOILDOWN_LOG_LEVEL"  envDefault:"info"`
	NodeID    int64  `env:"BOILDOWN_NODE_ID"    envDefault:"1"`

	// SettingsToken guards /api/settings; the routes are off while it is empty.
	SettingsToken string `env:"BOILDOWN_SETTINGS_TOKEN"`

	AI      AIConfig
	History HistoryConfig
}

// AIConfig holds environment defaults for the summarization provider.
// Values saved through the settings API take precedence.
type AIConfig struct {
	Provider     string `env:"BOILDOWN_AI_PROVIDER"    envDefault:"openai"`
	APIKey       string `env:"BOILDOWN_AI_API_KEY"`
	OpenAIAPIKey string `env:"OPENAI_API_KEY"`
	BaseURL      string `env:"BOILDOWN_AI_BASE_URL"`
	Model        string `env:"BOILDOWN_AI_MODEL"       envDefault:"gpt-3.5-turbo"`
	MaxRetries   int    `env:"BOILDOWN_AI_MAX_RETRIES" envDefault:"3"`
	Proxy        string `env:"BOILDOWN_AI_PROXY"`
}

// HistoryConfig tunes the history view and in-memory client sessions.
type HistoryConfig struct {
	MaxCollapsedLines int           `env:"BOILDOWN_HISTORY_MAX_LINES" envDefault:"4"`
	MaxCollapsedChars int           `env:"BOILDOWN_HISTORY_MAX_CHARS" envDefault:"500"`
	SessionIdle       time.Duration `env:"BOILDOWN_SESSION_IDLE"      envDefault:"30m"`
	SessionSweep      time.Duration `env:"BOILDOWN_SESSION_SWEEP"     envDefault:"5m"`
}

// Load parses the environment and fills derived values.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}

	cfg.DataDir = filepath.Clean(cfg.DataDir)
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(cfg.DataDir, "boildown.db")
	}
	cfg.DBPath = filepath.Clean(cfg.DBPath)
	if cfg.StaticDir != "" {
		cfg.StaticDir = filepath.Clean(cfg.StaticDir)
	}

	cfg.AI.APIKey = strings.TrimSpace(cfg.AI.APIKey)
	if cfg.AI.APIKey == "" {
		cfg.AI.APIKey = strings.TrimSpace(cfg.AI.OpenAIAPIKey)
	}
	if cfg.AI.MaxRetries < 0 {
		cfg.AI.MaxRetries = 0
	}

	if cfg.NodeID < 0 || cfg.NodeID > 1023 {
		return cfg, fmt.Errorf("BOILDOWN_NODE_ID must be within 0-1023, got %d", cfg.NodeID)
	}
	if cfg.History.MaxCollapsedLines <= 0 || cfg.History.MaxCollapsedChars <= 0 {
		return cfg, fmt.Errorf("history collapse thresholds must be positive")
	}
	if cfg.History.SessionIdle <= 0 || cfg.History.SessionSweep <= 0 {
		return cfg, fmt.Errorf("BOILDOWN_SESSION_IDLE and BOILDOWN_SESSION_SWEEP must be positive")
	}
	cfg.SettingsToken = strings.TrimSpace(cfg.SettingsToken)

	return cfg, nil
}
