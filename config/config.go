package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/gbce/market"
)

// Config represents the complete exchange configuration
type Config struct {
	Exchange ExchangeConfig `json:"exchange" yaml:"exchange"`
	Equities []EquityConfig `json:"equities" yaml:"equities"`
	Journal  JournalConfig  `json:"journal" yaml:"journal"`
	Log      LogConfig      `json:"log" yaml:"log"`
}

// ExchangeConfig contains the metric parameters
type ExchangeConfig struct {
	Name   string `json:"name" yaml:"name"`
	Window string `json:"window" yaml:"window"` // e.g., "5m"
}

// WindowDuration converts the window string to time.Duration
func (e ExchangeConfig) WindowDuration() (time.Duration, error) {
	if e.Window == "" {
		return 5 * time.Minute, nil
	}
	return time.ParseDuration(e.Window)
}

// EquityConfig describes one listed stock
type EquityConfig struct {
	Symbol        string   `json:"symbol" yaml:"symbol"`
	Type          string   `json:"type" yaml:"type"` // "Common" or "Preferred"
	LastDividend  float64  `json:"last_dividend" yaml:"last_dividend"`
	ParValue      float64  `json:"par_value" yaml:"par_value"`
	FixedDividend *float64 `json:"fixed_dividend,omitempty" yaml:"fixed_dividend,omitempty"`
}

func (e EquityConfig) Listing() market.Listing {
	return market.Listing{
		Symbol:        e.Symbol,
		Type:          e.Type,
		LastDividend:  e.LastDividend,
		ParValue:      e.ParValue,
		FixedDividend: e.FixedDividend,
	}
}

// JournalConfig contains journaling parameters
type JournalConfig struct {
	Type       string `json:"type" yaml:"type"` // "none", "csv" or "sqlite"
	TradesFile string `json:"trades_file,omitempty" yaml:"trades_file,omitempty"`
	DBPath     string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// LogConfig contains logger parameters
type LogConfig struct {
	Level       string `json:"level" yaml:"level"` // debug, info, warn, error
	Development bool   `json:"development,omitempty" yaml:"development,omitempty"`
}

// Build returns a zap logger for the configuration.
func (l LogConfig) Build() (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if l.Level != "" {
		if err := level.UnmarshalText([]byte(l.Level)); err != nil {
			return nil, fmt.Errorf("log level %q: %w", l.Level, err)
		}
	}

	zc := zap.NewProductionConfig()
	if l.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

// LoadFromFile loads configuration from a file (JSON or YAML based on extension)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	w, err := c.Exchange.WindowDuration()
	if err != nil {
		return fmt.Errorf("exchange.window: %w", err)
	}
	if w <= 0 {
		return fmt.Errorf("exchange.window must be positive")
	}
	if len(c.Equities) == 0 {
		return fmt.Errorf("equities: at least one equity is required")
	}

	seen := make(map[string]bool, len(c.Equities))
	for i, e := range c.Equities {
		if _, err := e.Listing().Equity(); err != nil {
			return fmt.Errorf("equities[%d]: %w", i, err)
		}
		if seen[e.Symbol] {
			return fmt.Errorf("equities[%d]: duplicate symbol %s", i, e.Symbol)
		}
		seen[e.Symbol] = true
	}

	switch c.Journal.Type {
	case "", "none":
	case "csv":
		if c.Journal.TradesFile == "" {
			return fmt.Errorf("journal trades_file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for SQLite type")
		}
	default:
		return fmt.Errorf("journal.type must be 'none', 'csv' or 'sqlite'")
	}

	if c.Log.Level != "" {
		var level zapcore.Level
		if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
			return fmt.Errorf("log.level: %w", err)
		}
	}
	return nil
}

// Default returns the Global Beverage Corporation Exchange listing with a
// five minute window and no journal.
func Default() *Config {
	cfg := &Config{
		Exchange: ExchangeConfig{
			Name:   "GBCE",
			Window: "5m",
		},
		Journal: JournalConfig{
			Type: "none",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
	for _, l := range market.GBCE() {
		cfg.Equities = append(cfg.Equities, EquityConfig{
			Symbol:        l.Symbol,
			Type:          l.Type,
			LastDividend:  l.LastDividend,
			ParValue:      l.ParValue,
			FixedDividend: l.FixedDividend,
		})
	}
	return cfg
}
