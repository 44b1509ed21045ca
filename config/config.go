// Package config loads the application configuration from YAML or JSON.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/moneyverse/feed"
)

// Config is the complete application configuration.
type Config struct {
	Data   DataConfig   `json:"data" yaml:"data"`
	Market MarketConfig `json:"market" yaml:"market"`
	Log    LogConfig    `json:"log" yaml:"log"`
}

// DataConfig locates the local persistence files.
type DataConfig struct {
	StorePath   string `json:"store_path" yaml:"store_path"`
	JournalPath string `json:"journal_path,omitempty" yaml:"journal_path,omitempty"`
}

// MarketConfig controls the market data feed.
type MarketConfig struct {
	BaseURL         string   `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	AssetIDs        []string `json:"asset_ids,omitempty" yaml:"asset_ids,omitempty"`
	RefreshInterval string   `json:"refresh_interval" yaml:"refresh_interval"` // e.g. "1m", "30s"
}

// LogConfig controls logging output.
type LogConfig struct {
	Level string `json:"level" yaml:"level"`
}

// ParseRefreshInterval converts the interval string to a duration.
func (m MarketConfig) ParseRefreshInterval() (time.Duration, error) {
	if m.RefreshInterval == "" {
		return time.Minute, nil
	}
	return time.ParseDuration(m.RefreshInterval)
}

// LoadFromFile loads configuration from a file, trying YAML first and
// falling back to JSON.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		if jerr := json.Unmarshal(data, cfg); jerr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SaveToFile writes the configuration, format chosen by extension.
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
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

// Validate checks the configuration for obvious mistakes.
func (c *Config) Validate() error {
	if c.Data.StorePath == "" {
		return fmt.Errorf("data.store_path is required")
	}
	if len(c.Market.AssetIDs) == 0 {
		return fmt.Errorf("market.asset_ids must list at least one asset")
	}
	if _, err := c.Market.ParseRefreshInterval(); err != nil {
		return fmt.Errorf("market.refresh_interval: %w", err)
	}
	switch c.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error")
	}
	return nil
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Data: DataConfig{
			StorePath:   "./moneyverse.sqlite",
			JournalPath: "./moneyverse-journal.sqlite",
		},
		Market: MarketConfig{
			BaseURL:         feed.DefaultBaseURL,
			AssetIDs:        feed.DefaultAssetIDs,
			RefreshInterval: "1m",
		},
		Log: LogConfig{Level: "info"},
	}
}
