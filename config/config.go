// Package config loads and validates session configuration files.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents a complete trading session configuration.
type Config struct {
	Account AccountConfig `json:"account" yaml:"account"`
	Catalog []QuoteConfig `json:"catalog" yaml:"catalog"`
	Journal JournalConfig `json:"journal" yaml:"journal"`
	Session []Step        `json:"session,omitempty" yaml:"session,omitempty"`
}

// AccountConfig contains account initialization parameters.
type AccountConfig struct {
	ID          string  `json:"id" yaml:"id"`
	Currency    string  `json:"currency" yaml:"currency"`
	OpeningCash float64 `json:"opening_cash" yaml:"opening_cash"`
}

// QuoteConfig is one price catalog entry.
type QuoteConfig struct {
	Symbol string  `json:"symbol" yaml:"symbol"`
	Price  float64 `json:"price" yaml:"price"`
}

// JournalConfig selects the settlement sink.
type JournalConfig struct {
	Type   string `json:"type" yaml:"type"` // "memory", "csv" or "sqlite"
	File   string `json:"file,omitempty" yaml:"file,omitempty"`
	DBPath string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
}

// Step is one scripted session action. Buy/sell take a symbol;
// deposit/withdraw take an amount; settle/cancel act on the oldest pending
// order, narrowed to a symbol when one is given.
type Step struct {
	Action string  `json:"action" yaml:"action"`
	Symbol string  `json:"symbol,omitempty" yaml:"symbol,omitempty"`
	Amount float64 `json:"amount,omitempty" yaml:"amount,omitempty"`
}

// LoadFromFile loads configuration from a file (JSON or YAML based on content).
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

// SaveToFile saves configuration to a file (JSON or YAML based on extension).
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

var stepActions = map[string]bool{
	"deposit":  true,
	"withdraw": true,
	"buy":      true,
	"sell":     true,
	"settle":   true,
	"cancel":   true,
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Account.Currency == "" {
		return fmt.Errorf("account.currency is required")
	}
	if c.Account.OpeningCash < 0 {
		return fmt.Errorf("account.opening_cash must not be negative")
	}
	if len(c.Catalog) == 0 {
		return fmt.Errorf("catalog must list at least one quote")
	}
	seen := map[string]bool{}
	for i, q := range c.Catalog {
		if q.Symbol == "" {
			return fmt.Errorf("catalog[%d]: symbol is required", i)
		}
		if seen[q.Symbol] {
			return fmt.Errorf("catalog[%d]: duplicate symbol %s", i, q.Symbol)
		}
		seen[q.Symbol] = true
		if q.Price <= 0 {
			return fmt.Errorf("catalog[%d]: price must be positive", i)
		}
	}
	switch c.Journal.Type {
	case "memory":
	case "csv":
		if c.Journal.File == "" {
			return fmt.Errorf("journal.file required for CSV type")
		}
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal.db_path required for SQLite type")
		}
	default:
		return fmt.Errorf("journal.type must be 'memory', 'csv' or 'sqlite'")
	}
	for i, s := range c.Session {
		if !stepActions[s.Action] {
			return fmt.Errorf("session[%d]: unknown action %q", i, s.Action)
		}
		switch s.Action {
		case "deposit", "withdraw":
			if s.Amount <= 0 {
				return fmt.Errorf("session[%d]: %s amount must be positive", i, s.Action)
			}
		case "buy", "sell":
			if !seen[s.Symbol] {
				return fmt.Errorf("session[%d]: %s symbol %q not in catalog", i, s.Action, s.Symbol)
			}
		}
	}
	return nil
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Account: AccountConfig{
			ID:          "PAPER-001",
			Currency:    "USD",
			OpeningCash: 10000,
		},
		Catalog: []QuoteConfig{
			{Symbol: "AAPL", Price: 150},
			{Symbol: "GOOGL", Price: 2800},
			{Symbol: "AMZN", Price: 3300},
		},
		Journal: JournalConfig{
			Type: "memory",
		},
		Session: []Step{
			{Action: "deposit", Amount: 1000},
			{Action: "buy", Symbol: "AAPL"},
			{Action: "settle"},
			{Action: "withdraw", Amount: 1000},
		},
	}
}
