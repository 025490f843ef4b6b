package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config is the full server configuration: process settings from the
// environment plus a balance section that can be overridden from a YAML
// file.
type Config struct {
	Server  Server  `yaml:"server"`
	Balance Balance `yaml:"balance"`
}

// Server holds process-level settings, filled from the environment.
type Server struct {
	Addr    string `yaml:"addr" env:"MONEYDECK_ADDR" envDefault:":8712"`
	DataDir string `yaml:"data_dir" env:"MONEYDECK_DATA_DIR" envDefault:"data"`
	DBPath  string `yaml:"db_path" env:"MONEYDECK_DB_PATH" envDefault:"data/runs.db"`
}

// Load builds the configuration: defaults, then the YAML file at path (if
// it exists), then environment overrides on top.
func Load(path string) (*Config, error) {
	cfg := &Config{Balance: Default()}

	if path != "" {
		b, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// no file is fine, defaults apply
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(b, cfg); err != nil {
				return nil, fmt.Errorf("parse config: %w", err)
			}
		}
	}

	if err := env.Parse(&cfg.Server); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	cfg.Balance.applyDefaults()
	return cfg, nil
}

// applyDefaults backfills zero values a sparse YAML file left behind.
func (b *Balance) applyDefaults() {
	d := Default()
	if b.RareChance == 0 {
		b.RareChance = d.RareChance
	}
	if b.WildChance == 0 {
		b.WildChance = d.WildChance
	}
	if b.MaxHand == 0 {
		b.MaxHand = d.MaxHand
	}
	if b.Years == 0 {
		b.Years = d.Years
	}
	if b.StartIncome == 0 {
		b.StartIncome = d.StartIncome
	}
	if b.StartExpenses == 0 {
		b.StartExpenses = d.StartExpenses
	}
}
