package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	mb "github.com/saeidalz13/battleship-rules/models/battleship"
)

const (
	StageProd = "prod"
	StageDev  = "dev"
)

type Config struct {
	Stage                  string        `env:"STAGE,required"`
	Port                   int           `env:"PORT" envDefault:"8000"`
	DatabaseURL            string        `env:"DATABASE_URL"`
	MigrationDir           string        `env:"MIGRATION_DIR" envDefault:"file://db/migration"`
	FleetRuleFile          string        `env:"FLEET_RULE_FILE"`
	SessionCleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"20m"`
}

// Load reads .env outside of prod and then parses the environment.
func Load(envFile string) (Config, error) {
	if os.Getenv("STAGE") != StageProd {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("load env file: %w", err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if cfg.Stage != StageDev && cfg.Stage != StageProd {
		return Config{}, fmt.Errorf("stage must be either dev or prod, got: %s", cfg.Stage)
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("invalid port: %d", cfg.Port)
	}
	if cfg.SessionCleanupInterval <= 0 {
		return Config{}, fmt.Errorf("session cleanup interval must be positive, got: %s", cfg.SessionCleanupInterval)
	}
	return cfg, nil
}

// LoadFleetRule reads a fleet rule such as:
//
//	ships:
//	  4: 1
//	  3: 2
//	straight: true
func LoadFleetRule(path string) (mb.FleetRule, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return mb.FleetRule{}, err
	}

	var rule mb.FleetRule
	if err := yaml.Unmarshal(b, &rule); err != nil {
		return mb.FleetRule{}, fmt.Errorf("parse fleet rule %s: %w", path, err)
	}

	for length, count := range rule.Ships {
		if length < 1 || length > mb.GridSize || count < 0 {
			return mb.FleetRule{}, fmt.Errorf("invalid fleet rule entry %d: %d", length, count)
		}
	}
	return rule, nil
}
