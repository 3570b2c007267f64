package server

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/almartin82/sdschooldata/internal/contract"
)

// Config is the MCP server's environment configuration.
type Config struct {
	// DefaultLoader applies to contracts that do not name a loader.
	DefaultLoader string `env:"SURFCHECK_LOADER" envDefault:"packages"`
	LogLevel      string `env:"SURFCHECK_LOG_LEVEL" envDefault:"error"`
}

// LoadConfig reads Config from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if _, err := contract.NewLoader(cfg.DefaultLoader, ""); err != nil {
		return Config{}, fmt.Errorf("SURFCHECK_LOADER: %w", err)
	}
	return cfg, nil
}
