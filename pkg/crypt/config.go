package crypt

import (
	"errors"

	"github.com/caarlos0/env/v11"
	_ "github.com/joho/godotenv/autoload" // Load .env file automatically
)

// Config holds the environment-driven settings for the encryption engine.
type Config struct {
	MasterKey string `env:"ENCRYPTION_MASTER_KEY,required"` // Master secret for key derivation
	Salt      string `env:"ENCRYPTION_SALT"`                // Key-derivation salt; DefaultSalt when unset
}

// LoadConfig reads the engine configuration from the environment. A missing
// or empty ENCRYPTION_MASTER_KEY fails closed with ErrMissingMasterSecret.
// Loading is intentionally not cached: constructing an Engine is a rare,
// coordinated administrative action and key rotation needs a fresh read.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Join(ErrMissingMasterSecret, err)
	}
	if cfg.MasterKey == "" {
		return Config{}, ErrMissingMasterSecret
	}
	return cfg, nil
}
