// Package config loads service configuration from the environment.
package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all server configuration, parsed from VEILARENA_* variables
type Config struct {
	Host string `env:"VEILARENA_HOST" envDefault:""`
	Port int    `env:"VEILARENA_PORT" envDefault:"8080"`

	// StorageType selects the ledger backend: "memory" or "redis"
	StorageType string `env:"VEILARENA_STORAGE" envDefault:"memory"`
	RedisURL    string `env:"VEILARENA_REDIS_URL" envDefault:""`

	// BlockTime is the simulated chain's block interval
	BlockTime time.Duration `env:"VEILARENA_BLOCK_TIME" envDefault:"12s"`

	SessionDuration time.Duration `env:"VEILARENA_SESSION_DURATION" envDefault:"24h"`

	LogLevel string `env:"VEILARENA_LOG_LEVEL" envDefault:"info"`
}

// Load parses configuration from the environment
func Load() (Config, error) {
	return env.ParseAs[Config]()
}
