package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Environments the service distinguishes between.
const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

// Config keeps runtime settings for the service.
type Config struct {
	Env  string `env:"ENV" env-default:"local"`
	HTTP HTTPConfig
	// DatabaseURL is the SQLite file path (or DSN).
	DatabaseURL string `env:"DATABASE_URL" env-default:"taskflow.db"`
	// SnapshotTime is the local HH:MM at which daily performance
	// snapshots are built.
	SnapshotTime string `env:"SNAPSHOT_TIME" env-default:"23:50"`
	// TelegramToken enables the daily digest notifier when set.
	TelegramToken string `env:"TELEGRAM_TOKEN"`
}

type HTTPConfig struct {
	Host            string        `env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port            string        `env:"HTTP_PORT" env-default:"8080"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"5s"`
}

// Load reads configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return cfg, fmt.Errorf("read env: %w", err)
	}

	switch cfg.Env {
	case EnvLocal, EnvDev, EnvProd:
	default:
		return cfg, fmt.Errorf("unknown env %q", cfg.Env)
	}

	return cfg, nil
}
