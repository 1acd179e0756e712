package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`

	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME" envDefault:"lastmile"`
	DBSslMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	// An empty RedisAddr keeps locks and events inside the process.
	RedisAddr          string        `env:"REDIS_ADDR"`
	RedisPassword      string        `env:"REDIS_PASSWORD"`
	RedisDB            int           `env:"REDIS_DB" envDefault:"0"`
	RedisEventsChannel string        `env:"REDIS_EVENTS_CHANNEL" envDefault:"lastmile.events"`
	LockTTL            time.Duration `env:"LOCK_TTL" envDefault:"30s"`
	TrackingCacheTTL   time.Duration `env:"TRACKING_CACHE_TTL" envDefault:"24h"`

	LockTimeout           time.Duration `env:"LOCK_TIMEOUT" envDefault:"5s"`
	BulkAssignConcurrency int           `env:"BULK_ASSIGN_CONCURRENCY" envDefault:"4"`

	ReconcileSchedule          string `env:"RECONCILE_SCHEDULE" envDefault:"@every 1h"`
	DriverCounterResetSchedule string `env:"DRIVER_COUNTER_RESET_SCHEDULE" envDefault:"0 0 * * *"`

	LogLevel string `env:"LOG_LEVEL"`
	AppEnv   string `env:"APP_ENV" envDefault:"development"`
}

// LoadConfig reads an optional .env file and then the environment. Values
// already present in the environment win over the file.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	var config Config
	if err := env.Parse(&config); err != nil {
		return Config{}, fmt.Errorf("parse env config: %w", err)
	}
	if config.LockTimeout <= 0 {
		return Config{}, fmt.Errorf("LOCK_TIMEOUT must be positive, got %s", config.LockTimeout)
	}
	return config, nil
}

func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
