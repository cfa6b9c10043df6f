package config

import (
	"github.com/spf13/viper"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	// Server
	Port           int    `mapstructure:"PORT"`
	Env            string `mapstructure:"APP_ENV"` // development | production
	WorkerPoolSize int    `mapstructure:"WORKER_POOL_SIZE"`

	// Database — a postgres:// URL selects the Postgres driver, anything
	// else is treated as a local SQLite file path.
	DatabaseURL string `mapstructure:"DATABASE_URL"`

	// Redis — optional. Empty disables the report cache and the async
	// receipt worker; the API works fully without it.
	RedisURL string `mapstructure:"REDIS_URL"`

	// Auth
	JWTSecret          string `mapstructure:"JWT_SECRET"`
	JWTExpirationHours int    `mapstructure:"JWT_EXPIRATION_HOURS"`
	JWTRefreshHours    int    `mapstructure:"JWT_REFRESH_HOURS"`

	// Business
	PDFStoragePath string `mapstructure:"PDF_STORAGE_PATH"`
	BusinessName   string `mapstructure:"BUSINESS_NAME"`
}

// Load reads configuration from environment variables (and optional .env file).
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Sensible defaults for development
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("WORKER_POOL_SIZE", 2)
	viper.SetDefault("DATABASE_URL", "data/horale.db")
	viper.SetDefault("REDIS_URL", "")
	viper.SetDefault("JWT_SECRET", "horale-dev-secret")
	viper.SetDefault("JWT_EXPIRATION_HOURS", 8)
	viper.SetDefault("JWT_REFRESH_HOURS", 24)
	viper.SetDefault("PDF_STORAGE_PATH", "data/receipts")
	viper.SetDefault("BUSINESS_NAME", "Horale")

	// Optional .env file for local development — does not fail if missing
	_ = viper.ReadInConfig()

	cfg := &Config{}
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
