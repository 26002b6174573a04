package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config groups every setting the service reads from the environment
type Config struct {
	App       AppConfig
	DB        DBConfig
	JWT       JWTConfig
	HTTP      HTTPConfig
	Redis     RedisConfig
	Session   SessionConfig
	Inventory InventoryConfig
	Admin     AdminConfig
}

type AppConfig struct {
	Env      string `env:"APP_ENV" envDefault:"development"`
	Name     string `env:"APP_NAME" envDefault:"Expiry Tracker v1.0"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// DBConfig selects the GORM dialect. DATABASE_URL wins over the discrete fields.
type DBConfig struct {
	Driver      string `env:"DB_DRIVER" envDefault:"postgres"` // postgres | sqlite
	DatabaseURL string `env:"DATABASE_URL"`
	Host        string `env:"DB_HOST" envDefault:"localhost"`
	Port        int    `env:"DB_PORT" envDefault:"5432"`
	User        string `env:"DB_USER" envDefault:"postgres"`
	Password    string `env:"DB_PASSWORD"`
	Name        string `env:"DB_NAME" envDefault:"expiry_tracker"`
	SSLMode     string `env:"DB_SSLMODE" envDefault:"disable"`
	TimeZone    string `env:"DB_TIMEZONE" envDefault:"UTC"`
	SQLitePath  string `env:"SQLITE_PATH" envDefault:"expiry_tracker.db"`
}

// DSN returns the connection string for the configured driver
func (c DBConfig) DSN() string {
	if c.Driver == "sqlite" {
		return c.SQLitePath
	}
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=%s",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode, c.TimeZone,
	)
}

type JWTConfig struct {
	Secret string        `env:"JWT_SECRET" envDefault:"your-super-secret-key-change-in-production"`
	Issuer string        `env:"JWT_ISSUER" envDefault:"go-expiry-tracker"`
	TTL    time.Duration `env:"JWT_TTL" envDefault:"24h"`
}

type HTTPConfig struct {
	Host        string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port        int    `env:"PORT" envDefault:"3000"`
	CORSOrigins string `env:"CORS_ORIGINS" envDefault:"*"`
}

// Addr returns the listen address (host:port)
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// RedisConfig is optional; an empty Addr disables the catalog cache.
type RedisConfig struct {
	Addr     string        `env:"REDIS_ADDR"`
	Password string        `env:"REDIS_PASSWORD"`
	DB       int           `env:"REDIS_DB" envDefault:"0"`
	TTL      time.Duration `env:"CATALOG_CACHE_TTL" envDefault:"1h"`
}

type SessionConfig struct {
	// 0 disables the inactivity check
	IdleTimeout time.Duration `env:"SESSION_IDLE_TIMEOUT" envDefault:"0s"`
}

type InventoryConfig struct {
	ExpiryWarningDays int `env:"EXPIRY_WARNING_DAYS" envDefault:"7"`
}

// AdminConfig is the account seeded on first start when no admin exists
type AdminConfig struct {
	Email    string `env:"ADMIN_EMAIL" envDefault:"admin@example.com"`
	Password string `env:"ADMIN_PASSWORD" envDefault:"admin123"`
}

// Load parses the process environment into a Config
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.DB.Driver != "postgres" && cfg.DB.Driver != "sqlite" {
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DB.Driver)
	}
	return &cfg, nil
}
