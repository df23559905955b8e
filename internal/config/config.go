package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	Env         string `env:"ENV" envDefault:"development"`
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`
	LogMode     string `env:"LOG_MODE"`

	JWTSecret       string        `env:"JWT_SECRET,required,notEmpty"`
	JWTAccessExpiry time.Duration `env:"JWT_ACCESS_EXPIRY" envDefault:"15m"`

	BaseURL string `env:"BASE_URL" envDefault:"http://localhost:8080"`

	// MaxUploadBytes is the site-wide upload limit applied to every editor field.
	MaxUploadBytes int64  `env:"MAX_UPLOAD_BYTES" envDefault:"104857600"`
	DefaultLocale  string `env:"DEFAULT_LOCALE" envDefault:"en-US"`
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.MaxUploadBytes < 0 {
		return nil, fmt.Errorf("MAX_UPLOAD_BYTES must not be negative, got %d", cfg.MaxUploadBytes)
	}
	if cfg.LogMode == "" {
		cfg.LogMode = cfg.Env
	}
	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// FileBaseURL is the public prefix of the draftfile and pluginfile routes.
func (c *Config) FileBaseURL() string {
	return c.BaseURL + "/api/v1"
}
