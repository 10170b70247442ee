package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config captures application runtime configuration loaded from environment variables.
type Config struct {
	AppName  string `env:"APP_NAME" envDefault:"LifeConnect"`
	AppEnv   string `env:"APP_ENV" envDefault:"development"`
	Port     string `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	DatabaseURL string `env:"DATABASE_URL"`
	RedisURL    string `env:"REDIS_URL"`

	JWTSecret      string        `env:"JWT_SECRET"`
	AccessTokenTTL time.Duration `env:"ACCESS_TOKEN_TTL" envDefault:"24h"`

	// SendGridAPIKey may be empty; without it outgoing mail is written to the
	// logger instead of the provider.
	SendGridAPIKey string `env:"SENDGRID_API_KEY"`
	MailFrom       string `env:"MAIL_FROM" envDefault:"no-reply@lifeconnect.example"`
	MailFromName   string `env:"MAIL_FROM_NAME" envDefault:"LifeConnect"`

	// MailSendTimeout bounds each individual provider call; expiry counts as a
	// failure for that recipient only.
	MailSendTimeout time.Duration `env:"MAIL_SEND_TIMEOUT" envDefault:"10s"`

	// DedupWindow is how long an identical blood-request submission is rejected
	// as a duplicate. Zero disables the guard.
	DedupWindow time.Duration `env:"DEDUP_WINDOW" envDefault:"10m"`

	LoginRatePerMin int           `env:"LOGIN_RATE_PER_MIN" envDefault:"5"`
	ShutdownPeriod  time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load reads configuration values from the environment and populates a Config instance.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL must be set")
	}
	if cfg.RedisURL == "" {
		return Config{}, fmt.Errorf("REDIS_URL must be set")
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET must be set")
	}
	if cfg.MailSendTimeout <= 0 {
		return Config{}, fmt.Errorf("MAIL_SEND_TIMEOUT must be positive")
	}

	return cfg, nil
}

// Address returns the listen address in the format Fiber expects.
func (c Config) Address() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return fmt.Sprintf(":%s", c.Port)
}
