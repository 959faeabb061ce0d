// Package config loads service settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	HTTP     HTTPConfig
	PG       PGConfig
	Redis    RedisConfig
	Auth     AuthConfig
	Accounts AccountsConfig
}

type AppConfig struct {
	Env string `env:"APP_ENV" env-default:"dev"`
}

type HTTPConfig struct {
	Port         string        `env:"PORT" env-default:"8080"`
	ReadTimeout  time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"10s"`
	IdleTimeout  time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`

	AllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" env-separator:"," env-default:"http://localhost:3000"`
}

type PGConfig struct {
	DSN string `env:"DATABASE_URL" env-required:"true"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD" env-default:""`
	DB       int    `env:"REDIS_DB" env-default:"0"`

	// ViewTTL bounds how long a cached projection may outlive a missed refresh.
	ViewTTL time.Duration `env:"VIEW_CACHE_TTL" env-default:"10m"`
	// StreamMaxLen caps each event stream; 0 disables trimming.
	StreamMaxLen int64 `env:"EVENT_STREAM_MAX_LEN" env-default:"10000"`
}

type AuthConfig struct {
	JWTSecret string        `env:"JWT_SECRET" env-required:"true"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" env-default:"24h"`
}

// AccountsConfig is the inclusive range account numbers are drawn from.
type AccountsConfig struct {
	NumberMin   int64 `env:"ACCOUNT_NUMBER_MIN" env-default:"10000000"`
	NumberMax   int64 `env:"ACCOUNT_NUMBER_MAX" env-default:"99999999"`
	MaxAttempts int   `env:"ACCOUNT_NUMBER_MAX_ATTEMPTS" env-default:"20"`
}

// MaxAccountNumber caps ACCOUNT_NUMBER_MAX at eighteen digits.
const MaxAccountNumber = 999_999_999_999_999_999

// Load reads an optional .env file and then the process environment.
// Variables already set in the environment take precedence over .env.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Accounts.NumberMin <= 0 {
		return fmt.Errorf("ACCOUNT_NUMBER_MIN must be positive, got %d", c.Accounts.NumberMin)
	}
	if c.Accounts.NumberMax > MaxAccountNumber {
		return fmt.Errorf("ACCOUNT_NUMBER_MAX must not exceed %d, got %d", int64(MaxAccountNumber), c.Accounts.NumberMax)
	}
	if c.Accounts.NumberMax < c.Accounts.NumberMin {
		return fmt.Errorf("ACCOUNT_NUMBER_MAX (%d) is below ACCOUNT_NUMBER_MIN (%d)",
			c.Accounts.NumberMax, c.Accounts.NumberMin)
	}
	if c.Accounts.MaxAttempts < 1 {
		return fmt.Errorf("ACCOUNT_NUMBER_MAX_ATTEMPTS must be at least 1, got %d", c.Accounts.MaxAttempts)
	}
	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL must be positive, got %s", c.Auth.TokenTTL)
	}
	for _, origin := range c.HTTP.AllowedOrigins {
		if origin == "*" {
			return errors.New("CORS_ALLOWED_ORIGINS cannot be * because session cookies are sent cross-origin")
		}
	}
	if len(c.Auth.JWTSecret) < 16 {
		return errors.New("JWT_SECRET must be at least 16 characters")
	}
	return nil
}

func (c Config) IsProd() bool {
	return c.App.Env == "prod"
}
