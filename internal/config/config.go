package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/yukikurage/taskaura-api/internal/constants"
)

type Config struct {
	Port     string `env:"PORT, default=8080"`
	GinMode  string `env:"GIN_MODE, default=debug"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	DB           DBConfig
	Redis        RedisConfig
	Auth         AuthConfig
	OpenAIAPIKey string `env:"OPENAI_API_KEY"`
}

type DBConfig struct {
	Driver   string `env:"DB_DRIVER, default=mysql"`
	Host     string `env:"DB_HOST, default=localhost"`
	Port     string `env:"DB_PORT, default=3306"`
	User     string `env:"DB_USER, default=taskuser"`
	Password string `env:"DB_PASSWORD, default=taskpassword"`
	Name     string `env:"DB_NAME, default=taskaura"`
	// Path is only used by the sqlite driver.
	Path string `env:"DB_PATH, default=taskaura.db"`
}

type RedisConfig struct {
	Host string `env:"REDIS_HOST, default=localhost"`
	Port string `env:"REDIS_PORT, default=6379"`
}

type AuthConfig struct {
	Mode          string        `env:"AUTH_MODE, default=session"`
	SessionSecret string        `env:"SESSION_SECRET, default=default-secret-key-change-me"`
	JWTSecret     string        `env:"JWT_SECRET, default=default-jwt-secret-change-me"`
	JWTExpiration time.Duration `env:"JWT_EXPIRATION, default=24h"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	return LoadWith(envconfig.OsLookuper())
}

// LoadWith reads configuration from the given lookuper.
func LoadWith(lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(context.Background(), &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	switch cfg.Auth.Mode {
	case constants.AuthModeSession, constants.AuthModeJWT:
	default:
		return nil, fmt.Errorf("invalid AUTH_MODE %q: must be session or jwt", cfg.Auth.Mode)
	}

	switch cfg.DB.Driver {
	case "mysql", "postgres", "sqlite":
	default:
		return nil, fmt.Errorf("invalid DB_DRIVER %q: must be mysql, postgres or sqlite", cfg.DB.Driver)
	}

	return &cfg, nil
}

// RedisAddr returns the host:port address of the session store.
func (c *Config) RedisAddr() string {
	return c.Redis.Host + ":" + c.Redis.Port
}

// IsProduction reports whether gin runs in release mode.
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}
