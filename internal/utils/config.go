package utils

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type DatabaseConfig struct {
	Host     string `env:"POSTGRES_HOST" envDefault:"localhost" validate:"required"`
	Port     string `env:"POSTGRES_PORT" envDefault:"5432" validate:"required,numeric"`
	User     string `env:"POSTGRES_USER" validate:"required"`
	Password string `env:"POSTGRES_PASSWORD" validate:"required"`
	Name     string `env:"POSTGRES_DB" validate:"required"`
	SSLMode  string `env:"POSTGRES_SSL_MODE" envDefault:"disable" validate:"oneof=disable require verify-ca verify-full"`
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		c.Host, c.User, c.Password, c.Name, c.Port, c.SSLMode)
}

type ServerConfig struct {
	Port       string `env:"SERVER_PORT" envDefault:"8000" validate:"required,numeric"`
	CORSOrigin string `env:"CORS_ORIGIN" envDefault:"*"`
}

type TokenConfig struct {
	AccessTokenSecret  string        `env:"ACCESS_TOKEN_SECRET" validate:"required"`
	AccessTokenExpiry  time.Duration `env:"ACCESS_TOKEN_EXPIRY" envDefault:"15m" validate:"required"`
	RefreshTokenSecret string        `env:"REFRESH_TOKEN_SECRET" validate:"required,nefield=AccessTokenSecret"`
	RefreshTokenExpiry time.Duration `env:"REFRESH_TOKEN_EXPIRY" envDefault:"240h" validate:"required"`
	CookieSecure       bool          `env:"COOKIE_SECURE" envDefault:"true"`
}

type StorageConfig struct {
	Endpoint  string `env:"S3_ENDPOINT" validate:"required,url"`
	Region    string `env:"S3_REGION" envDefault:"us-east-1" validate:"required"`
	Bucket    string `env:"S3_BUCKET" validate:"required"`
	AccessKey string `env:"S3_ACCESS_KEY" validate:"required"`
	SecretKey string `env:"S3_SECRET_KEY" validate:"required"`
	PublicURL string `env:"S3_PUBLIC_URL" validate:"required,url"`
}

type AdminConfig struct {
	Username string `env:"ADMIN_USERNAME" validate:"required"`
	Password string `env:"ADMIN_PASSWORD" validate:"required"`
}

type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Token    TokenConfig
	Storage  StorageConfig
	Admin    AdminConfig
}

// LoadConfig reads the .env file if present, overrides from process
// environment variables and validates the result. A missing .env file is
// not an error so containerized deployments can rely on the environment
// alone.
func LoadConfig(dotenvPath string) (*Config, error) {
	_ = godotenv.Load(dotenvPath)

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}
