// Package config loads the process configuration once at startup. The result
// is passed explicitly to every component and never mutated afterwards.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds everything the server needs to run.
type Config struct {
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`
	GinMode  string `env:"GIN_MODE" envDefault:"release"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// SecretKey signs access tokens.
	SecretKey   string        `env:"SECRET_KEY,required,notEmpty"`
	TokenTTL    time.Duration `env:"TOKEN_TTL" envDefault:"60m"`
	TokenHeader string        `env:"TOKEN_HEADER" envDefault:"Authorization"`
	BcryptCost  int           `env:"BCRYPT_COST" envDefault:"10"`

	CORSAllowedOrigin  string `env:"CORS_ALLOWED_ORIGIN" envDefault:"*"`
	LoginRatePerMinute int    `env:"LOGIN_RATE_PER_MINUTE" envDefault:"20"`

	DB Database
}

// Database selects the gorm dialect and its connection string.
type Database struct {
	Driver string `env:"DB_DRIVER" envDefault:"postgres"`
	// URL is a full DSN. For sqlite it is the database file path.
	URL string `env:"DATABASE_URL"`

	Host     string `env:"DB_HOST"`
	User     string `env:"DB_USER"`
	Password string `env:"DB_PASS"`
	Name     string `env:"DB_NAME"`
	Port     string `env:"DB_PORT" envDefault:"5432"`
}

// DSN returns URL when set, otherwise a postgres keyword DSN built from the
// individual DB_* variables.
func (d Database) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		d.Host, d.User, d.Password, d.Name, d.Port,
	)
}

// LoadEnvFile copies variables from a dotenv file into the process
// environment. Variables already set are left untouched.
func LoadEnvFile(path string) error {
	return godotenv.Load(path)
}

// Load parses the environment into a Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.TokenTTL <= 0 {
		return errors.New("TOKEN_TTL must be positive")
	}
	if c.TokenHeader == "" {
		return errors.New("TOKEN_HEADER must not be empty")
	}
	switch c.DB.Driver {
	case "postgres":
		if c.DB.URL == "" && (c.DB.Host == "" || c.DB.User == "" || c.DB.Name == "") {
			return errors.New("database env missing: set DATABASE_URL or DB_HOST, DB_USER and DB_NAME")
		}
	case "sqlite":
		if c.DB.URL == "" {
			return errors.New("DATABASE_URL is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DB.Driver)
	}
	return nil
}
