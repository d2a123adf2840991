package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DevJWTSecret is the signing key used when JWT_SECRET is unset. Only development accepts it.
const DevJWTSecret = "secret"

// Notification store backends.
const (
	NotificationStorePostgres = "postgres"
	NotificationStoreMongo    = "mongo"
)

type Config struct {
	Port                    string        `env:"PORT" envDefault:"8080"`
	Env                     string        `env:"ENV" envDefault:"development"`
	LogLevel                string        `env:"LOG_LEVEL" envDefault:"info"`
	PostgresConnStr         string        `env:"POSTGRES_CONN_STR"`
	MongoURI                string        `env:"MONGO_URI"`
	MongoDatabase           string        `env:"MONGO_DATABASE" envDefault:"socialmedia"`
	NotificationStore       string        `env:"NOTIFICATION_STORE" envDefault:"postgres"`
	FirebaseCredentialsPath string        `env:"FIREBASE_CREDENTIALS_PATH"`
	JWTSecret               string        `env:"JWT_SECRET" envDefault:"secret"`
	JWTTTL                  time.Duration `env:"JWT_TTL" envDefault:"72h"`
	ShutdownTimeout         time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	if c.PostgresConnStr == "" {
		return errors.New("POSTGRES_CONN_STR environment variable not set")
	}
	switch c.NotificationStore {
	case NotificationStorePostgres:
	case NotificationStoreMongo:
		if c.MongoURI == "" {
			return errors.New("MONGO_URI is required when NOTIFICATION_STORE is mongo")
		}
	default:
		return fmt.Errorf("unknown NOTIFICATION_STORE %q", c.NotificationStore)
	}
	if !c.IsDevelopment() && (c.JWTSecret == "" || c.JWTSecret == DevJWTSecret) {
		return errors.New("JWT_SECRET must be set outside development")
	}
	if c.JWTTTL <= 0 {
		return errors.New("JWT_TTL must be positive")
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
