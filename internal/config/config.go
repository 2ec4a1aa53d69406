// File: internal/config/config.go

// Package config loads the service configuration from the environment once at
// startup. The resulting struct is immutable and injected where needed; no
// component re-reads environment variables per request.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DefaultSecretKey is used when SECRET_KEY is not set. It matches the value
// the service shipped with historically and is NOT safe for production.
const DefaultSecretKey = "tu-clave-jwt-super-secreta-cambiame"

// AccessTokenTTL is the fixed lifetime of issued access tokens.
const AccessTokenTTL = 30 * time.Minute

type Config struct {
	DBHost     string
	DBPort     int
	DBName     string
	DBUser     string
	DBPassword string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	SecretKey   string
	HTTPAddr    string
	WorkerCount int
	TokenTTL    time.Duration
}

// Load reads the configuration from a .env file (if present) and the
// environment. DB_NAME and DB_USER are required; everything else has a
// working default.
func Load() (*Config, error) {
	// Missing .env is fine, real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		DBHost:        getenvDefault("DB_HOST", "localhost"),
		DBName:        os.Getenv("DB_NAME"),
		DBUser:        os.Getenv("DB_USER"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		RedisAddr:     getenvDefault("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		SecretKey:     getenvDefault("SECRET_KEY", DefaultSecretKey),
		HTTPAddr:      getenvDefault("HTTP_ADDR", ":8080"),
		WorkerCount:   1,
		TokenTTL:      AccessTokenTTL,
	}

	if cfg.DBName == "" {
		return nil, fmt.Errorf("DB_NAME is required")
	}
	if cfg.DBUser == "" {
		return nil, fmt.Errorf("DB_USER is required")
	}

	port, err := intEnv("DB_PORT", 5432)
	if err != nil {
		return nil, err
	}
	cfg.DBPort = port

	redisDB, err := intEnv("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}
	cfg.RedisDB = redisDB

	workers, err := intEnv("WORKER_COUNT", 1)
	if err != nil {
		return nil, err
	}
	if workers <= 0 {
		return nil, fmt.Errorf("WORKER_COUNT must be positive")
	}
	cfg.WorkerCount = workers

	return cfg, nil
}

// DatabaseURL builds the pgx connection string from the discrete DB settings.
func (c *Config) DatabaseURL() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.DBUser, c.DBPassword),
		Host:   fmt.Sprintf("%s:%d", c.DBHost, c.DBPort),
		Path:   c.DBName,
	}
	return u.String()
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func intEnv(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %v", key, err)
	}
	return n, nil
}
