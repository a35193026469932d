package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	SecretKey       string
	DatabaseURI     string
	DBLogLevel      string
	RedisURL        string
	SessionBackend  string
	CookieSecure    bool
	SessionTTL      time.Duration
	AdminSessionTTL time.Duration
	TaxRate         float64
	DeliveryFee     float64
	ServerPort      string
	LogLevel        string

	StripePublishableKey string
	StripeSecretKey      string
	StripeWebhookSecret  string

	AdminEmail        string
	AdminPasswordHash string
}

const DefaultDatabaseURI = "sqlite:///data/tastycorner.db"

const (
	SessionBackendCookie = "cookie"
	SessionBackendRedis  = "redis"
)

func Load() (*Config, error) {
	// Load .env file if exists
	godotenv.Load()

	cfg := &Config{
		SecretKey:       getEnv("SECRET_KEY", "dev-key-please-change-in-prod"),
		DatabaseURI:     getEnv("DATABASE_URI", DefaultDatabaseURI),
		DBLogLevel:      getEnv("DB_LOG_LEVEL", "warn"),
		RedisURL:        getEnv("REDIS_URL", ""),
		SessionBackend:  getEnv("SESSION_BACKEND", SessionBackendCookie),
		CookieSecure:    getEnvAsBool("COOKIE_SECURE", false),
		SessionTTL:      getEnvAsDuration("SESSION_TTL", 7*24*time.Hour),
		AdminSessionTTL: getEnvAsDuration("ADMIN_SESSION_TTL", 8*time.Hour),
		TaxRate:         getEnvAsFloat("TAX_RATE", 0.0945),
		DeliveryFee:     getEnvAsFloat("DELIVERY_FEE", 5.99),
		ServerPort:      getEnv("SERVER_PORT", "5000"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),

		StripePublishableKey: getEnv("STRIPE_PUBLISHABLE_KEY", ""),
		StripeSecretKey:      getEnv("STRIPE_SECRET_KEY", ""),
		StripeWebhookSecret:  getEnv("STRIPE_WEBHOOK_SECRET", ""),

		AdminEmail:        getEnv("ADMIN_EMAIL", "admin@tastycorner.com"),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
	}

	if cfg.AdminPasswordHash == "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(getEnv("ADMIN_PASSWORD", "admin123")), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash admin password: %w", err)
		}
		cfg.AdminPasswordHash = string(hash)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DatabaseURI reads only the database setting, for tools that need nothing else.
func DatabaseURI() string {
	godotenv.Load()
	return getEnv("DATABASE_URI", DefaultDatabaseURI)
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	if c.SecretKey == "" {
		return fmt.Errorf("SECRET_KEY must not be empty")
	}
	if c.TaxRate < 0 {
		return fmt.Errorf("TAX_RATE must not be negative, got %v", c.TaxRate)
	}
	if c.DeliveryFee < 0 {
		return fmt.Errorf("DELIVERY_FEE must not be negative, got %v", c.DeliveryFee)
	}
	if c.SessionTTL <= 0 || c.AdminSessionTTL <= 0 {
		return fmt.Errorf("session lifetimes must be positive")
	}
	switch c.SessionBackend {
	case SessionBackendCookie:
	case SessionBackendRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("SESSION_BACKEND=redis requires REDIS_URL")
		}
	default:
		return fmt.Errorf("unknown SESSION_BACKEND %q", c.SessionBackend)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
		// plain seconds, as SESSION_TIMEOUT used to be configured
		if seconds, err := strconv.Atoi(value); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return defaultValue
}
