package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD", "s3cret")
	t.Setenv("TAX_RATE", "")
	t.Setenv("SESSION_BACKEND", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 0.0945, cfg.TaxRate)
	assert.Equal(t, 5.99, cfg.DeliveryFee)
	assert.Equal(t, SessionBackendCookie, cfg.SessionBackend)
	assert.Equal(t, 8*time.Hour, cfg.AdminSessionTTL)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(cfg.AdminPasswordHash), []byte("s3cret")))
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("TAX_RATE", "0.1")
	t.Setenv("DELIVERY_FEE", "3")
	t.Setenv("SESSION_TTL", "3600")
	t.Setenv("ADMIN_SESSION_TTL", "30m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 0.1, cfg.TaxRate)
	assert.Equal(t, 3.0, cfg.DeliveryFee)
	assert.Equal(t, time.Hour, cfg.SessionTTL)
	assert.Equal(t, 30*time.Minute, cfg.AdminSessionTTL)
}

func TestValidate(t *testing.T) {
	base := Config{
		SecretKey:       "k",
		SessionBackend:  SessionBackendCookie,
		SessionTTL:      time.Hour,
		AdminSessionTTL: time.Hour,
	}
	assert.NoError(t, base.Validate())

	redisNoURL := base
	redisNoURL.SessionBackend = SessionBackendRedis
	assert.Error(t, redisNoURL.Validate())

	unknown := base
	unknown.SessionBackend = "memcached"
	assert.Error(t, unknown.Validate())

	negative := base
	negative.DeliveryFee = -1
	assert.Error(t, negative.Validate())
}

func TestDatabaseURI(t *testing.T) {
	t.Setenv("DATABASE_URI", "")
	assert.Equal(t, DefaultDatabaseURI, DatabaseURI())

	t.Setenv("DATABASE_URI", "postgres://localhost/tasty")
	assert.Equal(t, "postgres://localhost/tasty", DatabaseURI())
}
