package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_PORT", "")
	t.Setenv("HTTP_PORT", "")
	t.Setenv("KAFKA_BROKERS", "")
	t.Setenv("ESTIMATE_EXPIRY_INTERVAL", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8098", cfg.HTTPPort)
	assert.Equal(t, time.Minute, cfg.Expiry.Interval)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.NoError(t, cfg.Validate())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")
	t.Setenv("ESTIMATE_EXPIRY_INTERVAL", "15s")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("PAYMENT_GATEWAY_MOCK", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.HTTPPort)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 15*time.Second, cfg.Expiry.Interval)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.True(t, cfg.PaymentGatewayMock)
}

func TestLoadRejectsMalformed(t *testing.T) {
	t.Setenv("ESTIMATE_EXPIRY_INTERVAL", "soon")
	_, err := Load()
	assert.Error(t, err)
}

func TestValidateProduction(t *testing.T) {
	cfg := &Config{AppEnv: "production"}
	cfg.DB.Host = "db"
	cfg.DB.Database = "marketplace"
	cfg.DB.Password = "secret"
	cfg.Expiry.Interval = time.Minute
	cfg.Expiry.Timeout = time.Second
	cfg.Expiry.BatchSize = 10

	assert.Error(t, cfg.Validate(), "JWT secret is mandatory in production")
	cfg.JWTSecret = "s"
	assert.NoError(t, cfg.Validate())
}

func TestDatabaseURLEscapesPassword(t *testing.T) {
	cfg := &Config{}
	cfg.DB.User = "u"
	cfg.DB.Password = "p@ss word"
	cfg.DB.Host = "h"
	cfg.DB.Port = "5432"
	cfg.DB.Database = "d"
	cfg.DB.SSLMode = "disable"
	assert.Equal(t, "postgres://u:p%40ss+word@h:5432/d?sslmode=disable", cfg.DatabaseURL())
}
