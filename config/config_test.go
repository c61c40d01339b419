package config

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSecrets struct {
	value string
	err   error
}

func (s stubSecrets) GetSecret(_ context.Context, _ string) (string, error) {
	return s.value, s.err
}

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("POSTGRES_USER", "bookstore")
	t.Setenv("POSTGRES_PASSWORD", "secret")
	t.Setenv("POSTGRES_DB", "bookstore")
	t.Setenv("POSTGRES_HOST", "localhost")
	t.Setenv("JWT_SECRET", "jwt-secret")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := load(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "5432", cfg.PostgresPort)
	assert.Equal(t, 10*time.Minute, cfg.BookCacheTTL)
	assert.Equal(t, 24*time.Hour, cfg.AccessTokenTTL)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.False(t, cfg.TrustGatewayHeaders)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, "order-events", cfg.OrderEventsTopic)
	assert.Contains(t, cfg.DSN(), "host=localhost user=bookstore")
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("PORT", "9000")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("TRUST_GATEWAY_HEADERS", "true")
	t.Setenv("ACCESS_TOKEN_TTL", "15m")

	cfg, err := load(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.TrustGatewayHeaders)
	assert.Equal(t, 15*time.Minute, cfg.AccessTokenTTL)
}

func TestLoad_MissingRequired(t *testing.T) {
	setRequired(t)
	t.Setenv("JWT_SECRET", "")

	_, err := load(context.Background(), nil)
	assert.EqualError(t, err, "JWT_SECRET not set")

	t.Setenv("JWT_SECRET", "x")
	t.Setenv("POSTGRES_HOST", "")
	_, err = load(context.Background(), nil)
	assert.EqualError(t, err, "database config incomplete")
}

func TestLoad_InvalidDuration(t *testing.T) {
	setRequired(t)
	t.Setenv("REQUEST_TIMEOUT", "soon")

	_, err := load(context.Background(), nil)
	assert.ErrorContains(t, err, "REQUEST_TIMEOUT")
}

func TestLoad_SecretsOverrideDatabase(t *testing.T) {
	setRequired(t)
	t.Setenv("POSTGRES_HOST", "")

	cfg, err := load(context.Background(), stubSecrets{value: `{"POSTGRES_HOST":"db.internal","POSTGRES_PASSWORD":"rotated"}`})
	require.NoError(t, err)
	assert.Equal(t, "db.internal", cfg.PostgresHost)
	assert.Equal(t, "rotated", cfg.PostgresPassword)
	assert.Equal(t, "bookstore", cfg.PostgresUser)

	_, err = load(context.Background(), stubSecrets{err: errors.New("access denied")})
	assert.ErrorContains(t, err, "access denied")
}
