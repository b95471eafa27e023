package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadServer_Defaults(t *testing.T) {
	cfg, err := LoadServer()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, StorageSQL, cfg.StorageBackend)
	assert.Equal(t, 5432, cfg.DBPort)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 5*time.Second, cfg.PaymentTimeout)
	assert.Equal(t, "order-notifications", cfg.NotificationTopic)
	assert.Empty(t, cfg.PaymentGatewayURL)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "https://api.anthropic.com/v1/messages", cfg.AnthropicAPIURL)
	assert.Equal(t, 30*time.Second, cfg.AITimeout)
}

func TestLoadServer_Overrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("STORAGE_BACKEND", "memory")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")
	t.Setenv("PAYMENT_TIMEOUT", "750ms")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173,https://pos.example.com")
	t.Setenv("ANTHROPIC_API_KEY", "sk-test")

	cfg, err := LoadServer()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.HTTPPort)
	assert.Equal(t, StorageMemory, cfg.StorageBackend)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 750*time.Millisecond, cfg.PaymentTimeout)
	assert.Equal(t, 6543, cfg.DBPort)
	assert.Equal(t, []string{"http://localhost:5173", "https://pos.example.com"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "sk-test", cfg.AnthropicAPIKey)
}

func TestLoadServer_UnknownBackend(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "mysql")

	_, err := LoadServer()
	assert.ErrorContains(t, err, "unknown STORAGE_BACKEND")
}

func TestLoadServer_InvalidPort(t *testing.T) {
	t.Setenv("DB_PORT", "not-a-number")

	_, err := LoadServer()
	assert.Error(t, err)
}

func TestLoadGateway(t *testing.T) {
	cfg, err := LoadGateway()
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.DeclinePercent)

	t.Setenv("DECLINE_PERCENT", "101")
	_, err = LoadGateway()
	assert.Error(t, err)
}

func TestLoadWorker(t *testing.T) {
	t.Setenv("MONGO_DB_NAME", "receipts")

	cfg, err := LoadWorker()
	require.NoError(t, err)
	assert.Equal(t, "receipts", cfg.MongoDBName)
	assert.Equal(t, "notification-worker", cfg.ConsumerGroup)
}
