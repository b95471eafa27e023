package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	StorageSQL    = "sql"
	StorageMemory = "memory"
)

// Server configures cmd/pos-server.
type Server struct {
	HTTPPort       string `envconfig:"HTTP_PORT" default:"8080"`
	LogLevel       string `envconfig:"LOG_LEVEL" default:"info"`
	StorageBackend string `envconfig:"STORAGE_BACKEND" default:"sql"`

	DBHost            string `envconfig:"DB_HOST" default:"localhost"`
	DBPort            int    `envconfig:"DB_PORT" default:"5432"`
	DBUser            string `envconfig:"DB_USER" default:"postgres"`
	DBPassword        string `envconfig:"DB_PASSWORD" default:"postgres"`
	DBName            string `envconfig:"DB_NAME" default:"pos"`
	MigrationsDirPath string `envconfig:"MIGRATIONS_PATH" default:"./internal/repository/migrations"`

	CatalogDBPath         string `envconfig:"CATALOG_DB_PATH" default:"./pos-catalog.db"`
	CatalogMigrationsPath string `envconfig:"CATALOG_MIGRATIONS_PATH" default:"./internal/catalog/repository/migrations"`

	RedisAddr       string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword   string        `envconfig:"REDIS_PASSWORD" default:""`
	CatalogCacheTTL time.Duration `envconfig:"CATALOG_CACHE_TTL" default:"5m"`

	KafkaBrokers       []string      `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	NotificationTopic  string        `envconfig:"NOTIFICATION_TOPIC" default:"order-notifications"`
	OutboxPollInterval time.Duration `envconfig:"OUTBOX_POLL_INTERVAL" default:"1s"`

	PaymentGatewayURL  string        `envconfig:"PAYMENT_GATEWAY_URL" default:""`
	PaymentTimeout     time.Duration `envconfig:"PAYMENT_TIMEOUT" default:"5s"`
	BreakerMaxFailures uint32        `envconfig:"BREAKER_MAX_FAILURES" default:"5"`
	BreakerOpenTimeout time.Duration `envconfig:"BREAKER_OPEN_TIMEOUT" default:"30s"`

	CORSAllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"*"`

	AnthropicAPIKey string        `envconfig:"ANTHROPIC_API_KEY" default:""`
	AnthropicAPIURL string        `envconfig:"ANTHROPIC_API_URL" default:"https://api.anthropic.com/v1/messages"`
	AnthropicModel  string        `envconfig:"ANTHROPIC_MODEL" default:"claude-sonnet-4-20250514"`
	AITimeout       time.Duration `envconfig:"AI_TIMEOUT" default:"30s"`

	LookupTimeout   time.Duration `envconfig:"LOOKUP_TIMEOUT" default:"3s"`
	PersistTimeout  time.Duration `envconfig:"PERSIST_TIMEOUT" default:"5s"`
	NotifyTimeout   time.Duration `envconfig:"NOTIFY_TIMEOUT" default:"3s"`
	RequestTimeout  time.Duration `envconfig:"REQUEST_TIMEOUT" default:"30s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// Gateway configures cmd/payment-gateway.
type Gateway struct {
	HTTPPort        string        `envconfig:"PAYMENT_SERVICE_PORT" default:"8090"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info"`
	DeclinePercent  int           `envconfig:"DECLINE_PERCENT" default:"10"`
	Latency         time.Duration `envconfig:"SIMULATED_LATENCY" default:"0s"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

// Worker configures cmd/notification-worker.
type Worker struct {
	LogLevel          string        `envconfig:"LOG_LEVEL" default:"info"`
	KafkaBrokers      []string      `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	NotificationTopic string        `envconfig:"NOTIFICATION_TOPIC" default:"order-notifications"`
	ConsumerGroup     string        `envconfig:"CONSUMER_GROUP" default:"notification-worker"`
	MongoURI          string        `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
	MongoDBName       string        `envconfig:"MONGO_DB_NAME" default:"pos_notifications"`
	ShutdownTimeout   time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"5s"`
}

func LoadServer() (*Server, error) {
	var cfg Server
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load server config: %w", err)
	}
	if cfg.StorageBackend != StorageSQL && cfg.StorageBackend != StorageMemory {
		return nil, fmt.Errorf("load server config: unknown STORAGE_BACKEND %q", cfg.StorageBackend)
	}
	if cfg.PaymentTimeout <= 0 {
		return nil, fmt.Errorf("load server config: PAYMENT_TIMEOUT must be positive")
	}
	return &cfg, nil
}

func LoadGateway() (*Gateway, error) {
	var cfg Gateway
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load gateway config: %w", err)
	}
	if cfg.DeclinePercent < 0 || cfg.DeclinePercent > 100 {
		return nil, fmt.Errorf("load gateway config: DECLINE_PERCENT must be within [0,100]")
	}
	return &cfg, nil
}

func LoadWorker() (*Worker, error) {
	var cfg Worker
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load worker config: %w", err)
	}
	return &cfg, nil
}
