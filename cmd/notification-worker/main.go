package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fjod/go_pos/internal/config"
	"github.com/fjod/go_pos/internal/logger"
	"github.com/fjod/go_pos/internal/metrics"
	"github.com/fjod/go_pos/internal/notification"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
)

const serviceName = "notification-worker"

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadWorker()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}
	log := logger.New(serviceName, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := notification.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName)
	if err != nil {
		log.Error("failed to connect to mongodb", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		_ = db.Client().Disconnect(dctx)
	}()

	receipts := notification.NewMongoReceiptStore(db)
	if err := receipts.CreateIndexes(ctx); err != nil {
		log.Error("failed to create receipt indexes", slog.Any("error", err))
		os.Exit(1)
	}

	m := metrics.New(prometheus.DefaultRegisterer, "worker")
	consumer := notification.NewConsumer(
		receipts,
		notification.NewLogMailer(log),
		log,
		m,
		cfg.NotificationTopic,
		cfg.ConsumerGroup,
		cfg.KafkaBrokers...,
	)
	defer consumer.Close()

	log.Info("notification worker consuming",
		slog.String("topic", cfg.NotificationTopic), slog.String("group", cfg.ConsumerGroup))
	consumer.Run(ctx)
	log.Info("notification worker stopped")
}
