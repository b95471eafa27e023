package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fjod/go_pos/internal/ai"
	"github.com/fjod/go_pos/internal/catalog"
	"github.com/fjod/go_pos/internal/catalog/cache"
	catalogrepo "github.com/fjod/go_pos/internal/catalog/repository"
	"github.com/fjod/go_pos/internal/checkout"
	"github.com/fjod/go_pos/internal/config"
	"github.com/fjod/go_pos/internal/customer"
	poshttp "github.com/fjod/go_pos/internal/http"
	"github.com/fjod/go_pos/internal/logger"
	"github.com/fjod/go_pos/internal/metrics"
	"github.com/fjod/go_pos/internal/notification"
	"github.com/fjod/go_pos/internal/payment"
	"github.com/fjod/go_pos/internal/repository"
	"github.com/fjod/go_pos/internal/store"
	"github.com/fjod/go_pos/internal/tracing"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
)

const serviceName = "pos-server"

// backend is the storage one server instance reads and writes.
type backend struct {
	catalog   catalog.Reader
	products  checkout.ProductLookup
	customers customer.Repository
	orders    interface {
		checkout.OrderStore
		poshttp.OrderReader
	}
	health   poshttp.Pinger
	notifier checkout.Notifier
	cache    cache.CatalogCache
	start    func(ctx context.Context)
	close    func()
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadServer()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	log := logger.New(serviceName, cfg.LogLevel)
	if err := run(cfg, log); err != nil {
		log.Error("pos-server stopped with error", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(cfg *config.Server, log *slog.Logger) error {
	log.Info("pos-server starting", slog.String("storage", cfg.StorageBackend))

	shutdownTracing := tracing.Init(serviceName)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = shutdownTracing(ctx)
	}()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg, "server")

	var (
		b   *backend
		err error
	)
	switch cfg.StorageBackend {
	case config.StorageMemory:
		b = memoryBackend(log)
	default:
		b, err = sqlBackend(cfg, log)
		if err != nil {
			return err
		}
	}
	defer b.close()

	gateway := newGateway(cfg, log)

	checkoutService := checkout.NewCheckoutService(
		checkout.NewProductHandler(b.products, cfg.LookupTimeout),
		checkout.NewCustomerHandler(b.customers, cfg.LookupTimeout),
		checkout.NewPaymentHandler(gateway, cfg.PaymentTimeout),
		checkout.NewOrderHandler(b.orders, cfg.PersistTimeout),
		checkout.NewNotifyHandler(b.notifier, cfg.NotifyTimeout),
		log,
		m,
	)

	router := poshttp.NewRouter(poshttp.RouterConfig{
		Catalog:        catalog.NewService(b.catalog, b.cache, log),
		Customers:      customer.NewService(b.customers, log),
		Checkout:       checkoutService,
		Orders:         b.orders,
		OrderCustomers: b.customers,
		AI:             newGenerator(cfg, log),
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Health:         b.health,
		Metrics:        m,
		Gatherer:       reg,
		Log:            log,
		RequestTimeout: cfg.RequestTimeout,
		HandlerTimeout: cfg.RequestTimeout,
	})

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	b.start(ctx)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("pos-server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	}

	log.Info("shutting down pos-server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server forced to shutdown", slog.Any("error", err))
	}

	checkoutService.Wait()
	stop()
	log.Info("pos-server stopped")
	return nil
}

func newGateway(cfg *config.Server, log *slog.Logger) payment.Gateway {
	var gw payment.Gateway
	if cfg.PaymentGatewayURL != "" {
		log.Info("using remote payment gateway", slog.String("url", cfg.PaymentGatewayURL))
		gw = payment.NewHTTPGateway(cfg.PaymentGatewayURL, cfg.PaymentTimeout)
	} else {
		log.Info("using in-process simulated payment gateway")
		gw = payment.NewSimulatedGateway(payment.RandomOutcome{DeclinePercent: 10}, 0)
	}
	return payment.NewBreakerGateway(gw, cfg.BreakerMaxFailures, cfg.BreakerOpenTimeout, log)
}

func newGenerator(cfg *config.Server, log *slog.Logger) ai.Generator {
	if cfg.AnthropicAPIKey == "" {
		log.Info("no ANTHROPIC_API_KEY set, ai generate uses the mock")
	}
	return ai.New(ai.Config{
		APIKey: cfg.AnthropicAPIKey,
		APIURL: cfg.AnthropicAPIURL,
		Model:  cfg.AnthropicModel,
	}, ai.NewHTTPClient(cfg.AITimeout))
}

func memoryBackend(log *slog.Logger) *backend {
	st := store.NewSeededMemoryStore(catalog.SeedCategories(), catalog.SeedProducts(), store.SeedCustomers())
	return &backend{
		catalog:   st,
		products:  st,
		customers: st,
		orders:    st,
		health:    st,
		notifier:  notification.NewDirectNotifier(notification.NewLogMailer(log)),
		start:     func(context.Context) {},
		close:     func() { _ = st.Close() },
	}
}

func sqlBackend(cfg *config.Server, log *slog.Logger) (*backend, error) {
	creds := &repository.Credentials{
		Host:              cfg.DBHost,
		Port:              cfg.DBPort,
		User:              cfg.DBUser,
		Password:          cfg.DBPassword,
		DBName:            cfg.DBName,
		MigrationsDirPath: cfg.MigrationsDirPath,
	}

	repo, err := repository.NewRepository(creds)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := repo.RunMigrations(creds); err != nil {
		_ = repo.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	log.Info("database migrations completed")

	catalogRepo, err := catalogrepo.NewRepository(cfg.CatalogDBPath)
	if err != nil {
		_ = repo.Close()
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	if err := catalogRepo.RunMigrations(cfg.CatalogMigrationsPath); err != nil {
		_ = repo.Close()
		_ = catalogRepo.Close()
		return nil, fmt.Errorf("run catalog migrations: %w", err)
	}
	log.Info("catalog migrations completed")

	var catalogCache cache.CatalogCache
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
	pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		log.Warn("redis unavailable, catalog cache disabled", slog.Any("error", err))
	} else {
		catalogCache = cache.NewRedisCache(rdb, cfg.CatalogCacheTTL)
	}

	poller := notification.NewOutboxPoller(repo, cfg.NotificationTopic, cfg.OutboxPollInterval, log, cfg.KafkaBrokers...)

	return &backend{
		catalog:   catalogRepo,
		products:  catalogRepo,
		customers: repo,
		orders:    repo,
		health:    repo,
		notifier:  notification.NewOutboxNotifier(repo),
		cache:     catalogCache,
		start: func(ctx context.Context) {
			go poller.Run(ctx)
		},
		close: func() {
			if err := poller.Close(); err != nil {
				log.Warn("failed to close kafka writer", slog.Any("error", err))
			}
			_ = rdb.Close()
			_ = catalogRepo.Close()
			_ = repo.Close()
		},
	}, nil
}
