package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/fjod/go_pos/internal/ai"
	"github.com/fjod/go_pos/internal/checkout"
	"github.com/fjod/go_pos/internal/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type RouterConfig struct {
	Catalog   CatalogReader
	Customers CustomerService
	Checkout  checkout.CheckoutService
	Orders    OrderReader

	// OrderCustomers embeds the buyer into order reads. Nil leaves it out.
	OrderCustomers CustomerLookup

	// AI falls back to the mock generator when nil.
	AI ai.Generator

	// Health is probed by GET /health. Nil means always healthy.
	Health   Pinger
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	Log      *slog.Logger

	// AllowedOrigins defaults to every origin.
	AllowedOrigins []string

	RequestTimeout time.Duration
	HandlerTimeout time.Duration
}

func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(RequestIDHeader)
	r.Use(middleware.RealIP)
	r.Use(corsHandler(cfg.AllowedOrigins))
	r.Use(RequestLogger(cfg.Log))
	r.Use(middleware.Recoverer)
	r.Use(cfg.Metrics.Middleware)
	if cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
	}

	catalogHandler := NewCatalogHandler(cfg.Catalog, cfg.HandlerTimeout)
	customerHandler := NewCustomerHandler(cfg.Customers, cfg.HandlerTimeout)
	checkoutHandler := NewCheckoutHandler(cfg.Checkout, cfg.HandlerTimeout)
	ordersHandler := NewOrdersHandler(cfg.Orders, cfg.OrderCustomers, cfg.HandlerTimeout)
	generator := cfg.AI
	if generator == nil {
		generator = ai.MockGenerator{}
	}
	aiHandler := NewAIHandler(generator, cfg.Log, cfg.HandlerTimeout)

	r.Get("/health", healthHandler(cfg.Health))
	r.Get("/api/health", healthHandler(cfg.Health))
	if cfg.Gatherer != nil {
		r.Handle("/metrics", metrics.Handler(cfg.Gatherer))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/categories", catalogHandler.ListCategories)
		r.Get("/products", catalogHandler.ListProducts)
		r.Get("/products/{product_id}", catalogHandler.GetProduct)

		r.Get("/customers", customerHandler.Lookup)
		r.Post("/customers", customerHandler.Create)

		r.Post("/pricing/preview", checkoutHandler.Preview)

		r.Post("/orders", checkoutHandler.Checkout)
		r.Get("/orders", ordersHandler.ListOrders)
		r.Get("/orders/{order_id}", ordersHandler.GetOrder)

		r.Post("/ai/generate", aiHandler.Generate)
	})

	return otelhttp.NewHandler(r, "pos-server")
}

func corsHandler(origins []string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	})
}

func healthHandler(p Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if p != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := p.Ping(ctx); err != nil {
				respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
				return
			}
		}
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
