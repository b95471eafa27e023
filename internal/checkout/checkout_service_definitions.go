// Package checkout turns a cart into a paid, persisted order. Each attempt runs
// Received → Validated → Priced → PaymentPending → {Committed | Declined | Failed}
// and reprices from authoritative catalog and customer data.
package checkout

import (
	"context"
	"log/slog"
	"sync"

	d "github.com/fjod/go_pos/internal/domain"
	"github.com/fjod/go_pos/internal/metrics"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

type CheckoutService interface {
	Checkout(ctx context.Context, request *d.CheckoutRequest) (*d.CheckoutResponse, error)
	Preview(ctx context.Context, request *d.CheckoutRequest) (*d.PricingPreview, error)
}

type CheckoutServiceImpl struct {
	product  *ProductHandler
	customer *CustomerHandler
	payment  *PaymentHandler
	order    *OrderHandler
	notifier *NotifyHandler

	log     *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer

	pending sync.WaitGroup // in-flight notifications
}

// NewCheckoutService wires the orchestrator. notifier and m may be nil.
func NewCheckoutService(
	product *ProductHandler,
	customer *CustomerHandler,
	payment *PaymentHandler,
	order *OrderHandler,
	notifier *NotifyHandler,
	log *slog.Logger,
	m *metrics.Metrics) *CheckoutServiceImpl {
	return &CheckoutServiceImpl{
		product:  product,
		customer: customer,
		payment:  payment,
		order:    order,
		notifier: notifier,
		log:      log,
		metrics:  m,
		tracer:   otel.Tracer("github.com/fjod/go_pos/internal/checkout"),
	}
}

// Wait blocks until every notification started so far has finished.
func (s *CheckoutServiceImpl) Wait() {
	s.pending.Wait()
}
