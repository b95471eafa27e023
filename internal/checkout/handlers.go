package checkout

import (
	"context"
	"time"

	d "github.com/fjod/go_pos/internal/domain"
	"github.com/fjod/go_pos/internal/payment"
	"github.com/google/uuid"
)

// ProductLookup must omit unknown ids rather than fail on them.
type ProductLookup interface {
	GetProductsByIDs(ctx context.Context, ids []string) ([]*d.Product, error)
}

type CustomerLookup interface {
	GetCustomerByID(ctx context.Context, id uuid.UUID) (*d.Customer, error)
}

// OrderStore is append-only.
type OrderStore interface {
	CreateOrder(ctx context.Context, order *d.Order) error
}

// Notifier delivers an order receipt. Failures never affect the order.
type Notifier interface {
	Notify(ctx context.Context, email string, summary d.OrderSummary) error
}

type ProductHandler struct {
	products ProductLookup
	timeout  time.Duration
}

func NewProductHandler(products ProductLookup, timeout time.Duration) *ProductHandler {
	return &ProductHandler{
		products: products,
		timeout:  timeout,
	}
}

type CustomerHandler struct {
	customers CustomerLookup
	timeout   time.Duration
}

func NewCustomerHandler(customers CustomerLookup, timeout time.Duration) *CustomerHandler {
	return &CustomerHandler{
		customers: customers,
		timeout:   timeout,
	}
}

type PaymentHandler struct {
	gateway payment.Gateway
	timeout time.Duration
}

func NewPaymentHandler(gateway payment.Gateway, timeout time.Duration) *PaymentHandler {
	return &PaymentHandler{
		gateway: gateway,
		timeout: timeout,
	}
}

type OrderHandler struct {
	orders  OrderStore
	timeout time.Duration
}

func NewOrderHandler(orders OrderStore, timeout time.Duration) *OrderHandler {
	return &OrderHandler{
		orders:  orders,
		timeout: timeout,
	}
}

type NotifyHandler struct {
	notifier Notifier
	timeout  time.Duration
}

func NewNotifyHandler(notifier Notifier, timeout time.Duration) *NotifyHandler {
	return &NotifyHandler{
		notifier: notifier,
		timeout:  timeout,
	}
}
