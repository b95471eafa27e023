package checkout

import (
	"context"
	"sync"
	"time"

	d "github.com/fjod/go_pos/internal/domain"
	"github.com/fjod/go_pos/internal/payment"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MockProducts implements ProductLookup for testing
type MockProducts struct {
	Products     map[string]*d.Product
	Err          error
	RequestedIDs []string // Captures the ids passed to GetProductsByIDs
}

func (m *MockProducts) GetProductsByIDs(_ context.Context, ids []string) ([]*d.Product, error) {
	m.RequestedIDs = ids
	if m.Err != nil {
		return nil, m.Err
	}
	var result []*d.Product
	for _, id := range ids {
		if p, ok := m.Products[id]; ok {
			cp := *p
			result = append(result, &cp)
		}
	}
	return result, nil
}

// MockCustomers implements CustomerLookup for testing
type MockCustomers struct {
	Customers map[uuid.UUID]*d.Customer
	Err       error
}

func (m *MockCustomers) GetCustomerByID(_ context.Context, id uuid.UUID) (*d.Customer, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	c, ok := m.Customers[id]
	if !ok {
		return nil, d.ErrNotFound
	}
	return c, nil
}

// MockGateway implements payment.Gateway for testing
type MockGateway struct {
	Result   payment.ChargeResult
	Err      error
	Delay    time.Duration
	OnCharge func()

	mu     sync.Mutex
	Calls  int
	Amount decimal.Decimal // Captures the last charged amount
	Method d.PaymentMethod
}

func (m *MockGateway) Charge(ctx context.Context, amount decimal.Decimal, method d.PaymentMethod) (payment.ChargeResult, error) {
	m.mu.Lock()
	m.Calls++
	m.Amount = amount
	m.Method = method
	m.mu.Unlock()

	if m.OnCharge != nil {
		m.OnCharge()
	}
	if m.Delay > 0 {
		select {
		case <-time.After(m.Delay):
		case <-ctx.Done():
			return payment.ChargeResult{}, ctx.Err()
		}
	}
	return m.Result, m.Err
}

func (m *MockGateway) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Calls
}

// MockOrderStore implements OrderStore for testing
type MockOrderStore struct {
	Err error

	mu         sync.Mutex
	Created    []*d.Order
	ContextErr error // Captures ctx.Err() seen by CreateOrder
}

func (m *MockOrderStore) CreateOrder(ctx context.Context, order *d.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ContextErr = ctx.Err()
	if m.Err != nil {
		return m.Err
	}
	order.CreatedAt = time.Now()
	m.Created = append(m.Created, order)
	return nil
}

func (m *MockOrderStore) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Created)
}

type sentNotification struct {
	Email   string
	Summary d.OrderSummary
}

// MockNotifier implements Notifier for testing
type MockNotifier struct {
	Err error

	mu   sync.Mutex
	Sent []sentNotification
}

func (m *MockNotifier) Notify(_ context.Context, email string, summary d.OrderSummary) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Sent = append(m.Sent, sentNotification{Email: email, Summary: summary})
	return m.Err
}

func (m *MockNotifier) SentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Sent)
}
