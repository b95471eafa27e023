// Package store is the in-process backend used when no database is configured and in tests.
package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/fjod/go_pos/internal/domain"
	"github.com/google/uuid"
)

// MemoryStore keeps catalog, customers and orders in maps guarded by one RWMutex.
// Values are copied in and out so callers never share memory with the store.
type MemoryStore struct {
	mu         sync.RWMutex
	categories []*domain.Category
	products   map[string]*domain.Product // productID -> product
	customers  map[uuid.UUID]*domain.Customer
	phones     map[string]uuid.UUID // phone -> customerID
	orders     map[uuid.UUID]*domain.Order
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		products:  make(map[string]*domain.Product),
		customers: make(map[uuid.UUID]*domain.Customer),
		phones:    make(map[string]uuid.UUID),
		orders:    make(map[uuid.UUID]*domain.Order),
	}
}

// NewSeededMemoryStore returns a store holding the given catalog and customers.
func NewSeededMemoryStore(categories []*domain.Category, products []*domain.Product, customers []*domain.Customer) *MemoryStore {
	s := NewMemoryStore()
	for _, c := range categories {
		s.PutCategory(c)
	}
	for _, p := range products {
		s.PutProduct(p)
	}
	for _, c := range customers {
		cp := *c
		s.customers[c.ID] = &cp
		s.phones[c.Phone] = c.ID
	}
	return s
}

// PutCategory adds or replaces a category. Its Products field is ignored.
func (s *MemoryStore) PutCategory(c *domain.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *c
	cp.Products = nil
	for i, existing := range s.categories {
		if existing.ID == c.ID {
			s.categories[i] = &cp
			return
		}
	}
	s.categories = append(s.categories, &cp)
}

// PutProduct adds or replaces a product.
func (s *MemoryStore) PutProduct(p *domain.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *p
	s.products[p.ID] = &cp
}

func (s *MemoryStore) GetCategories(ctx context.Context) ([]*domain.Category, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Category, 0, len(s.categories))
	for _, c := range s.categories {
		cp := *c
		cp.Products = s.productsLocked(c.ID)
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// GetProducts lists products ordered by name, filtered by category when categoryID is not empty.
func (s *MemoryStore) GetProducts(ctx context.Context, categoryID string) ([]*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.productsLocked(categoryID), nil
}

func (s *MemoryStore) productsLocked(categoryID string) []*domain.Product {
	result := []*domain.Product{}
	for _, p := range s.products {
		if categoryID != "" && p.CategoryID != categoryID {
			continue
		}
		cp := *p
		result = append(result, &cp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

func (s *MemoryStore) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	cp := *p
	return &cp, nil
}

// GetProductsByIDs returns the products that exist; unknown ids are omitted.
func (s *MemoryStore) GetProductsByIDs(ctx context.Context, ids []string) ([]*domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Product, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		p, ok := s.products[id]
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		cp := *p
		result = append(result, &cp)
	}
	return result, nil
}

func (s *MemoryStore) GetCustomerByID(ctx context.Context, id uuid.UUID) (*domain.Customer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.customers[id]
	if !ok {
		return nil, ErrCustomerNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *MemoryStore) GetCustomerByPhone(ctx context.Context, phone string) (*domain.Customer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.phones[phone]
	if !ok {
		return nil, ErrCustomerNotFound
	}
	cp := *s.customers[id]
	return &cp, nil
}

// CreateCustomer checks phone uniqueness and inserts under the same write lock.
func (s *MemoryStore) CreateCustomer(ctx context.Context, c *domain.Customer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.phones[c.Phone]; exists {
		return ErrCustomerExists
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	cp := *c
	s.customers[c.ID] = &cp
	s.phones[c.Phone] = c.ID
	return nil
}

// CreateOrder records an order once. Orders are never updated afterwards.
func (s *MemoryStore) CreateOrder(ctx context.Context, order *domain.Order) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !order.Total.Equal(order.Subtotal.Sub(order.Discount).Add(order.Tax)) {
		return ErrBrokenTotal
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.orders[order.ID]; exists {
		return ErrOrderExists
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now().UTC()
	}
	s.orders[order.ID] = copyOrder(order)
	return nil
}

func (s *MemoryStore) GetOrderByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	return copyOrder(o), nil
}

// ListOrders returns orders newest first, optionally restricted to one customer.
func (s *MemoryStore) ListOrders(ctx context.Context, customerID *uuid.UUID) ([]*domain.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := []*domain.Order{}
	for _, o := range s.orders {
		if customerID != nil && (o.CustomerID == nil || *o.CustomerID != *customerID) {
			continue
		}
		result = append(result, copyOrder(o))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *MemoryStore) Close() error {
	return nil
}

func copyOrder(o *domain.Order) *domain.Order {
	cp := *o
	cp.Items = append([]domain.OrderItem(nil), o.Items...)
	if o.CustomerID != nil {
		id := *o.CustomerID
		cp.CustomerID = &id
	}
	return &cp
}
