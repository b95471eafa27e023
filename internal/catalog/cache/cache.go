package cache

import (
	"context"
	"errors"

	"github.com/fjod/go_pos/internal/domain"
)

// CatalogCache holds catalog listings for display. Checkout never reads prices from it.
type CatalogCache interface {
	GetProducts(ctx context.Context, categoryID string) ([]*domain.Product, error)
	SetProducts(ctx context.Context, categoryID string, products []*domain.Product) error
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	SetProduct(ctx context.Context, product *domain.Product) error
	GetCategories(ctx context.Context) ([]*domain.Category, error)
	SetCategories(ctx context.Context, categories []*domain.Category) error
}

var ErrCacheMiss = errors.New("cache miss")
