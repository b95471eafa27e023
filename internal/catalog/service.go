// Package catalog serves product and category listings for display, backed by the
// catalog repository and a Redis read-through cache.
package catalog

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/fjod/go_pos/internal/catalog/cache"
	"github.com/fjod/go_pos/internal/domain"
	"golang.org/x/sync/singleflight"
)

// Reader is the slice of the catalog repository the service needs.
type Reader interface {
	GetCategories(ctx context.Context) ([]*domain.Category, error)
	GetProducts(ctx context.Context, categoryID string) ([]*domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
}

type Service struct {
	repo  Reader
	cache cache.CatalogCache
	log   *slog.Logger
	sfg   singleflight.Group // Prevents cache stampede

	loadTimeout time.Duration
}

const defaultLoadTimeout = 5 * time.Second

// NewService builds the catalog service. A nil cache reads the repository directly.
func NewService(repo Reader, c cache.CatalogCache, log *slog.Logger) *Service {
	return &Service{
		repo:        repo,
		cache:       c,
		log:         log,
		loadTimeout: defaultLoadTimeout,
	}
}

func (s *Service) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	v, err, _ := s.sfg.Do("categories", func() (interface{}, error) {
		ctx, cancel := s.sharedContext(ctx)
		defer cancel()

		if s.cache != nil {
			categories, err := s.cache.GetCategories(ctx)
			if err == nil {
				return categories, nil
			}
			s.logCacheError(ctx, err)
		}

		categories, err := s.repo.GetCategories(ctx)
		if err != nil {
			return nil, err
		}

		s.fill(func(c context.Context) error { return s.cache.SetCategories(c, categories) })
		return categories, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]*domain.Category), nil
}

func (s *Service) ListProducts(ctx context.Context, categoryID string) ([]*domain.Product, error) {
	v, err, _ := s.sfg.Do("products:"+categoryID, func() (interface{}, error) {
		ctx, cancel := s.sharedContext(ctx)
		defer cancel()

		if s.cache != nil {
			products, err := s.cache.GetProducts(ctx, categoryID)
			if err == nil {
				return products, nil
			}
			s.logCacheError(ctx, err)
		}

		products, err := s.repo.GetProducts(ctx, categoryID)
		if err != nil {
			return nil, err
		}

		s.fill(func(c context.Context) error { return s.cache.SetProducts(c, categoryID, products) })
		return products, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]*domain.Product), nil
}

func (s *Service) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	v, err, _ := s.sfg.Do("product:"+id, func() (interface{}, error) {
		ctx, cancel := s.sharedContext(ctx)
		defer cancel()

		if s.cache != nil {
			product, err := s.cache.GetProduct(ctx, id)
			if err == nil {
				return product, nil
			}
			s.logCacheError(ctx, err)
		}

		product, err := s.repo.GetProduct(ctx, id)
		if err != nil {
			return nil, err
		}

		s.fill(func(c context.Context) error { return s.cache.SetProduct(c, product) })
		return product, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.Product), nil
}

// sharedContext detaches a coalesced load from the caller that started it, so one
// cancelled request does not fail every request waiting on the same key.
func (s *Service) sharedContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), s.loadTimeout)
}

func (s *Service) logCacheError(ctx context.Context, err error) {
	if !errors.Is(err, cache.ErrCacheMiss) {
		s.log.WarnContext(ctx, "catalog cache read failed", slog.Any("error", err))
	}
}

// fill writes to the cache in the background so a slow Redis never delays a read.
func (s *Service) fill(set func(context.Context) error) {
	if s.cache == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := set(ctx); err != nil {
			s.log.Warn("catalog cache write failed", slog.Any("error", err))
		}
	}()
}
