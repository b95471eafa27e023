package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/fjod/go_pos/internal/domain"
	"github.com/redis/go-redis/v9"
)

func NewRedisCache(client *redis.Client, baseTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:  client,
		baseTTL: baseTTL,
	}
}

type RedisCache struct {
	client  *redis.Client
	baseTTL time.Duration
}

func (r RedisCache) GetProducts(ctx context.Context, categoryID string) ([]*domain.Product, error) {
	var products []*domain.Product
	if err := r.get(ctx, productsKey(categoryID), &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (r RedisCache) SetProducts(ctx context.Context, categoryID string, products []*domain.Product) error {
	return r.set(ctx, productsKey(categoryID), products)
}

func (r RedisCache) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	var product domain.Product
	if err := r.get(ctx, productKey(id), &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (r RedisCache) SetProduct(ctx context.Context, product *domain.Product) error {
	return r.set(ctx, productKey(product.ID), product)
}

func (r RedisCache) GetCategories(ctx context.Context) ([]*domain.Category, error) {
	var categories []*domain.Category
	if err := r.get(ctx, categoriesKey(), &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r RedisCache) SetCategories(ctx context.Context, categories []*domain.Category) error {
	return r.set(ctx, categoriesKey(), categories)
}

func (r RedisCache) get(ctx context.Context, key string, dst any) error {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrCacheMiss
	}
	if err != nil {
		return fmt.Errorf("redis get failed: %w", err)
	}

	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("unmarshal %s failed: %w", key, err)
	}
	return nil
}

func (r RedisCache) set(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s failed: %w", key, err)
	}

	jitter := time.Duration(rand.Int63n(int64(r.baseTTL)/5 + 1))
	if err := r.client.Set(ctx, key, data, r.baseTTL+jitter).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func productsKey(categoryID string) string {
	if categoryID == "" {
		return "catalog:products:all"
	}
	return fmt.Sprintf("catalog:products:%s", categoryID)
}

func productKey(id string) string {
	return fmt.Sprintf("catalog:product:%s", id)
}

func categoriesKey() string {
	return "catalog:categories"
}
