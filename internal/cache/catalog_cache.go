// Package cache keeps catalog products close to the barcode lookup path.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go-expiry-tracker/internal/model"

	"github.com/redis/go-redis/v9"
)

const catalogKeyPrefix = "catalog:"

// ErrMiss is returned by Get when the code is not cached
var ErrMiss = errors.New("cache miss")

// CatalogCache stores catalog products by barcode
type CatalogCache interface {
	Get(ctx context.Context, code string) (*model.Product, error)
	Set(ctx context.Context, product *model.Product) error
	Invalidate(ctx context.Context, code string) error
}

type RedisCatalogCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCatalogCache(client *redis.Client, ttl time.Duration) *RedisCatalogCache {
	return &RedisCatalogCache{client: client, ttl: ttl}
}

func (r *RedisCatalogCache) Get(ctx context.Context, code string) (*model.Product, error) {
	raw, err := r.client.Get(ctx, catalogKeyPrefix+code).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, err
	}

	var product model.Product
	if err := json.Unmarshal(raw, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *RedisCatalogCache) Set(ctx context.Context, product *model.Product) error {
	raw, err := json.Marshal(product)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, catalogKeyPrefix+product.Code, raw, r.ttl).Err()
}

func (r *RedisCatalogCache) Invalidate(ctx context.Context, code string) error {
	return r.client.Del(ctx, catalogKeyPrefix+code).Err()
}

// Nop never stores anything; every Get misses.
type Nop struct{}

func (Nop) Get(context.Context, string) (*model.Product, error) { return nil, ErrMiss }
func (Nop) Set(context.Context, *model.Product) error           { return nil }
func (Nop) Invalidate(context.Context, string) error            { return nil }
