package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/shopassist-poc/server/internal/agent/model"
	errx "github.com/shopassist-poc/server/internal/core/error"
	logx "github.com/shopassist-poc/server/pkg/logger"
)

const (
	productsKey = "catalog:products"
	ordersKey   = "catalog:orders"
)

// LoadFromRedis loads the catalog and order datasets from Redis once at
// startup. The datasets stay read-only for the process lifetime; Redis is a
// data source here, not run-state persistence. A missing key surfaces as a
// not-found error so the caller can fall back to the embedded datasets.
func LoadFromRedis(ctx context.Context, rdb redis.Cmdable) (*Catalog, *Orders, error) {
	raw, err := rdb.Get(ctx, productsKey).Bytes()
	if err != nil {
		logx.Warn().Err(err).Str("key", productsKey).Msg("failed to load products from redis")
		return nil, nil, errx.WrapRedis(err)
	}
	var products []model.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, nil, fmt.Errorf("unmarshal products from redis: %w", err)
	}

	raw, err = rdb.Get(ctx, ordersKey).Bytes()
	if err != nil {
		logx.Warn().Err(err).Str("key", ordersKey).Msg("failed to load orders from redis")
		return nil, nil, errx.WrapRedis(err)
	}
	var orders []model.Order
	if err := json.Unmarshal(raw, &orders); err != nil {
		return nil, nil, fmt.Errorf("unmarshal orders from redis: %w", err)
	}

	logx.Debug().Int("products", len(products)).Int("orders", len(orders)).Msg("loaded datasets from redis")
	return NewCatalog(products), NewOrders(orders), nil
}

// Seed writes the given datasets into Redis so later processes can load them
// with LoadFromRedis. Intended for local bootstrap with the embedded data.
func Seed(ctx context.Context, rdb redis.Cmdable, c *Catalog, o *Orders) error {
	pb, err := json.Marshal(c.products)
	if err != nil {
		return fmt.Errorf("marshal products: %w", err)
	}
	ob, err := json.Marshal(o.orders)
	if err != nil {
		return fmt.Errorf("marshal orders: %w", err)
	}
	if err := rdb.Set(ctx, productsKey, pb, 0).Err(); err != nil {
		return errx.WrapRedis(err)
	}
	if err := rdb.Set(ctx, ordersKey, ob, 0).Err(); err != nil {
		return errx.WrapRedis(err)
	}
	return nil
}
