package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/TemirB/order-pipeline/internal/domain"
)

var ErrMiss = errors.New("cache miss")

// Store is a byte-level key/value store with per-entry TTL.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

const (
	orderPrefix      = "order:"
	userOrdersPrefix = "ordersByUser:"
)

func OrderKey(id int64) string { return orderPrefix + strconv.FormatInt(id, 10) }

func UserOrdersKey(userID int64) string { return userOrdersPrefix + strconv.FormatInt(userID, 10) }

// OrderCache keeps two independent namespaces: single orders by id and
// order lists by owning user. Entries are JSON and share one fixed TTL.
type OrderCache struct {
	store Store
	ttl   time.Duration
}

func NewOrderCache(store Store, ttl time.Duration) *OrderCache {
	return &OrderCache{store: store, ttl: ttl}
}

func (c *OrderCache) GetOrder(ctx context.Context, id int64) (*domain.Order, bool, error) {
	var o domain.Order
	ok, err := c.get(ctx, OrderKey(id), &o)
	if !ok {
		return nil, false, err
	}
	return &o, true, nil
}

func (c *OrderCache) SetOrder(ctx context.Context, o *domain.Order) error {
	return c.set(ctx, OrderKey(o.ID), o)
}

func (c *OrderCache) EvictOrder(ctx context.Context, id int64) error {
	return c.store.Del(ctx, OrderKey(id))
}

func (c *OrderCache) GetUserOrders(ctx context.Context, userID int64) ([]domain.Order, bool, error) {
	var orders []domain.Order
	ok, err := c.get(ctx, UserOrdersKey(userID), &orders)
	if !ok {
		return nil, false, err
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return orders, true, nil
}

func (c *OrderCache) SetUserOrders(ctx context.Context, userID int64, orders []domain.Order) error {
	if orders == nil {
		orders = []domain.Order{}
	}
	return c.set(ctx, UserOrdersKey(userID), orders)
}

func (c *OrderCache) EvictUserOrders(ctx context.Context, userID int64) error {
	return c.store.Del(ctx, UserOrdersKey(userID))
}

func (c *OrderCache) get(ctx context.Context, key string, v any) (bool, error) {
	raw, err := c.store.Get(ctx, key)
	if errors.Is(err, ErrMiss) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache get %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("cache decode %s: %w", key, err)
	}
	return true, nil
}

func (c *OrderCache) set(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}
	if err := c.store.Set(ctx, key, raw, c.ttl); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}
