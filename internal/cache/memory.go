package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Memory is an in-process Store bounded by LRU eviction. Every entry lives for
// the ttl given at construction; the ttl passed to Set is ignored.
type Memory struct {
	lru *expirable.LRU[string, []byte]
}

// NewMemory builds a store of at most size entries. A non-positive ttl means no expiry.
func NewMemory(size int, ttl time.Duration) *Memory {
	if size < 1 {
		size = 1
	}
	if ttl < 0 {
		ttl = 0
	}
	return &Memory{lru: expirable.NewLRU[string, []byte](size, nil, ttl)}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := m.lru.Get(key)
	if !ok {
		return nil, ErrMiss
	}
	return append([]byte(nil), v...), nil
}

// Set stores a copy of value.
func (m *Memory) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.lru.Add(key, append([]byte(nil), value...))
	return nil
}

func (m *Memory) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		m.lru.Remove(k)
	}
	return nil
}

func (m *Memory) Len() int { return m.lru.Len() }
