package cache

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// LRU is an in-process cache bounded by entry count. Every entry shares the
// TTL given at construction; the ttl argument of Set is ignored.
type LRU struct {
	lru *expirable.LRU[string, []byte]
}

func NewLRU(size int, ttl time.Duration) *LRU {
	if size <= 0 {
		size = 256
	}
	return &LRU{lru: expirable.NewLRU[string, []byte](size, nil, ttl)}
}

func (c *LRU) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := c.lru.Get(key)
	return v, ok, nil
}

func (c *LRU) Set(_ context.Context, key string, val []byte, _ time.Duration) error {
	c.lru.Add(key, val)
	return nil
}

func (c *LRU) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		c.lru.Remove(k)
	}
	return nil
}

func (c *LRU) Len() int { return c.lru.Len() }
