// Package cache holds the byte caches used for read-mostly listings.
package cache

import (
	"context"
	"fmt"
	"time"
)

// Cache stores opaque values by key. A miss is reported with ok == false
// and a nil error.
type Cache interface {
	Get(ctx context.Context, key string) (val []byte, ok bool, err error)
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

const (
	BackendLRU   = "lru"
	BackendRedis = "redis"
	BackendNone  = "none"
)

type Options struct {
	Backend   string
	Size      int
	TTL       time.Duration
	RedisAddr string
}

// New builds the cache selected by opts.Backend. The returned close func
// is never nil.
func New(ctx context.Context, opts Options) (Cache, func() error, error) {
	noClose := func() error { return nil }

	switch opts.Backend {
	case BackendLRU, "":
		return NewLRU(opts.Size, opts.TTL), noClose, nil
	case BackendRedis:
		c, err := DialRedis(ctx, opts.RedisAddr)
		if err != nil {
			return nil, noClose, err
		}
		return c, c.Close, nil
	case BackendNone:
		return Noop{}, noClose, nil
	default:
		return nil, noClose, fmt.Errorf("unknown cache backend %q", opts.Backend)
	}
}

// Noop never stores anything.
type Noop struct{}

func (Noop) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }
func (Noop) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (Noop) Delete(context.Context, ...string) error { return nil }
