package cinecache

import (
	"context"
	"errors"
	"time"

	"github.com/unkn0wn-root/cinecache/codec"
	"github.com/unkn0wn-root/cinecache/internal/wire"
	pr "github.com/unkn0wn-root/cinecache/provider"
)

// TypedCache stores values of V as item or list entries. A miss is reported
// with ok=false and a nil error.
type TypedCache[V any] struct {
	provider pr.Provider
	codec    codec.Codec[V]
	ttl      time.Duration
	log      Logger
	hooks    Hooks
}

func NewTypedCache[V any](p pr.Provider, c codec.Codec[V], opts Options) (*TypedCache[V], error) {
	if p == nil {
		return nil, errors.New("cinecache: provider is required")
	}
	if c == nil {
		return nil, errors.New("cinecache: codec is required")
	}
	if opts.TTL < 0 {
		return nil, errors.New("cinecache: ttl must not be negative")
	}
	opts = opts.withDefaults()
	return &TypedCache[V]{
		provider: p,
		codec:    c,
		ttl:      opts.TTL,
		log:      opts.Logger,
		hooks:    opts.Hooks,
	}, nil
}

func (c *TypedCache[V]) TTL() time.Duration { return c.ttl }

func (c *TypedCache[V]) GetItem(ctx context.Context, key string) (V, bool, error) {
	var zero V
	raw, ok, err := c.provider.Get(ctx, key)
	if err != nil {
		return zero, false, &CacheError{Op: "get", Key: key, Err: err}
	}
	if !ok {
		return zero, false, nil
	}
	payload, err := wire.DecodeItem(raw)
	if err != nil {
		return zero, false, c.corrupt(key, err)
	}
	v, err := c.codec.Decode(payload)
	if err != nil {
		return zero, false, c.corrupt(key, err)
	}
	return v, true, nil
}

func (c *TypedCache[V]) GetList(ctx context.Context, key string) ([]V, bool, error) {
	raw, ok, err := c.provider.Get(ctx, key)
	if err != nil {
		return nil, false, &CacheError{Op: "get", Key: key, Err: err}
	}
	if !ok {
		return nil, false, nil
	}
	payloads, err := wire.DecodeList(raw)
	if err != nil {
		return nil, false, c.corrupt(key, err)
	}
	out := make([]V, 0, len(payloads))
	for _, p := range payloads {
		v, err := c.codec.Decode(p)
		if err != nil {
			return nil, false, c.corrupt(key, err)
		}
		out = append(out, v)
	}
	return out, true, nil
}

func (c *TypedCache[V]) SaveItem(ctx context.Context, key string, v V) error {
	payload, err := c.codec.Encode(v)
	if err != nil {
		return err
	}
	b, err := wire.EncodeItem(payload)
	if err != nil {
		return err
	}
	return c.set(ctx, key, b)
}

func (c *TypedCache[V]) SaveList(ctx context.Context, key string, vs []V) error {
	payloads := make([][]byte, 0, len(vs))
	for _, v := range vs {
		p, err := c.codec.Encode(v)
		if err != nil {
			return err
		}
		payloads = append(payloads, p)
	}
	b, err := wire.EncodeList(payloads)
	if err != nil {
		return err
	}
	return c.set(ctx, key, b)
}

func (c *TypedCache[V]) set(ctx context.Context, key string, b []byte) error {
	ok, err := c.provider.Set(ctx, key, b, c.ttl)
	if err != nil {
		return &CacheError{Op: "set", Key: key, Err: err}
	}
	if !ok {
		c.log.Debug("cache write rejected by provider (pressure)", Fields{"key": key})
		c.hooks.ProviderSetRejected(key)
	}
	return nil
}

func (c *TypedCache[V]) corrupt(key string, err error) error {
	c.log.Error("corrupt cache entry", Fields{"key": key, "err": err.Error()})
	c.hooks.CorruptEntry(key, err)
	return &CorruptEntryError{Key: key, Err: err}
}
