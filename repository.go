package cinecache

import (
	"context"
	"errors"

	"github.com/unkn0wn-root/cinecache/keys"
	"github.com/unkn0wn-root/cinecache/query"
)

// FetchItem is the cache-aside read of a single value: probe key, on miss call
// fetch and store its result. Errors from fetch (ErrNotFound included) are
// returned as is and nothing is written.
func FetchItem[V any](ctx context.Context, c *TypedCache[V], key string, fetch func(context.Context) (V, error)) (V, error) {
	var zero V
	v, ok, err := c.GetItem(ctx, key)
	if err != nil {
		return zero, err
	}
	if ok {
		c.log.Debug("cache hit", Fields{"key": key})
		c.hooks.CacheHit(key)
		return v, nil
	}
	c.log.Debug("cache miss", Fields{"key": key})
	c.hooks.CacheMiss(key)

	v, err = fetch(ctx)
	if err != nil {
		return zero, err
	}
	if err := c.SaveItem(ctx, key, v); err != nil {
		c.log.Error("cache populate failed", Fields{"key": key, "err": err.Error()})
		return zero, err
	}
	c.hooks.CachePopulated(key, 1)
	return v, nil
}

// FetchList is FetchItem for collections. An empty result is cached like any
// other.
func FetchList[V any](ctx context.Context, c *TypedCache[V], key string, fetch func(context.Context) ([]V, error)) ([]V, error) {
	vs, ok, err := c.GetList(ctx, key)
	if err != nil {
		return nil, err
	}
	if ok {
		c.log.Debug("cache hit", Fields{"key": key, "items": len(vs)})
		c.hooks.CacheHit(key)
		return vs, nil
	}
	c.log.Debug("cache miss", Fields{"key": key})
	c.hooks.CacheMiss(key)

	vs, err = fetch(ctx)
	if err != nil {
		return nil, err
	}
	if vs == nil {
		vs = []V{}
	}
	if err := c.SaveList(ctx, key, vs); err != nil {
		c.log.Error("cache populate failed", Fields{"key": key, "err": err.Error()})
		return nil, err
	}
	c.hooks.CachePopulated(key, len(vs))
	return vs, nil
}

// CachedSearchRepository serves reads of one collection from the cache and
// falls back to the search store on miss.
type CachedSearchRepository[V any] struct {
	search *SearchRepository[V]
	cache  *TypedCache[V]
	keys   keys.Factory
}

func NewCachedSearchRepository[V any](search *SearchRepository[V], cache *TypedCache[V], kf keys.Factory) (*CachedSearchRepository[V], error) {
	if search == nil || cache == nil {
		return nil, errors.New("cinecache: search repository and cache are required")
	}
	if kf == nil {
		return nil, errors.New("cinecache: key factory is required")
	}
	return &CachedSearchRepository[V]{search: search, cache: cache, keys: kf}, nil
}

func (r *CachedSearchRepository[V]) Cache() *TypedCache[V] { return r.cache }

func (r *CachedSearchRepository[V]) Collection() string { return r.search.Collection() }

func (r *CachedSearchRepository[V]) GetByID(ctx context.Context, id string, schema Schema) (V, error) {
	key := r.keys.Key(keys.Params{DocID: id, Schema: schema.Name()})
	return FetchItem(ctx, r.cache, key, func(ctx context.Context) (V, error) {
		return r.search.GetByID(ctx, id)
	})
}

func (r *CachedSearchRepository[V]) Search(ctx context.Context, req query.Request, kp keys.Params) ([]V, error) {
	key := r.keys.Key(kp)
	return FetchList(ctx, r.cache, key, func(ctx context.Context) ([]V, error) {
		return r.search.Search(ctx, req)
	})
}

func (r *CachedSearchRepository[V]) GetAll(ctx context.Context, req query.Request, kp keys.Params) ([]V, error) {
	key := r.keys.Key(kp)
	return FetchList(ctx, r.cache, key, func(ctx context.Context) ([]V, error) {
		return r.search.GetAll(ctx, req)
	})
}
