package cinecache

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/unkn0wn-root/cinecache/query"
	"github.com/unkn0wn-root/cinecache/store"
)

// SearchRepository reads one collection of a SearchStore and decodes each
// document into V.
type SearchRepository[V any] struct {
	store      store.SearchStore
	collection string
}

func NewSearchRepository[V any](s store.SearchStore, collection string) (*SearchRepository[V], error) {
	if s == nil {
		return nil, errors.New("cinecache: search store is required")
	}
	if collection == "" {
		return nil, errors.New("cinecache: collection is required")
	}
	return &SearchRepository[V]{store: s, collection: collection}, nil
}

func (r *SearchRepository[V]) Collection() string { return r.collection }

func (r *SearchRepository[V]) GetByID(ctx context.Context, id string) (V, error) {
	var zero V
	doc, err := r.store.GetByID(ctx, r.collection, id)
	if err != nil {
		return zero, &StoreError{Op: "get", Collection: r.collection, Err: err}
	}
	var v V
	if err := json.Unmarshal(doc, &v); err != nil {
		return zero, &StoreError{Op: "decode", Collection: r.collection, Err: err}
	}
	return v, nil
}

func (r *SearchRepository[V]) Search(ctx context.Context, req query.Request) ([]V, error) {
	docs, err := r.store.Search(ctx, r.collection, req)
	if err != nil {
		return nil, &StoreError{Op: "search", Collection: r.collection, Err: err}
	}
	return r.decodeAll(docs)
}

func (r *SearchRepository[V]) GetAll(ctx context.Context, req query.Request) ([]V, error) {
	docs, err := r.store.GetAll(ctx, r.collection, req)
	if err != nil {
		return nil, &StoreError{Op: "get_all", Collection: r.collection, Err: err}
	}
	return r.decodeAll(docs)
}

func (r *SearchRepository[V]) decodeAll(docs []store.Document) ([]V, error) {
	out := make([]V, 0, len(docs))
	for _, d := range docs {
		var v V
		if err := json.Unmarshal(d, &v); err != nil {
			return nil, &StoreError{Op: "decode", Collection: r.collection, Err: err}
		}
		out = append(out, v)
	}
	return out, nil
}
