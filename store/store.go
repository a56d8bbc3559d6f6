// Package store defines the search store the repositories read documents from.
package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/unkn0wn-root/cinecache/query"
)

// ErrNotFound is returned by GetByID when the collection has no such document.
var ErrNotFound = errors.New("store: document not found")

// Document is a raw JSON source document.
type Document = json.RawMessage

// SearchStore is a read-only document store. Implementations bound every call
// with their own timeout and do not retry on behalf of the caller.
type SearchStore interface {
	GetByID(ctx context.Context, collection, id string) (Document, error)
	Search(ctx context.Context, collection string, req query.Request) ([]Document, error)
	// GetAll returns documents from collection with match-all scoring. Only
	// the pagination and sort of req are applied.
	GetAll(ctx context.Context, collection string, req query.Request) ([]Document, error)
}
