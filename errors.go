package cinecache

import (
	"errors"
	"fmt"

	"github.com/unkn0wn-root/cinecache/store"
)

// ErrNotFound reports a point read for a document the store does not have.
var ErrNotFound = store.ErrNotFound

// CorruptEntryError is returned when a cache entry exists but cannot be
// decoded. The entry is left in place.
type CorruptEntryError struct {
	Key string
	Err error
}

func (e *CorruptEntryError) Error() string {
	return fmt.Sprintf("cinecache: corrupt entry %q: %v", e.Key, e.Err)
}

func (e *CorruptEntryError) Unwrap() error { return e.Err }

// CacheError wraps a cache provider failure.
type CacheError struct {
	Op  string // "get" | "set"
	Key string
	Err error
}

func (e *CacheError) Error() string {
	return fmt.Sprintf("cinecache: cache %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *CacheError) Unwrap() error { return e.Err }

// StoreError wraps a search store failure, including documents that do not
// decode into the requested type.
type StoreError struct {
	Op         string // "get" | "search" | "get_all" | "decode"
	Collection string
	Err        error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("cinecache: store %s %s: %v", e.Op, e.Collection, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// Result is the outcome class of a read.
type Result int

const (
	ResultOK Result = iota
	ResultNotFound
	ResultInternal
)

func (r Result) String() string {
	switch r {
	case ResultOK:
		return "ok"
	case ResultNotFound:
		return "not_found"
	default:
		return "internal"
	}
}

// Classify maps a read error to its Result.
func Classify(err error) Result {
	switch {
	case err == nil:
		return ResultOK
	case errors.Is(err, ErrNotFound):
		return ResultNotFound
	default:
		return ResultInternal
	}
}
