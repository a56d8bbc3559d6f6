package cinecache

// Hooks lightweight callbacks for high-signal events.
// Implementations MUST be cheap and non-blocking.
// The repositories call them on every read.
type Hooks interface {
	// The entry was served from the cache.
	CacheHit(key string)

	// The entry was absent; the store will be asked.
	CacheMiss(key string)

	// A store result was written under key. items is 1 for point reads.
	CachePopulated(key string, items int)

	// Provider returned ok=false on Set (backpressure/eviction).
	ProviderSetRejected(key string)

	// The entry under key could not be decoded.
	CorruptEntry(key string, err error)
}

// NopHooks is the default no-op
type NopHooks struct{}

func (NopHooks) CacheHit(string)            {}
func (NopHooks) CacheMiss(string)           {}
func (NopHooks) CachePopulated(string, int) {}
func (NopHooks) ProviderSetRejected(string) {}
func (NopHooks) CorruptEntry(string, error) {}
