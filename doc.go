// Package cinecache implements a cache-aside read path between a document
// search store and a byte cache.
//
// Components:
//   - provider.Provider: byte store with TTL (Redis, Ristretto, BigCache).
//   - store.SearchStore: read-only document store (Elasticsearch, in-memory).
//   - TypedCache[V]: typed item/list entries over a Provider and a Codec[V].
//   - SearchRepository[V]: decodes store documents of one collection into V.
//   - CachedSearchRepository[V]: composes both with a keys.Factory.
//
// Read path:
//
//	key := factory.Key(params)
//	v, ok := cache.Get(key)      // hit: done
//	v     = search.Fetch(...)    // miss: ask the store
//	cache.Save(key, v)           // populate, empty lists included
//
// Not-found answers are never cached. Concurrent misses on the same key each
// go to the store; the last write wins.
package cinecache
