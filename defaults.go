package cinecache

import "time"

// DefaultTTL is how long populated entries live when Options.TTL is unset.
const DefaultTTL = 300 * time.Second

// coalesce returns def when v is the zero value of T - otherwise v.
func coalesce[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}
