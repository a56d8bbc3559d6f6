// Package promhooks exports cache events as prometheus metrics, labelled by
// key family ("films", "genres", "persons").
package promhooks

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/unkn0wn-root/cinecache"
)

type Hooks struct {
	hits      *prometheus.CounterVec
	misses    *prometheus.CounterVec
	rejected  *prometheus.CounterVec
	corrupt   *prometheus.CounterVec
	populated *prometheus.HistogramVec
}

var _ cinecache.Hooks = (*Hooks)(nil)

// New registers the collectors on reg. namespace may be empty.
func New(reg prometheus.Registerer, namespace string) (*Hooks, error) {
	counter := func(name, help string) *prometheus.CounterVec {
		return prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      name,
			Help:      help,
		}, []string{"family"})
	}
	h := &Hooks{
		hits:     counter("hits_total", "Reads served from the cache."),
		misses:   counter("misses_total", "Reads that went to the search store."),
		rejected: counter("set_rejected_total", "Writes the cache provider refused."),
		corrupt:  counter("corrupt_entries_total", "Entries that failed to decode."),
		populated: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "cache",
			Name:      "populated_items",
			Help:      "Items written per cache populate.",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100},
		}, []string{"family"}),
	}
	for _, c := range []prometheus.Collector{h.hits, h.misses, h.rejected, h.corrupt, h.populated} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return h, nil
}

func family(key string) string {
	f, _, _ := strings.Cut(key, ":")
	if f == "" {
		return "unknown"
	}
	return f
}

func (h *Hooks) CacheHit(key string)             { h.hits.WithLabelValues(family(key)).Inc() }
func (h *Hooks) CacheMiss(key string)            { h.misses.WithLabelValues(family(key)).Inc() }
func (h *Hooks) ProviderSetRejected(key string)  { h.rejected.WithLabelValues(family(key)).Inc() }
func (h *Hooks) CorruptEntry(key string, _ error) { h.corrupt.WithLabelValues(family(key)).Inc() }

func (h *Hooks) CachePopulated(key string, items int) {
	h.populated.WithLabelValues(family(key)).Observe(float64(items))
}
