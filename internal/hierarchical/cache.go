package hierarchical

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/ristretto"

	"github.com/arx-os/zlayout/internal/geometry"
	"github.com/arx-os/zlayout/internal/telemetry/metrics"
)

// queryCache memoizes parallel_query_range results, adapted from the
// teacher's internal/database.QueryCache (dgraph-io/ristretto backed).
type queryCache struct {
	cache   *ristretto.Cache
	ttl     time.Duration
	metrics *metrics.IndexMetrics

	mu       sync.Mutex
	hits     int64
	misses   int64
}

func newQueryCache(maxCost int64, ttl time.Duration, m *metrics.IndexMetrics) (*queryCache, error) {
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: maxCost / 10,
		MaxCost:     maxCost,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("zlayout: creating query cache: %w", err)
	}
	return &queryCache{cache: cache, ttl: ttl, metrics: m}, nil
}

func rangeKey(r geometry.Rectangle) string {
	h := md5.New()
	fmt.Fprintf(h, "%g:%g:%g:%g", r.X, r.Y, r.Width, r.Height)
	return hex.EncodeToString(h.Sum(nil))
}

func (qc *queryCache) get(r geometry.Rectangle) (interface{}, bool) {
	value, found := qc.cache.Get(rangeKey(r))

	qc.mu.Lock()
	if found {
		qc.hits++
	} else {
		qc.misses++
	}
	qc.mu.Unlock()

	if qc.metrics != nil {
		if found {
			qc.metrics.RecordCacheHit()
		} else {
			qc.metrics.RecordCacheMiss()
		}
	}
	return value, found
}

func (qc *queryCache) set(r geometry.Rectangle, value interface{}, cost int64) {
	qc.cache.SetWithTTL(rangeKey(r), value, cost, qc.ttl)
	qc.cache.Wait()
}

// invalidate drops every cached entry. Called after any mutation — inserts
// and optimize_hierarchy both change which objects a range query would
// return, and this cache has no fine-grained invalidation.
func (qc *queryCache) invalidate() {
	qc.cache.Clear()
}

type cacheStats struct {
	Hits, Misses int64
}

func (qc *queryCache) stats() cacheStats {
	qc.mu.Lock()
	defer qc.mu.Unlock()
	return cacheStats{Hits: qc.hits, Misses: qc.misses}
}
