// Package metrics exports index and worker-pool statistics as Prometheus
// gauges/counters, adapted from the teacher's gateway middleware
// (arx-backend/gateway/middleware/monitoring.go) down to the handful of
// series a spatial index actually produces.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// IndexMetrics holds every gauge/counter a hierarchical index reports.
type IndexMetrics struct {
	blockCount        prometheus.Gauge
	objectCount       *prometheus.GaugeVec
	quadtreeNodes     *prometheus.GaugeVec
	rtreeNodes        *prometheus.GaugeVec
	queryCounter      *prometheus.CounterVec
	queryDuration     *prometheus.HistogramVec
	cacheHits         prometheus.Counter
	cacheMisses       prometheus.Counter
	optimizeRunCount  prometheus.Counter
	workerPoolActive  prometheus.Gauge
	workerPoolQueued  prometheus.Gauge
}

// NewIndexMetrics registers and returns the gauges/counters for one
// hierarchical index instance. Registering twice under the same label set
// panics, matching promauto's behavior — callers build one IndexMetrics
// per process, not per block.
func NewIndexMetrics() *IndexMetrics {
	return &IndexMetrics{
		blockCount: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "zlayout_ip_blocks_total",
			Help: "Number of IP blocks currently in the hierarchical index.",
		}),
		objectCount: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "zlayout_block_object_count",
			Help: "Number of objects stored in a given block's indices.",
		}, []string{"block"}),
		quadtreeNodes: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "zlayout_quadtree_nodes",
			Help: "Total node count of a block's quadtree.",
		}, []string{"block"}),
		rtreeNodes: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "zlayout_rtree_nodes",
			Help: "Total node count of a block's R-tree.",
		}, []string{"block"}),
		queryCounter: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "zlayout_queries_total",
			Help: "Total number of queries served, by kind.",
		}, []string{"kind"}),
		queryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "zlayout_query_duration_seconds",
			Help:    "Query latency in seconds, by kind.",
			Buckets: prometheus.DefBuckets,
		}, []string{"kind"}),
		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "zlayout_query_cache_hits_total",
			Help: "Total ristretto query-cache hits.",
		}),
		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "zlayout_query_cache_misses_total",
			Help: "Total ristretto query-cache misses.",
		}),
		optimizeRunCount: promauto.NewCounter(prometheus.CounterOpts{
			Name: "zlayout_optimize_hierarchy_runs_total",
			Help: "Total number of optimize_hierarchy passes executed.",
		}),
		workerPoolActive: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "zlayout_worker_pool_size",
			Help: "Configured worker pool size.",
		}),
		workerPoolQueued: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "zlayout_worker_pool_queue_depth",
			Help: "Approximate task queue depth at last sample.",
		}),
	}
}

// SetBlockCount records the current number of IP blocks.
func (m *IndexMetrics) SetBlockCount(n int) { m.blockCount.Set(float64(n)) }

// SetBlockStats records one block's object/node counts.
func (m *IndexMetrics) SetBlockStats(block string, objects, quadtreeNodes, rtreeNodes int) {
	m.objectCount.WithLabelValues(block).Set(float64(objects))
	m.quadtreeNodes.WithLabelValues(block).Set(float64(quadtreeNodes))
	m.rtreeNodes.WithLabelValues(block).Set(float64(rtreeNodes))
}

// ObserveQuery records one query's kind and latency.
func (m *IndexMetrics) ObserveQuery(kind string, seconds float64) {
	m.queryCounter.WithLabelValues(kind).Inc()
	m.queryDuration.WithLabelValues(kind).Observe(seconds)
}

// RecordCacheHit increments the query-cache hit counter.
func (m *IndexMetrics) RecordCacheHit() { m.cacheHits.Inc() }

// RecordCacheMiss increments the query-cache miss counter.
func (m *IndexMetrics) RecordCacheMiss() { m.cacheMisses.Inc() }

// RecordOptimizeRun increments the optimize_hierarchy run counter.
func (m *IndexMetrics) RecordOptimizeRun() { m.optimizeRunCount.Inc() }

// SetWorkerPoolStats records the pool's static size and an instantaneous
// queue-depth sample.
func (m *IndexMetrics) SetWorkerPoolStats(size, queueDepth int) {
	m.workerPoolActive.Set(float64(size))
	m.workerPoolQueued.Set(float64(queueDepth))
}
