package metrics

import (
	"testing"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// m is constructed once for the package: promauto registers against the
// default registry, and a second NewIndexMetrics call would panic on
// duplicate registration.
var m = NewIndexMetrics()

func gaugeValue(t *testing.T, g interface{ Write(*dto.Metric) error }) float64 {
	t.Helper()
	var metric dto.Metric
	require.NoError(t, g.Write(&metric))
	return metric.GetGauge().GetValue()
}

func TestIndexMetrics_SetBlockCount(t *testing.T) {
	m.SetBlockCount(7)
	assert.Equal(t, float64(7), gaugeValue(t, m.blockCount))
}

func TestIndexMetrics_SetBlockStats(t *testing.T) {
	m.SetBlockStats("root", 42, 10, 3)
	assert.Equal(t, float64(42), gaugeValue(t, m.objectCount.WithLabelValues("root")))
	assert.Equal(t, float64(10), gaugeValue(t, m.quadtreeNodes.WithLabelValues("root")))
	assert.Equal(t, float64(3), gaugeValue(t, m.rtreeNodes.WithLabelValues("root")))
}

func TestIndexMetrics_ObserveQueryDoesNotPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		m.ObserveQuery("range", 0.001)
	})
}

func TestIndexMetrics_CacheCountersDoNotPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		m.RecordCacheHit()
		m.RecordCacheMiss()
		m.RecordOptimizeRun()
	})
}

func TestIndexMetrics_SetWorkerPoolStats(t *testing.T) {
	m.SetWorkerPoolStats(8, 5)
	assert.Equal(t, float64(8), gaugeValue(t, m.workerPoolActive))
	assert.Equal(t, float64(5), gaugeValue(t, m.workerPoolQueued))
}
