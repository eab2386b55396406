package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewOrderMetrics(reg)

	m.OrderPlaced(3, 20*time.Millisecond)
	m.OrderPlaced(1, 10*time.Millisecond)
	m.OrderRejected("INSUFFICIENT_STOCK")
	m.OrderRejected("INSUFFICIENT_STOCK")
	m.OrderRejected("PRODUCT_NOT_FOUND")
	m.OrderCancelled()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.placed))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cancelled))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.rejected.WithLabelValues("INSUFFICIENT_STOCK")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rejected.WithLabelValues("PRODUCT_NOT_FOUND")))

	var pb dto.Metric
	require.NoError(t, m.placeDuration.Write(&pb))
	assert.Equal(t, uint64(2), pb.GetHistogram().GetSampleCount())
}

func TestNewOrderMetrics_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first := NewOrderMetrics(reg)
	second := NewOrderMetrics(reg)

	first.OrderCancelled()
	second.OrderCancelled()

	assert.Equal(t, 2.0, testutil.ToFloat64(first.cancelled))
}
