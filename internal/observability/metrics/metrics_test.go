package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func TestObserveHTTPRequest(t *testing.T) {
	counter := httpRequestsTotal.WithLabelValues("GET", "/api/books", "200")
	before := counterValue(t, counter)

	ObserveHTTPRequest("GET", "/api/books", "200", 15*time.Millisecond)

	assert.Equal(t, before+1, counterValue(t, counter))
}

func TestDomainCounters(t *testing.T) {
	ObserveAuth("success")
	ObserveLowStock("stocks")

	assert.GreaterOrEqual(t, counterValue(t, authAttempts.WithLabelValues("success")), 1.0)
	assert.GreaterOrEqual(t, counterValue(t, lowStockEvents.WithLabelValues("stocks")), 1.0)
}
