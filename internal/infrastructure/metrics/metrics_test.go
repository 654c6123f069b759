package metrics

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubTotals struct {
	farms    int64
	hectares decimal.Decimal
	err      error
}

func (s stubTotals) TotalFarms(context.Context) (int64, error) {
	return s.farms, s.err
}

func (s stubTotals) TotalHectares(context.Context) (decimal.Decimal, error) {
	return s.hectares, s.err
}

func TestMetrics_ObserveHTTPRequest(t *testing.T) {
	m := New()

	m.ObserveHTTPRequest(http.MethodPost, "/api/v1/producers", http.StatusCreated, 15*time.Millisecond)
	m.ObserveHTTPRequest(http.MethodPost, "/api/v1/producers", http.StatusCreated, 20*time.Millisecond)
	m.ObserveHTTPRequest(http.MethodPost, "/api/v1/producers", http.StatusConflict, 5*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("POST", "/api/v1/producers", "201")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requestsTotal.WithLabelValues("POST", "/api/v1/producers", "409")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.requestDuration))
}

func TestRegistryCollector(t *testing.T) {
	c := NewRegistryCollector(stubTotals{farms: 3, hectares: decimal.RequireFromString("1250.50")}, time.Second, zap.NewNop())

	expected := `
# HELP agro_hectares_total Sum of the total area of every registered property in hectares
# TYPE agro_hectares_total gauge
agro_hectares_total 1250.5
# HELP agro_properties_total Number of registered properties
# TYPE agro_properties_total gauge
agro_properties_total 3
`
	err := testutil.CollectAndCompare(c, strings.NewReader(expected), MetricPropertiesTotal, MetricHectaresTotal)
	assert.NoError(t, err)
}

func TestRegistryCollector_ReadFailure(t *testing.T) {
	c := NewRegistryCollector(stubTotals{err: errors.New("db down")}, time.Second, zap.NewNop())

	assert.Equal(t, 1, testutil.CollectAndCount(c))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.scrapeErrors))
}

func TestMetrics_Handler(t *testing.T) {
	m := New()
	require.NoError(t, m.RegisterRegistryCollector(stubTotals{farms: 1, hectares: decimal.NewFromInt(10)}, time.Second, nil))
	m.ObserveHTTPRequest(http.MethodGet, "/api/v1/reports/total-farms", http.StatusOK, time.Millisecond)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `agro_http_requests_total{method="GET",route="/api/v1/reports/total-farms",status="200"} 1`)
	assert.Contains(t, body, "agro_properties_total 1")
	assert.Contains(t, body, "agro_hectares_total 10")
	assert.Contains(t, body, "go_goroutines")
}
