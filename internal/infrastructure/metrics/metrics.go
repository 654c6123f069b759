// Package metrics exposes the service's Prometheus metrics from a private registry.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Metric names
const (
	MetricHTTPRequestsTotal          = "agro_http_requests_total"
	MetricHTTPRequestDurationSeconds = "agro_http_request_duration_seconds"
	MetricPropertiesTotal            = "agro_properties_total"
	MetricHectaresTotal              = "agro_hectares_total"
	MetricScrapeErrorsTotal          = "agro_registry_scrape_errors_total"
)

// HTTPDurationBuckets are the latency buckets in seconds
var HTTPDurationBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}

// Metrics holds the registry and the request instruments.
//
// Thread Safety: Safe for concurrent use by multiple goroutines.
type Metrics struct {
	registry        *prometheus.Registry
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// New creates the registry with Go runtime and process collectors
func New() *Metrics {
	registry := prometheus.NewRegistry()
	m := &Metrics{
		registry: registry,
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricHTTPRequestsTotal,
			Help: "Total number of HTTP requests by method, route and status",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    MetricHTTPRequestDurationSeconds,
			Help:    "HTTP request latency in seconds",
			Buckets: HTTPDurationBuckets,
		}, []string{"method", "route"}),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requestsTotal,
		m.requestDuration,
	)
	return m
}

// Registry returns the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the exposition format for the registry
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveHTTPRequest records one served request
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, elapsed time.Duration) {
	m.requestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// RegistryTotals provides the aggregate registry figures
type RegistryTotals interface {
	TotalFarms(ctx context.Context) (int64, error)
	TotalHectares(ctx context.Context) (decimal.Decimal, error)
}

// RegisterRegistryCollector exports the registry totals, read at scrape time
func (m *Metrics) RegisterRegistryCollector(totals RegistryTotals, timeout time.Duration, logger *zap.Logger) error {
	return m.registry.Register(NewRegistryCollector(totals, timeout, logger))
}

// RegistryCollector reports farm count and hectares on every scrape.
// A failed read is counted and the affected gauge is skipped.
type RegistryCollector struct {
	totals  RegistryTotals
	timeout time.Duration
	logger  *zap.Logger

	propertiesDesc *prometheus.Desc
	hectaresDesc   *prometheus.Desc
	scrapeErrors   prometheus.Counter
}

// NewRegistryCollector creates a collector bounded by timeout per scrape
func NewRegistryCollector(totals RegistryTotals, timeout time.Duration, logger *zap.Logger) *RegistryCollector {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RegistryCollector{
		totals:  totals,
		timeout: timeout,
		logger:  logger,
		propertiesDesc: prometheus.NewDesc(MetricPropertiesTotal,
			"Number of registered properties", nil, nil),
		hectaresDesc: prometheus.NewDesc(MetricHectaresTotal,
			"Sum of the total area of every registered property in hectares", nil, nil),
		scrapeErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricScrapeErrorsTotal,
			Help: "Failed reads of the registry totals during a scrape",
		}),
	}
}

// Describe implements prometheus.Collector
func (c *RegistryCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.propertiesDesc
	ch <- c.hectaresDesc
	c.scrapeErrors.Describe(ch)
}

// Collect implements prometheus.Collector
func (c *RegistryCollector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	if farms, err := c.totals.TotalFarms(ctx); err != nil {
		c.failed("total_farms", err)
	} else {
		ch <- prometheus.MustNewConstMetric(c.propertiesDesc, prometheus.GaugeValue, float64(farms))
	}

	if hectares, err := c.totals.TotalHectares(ctx); err != nil {
		c.failed("total_hectares", err)
	} else {
		ch <- prometheus.MustNewConstMetric(c.hectaresDesc, prometheus.GaugeValue, hectares.InexactFloat64())
	}

	c.scrapeErrors.Collect(ch)
}

func (c *RegistryCollector) failed(report string, err error) {
	c.scrapeErrors.Inc()
	c.logger.Warn("registry metrics scrape failed", zap.String("report", report), zap.Error(err))
}
