package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/agro/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
)

func restoreGlobalTracer(t *testing.T) {
	t.Helper()
	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })
}

func testConfig() Config {
	return Config{
		Enabled:       true,
		SamplingRatio: 1,
		ServiceName:   "agro-backend-test",
		Environment:   "test",
	}
}

func TestFromAppConfig(t *testing.T) {
	cfg := &config.Config{
		App: config.AppConfig{Env: "production"},
		Telemetry: config.TelemetryConfig{
			Enabled:           true,
			CollectorEndpoint: "otel:4317",
			SamplingRatio:     0.25,
			ServiceName:       "agro-backend",
			Insecure:          true,
		},
	}

	got := FromAppConfig(cfg, "1.2.3")

	assert.Equal(t, Config{
		Enabled:           true,
		CollectorEndpoint: "otel:4317",
		SamplingRatio:     0.25,
		ServiceName:       "agro-backend",
		ServiceVersion:    "1.2.3",
		Environment:       "production",
		Insecure:          true,
	}, got)
}

func TestNewTracerProvider_Disabled(t *testing.T) {
	ctx := context.Background()
	tp, err := NewTracerProvider(ctx, Config{ServiceName: "agro"}, zap.NewNop())
	require.NoError(t, err)

	assert.False(t, tp.IsEnabled())
	assert.NotNil(t, tp.Tracer("test"))
	assert.NoError(t, tp.ForceFlush(ctx))
	assert.NoError(t, tp.Shutdown(ctx))
}

func TestTracerProvider_ExportsSpans(t *testing.T) {
	restoreGlobalTracer(t)
	ctx := context.Background()
	exporter := tracetest.NewInMemoryExporter()

	tp, err := NewTracerProviderWithExporter(testConfig(), exporter, zap.NewNop())
	require.NoError(t, err)
	require.True(t, tp.IsEnabled())

	_, span := StartServiceSpan(ctx, "report", "total_hectares")
	EndSpan(span, nil)
	_, failed := StartSpan(ctx, "cache.get")
	EndSpan(failed, errors.New("redis down"))

	require.NoError(t, tp.ForceFlush(ctx))
	spans := exporter.GetSpans()
	require.Len(t, spans, 2)

	assert.Equal(t, "report.total_hectares", spans[0].Name)
	assert.Equal(t, codes.Ok, spans[0].Status.Code)
	assert.Equal(t, "cache.get", spans[1].Name)
	assert.Equal(t, codes.Error, spans[1].Status.Code)
	assert.Len(t, spans[1].Events, 1)

	var serviceName string
	for _, kv := range spans[0].Resource.Attributes() {
		if kv.Key == "service.name" {
			serviceName = kv.Value.AsString()
		}
	}
	assert.Equal(t, "agro-backend-test", serviceName)

	require.NoError(t, tp.Shutdown(ctx))
}

func TestTracerProvider_EnableSpanProfiles(t *testing.T) {
	restoreGlobalTracer(t)
	ctx := context.Background()
	exporter := tracetest.NewInMemoryExporter()

	tp, err := NewTracerProviderWithExporter(testConfig(), exporter, zap.NewNop())
	require.NoError(t, err)
	tp.EnableSpanProfiles()

	_, isSDK := otel.GetTracerProvider().(*sdktrace.TracerProvider)
	assert.False(t, isSDK, "global provider should be wrapped")

	// spans still reach the exporter through the wrapper
	_, span := StartSpan(ctx, "producer.register")
	EndSpan(span, nil)
	require.NoError(t, tp.ForceFlush(ctx))
	require.Len(t, exporter.GetSpans(), 1)

	require.NoError(t, tp.Shutdown(ctx))
}

func TestTracerProvider_EnableSpanProfilesDisabled(t *testing.T) {
	restoreGlobalTracer(t)
	before := otel.GetTracerProvider()

	tp, err := NewTracerProvider(context.Background(), Config{ServiceName: "agro"}, zap.NewNop())
	require.NoError(t, err)
	tp.EnableSpanProfiles()

	assert.Equal(t, before, otel.GetTracerProvider())
}

func TestNewSampler(t *testing.T) {
	tests := []struct {
		ratio    float64
		contains string
	}{
		{1, "AlwaysOnSampler"},
		{2, "AlwaysOnSampler"},
		{0, "AlwaysOffSampler"},
		{-1, "AlwaysOffSampler"},
		{0.5, "TraceIDRatioBased{0.5}"},
	}

	for _, tt := range tests {
		assert.Contains(t, newSampler(tt.ratio).Description(), tt.contains)
	}
}

func TestTracerProvider_NeverSample(t *testing.T) {
	restoreGlobalTracer(t)
	ctx := context.Background()
	exporter := tracetest.NewInMemoryExporter()
	cfg := testConfig()
	cfg.SamplingRatio = 0

	tp, err := NewTracerProviderWithExporter(cfg, exporter, zap.NewNop())
	require.NoError(t, err)

	_, span := tp.Tracer("test").Start(ctx, "dropped")
	span.End()

	require.NoError(t, tp.ForceFlush(ctx))
	assert.Empty(t, exporter.GetSpans())
	require.NoError(t, tp.Shutdown(ctx))
}

var _ sdktrace.SpanExporter = (*tracetest.InMemoryExporter)(nil)
