package telemetry

import (
	"context"
	"testing"

	"github.com/agro/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"
)

type testEvent struct {
	shared.BaseDomainEvent
}

func newTestEvent(eventType, aggregateType string) shared.DomainEvent {
	return &testEvent{BaseDomainEvent: shared.NewBaseDomainEvent(eventType, aggregateType, uuid.New())}
}

func newManualMeterProvider(t *testing.T) (*MeterProvider, *sdkmetric.ManualReader) {
	t.Helper()
	prev := otel.GetMeterProvider()
	t.Cleanup(func() { otel.SetMeterProvider(prev) })

	reader := sdkmetric.NewManualReader()
	mp, err := NewMeterProviderWithReader(testConfig(), reader, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })
	return mp, reader
}

func collectSum(t *testing.T, reader *sdkmetric.ManualReader, name string) metricdata.Sum[int64] {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name == name {
				sum, ok := m.Data.(metricdata.Sum[int64])
				require.True(t, ok)
				return sum
			}
		}
	}
	t.Fatalf("metric %s not collected", name)
	return metricdata.Sum[int64]{}
}

func valueFor(sum metricdata.Sum[int64], kv attribute.KeyValue) int64 {
	for _, dp := range sum.DataPoints {
		if v, ok := dp.Attributes.Value(kv.Key); ok && v == kv.Value {
			return dp.Value
		}
	}
	return 0
}

func TestRegistryMetrics_CountsEvents(t *testing.T) {
	mp, reader := newManualMeterProvider(t)
	m, err := NewRegistryMetrics(mp.Meter(TracerName))
	require.NoError(t, err)
	ctx := context.Background()

	assert.Nil(t, m.EventTypes())
	require.NoError(t, m.Handle(ctx, newTestEvent("PropertyRegistered", "Property")))
	require.NoError(t, m.Handle(ctx, newTestEvent("PropertyRegistered", "Property")))
	require.NoError(t, m.Handle(ctx, newTestEvent("CropCreated", "Crop")))

	sum := collectSum(t, reader, "agro.registry.events")
	assert.True(t, sum.IsMonotonic)
	assert.Equal(t, int64(2), valueFor(sum, AttrEventType.String("PropertyRegistered")))
	assert.Equal(t, int64(1), valueFor(sum, AttrEventType.String("CropCreated")))
}

func TestRegistryMetrics_CacheLookups(t *testing.T) {
	mp, reader := newManualMeterProvider(t)
	m, err := NewRegistryMetrics(mp.Meter(TracerName))
	require.NoError(t, err)
	ctx := context.Background()

	m.RecordReportCacheLookup(ctx, "total_farms", false)
	m.RecordReportCacheLookup(ctx, "total_farms", true)
	m.RecordReportCacheLookup(ctx, "total_hectares", true)

	sum := collectSum(t, reader, "agro.report.cache.lookups")
	assert.Equal(t, int64(2), valueFor(sum, AttrCacheResult.String("hit")))
	assert.Equal(t, int64(1), valueFor(sum, AttrCacheResult.String("miss")))
}

func TestMeterProvider_Disabled(t *testing.T) {
	mp, err := NewMeterProvider(context.Background(), Config{}, 0, zap.NewNop())
	require.NoError(t, err)

	assert.False(t, mp.IsEnabled())
	assert.NotNil(t, mp.Meter("noop"))
	assert.NoError(t, mp.Shutdown(context.Background()))
}
