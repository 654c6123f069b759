package telemetry

import (
	"context"
	"fmt"

	"github.com/agro/backend/internal/domain/shared"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Attribute keys shared by the registry instruments
var (
	AttrEventType     = attribute.Key("event_type")
	AttrAggregateType = attribute.Key("aggregate_type")
	AttrReport        = attribute.Key("report")
	AttrCacheResult   = attribute.Key("result")
)

// RegistryMetrics counts domain events and report cache lookups.
// Subscribed without event types it receives every domain event.
type RegistryMetrics struct {
	events       metric.Int64Counter
	cacheLookups metric.Int64Counter
}

// NewRegistryMetrics creates the registry instruments on meter
func NewRegistryMetrics(meter metric.Meter) (*RegistryMetrics, error) {
	events, err := meter.Int64Counter("agro.registry.events",
		metric.WithDescription("Domain events published by the registry"),
		metric.WithUnit("{event}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create counter agro.registry.events: %w", err)
	}
	lookups, err := meter.Int64Counter("agro.report.cache.lookups",
		metric.WithDescription("Report cache lookups by result"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create counter agro.report.cache.lookups: %w", err)
	}
	return &RegistryMetrics{events: events, cacheLookups: lookups}, nil
}

// EventTypes returns nil so the bus delivers every event
func (m *RegistryMetrics) EventTypes() []string {
	return nil
}

// Handle counts the event
func (m *RegistryMetrics) Handle(ctx context.Context, event shared.DomainEvent) error {
	m.events.Add(ctx, 1, metric.WithAttributes(
		AttrEventType.String(event.EventType()),
		AttrAggregateType.String(event.AggregateType()),
	))
	return nil
}

// RecordReportCacheLookup counts a report cache hit or miss
func (m *RegistryMetrics) RecordReportCacheLookup(ctx context.Context, key string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.Add(ctx, 1, metric.WithAttributes(
		AttrReport.String(key),
		AttrCacheResult.String(result),
	))
}

var _ shared.EventHandler = (*RegistryMetrics)(nil)
