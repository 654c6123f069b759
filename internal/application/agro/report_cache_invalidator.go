package agro

import (
	"context"
	"fmt"

	"github.com/agro/backend/internal/domain/agro"
	"github.com/agro/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// ReportCacheInvalidator drops cached reports whenever properties change
type ReportCacheInvalidator struct {
	cache  ReportCache
	logger *zap.Logger
}

// NewReportCacheInvalidator creates a new handler for property change events
func NewReportCacheInvalidator(cache ReportCache, logger *zap.Logger) *ReportCacheInvalidator {
	return &ReportCacheInvalidator{
		cache:  cache,
		logger: logger,
	}
}

// EventTypes returns the event types this handler is interested in.
// Deleting a producer cascades to its properties, so it counts too.
func (h *ReportCacheInvalidator) EventTypes() []string {
	return []string{
		agro.EventTypePropertyRegistered,
		agro.EventTypePropertyUpdated,
		agro.EventTypePropertyDeleted,
		agro.EventTypeProducerDeleted,
	}
}

// Handle moves the reports to a new generation, orphaning every value cached
// before the change
func (h *ReportCacheInvalidator) Handle(ctx context.Context, event shared.DomainEvent) error {
	generation, err := h.cache.Incr(ctx, ReportKeyGeneration)
	if err != nil {
		return fmt.Errorf("invalidate report cache after %s: %w", event.EventType(), err)
	}

	h.logger.Debug("report cache invalidated",
		zap.String("event_type", event.EventType()),
		zap.String("aggregate_id", event.AggregateID().String()),
		zap.Int64("generation", generation),
	)
	return nil
}

var _ shared.EventHandler = (*ReportCacheInvalidator)(nil)
