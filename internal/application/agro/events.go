package agro

import (
	"context"

	"github.com/agro/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// publishEvents publishes and clears the pending events of each aggregate.
// A publish failure is logged and never fails the operation, which has
// already been committed.
func publishEvents(ctx context.Context, publisher shared.EventPublisher, logger *zap.Logger, aggregates ...shared.AggregateRoot) {
	for _, agg := range aggregates {
		events := agg.GetDomainEvents()
		if publisher != nil && len(events) > 0 {
			if err := publisher.Publish(ctx, events...); err != nil {
				logger.Error("failed to publish domain events",
					zap.String("aggregate_id", agg.GetID().String()),
					zap.String("event_type", events[0].EventType()),
					zap.Int("event_count", len(events)),
					zap.Error(err),
				)
			}
		}
		agg.ClearDomainEvents()
	}
}
