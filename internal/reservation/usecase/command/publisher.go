package command

import (
	"context"

	"github.com/plataforma/labstock/kafka"
	"github.com/plataforma/labstock/pkg/logger"
)

// MovementPublisher publishes stock movement events. A nil publisher
// disables publishing; the ledger stays authoritative either way.
type MovementPublisher interface {
	PublishStockMovement(ctx context.Context, event kafka.StockMovementEvent) error
}

// publishMovement emits an event best effort; a broker failure must not
// fail the already-committed stock mutation.
func publishMovement(ctx context.Context, pub MovementPublisher, event kafka.StockMovementEvent) {
	if pub == nil {
		return
	}
	if err := pub.PublishStockMovement(ctx, event); err != nil {
		logger.Warn(ctx).
			Err(err).
			Str("event_type", event.EventType).
			Uint("material_id", event.MaterialID).
			Msg("Failed to publish stock movement")
	}
}
