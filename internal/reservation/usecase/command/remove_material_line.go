package command

import (
	"context"

	"github.com/plataforma/labstock/internal/reservation/domain"
	"github.com/plataforma/labstock/kafka"
)

// RemoveMaterialLineCommand represents the command to delete a line-item,
// restoring whatever stock it still had committed
type RemoveMaterialLineCommand struct {
	LineID uint
}

// RemoveMaterialLineHandler handles the remove material line command
type RemoveMaterialLineHandler struct {
	lines     domain.MaterialLineRepository
	publisher MovementPublisher
}

// NewRemoveMaterialLineHandler creates a new remove material line handler
func NewRemoveMaterialLineHandler(lines domain.MaterialLineRepository, publisher MovementPublisher) *RemoveMaterialLineHandler {
	return &RemoveMaterialLineHandler{lines: lines, publisher: publisher}
}

// Handle executes the remove material line command
func (h *RemoveMaterialLineHandler) Handle(ctx context.Context, cmd RemoveMaterialLineCommand) error {
	line, released, err := h.lines.DeleteWithRelease(cmd.LineID)
	if err != nil {
		return err
	}

	if released > 0 {
		publishMovement(ctx, h.publisher, kafka.StockMovementEvent{
			EventType:     kafka.EventTypeStockReleased,
			MaterialID:    line.MaterialID,
			ReservationID: line.ReservationID,
			LineID:        line.ID,
			Quantity:      released,
			Delta:         released,
		})
	}

	return nil
}
