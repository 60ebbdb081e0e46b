package command

import (
	"context"

	"github.com/plataforma/labstock/internal/reservation/domain"
	"github.com/plataforma/labstock/kafka"
)

// UpdateMaterialLineCommand represents a partial update of a line-item.
// ReturnedQuantity and Status are both optional; stock moves only on the
// reserved→returned transition, by the returned quantity recorded at that
// moment.
type UpdateMaterialLineCommand struct {
	LineID           uint
	ReturnedQuantity *int
	Status           *string
}

// UpdateMaterialLineHandler handles the update material line command
type UpdateMaterialLineHandler struct {
	lines     domain.MaterialLineRepository
	publisher MovementPublisher
}

// NewUpdateMaterialLineHandler creates a new update material line handler
func NewUpdateMaterialLineHandler(lines domain.MaterialLineRepository, publisher MovementPublisher) *UpdateMaterialLineHandler {
	return &UpdateMaterialLineHandler{lines: lines, publisher: publisher}
}

// Handle executes the update material line command
func (h *UpdateMaterialLineHandler) Handle(ctx context.Context, cmd UpdateMaterialLineCommand) (*domain.ReservationMaterial, error) {
	var status *string
	if cmd.Status != nil {
		normalized, err := domain.ParseLineStatus(*cmd.Status)
		if err != nil {
			return nil, err
		}
		status = &normalized
	}

	prior, err := h.lines.FindByID(cmd.LineID)
	if err != nil {
		return nil, err
	}

	line, released, err := h.lines.ApplyUpdate(cmd.LineID, cmd.ReturnedQuantity, status)
	if err != nil {
		return nil, err
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
	if prior.Status != domain.LineDamaged && line.Status == domain.LineDamaged {
		// Damaged units leave the pool for good; the event carries the
		// outstanding amount that will never come back.
		publishMovement(ctx, h.publisher, kafka.StockMovementEvent{
			EventType:     kafka.EventTypeMaterialDamaged,
			MaterialID:    line.MaterialID,
			ReservationID: line.ReservationID,
			LineID:        line.ID,
			Quantity:      line.Outstanding(),
			Delta:         0,
		})
	}

	return line, nil
}
