package command

import (
	"context"

	"github.com/plataforma/labstock/internal/reservation/domain"
	"github.com/plataforma/labstock/kafka"
)

// AddMaterialCommand represents the command to commit a quantity of one
// material to a reservation
type AddMaterialCommand struct {
	ReservationID uint
	MaterialID    uint
	Quantity      int
}

// AddMaterialHandler handles the add material command
type AddMaterialHandler struct {
	reservations domain.ReservationRepository
	lines        domain.MaterialLineRepository
	publisher    MovementPublisher
}

// NewAddMaterialHandler creates a new add material handler
func NewAddMaterialHandler(reservations domain.ReservationRepository, lines domain.MaterialLineRepository, publisher MovementPublisher) *AddMaterialHandler {
	return &AddMaterialHandler{
		reservations: reservations,
		lines:        lines,
		publisher:    publisher,
	}
}

// Handle creates a reserved line-item, decrementing material stock by the
// requested quantity in the same unit of work.
func (h *AddMaterialHandler) Handle(ctx context.Context, cmd AddMaterialCommand) (*domain.ReservationMaterial, error) {
	if cmd.Quantity < 1 {
		return nil, domain.ErrInvalidQuantity
	}

	exists, err := h.reservations.Exists(cmd.ReservationID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrReservationNotFound
	}

	line := &domain.ReservationMaterial{
		ReservationID:    cmd.ReservationID,
		MaterialID:       cmd.MaterialID,
		Quantity:         cmd.Quantity,
		ReturnedQuantity: 0,
		Status:           domain.LineReserved,
	}

	if err := h.lines.CreateWithReserve(line); err != nil {
		return nil, err
	}

	publishMovement(ctx, h.publisher, kafka.StockMovementEvent{
		EventType:     kafka.EventTypeStockReserved,
		MaterialID:    line.MaterialID,
		ReservationID: line.ReservationID,
		LineID:        line.ID,
		Quantity:      line.Quantity,
		Delta:         -line.Quantity,
	})

	return line, nil
}
