package command

import (
	"context"

	"github.com/plataforma/labstock/internal/reservation/domain"
	"github.com/plataforma/labstock/kafka"
)

// DeleteReservationCommand represents the command to delete a reservation
// together with everything it owns
type DeleteReservationCommand struct {
	ID uint
}

// DeleteReservationHandler handles delete reservation command
type DeleteReservationHandler struct {
	reservations domain.ReservationRepository
	lines        domain.MaterialLineRepository
	members      domain.TeamMemberRepository
	publisher    MovementPublisher
}

// NewDeleteReservationHandler creates a new delete reservation handler
func NewDeleteReservationHandler(reservations domain.ReservationRepository, lines domain.MaterialLineRepository, members domain.TeamMemberRepository, publisher MovementPublisher) *DeleteReservationHandler {
	return &DeleteReservationHandler{
		reservations: reservations,
		lines:        lines,
		members:      members,
		publisher:    publisher,
	}
}

// Handle deletes a reservation by cascading explicitly: each owned
// line-item is removed through the line manager so its outstanding stock
// is released. A bare foreign-key cascade would skip the ledger and leak
// the committed units. Each line release is atomic on its own; the
// cascade as a whole is not one global transaction.
func (h *DeleteReservationHandler) Handle(ctx context.Context, cmd DeleteReservationCommand) error {
	exists, err := h.reservations.Exists(cmd.ID)
	if err != nil {
		return err
	}
	if !exists {
		return domain.ErrReservationNotFound
	}

	lines, err := h.lines.FindByReservation(cmd.ID)
	if err != nil {
		return err
	}
	for _, line := range lines {
		deleted, released, err := h.lines.DeleteWithRelease(line.ID)
		if err != nil {
			return err
		}
		if released > 0 {
			publishMovement(ctx, h.publisher, kafka.StockMovementEvent{
				EventType:     kafka.EventTypeStockReleased,
				MaterialID:    deleted.MaterialID,
				ReservationID: deleted.ReservationID,
				LineID:        deleted.ID,
				Quantity:      released,
				Delta:         released,
			})
		}
	}

	if err := h.members.DeleteByReservation(cmd.ID); err != nil {
		return err
	}

	return h.reservations.Delete(cmd.ID)
}
