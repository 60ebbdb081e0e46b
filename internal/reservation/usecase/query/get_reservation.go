package query

import (
	"github.com/plataforma/labstock/internal/reservation/domain"
)

// GetReservationQuery represents the query to get a reservation by ID
type GetReservationQuery struct {
	ID uint
}

// GetReservationHandler handles get reservation query
type GetReservationHandler struct {
	repo domain.ReservationRepository
}

// NewGetReservationHandler creates a new get reservation handler
func NewGetReservationHandler(repo domain.ReservationRepository) *GetReservationHandler {
	return &GetReservationHandler{repo: repo}
}

// Handle executes the get reservation query
func (h *GetReservationHandler) Handle(q GetReservationQuery) (*domain.Reservation, error) {
	return h.repo.FindByID(q.ID)
}
