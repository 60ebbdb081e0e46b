package query

import (
	"github.com/plataforma/labstock/internal/reservation/domain"
)

// ListReservationsQuery represents the query to list reservations,
// optionally scoped to one user
type ListReservationsQuery struct {
	UserID *uint
	Limit  int
	Offset int
}

// ListReservationsHandler handles list reservations query
type ListReservationsHandler struct {
	repo domain.ReservationRepository
}

// NewListReservationsHandler creates a new list reservations handler
func NewListReservationsHandler(repo domain.ReservationRepository) *ListReservationsHandler {
	return &ListReservationsHandler{repo: repo}
}

// Handle executes the list reservations query
func (h *ListReservationsHandler) Handle(q ListReservationsQuery) ([]domain.Reservation, error) {
	if q.Limit <= 0 {
		q.Limit = 20
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	if q.UserID != nil {
		return h.repo.FindByUser(*q.UserID, q.Limit, q.Offset)
	}
	return h.repo.FindAll(q.Limit, q.Offset)
}
