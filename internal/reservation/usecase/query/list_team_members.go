package query

import (
	"github.com/plataforma/labstock/internal/reservation/domain"
)

// ListTeamMembersQuery represents the query to list team members, either
// for a reservation or for a user
type ListTeamMembersQuery struct {
	ReservationID *uint
	UserID        *uint
}

// ListTeamMembersHandler handles list team members query
type ListTeamMembersHandler struct {
	repo domain.TeamMemberRepository
}

// NewListTeamMembersHandler creates a new list team members handler
func NewListTeamMembersHandler(repo domain.TeamMemberRepository) *ListTeamMembersHandler {
	return &ListTeamMembersHandler{repo: repo}
}

// Handle executes the list team members query
func (h *ListTeamMembersHandler) Handle(q ListTeamMembersQuery) ([]domain.TeamMember, error) {
	if q.ReservationID != nil {
		return h.repo.FindByReservation(*q.ReservationID)
	}
	if q.UserID != nil {
		return h.repo.FindByUser(*q.UserID)
	}
	return nil, domain.ErrMemberNotFound
}
