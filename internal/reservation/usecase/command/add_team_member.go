package command

import (
	"github.com/plataforma/labstock/internal/reservation/domain"
)

// AddTeamMemberCommand represents the command to add a user to a
// reservation's team
type AddTeamMemberCommand struct {
	ReservationID uint
	UserID        uint
}

// AddTeamMemberHandler handles add team member command
type AddTeamMemberHandler struct {
	reservations domain.ReservationRepository
	members      domain.TeamMemberRepository
	users        domain.UserDirectory
}

// NewAddTeamMemberHandler creates a new add team member handler
func NewAddTeamMemberHandler(reservations domain.ReservationRepository, members domain.TeamMemberRepository, users domain.UserDirectory) *AddTeamMemberHandler {
	return &AddTeamMemberHandler{
		reservations: reservations,
		members:      members,
		users:        users,
	}
}

// Handle executes the add team member command
func (h *AddTeamMemberHandler) Handle(cmd AddTeamMemberCommand) (*domain.TeamMember, error) {
	exists, err := h.reservations.Exists(cmd.ReservationID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrReservationNotFound
	}

	if ok, err := h.users.UserExists(cmd.UserID); err != nil {
		return nil, err
	} else if !ok {
		return nil, domain.ErrUserNotFound
	}

	if taken, err := h.members.Exists(cmd.ReservationID, cmd.UserID); err != nil {
		return nil, err
	} else if taken {
		return nil, domain.ErrDuplicateMember
	}

	member := &domain.TeamMember{
		ReservationID: cmd.ReservationID,
		UserID:        cmd.UserID,
	}

	// The unique index still backs this up if two requests race past the
	// check above.
	if err := h.members.Create(member); err != nil {
		return nil, err
	}

	return member, nil
}
