package command

import (
	"github.com/plataforma/labstock/internal/reservation/domain"
)

// RemoveTeamMemberCommand represents the command to remove a team member
type RemoveTeamMemberCommand struct {
	ID uint
}

// RemoveTeamMemberHandler handles remove team member command
type RemoveTeamMemberHandler struct {
	members domain.TeamMemberRepository
}

// NewRemoveTeamMemberHandler creates a new remove team member handler
func NewRemoveTeamMemberHandler(members domain.TeamMemberRepository) *RemoveTeamMemberHandler {
	return &RemoveTeamMemberHandler{members: members}
}

// Handle executes the remove team member command
func (h *RemoveTeamMemberHandler) Handle(cmd RemoveTeamMemberCommand) error {
	return h.members.Delete(cmd.ID)
}
