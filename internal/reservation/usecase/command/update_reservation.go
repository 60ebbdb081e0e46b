package command

import (
	"time"

	"github.com/plataforma/labstock/internal/reservation/domain"
)

// UpdateReservationCommand represents a partial reservation update. All
// fields but ID are optional.
type UpdateReservationCommand struct {
	ID        uint
	SubjectID *uint
	GroupID   *uint
	StartTime *time.Time
	EndTime   *time.Time
	Purpose   *string
	Status    *string
}

// UpdateReservationHandler handles update reservation command
type UpdateReservationHandler struct {
	repo     domain.ReservationRepository
	subjects domain.SubjectDirectory
	groups   domain.GroupDirectory
}

// NewUpdateReservationHandler creates a new update reservation handler
func NewUpdateReservationHandler(repo domain.ReservationRepository, subjects domain.SubjectDirectory, groups domain.GroupDirectory) *UpdateReservationHandler {
	return &UpdateReservationHandler{repo: repo, subjects: subjects, groups: groups}
}

// Handle executes the update reservation command
func (h *UpdateReservationHandler) Handle(cmd UpdateReservationCommand) (*domain.Reservation, error) {
	reservation, err := h.repo.FindByID(cmd.ID)
	if err != nil {
		return nil, err
	}
	fromStatus := reservation.Status

	if cmd.SubjectID != nil {
		if ok, err := h.subjects.SubjectExists(*cmd.SubjectID); err != nil {
			return nil, err
		} else if !ok {
			return nil, domain.ErrSubjectNotFound
		}
		reservation.SubjectID = cmd.SubjectID
	}
	if cmd.GroupID != nil {
		if ok, err := h.groups.GroupExists(*cmd.GroupID); err != nil {
			return nil, err
		} else if !ok {
			return nil, domain.ErrGroupNotFound
		}
		reservation.GroupID = cmd.GroupID
	}

	if cmd.StartTime != nil {
		reservation.StartTime = *cmd.StartTime
	}
	if cmd.EndTime != nil {
		reservation.EndTime = *cmd.EndTime
	}
	if cmd.StartTime != nil || cmd.EndTime != nil {
		// The window rule applies to the effective pair, not just to
		// requests that change both ends at once.
		if err := domain.ValidateWindow(reservation.StartTime, reservation.EndTime); err != nil {
			return nil, err
		}
	}

	if cmd.Purpose != nil && *cmd.Purpose != "" {
		reservation.Purpose = *cmd.Purpose
	}

	if cmd.Status != nil {
		status, err := domain.ParseStatus(*cmd.Status)
		if err != nil {
			return nil, err
		}
		if status != reservation.Status {
			if !domain.CanTransition(reservation.Status, status) {
				return nil, domain.ErrInvalidTransition
			}
			reservation.Status = status
		}
	}

	if err := h.repo.Update(reservation, fromStatus); err != nil {
		return nil, err
	}

	return reservation, nil
}
