package command

import (
	"fmt"
	"time"

	"github.com/plataforma/labstock/internal/reservation/domain"
)

// CreateReservationCommand represents the command to create a reservation
type CreateReservationCommand struct {
	UserID    uint
	SubjectID *uint
	GroupID   *uint
	StartTime time.Time
	EndTime   time.Time
	Purpose   string
}

// CreateReservationHandler handles create reservation command
type CreateReservationHandler struct {
	repo     domain.ReservationRepository
	users    domain.UserDirectory
	subjects domain.SubjectDirectory
	groups   domain.GroupDirectory
}

// NewCreateReservationHandler creates a new create reservation handler
func NewCreateReservationHandler(repo domain.ReservationRepository, users domain.UserDirectory, subjects domain.SubjectDirectory, groups domain.GroupDirectory) *CreateReservationHandler {
	return &CreateReservationHandler{
		repo:     repo,
		users:    users,
		subjects: subjects,
		groups:   groups,
	}
}

// Handle executes the create reservation command
func (h *CreateReservationHandler) Handle(cmd CreateReservationCommand) (*domain.Reservation, error) {
	if cmd.UserID == 0 {
		return nil, fmt.Errorf("%w: user_id is required", domain.ErrInvalidArgument)
	}
	if cmd.Purpose == "" {
		return nil, fmt.Errorf("%w: purpose is required", domain.ErrInvalidArgument)
	}
	if err := domain.ValidateWindow(cmd.StartTime, cmd.EndTime); err != nil {
		return nil, err
	}

	if ok, err := h.users.UserExists(cmd.UserID); err != nil {
		return nil, err
	} else if !ok {
		return nil, domain.ErrUserNotFound
	}
	if cmd.SubjectID != nil {
		if ok, err := h.subjects.SubjectExists(*cmd.SubjectID); err != nil {
			return nil, err
		} else if !ok {
			return nil, domain.ErrSubjectNotFound
		}
	}
	if cmd.GroupID != nil {
		if ok, err := h.groups.GroupExists(*cmd.GroupID); err != nil {
			return nil, err
		} else if !ok {
			return nil, domain.ErrGroupNotFound
		}
	}

	reservation := &domain.Reservation{
		UserID:    cmd.UserID,
		SubjectID: cmd.SubjectID,
		GroupID:   cmd.GroupID,
		StartTime: cmd.StartTime,
		EndTime:   cmd.EndTime,
		Status:    domain.StatusPending,
		Purpose:   cmd.Purpose,
	}

	if err := h.repo.Create(reservation); err != nil {
		return nil, err
	}

	return reservation, nil
}
