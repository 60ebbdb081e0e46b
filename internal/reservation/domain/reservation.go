package domain

import (
	"strings"
	"time"
)

// Reservation statuses
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// ParseStatus normalizes and validates a reservation status token
func ParseStatus(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case StatusPending:
		return StatusPending, nil
	case StatusConfirmed:
		return StatusConfirmed, nil
	case StatusCancelled:
		return StatusCancelled, nil
	case StatusCompleted:
		return StatusCompleted, nil
	default:
		return "", ErrInvalidStatus
	}
}

// reservationTransitions declares the legal status graph. Cancelled and
// completed are terminal.
var reservationTransitions = map[string][]string{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

// CanTransition reports whether a reservation may move from one status to
// another. Same-status moves are treated as idempotent no-ops by callers
// and are not part of the graph.
func CanTransition(from, to string) bool {
	for _, next := range reservationTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsTerminalStatus reports whether a reservation status admits no further
// transitions.
func IsTerminalStatus(s string) bool {
	return s == StatusCancelled || s == StatusCompleted
}

// ValidateWindow enforces the reservation time-window rule
func ValidateWindow(start, end time.Time) error {
	if !start.Before(end) {
		return ErrInvalidTimeWindow
	}
	return nil
}

// Reservation is the aggregate root owning material line-items and team
// members. Deleting it must cascade through the line-item manager so that
// committed stock is released; a bare foreign-key cascade would leak it.
type Reservation struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`
	SubjectID *uint     `json:"subject_id" gorm:"index"`
	GroupID   *uint     `json:"group_id" gorm:"index"`
	StartTime time.Time `json:"start_time" gorm:"not null"`
	EndTime   time.Time `json:"end_time" gorm:"not null"`
	Status    string    `json:"status" gorm:"not null;default:'pending'"`
	Purpose   string    `json:"purpose" gorm:"size:500"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (Reservation) TableName() string {
	return "reservations"
}

// ReservationRepository defines the contract for reservation data access
type ReservationRepository interface {
	Create(reservation *Reservation) error
	FindByID(id uint) (*Reservation, error)
	FindAll(limit, offset int) ([]Reservation, error)
	FindByUser(userID uint, limit, offset int) ([]Reservation, error)
	Exists(id uint) (bool, error)
	// Update persists the reservation guarded on its current status, so a
	// racing status change surfaces ErrConflict instead of being
	// overwritten.
	Update(reservation *Reservation, fromStatus string) error
	Delete(id uint) error
}

// Narrow existence-check collaborators backed by the CRUD layer. The
// reservation core never reaches into those aggregates beyond this.
type UserDirectory interface {
	UserExists(id uint) (bool, error)
}

type SubjectDirectory interface {
	SubjectExists(id uint) (bool, error)
}

type GroupDirectory interface {
	GroupExists(id uint) (bool, error)
}
