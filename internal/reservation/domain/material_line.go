package domain

import (
	"strings"
	"time"
)

// Line-item statuses. Returned and damaged are terminal: once reached, no
// further stock-affecting transition occurs.
const (
	LineReserved = "reserved"
	LineReturned = "returned"
	LineDamaged  = "damaged"
)

// ParseLineStatus normalizes and validates a line-item status token
func ParseLineStatus(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case LineReserved:
		return LineReserved, nil
	case LineReturned:
		return LineReturned, nil
	case LineDamaged:
		return LineDamaged, nil
	default:
		return "", ErrInvalidStatus
	}
}

// CanTransitionLine reports whether a line-item may move between two
// distinct statuses. Only reserved lines may transition; returned and
// damaged are terminal.
func CanTransitionLine(from, to string) bool {
	return from == LineReserved && (to == LineReturned || to == LineDamaged)
}

// IsLineTerminal reports whether a line-item status is terminal
func IsLineTerminal(s string) bool {
	return s == LineReturned || s == LineDamaged
}

// ReservationMaterial is the unit of stock accounting: a commitment of
// Quantity units of one material to one reservation, decremented from the
// material's stock at creation.
type ReservationMaterial struct {
	ID               uint      `json:"id" gorm:"primaryKey"`
	ReservationID    uint      `json:"reservation_id" gorm:"not null;index"`
	MaterialID       uint      `json:"material_id" gorm:"not null;index"`
	Quantity         int       `json:"quantity" gorm:"not null"`
	ReturnedQuantity int       `json:"returned_quantity" gorm:"not null;default:0"`
	Status           string    `json:"status" gorm:"not null;default:'reserved'"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (ReservationMaterial) TableName() string {
	return "reservation_materials"
}

// Outstanding returns the units still committed against stock: reserved
// quantity minus what has already been accounted for as returned.
func (rm *ReservationMaterial) Outstanding() int {
	return rm.Quantity - rm.ReturnedQuantity
}

// ReleaseOnDelete returns the units that go back to stock when the line is
// removed. Damaged units are permanently out of the pool, so a damaged
// line releases nothing.
func (rm *ReservationMaterial) ReleaseOnDelete() int {
	if rm.Status == LineDamaged {
		return 0
	}
	return rm.Outstanding()
}

// MaterialLineRepository is the persistence contract for line-items. The
// mutating operations are atomic units of work: the line write and the
// stock ledger call succeed or fail together.
type MaterialLineRepository interface {
	// CreateWithReserve inserts the line and decrements material stock in
	// one transaction. Fails with the material package's
	// ErrMaterialNotFound or ErrInsufficientStock sentinels.
	CreateWithReserve(line *ReservationMaterial) error

	FindByID(id uint) (*ReservationMaterial, error)
	FindAll(limit, offset int) ([]ReservationMaterial, error)
	FindByReservation(reservationID uint) ([]ReservationMaterial, error)

	// ApplyUpdate atomically applies a returned-quantity change and/or a
	// status transition, releasing stock when the line moves from
	// reserved to returned. It returns the updated line and the number of
	// units released. A transition to the status the line already holds
	// is an idempotent no-op.
	ApplyUpdate(id uint, returnedQuantity *int, status *string) (*ReservationMaterial, int, error)

	// DeleteWithRelease removes the line after releasing
	// line.ReleaseOnDelete() units back to stock, both in one
	// transaction. It returns the deleted line and the released amount.
	DeleteWithRelease(id uint) (*ReservationMaterial, int, error)
}
