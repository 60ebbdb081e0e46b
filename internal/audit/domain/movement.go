package domain

import (
	"time"
)

// StockMovement is one audited change of a material's stock, recorded
// from the event stream. EventID makes replayed deliveries idempotent.
type StockMovement struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	EventID       string    `json:"event_id" gorm:"size:64;uniqueIndex;not null"`
	EventType     string    `json:"event_type" gorm:"size:50;not null;index"`
	MaterialID    uint      `json:"material_id" gorm:"not null;index"`
	ReservationID uint      `json:"reservation_id" gorm:"index"`
	LineID        uint      `json:"line_id"`
	Quantity      int       `json:"quantity"`
	Delta         int       `json:"delta"`
	OccurredAt    time.Time `json:"occurred_at"`
	CreatedAt     time.Time `json:"created_at"`
}

// TableName specifies the table name
func (StockMovement) TableName() string {
	return "stock_movements"
}

// MovementRepository defines the contract for movement data access
type MovementRepository interface {
	Record(movement *StockMovement) error
	FindByMaterial(materialID uint, limit, offset int) ([]StockMovement, error)
	FindAll(limit, offset int) ([]StockMovement, error)
}
