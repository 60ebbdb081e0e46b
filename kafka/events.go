package kafka

import "time"

// StockMovementEvent records one stock ledger mutation driven by the
// reservation-material lifecycle.
type StockMovementEvent struct {
	EventID       string    `json:"event_id"`
	EventType     string    `json:"event_type"`
	MaterialID    uint      `json:"material_id"`
	ReservationID uint      `json:"reservation_id"`
	LineID        uint      `json:"line_id"`
	Quantity      int       `json:"quantity"`
	Delta         int       `json:"delta"`
	Timestamp     time.Time `json:"timestamp"`
}

// Event types
const (
	EventTypeStockReserved   = "stock.reserved"
	EventTypeStockReleased   = "stock.released"
	EventTypeMaterialDamaged = "material.damaged"
)

// Kafka topics
const (
	TopicStockMovements = "stock-movements"
)
