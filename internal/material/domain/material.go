package domain

import (
	"errors"
	"strings"
	"time"
)

// Sentinel errors surfaced by the material repository and stock ledger
var (
	ErrMaterialNotFound  = errors.New("material not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidCategory   = errors.New("invalid material category")
)

// Material categories
const (
	CategoryMaterial = "material"
	CategoryReagent  = "reagent"
)

// ParseCategory normalizes and validates a category token
func ParseCategory(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case CategoryMaterial:
		return CategoryMaterial, nil
	case CategoryReagent:
		return CategoryReagent, nil
	default:
		return "", ErrInvalidCategory
	}
}

// Material represents a countable lab inventory item. Stock is the
// authoritative count of available units and is mutated only through the
// StockLedger, never set from client-supplied values.
type Material struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description"`
	Stock       int       `json:"stock" gorm:"not null;default:0;check:stock >= 0"`
	Category    string    `json:"category" gorm:"not null;default:'material'"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (Material) TableName() string {
	return "materials"
}

// MaterialRepository defines the contract for material data access
type MaterialRepository interface {
	Create(material *Material) error
	FindByID(id uint) (*Material, error)
	FindAll(limit, offset int) ([]Material, error)
	FindByCategory(category string, limit, offset int) ([]Material, error)
	Update(material *Material) error
	Delete(id uint) error
	Count() (int64, error)
}

// StockLedger is the sole mutation surface for Material.Stock. Both
// operations are atomic with respect to concurrent callers touching the
// same material row.
type StockLedger interface {
	// Reserve decrements stock by quantity, failing with
	// ErrInsufficientStock when fewer units are available.
	Reserve(materialID uint, quantity int) error
	// Release increments stock by quantity.
	Release(materialID uint, quantity int) error
}
