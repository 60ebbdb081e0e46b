package repository

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/plataforma/labstock/internal/material/domain"
)

// GormStockLedger implements domain.StockLedger with single conditional
// updates, so concurrent reservations against the same material serialize
// at the database row and can never jointly drive stock negative.
type GormStockLedger struct {
	db *gorm.DB
}

// NewGormStockLedger creates a stock ledger bound to a database handle
func NewGormStockLedger(db *gorm.DB) *GormStockLedger {
	return &GormStockLedger{db: db}
}

// WithTx returns a ledger bound to an enclosing transaction
func (l *GormStockLedger) WithTx(tx *gorm.DB) *GormStockLedger {
	return &GormStockLedger{db: tx}
}

// Reserve decrements stock by quantity in one guarded round trip
func (l *GormStockLedger) Reserve(materialID uint, quantity int) error {
	result := l.db.Model(&domain.Material{}).
		Where("id = ? AND stock >= ?", materialID, quantity).
		Update("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		return fmt.Errorf("failed to reserve stock: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		// Zero rows means either the material is missing or the guard
		// rejected the decrement. Probe to tell the two apart.
		var count int64
		if err := l.db.Model(&domain.Material{}).Where("id = ?", materialID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to probe material: %w", err)
		}
		if count == 0 {
			return domain.ErrMaterialNotFound
		}
		return domain.ErrInsufficientStock
	}
	return nil
}

// Release increments stock by quantity
func (l *GormStockLedger) Release(materialID uint, quantity int) error {
	if quantity == 0 {
		return nil
	}
	result := l.db.Model(&domain.Material{}).
		Where("id = ?", materialID).
		Update("stock", gorm.Expr("stock + ?", quantity))
	if result.Error != nil {
		return fmt.Errorf("failed to release stock: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrMaterialNotFound
	}
	return nil
}
