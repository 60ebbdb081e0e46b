package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/plataforma/labstock/internal/audit/domain"
)

// GormMovementRepository implements MovementRepository using GORM
type GormMovementRepository struct {
	db *gorm.DB
}

// NewGormMovementRepository creates a new GORM movement repository
func NewGormMovementRepository(db *gorm.DB) *GormMovementRepository {
	return &GormMovementRepository{db: db}
}

func (r *GormMovementRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.StockMovement{})
}

// Record inserts a movement. Redelivered events hit the EventID unique
// index and are dropped silently.
func (r *GormMovementRepository) Record(movement *domain.StockMovement) error {
	if err := r.db.Create(movement).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil
		}
		return fmt.Errorf("failed to record stock movement: %w", err)
	}
	return nil
}

func (r *GormMovementRepository) FindByMaterial(materialID uint, limit, offset int) ([]domain.StockMovement, error) {
	var movements []domain.StockMovement
	query := r.db.Where("material_id = ?", materialID).Order("occurred_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	if err := query.Find(&movements).Error; err != nil {
		return nil, fmt.Errorf("failed to list stock movements: %w", err)
	}
	return movements, nil
}

func (r *GormMovementRepository) FindAll(limit, offset int) ([]domain.StockMovement, error) {
	var movements []domain.StockMovement
	query := r.db.Order("occurred_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	if err := query.Find(&movements).Error; err != nil {
		return nil, fmt.Errorf("failed to list stock movements: %w", err)
	}
	return movements, nil
}
