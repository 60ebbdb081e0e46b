package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	materialrepo "github.com/plataforma/labstock/internal/material/repository"
	"github.com/plataforma/labstock/internal/reservation/domain"
)

// GormMaterialLineRepository implements MaterialLineRepository. Every
// stock-affecting operation runs in a single transaction combining the
// line write with the ledger call: a crash between the two can never leave
// a line-item without its stock reservation.
type GormMaterialLineRepository struct {
	db     *gorm.DB
	ledger *materialrepo.GormStockLedger
}

// NewGormMaterialLineRepository creates a new GORM line-item repository
func NewGormMaterialLineRepository(db *gorm.DB) *GormMaterialLineRepository {
	return &GormMaterialLineRepository{
		db:     db,
		ledger: materialrepo.NewGormStockLedger(db),
	}
}

// CreateWithReserve reserves stock and inserts the line in one transaction
func (r *GormMaterialLineRepository) CreateWithReserve(line *domain.ReservationMaterial) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := r.ledger.WithTx(tx).Reserve(line.MaterialID, line.Quantity); err != nil {
			return err
		}
		if err := tx.Create(line).Error; err != nil {
			return fmt.Errorf("failed to create reservation material: %w", err)
		}
		return nil
	})
}

func (r *GormMaterialLineRepository) FindByID(id uint) (*domain.ReservationMaterial, error) {
	var line domain.ReservationMaterial
	if err := r.db.First(&line, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLineNotFound
		}
		return nil, fmt.Errorf("failed to find reservation material: %w", err)
	}
	return &line, nil
}

func (r *GormMaterialLineRepository) FindAll(limit, offset int) ([]domain.ReservationMaterial, error) {
	var lines []domain.ReservationMaterial
	query := r.db.Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	if err := query.Find(&lines).Error; err != nil {
		return nil, fmt.Errorf("failed to list reservation materials: %w", err)
	}
	return lines, nil
}

func (r *GormMaterialLineRepository) FindByReservation(reservationID uint) ([]domain.ReservationMaterial, error) {
	var lines []domain.ReservationMaterial
	if err := r.db.Where("reservation_id = ?", reservationID).Find(&lines).Error; err != nil {
		return nil, fmt.Errorf("failed to list reservation materials: %w", err)
	}
	return lines, nil
}

// ApplyUpdate applies a returned-quantity change and/or status transition
// under a row lock. The amount released on a reserved→returned transition
// is the returned quantity as of the transition moment; setting it later
// has no retroactive stock effect.
func (r *GormMaterialLineRepository) ApplyUpdate(id uint, returnedQuantity *int, status *string) (*domain.ReservationMaterial, int, error) {
	var line domain.ReservationMaterial
	released := 0

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&line, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrLineNotFound
			}
			return fmt.Errorf("failed to load reservation material: %w", err)
		}

		if returnedQuantity != nil {
			if *returnedQuantity < 0 || *returnedQuantity > line.Quantity {
				return domain.ErrInvalidQuantity
			}
			line.ReturnedQuantity = *returnedQuantity
		}

		if status != nil && *status != line.Status {
			if !domain.CanTransitionLine(line.Status, *status) {
				return domain.ErrInvalidTransition
			}
			if *status == domain.LineReturned && line.ReturnedQuantity > 0 {
				if err := r.ledger.WithTx(tx).Release(line.MaterialID, line.ReturnedQuantity); err != nil {
					return err
				}
				released = line.ReturnedQuantity
			}
			line.Status = *status
		}

		if err := tx.Save(&line).Error; err != nil {
			return fmt.Errorf("failed to update reservation material: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return &line, released, nil
}

// DeleteWithRelease releases the line's outstanding commitment and removes
// the row in one transaction. Damaged lines release nothing.
func (r *GormMaterialLineRepository) DeleteWithRelease(id uint) (*domain.ReservationMaterial, int, error) {
	var line domain.ReservationMaterial
	released := 0

	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&line, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrLineNotFound
			}
			return fmt.Errorf("failed to load reservation material: %w", err)
		}

		released = line.ReleaseOnDelete()
		if released > 0 {
			if err := r.ledger.WithTx(tx).Release(line.MaterialID, released); err != nil {
				return err
			}
		}

		if err := tx.Delete(&domain.ReservationMaterial{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete reservation material: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return &line, released, nil
}
