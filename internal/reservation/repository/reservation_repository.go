package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/plataforma/labstock/internal/reservation/domain"
)

// GormReservationRepository implements ReservationRepository using GORM
type GormReservationRepository struct {
	db *gorm.DB
}

// NewGormReservationRepository creates a new GORM reservation repository
func NewGormReservationRepository(db *gorm.DB) *GormReservationRepository {
	return &GormReservationRepository{db: db}
}

func (r *GormReservationRepository) AutoMigrate() error {
	return r.db.AutoMigrate(
		&domain.Reservation{},
		&domain.ReservationMaterial{},
		&domain.TeamMember{},
	)
}

func (r *GormReservationRepository) Create(reservation *domain.Reservation) error {
	if err := r.db.Create(reservation).Error; err != nil {
		return fmt.Errorf("failed to create reservation: %w", err)
	}
	return nil
}

func (r *GormReservationRepository) FindByID(id uint) (*domain.Reservation, error) {
	var reservation domain.Reservation
	if err := r.db.First(&reservation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrReservationNotFound
		}
		return nil, fmt.Errorf("failed to find reservation: %w", err)
	}
	return &reservation, nil
}

func (r *GormReservationRepository) FindAll(limit, offset int) ([]domain.Reservation, error) {
	var reservations []domain.Reservation
	query := r.db.Order("start_time DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	if err := query.Find(&reservations).Error; err != nil {
		return nil, fmt.Errorf("failed to list reservations: %w", err)
	}
	return reservations, nil
}

func (r *GormReservationRepository) FindByUser(userID uint, limit, offset int) ([]domain.Reservation, error) {
	var reservations []domain.Reservation
	query := r.db.Where("user_id = ?", userID).Order("start_time DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	if err := query.Find(&reservations).Error; err != nil {
		return nil, fmt.Errorf("failed to list reservations by user: %w", err)
	}
	return reservations, nil
}

func (r *GormReservationRepository) Exists(id uint) (bool, error) {
	var count int64
	if err := r.db.Model(&domain.Reservation{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check reservation: %w", err)
	}
	return count > 0, nil
}

// Update writes the mutable fields guarded on the status the caller read,
// so two concurrent status changes cannot silently overwrite each other.
func (r *GormReservationRepository) Update(reservation *domain.Reservation, fromStatus string) error {
	result := r.db.Model(&domain.Reservation{}).
		Where("id = ? AND status = ?", reservation.ID, fromStatus).
		Updates(map[string]interface{}{
			"subject_id": reservation.SubjectID,
			"group_id":   reservation.GroupID,
			"start_time": reservation.StartTime,
			"end_time":   reservation.EndTime,
			"status":     reservation.Status,
			"purpose":    reservation.Purpose,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update reservation: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		exists, err := r.Exists(reservation.ID)
		if err != nil {
			return err
		}
		if !exists {
			return domain.ErrReservationNotFound
		}
		return domain.ErrConflict
	}
	return nil
}

// Delete removes the reservation row only. Cascading through line-items
// and team members is the lifecycle manager's job; a bare FK cascade here
// would bypass the stock ledger.
func (r *GormReservationRepository) Delete(id uint) error {
	result := r.db.Delete(&domain.Reservation{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete reservation: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrReservationNotFound
	}
	return nil
}
