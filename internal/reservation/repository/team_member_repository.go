package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/plataforma/labstock/internal/reservation/domain"
)

// GormTeamMemberRepository implements TeamMemberRepository using GORM
type GormTeamMemberRepository struct {
	db *gorm.DB
}

// NewGormTeamMemberRepository creates a new GORM team member repository
func NewGormTeamMemberRepository(db *gorm.DB) *GormTeamMemberRepository {
	return &GormTeamMemberRepository{db: db}
}

func (r *GormTeamMemberRepository) Create(member *domain.TeamMember) error {
	if err := r.db.Create(member).Error; err != nil {
		// The composite unique index backs the one-membership-per-user rule
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicateMember
		}
		return fmt.Errorf("failed to create team member: %w", err)
	}
	return nil
}

func (r *GormTeamMemberRepository) FindByID(id uint) (*domain.TeamMember, error) {
	var member domain.TeamMember
	if err := r.db.First(&member, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMemberNotFound
		}
		return nil, fmt.Errorf("failed to find team member: %w", err)
	}
	return &member, nil
}

func (r *GormTeamMemberRepository) FindByReservation(reservationID uint) ([]domain.TeamMember, error) {
	var members []domain.TeamMember
	if err := r.db.Where("reservation_id = ?", reservationID).Find(&members).Error; err != nil {
		return nil, fmt.Errorf("failed to list team members: %w", err)
	}
	return members, nil
}

func (r *GormTeamMemberRepository) FindByUser(userID uint) ([]domain.TeamMember, error) {
	var members []domain.TeamMember
	if err := r.db.Where("user_id = ?", userID).Find(&members).Error; err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}
	return members, nil
}

func (r *GormTeamMemberRepository) Exists(reservationID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&domain.TeamMember{}).
		Where("reservation_id = ? AND user_id = ?", reservationID, userID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check team member: %w", err)
	}
	return count > 0, nil
}

func (r *GormTeamMemberRepository) Delete(id uint) error {
	result := r.db.Delete(&domain.TeamMember{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete team member: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrMemberNotFound
	}
	return nil
}

func (r *GormTeamMemberRepository) DeleteByReservation(reservationID uint) error {
	if err := r.db.Where("reservation_id = ?", reservationID).
		Delete(&domain.TeamMember{}).Error; err != nil {
		return fmt.Errorf("failed to delete team members: %w", err)
	}
	return nil
}
