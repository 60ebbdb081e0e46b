package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/plataforma/labstock/internal/group/domain"
)

// GormGroupRepository implements GroupRepository using GORM
type GormGroupRepository struct {
	db *gorm.DB
}

// NewGormGroupRepository creates a new GORM group repository
func NewGormGroupRepository(db *gorm.DB) *GormGroupRepository {
	return &GormGroupRepository{db: db}
}

func (r *GormGroupRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Group{})
}

func (r *GormGroupRepository) Create(group *domain.Group) error {
	if err := r.db.Create(group).Error; err != nil {
		return fmt.Errorf("failed to create group: %w", err)
	}
	return nil
}

func (r *GormGroupRepository) FindByID(id uint) (*domain.Group, error) {
	var group domain.Group
	if err := r.db.First(&group, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to find group: %w", err)
	}
	return &group, nil
}

func (r *GormGroupRepository) FindAll() ([]domain.Group, error) {
	var groups []domain.Group
	if err := r.db.Order("name").Find(&groups).Error; err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	return groups, nil
}

func (r *GormGroupRepository) Exists(id uint) (bool, error) {
	var count int64
	if err := r.db.Model(&domain.Group{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check group: %w", err)
	}
	return count > 0, nil
}

func (r *GormGroupRepository) Update(group *domain.Group) error {
	result := r.db.Model(&domain.Group{}).Where("id = ?", group.ID).Updates(map[string]interface{}{
		"name": group.Name,
		"year": group.Year,
	})
	if result.Error != nil {
		return fmt.Errorf("failed to update group: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrGroupNotFound
	}
	return nil
}

func (r *GormGroupRepository) Delete(id uint) error {
	result := r.db.Delete(&domain.Group{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete group: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrGroupNotFound
	}
	return nil
}
