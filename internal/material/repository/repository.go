package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/plataforma/labstock/internal/material/domain"
)

// GormMaterialRepository implements MaterialRepository using GORM
type GormMaterialRepository struct {
	db *gorm.DB
}

// NewGormMaterialRepository creates a new GORM material repository
func NewGormMaterialRepository(db *gorm.DB) *GormMaterialRepository {
	return &GormMaterialRepository{db: db}
}

func (r *GormMaterialRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Material{})
}

func (r *GormMaterialRepository) Create(material *domain.Material) error {
	if err := r.db.Create(material).Error; err != nil {
		return fmt.Errorf("failed to create material: %w", err)
	}
	return nil
}

func (r *GormMaterialRepository) FindByID(id uint) (*domain.Material, error) {
	var material domain.Material
	if err := r.db.First(&material, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMaterialNotFound
		}
		return nil, fmt.Errorf("failed to find material: %w", err)
	}
	return &material, nil
}

func (r *GormMaterialRepository) FindAll(limit, offset int) ([]domain.Material, error) {
	var materials []domain.Material
	query := r.db.Order("name ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	if err := query.Find(&materials).Error; err != nil {
		return nil, fmt.Errorf("failed to list materials: %w", err)
	}
	return materials, nil
}

func (r *GormMaterialRepository) FindByCategory(category string, limit, offset int) ([]domain.Material, error) {
	var materials []domain.Material
	query := r.db.Where("category = ?", category).Order("name ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	if err := query.Find(&materials).Error; err != nil {
		return nil, fmt.Errorf("failed to list materials by category: %w", err)
	}
	return materials, nil
}

// Update persists name, description and category. Stock is deliberately
// excluded: it moves only through the stock ledger.
func (r *GormMaterialRepository) Update(material *domain.Material) error {
	result := r.db.Model(&domain.Material{}).
		Where("id = ?", material.ID).
		Updates(map[string]interface{}{
			"name":        material.Name,
			"description": material.Description,
			"category":    material.Category,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update material: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrMaterialNotFound
	}
	return nil
}

func (r *GormMaterialRepository) Delete(id uint) error {
	result := r.db.Delete(&domain.Material{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete material: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrMaterialNotFound
	}
	return nil
}

func (r *GormMaterialRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&domain.Material{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count materials: %w", err)
	}
	return count, nil
}
