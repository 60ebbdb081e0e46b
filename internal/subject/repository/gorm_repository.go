package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/plataforma/labstock/internal/subject/domain"
)

// GormSubjectRepository implements SubjectRepository using GORM
type GormSubjectRepository struct {
	db *gorm.DB
}

// NewGormSubjectRepository creates a new GORM subject repository
func NewGormSubjectRepository(db *gorm.DB) *GormSubjectRepository {
	return &GormSubjectRepository{db: db}
}

func (r *GormSubjectRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Subject{})
}

func (r *GormSubjectRepository) Create(subject *domain.Subject) error {
	if err := r.db.Create(subject).Error; err != nil {
		return fmt.Errorf("failed to create subject: %w", err)
	}
	return nil
}

func (r *GormSubjectRepository) FindByID(id uint) (*domain.Subject, error) {
	var subject domain.Subject
	if err := r.db.First(&subject, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrSubjectNotFound
		}
		return nil, fmt.Errorf("failed to find subject: %w", err)
	}
	return &subject, nil
}

func (r *GormSubjectRepository) FindAll() ([]domain.Subject, error) {
	var subjects []domain.Subject
	if err := r.db.Order("name").Find(&subjects).Error; err != nil {
		return nil, fmt.Errorf("failed to list subjects: %w", err)
	}
	return subjects, nil
}

func (r *GormSubjectRepository) Exists(id uint) (bool, error) {
	var count int64
	if err := r.db.Model(&domain.Subject{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check subject: %w", err)
	}
	return count > 0, nil
}

func (r *GormSubjectRepository) Update(subject *domain.Subject) error {
	result := r.db.Model(&domain.Subject{}).Where("id = ?", subject.ID).Updates(map[string]interface{}{
		"name": subject.Name,
		"code": subject.Code,
	})
	if result.Error != nil {
		return fmt.Errorf("failed to update subject: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrSubjectNotFound
	}
	return nil
}

func (r *GormSubjectRepository) Delete(id uint) error {
	result := r.db.Delete(&domain.Subject{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete subject: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrSubjectNotFound
	}
	return nil
}
