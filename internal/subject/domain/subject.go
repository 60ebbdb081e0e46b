package domain

import (
	"errors"
	"time"
)

var ErrSubjectNotFound = errors.New("subject not found")

// Subject is a course that reservations may be booked under
type Subject struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:200;not null"`
	Code      string    `json:"code" gorm:"size:50;uniqueIndex"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (Subject) TableName() string {
	return "subjects"
}

// SubjectRepository defines the contract for subject data access
type SubjectRepository interface {
	Create(subject *Subject) error
	FindByID(id uint) (*Subject, error)
	FindAll() ([]Subject, error)
	Exists(id uint) (bool, error)
	Update(subject *Subject) error
	Delete(id uint) error
}
