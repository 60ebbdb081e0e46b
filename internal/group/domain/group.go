package domain

import (
	"errors"
	"time"
)

var ErrGroupNotFound = errors.New("group not found")

// Group is a class group that reservations may be booked for
type Group struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:200;not null"`
	Year      int       `json:"year"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (Group) TableName() string {
	return "groups"
}

// GroupRepository defines the contract for group data access
type GroupRepository interface {
	Create(group *Group) error
	FindByID(id uint) (*Group, error)
	FindAll() ([]Group, error)
	Exists(id uint) (bool, error)
	Update(group *Group) error
	Delete(id uint) error
}
