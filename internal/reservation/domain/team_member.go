package domain

import "time"

// TeamMember records a user's membership in a reservation. One user may
// appear at most once per reservation.
type TeamMember struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	ReservationID uint      `json:"reservation_id" gorm:"not null;uniqueIndex:idx_team_reservation_user"`
	UserID        uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_team_reservation_user"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName specifies the table name
func (TeamMember) TableName() string {
	return "team_members"
}

// TeamMemberRepository defines the contract for team member data access
type TeamMemberRepository interface {
	Create(member *TeamMember) error
	FindByID(id uint) (*TeamMember, error)
	FindByReservation(reservationID uint) ([]TeamMember, error)
	FindByUser(userID uint) ([]TeamMember, error)
	Exists(reservationID, userID uint) (bool, error)
	Delete(id uint) error
	DeleteByReservation(reservationID uint) error
}
