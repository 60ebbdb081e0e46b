package query

import (
	"fmt"

	"github.com/plataforma/labstock/internal/user/domain"
)

// GetStatsQuery represents the query to get user statistics (admin only)
type GetStatsQuery struct{}

// UserStats represents user statistics
type UserStats struct {
	TotalUsers   int64 `json:"total_users"`
	StudentCount int64 `json:"student_count"`
	TeacherCount int64 `json:"teacher_count"`
	AdminCount   int64 `json:"admin_count"`
	ActiveUsers  int64 `json:"active_users"`
}

// GetStatsHandler handles get stats query
type GetStatsHandler struct {
	repo domain.UserRepository
}

// NewGetStatsHandler creates a new get stats handler
func NewGetStatsHandler(repo domain.UserRepository) *GetStatsHandler {
	return &GetStatsHandler{repo: repo}
}

// Handle executes the get stats query
func (h *GetStatsHandler) Handle(query GetStatsQuery) (*UserStats, error) {
	totalUsers, err := h.repo.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	studentCount, err := h.repo.CountByRole(domain.RoleStudent)
	if err != nil {
		return nil, fmt.Errorf("failed to count students: %w", err)
	}

	teacherCount, err := h.repo.CountByRole(domain.RoleTeacher)
	if err != nil {
		return nil, fmt.Errorf("failed to count teachers: %w", err)
	}

	adminCount, err := h.repo.CountByRole(domain.RoleAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to count admins: %w", err)
	}

	activeUsers, err := h.repo.CountActive()
	if err != nil {
		return nil, fmt.Errorf("failed to count active users: %w", err)
	}

	return &UserStats{
		TotalUsers:   totalUsers,
		StudentCount: studentCount,
		TeacherCount: teacherCount,
		AdminCount:   adminCount,
		ActiveUsers:  activeUsers,
	}, nil
}
