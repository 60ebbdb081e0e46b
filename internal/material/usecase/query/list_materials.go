package query

import (
	"github.com/plataforma/labstock/internal/material/domain"
)

// ListMaterialsQuery represents the query to list materials
type ListMaterialsQuery struct {
	Category string
	Limit    int
	Offset   int
}

// ListMaterialsHandler handles list materials query
type ListMaterialsHandler struct {
	repo domain.MaterialRepository
}

// NewListMaterialsHandler creates a new list materials handler
func NewListMaterialsHandler(repo domain.MaterialRepository) *ListMaterialsHandler {
	return &ListMaterialsHandler{repo: repo}
}

// Handle executes the list materials query
func (h *ListMaterialsHandler) Handle(q ListMaterialsQuery) ([]domain.Material, error) {
	limit := q.Limit
	if limit <= 0 {
		limit = 20
	}

	if q.Category != "" {
		category, err := domain.ParseCategory(q.Category)
		if err != nil {
			return nil, err
		}
		return h.repo.FindByCategory(category, limit, q.Offset)
	}

	return h.repo.FindAll(limit, q.Offset)
}
