package query

import (
	"fmt"

	"github.com/plataforma/labstock/internal/material/domain"
)

// GetMaterialQuery represents the query to get a material
type GetMaterialQuery struct {
	ID uint
}

// GetMaterialHandler handles get material query
type GetMaterialHandler struct {
	repo domain.MaterialRepository
}

// NewGetMaterialHandler creates a new get material handler
func NewGetMaterialHandler(repo domain.MaterialRepository) *GetMaterialHandler {
	return &GetMaterialHandler{repo: repo}
}

// Handle executes the get material query
func (h *GetMaterialHandler) Handle(q GetMaterialQuery) (*domain.Material, error) {
	if q.ID == 0 {
		return nil, fmt.Errorf("id is required")
	}
	return h.repo.FindByID(q.ID)
}
