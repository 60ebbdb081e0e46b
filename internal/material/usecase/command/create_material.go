package command

import (
	"fmt"

	"github.com/plataforma/labstock/internal/material/domain"
)

// CreateMaterialCommand represents the command to create a material
type CreateMaterialCommand struct {
	Name        string
	Description string
	Stock       int
	Category    string
}

// CreateMaterialHandler handles create material command
type CreateMaterialHandler struct {
	repo domain.MaterialRepository
}

// NewCreateMaterialHandler creates a new create material handler
func NewCreateMaterialHandler(repo domain.MaterialRepository) *CreateMaterialHandler {
	return &CreateMaterialHandler{repo: repo}
}

// Handle executes the create material command
func (h *CreateMaterialHandler) Handle(cmd CreateMaterialCommand) (*domain.Material, error) {
	if cmd.Name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if cmd.Stock < 0 {
		return nil, fmt.Errorf("stock cannot be negative")
	}

	category, err := domain.ParseCategory(cmd.Category)
	if err != nil {
		return nil, err
	}

	material := &domain.Material{
		Name:        cmd.Name,
		Description: cmd.Description,
		Stock:       cmd.Stock,
		Category:    category,
	}

	if err := h.repo.Create(material); err != nil {
		return nil, fmt.Errorf("failed to create material: %w", err)
	}

	return material, nil
}
