package command

import (
	"fmt"

	"github.com/plataforma/labstock/internal/material/domain"
)

// DeleteMaterialCommand represents the command to delete a material
type DeleteMaterialCommand struct {
	ID uint
}

// DeleteMaterialHandler handles delete material command
type DeleteMaterialHandler struct {
	repo domain.MaterialRepository
}

// NewDeleteMaterialHandler creates a new delete material handler
func NewDeleteMaterialHandler(repo domain.MaterialRepository) *DeleteMaterialHandler {
	return &DeleteMaterialHandler{repo: repo}
}

// Handle executes the delete material command
func (h *DeleteMaterialHandler) Handle(cmd DeleteMaterialCommand) error {
	if cmd.ID == 0 {
		return fmt.Errorf("id is required")
	}
	if err := h.repo.Delete(cmd.ID); err != nil {
		return fmt.Errorf("failed to delete material: %w", err)
	}
	return nil
}
