package command

import (
	"fmt"

	"github.com/plataforma/labstock/internal/material/domain"
)

// UpdateMaterialCommand represents the command to update a material.
// Stock carries the desired absolute count; the handler converts it to a
// delta applied through the ledger so a concurrent reservation is never
// silently overwritten.
type UpdateMaterialCommand struct {
	ID          uint
	Name        string
	Description string
	Stock       *int
	Category    string
}

// UpdateMaterialHandler handles update material command
type UpdateMaterialHandler struct {
	repo   domain.MaterialRepository
	ledger domain.StockLedger
}

// NewUpdateMaterialHandler creates a new update material handler
func NewUpdateMaterialHandler(repo domain.MaterialRepository, ledger domain.StockLedger) *UpdateMaterialHandler {
	return &UpdateMaterialHandler{repo: repo, ledger: ledger}
}

// Handle executes the update material command
func (h *UpdateMaterialHandler) Handle(cmd UpdateMaterialCommand) (*domain.Material, error) {
	if cmd.ID == 0 {
		return nil, fmt.Errorf("id is required")
	}
	if cmd.Name == "" {
		return nil, fmt.Errorf("name is required")
	}

	category, err := domain.ParseCategory(cmd.Category)
	if err != nil {
		return nil, err
	}

	material, err := h.repo.FindByID(cmd.ID)
	if err != nil {
		return nil, err
	}

	material.Name = cmd.Name
	material.Description = cmd.Description
	material.Category = category

	if err := h.repo.Update(material); err != nil {
		return nil, err
	}

	if cmd.Stock != nil {
		if *cmd.Stock < 0 {
			return nil, fmt.Errorf("stock cannot be negative")
		}
		delta := *cmd.Stock - material.Stock
		switch {
		case delta > 0:
			err = h.ledger.Release(cmd.ID, delta)
		case delta < 0:
			// The guard keeps the count from dipping below units that a
			// concurrent reservation already claimed.
			err = h.ledger.Reserve(cmd.ID, -delta)
		}
		if err != nil {
			return nil, err
		}
	}

	return h.repo.FindByID(cmd.ID)
}
