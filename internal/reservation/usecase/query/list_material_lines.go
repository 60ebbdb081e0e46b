package query

import (
	"github.com/plataforma/labstock/internal/reservation/domain"
)

// GetMaterialLineQuery represents the query to get one line-item
type GetMaterialLineQuery struct {
	ID uint
}

// GetMaterialLineHandler handles get material line query
type GetMaterialLineHandler struct {
	repo domain.MaterialLineRepository
}

// NewGetMaterialLineHandler creates a new get material line handler
func NewGetMaterialLineHandler(repo domain.MaterialLineRepository) *GetMaterialLineHandler {
	return &GetMaterialLineHandler{repo: repo}
}

// Handle executes the get material line query
func (h *GetMaterialLineHandler) Handle(q GetMaterialLineQuery) (*domain.ReservationMaterial, error) {
	return h.repo.FindByID(q.ID)
}

// ListMaterialLinesQuery represents the query to list line-items,
// optionally scoped to one reservation
type ListMaterialLinesQuery struct {
	ReservationID *uint
	Limit         int
	Offset        int
}

// ListMaterialLinesHandler handles list material lines query
type ListMaterialLinesHandler struct {
	repo domain.MaterialLineRepository
}

// NewListMaterialLinesHandler creates a new list material lines handler
func NewListMaterialLinesHandler(repo domain.MaterialLineRepository) *ListMaterialLinesHandler {
	return &ListMaterialLinesHandler{repo: repo}
}

// Handle executes the list material lines query
func (h *ListMaterialLinesHandler) Handle(q ListMaterialLinesQuery) ([]domain.ReservationMaterial, error) {
	if q.ReservationID != nil {
		return h.repo.FindByReservation(*q.ReservationID)
	}
	if q.Limit <= 0 {
		q.Limit = 20
	}
	if q.Offset < 0 {
		q.Offset = 0
	}
	return h.repo.FindAll(q.Limit, q.Offset)
}
