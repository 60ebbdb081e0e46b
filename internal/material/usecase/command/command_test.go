package command_test

import (
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/plataforma/labstock/internal/material/domain"
	"github.com/plataforma/labstock/internal/material/usecase/command"
)

// fakeStore is an in-memory material store implementing both the
// repository and the stock ledger over one mutex, mirroring how the
// database-backed pair shares the materials table.
type fakeStore struct {
	mu        sync.Mutex
	materials map[uint]domain.Material
	nextID    uint
}

func newFakeStore() *fakeStore {
	return &fakeStore{materials: make(map[uint]domain.Material), nextID: 1}
}

func (s *fakeStore) Create(material *domain.Material) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	material.ID = s.nextID
	s.nextID++
	s.materials[material.ID] = *material
	return nil
}

func (s *fakeStore) FindByID(id uint) (*domain.Material, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	material, ok := s.materials[id]
	if !ok {
		return nil, domain.ErrMaterialNotFound
	}
	return &material, nil
}

func (s *fakeStore) FindAll(limit, offset int) ([]domain.Material, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Material
	for _, material := range s.materials {
		out = append(out, material)
	}
	return out, nil
}

func (s *fakeStore) FindByCategory(category string, limit, offset int) ([]domain.Material, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Material
	for _, material := range s.materials {
		if material.Category == category {
			out = append(out, material)
		}
	}
	return out, nil
}

func (s *fakeStore) Update(material *domain.Material) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.materials[material.ID]
	if !ok {
		return domain.ErrMaterialNotFound
	}
	// Stock moves only through the ledger.
	material.Stock = current.Stock
	s.materials[material.ID] = *material
	return nil
}

func (s *fakeStore) Delete(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.materials[id]; !ok {
		return domain.ErrMaterialNotFound
	}
	delete(s.materials, id)
	return nil
}

func (s *fakeStore) Count() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.materials)), nil
}

func (s *fakeStore) Reserve(materialID uint, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	material, ok := s.materials[materialID]
	if !ok {
		return domain.ErrMaterialNotFound
	}
	if material.Stock < quantity {
		return domain.ErrInsufficientStock
	}
	material.Stock -= quantity
	s.materials[materialID] = material
	return nil
}

func (s *fakeStore) Release(materialID uint, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	material, ok := s.materials[materialID]
	if !ok {
		return domain.ErrMaterialNotFound
	}
	material.Stock += quantity
	s.materials[materialID] = material
	return nil
}

func TestCreateMaterial(t *testing.T) {
	store := newFakeStore()
	handler := command.NewCreateMaterialHandler(store)

	material, err := handler.Handle(command.CreateMaterialCommand{
		Name:        "Erlenmeyer flask 250ml",
		Description: "borosilicate",
		Stock:       12,
		Category:    "Material",
	})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}

	if material.ID == 0 {
		t.Error("created material has no id")
	}
	if material.Category != domain.CategoryMaterial {
		t.Errorf("category = %q, want normalized %q", material.Category, domain.CategoryMaterial)
	}
	if material.Stock != 12 {
		t.Errorf("stock = %d, want 12", material.Stock)
	}
}

func TestCreateMaterialRejections(t *testing.T) {
	handler := command.NewCreateMaterialHandler(newFakeStore())

	tests := []struct {
		name    string
		cmd     command.CreateMaterialCommand
		wantErr error
		wantMsg string
	}{
		{
			name:    "missing name",
			cmd:     command.CreateMaterialCommand{Stock: 1, Category: "material"},
			wantMsg: "name is required",
		},
		{
			name:    "negative stock",
			cmd:     command.CreateMaterialCommand{Name: "beaker", Stock: -1, Category: "material"},
			wantMsg: "stock cannot be negative",
		},
		{
			name:    "unknown category",
			cmd:     command.CreateMaterialCommand{Name: "beaker", Stock: 1, Category: "glassware"},
			wantErr: domain.ErrInvalidCategory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := handler.Handle(tt.cmd)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
			if tt.wantMsg != "" && !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("expected message containing %q, got %q", tt.wantMsg, err.Error())
			}
		})
	}
}

func seedMaterial(t *testing.T, store *fakeStore, stock int) *domain.Material {
	t.Helper()
	material := &domain.Material{
		Name:     "pipette",
		Stock:    stock,
		Category: domain.CategoryMaterial,
	}
	if err := store.Create(material); err != nil {
		t.Fatalf("seed material: %v", err)
	}
	return material
}

func TestUpdateMaterialAppliesStockAsDelta(t *testing.T) {
	store := newFakeStore()
	material := seedMaterial(t, store, 10)
	handler := command.NewUpdateMaterialHandler(store, store)

	raise := 15
	updated, err := handler.Handle(command.UpdateMaterialCommand{
		ID:       material.ID,
		Name:     "pipette 10ml",
		Category: "material",
		Stock:    &raise,
	})
	if err != nil {
		t.Fatalf("raise stock: %v", err)
	}
	if updated.Stock != 15 {
		t.Errorf("stock = %d, want 15", updated.Stock)
	}
	if updated.Name != "pipette 10ml" {
		t.Errorf("name = %q", updated.Name)
	}

	lower := 9
	updated, err = handler.Handle(command.UpdateMaterialCommand{
		ID:       material.ID,
		Name:     "pipette 10ml",
		Category: "material",
		Stock:    &lower,
	})
	if err != nil {
		t.Fatalf("lower stock: %v", err)
	}
	if updated.Stock != 9 {
		t.Errorf("stock = %d, want 9", updated.Stock)
	}
}

// The stock field carries the desired available count; the handler moves
// there through the ledger from the live value, so units claimed by
// reservations after the admin's read are never resurrected.
func TestUpdateMaterialStockDeltaAgainstLiveCount(t *testing.T) {
	store := newFakeStore()
	material := seedMaterial(t, store, 10)
	handler := command.NewUpdateMaterialHandler(store, store)

	// Reservations claim 8 of the 10 units while the admin edits.
	if err := store.Reserve(material.ID, 8); err != nil {
		t.Fatalf("reserve: %v", err)
	}

	target := 0
	if _, err := handler.Handle(command.UpdateMaterialCommand{
		ID:       material.ID,
		Name:     "pipette",
		Category: "material",
		Stock:    &target,
	}); err != nil {
		t.Fatalf("removing free units: %v", err)
	}

	stored, _ := store.FindByID(material.ID)
	if stored.Stock != 0 {
		t.Errorf("stock = %d, want 0", stored.Stock)
	}
}

func TestUpdateMaterialRejections(t *testing.T) {
	store := newFakeStore()
	material := seedMaterial(t, store, 5)
	handler := command.NewUpdateMaterialHandler(store, store)

	negative := -1
	tests := []struct {
		name    string
		cmd     command.UpdateMaterialCommand
		wantErr error
		wantMsg string
	}{
		{
			name:    "unknown material",
			cmd:     command.UpdateMaterialCommand{ID: 999, Name: "x", Category: "material"},
			wantErr: domain.ErrMaterialNotFound,
		},
		{
			name:    "missing name",
			cmd:     command.UpdateMaterialCommand{ID: material.ID, Category: "material"},
			wantMsg: "name is required",
		},
		{
			name:    "negative stock",
			cmd:     command.UpdateMaterialCommand{ID: material.ID, Name: "x", Category: "material", Stock: &negative},
			wantMsg: "stock cannot be negative",
		},
		{
			name:    "unknown category",
			cmd:     command.UpdateMaterialCommand{ID: material.ID, Name: "x", Category: "plastic"},
			wantErr: domain.ErrInvalidCategory,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := handler.Handle(tt.cmd)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
			if tt.wantMsg != "" && !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("expected message containing %q, got %q", tt.wantMsg, err.Error())
			}
		})
	}
}

func TestDeleteMaterial(t *testing.T) {
	store := newFakeStore()
	material := seedMaterial(t, store, 5)
	handler := command.NewDeleteMaterialHandler(store)

	if err := handler.Handle(command.DeleteMaterialCommand{ID: material.ID}); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if _, err := store.FindByID(material.ID); !errors.Is(err, domain.ErrMaterialNotFound) {
		t.Error("material still present after delete")
	}

	if err := handler.Handle(command.DeleteMaterialCommand{ID: material.ID}); !errors.Is(err, domain.ErrMaterialNotFound) {
		t.Errorf("second delete: expected ErrMaterialNotFound, got %v", err)
	}
}
