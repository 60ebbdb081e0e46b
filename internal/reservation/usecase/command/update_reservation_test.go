package command_test

import (
	"errors"
	"testing"
	"time"

	"github.com/plataforma/labstock/internal/reservation/domain"
	"github.com/plataforma/labstock/internal/reservation/usecase/command"
)

func newUpdateFixture(t *testing.T) (*fakeReservationRepo, *command.UpdateReservationHandler, *domain.Reservation) {
	t.Helper()
	repo := newFakeReservationRepo()
	handler := command.NewUpdateReservationHandler(repo, fakeSubjects{2: true}, fakeGroups{3: true})
	reservation := seedReservation(t, repo)
	return repo, handler, reservation
}

func TestUpdateReservationFields(t *testing.T) {
	repo, handler, reservation := newUpdateFixture(t)

	newEnd := reservation.EndTime.Add(time.Hour)
	updated, err := handler.Handle(command.UpdateReservationCommand{
		ID:        reservation.ID,
		SubjectID: uintPtr(2),
		EndTime:   &newEnd,
		Purpose:   strPtr("extended session"),
	})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}

	if updated.SubjectID == nil || *updated.SubjectID != 2 {
		t.Error("subject id not updated")
	}
	if !updated.EndTime.Equal(newEnd) {
		t.Errorf("end time = %v, want %v", updated.EndTime, newEnd)
	}
	if updated.Purpose != "extended session" {
		t.Errorf("purpose = %q", updated.Purpose)
	}
	if updated.Status != domain.StatusPending {
		t.Errorf("status changed unexpectedly to %q", updated.Status)
	}

	stored, _ := repo.FindByID(reservation.ID)
	if stored.Purpose != "extended session" {
		t.Error("update not persisted")
	}
}

// The window rule applies to the effective start/end pair even when only
// one end changes.
func TestUpdateReservationWindowOnEffectivePair(t *testing.T) {
	_, handler, reservation := newUpdateFixture(t)

	badEnd := reservation.StartTime.Add(-time.Hour)
	_, err := handler.Handle(command.UpdateReservationCommand{
		ID:      reservation.ID,
		EndTime: &badEnd,
	})
	if !errors.Is(err, domain.ErrInvalidTimeWindow) {
		t.Fatalf("expected ErrInvalidTimeWindow, got %v", err)
	}
}

func TestUpdateReservationStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		to      string
		wantErr error
	}{
		{"pending to confirmed", domain.StatusPending, "confirmed", nil},
		{"pending to cancelled", domain.StatusPending, "cancelled", nil},
		{"pending to completed", domain.StatusPending, "completed", domain.ErrInvalidTransition},
		{"confirmed to completed", domain.StatusConfirmed, "completed", nil},
		{"confirmed to cancelled", domain.StatusConfirmed, "cancelled", nil},
		{"confirmed to pending", domain.StatusConfirmed, "pending", domain.ErrInvalidTransition},
		{"cancelled is terminal", domain.StatusCancelled, "confirmed", domain.ErrInvalidTransition},
		{"completed is terminal", domain.StatusCompleted, "cancelled", domain.ErrInvalidTransition},
		{"same status is a no-op", domain.StatusConfirmed, "confirmed", nil},
		{"unknown token", domain.StatusPending, "done", domain.ErrInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeReservationRepo()
			handler := command.NewUpdateReservationHandler(repo, fakeSubjects{}, fakeGroups{})
			reservation := seedReservation(t, repo)
			reservation.Status = tt.from
			repo.reservations[reservation.ID] = *reservation

			updated, err := handler.Handle(command.UpdateReservationCommand{
				ID:     reservation.ID,
				Status: strPtr(tt.to),
			})
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				stored, _ := repo.FindByID(reservation.ID)
				if stored.Status != tt.from {
					t.Errorf("rejected transition mutated status to %q", stored.Status)
				}
				return
			}
			if err != nil {
				t.Fatalf("Handle: %v", err)
			}
			want, _ := domain.ParseStatus(tt.to)
			if updated.Status != want {
				t.Errorf("status = %q, want %q", updated.Status, want)
			}
		})
	}
}

// A status change that lands between the handler's read and its write
// invalidates the guard and surfaces ErrConflict instead of silently
// overwriting the other writer.
func TestUpdateReservationGuardedWriteConflicts(t *testing.T) {
	repo, _, reservation := newUpdateFixture(t)

	stale, err := repo.FindByID(reservation.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}

	// Another writer cancels the reservation after our read.
	sneaky := *reservation
	sneaky.Status = domain.StatusCancelled
	repo.mu.Lock()
	repo.reservations[reservation.ID] = sneaky
	repo.mu.Unlock()

	stale.Status = domain.StatusConfirmed
	if err := repo.Update(stale, domain.StatusPending); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestUpdateReservationUnknownAssociations(t *testing.T) {
	_, handler, reservation := newUpdateFixture(t)

	if _, err := handler.Handle(command.UpdateReservationCommand{
		ID:        reservation.ID,
		SubjectID: uintPtr(99),
	}); !errors.Is(err, domain.ErrSubjectNotFound) {
		t.Errorf("expected ErrSubjectNotFound, got %v", err)
	}

	if _, err := handler.Handle(command.UpdateReservationCommand{
		ID:      reservation.ID,
		GroupID: uintPtr(99),
	}); !errors.Is(err, domain.ErrGroupNotFound) {
		t.Errorf("expected ErrGroupNotFound, got %v", err)
	}

	if _, err := handler.Handle(command.UpdateReservationCommand{ID: 999}); !errors.Is(err, domain.ErrReservationNotFound) {
		t.Errorf("expected ErrReservationNotFound, got %v", err)
	}
}
