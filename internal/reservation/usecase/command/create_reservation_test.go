package command_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/plataforma/labstock/internal/reservation/domain"
	"github.com/plataforma/labstock/internal/reservation/usecase/command"
)

func TestCreateReservation(t *testing.T) {
	repo := newFakeReservationRepo()
	handler := command.NewCreateReservationHandler(repo, fakeUsers{1: true}, fakeSubjects{2: true}, fakeGroups{3: true})

	start := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	reservation, err := handler.Handle(command.CreateReservationCommand{
		UserID:    1,
		SubjectID: uintPtr(2),
		GroupID:   uintPtr(3),
		StartTime: start,
		EndTime:   start.Add(90 * time.Minute),
		Purpose:   "acid-base titration",
	})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}

	if reservation.ID == 0 {
		t.Error("created reservation has no id")
	}
	if reservation.Status != domain.StatusPending {
		t.Errorf("status = %q, want %q", reservation.Status, domain.StatusPending)
	}
	if reservation.SubjectID == nil || *reservation.SubjectID != 2 {
		t.Error("subject id not carried over")
	}
}

func TestCreateReservationOptionalAssociations(t *testing.T) {
	repo := newFakeReservationRepo()
	handler := command.NewCreateReservationHandler(repo, fakeUsers{1: true}, fakeSubjects{}, fakeGroups{})

	start := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	reservation, err := handler.Handle(command.CreateReservationCommand{
		UserID:    1,
		StartTime: start,
		EndTime:   start.Add(time.Hour),
		Purpose:   "open lab time",
	})
	if err != nil {
		t.Fatalf("Handle without subject/group: %v", err)
	}
	if reservation.SubjectID != nil || reservation.GroupID != nil {
		t.Error("associations should stay nil when omitted")
	}
}

func TestCreateReservationRejections(t *testing.T) {
	repo := newFakeReservationRepo()
	handler := command.NewCreateReservationHandler(repo, fakeUsers{1: true}, fakeSubjects{2: true}, fakeGroups{3: true})

	start := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	tests := []struct {
		name    string
		cmd     command.CreateReservationCommand
		wantErr error
		wantMsg string
	}{
		{
			name:    "missing user id",
			cmd:     command.CreateReservationCommand{StartTime: start, EndTime: end, Purpose: "x"},
			wantMsg: "user_id is required",
		},
		{
			name:    "missing purpose",
			cmd:     command.CreateReservationCommand{UserID: 1, StartTime: start, EndTime: end},
			wantMsg: "purpose is required",
		},
		{
			name:    "inverted window",
			cmd:     command.CreateReservationCommand{UserID: 1, StartTime: end, EndTime: start, Purpose: "x"},
			wantErr: domain.ErrInvalidTimeWindow,
		},
		{
			name:    "unknown user",
			cmd:     command.CreateReservationCommand{UserID: 9, StartTime: start, EndTime: end, Purpose: "x"},
			wantErr: domain.ErrUserNotFound,
		},
		{
			name:    "unknown subject",
			cmd:     command.CreateReservationCommand{UserID: 1, SubjectID: uintPtr(9), StartTime: start, EndTime: end, Purpose: "x"},
			wantErr: domain.ErrSubjectNotFound,
		},
		{
			name:    "unknown group",
			cmd:     command.CreateReservationCommand{UserID: 1, GroupID: uintPtr(9), StartTime: start, EndTime: end, Purpose: "x"},
			wantErr: domain.ErrGroupNotFound,
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
