package command_test

import (
	"errors"
	"testing"

	"github.com/plataforma/labstock/internal/reservation/domain"
	"github.com/plataforma/labstock/internal/reservation/usecase/command"
)

func TestAddTeamMember(t *testing.T) {
	reservations := newFakeReservationRepo()
	members := newFakeMemberRepo()
	reservation := seedReservation(t, reservations)

	handler := command.NewAddTeamMemberHandler(reservations, members, fakeUsers{7: true})

	member, err := handler.Handle(command.AddTeamMemberCommand{
		ReservationID: reservation.ID,
		UserID:        7,
	})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if member.ID == 0 {
		t.Error("created member has no id")
	}

	if _, err := handler.Handle(command.AddTeamMemberCommand{
		ReservationID: reservation.ID,
		UserID:        7,
	}); !errors.Is(err, domain.ErrDuplicateMember) {
		t.Errorf("second add: expected ErrDuplicateMember, got %v", err)
	}
}

func TestAddTeamMemberRejections(t *testing.T) {
	reservations := newFakeReservationRepo()
	members := newFakeMemberRepo()
	reservation := seedReservation(t, reservations)

	handler := command.NewAddTeamMemberHandler(reservations, members, fakeUsers{7: true})

	if _, err := handler.Handle(command.AddTeamMemberCommand{
		ReservationID: 999,
		UserID:        7,
	}); !errors.Is(err, domain.ErrReservationNotFound) {
		t.Errorf("expected ErrReservationNotFound, got %v", err)
	}

	if _, err := handler.Handle(command.AddTeamMemberCommand{
		ReservationID: reservation.ID,
		UserID:        99,
	}); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestRemoveTeamMember(t *testing.T) {
	reservations := newFakeReservationRepo()
	members := newFakeMemberRepo()
	reservation := seedReservation(t, reservations)

	add := command.NewAddTeamMemberHandler(reservations, members, fakeUsers{7: true})
	member, err := add.Handle(command.AddTeamMemberCommand{ReservationID: reservation.ID, UserID: 7})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	remove := command.NewRemoveTeamMemberHandler(members)
	if err := remove.Handle(command.RemoveTeamMemberCommand{ID: member.ID}); err != nil {
		t.Fatalf("remove: %v", err)
	}

	if err := remove.Handle(command.RemoveTeamMemberCommand{ID: member.ID}); !errors.Is(err, domain.ErrMemberNotFound) {
		t.Errorf("second remove: expected ErrMemberNotFound, got %v", err)
	}

	// Removal frees the slot for re-adding.
	if _, err := add.Handle(command.AddTeamMemberCommand{ReservationID: reservation.ID, UserID: 7}); err != nil {
		t.Errorf("re-add after remove: %v", err)
	}
}
