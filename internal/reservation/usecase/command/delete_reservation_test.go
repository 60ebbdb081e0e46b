package command_test

import (
	"context"
	"errors"
	"testing"

	"github.com/plataforma/labstock/internal/reservation/domain"
	"github.com/plataforma/labstock/internal/reservation/usecase/command"
	"github.com/plataforma/labstock/kafka"
)

func TestDeleteReservationReleasesOutstandingStock(t *testing.T) {
	ledger := newFakeLedger(map[uint]int{10: 10, 20: 5})
	lines := newFakeLineRepo(ledger)
	reservations := newFakeReservationRepo()
	members := newFakeMemberRepo()
	publisher := &capturePublisher{}
	reservation := seedReservation(t, reservations)

	add := command.NewAddMaterialHandler(reservations, lines, nil)
	if _, err := add.Handle(context.Background(), command.AddMaterialCommand{
		ReservationID: reservation.ID, MaterialID: 10, Quantity: 4,
	}); err != nil {
		t.Fatalf("add line: %v", err)
	}
	if _, err := add.Handle(context.Background(), command.AddMaterialCommand{
		ReservationID: reservation.ID, MaterialID: 20, Quantity: 2,
	}); err != nil {
		t.Fatalf("add line: %v", err)
	}
	if err := members.Create(&domain.TeamMember{ReservationID: reservation.ID, UserID: 7}); err != nil {
		t.Fatalf("add member: %v", err)
	}

	handler := command.NewDeleteReservationHandler(reservations, lines, members, publisher)
	if err := handler.Handle(context.Background(), command.DeleteReservationCommand{ID: reservation.ID}); err != nil {
		t.Fatalf("Handle: %v", err)
	}

	if got := ledger.stockOf(10); got != 10 {
		t.Errorf("material 10 stock = %d, want 10 restored", got)
	}
	if got := ledger.stockOf(20); got != 5 {
		t.Errorf("material 20 stock = %d, want 5 restored", got)
	}
	if exists, _ := reservations.Exists(reservation.ID); exists {
		t.Error("reservation still exists after delete")
	}
	if remaining, _ := lines.FindByReservation(reservation.ID); len(remaining) != 0 {
		t.Errorf("%d lines left after delete", len(remaining))
	}
	if remaining, _ := members.FindByReservation(reservation.ID); len(remaining) != 0 {
		t.Errorf("%d members left after delete", len(remaining))
	}

	for _, event := range publisher.recorded() {
		if event.EventType != kafka.EventTypeStockReleased {
			t.Errorf("unexpected event type %q during cascade", event.EventType)
		}
	}
}

// A damaged line holds units that are out of the pool for good; deleting
// the reservation must not resurrect them.
func TestDeleteReservationDamagedLineReleasesNothing(t *testing.T) {
	ledger := newFakeLedger(map[uint]int{10: 10})
	lines := newFakeLineRepo(ledger)
	reservations := newFakeReservationRepo()
	members := newFakeMemberRepo()
	reservation := seedReservation(t, reservations)

	add := command.NewAddMaterialHandler(reservations, lines, nil)
	line, err := add.Handle(context.Background(), command.AddMaterialCommand{
		ReservationID: reservation.ID, MaterialID: 10, Quantity: 4,
	})
	if err != nil {
		t.Fatalf("add line: %v", err)
	}

	update := command.NewUpdateMaterialLineHandler(lines, nil)
	if _, err := update.Handle(context.Background(), command.UpdateMaterialLineCommand{
		LineID: line.ID,
		Status: strPtr("damaged"),
	}); err != nil {
		t.Fatalf("mark damaged: %v", err)
	}

	handler := command.NewDeleteReservationHandler(reservations, lines, members, nil)
	if err := handler.Handle(context.Background(), command.DeleteReservationCommand{ID: reservation.ID}); err != nil {
		t.Fatalf("Handle: %v", err)
	}

	if got := ledger.stockOf(10); got != 6 {
		t.Errorf("stock = %d, want 6 (damaged units stay lost)", got)
	}
}

func TestDeleteReservationNotFound(t *testing.T) {
	handler := command.NewDeleteReservationHandler(newFakeReservationRepo(), newFakeLineRepo(newFakeLedger(nil)), newFakeMemberRepo(), nil)

	err := handler.Handle(context.Background(), command.DeleteReservationCommand{ID: 42})
	if !errors.Is(err, domain.ErrReservationNotFound) {
		t.Fatalf("expected ErrReservationNotFound, got %v", err)
	}
}
