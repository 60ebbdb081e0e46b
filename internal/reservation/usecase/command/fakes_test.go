package command_test

import (
	"context"
	"os"
	"sync"
	"testing"

	materialdomain "github.com/plataforma/labstock/internal/material/domain"
	"github.com/plataforma/labstock/internal/reservation/domain"
	"github.com/plataforma/labstock/kafka"
	"github.com/plataforma/labstock/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init("reservation-test", false)
	os.Exit(m.Run())
}

// fakeLedger is an in-memory StockLedger with the same atomicity
// guarantees as the database-backed one.
type fakeLedger struct {
	mu    sync.Mutex
	stock map[uint]int
}

func newFakeLedger(stock map[uint]int) *fakeLedger {
	if stock == nil {
		stock = make(map[uint]int)
	}
	return &fakeLedger{stock: stock}
}

func (l *fakeLedger) Reserve(materialID uint, quantity int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	current, ok := l.stock[materialID]
	if !ok {
		return materialdomain.ErrMaterialNotFound
	}
	if current < quantity {
		return materialdomain.ErrInsufficientStock
	}
	l.stock[materialID] = current - quantity
	return nil
}

func (l *fakeLedger) Release(materialID uint, quantity int) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.stock[materialID]; !ok {
		return materialdomain.ErrMaterialNotFound
	}
	l.stock[materialID] += quantity
	return nil
}

func (l *fakeLedger) stockOf(materialID uint) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.stock[materialID]
}

// fakeLineRepo is an in-memory MaterialLineRepository combined with a
// fakeLedger, keeping the line write and the stock move atomic under one
// mutex.
type fakeLineRepo struct {
	mu     sync.Mutex
	ledger *fakeLedger
	lines  map[uint]domain.ReservationMaterial
	nextID uint
}

func newFakeLineRepo(ledger *fakeLedger) *fakeLineRepo {
	return &fakeLineRepo{
		ledger: ledger,
		lines:  make(map[uint]domain.ReservationMaterial),
		nextID: 1,
	}
}

func (r *fakeLineRepo) CreateWithReserve(line *domain.ReservationMaterial) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.ledger.Reserve(line.MaterialID, line.Quantity); err != nil {
		return err
	}
	line.ID = r.nextID
	r.nextID++
	r.lines[line.ID] = *line
	return nil
}

func (r *fakeLineRepo) FindByID(id uint) (*domain.ReservationMaterial, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	line, ok := r.lines[id]
	if !ok {
		return nil, domain.ErrLineNotFound
	}
	return &line, nil
}

func (r *fakeLineRepo) FindAll(limit, offset int) ([]domain.ReservationMaterial, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.ReservationMaterial
	for _, line := range r.lines {
		out = append(out, line)
	}
	return out, nil
}

func (r *fakeLineRepo) FindByReservation(reservationID uint) ([]domain.ReservationMaterial, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.ReservationMaterial
	for _, line := range r.lines {
		if line.ReservationID == reservationID {
			out = append(out, line)
		}
	}
	return out, nil
}

func (r *fakeLineRepo) ApplyUpdate(id uint, returnedQuantity *int, status *string) (*domain.ReservationMaterial, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	line, ok := r.lines[id]
	if !ok {
		return nil, 0, domain.ErrLineNotFound
	}
	released := 0

	if returnedQuantity != nil {
		if *returnedQuantity < 0 || *returnedQuantity > line.Quantity {
			return nil, 0, domain.ErrInvalidQuantity
		}
		line.ReturnedQuantity = *returnedQuantity
	}

	if status != nil && *status != line.Status {
		if !domain.CanTransitionLine(line.Status, *status) {
			return nil, 0, domain.ErrInvalidTransition
		}
		if *status == domain.LineReturned && line.ReturnedQuantity > 0 {
			if err := r.ledger.Release(line.MaterialID, line.ReturnedQuantity); err != nil {
				return nil, 0, err
			}
			released = line.ReturnedQuantity
		}
		line.Status = *status
	}

	r.lines[id] = line
	return &line, released, nil
}

func (r *fakeLineRepo) DeleteWithRelease(id uint) (*domain.ReservationMaterial, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	line, ok := r.lines[id]
	if !ok {
		return nil, 0, domain.ErrLineNotFound
	}

	released := line.ReleaseOnDelete()
	if released > 0 {
		if err := r.ledger.Release(line.MaterialID, released); err != nil {
			return nil, 0, err
		}
	}
	delete(r.lines, id)
	return &line, released, nil
}

// fakeReservationRepo is an in-memory ReservationRepository with the same
// guarded-update behavior as the database-backed one.
type fakeReservationRepo struct {
	mu           sync.Mutex
	reservations map[uint]domain.Reservation
	nextID       uint
}

func newFakeReservationRepo() *fakeReservationRepo {
	return &fakeReservationRepo{
		reservations: make(map[uint]domain.Reservation),
		nextID:       1,
	}
}

func (r *fakeReservationRepo) Create(reservation *domain.Reservation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	reservation.ID = r.nextID
	r.nextID++
	r.reservations[reservation.ID] = *reservation
	return nil
}

func (r *fakeReservationRepo) FindByID(id uint) (*domain.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	reservation, ok := r.reservations[id]
	if !ok {
		return nil, domain.ErrReservationNotFound
	}
	return &reservation, nil
}

func (r *fakeReservationRepo) FindAll(limit, offset int) ([]domain.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Reservation
	for _, reservation := range r.reservations {
		out = append(out, reservation)
	}
	return out, nil
}

func (r *fakeReservationRepo) FindByUser(userID uint, limit, offset int) ([]domain.Reservation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Reservation
	for _, reservation := range r.reservations {
		if reservation.UserID == userID {
			out = append(out, reservation)
		}
	}
	return out, nil
}

func (r *fakeReservationRepo) Exists(id uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.reservations[id]
	return ok, nil
}

func (r *fakeReservationRepo) Update(reservation *domain.Reservation, fromStatus string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.reservations[reservation.ID]
	if !ok {
		return domain.ErrReservationNotFound
	}
	if current.Status != fromStatus {
		return domain.ErrConflict
	}
	r.reservations[reservation.ID] = *reservation
	return nil
}

func (r *fakeReservationRepo) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.reservations[id]; !ok {
		return domain.ErrReservationNotFound
	}
	delete(r.reservations, id)
	return nil
}

// fakeMemberRepo is an in-memory TeamMemberRepository.
type fakeMemberRepo struct {
	mu      sync.Mutex
	members map[uint]domain.TeamMember
	nextID  uint
}

func newFakeMemberRepo() *fakeMemberRepo {
	return &fakeMemberRepo{
		members: make(map[uint]domain.TeamMember),
		nextID:  1,
	}
}

func (r *fakeMemberRepo) Create(member *domain.TeamMember) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.members {
		if m.ReservationID == member.ReservationID && m.UserID == member.UserID {
			return domain.ErrDuplicateMember
		}
	}
	member.ID = r.nextID
	r.nextID++
	r.members[member.ID] = *member
	return nil
}

func (r *fakeMemberRepo) FindByID(id uint) (*domain.TeamMember, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	member, ok := r.members[id]
	if !ok {
		return nil, domain.ErrMemberNotFound
	}
	return &member, nil
}

func (r *fakeMemberRepo) FindByReservation(reservationID uint) ([]domain.TeamMember, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.TeamMember
	for _, member := range r.members {
		if member.ReservationID == reservationID {
			out = append(out, member)
		}
	}
	return out, nil
}

func (r *fakeMemberRepo) FindByUser(userID uint) ([]domain.TeamMember, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.TeamMember
	for _, member := range r.members {
		if member.UserID == userID {
			out = append(out, member)
		}
	}
	return out, nil
}

func (r *fakeMemberRepo) Exists(reservationID, userID uint) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, member := range r.members {
		if member.ReservationID == reservationID && member.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeMemberRepo) Delete(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.members[id]; !ok {
		return domain.ErrMemberNotFound
	}
	delete(r.members, id)
	return nil
}

func (r *fakeMemberRepo) DeleteByReservation(reservationID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, member := range r.members {
		if member.ReservationID == reservationID {
			delete(r.members, id)
		}
	}
	return nil
}

// Existence-check fakes backing the reservation core's directories.
type fakeUsers map[uint]bool

func (f fakeUsers) UserExists(id uint) (bool, error) { return f[id], nil }

type fakeSubjects map[uint]bool

func (f fakeSubjects) SubjectExists(id uint) (bool, error) { return f[id], nil }

type fakeGroups map[uint]bool

func (f fakeGroups) GroupExists(id uint) (bool, error) { return f[id], nil }

// capturePublisher records published stock movement events.
type capturePublisher struct {
	mu     sync.Mutex
	events []kafka.StockMovementEvent
}

func (p *capturePublisher) PublishStockMovement(ctx context.Context, event kafka.StockMovementEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *capturePublisher) recorded() []kafka.StockMovementEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]kafka.StockMovementEvent, len(p.events))
	copy(out, p.events)
	return out
}
