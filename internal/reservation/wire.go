//go:build wireinject
// +build wireinject

package reservation

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/plataforma/labstock/internal/reservation/delivery/http"
	"github.com/plataforma/labstock/internal/reservation/domain"
	"github.com/plataforma/labstock/internal/reservation/repository"
	"github.com/plataforma/labstock/internal/reservation/usecase/command"
)

// ProvideReservationRepository provides the reservation repository
func ProvideReservationRepository(db *gorm.DB) domain.ReservationRepository {
	return repository.NewGormReservationRepository(db)
}

// ProvideMaterialLineRepository provides the line-item repository
func ProvideMaterialLineRepository(db *gorm.DB) domain.MaterialLineRepository {
	return repository.NewGormMaterialLineRepository(db)
}

// ProvideTeamMemberRepository provides the team member repository
func ProvideTeamMemberRepository(db *gorm.DB) domain.TeamMemberRepository {
	return repository.NewGormTeamMemberRepository(db)
}

// ProvideDeps bundles the handler dependencies. The directories and the
// publisher come from the caller; everything database-backed is built here.
func ProvideDeps(
	reservations domain.ReservationRepository,
	lines domain.MaterialLineRepository,
	members domain.TeamMemberRepository,
	users domain.UserDirectory,
	subjects domain.SubjectDirectory,
	groups domain.GroupDirectory,
	publisher command.MovementPublisher,
) http.Deps {
	return http.Deps{
		Reservations: reservations,
		Lines:        lines,
		Members:      members,
		Users:        users,
		Subjects:     subjects,
		Groups:       groups,
		Publisher:    publisher,
	}
}

var RepositorySet = wire.NewSet(
	ProvideReservationRepository,
	ProvideMaterialLineRepository,
	ProvideTeamMemberRepository,
)

// InitializeHTTPHandler initializes the reservation HTTP handler
func InitializeHTTPHandler(
	db *gorm.DB,
	users domain.UserDirectory,
	subjects domain.SubjectDirectory,
	groups domain.GroupDirectory,
	publisher command.MovementPublisher,
) (*http.ReservationHandler, error) {
	wire.Build(
		RepositorySet,
		ProvideDeps,
		http.NewReservationHandler,
	)
	return nil, nil
}
