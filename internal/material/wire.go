//go:build wireinject
// +build wireinject

package material

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/plataforma/labstock/internal/material/delivery/http"
	"github.com/plataforma/labstock/internal/material/domain"
	"github.com/plataforma/labstock/internal/material/repository"
)

// ProvideMaterialRepository provides the material repository
func ProvideMaterialRepository(db *gorm.DB) domain.MaterialRepository {
	return repository.NewGormMaterialRepository(db)
}

// ProvideStockLedger provides the traced stock ledger
func ProvideStockLedger(db *gorm.DB) domain.StockLedger {
	return repository.NewTracingStockLedger(db)
}

var RepositorySet = wire.NewSet(
	ProvideMaterialRepository,
	ProvideStockLedger,
)

// InitializeHTTPHandler initializes the material HTTP handler with all dependencies
func InitializeHTTPHandler(db *gorm.DB) (*http.MaterialHandler, error) {
	wire.Build(
		RepositorySet,
		http.NewMaterialHandler,
	)
	return nil, nil
}
