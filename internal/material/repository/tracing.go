package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"
)

var tracer = otel.Tracer("material-repository")

// TracingStockLedger wraps GormStockLedger with OpenTelemetry spans around
// the two stock-mutating operations.
type TracingStockLedger struct {
	*GormStockLedger
}

// NewTracingStockLedger creates a stock ledger with tracing
func NewTracingStockLedger(db *gorm.DB) *TracingStockLedger {
	return &TracingStockLedger{GormStockLedger: NewGormStockLedger(db)}
}

// ReserveWithContext records a span around a stock reservation
func (l *TracingStockLedger) ReserveWithContext(ctx context.Context, materialID uint, quantity int) error {
	_, span := tracer.Start(ctx, "ledger.Reserve",
		trace.WithAttributes(
			attribute.Int("material.id", int(materialID)),
			attribute.Int("stock.quantity", quantity),
		),
	)
	defer span.End()

	if err := l.GormStockLedger.Reserve(materialID, quantity); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

// ReleaseWithContext records a span around a stock release
func (l *TracingStockLedger) ReleaseWithContext(ctx context.Context, materialID uint, quantity int) error {
	_, span := tracer.Start(ctx, "ledger.Release",
		trace.WithAttributes(
			attribute.Int("material.id", int(materialID)),
			attribute.Int("stock.quantity", quantity),
		),
	)
	defer span.End()

	if err := l.GormStockLedger.Release(materialID, quantity); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}
