package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// AnalyticsRepository consultas read-only para el dashboard.
type AnalyticsRepository interface {
	// ItemTotals devuelve el número de artículos del negocio y Σ(cantidad × costo).
	ItemTotals(ctx context.Context, businessID string) (count int, value decimal.Decimal, err error)
}
