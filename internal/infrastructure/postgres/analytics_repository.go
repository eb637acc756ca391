package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/retail-inventory/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas agregadas del dashboard sobre PostgreSQL.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el repositorio de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// ItemTotals número de artículos del negocio y valor del inventario Σ(cantidad × costo).
func (r *AnalyticsRepo) ItemTotals(ctx context.Context, businessID string) (int, decimal.Decimal, error) {
	if !validID(businessID) {
		return 0, decimal.Zero, nil
	}
	query := `
		SELECT COUNT(*),
			COALESCE(SUM(bi.cost_price * COALESCE(q.quantity, 0)), 0)
		FROM business_items bi
		LEFT JOIN (
			SELECT item_id, SUM(quantity) AS quantity FROM item_locations GROUP BY item_id
		) q ON q.item_id = bi.id
		WHERE bi.business_id = $1`
	var (
		count int
		value decimal.Decimal
	)
	if err := r.q.QueryRow(ctx, query, businessID).Scan(&count, &value); err != nil {
		return 0, decimal.Zero, fmt.Errorf("item totals: %w", err)
	}
	return count, value, nil
}
