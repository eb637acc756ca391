package postgres

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/jhoicas/retail-inventory/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo construye orígenes de reportes sobre tablas en vivo o sobre un snapshot.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el repositorio de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// Live origen sobre las tablas actuales del negocio.
func (r *ReportRepo) Live(businessID string) repository.ReportSource {
	return &reportSource{
		q:    r.q,
		args: []interface{}{businessID},
		ok:   validID(businessID),
		stockSQL: `
			SELECT bi.id::text AS item_id, bi.name, bi.sku, c.name AS category_name, bi.min_stock_level,
				COALESCE((SELECT SUM(il.quantity) FROM item_locations il WHERE il.item_id = bi.id), 0)::int AS quantity,
				bi.unit_price, bi.cost_price, bi.rsu_value
			FROM business_items bi
			LEFT JOIN categories c ON c.id = bi.category_id
			WHERE bi.business_id = $1
			ORDER BY lower(bi.name), bi.id`,
		usageSQL: `
			SELECT l.id::text AS location_id, l.name, l.code, l.capacity_rsu, l.current_rsu_usage AS used_rsu
			FROM locations l
			WHERE l.business_id = $1
			ORDER BY lower(l.name), l.id`,
	}
}

// Snapshot origen sobre las copias de un snapshot. Un snapshot de otro negocio no produce filas.
func (r *ReportRepo) Snapshot(businessID, snapshotID string) repository.ReportSource {
	return &reportSource{
		q:    r.q,
		args: []interface{}{businessID, snapshotID},
		ok:   validID(businessID, snapshotID),
		stockSQL: `
			SELECT si.item_id::text AS item_id, si.name, si.sku, si.category_name, si.min_stock_level,
				si.quantity, si.unit_price, si.cost_price, si.rsu_value
			FROM snapshot_items si
			JOIN inventory_snapshots s ON s.id = si.snapshot_id
			WHERE s.business_id = $1 AND s.id = $2
			ORDER BY lower(si.name), si.item_id`,
		usageSQL: `
			SELECT sl.location_id::text AS location_id, sl.name, sl.code, sl.capacity_rsu, sl.used_rsu
			FROM snapshot_locations sl
			JOIN inventory_snapshots s ON s.id = sl.snapshot_id
			WHERE s.business_id = $1 AND s.id = $2
			ORDER BY lower(sl.name), sl.location_id`,
	}
}

// reportSource produce las mismas filas para ambos orígenes; solo cambia la consulta.
type reportSource struct {
	q        Querier
	args     []interface{}
	ok       bool
	stockSQL string
	usageSQL string
}

func (s *reportSource) StockLevels(ctx context.Context) ([]repository.StockLevelRow, error) {
	rows := make([]repository.StockLevelRow, 0)
	if !s.ok {
		return rows, nil
	}
	if err := pgxscan.Select(ctx, s.q, &rows, s.stockSQL, s.args...); err != nil {
		return nil, fmt.Errorf("report stock levels: %w", err)
	}
	return rows, nil
}

func (s *reportSource) LocationUsage(ctx context.Context) ([]repository.LocationUsageRow, error) {
	rows := make([]repository.LocationUsageRow, 0)
	if !s.ok {
		return rows, nil
	}
	if err := pgxscan.Select(ctx, s.q, &rows, s.usageSQL, s.args...); err != nil {
		return nil, fmt.Errorf("report location usage: %w", err)
	}
	return rows, nil
}
