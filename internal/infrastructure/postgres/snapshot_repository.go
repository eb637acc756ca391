package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/retail-inventory/internal/domain/entity"
	"github.com/jhoicas/retail-inventory/internal/domain/repository"
)

var _ repository.SnapshotRepository = (*SnapshotRepo)(nil)

// SnapshotRepo snapshots históricos sobre PostgreSQL. Solo inserción y lectura.
type SnapshotRepo struct {
	q Querier
}

// NewSnapshotRepository construye el adaptador de snapshots.
func NewSnapshotRepository(q Querier) *SnapshotRepo {
	return &SnapshotRepo{q: q}
}

// Create inserta la cabecera y copia cantidades totales por artículo y ocupación por ubicación.
// Las dos copias son sentencias distintas: solo coinciden si la transacción es REPEATABLE READ
// (inventory.WithIsolation), como hace el caso de uso de snapshots.
func (r *SnapshotRepo) Create(ctx context.Context, s *entity.InventorySnapshot) (int, int, error) {
	_, err := r.q.Exec(ctx,
		`INSERT INTO inventory_snapshots (id, business_id, snapshot_date, snapshot_type) VALUES ($1, $2, $3, $4)`,
		s.ID, s.BusinessID, s.SnapshotDate, s.SnapshotType,
	)
	if err != nil {
		return 0, 0, fmt.Errorf("insert snapshot: %w", err)
	}

	items, err := r.q.Exec(ctx, `
		INSERT INTO snapshot_items (snapshot_id, item_id, name, sku, category_name, min_stock_level,
			quantity, unit_price, cost_price, rsu_value)
		SELECT $1, bi.id, bi.name, bi.sku, c.name, bi.min_stock_level,
			COALESCE((SELECT SUM(il.quantity) FROM item_locations il WHERE il.item_id = bi.id), 0),
			bi.unit_price, bi.cost_price, bi.rsu_value
		FROM business_items bi
		LEFT JOIN categories c ON c.id = bi.category_id
		WHERE bi.business_id = $2`, s.ID, s.BusinessID)
	if err != nil {
		return 0, 0, fmt.Errorf("copy snapshot items: %w", err)
	}

	locations, err := r.q.Exec(ctx, `
		INSERT INTO snapshot_locations (snapshot_id, location_id, name, code, capacity_rsu, used_rsu)
		SELECT $1, l.id, l.name, l.code, l.capacity_rsu, l.current_rsu_usage
		FROM locations l
		WHERE l.business_id = $2`, s.ID, s.BusinessID)
	if err != nil {
		return 0, 0, fmt.Errorf("copy snapshot locations: %w", err)
	}
	return int(items.RowsAffected()), int(locations.RowsAffected()), nil
}

// GetByID obtiene un snapshot del negocio.
func (r *SnapshotRepo) GetByID(ctx context.Context, businessID, id string) (*entity.InventorySnapshot, error) {
	if !validID(businessID, id) {
		return nil, nil
	}
	return scanSnapshot(r.q.QueryRow(ctx,
		`SELECT id, business_id, snapshot_date, snapshot_type FROM inventory_snapshots
		WHERE id = $1 AND business_id = $2`, id, businessID))
}

// ListByBusiness snapshots del negocio, el más reciente primero.
func (r *SnapshotRepo) ListByBusiness(ctx context.Context, businessID string) ([]*entity.InventorySnapshot, error) {
	list := make([]*entity.InventorySnapshot, 0)
	if !validID(businessID) {
		return list, nil
	}
	rows, err := r.q.Query(ctx,
		`SELECT id, business_id, snapshot_date, snapshot_type FROM inventory_snapshots
		WHERE business_id = $1 ORDER BY snapshot_date DESC, id`, businessID)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		s, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func scanSnapshot(row pgx.Row) (*entity.InventorySnapshot, error) {
	var s entity.InventorySnapshot
	if err := row.Scan(&s.ID, &s.BusinessID, &s.SnapshotDate, &s.SnapshotType); err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get snapshot: %w", err)
	}
	return &s, nil
}
