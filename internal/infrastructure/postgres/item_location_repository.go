package postgres

import (
	"context"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/retail-inventory/internal/domain/entity"
	"github.com/jhoicas/retail-inventory/internal/domain/repository"
)

var _ repository.ItemLocationRepository = (*ItemLocationRepo)(nil)

// ItemLocationRepo libro artículo-ubicación sobre PostgreSQL (usable con pool o tx).
type ItemLocationRepo struct {
	q Querier
}

// NewItemLocationRepository construye el adaptador del libro artículo-ubicación.
func NewItemLocationRepository(q Querier) *ItemLocationRepo {
	return &ItemLocationRepo{q: q}
}

// Get obtiene la cantidad de (locationID, itemID). nil, nil si no hay fila.
func (r *ItemLocationRepo) Get(ctx context.Context, locationID, itemID string) (*entity.ItemLocation, error) {
	if !validID(locationID, itemID) {
		return nil, nil
	}
	return scanItemLocation(r.q.QueryRow(ctx,
		`SELECT location_id, item_id, quantity, updated_at FROM item_locations
		WHERE location_id = $1 AND item_id = $2`, locationID, itemID))
}

// GetForUpdate igual que Get pero bloqueando la fila.
func (r *ItemLocationRepo) GetForUpdate(ctx context.Context, locationID, itemID string) (*entity.ItemLocation, error) {
	if !validID(locationID, itemID) {
		return nil, nil
	}
	return scanItemLocation(r.q.QueryRow(ctx,
		`SELECT location_id, item_id, quantity, updated_at FROM item_locations
		WHERE location_id = $1 AND item_id = $2 FOR UPDATE`, locationID, itemID))
}

// Upsert fija la cantidad absoluta. Las filas con cantidad cero se conservan.
func (r *ItemLocationRepo) Upsert(ctx context.Context, il *entity.ItemLocation) error {
	query := `
		INSERT INTO item_locations (location_id, item_id, quantity, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (location_id, item_id) DO UPDATE
		SET quantity = EXCLUDED.quantity, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query, il.LocationID, il.ItemID, il.Quantity, il.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert item location: %w", err)
	}
	return nil
}

// ListByItem ubicaciones donde hay fila para el artículo, ordenadas por nombre de ubicación.
func (r *ItemLocationRepo) ListByItem(ctx context.Context, itemID string) ([]repository.ItemPlacement, error) {
	list := make([]repository.ItemPlacement, 0)
	if !validID(itemID) {
		return list, nil
	}
	query := `
		SELECT il.location_id, l.name AS location_name, l.code AS location_code, il.quantity
		FROM item_locations il
		JOIN locations l ON l.id = il.location_id
		WHERE il.item_id = $1
		ORDER BY lower(l.name), l.id`
	if err := pgxscan.Select(ctx, r.q, &list, query, itemID); err != nil {
		return nil, fmt.Errorf("list item placements: %w", err)
	}
	return list, nil
}

// ListByLocation artículos con fila en la ubicación, ordenados por nombre.
func (r *ItemLocationRepo) ListByLocation(ctx context.Context, locationID string) ([]repository.LocationStockRow, error) {
	list := make([]repository.LocationStockRow, 0)
	if !validID(locationID) {
		return list, nil
	}
	query := `
		SELECT bi.id, bi.name, bi.sku, il.quantity
		FROM item_locations il
		JOIN business_items bi ON bi.id = il.item_id
		WHERE il.location_id = $1
		ORDER BY lower(bi.name), bi.id`
	rows, err := r.q.Query(ctx, query, locationID)
	if err != nil {
		return nil, fmt.Errorf("list location stock: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var row repository.LocationStockRow
		if err := rows.Scan(&row.ItemID, &row.Name, &row.SKU, &row.Quantity); err != nil {
			return nil, fmt.Errorf("scan location stock: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// CountByLocation número de filas (incluidas las de cantidad cero) que referencian la ubicación.
func (r *ItemLocationRepo) CountByLocation(ctx context.Context, locationID string) (int, error) {
	if !validID(locationID) {
		return 0, nil
	}
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM item_locations WHERE location_id = $1`, locationID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count item locations: %w", err)
	}
	return n, nil
}

// DeleteByItem elimina todas las filas del artículo.
func (r *ItemLocationRepo) DeleteByItem(ctx context.Context, itemID string) error {
	if !validID(itemID) {
		return nil
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM item_locations WHERE item_id = $1`, itemID); err != nil {
		return fmt.Errorf("delete item locations: %w", err)
	}
	return nil
}

func scanItemLocation(row pgx.Row) (*entity.ItemLocation, error) {
	var il entity.ItemLocation
	if err := row.Scan(&il.LocationID, &il.ItemID, &il.Quantity, &il.UpdatedAt); err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get item location: %w", err)
	}
	return &il, nil
}
