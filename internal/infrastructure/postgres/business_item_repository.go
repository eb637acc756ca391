package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/retail-inventory/internal/domain"
	"github.com/jhoicas/retail-inventory/internal/domain/entity"
	"github.com/jhoicas/retail-inventory/internal/domain/repository"
)

var _ repository.BusinessItemRepository = (*BusinessItemRepo)(nil)

const itemColumns = `id, business_id, catalog_id, category_id, name, sku, unit_price, cost_price,
	rsu_value, min_stock_level, image_url, created_at, updated_at`

// BusinessItemRepo implementación de BusinessItemRepository sobre PostgreSQL (usable con pool o tx).
type BusinessItemRepo struct {
	q Querier
}

// NewBusinessItemRepository construye el adaptador de artículos. Pasar pool o tx (Querier).
func NewBusinessItemRepository(q Querier) *BusinessItemRepo {
	return &BusinessItemRepo{q: q}
}

// Create persiste un artículo. (business_id, catalog_id) es único.
func (r *BusinessItemRepo) Create(ctx context.Context, it *entity.BusinessItem) error {
	query := `
		INSERT INTO business_items (` + itemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		it.ID, it.BusinessID, it.CatalogID, it.CategoryID, it.Name, it.SKU, it.UnitPrice, it.CostPrice,
		it.RSUValue, it.MinStockLevel, it.ImageURL, it.CreatedAt, it.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidReference
		}
		return fmt.Errorf("insert business item: %w", err)
	}
	return nil
}

// GetByID obtiene un artículo del negocio.
func (r *BusinessItemRepo) GetByID(ctx context.Context, businessID, id string) (*entity.BusinessItem, error) {
	if !validID(businessID, id) {
		return nil, nil
	}
	return r.scanOne(r.q.QueryRow(ctx,
		`SELECT `+itemColumns+` FROM business_items WHERE id = $1 AND business_id = $2`, id, businessID))
}

// GetForUpdate obtiene el artículo bloqueando la fila.
func (r *BusinessItemRepo) GetForUpdate(ctx context.Context, businessID, id string) (*entity.BusinessItem, error) {
	if !validID(businessID, id) {
		return nil, nil
	}
	return r.scanOne(r.q.QueryRow(ctx,
		`SELECT `+itemColumns+` FROM business_items WHERE id = $1 AND business_id = $2 FOR UPDATE`, id, businessID))
}

// GetForShare obtiene el artículo con bloqueo compartido.
func (r *BusinessItemRepo) GetForShare(ctx context.Context, businessID, id string) (*entity.BusinessItem, error) {
	if !validID(businessID, id) {
		return nil, nil
	}
	return r.scanOne(r.q.QueryRow(ctx,
		`SELECT `+itemColumns+` FROM business_items WHERE id = $1 AND business_id = $2 FOR SHARE`, id, businessID))
}

// GetByCatalog obtiene el artículo del negocio para un producto del catálogo.
func (r *BusinessItemRepo) GetByCatalog(ctx context.Context, businessID, catalogID string) (*entity.BusinessItem, error) {
	if !validID(businessID, catalogID) {
		return nil, nil
	}
	return r.scanOne(r.q.QueryRow(ctx,
		`SELECT `+itemColumns+` FROM business_items WHERE business_id = $1 AND catalog_id = $2`, businessID, catalogID))
}

// Update actualiza los campos editables del artículo.
func (r *BusinessItemRepo) Update(ctx context.Context, it *entity.BusinessItem) error {
	query := `
		UPDATE business_items SET category_id = $3, name = $4, sku = $5, unit_price = $6, cost_price = $7,
			rsu_value = $8, min_stock_level = $9, image_url = $10, updated_at = $11
		WHERE id = $1 AND business_id = $2`
	_, err := r.q.Exec(ctx, query,
		it.ID, it.BusinessID, it.CategoryID, it.Name, it.SKU, it.UnitPrice, it.CostPrice,
		it.RSUValue, it.MinStockLevel, it.ImageURL, it.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidReference
		}
		return fmt.Errorf("update business item: %w", err)
	}
	return nil
}

// Delete elimina el artículo del negocio.
func (r *BusinessItemRepo) Delete(ctx context.Context, businessID, id string) error {
	if !validID(businessID, id) {
		return nil
	}
	_, err := r.q.Exec(ctx, `DELETE FROM business_items WHERE id = $1 AND business_id = $2`, id, businessID)
	if err != nil {
		return fmt.Errorf("delete business item: %w", err)
	}
	return nil
}

// CountByCategory número de artículos del negocio con la categoría.
func (r *BusinessItemRepo) CountByCategory(ctx context.Context, businessID, categoryID string) (int, error) {
	if !validID(businessID, categoryID) {
		return 0, nil
	}
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM business_items WHERE business_id = $1 AND category_id = $2`,
		businessID, categoryID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count items by category: %w", err)
	}
	return n, nil
}

func (r *BusinessItemRepo) scanOne(row pgx.Row) (*entity.BusinessItem, error) {
	var it entity.BusinessItem
	err := row.Scan(
		&it.ID, &it.BusinessID, &it.CatalogID, &it.CategoryID, &it.Name, &it.SKU, &it.UnitPrice, &it.CostPrice,
		&it.RSUValue, &it.MinStockLevel, &it.ImageURL, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get business item: %w", err)
	}
	return &it, nil
}
