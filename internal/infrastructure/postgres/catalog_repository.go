package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/retail-inventory/internal/domain/entity"
	"github.com/jhoicas/retail-inventory/internal/domain/repository"
)

var _ repository.CatalogRepository = (*CatalogRepo)(nil)

// CatalogRepo implementación del catálogo global sobre PostgreSQL (usable con pool o tx).
type CatalogRepo struct {
	q Querier
}

// NewCatalogRepository construye el adaptador del catálogo. Pasar pool o tx (Querier).
func NewCatalogRepository(q Querier) *CatalogRepo {
	return &CatalogRepo{q: q}
}

// Create persiste un producto del catálogo.
func (r *CatalogRepo) Create(ctx context.Context, p *entity.CatalogProduct) error {
	query := `
		INSERT INTO catalog_products (id, name, barcode, description, pack_size, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, p.ID, p.Name, p.Barcode, p.Description, p.PackSize, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert catalog product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto del catálogo por ID.
func (r *CatalogRepo) GetByID(ctx context.Context, id string) (*entity.CatalogProduct, error) {
	if !validID(id) {
		return nil, nil
	}
	query := `
		SELECT id, name, barcode, description, pack_size, created_at
		FROM catalog_products WHERE id = $1`
	var p entity.CatalogProduct
	err := r.q.QueryRow(ctx, query, id).Scan(&p.ID, &p.Name, &p.Barcode, &p.Description, &p.PackSize, &p.CreatedAt)
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get catalog product: %w", err)
	}
	return &p, nil
}
