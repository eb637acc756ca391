package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/retail-inventory/internal/domain/entity"
	"github.com/jhoicas/retail-inventory/internal/domain/repository"
)

var _ repository.BusinessRepository = (*BusinessRepo)(nil)

const businessColumns = `id, name, email, address_line1, address_line2, city, postcode, country,
	rsu_reference_description, created_at, updated_at`

// BusinessRepo implementación de BusinessRepository sobre PostgreSQL.
type BusinessRepo struct {
	q Querier
}

// NewBusinessRepository construye el adaptador de negocios.
func NewBusinessRepository(q Querier) *BusinessRepo {
	return &BusinessRepo{q: q}
}

// Create persiste un negocio (registro).
func (r *BusinessRepo) Create(ctx context.Context, b *entity.Business) error {
	query := `INSERT INTO businesses (` + businessColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		b.ID, b.Name, b.Email, b.AddressLine1, b.AddressLine2, b.City, b.Postcode, b.Country,
		b.RSUReferenceDescription, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert business: %w", err)
	}
	return nil
}

// GetByID obtiene un negocio por ID.
func (r *BusinessRepo) GetByID(ctx context.Context, id string) (*entity.Business, error) {
	if !validID(id) {
		return nil, nil
	}
	return scanBusiness(r.q.QueryRow(ctx, `SELECT `+businessColumns+` FROM businesses WHERE id = $1`, id))
}

// Update actualiza los ajustes del negocio.
func (r *BusinessRepo) Update(ctx context.Context, b *entity.Business) error {
	query := `
		UPDATE businesses SET name = $2, email = $3, address_line1 = $4, address_line2 = $5, city = $6,
			postcode = $7, country = $8, rsu_reference_description = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		b.ID, b.Name, b.Email, b.AddressLine1, b.AddressLine2, b.City, b.Postcode, b.Country,
		b.RSUReferenceDescription, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update business: %w", err)
	}
	return nil
}

// ListAll todos los negocios (job de snapshots).
func (r *BusinessRepo) ListAll(ctx context.Context) ([]*entity.Business, error) {
	rows, err := r.q.Query(ctx, `SELECT `+businessColumns+` FROM businesses ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list businesses: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Business, 0)
	for rows.Next() {
		b, err := scanBusiness(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, b)
	}
	return list, rows.Err()
}

func scanBusiness(row pgx.Row) (*entity.Business, error) {
	var b entity.Business
	err := row.Scan(
		&b.ID, &b.Name, &b.Email, &b.AddressLine1, &b.AddressLine2, &b.City, &b.Postcode, &b.Country,
		&b.RSUReferenceDescription, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get business: %w", err)
	}
	return &b, nil
}
