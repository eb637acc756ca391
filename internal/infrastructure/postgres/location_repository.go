package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/retail-inventory/internal/domain"
	"github.com/jhoicas/retail-inventory/internal/domain/entity"
	"github.com/jhoicas/retail-inventory/internal/domain/repository"
)

var _ repository.LocationRepository = (*LocationRepo)(nil)

const locationColumns = `id, business_id, name, code, description, image_url, capacity_rsu,
	current_rsu_usage, created_at, updated_at`

// LocationRepo implementación del puerto LocationRepository sobre PostgreSQL (usable con pool o tx).
type LocationRepo struct {
	q Querier
}

// NewLocationRepository construye el adaptador de persistencia para ubicaciones.
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

// Create persiste una nueva ubicación. Nombre y código duplicados devuelven ErrDuplicateName.
func (r *LocationRepo) Create(ctx context.Context, l *entity.Location) error {
	query := `
		INSERT INTO locations (` + locationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		l.ID, l.BusinessID, l.Name, l.Code, l.Description, l.ImageURL, l.CapacityRSU,
		l.CurrentRSUUsage, l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateName
		}
		return fmt.Errorf("insert location: %w", err)
	}
	return nil
}

// GetByID obtiene una ubicación del negocio.
func (r *LocationRepo) GetByID(ctx context.Context, businessID, id string) (*entity.Location, error) {
	if !validID(businessID, id) {
		return nil, nil
	}
	return scanLocation(r.q.QueryRow(ctx,
		`SELECT `+locationColumns+` FROM locations WHERE id = $1 AND business_id = $2`, id, businessID))
}

// GetForUpdate obtiene la ubicación con SELECT ... FOR UPDATE.
func (r *LocationRepo) GetForUpdate(ctx context.Context, businessID, id string) (*entity.Location, error) {
	if !validID(businessID, id) {
		return nil, nil
	}
	return scanLocation(r.q.QueryRow(ctx,
		`SELECT `+locationColumns+` FROM locations WHERE id = $1 AND business_id = $2 FOR UPDATE`, id, businessID))
}

// GetByName busca por nombre exacto dentro del negocio.
func (r *LocationRepo) GetByName(ctx context.Context, businessID, name string) (*entity.Location, error) {
	if !validID(businessID) {
		return nil, nil
	}
	return scanLocation(r.q.QueryRow(ctx,
		`SELECT `+locationColumns+` FROM locations WHERE business_id = $1 AND name = $2`, businessID, name))
}

// GetByCode busca por código exacto dentro del negocio.
func (r *LocationRepo) GetByCode(ctx context.Context, businessID, code string) (*entity.Location, error) {
	if !validID(businessID) {
		return nil, nil
	}
	return scanLocation(r.q.QueryRow(ctx,
		`SELECT `+locationColumns+` FROM locations WHERE business_id = $1 AND code = $2`, businessID, code))
}

// ListByBusiness lista las ubicaciones del negocio por nombre.
func (r *LocationRepo) ListByBusiness(ctx context.Context, businessID string) ([]*entity.Location, error) {
	if !validID(businessID) {
		return []*entity.Location{}, nil
	}
	rows, err := r.q.Query(ctx,
		`SELECT `+locationColumns+` FROM locations WHERE business_id = $1 ORDER BY lower(name), id`, businessID)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Location, 0)
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, l)
	}
	return list, rows.Err()
}

// Update actualiza datos descriptivos y capacidad. current_rsu_usage no se toca.
func (r *LocationRepo) Update(ctx context.Context, l *entity.Location) error {
	query := `
		UPDATE locations SET name = $3, code = $4, description = $5, image_url = $6, capacity_rsu = $7, updated_at = $8
		WHERE id = $1 AND business_id = $2`
	_, err := r.q.Exec(ctx, query,
		l.ID, l.BusinessID, l.Name, l.Code, l.Description, l.ImageURL, l.CapacityRSU, l.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateName
		}
		return fmt.Errorf("update location: %w", err)
	}
	return nil
}

// AddUsage suma delta a la ocupación mantenida.
func (r *LocationRepo) AddUsage(ctx context.Context, locationID string, delta decimal.Decimal) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE locations SET current_rsu_usage = current_rsu_usage + $2, updated_at = now() WHERE id = $1`,
		locationID, delta,
	)
	if err != nil {
		return fmt.Errorf("update location usage: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("update location usage %s: %w", locationID, domain.ErrNotFound)
	}
	return nil
}

// Delete elimina una ubicación. Una fila artículo-ubicación restante la protege (FK).
func (r *LocationRepo) Delete(ctx context.Context, businessID, id string) error {
	if !validID(businessID, id) {
		return nil
	}
	_, err := r.q.Exec(ctx, `DELETE FROM locations WHERE id = $1 AND business_id = $2`, id, businessID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrLocationNotEmpty
		}
		return fmt.Errorf("delete location: %w", err)
	}
	return nil
}

func scanLocation(row pgx.Row) (*entity.Location, error) {
	var l entity.Location
	err := row.Scan(
		&l.ID, &l.BusinessID, &l.Name, &l.Code, &l.Description, &l.ImageURL, &l.CapacityRSU,
		&l.CurrentRSUUsage, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan location: %w", err)
	}
	return &l, nil
}
