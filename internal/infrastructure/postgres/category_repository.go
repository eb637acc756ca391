package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/retail-inventory/internal/domain"
	"github.com/jhoicas/retail-inventory/internal/domain/entity"
	"github.com/jhoicas/retail-inventory/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// CategoryRepo implementación de CategoryRepository sobre PostgreSQL.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador de categorías.
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	query := `
		INSERT INTO categories (id, business_id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, c.ID, c.BusinessID, c.Name, c.Description, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateName
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *CategoryRepo) GetByID(ctx context.Context, businessID, id string) (*entity.Category, error) {
	if !validID(businessID, id) {
		return nil, nil
	}
	return scanCategory(r.q.QueryRow(ctx,
		`SELECT id, business_id, name, description, created_at, updated_at
		FROM categories WHERE id = $1 AND business_id = $2`, id, businessID))
}

func (r *CategoryRepo) GetByName(ctx context.Context, businessID, name string) (*entity.Category, error) {
	if !validID(businessID) {
		return nil, nil
	}
	return scanCategory(r.q.QueryRow(ctx,
		`SELECT id, business_id, name, description, created_at, updated_at
		FROM categories WHERE business_id = $1 AND name = $2`, businessID, name))
}

func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	_, err := r.q.Exec(ctx,
		`UPDATE categories SET name = $3, description = $4, updated_at = $5 WHERE id = $1 AND business_id = $2`,
		c.ID, c.BusinessID, c.Name, c.Description, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateName
		}
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

// ListByBusiness categorías del negocio ordenadas por nombre.
func (r *CategoryRepo) ListByBusiness(ctx context.Context, businessID string) ([]*entity.Category, error) {
	list := make([]*entity.Category, 0)
	if !validID(businessID) {
		return list, nil
	}
	rows, err := r.q.Query(ctx,
		`SELECT id, business_id, name, description, created_at, updated_at
		FROM categories WHERE business_id = $1 ORDER BY lower(name), id`, businessID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func (r *CategoryRepo) Delete(ctx context.Context, businessID, id string) error {
	if !validID(businessID, id) {
		return nil
	}
	_, err := r.q.Exec(ctx, `DELETE FROM categories WHERE id = $1 AND business_id = $2`, id, businessID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrCategoryInUse
		}
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

func scanCategory(row pgx.Row) (*entity.Category, error) {
	var c entity.Category
	if err := row.Scan(&c.ID, &c.BusinessID, &c.Name, &c.Description, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return &c, nil
}
