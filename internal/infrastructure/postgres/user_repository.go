package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/retail-inventory/internal/domain"
	"github.com/jhoicas/retail-inventory/internal/domain/entity"
	"github.com/jhoicas/retail-inventory/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, business_id, username, password_hash, first_name, last_name, is_admin, is_owner,
	created_at, updated_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo usuario. Username repetido devuelve ErrDuplicate.
func (r *UserRepo) Create(ctx context.Context, u *entity.StaffUser) error {
	query := `INSERT INTO staff_users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		u.ID, u.BusinessID, u.Username, u.PasswordHash, u.FirstName, u.LastName, u.IsAdmin, u.IsOwner,
		u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario del negocio.
func (r *UserRepo) GetByID(ctx context.Context, businessID, id string) (*entity.StaffUser, error) {
	if !validID(businessID, id) {
		return nil, nil
	}
	return scanUser(r.q.QueryRow(ctx,
		`SELECT `+userColumns+` FROM staff_users WHERE id = $1 AND business_id = $2`, id, businessID))
}

// GetByUsername obtiene un usuario por username (cualquier negocio).
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.StaffUser, error) {
	return scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM staff_users WHERE username = $1`, username))
}

// ListByBusiness usuarios del negocio por username.
func (r *UserRepo) ListByBusiness(ctx context.Context, businessID string) ([]*entity.StaffUser, error) {
	list := make([]*entity.StaffUser, 0)
	if !validID(businessID) {
		return list, nil
	}
	rows, err := r.q.Query(ctx,
		`SELECT `+userColumns+` FROM staff_users WHERE business_id = $1 ORDER BY username`, businessID)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

// Update actualiza nombre, hash y rol. Username e is_owner no cambian.
func (r *UserRepo) Update(ctx context.Context, u *entity.StaffUser) error {
	query := `
		UPDATE staff_users SET password_hash = $3, first_name = $4, last_name = $5, is_admin = $6, updated_at = $7
		WHERE id = $1 AND business_id = $2`
	_, err := r.q.Exec(ctx, query,
		u.ID, u.BusinessID, u.PasswordHash, u.FirstName, u.LastName, u.IsAdmin, u.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

// Delete elimina un usuario del negocio.
func (r *UserRepo) Delete(ctx context.Context, businessID, id string) error {
	if !validID(businessID, id) {
		return nil
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM staff_users WHERE id = $1 AND business_id = $2`, id, businessID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func scanUser(row pgx.Row) (*entity.StaffUser, error) {
	var u entity.StaffUser
	err := row.Scan(
		&u.ID, &u.BusinessID, &u.Username, &u.PasswordHash, &u.FirstName, &u.LastName, &u.IsAdmin, &u.IsOwner,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if noRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}
