package repository

import (
	"context"

	"github.com/jhoicas/retail-inventory/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para StaffUser (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.StaffUser) error
	GetByID(ctx context.Context, businessID, id string) (*entity.StaffUser, error)
	// GetByUsername busca en todos los negocios (el username es único global).
	GetByUsername(ctx context.Context, username string) (*entity.StaffUser, error)
	ListByBusiness(ctx context.Context, businessID string) ([]*entity.StaffUser, error)
	Update(ctx context.Context, user *entity.StaffUser) error
	Delete(ctx context.Context, businessID, id string) error
}
