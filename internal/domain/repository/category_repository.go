package repository

import (
	"context"

	"github.com/jhoicas/retail-inventory/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, businessID, id string) (*entity.Category, error)
	GetByName(ctx context.Context, businessID, name string) (*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	ListByBusiness(ctx context.Context, businessID string) ([]*entity.Category, error)
	Delete(ctx context.Context, businessID, id string) error
}
