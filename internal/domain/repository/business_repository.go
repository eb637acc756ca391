package repository

import (
	"context"

	"github.com/jhoicas/retail-inventory/internal/domain/entity"
)

// BusinessRepository define el puerto de persistencia para Business (DIP).
type BusinessRepository interface {
	Create(ctx context.Context, business *entity.Business) error
	GetByID(ctx context.Context, id string) (*entity.Business, error)
	Update(ctx context.Context, business *entity.Business) error
	ListAll(ctx context.Context) ([]*entity.Business, error)
}
