package repository

import (
	"context"

	"github.com/jhoicas/retail-inventory/internal/domain/entity"
)

// CatalogRepository define el puerto de persistencia del catálogo global (DIP).
type CatalogRepository interface {
	Create(ctx context.Context, product *entity.CatalogProduct) error
	// GetByID devuelve nil, nil si el producto no existe.
	GetByID(ctx context.Context, id string) (*entity.CatalogProduct, error)
}
