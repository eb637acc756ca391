package repository

import (
	"context"

	"github.com/jhoicas/retail-inventory/internal/domain/entity"
)

// BusinessItemRepository define el puerto de persistencia para BusinessItem (DIP).
// Todas las lecturas están acotadas al negocio; devuelven nil, nil si no hay fila.
type BusinessItemRepository interface {
	Create(ctx context.Context, item *entity.BusinessItem) error
	GetByID(ctx context.Context, businessID, id string) (*entity.BusinessItem, error)
	// GetForUpdate bloquea la fila del artículo hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, businessID, id string) (*entity.BusinessItem, error)
	// GetForShare bloquea la fila en modo compartido: impide cambios de RSU o borrado concurrentes.
	GetForShare(ctx context.Context, businessID, id string) (*entity.BusinessItem, error)
	GetByCatalog(ctx context.Context, businessID, catalogID string) (*entity.BusinessItem, error)
	Update(ctx context.Context, item *entity.BusinessItem) error
	Delete(ctx context.Context, businessID, id string) error
	CountByCategory(ctx context.Context, businessID, categoryID string) (int, error)
}
