package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/retail-inventory/internal/domain/entity"
)

// LocationRepository define el puerto de persistencia para Location (DIP).
type LocationRepository interface {
	Create(ctx context.Context, location *entity.Location) error
	GetByID(ctx context.Context, businessID, id string) (*entity.Location, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE): serializa conteos concurrentes sobre la ubicación.
	GetForUpdate(ctx context.Context, businessID, id string) (*entity.Location, error)
	GetByName(ctx context.Context, businessID, name string) (*entity.Location, error)
	GetByCode(ctx context.Context, businessID, code string) (*entity.Location, error)
	ListByBusiness(ctx context.Context, businessID string) ([]*entity.Location, error)
	// Update actualiza datos descriptivos y capacidad; nunca CurrentRSUUsage.
	Update(ctx context.Context, location *entity.Location) error
	// AddUsage suma delta (positivo o negativo) a current_rsu_usage.
	AddUsage(ctx context.Context, locationID string, delta decimal.Decimal) error
	Delete(ctx context.Context, businessID, id string) error
}
