package repository

import (
	"context"

	"github.com/jhoicas/retail-inventory/internal/domain/entity"
)

// ItemPlacement cantidad de un artículo en una ubicación con los datos de la ubicación.
type ItemPlacement struct {
	LocationID   string `json:"locationId" db:"location_id"`
	LocationName string `json:"name" db:"location_name"`
	LocationCode string `json:"code" db:"location_code"`
	Quantity     int    `json:"quantity" db:"quantity"`
}

// LocationStockRow artículo almacenado en una ubicación (detalle de ubicación).
type LocationStockRow struct {
	ItemID   string `json:"itemId"`
	Name     string `json:"name"`
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity"`
}

// ItemLocationRepository define el puerto del libro artículo-ubicación (DIP).
type ItemLocationRepository interface {
	// Get devuelve nil, nil si no existe fila para (locationID, itemID).
	Get(ctx context.Context, locationID, itemID string) (*entity.ItemLocation, error)
	GetForUpdate(ctx context.Context, locationID, itemID string) (*entity.ItemLocation, error)
	// Upsert fija la cantidad absoluta de (LocationID, ItemID).
	Upsert(ctx context.Context, il *entity.ItemLocation) error
	ListByItem(ctx context.Context, itemID string) ([]ItemPlacement, error)
	ListByLocation(ctx context.Context, locationID string) ([]LocationStockRow, error)
	CountByLocation(ctx context.Context, locationID string) (int, error)
	DeleteByItem(ctx context.Context, itemID string) error
}
