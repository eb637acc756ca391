package repository

import (
	"context"

	"github.com/jhoicas/retail-inventory/internal/domain/entity"
)

// SnapshotRepository define el puerto de los snapshots históricos (solo inserción y lectura).
type SnapshotRepository interface {
	// Create inserta la cabecera y copia el estado actual de artículos y ubicaciones del negocio.
	// Devuelve cuántos artículos y ubicaciones se copiaron.
	Create(ctx context.Context, snapshot *entity.InventorySnapshot) (items, locations int, err error)
	GetByID(ctx context.Context, businessID, id string) (*entity.InventorySnapshot, error)
	ListByBusiness(ctx context.Context, businessID string) ([]*entity.InventorySnapshot, error)
}
