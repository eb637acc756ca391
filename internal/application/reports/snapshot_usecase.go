package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/retail-inventory/internal/application/dto"
	"github.com/jhoicas/retail-inventory/internal/application/inventory"
	"github.com/jhoicas/retail-inventory/internal/domain/entity"
)

// SnapshotUseCase copia completa del estado de todos los negocios: cantidades por artículo y
// ocupación por ubicación. Una sola transacción por ejecución: si un negocio falla, no queda ningún snapshot.
type SnapshotUseCase struct {
	txRunner inventory.TxRunner
	now      func() time.Time
}

// NewSnapshotUseCase construye el caso de uso.
func NewSnapshotUseCase(txRunner inventory.TxRunner) *SnapshotUseCase {
	return &SnapshotUseCase{txRunner: txRunner, now: time.Now}
}

// Run crea un snapshot del tipo indicado (weekly por defecto) para cada negocio.
func (uc *SnapshotUseCase) Run(ctx context.Context, snapshotType string) (*dto.SnapshotRunResult, error) {
	if snapshotType == "" {
		snapshotType = entity.SnapshotTypeWeekly
	}
	result := &dto.SnapshotRunResult{
		SnapshotDate: uc.now().UTC(),
		SnapshotType: snapshotType,
	}
	// REPEATABLE READ: las copias de artículos y ubicaciones ven el mismo estado confirmado.
	err := uc.txRunner.Run(ctx, func(r inventory.TxRepos) error {
		created := make([]dto.SnapshotCreated, 0)
		businesses, err := r.Businesses.ListAll(ctx)
		if err != nil {
			return err
		}
		for _, b := range businesses {
			snap := &entity.InventorySnapshot{
				ID:           uuid.New().String(),
				BusinessID:   b.ID,
				SnapshotDate: result.SnapshotDate,
				SnapshotType: snapshotType,
			}
			items, locations, err := r.Snapshots.Create(ctx, snap)
			if err != nil {
				return fmt.Errorf("snapshot negocio %s: %w", b.ID, err)
			}
			created = append(created, dto.SnapshotCreated{
				BusinessID: b.ID,
				SnapshotID: snap.ID,
				Items:      items,
				Locations:  locations,
			})
		}
		result.Snapshots = created
		return nil
	}, inventory.WithIsolation(inventory.RepeatableRead))
	if err != nil {
		return nil, err
	}
	return result, nil
}
