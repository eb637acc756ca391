package inventory

import (
	"context"

	"github.com/jhoicas/retail-inventory/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción.
type TxRepos struct {
	Catalog       repository.CatalogRepository
	Items         repository.BusinessItemRepository
	Locations     repository.LocationRepository
	ItemLocations repository.ItemLocationRepository
	Categories    repository.CategoryRepository
	Snapshots     repository.SnapshotRepository
	Businesses    repository.BusinessRepository
	Users         repository.UserRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Commit solo si fn retorna nil; en cualquier otro caso Rollback y se libera la conexión.
//
// Orden de bloqueo: primero los artículos (Items.GetForUpdate o Items.GetForShare, en orden de id)
// y después la ubicación (Locations.GetForUpdate). Quien escribe colocaciones toma el artículo al
// menos FOR SHARE, así un cambio de RSU o un borrado (FOR UPDATE) ve colocaciones estables.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos TxRepos) error, opts ...TxOption) error
}

// Isolation nivel de aislamiento de la transacción.
type Isolation string

const (
	ReadCommitted  Isolation = "read committed"
	RepeatableRead Isolation = "repeatable read"
)

// TxOptions opciones resueltas de una transacción.
type TxOptions struct {
	Isolation Isolation
}

// TxOption ajusta TxOptions.
type TxOption func(*TxOptions)

// WithIsolation fija el nivel de aislamiento.
func WithIsolation(iso Isolation) TxOption {
	return func(o *TxOptions) { o.Isolation = iso }
}

// ResolveTxOptions aplica opts sobre el valor por defecto (READ COMMITTED).
func ResolveTxOptions(opts ...TxOption) TxOptions {
	o := TxOptions{Isolation: ReadCommitted}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
