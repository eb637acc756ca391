package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/retail-inventory/internal/application/inventory"
)

var tracer = otel.Tracer("retail-inventory/postgres")

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia la transacción (READ COMMITTED salvo WithIsolation), ejecuta fn con repos atados a la tx
// y hace Commit o Rollback. Los bloqueos siguen el orden artículo -> ubicación descrito en inventory.TxRunner.
func (r *TxRunner) Run(ctx context.Context, fn func(repos inventory.TxRepos) error, opts ...inventory.TxOption) (err error) {
	iso := isoLevel(inventory.ResolveTxOptions(opts...).Isolation)
	ctx, span := tracer.Start(ctx, "transaction",
		trace.WithAttributes(attribute.String("tx.isolation", string(iso))))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: iso})
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(newTxRepos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func isoLevel(iso inventory.Isolation) pgx.TxIsoLevel {
	if iso == inventory.RepeatableRead {
		return pgx.RepeatableRead
	}
	return pgx.ReadCommitted
}

func newTxRepos(q Querier) inventory.TxRepos {
	return inventory.TxRepos{
		Catalog:       NewCatalogRepository(q),
		Items:         NewBusinessItemRepository(q),
		Locations:     NewLocationRepository(q),
		ItemLocations: NewItemLocationRepository(q),
		Categories:    NewCategoryRepository(q),
		Snapshots:     NewSnapshotRepository(q),
		Businesses:    NewBusinessRepository(q),
		Users:         NewUserRepository(q),
	}
}
