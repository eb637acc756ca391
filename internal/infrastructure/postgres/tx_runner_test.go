package postgres

import (
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/retail-inventory/internal/application/inventory"
)

func TestIsoLevel(t *testing.T) {
	assert.Equal(t, pgx.ReadCommitted, isoLevel(inventory.ResolveTxOptions().Isolation))
	assert.Equal(t, pgx.RepeatableRead,
		isoLevel(inventory.ResolveTxOptions(inventory.WithIsolation(inventory.RepeatableRead)).Isolation))
}
