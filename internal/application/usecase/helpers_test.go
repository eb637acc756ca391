package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-inventory/internal/application/dto"
	"github.com/jhoicas/retail-inventory/internal/application/inventory"
	"github.com/jhoicas/retail-inventory/internal/domain"
	"github.com/jhoicas/retail-inventory/internal/testutil/memstore"
)

// addItem da de alta un producto nuevo en una ubicación y devuelve la respuesta del alta.
func addItem(t *testing.T, s *memstore.Store, tenant domain.Tenant, req dto.CreateItemRequest) *dto.CreateItemResponse {
	t.Helper()
	uc := inventory.NewItemUseCase(s, s.Items(), s.Catalog(), s.Categories(), s.ItemLocations())
	out, err := uc.Create(context.Background(), tenant, req)
	require.NoError(t, err)
	return out
}

func newItem(locationID, name string, qty, min int, rsu int64) dto.CreateItemRequest {
	return dto.CreateItemRequest{
		IsNewCatalogItem: true,
		Name:             name,
		LocationID:       locationID,
		Quantity:         qty,
		MinStockLevel:    min,
		RSUValue:         decimal.NewFromInt(rsu),
	}
}

type stubRecent struct{ ids []string }

func (s stubRecent) Touch(context.Context, string, []string) error { return nil }
func (s stubRecent) List(context.Context, string) ([]string, error) { return s.ids, nil }
