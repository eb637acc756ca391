package analytics_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-inventory/internal/application/analytics"
	"github.com/jhoicas/retail-inventory/internal/application/dto"
	"github.com/jhoicas/retail-inventory/internal/application/inventory"
	"github.com/jhoicas/retail-inventory/internal/testutil/memstore"
)

func TestGetSummary(t *testing.T) {
	s := memstore.New()
	tenant := s.SeedBusiness("Shop")
	front := s.SeedLocation(tenant.BusinessID, "Front", 100)
	back := s.SeedLocation(tenant.BusinessID, "Back", 100)
	items := inventory.NewItemUseCase(s, s.Items(), s.Catalog(), s.Categories(), s.ItemLocations())
	ctx := context.Background()

	add := func(loc, name string, qty, min int, rsu, cost string) {
		_, err := items.Create(ctx, tenant, dto.CreateItemRequest{
			IsNewCatalogItem: true,
			Name:             name,
			LocationID:       loc,
			Quantity:         qty,
			MinStockLevel:    min,
			RSUValue:         decimal.RequireFromString(rsu),
			CostPrice:        decimal.RequireFromString(cost),
		})
		require.NoError(t, err)
	}
	add(front.ID, "Rice", 40, 5, "2", "1.25") // 80 RSU en Front
	add(front.ID, "Beans", 0, 2, "1", "3")    // agotado
	add(back.ID, "Flour", 4, 4, "1", "0.333") // bajo el mínimo
	add(back.ID, "Sugar", 7, 5, "1", "1")     // cerca del mínimo: no cuenta

	out, err := analytics.NewDashboardUseCase(s.Analytics(), s.Reports()).GetSummary(ctx, tenant)
	require.NoError(t, err)

	assert.Equal(t, 4, out.TotalItems)
	assert.Equal(t, 2, out.LowStockItems)
	assert.Equal(t, 2, out.TotalLocations)
	assert.Equal(t, 1, out.LocationsAtRisk)
	// (80 + 11) / 200
	assert.True(t, out.SpaceUtilization.Equal(decimal.RequireFromString("45.5")), "pct=%s", out.SpaceUtilization)
	// 40×1.25 + 4×0.333 + 7×1 = 58.332
	assert.True(t, out.TotalValue.Equal(decimal.RequireFromString("58.33")), "value=%s", out.TotalValue)
}

func TestGetSummary_NegocioVacio(t *testing.T) {
	s := memstore.New()
	tenant := s.SeedBusiness("Shop")

	out, err := analytics.NewDashboardUseCase(s.Analytics(), s.Reports()).GetSummary(context.Background(), tenant)
	require.NoError(t, err)
	assert.Zero(t, out.TotalItems)
	assert.True(t, out.SpaceUtilization.IsZero())
	assert.True(t, out.TotalValue.IsZero())
}

func TestGetSummary_ErrorDeRepositorio(t *testing.T) {
	s := memstore.New()
	tenant := s.SeedBusiness("Shop")
	s.InjectError("Reports.LocationUsage", errors.New("timeout"))

	_, err := analytics.NewDashboardUseCase(s.Analytics(), s.Reports()).GetSummary(context.Background(), tenant)
	assert.Error(t, err)
}
