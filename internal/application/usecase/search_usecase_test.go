package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-inventory/internal/application/dto"
	"github.com/jhoicas/retail-inventory/internal/application/usecase"
	"github.com/jhoicas/retail-inventory/internal/domain"
	"github.com/jhoicas/retail-inventory/internal/domain/repository"
	"github.com/jhoicas/retail-inventory/internal/testutil/memstore"
)

// ──────────────────────────────────────────────────────────────────────────────
// NormalizeSearch
// ──────────────────────────────────────────────────────────────────────────────

func TestNormalizeSearch_ValoresPorDefecto(t *testing.T) {
	f, err := usecase.NormalizeSearch("biz", dto.SearchParams{Query: "  rice "})
	require.NoError(t, err)

	assert.Equal(t, "biz", f.BusinessID)
	assert.Equal(t, "rice", f.Query)
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 20, f.Limit)
	assert.Equal(t, repository.SortByName, f.SortBy)
	assert.False(t, f.SortDesc)
}

func TestNormalizeSearch_Limites(t *testing.T) {
	tests := []struct {
		name      string
		in        dto.SearchParams
		wantPage  int
		wantLimit int
	}{
		{"página negativa", dto.SearchParams{Page: -3}, 1, 20},
		{"límite excesivo", dto.SearchParams{Page: 2, Limit: 500}, 2, 100},
		{"límite válido", dto.SearchParams{Limit: 5}, 1, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := usecase.NormalizeSearch("biz", tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.wantPage, f.Page)
			assert.Equal(t, tt.wantLimit, f.Limit)
		})
	}
}

func TestNormalizeSearch_Rechazos(t *testing.T) {
	_, err := usecase.NormalizeSearch("biz", dto.SearchParams{StockStatus: "plenty"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = usecase.NormalizeSearch("biz", dto.SearchParams{SortBy: "price"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNormalizeSearch_SinCategoriaYOrdenDescendente(t *testing.T) {
	f, err := usecase.NormalizeSearch("biz", dto.SearchParams{Category: "Uncategorised", SortBy: "quantity", SortDir: "DESC"})
	require.NoError(t, err)
	assert.Equal(t, repository.UncategorisedFilter, f.CategoryID)
	assert.Equal(t, repository.SortByQuantity, f.SortBy)
	assert.True(t, f.SortDesc)
}

// ──────────────────────────────────────────────────────────────────────────────
// Search
// ──────────────────────────────────────────────────────────────────────────────

// Con texto de búsqueda aparecen también los productos del catálogo que el negocio no tiene.
func TestSearch_FilasDeCatalogo(t *testing.T) {
	s := memstore.New()
	tenant := s.SeedBusiness("Shop")
	loc := s.SeedLocation(tenant.BusinessID, "L1", 100)
	owned := addItem(t, s, tenant, newItem(loc.ID, "Rice 5kg", 10, 2, 3))
	s.SeedCatalog("Rice 1kg", "999")

	uc := usecase.NewSearchUseCase(s.Search(), stubRecent{ids: []string{owned.ItemID}})
	out, err := uc.Search(context.Background(), tenant, dto.SearchParams{Query: "rice"})
	require.NoError(t, err)
	require.Len(t, out.Items, 2)

	byName := map[string]dto.SearchItemRow{}
	for _, r := range out.Items {
		byName[r.Name] = r
	}
	inv, cat := byName["Rice 5kg"], byName["Rice 1kg"]

	assert.True(t, inv.IsFromCatalog)
	assert.True(t, inv.InInventory)
	assert.True(t, inv.RecentlyUpdated)
	assert.Equal(t, 10, inv.Quantity)
	assert.Equal(t, repository.StockStatusInStock, inv.StockStatus)
	require.Len(t, inv.Locations, 1)
	assert.Equal(t, loc.ID, inv.Locations[0].LocationID)

	assert.False(t, cat.IsFromCatalog)
	assert.Nil(t, cat.ItemID)
	assert.Zero(t, cat.Quantity)
	assert.Empty(t, cat.Locations)
	assert.Equal(t, repository.StockStatusCatalogOnly, cat.StockStatus)
	assert.Equal(t, 2, out.Pagination.TotalItems)
}

// Sin texto de búsqueda solo se listan artículos del inventario.
func TestSearch_SinTextoSoloInventario(t *testing.T) {
	s := memstore.New()
	tenant := s.SeedBusiness("Shop")
	loc := s.SeedLocation(tenant.BusinessID, "L1", 100)
	addItem(t, s, tenant, newItem(loc.ID, "Beans", 1, 0, 1))
	s.SeedCatalog("Rice 1kg", "999")

	out, err := usecase.NewSearchUseCase(s.Search(), nil).Search(context.Background(), tenant, dto.SearchParams{})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Beans", out.Items[0].Name)
	assert.False(t, out.Items[0].RecentlyUpdated)
}

func TestSearch_FiltrosDeStockYPaginacion(t *testing.T) {
	s := memstore.New()
	tenant := s.SeedBusiness("Shop")
	loc := s.SeedLocation(tenant.BusinessID, "L1", 1000)
	addItem(t, s, tenant, newItem(loc.ID, "A", 0, 5, 1))
	addItem(t, s, tenant, newItem(loc.ID, "B", 3, 5, 1))
	addItem(t, s, tenant, newItem(loc.ID, "C", 50, 5, 1))
	addItem(t, s, tenant, newItem(loc.ID, "D", 60, 5, 1))

	uc := usecase.NewSearchUseCase(s.Search(), nil)
	ctx := context.Background()

	low, err := uc.Search(ctx, tenant, dto.SearchParams{StockStatus: repository.StockStatusLowStock})
	require.NoError(t, err)
	require.Len(t, low.Items, 1)
	assert.Equal(t, "B", low.Items[0].Name)

	out, err := uc.Search(ctx, tenant, dto.SearchParams{StockStatus: repository.StockStatusOutOfStock})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "A", out.Items[0].Name)

	page, err := uc.Search(ctx, tenant, dto.SearchParams{Limit: 3, Page: 2})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "D", page.Items[0].Name)
	assert.Equal(t, dto.Pagination{TotalItems: 4, TotalPages: 2, CurrentPage: 2, HasMore: false}, page.Pagination)

	desc, err := uc.Search(ctx, tenant, dto.SearchParams{SortBy: "quantity", SortDir: "desc"})
	require.NoError(t, err)
	assert.Equal(t, "D", desc.Items[0].Name)
}

// Los datos de otro negocio nunca aparecen.
func TestSearch_AislamientoPorNegocio(t *testing.T) {
	s := memstore.New()
	a := s.SeedBusiness("A")
	b := s.SeedBusiness("B")
	locA := s.SeedLocation(a.BusinessID, "L1", 100)
	addItem(t, s, a, newItem(locA.ID, "Secret", 1, 0, 1))

	out, err := usecase.NewSearchUseCase(s.Search(), nil).Search(context.Background(), b, dto.SearchParams{InInventoryOnly: true})
	require.NoError(t, err)
	assert.Empty(t, out.Items)
}

func TestRecentItems_SinTracker(t *testing.T) {
	s := memstore.New()
	tenant := s.SeedBusiness("Shop")
	out, err := usecase.NewSearchUseCase(s.Search(), nil).RecentItems(context.Background(), tenant)
	require.NoError(t, err)
	assert.NotNil(t, out.ItemIDs)
	assert.Empty(t, out.ItemIDs)
}
