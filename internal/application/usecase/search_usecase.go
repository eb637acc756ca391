package usecase

import (
	"context"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/jhoicas/retail-inventory/internal/application/dto"
	"github.com/jhoicas/retail-inventory/internal/application/ports"
	"github.com/jhoicas/retail-inventory/internal/domain"
	"github.com/jhoicas/retail-inventory/internal/domain/repository"
)

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 100
)

// SearchUseCase búsqueda unificada de artículos de inventario y productos del catálogo aún no adoptados.
type SearchUseCase struct {
	repo   repository.SearchRepository
	recent ports.RecentTracker
}

// NewSearchUseCase construye el caso de uso. recent puede ser nil.
func NewSearchUseCase(repo repository.SearchRepository, recent ports.RecentTracker) *SearchUseCase {
	return &SearchUseCase{repo: repo, recent: recent}
}

// Search normaliza los parámetros, ejecuta la consulta y marca las filas modificadas recientemente.
func (uc *SearchUseCase) Search(ctx context.Context, tenant domain.Tenant, p dto.SearchParams) (*dto.SearchResponse, error) {
	filter, err := NormalizeSearch(tenant.BusinessID, p)
	if err != nil {
		return nil, err
	}
	rows, total, err := uc.repo.Search(ctx, filter)
	if err != nil {
		return nil, err
	}

	recent := uc.recentSet(ctx, tenant.BusinessID)
	items := make([]dto.SearchItemRow, 0, len(rows))
	for _, r := range rows {
		row := toSearchItemRow(r)
		if r.ItemID != nil {
			row.RecentlyUpdated = recent[*r.ItemID]
		}
		items = append(items, row)
	}
	return &dto.SearchResponse{
		Items:      items,
		Pagination: dto.NewPagination(total, filter.Page, filter.Limit),
	}, nil
}

// CategoryOptions lista de categorías para el filtro.
func (uc *SearchUseCase) CategoryOptions(ctx context.Context, tenant domain.Tenant) ([]dto.OptionResponse, error) {
	opts, err := uc.repo.CategoryOptions(ctx, tenant.BusinessID)
	if err != nil {
		return nil, err
	}
	return toOptions(opts), nil
}

// LocationOptions lista de ubicaciones para el filtro.
func (uc *SearchUseCase) LocationOptions(ctx context.Context, tenant domain.Tenant) ([]dto.OptionResponse, error) {
	opts, err := uc.repo.LocationOptions(ctx, tenant.BusinessID)
	if err != nil {
		return nil, err
	}
	return toOptions(opts), nil
}

// RecentItems ids de artículos modificados por conteos dentro de la ventana de expiración.
func (uc *SearchUseCase) RecentItems(ctx context.Context, tenant domain.Tenant) (*dto.RecentItemsResponse, error) {
	if uc.recent == nil {
		return &dto.RecentItemsResponse{ItemIDs: []string{}}, nil
	}
	ids, err := uc.recent.List(ctx, tenant.BusinessID)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}
	return &dto.RecentItemsResponse{ItemIDs: ids}, nil
}

func (uc *SearchUseCase) recentSet(ctx context.Context, businessID string) map[string]bool {
	set := map[string]bool{}
	if uc.recent == nil {
		return set
	}
	ids, err := uc.recent.List(ctx, businessID)
	if err != nil {
		log.Warn().Err(err).Str("business_id", businessID).Msg("search: no se pudo leer artículos recientes")
		return set
	}
	for _, id := range ids {
		set[id] = true
	}
	return set
}

// NormalizeSearch valida los parámetros y aplica valores por defecto (page 1, limit 20, orden por nombre).
func NormalizeSearch(businessID string, p dto.SearchParams) (repository.SearchFilter, error) {
	f := repository.SearchFilter{
		BusinessID:      businessID,
		Query:           strings.TrimSpace(p.Query),
		CategoryID:      strings.TrimSpace(p.Category),
		LocationFilter:  strings.TrimSpace(p.Location),
		StockStatus:     strings.TrimSpace(p.StockStatus),
		InInventoryOnly: p.InInventoryOnly,
		LocationID:      strings.TrimSpace(p.LocationID),
		CatalogID:       strings.TrimSpace(p.CatalogID),
		SortBy:          strings.TrimSpace(p.SortBy),
		SortDesc:        strings.EqualFold(strings.TrimSpace(p.SortDir), "desc"),
		Page:            p.Page,
		Limit:           p.Limit,
	}
	if strings.EqualFold(f.CategoryID, repository.UncategorisedFilter) {
		f.CategoryID = repository.UncategorisedFilter
	}
	switch f.StockStatus {
	case "", repository.StockStatusInStock, repository.StockStatusLowStock,
		repository.StockStatusOutOfStock, repository.StockStatusCatalogOnly:
	default:
		return f, domain.NewValidationError("stockStatus", "valor no soportado")
	}
	switch f.SortBy {
	case repository.SortByName, repository.SortByCategory, repository.SortByQuantity:
	case "":
		f.SortBy = repository.SortByName
	default:
		return f, domain.NewValidationError("sortBy", "valor no soportado")
	}
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = defaultSearchLimit
	}
	if f.Limit > maxSearchLimit {
		f.Limit = maxSearchLimit
	}
	return f, nil
}

// rowStockStatus usa las mismas reglas que el filtro stockStatus.
func rowStockStatus(r repository.SearchRow) string {
	switch {
	case !r.IsFromCatalog:
		return repository.StockStatusCatalogOnly
	case r.Quantity <= 0:
		return repository.StockStatusOutOfStock
	case r.Quantity <= r.MinStockLevel:
		return repository.StockStatusLowStock
	default:
		return repository.StockStatusInStock
	}
}

func toSearchItemRow(r repository.SearchRow) dto.SearchItemRow {
	locs := make([]dto.ItemLocationDTO, 0, len(r.Locations))
	for _, l := range r.Locations {
		locs = append(locs, dto.ItemLocationDTO{
			LocationID: l.LocationID,
			Name:       l.LocationName,
			Code:       l.LocationCode,
			Quantity:   l.Quantity,
		})
	}
	return dto.SearchItemRow{
		ItemID:        r.ItemID,
		CatalogID:     r.CatalogID,
		Name:          r.Name,
		SKU:           r.SKU,
		Barcode:       r.Barcode,
		CategoryID:    r.CategoryID,
		CategoryName:  r.CategoryName,
		Quantity:      r.Quantity,
		MinStockLevel: r.MinStockLevel,
		RSUValue:      r.RSUValue,
		UnitPrice:     r.UnitPrice,
		CostPrice:     r.CostPrice,
		ImageURL:      r.ImageURL,
		Locations:     locs,
		IsFromCatalog: r.IsFromCatalog,
		InInventory:   r.IsFromCatalog,
		StockStatus:   rowStockStatus(r),
	}
}

func toOptions(opts []repository.Option) []dto.OptionResponse {
	out := make([]dto.OptionResponse, 0, len(opts))
	for _, o := range opts {
		out = append(out, dto.OptionResponse{ID: o.ID, Name: o.Name})
	}
	return out
}
