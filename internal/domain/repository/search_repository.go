package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// Valores de stockStatus aceptados por la búsqueda.
const (
	StockStatusInStock     = "in-stock"
	StockStatusLowStock    = "low-stock"
	StockStatusOutOfStock  = "out-of-stock"
	StockStatusCatalogOnly = "catalog-only"
)

// Claves de ordenación.
const (
	SortByName     = "name"
	SortByCategory = "category"
	SortByQuantity = "quantity"
)

// UncategorisedFilter valor del filtro de categoría que selecciona artículos sin categoría.
const UncategorisedFilter = "uncategorised"

// SearchFilter parámetros normalizados de la búsqueda unificada.
type SearchFilter struct {
	BusinessID      string
	Query           string
	CategoryID      string // id o UncategorisedFilter
	LocationFilter  string // id de ubicación: artículos con fila en esa ubicación
	StockStatus     string
	InInventoryOnly bool
	LocationID      string // alcance de conteo: cantidad por ubicación, solo filas de inventario
	CatalogID       string
	SortBy          string
	SortDesc        bool
	Page            int
	Limit           int
}

// IncludeCatalogRows indica si la fuente de productos del catálogo sin adoptar participa en la unión.
func (f SearchFilter) IncludeCatalogRows() bool {
	if f.InInventoryOnly || f.LocationID != "" {
		return false
	}
	return f.Query != "" || f.CatalogID != "" || f.StockStatus == StockStatusCatalogOnly
}

// Offset desplazamiento de la página: (page-1) × limit.
func (f SearchFilter) Offset() int {
	if f.Page <= 1 {
		return 0
	}
	return (f.Page - 1) * f.Limit
}

// SearchRow fila unificada: artículo de inventario (IsFromCatalog=true) o producto de catálogo
// aún no adoptado (IsFromCatalog=false, ItemID nil, Quantity 0).
type SearchRow struct {
	ItemID        *string         `db:"item_id"`
	CatalogID     string          `db:"catalog_id"`
	Name          string          `db:"name"`
	SKU           string          `db:"sku"`
	Barcode       string          `db:"barcode"`
	CategoryID    *string         `db:"category_id"`
	CategoryName  *string         `db:"category_name"`
	Quantity      int             `db:"quantity"`
	MinStockLevel int             `db:"min_stock_level"`
	RSUValue      decimal.Decimal `db:"rsu_value"`
	UnitPrice     decimal.Decimal `db:"unit_price"`
	CostPrice     decimal.Decimal `db:"cost_price"`
	ImageURL      string          `db:"image_url"`
	Locations     []ItemPlacement `db:"locations"`
	IsFromCatalog bool            `db:"is_from_catalog"`
}

// Option par id/nombre para listas de filtros.
type Option struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// SearchRepository consultas de lectura para búsqueda y listas de filtros.
type SearchRepository interface {
	Search(ctx context.Context, filter SearchFilter) (rows []SearchRow, total int, err error)
	CategoryOptions(ctx context.Context, businessID string) ([]Option, error)
	LocationOptions(ctx context.Context, businessID string) ([]Option, error)
}
