package dto

import "github.com/shopspring/decimal"

// SearchParams parámetros de GET /api/search/items.
type SearchParams struct {
	Query           string `query:"query"`
	Category        string `query:"category"`
	Location        string `query:"location"`
	StockStatus     string `query:"stockStatus" validate:"omitempty,oneof=in-stock low-stock out-of-stock catalog-only"`
	InInventoryOnly bool   `query:"inInventoryOnly"`
	LocationID      string `query:"locationId"`
	CatalogID       string `query:"catalogId"`
	SortBy          string `query:"sortBy" validate:"omitempty,oneof=name category quantity"`
	SortDir         string `query:"sortDir" validate:"omitempty,oneof=asc desc"`
	Page            int    `query:"page" validate:"min=0"`
	Limit           int    `query:"limit" validate:"min=0,max=100"`
}

// SearchItemRow fila unificada: artículo de inventario o producto de catálogo aún no adoptado.
type SearchItemRow struct {
	ItemID          *string           `json:"itemId"`
	CatalogID       string            `json:"catalogId"`
	Name            string            `json:"name"`
	SKU             string            `json:"sku"`
	Barcode         string            `json:"barcode"`
	CategoryID      *string           `json:"categoryId"`
	CategoryName    *string           `json:"categoryName"`
	Quantity        int               `json:"quantity"`
	MinStockLevel   int               `json:"minStockLevel"`
	RSUValue        decimal.Decimal   `json:"rsuValue"`
	UnitPrice       decimal.Decimal   `json:"unitPrice"`
	CostPrice       decimal.Decimal   `json:"costPrice"`
	ImageURL        string            `json:"imageUrl"`
	Locations       []ItemLocationDTO `json:"locations"`
	IsFromCatalog   bool              `json:"isFromCatalog"`
	InInventory     bool              `json:"inInventory"`
	StockStatus     string            `json:"stockStatus"`
	RecentlyUpdated bool              `json:"recentlyUpdated"`
}

// SearchResponse página de resultados.
type SearchResponse struct {
	Items      []SearchItemRow `json:"items"`
	Pagination Pagination      `json:"pagination"`
}
