package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest alta de un artículo en una ubicación.
// Con IsNewCatalogItem se crea el producto del catálogo (Name obligatorio); si no, CatalogID debe existir.
type CreateItemRequest struct {
	IsNewCatalogItem bool            `json:"isNewCatalogItem"`
	CatalogID        string          `json:"catalogId"`
	Name             string          `json:"name" validate:"max=200"`
	Barcode          string          `json:"barcode" validate:"max=64"`
	Description      string          `json:"description" validate:"max=1000"`
	PackSize         string          `json:"packSize" validate:"max=50"`
	SKU              string          `json:"sku" validate:"max=64"`
	CategoryID       *string         `json:"categoryId"`
	LocationID       string          `json:"locationId" validate:"required"`
	Quantity         int             `json:"quantity" validate:"min=0"`
	MinStockLevel    int             `json:"minStockLevel" validate:"min=0"`
	RSUValue         decimal.Decimal `json:"rsuValue"`
	CostPrice        decimal.Decimal `json:"costPrice"`
	UnitPrice        decimal.Decimal `json:"unitPrice"`
	ImageURL         string          `json:"imageUrl"`
}

// CreateItemResponse resultado del alta.
type CreateItemResponse struct {
	ItemID          string          `json:"itemId"`
	CatalogID       string          `json:"catalogId"`
	LocationID      string          `json:"locationId"`
	Quantity        int             `json:"quantity"`
	ReusedItem      bool            `json:"reusedItem"` // el negocio ya tenía el producto en otra ubicación
	CurrentRSUUsage decimal.Decimal `json:"currentRsuUsage"`
}

// UpdateItemRequest edición de campos del artículo. CategoryID vacío deja el artículo sin categoría.
type UpdateItemRequest struct {
	Name          *string          `json:"name" validate:"omitempty,min=1,max=200"`
	SKU           *string          `json:"sku" validate:"omitempty,max=64"`
	CategoryID    *string          `json:"categoryId"`
	MinStockLevel *int             `json:"minStockLevel" validate:"omitempty,min=0"`
	RSUValue      *decimal.Decimal `json:"rsuValue"`
	CostPrice     *decimal.Decimal `json:"costPrice"`
	UnitPrice     *decimal.Decimal `json:"unitPrice"`
	ImageURL      *string          `json:"imageUrl"`
}

// ItemLocationDTO cantidad de un artículo en una ubicación.
type ItemLocationDTO struct {
	LocationID string `json:"locationId"`
	Name       string `json:"name"`
	Code       string `json:"code,omitempty"`
	Quantity   int    `json:"quantity"`
}

// ItemResponse artículo con sus ubicaciones.
type ItemResponse struct {
	ID            string            `json:"id"`
	CatalogID     string            `json:"catalogId"`
	Name          string            `json:"name"`
	SKU           string            `json:"sku"`
	Barcode       string            `json:"barcode"`
	CategoryID    *string           `json:"categoryId"`
	CategoryName  *string           `json:"categoryName"`
	UnitPrice     decimal.Decimal   `json:"unitPrice"`
	CostPrice     decimal.Decimal   `json:"costPrice"`
	RSUValue      decimal.Decimal   `json:"rsuValue"`
	MinStockLevel int               `json:"minStockLevel"`
	ImageURL      string            `json:"imageUrl"`
	Quantity      int               `json:"quantity"`
	Locations     []ItemLocationDTO `json:"locations"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

// RecentItemsResponse artículos modificados por conteos recientes.
type RecentItemsResponse struct {
	ItemIDs []string `json:"itemIds"`
}
