package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateLocationRequest entrada para crear una ubicación. Code se deriva del nombre si viene vacío.
type CreateLocationRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=100"`
	Code        string          `json:"code" validate:"max=50"`
	Description string          `json:"description" validate:"max=1000"`
	CapacityRSU decimal.Decimal `json:"capacityRsu"`
	ImageURL    string          `json:"imageUrl"`
}

// UpdateLocationRequest entrada para actualizar una ubicación.
type UpdateLocationRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=100"`
	Code        *string          `json:"code" validate:"omitempty,min=1,max=50"`
	Description *string          `json:"description"`
	CapacityRSU *decimal.Decimal `json:"capacityRsu"`
	ImageURL    *string          `json:"imageUrl"`
}

// LocationResponse ubicación con su utilización.
type LocationResponse struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Code            string          `json:"code"`
	Description     string          `json:"description"`
	ImageURL        string          `json:"imageUrl"`
	CapacityRSU     decimal.Decimal `json:"capacityRsu"`
	CurrentRSUUsage decimal.Decimal `json:"currentRsuUsage"`
	AvailableRSU    decimal.Decimal `json:"availableRsu"`
	UtilisationPct  decimal.Decimal `json:"utilisationPct"`
	Status          string          `json:"status"`
	StatusColor     string          `json:"statusColor"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// LocationStockItem artículo almacenado en una ubicación.
type LocationStockItem struct {
	ItemID   string `json:"itemId"`
	Name     string `json:"name"`
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity"`
}

// LocationDetailResponse ubicación con los artículos que contiene.
type LocationDetailResponse struct {
	LocationResponse
	Items []LocationStockItem `json:"items"`
}

// UploadImageResponse URL pública de la imagen subida.
type UploadImageResponse struct {
	ImageURL string `json:"imageUrl"`
}
