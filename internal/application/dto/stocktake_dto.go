package dto

import "github.com/shopspring/decimal"

// StocktakeEntry conteo de un artículo. Count acepta número o texto ("12").
type StocktakeEntry struct {
	Count any `json:"count"`
}

// StocktakeRequest conteo de una ubicación: itemId -> {count}.
type StocktakeRequest struct {
	LocationID string                    `json:"locationId"`
	Items      map[string]StocktakeEntry `json:"items"`
}

// StocktakeUpdate artículo cuya cantidad se fijó.
type StocktakeUpdate struct {
	ItemID           string `json:"itemId"`
	PreviousQuantity int    `json:"previousQuantity"`
	Quantity         int    `json:"quantity"`
}

// StocktakeSkip entrada descartada por validación (no aborta el lote).
type StocktakeSkip struct {
	ItemID string `json:"itemId"`
	Reason string `json:"reason"`
}

// StocktakeResult resultado del lote.
type StocktakeResult struct {
	LocationID      string            `json:"locationId"`
	UpdatedItems    []StocktakeUpdate `json:"updatedItems"`
	UpdatedCount    int               `json:"updatedCount"`
	Skipped         []StocktakeSkip   `json:"skipped"`
	RSUDelta        decimal.Decimal   `json:"rsuDelta"`
	CurrentRSUUsage decimal.Decimal   `json:"currentRsuUsage"`
}
