package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Location representa una ubicación física de almacenamiento de un negocio.
// CurrentRSUUsage es un agregado mantenido: Σ(ItemLocation.Quantity × BusinessItem.RSUValue).
type Location struct {
	ID              string
	BusinessID      string
	Name            string // único por negocio
	Code            string // único por negocio
	Description     string
	ImageURL        string
	CapacityRSU     decimal.Decimal
	CurrentRSUUsage decimal.Decimal
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
