package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de snapshot.
const (
	SnapshotTypeWeekly = "weekly"
	SnapshotTypeManual = "manual"
)

// InventorySnapshot es una copia inmutable del estado de cantidades y ocupación de un negocio.
// Solo la crea el job de snapshots; nunca se modifica.
type InventorySnapshot struct {
	ID           string
	BusinessID   string
	SnapshotDate time.Time
	SnapshotType string
}

// SnapshotItem cantidad total de un artículo en el momento del snapshot.
type SnapshotItem struct {
	SnapshotID    string
	ItemID        string
	Name          string
	SKU           string
	CategoryName  *string
	MinStockLevel int
	Quantity      int
	UnitPrice     decimal.Decimal
	CostPrice     decimal.Decimal
	RSUValue      decimal.Decimal
}

// SnapshotLocation capacidad y ocupación de una ubicación en el momento del snapshot.
type SnapshotLocation struct {
	SnapshotID  string
	LocationID  string
	Name        string
	Code        string
	CapacityRSU decimal.Decimal
	UsedRSU     decimal.Decimal
}
