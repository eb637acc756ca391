package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// BusinessItem es el registro de inventario de un negocio sobre un producto del catálogo.
// Como máximo uno por (BusinessID, CatalogID). La cantidad no se guarda aquí: se deriva de ItemLocation.
type BusinessItem struct {
	ID            string
	BusinessID    string
	CatalogID     string
	CategoryID    *string
	Name          string
	SKU           string
	UnitPrice     decimal.Decimal // precio de venta
	CostPrice     decimal.Decimal
	RSUValue      decimal.Decimal // espacio que ocupa una unidad, en RSU
	MinStockLevel int
	ImageURL      string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
