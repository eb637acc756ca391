package inventory

import "github.com/shopspring/decimal"

// Clasificaciones del reporte de stock bajo.
const (
	StockOutOfStock   = "out_of_stock"
	StockBelowMinimum = "below_minimum"
	StockNearMinimum  = "near_minimum"
)

// ClassifyLowStock clasifica un artículo para el reporte de stock bajo.
// ok es false cuando el artículo no entra en el reporte.
//
//	quantity == 0                          → out_of_stock
//	0 < quantity <= min                    → below_minimum
//	min < quantity <= 1.5 × min            → near_minimum
func ClassifyLowStock(quantity, minStockLevel int) (class string, ok bool) {
	if quantity <= 0 {
		return StockOutOfStock, true
	}
	if quantity <= minStockLevel {
		return StockBelowMinimum, true
	}
	limit := decimal.NewFromInt(int64(minStockLevel)).Mul(nearMinimumRatio)
	if decimal.NewFromInt(int64(quantity)).LessThanOrEqual(limit) {
		return StockNearMinimum, true
	}
	return "", false
}

// IsLowStock indica si el artículo está agotado o por debajo del mínimo.
func IsLowStock(quantity, minStockLevel int) bool {
	class, ok := ClassifyLowStock(quantity, minStockLevel)
	return ok && class != StockNearMinimum
}
