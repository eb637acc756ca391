package inventory

import "github.com/shopspring/decimal"

// Estados de ocupación de una ubicación (dashboard, listado de ubicaciones y reportes).
const (
	StatusCritical = "critical"
	StatusWarning  = "warning"
	StatusGood     = "good"
)

var (
	hundred          = decimal.NewFromInt(100)
	criticalPct      = decimal.NewFromInt(90)
	warningPct       = decimal.NewFromInt(75)
	nearMinimumRatio = decimal.NewFromFloat(1.5)
)

// UsageDelta devuelve el cambio de ocupación en RSU al pasar de oldQty a newQty unidades.
// (newQty - oldQty) × rsuValue
func UsageDelta(oldQty, newQty int, rsuValue decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(int64(newQty - oldQty)).Mul(rsuValue)
}

// Usage ocupación en RSU de quantity unidades.
func Usage(quantity int, rsuValue decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(int64(quantity)).Mul(rsuValue)
}

// Utilisation devuelve used / capacity × 100 redondeado a 2 decimales (0 si capacity <= 0) y el
// estado clasificado sobre el valor sin redondear: 89.996 % es warning aunque se muestre 90.00.
func Utilisation(used, capacity decimal.Decimal) (decimal.Decimal, string) {
	pct := exactPct(used, capacity)
	return pct.Round(2), CapacityStatus(pct)
}

func exactPct(used, capacity decimal.Decimal) decimal.Decimal {
	if capacity.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return used.Div(capacity).Mul(hundred)
}

// CapacityStatus clasifica un porcentaje de ocupación: >=90 critical, >=75 warning, resto good.
func CapacityStatus(pct decimal.Decimal) string {
	switch {
	case pct.GreaterThanOrEqual(criticalPct):
		return StatusCritical
	case pct.GreaterThanOrEqual(warningPct):
		return StatusWarning
	default:
		return StatusGood
	}
}

// StatusColor color de UI asociado a un estado.
func StatusColor(status string) string {
	switch status {
	case StatusCritical:
		return "red"
	case StatusWarning:
		return "yellow"
	default:
		return "green"
	}
}

// Available capacidad libre en RSU; nunca negativa aunque la ubicación esté sobreocupada.
func Available(used, capacity decimal.Decimal) decimal.Decimal {
	free := capacity.Sub(used)
	if free.IsNegative() {
		return decimal.Zero
	}
	return free
}
