package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// StockLevelRow cantidad total de un artículo (en vivo o en un snapshot).
type StockLevelRow struct {
	ItemID        string          `db:"item_id"`
	Name          string          `db:"name"`
	SKU           string          `db:"sku"`
	CategoryName  *string         `db:"category_name"`
	MinStockLevel int             `db:"min_stock_level"`
	Quantity      int             `db:"quantity"`
	UnitPrice     decimal.Decimal `db:"unit_price"`
	CostPrice     decimal.Decimal `db:"cost_price"`
	RSUValue      decimal.Decimal `db:"rsu_value"`
}

// LocationUsageRow capacidad y ocupación de una ubicación (en vivo o en un snapshot).
type LocationUsageRow struct {
	LocationID  string          `db:"location_id"`
	Name        string          `db:"name"`
	Code        string          `db:"code"`
	CapacityRSU decimal.Decimal `db:"capacity_rsu"`
	UsedRSU     decimal.Decimal `db:"used_rsu"`
}

// ReportSource origen de datos de los reportes. Las tablas en vivo y los snapshots
// producen las mismas filas; la agregación no distingue el origen.
type ReportSource interface {
	StockLevels(ctx context.Context) ([]StockLevelRow, error)
	LocationUsage(ctx context.Context) ([]LocationUsageRow, error)
}

// ReportRepository construye orígenes de datos acotados a un negocio.
type ReportRepository interface {
	Live(businessID string) ReportSource
	Snapshot(businessID, snapshotID string) ReportSource
}
