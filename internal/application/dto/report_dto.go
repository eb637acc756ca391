package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportSourceInfo indica si el reporte se calculó en vivo o sobre un snapshot.
type ReportSourceInfo struct {
	Live         bool       `json:"live"`
	SnapshotID   *string    `json:"snapshotId,omitempty"`
	SnapshotDate *time.Time `json:"snapshotDate,omitempty"`
	GeneratedAt  time.Time  `json:"generatedAt"`
}

// LowStockItem artículo clasificado como bajo stock.
type LowStockItem struct {
	ItemID        string  `json:"itemId"`
	Name          string  `json:"name"`
	SKU           string  `json:"sku"`
	CategoryName  *string `json:"categoryName"`
	Quantity      int     `json:"quantity"`
	MinStockLevel int     `json:"minStockLevel"`
	Status        string  `json:"status"` // out_of_stock | below_minimum | near_minimum
}

// LowStockSummary conteos por clasificación.
type LowStockSummary struct {
	OutOfStock   int `json:"outOfStock"`
	BelowMinimum int `json:"belowMinimum"`
	NearMinimum  int `json:"nearMinimum"`
	Total        int `json:"total"`
}

// LowStockReport reporte de bajo stock.
type LowStockReport struct {
	Source  ReportSourceInfo `json:"source"`
	Summary LowStockSummary  `json:"summary"`
	Items   []LowStockItem   `json:"items"`
}

// SpaceLocation utilización de una ubicación.
type SpaceLocation struct {
	LocationID     string          `json:"locationId"`
	Name           string          `json:"name"`
	Code           string          `json:"code"`
	CapacityRSU    decimal.Decimal `json:"capacityRsu"`
	UsedRSU        decimal.Decimal `json:"usedRsu"`
	AvailableRSU   decimal.Decimal `json:"availableRsu"`
	UtilisationPct decimal.Decimal `json:"utilisationPct"`
	Status         string          `json:"status"`
	StatusColor    string          `json:"statusColor"`
}

// SpaceSummary totales globales del negocio.
type SpaceSummary struct {
	LocationCount  int             `json:"locationCount"`
	TotalCapacity  decimal.Decimal `json:"totalCapacity"`
	TotalUsed      decimal.Decimal `json:"totalUsed"`
	TotalAvailable decimal.Decimal `json:"totalAvailable"`
	OverallPct     decimal.Decimal `json:"overallPct"`
	OverallStatus  string          `json:"overallStatus"`
	MostUtilised   *SpaceLocation  `json:"mostUtilised"`
}

// SpaceUtilisationReport reporte de utilización de espacio.
type SpaceUtilisationReport struct {
	Source    ReportSourceInfo `json:"source"`
	Summary   SpaceSummary     `json:"summary"`
	Locations []SpaceLocation  `json:"locations"`
}

// SnapshotResponse snapshot disponible para reportes.
type SnapshotResponse struct {
	SnapshotID   string    `json:"snapshotId"`
	SnapshotDate time.Time `json:"snapshotDate"`
	SnapshotType string    `json:"snapshotType"`
}

// SnapshotCreated snapshot creado para un negocio en una ejecución.
type SnapshotCreated struct {
	BusinessID string `json:"businessId"`
	SnapshotID string `json:"snapshotId"`
	Items      int    `json:"items"`
	Locations  int    `json:"locations"`
}

// SnapshotRunResult resultado de una ejecución del job de snapshots.
type SnapshotRunResult struct {
	SnapshotDate time.Time         `json:"snapshotDate"`
	SnapshotType string            `json:"snapshotType"`
	Snapshots    []SnapshotCreated `json:"snapshots"`
}
