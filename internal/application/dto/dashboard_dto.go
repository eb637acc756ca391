package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO métricas del negocio para GET /api/dashboard.
type DashboardSummaryDTO struct {
	TotalItems       int             `json:"totalItems"`
	SpaceUtilization decimal.Decimal `json:"spaceUtilization"` // % global
	LowStockItems    int             `json:"lowStockItems"`    // out_of_stock + below_minimum
	TotalValue       decimal.Decimal `json:"totalValue"`       // Σ cantidad × costo
	TotalLocations   int             `json:"totalLocations"`
	LocationsAtRisk  int             `json:"locationsAtRisk"` // critical + warning
}
