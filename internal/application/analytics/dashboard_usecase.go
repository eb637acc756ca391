// Package analytics contiene el caso de uso del dashboard del negocio.
package analytics

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/retail-inventory/internal/application/dto"
	"github.com/jhoicas/retail-inventory/internal/application/reports"
	"github.com/jhoicas/retail-inventory/internal/domain"
	"github.com/jhoicas/retail-inventory/internal/domain/inventory"
	"github.com/jhoicas/retail-inventory/internal/domain/repository"
)

// DashboardUseCase genera las métricas del negocio sobre las tablas en vivo.
//
// Usa los mismos umbrales y la misma agregación que los reportes.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	reportRepo    repository.ReportRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository, reportRepo repository.ReportRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo, reportRepo: reportRepo}
}

// GetSummary construye el DashboardSummaryDTO del negocio.
//
// Tres llamadas en paralelo:
//  1. ItemTotals     → TotalItems + TotalValue
//  2. StockLevels    → LowStockItems
//  3. LocationUsage  → SpaceUtilization + LocationsAtRisk
func (uc *DashboardUseCase) GetSummary(ctx context.Context, tenant domain.Tenant) (*dto.DashboardSummaryDTO, error) {
	live := uc.reportRepo.Live(tenant.BusinessID)

	type totalsResult struct {
		count int
		value decimal.Decimal
		err   error
	}
	type stockResult struct {
		rows []repository.StockLevelRow
		err  error
	}
	type usageResult struct {
		rows []repository.LocationUsageRow
		err  error
	}

	totalsCh := make(chan totalsResult, 1)
	stockCh := make(chan stockResult, 1)
	usageCh := make(chan usageResult, 1)

	go func() {
		count, value, err := uc.analyticsRepo.ItemTotals(ctx, tenant.BusinessID)
		totalsCh <- totalsResult{count, value, err}
	}()
	go func() {
		rows, err := live.StockLevels(ctx)
		stockCh <- stockResult{rows, err}
	}()
	go func() {
		rows, err := live.LocationUsage(ctx)
		usageCh <- usageResult{rows, err}
	}()

	totals := <-totalsCh
	stock := <-stockCh
	usage := <-usageCh

	if totals.err != nil {
		return nil, fmt.Errorf("dashboard: totales: %w", totals.err)
	}
	if stock.err != nil {
		return nil, fmt.Errorf("dashboard: niveles de stock: %w", stock.err)
	}
	if usage.err != nil {
		return nil, fmt.Errorf("dashboard: ocupación: %w", usage.err)
	}

	lowStock := 0
	for _, r := range stock.rows {
		if inventory.IsLowStock(r.Quantity, r.MinStockLevel) {
			lowStock++
		}
	}
	summary, locations := reports.BuildSpaceUtilisation(usage.rows)

	return &dto.DashboardSummaryDTO{
		TotalItems:       totals.count,
		SpaceUtilization: summary.OverallPct,
		LowStockItems:    lowStock,
		TotalValue:       totals.value.Round(2),
		TotalLocations:   summary.LocationCount,
		LocationsAtRisk:  reports.AtRisk(locations),
	}, nil
}
