// Package reports contiene los reportes de bajo stock y utilización de espacio, y el job de snapshots.
// La agregación recibe filas y no sabe si vienen de las tablas en vivo o de un snapshot.
package reports

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/retail-inventory/internal/application/dto"
	"github.com/jhoicas/retail-inventory/internal/domain/inventory"
	"github.com/jhoicas/retail-inventory/internal/domain/repository"
)

var lowStockOrder = map[string]int{
	inventory.StockOutOfStock:   0,
	inventory.StockBelowMinimum: 1,
	inventory.StockNearMinimum:  2,
}

// BuildLowStock clasifica cada artículo y descarta los que tienen stock suficiente.
// Orden: más grave primero, luego por nombre.
func BuildLowStock(rows []repository.StockLevelRow) (dto.LowStockSummary, []dto.LowStockItem) {
	var summary dto.LowStockSummary
	items := make([]dto.LowStockItem, 0)
	for _, r := range rows {
		class, ok := inventory.ClassifyLowStock(r.Quantity, r.MinStockLevel)
		if !ok {
			continue
		}
		switch class {
		case inventory.StockOutOfStock:
			summary.OutOfStock++
		case inventory.StockBelowMinimum:
			summary.BelowMinimum++
		case inventory.StockNearMinimum:
			summary.NearMinimum++
		}
		items = append(items, dto.LowStockItem{
			ItemID:        r.ItemID,
			Name:          r.Name,
			SKU:           r.SKU,
			CategoryName:  r.CategoryName,
			Quantity:      r.Quantity,
			MinStockLevel: r.MinStockLevel,
			Status:        class,
		})
	}
	summary.Total = len(items)
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Status != items[j].Status {
			return lowStockOrder[items[i].Status] < lowStockOrder[items[j].Status]
		}
		return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
	})
	return summary, items
}

// BuildSpaceUtilisation calcula utilización por ubicación y los totales globales.
// MostUtilised es la ubicación con mayor porcentaje (nil si no hay ubicaciones).
func BuildSpaceUtilisation(rows []repository.LocationUsageRow) (dto.SpaceSummary, []dto.SpaceLocation) {
	summary := dto.SpaceSummary{
		TotalCapacity: decimal.Zero,
		TotalUsed:     decimal.Zero,
	}
	locations := make([]dto.SpaceLocation, 0, len(rows))
	mostIdx := -1
	for _, r := range rows {
		pct, status := inventory.Utilisation(r.UsedRSU, r.CapacityRSU)
		locations = append(locations, dto.SpaceLocation{
			LocationID:     r.LocationID,
			Name:           r.Name,
			Code:           r.Code,
			CapacityRSU:    r.CapacityRSU,
			UsedRSU:        r.UsedRSU,
			AvailableRSU:   inventory.Available(r.UsedRSU, r.CapacityRSU),
			UtilisationPct: pct,
			Status:         status,
			StatusColor:    inventory.StatusColor(status),
		})
		summary.TotalCapacity = summary.TotalCapacity.Add(r.CapacityRSU)
		summary.TotalUsed = summary.TotalUsed.Add(r.UsedRSU)
		if mostIdx < 0 || pct.GreaterThan(locations[mostIdx].UtilisationPct) {
			mostIdx = len(locations) - 1
		}
	}
	summary.LocationCount = len(locations)
	summary.TotalAvailable = inventory.Available(summary.TotalUsed, summary.TotalCapacity)
	summary.OverallPct, summary.OverallStatus = inventory.Utilisation(summary.TotalUsed, summary.TotalCapacity)
	if mostIdx >= 0 {
		most := locations[mostIdx]
		summary.MostUtilised = &most
	}
	return summary, locations
}

// AtRisk número de ubicaciones en estado critical o warning.
func AtRisk(locations []dto.SpaceLocation) int {
	n := 0
	for _, l := range locations {
		if l.Status == inventory.StatusCritical || l.Status == inventory.StatusWarning {
			n++
		}
	}
	return n
}
