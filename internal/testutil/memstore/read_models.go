package memstore

import (
	"context"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/retail-inventory/internal/domain/entity"
	"github.com/jhoicas/retail-inventory/internal/domain/repository"
)

var (
	_ repository.SnapshotRepository  = SnapshotRepo{}
	_ repository.SearchRepository    = SearchRepo{}
	_ repository.ReportRepository    = ReportRepo{}
	_ repository.AnalyticsRepository = AnalyticsRepo{}
)

func totalQuantity(st *state, itemID string) int {
	total := 0
	for k, il := range st.itemLocs {
		if k.itemID == itemID {
			total += il.Quantity
		}
	}
	return total
}

func categoryName(st *state, id *string) *string {
	if id == nil {
		return nil
	}
	c, ok := st.categories[*id]
	if !ok {
		return nil
	}
	name := c.Name
	return &name
}

func liveStockLevels(st *state, businessID string) []repository.StockLevelRow {
	out := make([]repository.StockLevelRow, 0)
	for _, it := range st.items {
		if it.BusinessID != businessID {
			continue
		}
		out = append(out, repository.StockLevelRow{
			ItemID:        it.ID,
			Name:          it.Name,
			SKU:           it.SKU,
			CategoryName:  categoryName(st, it.CategoryID),
			MinStockLevel: it.MinStockLevel,
			Quantity:      totalQuantity(st, it.ID),
			UnitPrice:     it.UnitPrice,
			CostPrice:     it.CostPrice,
			RSUValue:      it.RSUValue,
		})
	}
	sort.Slice(out, func(i, j int) bool { return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name) })
	return out
}

func liveLocationUsage(st *state, businessID string) []repository.LocationUsageRow {
	out := make([]repository.LocationUsageRow, 0)
	for _, l := range st.locations {
		if l.BusinessID != businessID {
			continue
		}
		out = append(out, repository.LocationUsageRow{
			LocationID:  l.ID,
			Name:        l.Name,
			Code:        l.Code,
			CapacityRSU: l.CapacityRSU,
			UsedRSU:     l.CurrentRSUUsage,
		})
	}
	sort.Slice(out, func(i, j int) bool { return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name) })
	return out
}

// ── Snapshots ─────────────────────────────────────────────────────────────

type SnapshotRepo struct{ sc scope }

func (r SnapshotRepo) Create(_ context.Context, snap *entity.InventorySnapshot) (items, locations int, err error) {
	err = r.sc.do("Snapshots.Create", func(st *state) error {
		st.snapshots[snap.ID] = *snap
		var si []entity.SnapshotItem
		for _, row := range liveStockLevels(st, snap.BusinessID) {
			si = append(si, entity.SnapshotItem{
				SnapshotID:    snap.ID,
				ItemID:        row.ItemID,
				Name:          row.Name,
				SKU:           row.SKU,
				CategoryName:  row.CategoryName,
				MinStockLevel: row.MinStockLevel,
				Quantity:      row.Quantity,
				UnitPrice:     row.UnitPrice,
				CostPrice:     row.CostPrice,
				RSUValue:      row.RSUValue,
			})
		}
		var sl []entity.SnapshotLocation
		for _, row := range liveLocationUsage(st, snap.BusinessID) {
			sl = append(sl, entity.SnapshotLocation{
				SnapshotID:  snap.ID,
				LocationID:  row.LocationID,
				Name:        row.Name,
				Code:        row.Code,
				CapacityRSU: row.CapacityRSU,
				UsedRSU:     row.UsedRSU,
			})
		}
		st.snapItems[snap.ID] = si
		st.snapLocs[snap.ID] = sl
		items, locations = len(si), len(sl)
		return nil
	})
	return items, locations, err
}

func (r SnapshotRepo) GetByID(_ context.Context, businessID, id string) (out *entity.InventorySnapshot, err error) {
	err = r.sc.do("Snapshots.GetByID", func(st *state) error {
		if s, ok := st.snapshots[id]; ok && s.BusinessID == businessID {
			out = &s
		}
		return nil
	})
	return out, err
}

func (r SnapshotRepo) ListByBusiness(_ context.Context, businessID string) (out []*entity.InventorySnapshot, err error) {
	err = r.sc.do("Snapshots.ListByBusiness", func(st *state) error {
		for _, s := range st.snapshots {
			if s.BusinessID == businessID {
				s := s
				out = append(out, &s)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].SnapshotDate.After(out[j].SnapshotDate) })
	return out, err
}

// ── Reportes ──────────────────────────────────────────────────────────────

type ReportRepo struct{ sc scope }

func (r ReportRepo) Live(businessID string) repository.ReportSource {
	return liveSource{sc: r.sc, businessID: businessID}
}

func (r ReportRepo) Snapshot(businessID, snapshotID string) repository.ReportSource {
	return snapshotSource{sc: r.sc, businessID: businessID, snapshotID: snapshotID}
}

type liveSource struct {
	sc         scope
	businessID string
}

func (s liveSource) StockLevels(_ context.Context) (out []repository.StockLevelRow, err error) {
	err = s.sc.do("Reports.StockLevels", func(st *state) error {
		out = liveStockLevels(st, s.businessID)
		return nil
	})
	return out, err
}

func (s liveSource) LocationUsage(_ context.Context) (out []repository.LocationUsageRow, err error) {
	err = s.sc.do("Reports.LocationUsage", func(st *state) error {
		out = liveLocationUsage(st, s.businessID)
		return nil
	})
	return out, err
}

type snapshotSource struct {
	sc                     scope
	businessID, snapshotID string
}

func (s snapshotSource) StockLevels(_ context.Context) (out []repository.StockLevelRow, err error) {
	err = s.sc.do("Reports.StockLevels", func(st *state) error {
		if snap, ok := st.snapshots[s.snapshotID]; !ok || snap.BusinessID != s.businessID {
			return nil
		}
		for _, si := range st.snapItems[s.snapshotID] {
			out = append(out, repository.StockLevelRow{
				ItemID:        si.ItemID,
				Name:          si.Name,
				SKU:           si.SKU,
				CategoryName:  si.CategoryName,
				MinStockLevel: si.MinStockLevel,
				Quantity:      si.Quantity,
				UnitPrice:     si.UnitPrice,
				CostPrice:     si.CostPrice,
				RSUValue:      si.RSUValue,
			})
		}
		return nil
	})
	return out, err
}

func (s snapshotSource) LocationUsage(_ context.Context) (out []repository.LocationUsageRow, err error) {
	err = s.sc.do("Reports.LocationUsage", func(st *state) error {
		if snap, ok := st.snapshots[s.snapshotID]; !ok || snap.BusinessID != s.businessID {
			return nil
		}
		for _, sl := range st.snapLocs[s.snapshotID] {
			out = append(out, repository.LocationUsageRow{
				LocationID:  sl.LocationID,
				Name:        sl.Name,
				Code:        sl.Code,
				CapacityRSU: sl.CapacityRSU,
				UsedRSU:     sl.UsedRSU,
			})
		}
		return nil
	})
	return out, err
}

// ── Dashboard ─────────────────────────────────────────────────────────────

type AnalyticsRepo struct{ sc scope }

func (r AnalyticsRepo) ItemTotals(_ context.Context, businessID string) (count int, value decimal.Decimal, err error) {
	value = decimal.Zero
	err = r.sc.do("Analytics.ItemTotals", func(st *state) error {
		for _, it := range st.items {
			if it.BusinessID != businessID {
				continue
			}
			count++
			value = value.Add(decimal.NewFromInt(int64(totalQuantity(st, it.ID))).Mul(it.CostPrice))
		}
		return nil
	})
	return count, value, err
}

// ── Búsqueda ──────────────────────────────────────────────────────────────

// SearchRepo aplica las mismas reglas que la consulta SQL: unión de las dos fuentes y luego
// un único filtrado, orden y paginación.
type SearchRepo struct{ sc scope }

func (r SearchRepo) Search(_ context.Context, f repository.SearchFilter) (page []repository.SearchRow, total int, err error) {
	var rows []repository.SearchRow
	err = r.sc.do("Search.Search", func(st *state) error {
		adopted := map[string]bool{}
		for _, it := range st.items {
			if it.BusinessID != f.BusinessID {
				continue
			}
			adopted[it.CatalogID] = true
			placements := placementsOf(st, it.ID)
			if f.LocationID != "" {
				var at []repository.ItemPlacement
				for _, p := range placements {
					if p.LocationID == f.LocationID {
						at = append(at, p)
					}
				}
				if len(at) == 0 {
					continue
				}
				placements = at
			}
			qty := 0
			for _, p := range placements {
				qty += p.Quantity
			}
			id := it.ID
			rows = append(rows, repository.SearchRow{
				ItemID:        &id,
				CatalogID:     it.CatalogID,
				Name:          it.Name,
				SKU:           it.SKU,
				Barcode:       st.catalog[it.CatalogID].Barcode,
				CategoryID:    it.CategoryID,
				CategoryName:  categoryName(st, it.CategoryID),
				Quantity:      qty,
				MinStockLevel: it.MinStockLevel,
				RSUValue:      it.RSUValue,
				UnitPrice:     it.UnitPrice,
				CostPrice:     it.CostPrice,
				ImageURL:      it.ImageURL,
				Locations:     placements,
				IsFromCatalog: true,
			})
		}
		if f.IncludeCatalogRows() {
			for _, p := range st.catalog {
				if adopted[p.ID] {
					continue
				}
				rows = append(rows, repository.SearchRow{
					CatalogID:     p.ID,
					Name:          p.Name,
					Barcode:       p.Barcode,
					RSUValue:      decimal.Zero,
					UnitPrice:     decimal.Zero,
					CostPrice:     decimal.Zero,
					Locations:     []repository.ItemPlacement{},
					IsFromCatalog: false,
				})
			}
		}
		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	filtered := rows[:0]
	for _, row := range rows {
		if matchesSearch(f, row) {
			filtered = append(filtered, row)
		}
	}
	sortSearchRows(f, filtered)

	total = len(filtered)
	start := f.Offset()
	if start > total {
		start = total
	}
	end := start + f.Limit
	if end > total {
		end = total
	}
	return filtered[start:end], total, nil
}

func matchesSearch(f repository.SearchFilter, row repository.SearchRow) bool {
	if q := strings.ToLower(f.Query); q != "" {
		if !strings.Contains(strings.ToLower(row.Name), q) &&
			!strings.Contains(strings.ToLower(row.SKU), q) &&
			!strings.Contains(strings.ToLower(row.Barcode), q) {
			return false
		}
	}
	if f.CatalogID != "" && row.CatalogID != f.CatalogID {
		return false
	}
	if f.InInventoryOnly && !row.IsFromCatalog {
		return false
	}
	if f.CategoryID != "" {
		if !row.IsFromCatalog {
			return false
		}
		if f.CategoryID == repository.UncategorisedFilter {
			if row.CategoryID != nil {
				return false
			}
		} else if row.CategoryID == nil || *row.CategoryID != f.CategoryID {
			return false
		}
	}
	if f.LocationFilter != "" {
		found := false
		for _, p := range row.Locations {
			if p.LocationID == f.LocationFilter {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	switch f.StockStatus {
	case repository.StockStatusInStock:
		return row.IsFromCatalog && row.Quantity > 0
	case repository.StockStatusLowStock:
		return row.IsFromCatalog && row.Quantity > 0 && row.Quantity <= row.MinStockLevel
	case repository.StockStatusOutOfStock:
		return row.IsFromCatalog && row.Quantity == 0
	case repository.StockStatusCatalogOnly:
		return !row.IsFromCatalog
	}
	return true
}

func sortSearchRows(f repository.SearchFilter, rows []repository.SearchRow) {
	name := func(r repository.SearchRow) string { return strings.ToLower(r.Name) }
	cat := func(r repository.SearchRow) string {
		if r.CategoryName == nil {
			return "Uncategorised"
		}
		return *r.CategoryName
	}
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		switch f.SortBy {
		case repository.SortByCategory:
			if cat(a) != cat(b) {
				return (cat(a) < cat(b)) != f.SortDesc
			}
		case repository.SortByQuantity:
			if a.Quantity != b.Quantity {
				return (a.Quantity < b.Quantity) != f.SortDesc
			}
		default:
			if name(a) != name(b) {
				return (name(a) < name(b)) != f.SortDesc
			}
			return a.CatalogID < b.CatalogID
		}
		if name(a) != name(b) {
			return name(a) < name(b)
		}
		return a.CatalogID < b.CatalogID
	})
}

func (r SearchRepo) CategoryOptions(_ context.Context, businessID string) (out []repository.Option, err error) {
	err = r.sc.do("Search.CategoryOptions", func(st *state) error {
		for _, c := range st.categories {
			if c.BusinessID == businessID {
				out = append(out, repository.Option{ID: c.ID, Name: c.Name})
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name) })
	return out, err
}

func (r SearchRepo) LocationOptions(_ context.Context, businessID string) (out []repository.Option, err error) {
	err = r.sc.do("Search.LocationOptions", func(st *state) error {
		for _, l := range st.locations {
			if l.BusinessID == businessID {
				out = append(out, repository.Option{ID: l.ID, Name: l.Name})
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name) })
	return out, err
}
