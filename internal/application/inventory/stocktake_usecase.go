package inventory

import (
	"context"
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/retail-inventory/internal/application/dto"
	"github.com/jhoicas/retail-inventory/internal/application/ports"
	"github.com/jhoicas/retail-inventory/internal/domain"
	"github.com/jhoicas/retail-inventory/internal/domain/entity"
	"github.com/jhoicas/retail-inventory/internal/domain/inventory"
)

// Motivos de descarte de una entrada del conteo.
const (
	SkipInvalidItemID = "itemId inválido"
	SkipEmptyCount    = "conteo vacío"
	SkipNotInteger    = "el conteo debe ser un número entero"
	SkipNegativeCount = "el conteo no puede ser negativo"
	SkipItemNotFound  = "artículo no encontrado"
)

// StocktakeUseCase aplica el conteo de una ubicación: fija cantidades absolutas por artículo.
//
// Dos niveles de falla: una entrada inválida se descarta y se informa en Skipped, pero el lote
// sigue; un error de BD aborta la transacción y revierte todo lo aplicado.
type StocktakeUseCase struct {
	txRunner TxRunner
	recent   ports.RecentTracker
}

// NewStocktakeUseCase construye el caso de uso. recent puede ser nil.
func NewStocktakeUseCase(txRunner TxRunner, recent ports.RecentTracker) *StocktakeUseCase {
	return &StocktakeUseCase{txRunner: txRunner, recent: recent}
}

type countEntry struct {
	itemID string
	count  int
}

// Apply bloquea los artículos (FOR SHARE, en orden de id) y la ubicación (FOR UPDATE), fija cada
// cantidad y ajusta la ocupación con Σ (nueva − anterior) × RSU.
func (uc *StocktakeUseCase) Apply(ctx context.Context, tenant domain.Tenant, in dto.StocktakeRequest) (*dto.StocktakeResult, error) {
	locationID := strings.TrimSpace(in.LocationID)
	if locationID == "" {
		return nil, domain.NewValidationError("locationId", "es obligatorio")
	}
	entries, skipped := parseStocktakeEntries(in.Items)
	if len(entries) == 0 {
		return nil, domain.NewValidationError("items", "no hay conteos válidos")
	}

	var result *dto.StocktakeResult
	err := uc.txRunner.Run(ctx, func(r TxRepos) error {
		res := &dto.StocktakeResult{
			LocationID:   locationID,
			UpdatedItems: make([]dto.StocktakeUpdate, 0, len(entries)),
			Skipped:      append([]dto.StocktakeSkip{}, skipped...),
			RSUDelta:     decimal.Zero,
		}

		// Artículos en orden de id y en modo compartido antes que la ubicación (orden de TxRunner):
		// su RSU no cambia mientras se recalcula la ocupación.
		var err error
		items := make([]*entity.BusinessItem, len(entries))
		for i, e := range entries {
			if items[i], err = r.Items.GetForShare(ctx, tenant.BusinessID, e.itemID); err != nil {
				return err
			}
		}

		loc, err := r.Locations.GetForUpdate(ctx, tenant.BusinessID, locationID)
		if err != nil {
			return err
		}
		if loc == nil {
			return domain.ErrNotFound
		}

		now := time.Now()
		for i, e := range entries {
			item := items[i]
			if item == nil {
				res.Skipped = append(res.Skipped, dto.StocktakeSkip{ItemID: e.itemID, Reason: SkipItemNotFound})
				continue
			}
			prev, err := r.ItemLocations.GetForUpdate(ctx, loc.ID, item.ID)
			if err != nil {
				return err
			}
			oldQty := 0
			if prev != nil {
				oldQty = prev.Quantity
			}
			if err := r.ItemLocations.Upsert(ctx, &entity.ItemLocation{
				LocationID: loc.ID,
				ItemID:     item.ID,
				Quantity:   e.count,
				UpdatedAt:  now,
			}); err != nil {
				return err
			}
			res.RSUDelta = res.RSUDelta.Add(inventory.UsageDelta(oldQty, e.count, item.RSUValue))
			res.UpdatedItems = append(res.UpdatedItems, dto.StocktakeUpdate{
				ItemID:           item.ID,
				PreviousQuantity: oldQty,
				Quantity:         e.count,
			})
		}

		if !res.RSUDelta.IsZero() {
			if err := r.Locations.AddUsage(ctx, loc.ID, res.RSUDelta); err != nil {
				return err
			}
		}
		res.UpdatedCount = len(res.UpdatedItems)
		res.CurrentRSUUsage = loc.CurrentRSUUsage.Add(res.RSUDelta)
		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	if uc.recent != nil && result.UpdatedCount > 0 {
		ids := make([]string, 0, result.UpdatedCount)
		for _, u := range result.UpdatedItems {
			ids = append(ids, u.ItemID)
		}
		// La marca de "reciente" es de presentación: el conteo ya está confirmado.
		if err := uc.recent.Touch(ctx, tenant.BusinessID, ids); err != nil {
			log.Warn().Err(err).Str("business_id", tenant.BusinessID).Msg("stocktake: no se pudo marcar artículos recientes")
		}
	}
	return result, nil
}

// parseStocktakeEntries separa las entradas válidas (ordenadas por itemId) de las descartadas.
func parseStocktakeEntries(items map[string]dto.StocktakeEntry) ([]countEntry, []dto.StocktakeSkip) {
	ids := make([]string, 0, len(items))
	for id := range items {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	entries := make([]countEntry, 0, len(ids))
	skipped := make([]dto.StocktakeSkip, 0)
	for _, id := range ids {
		itemID := strings.TrimSpace(id)
		if itemID == "" || itemID == "undefined" || itemID == "null" {
			skipped = append(skipped, dto.StocktakeSkip{ItemID: id, Reason: SkipInvalidItemID})
			continue
		}
		count, reason := parseCount(items[id].Count)
		if reason != "" {
			skipped = append(skipped, dto.StocktakeSkip{ItemID: itemID, Reason: reason})
			continue
		}
		entries = append(entries, countEntry{itemID: itemID, count: count})
	}
	return entries, skipped
}

// parseCount acepta número JSON o texto. Devuelve el motivo de descarte si no es un entero >= 0.
func parseCount(v any) (int, string) {
	switch c := v.(type) {
	case nil:
		return 0, SkipEmptyCount
	case int:
		return checkCount(float64(c))
	case float64:
		return checkCount(c)
	case json.Number:
		f, err := c.Float64()
		if err != nil {
			return 0, SkipNotInteger
		}
		return checkCount(f)
	case string:
		s := strings.TrimSpace(c)
		if s == "" {
			return 0, SkipEmptyCount
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, SkipNotInteger
		}
		return checkCount(f)
	default:
		return 0, SkipNotInteger
	}
}

func checkCount(f float64) (int, string) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || f > math.MaxInt32 {
		return 0, SkipNotInteger
	}
	if f < 0 {
		return 0, SkipNegativeCount
	}
	return int(f), ""
}
