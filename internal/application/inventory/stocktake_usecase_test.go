package inventory_test

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-inventory/internal/application/dto"
	"github.com/jhoicas/retail-inventory/internal/application/inventory"
	"github.com/jhoicas/retail-inventory/internal/domain"
	"github.com/jhoicas/retail-inventory/internal/testutil/memstore"
)

type fakeRecent struct {
	touched map[string][]string
	err     error
}

func (f *fakeRecent) Touch(_ context.Context, businessID string, ids []string) error {
	if f.err != nil {
		return f.err
	}
	if f.touched == nil {
		f.touched = map[string][]string{}
	}
	f.touched[businessID] = append(f.touched[businessID], ids...)
	return nil
}

func (f *fakeRecent) List(_ context.Context, businessID string) ([]string, error) {
	return f.touched[businessID], f.err
}

type stocktakeFixture struct {
	store  *memstore.Store
	tenant domain.Tenant
	loc    string
	itemA  string // rsu 3, 10 unidades
	itemB  string // rsu 2, sin fila en la ubicación
}

func newStocktakeFixture(t *testing.T) stocktakeFixture {
	t.Helper()
	s := memstore.New()
	tenant := s.SeedBusiness("Shop")
	loc := s.SeedLocation(tenant.BusinessID, "L1", 100)
	items := newItemUseCase(s)

	a, err := items.Create(context.Background(), tenant, newItemRequest(loc.ID))
	require.NoError(t, err)

	// B existe en otra ubicación, no en L1.
	other := s.SeedLocation(tenant.BusinessID, "L2", 100)
	reqB := newItemRequest(other.ID)
	reqB.Name, reqB.Barcode, reqB.RSUValue, reqB.Quantity = "Beans", "456", dec(2), 1
	b, err := items.Create(context.Background(), tenant, reqB)
	require.NoError(t, err)

	return stocktakeFixture{store: s, tenant: tenant, loc: loc.ID, itemA: a.ItemID, itemB: b.ItemID}
}

func counts(m map[string]any) map[string]dto.StocktakeEntry {
	out := map[string]dto.StocktakeEntry{}
	for k, v := range m {
		out[k] = dto.StocktakeEntry{Count: v}
	}
	return out
}

// La ocupación tras el conteo es la anterior más Σ (nueva − anterior) × RSU.
func TestApply_DeltaDeOcupacion(t *testing.T) {
	f := newStocktakeFixture(t)
	recent := &fakeRecent{}
	uc := inventory.NewStocktakeUseCase(f.store, recent)
	before := f.store.Usage(f.loc) // 30

	res, err := uc.Apply(context.Background(), f.tenant, dto.StocktakeRequest{
		LocationID: f.loc,
		Items:      counts(map[string]any{f.itemA: 4.0, f.itemB: "5"}),
	})
	require.NoError(t, err)

	// A: (4−10)×3 = −18; B: (5−0)×2 = 10
	assert.True(t, res.RSUDelta.Equal(dec(-8)), "delta=%s", res.RSUDelta)
	assert.True(t, f.store.Usage(f.loc).Equal(before.Add(res.RSUDelta)))
	assert.True(t, f.store.Usage(f.loc).Equal(f.store.ExpectedUsage(f.loc)))
	assert.True(t, res.CurrentRSUUsage.Equal(dec(22)))
	assert.Equal(t, 2, res.UpdatedCount)
	assert.Equal(t, 4, f.store.Quantity(f.loc, f.itemA))
	assert.Equal(t, 5, f.store.Quantity(f.loc, f.itemB))
	assert.ElementsMatch(t, []string{f.itemA, f.itemB}, recent.touched[f.tenant.BusinessID])
}

// Enviar el mismo conteo dos veces deja el mismo estado que enviarlo una vez.
func TestApply_Idempotente(t *testing.T) {
	f := newStocktakeFixture(t)
	uc := inventory.NewStocktakeUseCase(f.store, nil)
	req := dto.StocktakeRequest{LocationID: f.loc, Items: counts(map[string]any{f.itemA: 7, f.itemB: 0})}

	_, err := uc.Apply(context.Background(), f.tenant, req)
	require.NoError(t, err)
	usageOnce := f.store.Usage(f.loc)

	res, err := uc.Apply(context.Background(), f.tenant, req)
	require.NoError(t, err)

	assert.True(t, res.RSUDelta.IsZero())
	assert.True(t, f.store.Usage(f.loc).Equal(usageOnce))
	assert.Equal(t, 7, f.store.Quantity(f.loc, f.itemA))
	// Cantidad cero conserva la fila.
	assert.Equal(t, 0, f.store.Quantity(f.loc, f.itemB))
}

// Las entradas inválidas se descartan y el resto se aplica.
func TestApply_DescarteParcial(t *testing.T) {
	f := newStocktakeFixture(t)
	uc := inventory.NewStocktakeUseCase(f.store, nil)

	res, err := uc.Apply(context.Background(), f.tenant, dto.StocktakeRequest{
		LocationID: f.loc,
		Items: counts(map[string]any{
			f.itemA:     "12",
			"undefined": 3,
			f.itemB:     "",
			"ghost":     1,
			"neg":       -2,
			"frac":      1.5,
		}),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, res.UpdatedCount)
	assert.Equal(t, 12, f.store.Quantity(f.loc, f.itemA))
	reasons := map[string]string{}
	for _, s := range res.Skipped {
		reasons[s.ItemID] = s.Reason
	}
	assert.Equal(t, inventory.SkipInvalidItemID, reasons["undefined"])
	assert.Equal(t, inventory.SkipEmptyCount, reasons[f.itemB])
	assert.Equal(t, inventory.SkipItemNotFound, reasons["ghost"])
	assert.Equal(t, inventory.SkipNegativeCount, reasons["neg"])
	assert.Equal(t, inventory.SkipNotInteger, reasons["frac"])
}

func TestApply_ErroresDeValidacion(t *testing.T) {
	f := newStocktakeFixture(t)
	uc := inventory.NewStocktakeUseCase(f.store, nil)

	_, err := uc.Apply(context.Background(), f.tenant, dto.StocktakeRequest{Items: counts(map[string]any{f.itemA: 1})})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Apply(context.Background(), f.tenant, dto.StocktakeRequest{
		LocationID: f.loc,
		Items:      counts(map[string]any{"undefined": 1, f.itemA: nil}),
	})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "items", verr.Field)

	_, err = uc.Apply(context.Background(), f.tenant, dto.StocktakeRequest{
		LocationID: "missing",
		Items:      counts(map[string]any{f.itemA: 1}),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Un error de BD revierte todo lo aplicado en el lote y no marca artículos recientes.
func TestApply_ErrorDeBDRevierteTodo(t *testing.T) {
	f := newStocktakeFixture(t)
	recent := &fakeRecent{}
	uc := inventory.NewStocktakeUseCase(f.store, recent)
	before := f.store.Usage(f.loc)

	f.store.InjectError("Commit", errors.New("serialization failure"))
	_, err := uc.Apply(context.Background(), f.tenant, dto.StocktakeRequest{
		LocationID: f.loc,
		Items:      counts(map[string]any{f.itemA: 1, f.itemB: 9}),
	})
	require.Error(t, err)

	assert.Equal(t, 10, f.store.Quantity(f.loc, f.itemA))
	assert.Equal(t, -1, f.store.Quantity(f.loc, f.itemB))
	assert.True(t, f.store.Usage(f.loc).Equal(before))
	assert.Empty(t, recent.touched)
}

// Si el marcado de recientes falla, el conteo ya confirmado se mantiene.
func TestApply_FallaDeRecientesNoRevierte(t *testing.T) {
	f := newStocktakeFixture(t)
	uc := inventory.NewStocktakeUseCase(f.store, &fakeRecent{err: errors.New("redis down")})

	res, err := uc.Apply(context.Background(), f.tenant, dto.StocktakeRequest{
		LocationID: f.loc,
		Items:      counts(map[string]any{f.itemA: 3}),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, res.UpdatedCount)
	assert.Equal(t, 3, f.store.Quantity(f.loc, f.itemA))
}

// Los artículos del lote se bloquean FOR SHARE en orden de id y antes que la ubicación;
// un id inexistente se descarta sin romper el orden.
func TestApply_OrdenDeBloqueo(t *testing.T) {
	f := newStocktakeFixture(t)
	uc := inventory.NewStocktakeUseCase(f.store, nil)
	f.store.ResetLocks()

	res, err := uc.Apply(context.Background(), f.tenant, dto.StocktakeRequest{
		LocationID: f.loc,
		Items:      counts(map[string]any{f.itemA: 1, f.itemB: 2, "zz-missing": 3}),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, res.UpdatedCount)

	ids := []string{f.itemA, f.itemB, "zz-missing"}
	sort.Strings(ids)
	want := make([]string, 0, len(ids)+1)
	for _, id := range ids {
		want = append(want, "item:share:"+id)
	}
	want = append(want, "location:update:"+f.loc)
	assert.Equal(t, want, f.store.Locks())
}
