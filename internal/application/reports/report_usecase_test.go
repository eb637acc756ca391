package reports_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-inventory/internal/application/dto"
	"github.com/jhoicas/retail-inventory/internal/application/inventory"
	"github.com/jhoicas/retail-inventory/internal/application/reports"
	"github.com/jhoicas/retail-inventory/internal/domain"
	"github.com/jhoicas/retail-inventory/internal/testutil/memstore"
)

type fakeRenderer struct {
	business string
	err      error
}

func (f *fakeRenderer) LowStockPDF(businessName string, _ *dto.LowStockReport) ([]byte, error) {
	f.business = businessName
	return []byte("%PDF-low"), f.err
}

func (f *fakeRenderer) SpaceUtilisationPDF(businessName string, _ *dto.SpaceUtilisationReport) ([]byte, error) {
	f.business = businessName
	return []byte("%PDF-space"), f.err
}

type reportFixture struct {
	store     *memstore.Store
	tenant    domain.Tenant
	location  string
	item      string
	items     *inventory.ItemUseCase
	stocktake *inventory.StocktakeUseCase
	reports   *reports.ReportUseCase
	snapshots *reports.SnapshotUseCase
	renderer  *fakeRenderer
}

func newReportFixture(t *testing.T) reportFixture {
	t.Helper()
	s := memstore.New()
	tenant := s.SeedBusiness("Corner Shop")
	loc := s.SeedLocation(tenant.BusinessID, "Back", 100)
	items := inventory.NewItemUseCase(s, s.Items(), s.Catalog(), s.Categories(), s.ItemLocations())
	out, err := items.Create(context.Background(), tenant, dto.CreateItemRequest{
		IsNewCatalogItem: true,
		Name:             "Rice",
		LocationID:       loc.ID,
		Quantity:         3,
		MinStockLevel:    5,
		RSUValue:         decimal.NewFromInt(4),
	})
	require.NoError(t, err)

	renderer := &fakeRenderer{}
	return reportFixture{
		store:     s,
		tenant:    tenant,
		location:  loc.ID,
		item:      out.ItemID,
		items:     items,
		stocktake: inventory.NewStocktakeUseCase(s, nil),
		reports:   reports.NewReportUseCase(s.Reports(), s.Snapshots(), s.Businesses(), renderer),
		snapshots: reports.NewSnapshotUseCase(s),
		renderer:  renderer,
	}
}

func TestLowStock_EnVivo(t *testing.T) {
	f := newReportFixture(t)

	report, err := f.reports.LowStock(context.Background(), f.tenant, "")
	require.NoError(t, err)

	assert.True(t, report.Source.Live)
	assert.Nil(t, report.Source.SnapshotID)
	assert.Equal(t, 1, report.Summary.BelowMinimum)
	require.Len(t, report.Items, 1)
	assert.Equal(t, f.item, report.Items[0].ItemID)
}

// Un reporte sobre un snapshot ignora los cambios posteriores y coincide con el reporte en vivo del momento.
func TestReportes_SnapshotTransparente(t *testing.T) {
	f := newReportFixture(t)
	ctx := context.Background()

	liveLow, err := f.reports.LowStock(ctx, f.tenant, "")
	require.NoError(t, err)
	liveSpace, err := f.reports.SpaceUtilisation(ctx, f.tenant, "")
	require.NoError(t, err)

	run, err := f.snapshots.Run(ctx, "")
	require.NoError(t, err)
	require.Len(t, run.Snapshots, 1)
	snapID := run.Snapshots[0].SnapshotID

	// Cambios posteriores al snapshot.
	_, err = f.stocktake.Apply(ctx, f.tenant, dto.StocktakeRequest{
		LocationID: f.location,
		Items:      map[string]dto.StocktakeEntry{f.item: {Count: 20}},
	})
	require.NoError(t, err)

	snapLow, err := f.reports.LowStock(ctx, f.tenant, snapID)
	require.NoError(t, err)
	snapSpace, err := f.reports.SpaceUtilisation(ctx, f.tenant, snapID)
	require.NoError(t, err)

	assert.False(t, snapLow.Source.Live)
	require.NotNil(t, snapLow.Source.SnapshotID)
	assert.Equal(t, snapID, *snapLow.Source.SnapshotID)
	assert.Equal(t, liveLow.Summary, snapLow.Summary)
	assert.Equal(t, liveLow.Items, snapLow.Items)
	assert.Equal(t, liveSpace.Locations, snapSpace.Locations)
	assert.Equal(t, liveSpace.Summary, snapSpace.Summary)

	// El reporte en vivo sí refleja el conteo.
	nowLow, err := f.reports.LowStock(ctx, f.tenant, "")
	require.NoError(t, err)
	assert.Zero(t, nowLow.Summary.Total)
}

func TestReportes_SnapshotDeOtroNegocio(t *testing.T) {
	f := newReportFixture(t)
	ctx := context.Background()
	other := f.store.SeedBusiness("Other")

	run, err := f.snapshots.Run(ctx, "")
	require.NoError(t, err)
	require.Len(t, run.Snapshots, 2)

	var mine string
	for _, s := range run.Snapshots {
		if s.BusinessID == f.tenant.BusinessID {
			mine = s.SnapshotID
		}
	}
	_, err = f.reports.LowStock(ctx, other, mine)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = f.reports.SpaceUtilisation(ctx, f.tenant, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSnapshot_FechaUTCYListado(t *testing.T) {
	f := newReportFixture(t)
	ctx := context.Background()

	run, err := f.snapshots.Run(ctx, "manual")
	require.NoError(t, err)
	assert.Equal(t, time.UTC, run.SnapshotDate.Location())
	assert.Equal(t, "manual", run.SnapshotType)
	assert.Equal(t, 1, run.Snapshots[0].Items)
	assert.Equal(t, 1, run.Snapshots[0].Locations)

	list, err := f.reports.ListSnapshots(ctx, f.tenant)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, run.Snapshots[0].SnapshotID, list[0].SnapshotID)
}

// La copia de artículos y la de ubicaciones comparten la vista de una transacción REPEATABLE READ.
func TestSnapshot_AislamientoRepetible(t *testing.T) {
	f := newReportFixture(t)
	f.store.Isolations = nil

	_, err := f.snapshots.Run(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []inventory.Isolation{inventory.RepeatableRead}, f.store.Isolations)
}

// Si un negocio falla no queda ningún snapshot de la ejecución.
func TestSnapshot_FallaRevierteTodo(t *testing.T) {
	f := newReportFixture(t)
	f.store.SeedBusiness("Other")
	ctx := context.Background()

	f.store.InjectError("Snapshots.Create", errors.New("disk full"))
	_, err := f.snapshots.Run(ctx, "")
	require.Error(t, err)

	f.store.ClearErrors()
	list, err := f.reports.ListSnapshots(ctx, f.tenant)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestPDF_NombreDeArchivoYNegocio(t *testing.T) {
	f := newReportFixture(t)
	ctx := context.Background()

	data, name, err := f.reports.LowStockPDF(ctx, f.tenant, "")
	require.NoError(t, err)
	assert.Equal(t, "%PDF-low", string(data))
	assert.True(t, strings.HasPrefix(name, "low-stock-"), name)
	assert.True(t, strings.HasSuffix(name, ".pdf"), name)
	assert.Equal(t, "Corner Shop", f.renderer.business)

	run, err := f.snapshots.Run(ctx, "")
	require.NoError(t, err)
	_, name, err = f.reports.SpaceUtilisationPDF(ctx, f.tenant, run.Snapshots[0].SnapshotID)
	require.NoError(t, err)
	assert.Equal(t, "space-utilisation-"+run.SnapshotDate.Format("2006-01-02")+".pdf", name)

	f.renderer.err = errors.New("font missing")
	_, _, err = f.reports.LowStockPDF(ctx, f.tenant, "")
	assert.Error(t, err)
}
