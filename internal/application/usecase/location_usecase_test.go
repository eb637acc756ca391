package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-inventory/internal/application/dto"
	"github.com/jhoicas/retail-inventory/internal/application/usecase"
	"github.com/jhoicas/retail-inventory/internal/domain"
	"github.com/jhoicas/retail-inventory/internal/domain/entity"
	"github.com/jhoicas/retail-inventory/internal/domain/inventory"
	"github.com/jhoicas/retail-inventory/internal/testutil/memstore"
)

type fakeImages struct {
	saved [][]byte
	err   error
}

func (f *fakeImages) Save(_ context.Context, data []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.saved = append(f.saved, data)
	return "/uploads/img.png", nil
}

func newLocationUseCase(s *memstore.Store, images *fakeImages) *usecase.LocationUseCase {
	if images == nil {
		return usecase.NewLocationUseCase(s, s.Locations(), s.ItemLocations(), nil)
	}
	return usecase.NewLocationUseCase(s, s.Locations(), s.ItemLocations(), images)
}

func TestDeriveLocationCode(t *testing.T) {
	assert.Equal(t, "BACK-ROOM-2", usecase.DeriveLocationCode("Back Room 2"))
	assert.Equal(t, "ESTANTERIA-A", usecase.DeriveLocationCode("  Estantería A "))
	assert.Equal(t, "", usecase.DeriveLocationCode("   "))
}

func TestCreateLocation_CodigoDerivadoYOcupacionCero(t *testing.T) {
	s := memstore.New()
	tenant := s.SeedBusiness("Shop")
	uc := newLocationUseCase(s, nil)

	out, err := uc.Create(context.Background(), tenant, dto.CreateLocationRequest{Name: "Back Room", CapacityRSU: decimal.NewFromInt(50)})
	require.NoError(t, err)

	assert.Equal(t, "BACK-ROOM", out.Code)
	assert.True(t, out.CurrentRSUUsage.IsZero())
	assert.True(t, out.AvailableRSU.Equal(decimal.NewFromInt(50)))
	assert.Equal(t, inventory.StatusGood, out.Status)
}

func TestCreateLocation_NombreDuplicado(t *testing.T) {
	s := memstore.New()
	tenant := s.SeedBusiness("Shop")
	other := s.SeedBusiness("Other")
	uc := newLocationUseCase(s, nil)
	ctx := context.Background()

	_, err := uc.Create(ctx, tenant, dto.CreateLocationRequest{Name: "Front"})
	require.NoError(t, err)

	_, err = uc.Create(ctx, tenant, dto.CreateLocationRequest{Name: "Front"})
	assert.ErrorIs(t, err, domain.ErrDuplicateName)

	_, err = uc.Create(ctx, tenant, dto.CreateLocationRequest{Name: "Otra", Code: "FRONT"})
	assert.ErrorIs(t, err, domain.ErrDuplicateName)

	// El mismo nombre en otro negocio es válido.
	_, err = uc.Create(ctx, other, dto.CreateLocationRequest{Name: "Front"})
	assert.NoError(t, err)
}

func TestCreateLocation_CapacidadNegativa(t *testing.T) {
	s := memstore.New()
	tenant := s.SeedBusiness("Shop")
	_, err := newLocationUseCase(s, nil).Create(context.Background(), tenant, dto.CreateLocationRequest{Name: "X", CapacityRSU: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Editar la ubicación nunca toca la ocupación mantenida.
func TestUpdateLocation_NoCambiaOcupacion(t *testing.T) {
	s := memstore.New()
	tenant := s.SeedBusiness("Shop")
	loc := s.SeedLocation(tenant.BusinessID, "L1", 100)
	addItem(t, s, tenant, newItem(loc.ID, "Rice", 30, 0, 3)) // 90 RSU

	capacity := decimal.NewFromInt(95)
	out, err := newLocationUseCase(s, nil).Update(context.Background(), tenant, loc.ID, dto.UpdateLocationRequest{CapacityRSU: &capacity})
	require.NoError(t, err)

	assert.True(t, out.CurrentRSUUsage.Equal(decimal.NewFromInt(90)))
	assert.Equal(t, inventory.StatusCritical, out.Status)
	assert.Equal(t, "red", out.StatusColor)
}

func TestGetLocation_DetalleConArticulos(t *testing.T) {
	s := memstore.New()
	tenant := s.SeedBusiness("Shop")
	loc := s.SeedLocation(tenant.BusinessID, "L1", 100)
	addItem(t, s, tenant, newItem(loc.ID, "Rice", 4, 0, 1))
	uc := newLocationUseCase(s, nil)

	out, err := uc.Get(context.Background(), tenant, loc.ID)
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Rice", out.Items[0].Name)
	assert.Equal(t, 4, out.Items[0].Quantity)

	_, err = uc.Get(context.Background(), s.SeedBusiness("Other"), loc.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteLocation(t *testing.T) {
	s := memstore.New()
	tenant := s.SeedBusiness("Shop")
	full := s.SeedLocation(tenant.BusinessID, "Full", 100)
	empty := s.SeedLocation(tenant.BusinessID, "Empty", 100)
	addItem(t, s, tenant, newItem(full.ID, "Rice", 0, 0, 1))
	uc := newLocationUseCase(s, nil)
	ctx := context.Background()

	// Una fila con cantidad cero también impide el borrado.
	assert.ErrorIs(t, uc.Delete(ctx, tenant, full.ID), domain.ErrLocationNotEmpty)
	require.NoError(t, uc.Delete(ctx, tenant, empty.ID))
	assert.ErrorIs(t, uc.Delete(ctx, tenant, empty.ID), domain.ErrNotFound)

	list, err := uc.List(ctx, tenant)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Full", list[0].Name)
}

func TestUploadImage(t *testing.T) {
	s := memstore.New()
	ctx := context.Background()

	_, err := newLocationUseCase(s, nil).UploadImage(ctx, []byte{1})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	images := &fakeImages{}
	uc := newLocationUseCase(s, images)
	_, err = uc.UploadImage(ctx, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	out, err := uc.UploadImage(ctx, []byte{1, 2})
	require.NoError(t, err)
	assert.Equal(t, "/uploads/img.png", out.ImageURL)
	assert.Len(t, images.saved, 1)

	images.err = errors.New("disk full")
	_, err = uc.UploadImage(ctx, []byte{1})
	assert.Error(t, err)
}

func TestToLocationResponse_CapacidadCero(t *testing.T) {
	out := usecase.ToLocationResponse(&entity.Location{CapacityRSU: decimal.Zero, CurrentRSUUsage: decimal.NewFromInt(5)})
	assert.True(t, out.UtilisationPct.IsZero())
	assert.True(t, out.AvailableRSU.IsZero())
	assert.Equal(t, inventory.StatusGood, out.Status)
}

// 89.996 % se muestra como 90.00 pero sigue en warning.
func TestToLocationResponse_EstadoSobreValorExacto(t *testing.T) {
	out := usecase.ToLocationResponse(&entity.Location{
		CapacityRSU:     decimal.NewFromInt(100),
		CurrentRSUUsage: decimal.RequireFromString("89.996"),
	})
	assert.True(t, out.UtilisationPct.Equal(decimal.NewFromInt(90)), "pct=%s", out.UtilisationPct)
	assert.Equal(t, inventory.StatusWarning, out.Status)
	assert.Equal(t, "yellow", out.StatusColor)
}
