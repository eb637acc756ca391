package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-inventory/internal/application/dto"
	"github.com/jhoicas/retail-inventory/internal/application/usecase"
	"github.com/jhoicas/retail-inventory/internal/domain"
	"github.com/jhoicas/retail-inventory/internal/testutil/memstore"
)

func TestBusiness_ActualizarSoloCamposEnviados(t *testing.T) {
	s := memstore.New()
	tenant := s.SeedBusiness("Shop")
	uc := usecase.NewBusinessUseCase(s.Businesses())
	ctx := context.Background()

	city, ref := "Leeds", "una caja de zapatos"
	out, err := uc.Update(ctx, tenant, dto.UpdateBusinessRequest{City: &city, RSUReferenceDescription: &ref})
	require.NoError(t, err)
	assert.Equal(t, "Shop", out.Name)
	assert.Equal(t, "Leeds", out.City)
	assert.Equal(t, "una caja de zapatos", out.RSUReferenceDescription)

	got, err := uc.Get(ctx, tenant)
	require.NoError(t, err)
	assert.Equal(t, "Leeds", got.City)

	_, err = uc.Get(ctx, domain.Tenant{BusinessID: "missing", UserID: "u"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
