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

func TestCategory_CrearListarRenombrar(t *testing.T) {
	s := memstore.New()
	tenant := s.SeedBusiness("Shop")
	uc := usecase.NewCategoryUseCase(s.Categories(), s.Items())
	ctx := context.Background()

	dry, err := uc.Create(ctx, tenant, dto.CreateCategoryRequest{Name: "Dry goods"})
	require.NoError(t, err)
	_, err = uc.Create(ctx, tenant, dto.CreateCategoryRequest{Name: "Dry goods"})
	assert.ErrorIs(t, err, domain.ErrDuplicateName)
	_, err = uc.Create(ctx, tenant, dto.CreateCategoryRequest{Name: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	name := "Pantry"
	out, err := uc.Update(ctx, tenant, dry.ID, dto.UpdateCategoryRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Pantry", out.Name)

	list, err := uc.List(ctx, tenant)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Pantry", list[0].Name)
}

func TestCategory_BorrarEnUso(t *testing.T) {
	s := memstore.New()
	tenant := s.SeedBusiness("Shop")
	loc := s.SeedLocation(tenant.BusinessID, "L1", 100)
	used := s.SeedCategory(tenant.BusinessID, "Dry")
	free := s.SeedCategory(tenant.BusinessID, "Cold")
	req := newItem(loc.ID, "Rice", 1, 0, 1)
	req.CategoryID = &used.ID
	addItem(t, s, tenant, req)

	uc := usecase.NewCategoryUseCase(s.Categories(), s.Items())
	ctx := context.Background()

	assert.ErrorIs(t, uc.Delete(ctx, tenant, used.ID), domain.ErrCategoryInUse)
	require.NoError(t, uc.Delete(ctx, tenant, free.ID))
	assert.ErrorIs(t, uc.Delete(ctx, tenant, free.ID), domain.ErrNotFound)
}
