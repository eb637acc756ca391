package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/retail-inventory/internal/application/dto"
	"github.com/jhoicas/retail-inventory/internal/application/usecase"
	"github.com/jhoicas/retail-inventory/internal/domain"
	"github.com/jhoicas/retail-inventory/internal/testutil/memstore"
)

func TestStaff_CrearConHash(t *testing.T) {
	s := memstore.New()
	tenant := s.SeedBusiness("Shop")
	uc := usecase.NewStaffUseCase(s.Users())
	ctx := context.Background()

	out, err := uc.Create(ctx, tenant, dto.CreateUserRequest{Username: "maria", Password: "secreto123", IsAdmin: false})
	require.NoError(t, err)
	assert.Equal(t, tenant.BusinessID, out.BusinessID)
	assert.False(t, out.IsOwner)

	stored, err := s.Users().GetByUsername(ctx, "maria")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secreto123")))

	_, err = uc.Create(ctx, tenant, dto.CreateUserRequest{Username: "maria", Password: "otroSecreto"})
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)

	_, err = uc.Create(ctx, tenant, dto.CreateUserRequest{Username: "pedro", Password: "corta"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	list, err := uc.List(ctx, tenant)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

// El propietario no puede eliminarse ni perder el rol de administrador.
func TestStaff_PropietarioProtegido(t *testing.T) {
	s := memstore.New()
	owner := s.SeedBusiness("Shop")
	uc := usecase.NewStaffUseCase(s.Users())
	ctx := context.Background()

	admin, err := uc.Create(ctx, owner, dto.CreateUserRequest{Username: "admin2", Password: "secreto123", IsAdmin: true})
	require.NoError(t, err)
	asAdmin := domain.Tenant{BusinessID: owner.BusinessID, UserID: admin.ID, IsAdmin: true}

	no := false
	_, err = uc.Update(ctx, asAdmin, owner.UserID, dto.UpdateUserRequest{IsAdmin: &no})
	assert.ErrorIs(t, err, domain.ErrOwnerProtected)
	assert.ErrorIs(t, uc.Delete(ctx, asAdmin, owner.UserID), domain.ErrOwnerProtected)

	// Nadie se elimina a sí mismo.
	assert.ErrorIs(t, uc.Delete(ctx, asAdmin, admin.ID), domain.ErrConflict)

	// El propietario sí puede eliminar a otro administrador.
	require.NoError(t, uc.Delete(ctx, owner, admin.ID))
	assert.ErrorIs(t, uc.Delete(ctx, owner, admin.ID), domain.ErrNotFound)
}

func TestStaff_ActualizarPassword(t *testing.T) {
	s := memstore.New()
	tenant := s.SeedBusiness("Shop")
	uc := usecase.NewStaffUseCase(s.Users())
	ctx := context.Background()

	u, err := uc.Create(ctx, tenant, dto.CreateUserRequest{Username: "luis", Password: "secreto123"})
	require.NoError(t, err)

	pw, name := "nuevoSecreto", "Luis"
	out, err := uc.Update(ctx, tenant, u.ID, dto.UpdateUserRequest{Password: &pw, FirstName: &name})
	require.NoError(t, err)
	assert.Equal(t, "Luis", out.FirstName)

	stored, err := s.Users().GetByUsername(ctx, "luis")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("nuevoSecreto")))

	// Usuario de otro negocio: no encontrado.
	_, err = uc.Update(ctx, s.SeedBusiness("Other"), u.ID, dto.UpdateUserRequest{FirstName: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
