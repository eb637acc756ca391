package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-inventory/internal/application/auth"
	"github.com/jhoicas/retail-inventory/internal/application/dto"
	"github.com/jhoicas/retail-inventory/internal/domain"
	"github.com/jhoicas/retail-inventory/internal/testutil/memstore"
	"github.com/jhoicas/retail-inventory/pkg/jwt"
)

const testSecret = "test-secret-32-bytes-long-enough!"

func newAuth(s *memstore.Store) *auth.AuthUseCase {
	return auth.NewAuthUseCase(s, s.Users(), auth.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "retail-inventory"})
}

func registerReq(username string) dto.RegisterRequest {
	return dto.RegisterRequest{
		BusinessName: "Corner Shop",
		Email:        "shop@example.com",
		Username:     username,
		Password:     "secreto123",
	}
}

// El registro crea negocio y propietario, y el token lleva el tenant.
func TestRegister_CreaNegocioYPropietario(t *testing.T) {
	s := memstore.New()
	uc := newAuth(s)

	out, err := uc.Register(context.Background(), registerReq("owner"))
	require.NoError(t, err)

	assert.True(t, out.User.IsOwner)
	assert.True(t, out.User.IsAdmin)

	sess, err := jwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, out.User.ID, sess.UserID)
	assert.Equal(t, out.User.BusinessID, sess.BusinessID)
	assert.True(t, sess.IsOwner)

	b, err := s.Businesses().GetByID(context.Background(), out.User.BusinessID)
	require.NoError(t, err)
	require.NotNil(t, b)
	assert.Equal(t, "Corner Shop", b.Name)
}

// Un username repetido no deja un negocio huérfano.
func TestRegister_UsernameOcupado(t *testing.T) {
	s := memstore.New()
	uc := newAuth(s)
	ctx := context.Background()

	_, err := uc.Register(ctx, registerReq("owner"))
	require.NoError(t, err)

	_, err = uc.Register(ctx, registerReq("owner"))
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)

	all, err := s.Businesses().ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestRegister_Validacion(t *testing.T) {
	uc := newAuth(memstore.New())
	req := registerReq("owner")
	req.Password = "corta"
	_, err := uc.Register(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin(t *testing.T) {
	s := memstore.New()
	uc := newAuth(s)
	ctx := context.Background()
	_, err := uc.Register(ctx, registerReq("owner"))
	require.NoError(t, err)

	out, err := uc.Login(ctx, dto.LoginRequest{Username: " owner ", Password: "secreto123"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)

	// Usuario inexistente y contraseña incorrecta son indistinguibles.
	_, errPass := uc.Login(ctx, dto.LoginRequest{Username: "owner", Password: "incorrecta"})
	_, errUser := uc.Login(ctx, dto.LoginRequest{Username: "nadie", Password: "secreto123"})
	assert.ErrorIs(t, errPass, domain.ErrUnauthorized)
	assert.ErrorIs(t, errUser, domain.ErrUnauthorized)
	assert.Equal(t, errPass.Error(), errUser.Error())
}

func TestMe(t *testing.T) {
	s := memstore.New()
	uc := newAuth(s)
	ctx := context.Background()
	reg, err := uc.Register(ctx, registerReq("owner"))
	require.NoError(t, err)

	tenant := domain.Tenant{BusinessID: reg.User.BusinessID, UserID: reg.User.ID}
	me, err := uc.Me(ctx, tenant)
	require.NoError(t, err)
	assert.Equal(t, "owner", me.Username)

	_, err = uc.Me(ctx, domain.Tenant{BusinessID: reg.User.BusinessID, UserID: "borrado"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
