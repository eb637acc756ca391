package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/retail-inventory/internal/application/dto"
	"github.com/jhoicas/retail-inventory/internal/application/inventory"
	"github.com/jhoicas/retail-inventory/internal/application/usecase"
	"github.com/jhoicas/retail-inventory/internal/domain"
	"github.com/jhoicas/retail-inventory/internal/domain/entity"
	"github.com/jhoicas/retail-inventory/internal/domain/repository"
	"github.com/jhoicas/retail-inventory/pkg/jwt"
)

// JWTConfig configuración para generación de tokens de sesión.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro del negocio, login y sesión actual.
type AuthUseCase struct {
	txRunner inventory.TxRunner
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(txRunner inventory.TxRunner, userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{txRunner: txRunner, userRepo: userRepo, jwtCfg: jwtCfg}
}

// Register crea el negocio y su usuario propietario (admin) en una transacción y abre sesión.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.LoginResponse, error) {
	businessName := strings.TrimSpace(in.BusinessName)
	username := strings.TrimSpace(in.Username)
	switch {
	case businessName == "":
		return nil, domain.NewValidationError("businessName", "es obligatorio")
	case username == "":
		return nil, domain.NewValidationError("username", "es obligatorio")
	case len(in.Password) < 8:
		return nil, domain.NewValidationError("password", "debe tener al menos 8 caracteres")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	business := &entity.Business{
		ID:        uuid.New().String(),
		Name:      businessName,
		Email:     strings.TrimSpace(in.Email),
		CreatedAt: now,
		UpdatedAt: now,
	}
	owner := &entity.StaffUser{
		ID:           uuid.New().String(),
		BusinessID:   business.ID,
		Username:     username,
		PasswordHash: string(hash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		IsAdmin:      true,
		IsOwner:      true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = uc.txRunner.Run(ctx, func(r inventory.TxRepos) error {
		existing, err := r.Users.GetByUsername(ctx, username)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrUsernameTaken
		}
		if err := r.Businesses.Create(ctx, business); err != nil {
			return err
		}
		if err := r.Users.Create(ctx, owner); err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				return domain.ErrUsernameTaken
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.session(owner)
}

// Login verifica username/password y genera el token de sesión.
// Usuario inexistente y contraseña incorrecta devuelven el mismo error.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByUsername(ctx, strings.TrimSpace(in.Username))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	return uc.session(user)
}

// Me devuelve el usuario de la sesión. Si fue eliminado, la sesión deja de ser válida.
func (uc *AuthUseCase) Me(ctx context.Context, tenant domain.Tenant) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, tenant.BusinessID, tenant.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	resp := usecase.ToUserResponse(user)
	return &resp, nil
}

func (uc *AuthUseCase) session(user *entity.StaffUser) (*dto.LoginResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes, jwt.Session{
		UserID:     user.ID,
		BusinessID: user.BusinessID,
		IsAdmin:    user.IsAdmin,
		IsOwner:    user.IsOwner,
	})
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: usecase.ToUserResponse(user)}, nil
}
