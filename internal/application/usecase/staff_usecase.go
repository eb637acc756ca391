package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/retail-inventory/internal/application/dto"
	"github.com/jhoicas/retail-inventory/internal/domain"
	"github.com/jhoicas/retail-inventory/internal/domain/entity"
	"github.com/jhoicas/retail-inventory/internal/domain/repository"
)

// StaffUseCase gestión de usuarios del negocio (solo administradores).
// El propietario no puede eliminarse ni perder el rol de administrador.
type StaffUseCase struct {
	repo repository.UserRepository
}

// NewStaffUseCase construye el caso de uso.
func NewStaffUseCase(repo repository.UserRepository) *StaffUseCase {
	return &StaffUseCase{repo: repo}
}

// List lista los usuarios del negocio.
func (uc *StaffUseCase) List(ctx context.Context, tenant domain.Tenant) ([]dto.UserResponse, error) {
	list, err := uc.repo.ListByBusiness(ctx, tenant.BusinessID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, ToUserResponse(u))
	}
	return out, nil
}

// Create crea un usuario del negocio. El username es único en todo el sistema.
func (uc *StaffUseCase) Create(ctx context.Context, tenant domain.Tenant, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" {
		return nil, domain.NewValidationError("username", "es obligatorio")
	}
	if len(in.Password) < 8 {
		return nil, domain.NewValidationError("password", "debe tener al menos 8 caracteres")
	}
	existing, err := uc.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrUsernameTaken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.StaffUser{
		ID:           uuid.New().String(),
		BusinessID:   tenant.BusinessID,
		Username:     username,
		PasswordHash: string(hash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		IsAdmin:      in.IsAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// Update edita nombre, rol de administrador y contraseña.
func (uc *StaffUseCase) Update(ctx context.Context, tenant domain.Tenant, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, tenant.BusinessID, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	if in.IsAdmin != nil {
		if user.IsOwner && !*in.IsAdmin {
			return nil, domain.ErrOwnerProtected
		}
		user.IsAdmin = *in.IsAdmin
	}
	if in.FirstName != nil {
		user.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		user.LastName = *in.LastName
	}
	if in.Password != nil && *in.Password != "" {
		if len(*in.Password) < 8 {
			return nil, domain.NewValidationError("password", "debe tener al menos 8 caracteres")
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	resp := ToUserResponse(user)
	return &resp, nil
}

// Delete elimina un usuario. No se permite eliminar al propietario ni a uno mismo.
func (uc *StaffUseCase) Delete(ctx context.Context, tenant domain.Tenant, id string) error {
	user, err := uc.repo.GetByID(ctx, tenant.BusinessID, id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotFound
	}
	if user.IsOwner {
		return domain.ErrOwnerProtected
	}
	if user.ID == tenant.UserID {
		return domain.ErrConflict
	}
	return uc.repo.Delete(ctx, tenant.BusinessID, user.ID)
}

// ToUserResponse proyección pública del usuario (sin hash).
func ToUserResponse(u *entity.StaffUser) dto.UserResponse {
	return dto.UserResponse{
		ID:         u.ID,
		BusinessID: u.BusinessID,
		Username:   u.Username,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		IsAdmin:    u.IsAdmin,
		IsOwner:    u.IsOwner,
		CreatedAt:  u.CreatedAt,
	}
}
