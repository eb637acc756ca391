package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/retail-inventory/internal/application/dto"
	"github.com/jhoicas/retail-inventory/internal/domain"
	"github.com/jhoicas/retail-inventory/internal/domain/entity"
	"github.com/jhoicas/retail-inventory/internal/domain/repository"
)

// BusinessUseCase consulta y edición de los datos del negocio.
type BusinessUseCase struct {
	repo repository.BusinessRepository
}

// NewBusinessUseCase construye el caso de uso.
func NewBusinessUseCase(repo repository.BusinessRepository) *BusinessUseCase {
	return &BusinessUseCase{repo: repo}
}

// Get obtiene el negocio de la sesión.
func (uc *BusinessUseCase) Get(ctx context.Context, tenant domain.Tenant) (*dto.BusinessResponse, error) {
	b, err := uc.repo.GetByID(ctx, tenant.BusinessID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	return toBusinessResponse(b), nil
}

// Update actualiza los campos enviados.
func (uc *BusinessUseCase) Update(ctx context.Context, tenant domain.Tenant, in dto.UpdateBusinessRequest) (*dto.BusinessResponse, error) {
	b, err := uc.repo.GetByID(ctx, tenant.BusinessID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.NewValidationError("name", "no puede estar vacío")
		}
		b.Name = name
	}
	setIf(&b.Email, in.Email)
	setIf(&b.AddressLine1, in.AddressLine1)
	setIf(&b.AddressLine2, in.AddressLine2)
	setIf(&b.City, in.City)
	setIf(&b.Postcode, in.Postcode)
	setIf(&b.Country, in.Country)
	setIf(&b.RSUReferenceDescription, in.RSUReferenceDescription)
	b.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return toBusinessResponse(b), nil
}

func setIf(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

func toBusinessResponse(b *entity.Business) *dto.BusinessResponse {
	return &dto.BusinessResponse{
		ID:                      b.ID,
		Name:                    b.Name,
		Email:                   b.Email,
		AddressLine1:            b.AddressLine1,
		AddressLine2:            b.AddressLine2,
		City:                    b.City,
		Postcode:                b.Postcode,
		Country:                 b.Country,
		RSUReferenceDescription: b.RSUReferenceDescription,
		UpdatedAt:               b.UpdatedAt,
	}
}
