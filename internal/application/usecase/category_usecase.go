package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/retail-inventory/internal/application/dto"
	"github.com/jhoicas/retail-inventory/internal/domain"
	"github.com/jhoicas/retail-inventory/internal/domain/entity"
	"github.com/jhoicas/retail-inventory/internal/domain/repository"
)

// CategoryUseCase casos de uso CRUD para categorías.
type CategoryUseCase struct {
	repo     repository.CategoryRepository
	itemRepo repository.BusinessItemRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository, itemRepo repository.BusinessItemRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, itemRepo: itemRepo}
}

// Create crea una categoría. El nombre es único por negocio.
func (uc *CategoryUseCase) Create(ctx context.Context, tenant domain.Tenant, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewValidationError("name", "es obligatorio")
	}
	existing, err := uc.repo.GetByName(ctx, tenant.BusinessID, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicateName
	}
	now := time.Now()
	cat := &entity.Category{
		ID:          uuid.New().String(),
		BusinessID:  tenant.BusinessID,
		Name:        name,
		Description: in.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, cat); err != nil {
		return nil, err
	}
	return toCategoryResponse(cat), nil
}

// List lista las categorías del negocio.
func (uc *CategoryUseCase) List(ctx context.Context, tenant domain.Tenant) ([]dto.CategoryResponse, error) {
	list, err := uc.repo.ListByBusiness(ctx, tenant.BusinessID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *toCategoryResponse(c))
	}
	return out, nil
}

// Update actualiza nombre y descripción.
func (uc *CategoryUseCase) Update(ctx context.Context, tenant domain.Tenant, id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	cat, err := uc.repo.GetByID(ctx, tenant.BusinessID, id)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.NewValidationError("name", "no puede estar vacío")
		}
		other, err := uc.repo.GetByName(ctx, tenant.BusinessID, name)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != cat.ID {
			return nil, domain.ErrDuplicateName
		}
		cat.Name = name
	}
	if in.Description != nil {
		cat.Description = *in.Description
	}
	cat.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, cat); err != nil {
		return nil, err
	}
	return toCategoryResponse(cat), nil
}

// Delete elimina la categoría. Falla con ErrCategoryInUse si algún artículo la usa.
func (uc *CategoryUseCase) Delete(ctx context.Context, tenant domain.Tenant, id string) error {
	cat, err := uc.repo.GetByID(ctx, tenant.BusinessID, id)
	if err != nil {
		return err
	}
	if cat == nil {
		return domain.ErrNotFound
	}
	n, err := uc.itemRepo.CountByCategory(ctx, tenant.BusinessID, cat.ID)
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrCategoryInUse
	}
	return uc.repo.Delete(ctx, tenant.BusinessID, cat.ID)
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
