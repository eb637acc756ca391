package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/retail-inventory/internal/application/dto"
	"github.com/jhoicas/retail-inventory/internal/domain"
	"github.com/jhoicas/retail-inventory/internal/domain/entity"
	"github.com/jhoicas/retail-inventory/internal/domain/inventory"
	"github.com/jhoicas/retail-inventory/internal/domain/repository"
)

// ItemUseCase alta, edición, consulta y baja de artículos del negocio.
// Toda escritura que cambie cantidades o RSUValue ajusta Location.CurrentRSUUsage en la misma transacción.
type ItemUseCase struct {
	txRunner     TxRunner
	itemRepo     repository.BusinessItemRepository
	catalogRepo  repository.CatalogRepository
	categoryRepo repository.CategoryRepository
	itemLocRepo  repository.ItemLocationRepository
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(
	txRunner TxRunner,
	itemRepo repository.BusinessItemRepository,
	catalogRepo repository.CatalogRepository,
	categoryRepo repository.CategoryRepository,
	itemLocRepo repository.ItemLocationRepository,
) *ItemUseCase {
	return &ItemUseCase{
		txRunner:     txRunner,
		itemRepo:     itemRepo,
		catalogRepo:  catalogRepo,
		categoryRepo: categoryRepo,
		itemLocRepo:  itemLocRepo,
	}
}

// Create resuelve el producto del catálogo (nuevo o existente), reutiliza o crea el artículo del negocio,
// rechaza una asignación duplicada a la ubicación, fija la cantidad inicial y suma cantidad × RSU a la ubicación.
// Todo en una sola transacción: si algo falla no queda ni el producto del catálogo creado.
func (uc *ItemUseCase) Create(ctx context.Context, tenant domain.Tenant, in dto.CreateItemRequest) (*dto.CreateItemResponse, error) {
	if err := validateCreateItem(in); err != nil {
		return nil, err
	}
	now := time.Now()
	var out *dto.CreateItemResponse

	err := uc.txRunner.Run(ctx, func(r TxRepos) error {
		// 1. Producto del catálogo
		catalog, err := resolveCatalog(ctx, r.Catalog, in, now)
		if err != nil {
			return err
		}

		// 2. Un único artículo por (negocio, producto del catálogo). Si existe se bloquea en modo
		// compartido antes que la ubicación: su RSU no puede cambiar hasta el commit.
		item, err := r.Items.GetByCatalog(ctx, tenant.BusinessID, catalog.ID)
		if err != nil {
			return err
		}
		if item != nil {
			if item, err = r.Items.GetForShare(ctx, tenant.BusinessID, item.ID); err != nil {
				return err
			}
		}

		// 3. Ubicación bloqueada hasta el commit
		loc, err := r.Locations.GetForUpdate(ctx, tenant.BusinessID, in.LocationID)
		if err != nil {
			return err
		}
		if loc == nil {
			return domain.ErrInvalidReference
		}

		// 4. La categoría solo se valida al crear el artículo; uno reutilizado conserva la suya
		reused := item != nil
		if !reused {
			categoryID, err := checkCategory(ctx, r.Categories, tenant.BusinessID, in.CategoryID)
			if err != nil {
				return err
			}
			name := strings.TrimSpace(in.Name)
			if name == "" {
				name = catalog.Name
			}
			item = &entity.BusinessItem{
				ID:            uuid.New().String(),
				BusinessID:    tenant.BusinessID,
				CatalogID:     catalog.ID,
				CategoryID:    categoryID,
				Name:          name,
				SKU:           strings.TrimSpace(in.SKU),
				UnitPrice:     in.UnitPrice,
				CostPrice:     in.CostPrice,
				RSUValue:      in.RSUValue,
				MinStockLevel: in.MinStockLevel,
				ImageURL:      in.ImageURL,
				CreatedAt:     now,
				UpdatedAt:     now,
			}
			if err := r.Items.Create(ctx, item); err != nil {
				return err
			}
		}

		// 5. La cantidad en una ubicación que ya tiene el artículo se cambia con el conteo de stock
		existing, err := r.ItemLocations.Get(ctx, loc.ID, item.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicateLocationAssignment
		}

		// 6. Cantidad inicial y ocupación
		if err := r.ItemLocations.Upsert(ctx, &entity.ItemLocation{
			LocationID: loc.ID,
			ItemID:     item.ID,
			Quantity:   in.Quantity,
			UpdatedAt:  now,
		}); err != nil {
			return err
		}
		delta := inventory.Usage(in.Quantity, item.RSUValue)
		if !delta.IsZero() {
			if err := r.Locations.AddUsage(ctx, loc.ID, delta); err != nil {
				return err
			}
		}

		out = &dto.CreateItemResponse{
			ItemID:          item.ID,
			CatalogID:       catalog.ID,
			LocationID:      loc.ID,
			Quantity:        in.Quantity,
			ReusedItem:      reused,
			CurrentRSUUsage: loc.CurrentRSUUsage.Add(delta),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Get obtiene un artículo del negocio con sus ubicaciones.
func (uc *ItemUseCase) Get(ctx context.Context, tenant domain.Tenant, id string) (*dto.ItemResponse, error) {
	item, err := uc.itemRepo.GetByID(ctx, tenant.BusinessID, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	catalog, err := uc.catalogRepo.GetByID(ctx, item.CatalogID)
	if err != nil {
		return nil, err
	}
	var categoryName *string
	if item.CategoryID != nil {
		cat, err := uc.categoryRepo.GetByID(ctx, tenant.BusinessID, *item.CategoryID)
		if err != nil {
			return nil, err
		}
		if cat != nil {
			categoryName = &cat.Name
		}
	}
	placements, err := uc.itemLocRepo.ListByItem(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	return toItemResponse(item, catalog, categoryName, placements), nil
}

// Update edita los campos del artículo. Si cambia RSUValue, cada ubicación que lo almacena
// recibe cantidad × (nuevo − anterior) en la misma transacción.
func (uc *ItemUseCase) Update(ctx context.Context, tenant domain.Tenant, id string, in dto.UpdateItemRequest) (*dto.ItemResponse, error) {
	if err := validateUpdateItem(in); err != nil {
		return nil, err
	}
	err := uc.txRunner.Run(ctx, func(r TxRepos) error {
		item, err := r.Items.GetForUpdate(ctx, tenant.BusinessID, id)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		oldRSU := item.RSUValue

		if in.Name != nil {
			item.Name = strings.TrimSpace(*in.Name)
		}
		if in.SKU != nil {
			item.SKU = strings.TrimSpace(*in.SKU)
		}
		if in.CategoryID != nil {
			item.CategoryID, err = checkCategory(ctx, r.Categories, tenant.BusinessID, in.CategoryID)
			if err != nil {
				return err
			}
		}
		if in.MinStockLevel != nil {
			item.MinStockLevel = *in.MinStockLevel
		}
		if in.RSUValue != nil {
			item.RSUValue = *in.RSUValue
		}
		if in.CostPrice != nil {
			item.CostPrice = *in.CostPrice
		}
		if in.UnitPrice != nil {
			item.UnitPrice = *in.UnitPrice
		}
		if in.ImageURL != nil {
			item.ImageURL = *in.ImageURL
		}
		item.UpdatedAt = time.Now()

		if !item.RSUValue.Equal(oldRSU) {
			placements, err := r.ItemLocations.ListByItem(ctx, item.ID)
			if err != nil {
				return err
			}
			diff := item.RSUValue.Sub(oldRSU)
			for _, p := range placements {
				if p.Quantity == 0 {
					continue
				}
				if err := r.Locations.AddUsage(ctx, p.LocationID, inventory.Usage(p.Quantity, diff)); err != nil {
					return err
				}
			}
		}
		return r.Items.Update(ctx, item)
	})
	if err != nil {
		return nil, err
	}
	return uc.Get(ctx, tenant, id)
}

// Delete elimina el artículo y sus filas de ubicación, restando su ocupación de cada ubicación.
func (uc *ItemUseCase) Delete(ctx context.Context, tenant domain.Tenant, id string) error {
	return uc.txRunner.Run(ctx, func(r TxRepos) error {
		item, err := r.Items.GetForUpdate(ctx, tenant.BusinessID, id)
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}
		placements, err := r.ItemLocations.ListByItem(ctx, item.ID)
		if err != nil {
			return err
		}
		for _, p := range placements {
			usage := inventory.Usage(p.Quantity, item.RSUValue)
			if usage.IsZero() {
				continue
			}
			if err := r.Locations.AddUsage(ctx, p.LocationID, usage.Neg()); err != nil {
				return err
			}
		}
		if err := r.ItemLocations.DeleteByItem(ctx, item.ID); err != nil {
			return err
		}
		return r.Items.Delete(ctx, tenant.BusinessID, item.ID)
	})
}

// resolveCatalog crea el producto del catálogo o verifica que el indicado exista.
func resolveCatalog(ctx context.Context, repo repository.CatalogRepository, in dto.CreateItemRequest, now time.Time) (*entity.CatalogProduct, error) {
	if in.IsNewCatalogItem {
		product := &entity.CatalogProduct{
			ID:          uuid.New().String(),
			Name:        strings.TrimSpace(in.Name),
			Barcode:     strings.TrimSpace(in.Barcode),
			Description: in.Description,
			PackSize:    in.PackSize,
			CreatedAt:   now,
		}
		if err := repo.Create(ctx, product); err != nil {
			return nil, fmt.Errorf("crear producto del catálogo: %w", err)
		}
		return product, nil
	}
	product, err := repo.GetByID(ctx, in.CatalogID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrInvalidReference
	}
	return product, nil
}

// checkCategory valida que la categoría pertenezca al negocio. nil o "" significa sin categoría.
func checkCategory(ctx context.Context, repo repository.CategoryRepository, businessID string, categoryID *string) (*string, error) {
	if categoryID == nil || *categoryID == "" {
		return nil, nil
	}
	cat, err := repo.GetByID(ctx, businessID, *categoryID)
	if err != nil {
		return nil, err
	}
	if cat == nil {
		return nil, domain.ErrInvalidReference
	}
	id := cat.ID
	return &id, nil
}

func validateCreateItem(in dto.CreateItemRequest) error {
	if strings.TrimSpace(in.LocationID) == "" {
		return domain.NewValidationError("locationId", "es obligatorio")
	}
	if in.IsNewCatalogItem {
		if strings.TrimSpace(in.Name) == "" {
			return domain.NewValidationError("name", "es obligatorio para un producto nuevo")
		}
	} else if strings.TrimSpace(in.CatalogID) == "" {
		return domain.NewValidationError("catalogId", "es obligatorio si el producto ya existe en el catálogo")
	}
	if in.Quantity < 0 {
		return domain.NewValidationError("quantity", "no puede ser negativa")
	}
	if in.MinStockLevel < 0 {
		return domain.NewValidationError("minStockLevel", "no puede ser negativo")
	}
	return validateAmounts(&in.RSUValue, &in.CostPrice, &in.UnitPrice)
}

func validateUpdateItem(in dto.UpdateItemRequest) error {
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return domain.NewValidationError("name", "no puede estar vacío")
	}
	if in.MinStockLevel != nil && *in.MinStockLevel < 0 {
		return domain.NewValidationError("minStockLevel", "no puede ser negativo")
	}
	return validateAmounts(in.RSUValue, in.CostPrice, in.UnitPrice)
}

func validateAmounts(rsu, cost, price *decimal.Decimal) error {
	if rsu != nil && rsu.IsNegative() {
		return domain.NewValidationError("rsuValue", "no puede ser negativo")
	}
	if cost != nil && cost.IsNegative() {
		return domain.NewValidationError("costPrice", "no puede ser negativo")
	}
	if price != nil && price.IsNegative() {
		return domain.NewValidationError("unitPrice", "no puede ser negativo")
	}
	return nil
}

func toItemResponse(item *entity.BusinessItem, catalog *entity.CatalogProduct, categoryName *string, placements []repository.ItemPlacement) *dto.ItemResponse {
	resp := &dto.ItemResponse{
		ID:            item.ID,
		CatalogID:     item.CatalogID,
		Name:          item.Name,
		SKU:           item.SKU,
		CategoryID:    item.CategoryID,
		CategoryName:  categoryName,
		UnitPrice:     item.UnitPrice,
		CostPrice:     item.CostPrice,
		RSUValue:      item.RSUValue,
		MinStockLevel: item.MinStockLevel,
		ImageURL:      item.ImageURL,
		Locations:     make([]dto.ItemLocationDTO, 0, len(placements)),
		CreatedAt:     item.CreatedAt,
		UpdatedAt:     item.UpdatedAt,
	}
	if catalog != nil {
		resp.Barcode = catalog.Barcode
	}
	for _, p := range placements {
		resp.Quantity += p.Quantity
		resp.Locations = append(resp.Locations, dto.ItemLocationDTO{
			LocationID: p.LocationID,
			Name:       p.LocationName,
			Code:       p.LocationCode,
			Quantity:   p.Quantity,
		})
	}
	return resp
}
