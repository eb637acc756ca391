package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jhoicas/retail-inventory/internal/application/dto"
	"github.com/jhoicas/retail-inventory/internal/application/inventory"
	"github.com/jhoicas/retail-inventory/internal/application/ports"
	"github.com/jhoicas/retail-inventory/internal/domain"
	"github.com/jhoicas/retail-inventory/internal/domain/entity"
	domaininv "github.com/jhoicas/retail-inventory/internal/domain/inventory"
	"github.com/jhoicas/retail-inventory/internal/domain/repository"
)

// LocationUseCase casos de uso CRUD para ubicaciones. CurrentRSUUsage nunca se edita aquí:
// lo mantienen las escrituras de cantidades.
type LocationUseCase struct {
	txRunner    inventory.TxRunner
	repo        repository.LocationRepository
	itemLocRepo repository.ItemLocationRepository
	images      ports.ImageStore
}

// NewLocationUseCase construye el caso de uso. images puede ser nil si no se admiten subidas.
func NewLocationUseCase(
	txRunner inventory.TxRunner,
	repo repository.LocationRepository,
	itemLocRepo repository.ItemLocationRepository,
	images ports.ImageStore,
) *LocationUseCase {
	return &LocationUseCase{txRunner: txRunner, repo: repo, itemLocRepo: itemLocRepo, images: images}
}

// DeriveLocationCode genera un código a partir del nombre: "Back Room 2" -> "BACK-ROOM-2".
func DeriveLocationCode(name string) string {
	return cases.Upper(language.Und).String(slug.Make(name))
}

// Create crea una ubicación con ocupación cero. Nombre y código son únicos por negocio.
func (uc *LocationUseCase) Create(ctx context.Context, tenant domain.Tenant, in dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewValidationError("name", "es obligatorio")
	}
	code := strings.TrimSpace(in.Code)
	if code == "" {
		code = DeriveLocationCode(name)
	}
	if code == "" {
		return nil, domain.NewValidationError("code", "no se pudo derivar del nombre")
	}
	if in.CapacityRSU.IsNegative() {
		return nil, domain.NewValidationError("capacityRsu", "no puede ser negativa")
	}
	if err := uc.checkUnique(ctx, tenant.BusinessID, "", name, code); err != nil {
		return nil, err
	}

	now := time.Now()
	loc := &entity.Location{
		ID:              uuid.New().String(),
		BusinessID:      tenant.BusinessID,
		Name:            name,
		Code:            code,
		Description:     in.Description,
		ImageURL:        in.ImageURL,
		CapacityRSU:     in.CapacityRSU,
		CurrentRSUUsage: decimal.Zero,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(ctx, loc); err != nil {
		return nil, err
	}
	return ToLocationResponse(loc), nil
}

// Get obtiene una ubicación con los artículos que contiene.
func (uc *LocationUseCase) Get(ctx context.Context, tenant domain.Tenant, id string) (*dto.LocationDetailResponse, error) {
	loc, err := uc.repo.GetByID(ctx, tenant.BusinessID, id)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, domain.ErrNotFound
	}
	rows, err := uc.itemLocRepo.ListByLocation(ctx, loc.ID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LocationStockItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.LocationStockItem{ItemID: r.ItemID, Name: r.Name, SKU: r.SKU, Quantity: r.Quantity})
	}
	return &dto.LocationDetailResponse{LocationResponse: *ToLocationResponse(loc), Items: items}, nil
}

// List lista las ubicaciones del negocio con utilización y estado.
func (uc *LocationUseCase) List(ctx context.Context, tenant domain.Tenant) ([]dto.LocationResponse, error) {
	list, err := uc.repo.ListByBusiness(ctx, tenant.BusinessID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LocationResponse, 0, len(list))
	for _, l := range list {
		out = append(out, *ToLocationResponse(l))
	}
	return out, nil
}

// Update actualiza datos descriptivos y capacidad.
func (uc *LocationUseCase) Update(ctx context.Context, tenant domain.Tenant, id string, in dto.UpdateLocationRequest) (*dto.LocationResponse, error) {
	loc, err := uc.repo.GetByID(ctx, tenant.BusinessID, id)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.NewValidationError("name", "no puede estar vacío")
		}
		loc.Name = name
	}
	if in.Code != nil {
		code := strings.TrimSpace(*in.Code)
		if code == "" {
			return nil, domain.NewValidationError("code", "no puede estar vacío")
		}
		loc.Code = code
	}
	if in.CapacityRSU != nil {
		if in.CapacityRSU.IsNegative() {
			return nil, domain.NewValidationError("capacityRsu", "no puede ser negativa")
		}
		loc.CapacityRSU = *in.CapacityRSU
	}
	if in.Description != nil {
		loc.Description = *in.Description
	}
	if in.ImageURL != nil {
		loc.ImageURL = *in.ImageURL
	}
	if err := uc.checkUnique(ctx, tenant.BusinessID, loc.ID, loc.Name, loc.Code); err != nil {
		return nil, err
	}
	loc.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, loc); err != nil {
		return nil, err
	}
	return ToLocationResponse(loc), nil
}

// Delete elimina la ubicación si ninguna fila artículo-ubicación la referencia.
func (uc *LocationUseCase) Delete(ctx context.Context, tenant domain.Tenant, id string) error {
	return uc.txRunner.Run(ctx, func(r inventory.TxRepos) error {
		loc, err := r.Locations.GetForUpdate(ctx, tenant.BusinessID, id)
		if err != nil {
			return err
		}
		if loc == nil {
			return domain.ErrNotFound
		}
		n, err := r.ItemLocations.CountByLocation(ctx, loc.ID)
		if err != nil {
			return err
		}
		if n > 0 {
			return domain.ErrLocationNotEmpty
		}
		return r.Locations.Delete(ctx, tenant.BusinessID, loc.ID)
	})
}

// UploadImage guarda la imagen de una ubicación y devuelve su URL.
func (uc *LocationUseCase) UploadImage(ctx context.Context, data []byte) (*dto.UploadImageResponse, error) {
	if uc.images == nil {
		return nil, domain.ErrForbidden
	}
	if len(data) == 0 {
		return nil, domain.NewValidationError("image", "archivo vacío")
	}
	url, err := uc.images.Save(ctx, data)
	if err != nil {
		return nil, err
	}
	return &dto.UploadImageResponse{ImageURL: url}, nil
}

// checkUnique verifica nombre y código únicos en el negocio, excluyendo la propia ubicación.
func (uc *LocationUseCase) checkUnique(ctx context.Context, businessID, selfID, name, code string) error {
	byName, err := uc.repo.GetByName(ctx, businessID, name)
	if err != nil {
		return err
	}
	if byName != nil && byName.ID != selfID {
		return domain.ErrDuplicateName
	}
	byCode, err := uc.repo.GetByCode(ctx, businessID, code)
	if err != nil {
		return err
	}
	if byCode != nil && byCode.ID != selfID {
		return domain.ErrDuplicateName
	}
	return nil
}

// ToLocationResponse calcula disponibilidad, porcentaje y estado con los umbrales comunes.
func ToLocationResponse(l *entity.Location) *dto.LocationResponse {
	pct, status := domaininv.Utilisation(l.CurrentRSUUsage, l.CapacityRSU)
	return &dto.LocationResponse{
		ID:              l.ID,
		Name:            l.Name,
		Code:            l.Code,
		Description:     l.Description,
		ImageURL:        l.ImageURL,
		CapacityRSU:     l.CapacityRSU,
		CurrentRSUUsage: l.CurrentRSUUsage,
		AvailableRSU:    domaininv.Available(l.CurrentRSUUsage, l.CapacityRSU),
		UtilisationPct:  pct,
		Status:          status,
		StatusColor:     domaininv.StatusColor(status),
		CreatedAt:       l.CreatedAt,
		UpdatedAt:       l.UpdatedAt,
	}
}
