package memstore

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/retail-inventory/internal/domain"
	"github.com/jhoicas/retail-inventory/internal/domain/entity"
)

// SeedBusiness crea un negocio y devuelve el tenant de su propietario.
func (s *Store) SeedBusiness(name string) domain.Tenant {
	now := time.Now()
	b := entity.Business{ID: uuid.New().String(), Name: name, CreatedAt: now, UpdatedAt: now}
	owner := entity.StaffUser{
		ID: uuid.New().String(), BusinessID: b.ID, Username: "owner-" + b.ID[:8],
		IsAdmin: true, IsOwner: true, CreatedAt: now, UpdatedAt: now,
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.businesses[b.ID] = b
	s.data.users[owner.ID] = owner
	return domain.Tenant{BusinessID: b.ID, UserID: owner.ID, IsAdmin: true, IsOwner: true}
}

// SeedLocation crea una ubicación vacía.
func (s *Store) SeedLocation(businessID, name string, capacity int64) entity.Location {
	now := time.Now()
	l := entity.Location{
		ID: uuid.New().String(), BusinessID: businessID, Name: name, Code: name,
		CapacityRSU: decimal.NewFromInt(capacity), CurrentRSUUsage: decimal.Zero,
		CreatedAt: now, UpdatedAt: now,
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.locations[l.ID] = l
	return l
}

// SeedCategory crea una categoría.
func (s *Store) SeedCategory(businessID, name string) entity.Category {
	now := time.Now()
	c := entity.Category{ID: uuid.New().String(), BusinessID: businessID, Name: name, CreatedAt: now, UpdatedAt: now}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.categories[c.ID] = c
	return c
}

// SeedCatalog crea un producto del catálogo global.
func (s *Store) SeedCatalog(name, barcode string) entity.CatalogProduct {
	p := entity.CatalogProduct{ID: uuid.New().String(), Name: name, Barcode: barcode, CreatedAt: time.Now()}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.catalog[p.ID] = p
	return p
}

// Usage ocupación actual de una ubicación.
func (s *Store) Usage(locationID string) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.locations[locationID].CurrentRSUUsage
}

// Quantity cantidad confirmada de un artículo en una ubicación; -1 si no hay fila.
func (s *Store) Quantity(locationID, itemID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	il, ok := s.data.itemLocs[ilKey{locationID, itemID}]
	if !ok {
		return -1
	}
	return il.Quantity
}

// ExpectedUsage recalcula Σ(cantidad × RSU) de una ubicación desde el libro.
func (s *Store) ExpectedUsage(locationID string) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := decimal.Zero
	for k, il := range s.data.itemLocs {
		if k.locationID != locationID {
			continue
		}
		it := s.data.items[k.itemID]
		total = total.Add(decimal.NewFromInt(int64(il.Quantity)).Mul(it.RSUValue))
	}
	return total
}

// Counts número de productos del catálogo, artículos y filas artículo-ubicación confirmados.
func (s *Store) Counts() (catalog, items, itemLocations int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.data.catalog), len(s.data.items), len(s.data.itemLocs)
}
