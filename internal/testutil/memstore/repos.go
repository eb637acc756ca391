package memstore

import (
	"context"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/retail-inventory/internal/domain"
	"github.com/jhoicas/retail-inventory/internal/domain/entity"
	"github.com/jhoicas/retail-inventory/internal/domain/repository"
)

var (
	_ repository.CatalogRepository      = CatalogRepo{}
	_ repository.BusinessItemRepository = ItemRepo{}
	_ repository.LocationRepository     = LocationRepo{}
	_ repository.ItemLocationRepository = ItemLocationRepo{}
	_ repository.CategoryRepository     = CategoryRepo{}
	_ repository.BusinessRepository     = BusinessRepo{}
	_ repository.UserRepository         = UserRepo{}
)

// ── Catálogo ───────────────────────────────────────────────────────────────

type CatalogRepo struct{ sc scope }

func (r CatalogRepo) Create(_ context.Context, p *entity.CatalogProduct) error {
	return r.sc.do("Catalog.Create", func(st *state) error {
		st.catalog[p.ID] = *p
		return nil
	})
}

func (r CatalogRepo) GetByID(_ context.Context, id string) (out *entity.CatalogProduct, err error) {
	err = r.sc.do("Catalog.GetByID", func(st *state) error {
		if p, ok := st.catalog[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

// ── Artículos del negocio ─────────────────────────────────────────────────

type ItemRepo struct{ sc scope }

func (r ItemRepo) Create(_ context.Context, it *entity.BusinessItem) error {
	return r.sc.do("Items.Create", func(st *state) error {
		for _, other := range st.items {
			if other.BusinessID == it.BusinessID && other.CatalogID == it.CatalogID {
				return domain.ErrDuplicate
			}
		}
		st.items[it.ID] = *it
		return nil
	})
}

func (r ItemRepo) GetByID(_ context.Context, businessID, id string) (out *entity.BusinessItem, err error) {
	err = r.sc.do("Items.GetByID", func(st *state) error {
		if it, ok := st.items[id]; ok && it.BusinessID == businessID {
			out = &it
		}
		return nil
	})
	return out, err
}

func (r ItemRepo) GetForUpdate(ctx context.Context, businessID, id string) (*entity.BusinessItem, error) {
	r.sc.lock("item", "update", id)
	return r.GetByID(ctx, businessID, id)
}

func (r ItemRepo) GetForShare(ctx context.Context, businessID, id string) (*entity.BusinessItem, error) {
	r.sc.lock("item", "share", id)
	return r.GetByID(ctx, businessID, id)
}

func (r ItemRepo) GetByCatalog(_ context.Context, businessID, catalogID string) (out *entity.BusinessItem, err error) {
	err = r.sc.do("Items.GetByCatalog", func(st *state) error {
		for _, it := range st.items {
			if it.BusinessID == businessID && it.CatalogID == catalogID {
				it := it
				out = &it
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r ItemRepo) Update(_ context.Context, it *entity.BusinessItem) error {
	return r.sc.do("Items.Update", func(st *state) error {
		if _, ok := st.items[it.ID]; ok {
			st.items[it.ID] = *it
		}
		return nil
	})
}

func (r ItemRepo) Delete(_ context.Context, businessID, id string) error {
	return r.sc.do("Items.Delete", func(st *state) error {
		if it, ok := st.items[id]; ok && it.BusinessID == businessID {
			delete(st.items, id)
		}
		return nil
	})
}

func (r ItemRepo) CountByCategory(_ context.Context, businessID, categoryID string) (n int, err error) {
	err = r.sc.do("Items.CountByCategory", func(st *state) error {
		for _, it := range st.items {
			if it.BusinessID == businessID && it.CategoryID != nil && *it.CategoryID == categoryID {
				n++
			}
		}
		return nil
	})
	return n, err
}

// ── Ubicaciones ───────────────────────────────────────────────────────────

type LocationRepo struct{ sc scope }

func uniqueLocation(st *state, l *entity.Location) error {
	for _, other := range st.locations {
		if other.ID == l.ID || other.BusinessID != l.BusinessID {
			continue
		}
		if strings.EqualFold(other.Name, l.Name) || strings.EqualFold(other.Code, l.Code) {
			return domain.ErrDuplicateName
		}
	}
	return nil
}

func (r LocationRepo) Create(_ context.Context, l *entity.Location) error {
	return r.sc.do("Locations.Create", func(st *state) error {
		if err := uniqueLocation(st, l); err != nil {
			return err
		}
		st.locations[l.ID] = *l
		return nil
	})
}

func (r LocationRepo) GetByID(_ context.Context, businessID, id string) (out *entity.Location, err error) {
	err = r.sc.do("Locations.GetByID", func(st *state) error {
		if l, ok := st.locations[id]; ok && l.BusinessID == businessID {
			out = &l
		}
		return nil
	})
	return out, err
}

func (r LocationRepo) GetForUpdate(_ context.Context, businessID, id string) (out *entity.Location, err error) {
	r.sc.lock("location", "update", id)
	err = r.sc.do("Locations.GetForUpdate", func(st *state) error {
		if l, ok := st.locations[id]; ok && l.BusinessID == businessID {
			out = &l
		}
		return nil
	})
	return out, err
}

func (r LocationRepo) find(op, businessID string, match func(entity.Location) bool) (out *entity.Location, err error) {
	err = r.sc.do(op, func(st *state) error {
		for _, l := range st.locations {
			if l.BusinessID == businessID && match(l) {
				l := l
				out = &l
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r LocationRepo) GetByName(_ context.Context, businessID, name string) (*entity.Location, error) {
	return r.find("Locations.GetByName", businessID, func(l entity.Location) bool { return strings.EqualFold(l.Name, name) })
}

func (r LocationRepo) GetByCode(_ context.Context, businessID, code string) (*entity.Location, error) {
	return r.find("Locations.GetByCode", businessID, func(l entity.Location) bool { return strings.EqualFold(l.Code, code) })
}

func (r LocationRepo) ListByBusiness(_ context.Context, businessID string) (out []*entity.Location, err error) {
	err = r.sc.do("Locations.ListByBusiness", func(st *state) error {
		for _, l := range st.locations {
			if l.BusinessID == businessID {
				l := l
				out = append(out, &l)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name) })
	return out, err
}

// Update no toca CurrentRSUUsage.
func (r LocationRepo) Update(_ context.Context, l *entity.Location) error {
	return r.sc.do("Locations.Update", func(st *state) error {
		cur, ok := st.locations[l.ID]
		if !ok || cur.BusinessID != l.BusinessID {
			return nil
		}
		if err := uniqueLocation(st, l); err != nil {
			return err
		}
		next := *l
		next.CurrentRSUUsage = cur.CurrentRSUUsage
		st.locations[l.ID] = next
		return nil
	})
}

func (r LocationRepo) AddUsage(_ context.Context, locationID string, delta decimal.Decimal) error {
	return r.sc.do("Locations.AddUsage", func(st *state) error {
		l, ok := st.locations[locationID]
		if !ok {
			return domain.ErrNotFound
		}
		l.CurrentRSUUsage = l.CurrentRSUUsage.Add(delta)
		st.locations[locationID] = l
		return nil
	})
}

func (r LocationRepo) Delete(_ context.Context, businessID, id string) error {
	return r.sc.do("Locations.Delete", func(st *state) error {
		if l, ok := st.locations[id]; ok && l.BusinessID == businessID {
			delete(st.locations, id)
		}
		return nil
	})
}

// ── Libro artículo-ubicación ──────────────────────────────────────────────

type ItemLocationRepo struct{ sc scope }

func (r ItemLocationRepo) Get(_ context.Context, locationID, itemID string) (out *entity.ItemLocation, err error) {
	err = r.sc.do("ItemLocations.Get", func(st *state) error {
		if il, ok := st.itemLocs[ilKey{locationID, itemID}]; ok {
			out = &il
		}
		return nil
	})
	return out, err
}

func (r ItemLocationRepo) GetForUpdate(ctx context.Context, locationID, itemID string) (*entity.ItemLocation, error) {
	return r.Get(ctx, locationID, itemID)
}

func (r ItemLocationRepo) Upsert(_ context.Context, il *entity.ItemLocation) error {
	return r.sc.do("ItemLocations.Upsert", func(st *state) error {
		st.itemLocs[ilKey{il.LocationID, il.ItemID}] = *il
		return nil
	})
}

func placementsOf(st *state, itemID string) []repository.ItemPlacement {
	out := make([]repository.ItemPlacement, 0)
	for k, il := range st.itemLocs {
		if k.itemID != itemID {
			continue
		}
		loc := st.locations[k.locationID]
		out = append(out, repository.ItemPlacement{
			LocationID:   k.locationID,
			LocationName: loc.Name,
			LocationCode: loc.Code,
			Quantity:     il.Quantity,
		})
	}
	sort.Slice(out, func(i, j int) bool { return strings.ToLower(out[i].LocationName) < strings.ToLower(out[j].LocationName) })
	return out
}

func (r ItemLocationRepo) ListByItem(_ context.Context, itemID string) (out []repository.ItemPlacement, err error) {
	err = r.sc.do("ItemLocations.ListByItem", func(st *state) error {
		out = placementsOf(st, itemID)
		return nil
	})
	return out, err
}

func (r ItemLocationRepo) ListByLocation(_ context.Context, locationID string) (out []repository.LocationStockRow, err error) {
	err = r.sc.do("ItemLocations.ListByLocation", func(st *state) error {
		for k, il := range st.itemLocs {
			if k.locationID != locationID {
				continue
			}
			it := st.items[k.itemID]
			out = append(out, repository.LocationStockRow{ItemID: it.ID, Name: it.Name, SKU: it.SKU, Quantity: il.Quantity})
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name) })
	return out, err
}

func (r ItemLocationRepo) CountByLocation(_ context.Context, locationID string) (n int, err error) {
	err = r.sc.do("ItemLocations.CountByLocation", func(st *state) error {
		for k := range st.itemLocs {
			if k.locationID == locationID {
				n++
			}
		}
		return nil
	})
	return n, err
}

func (r ItemLocationRepo) DeleteByItem(_ context.Context, itemID string) error {
	return r.sc.do("ItemLocations.DeleteByItem", func(st *state) error {
		for k := range st.itemLocs {
			if k.itemID == itemID {
				delete(st.itemLocs, k)
			}
		}
		return nil
	})
}

// ── Categorías ────────────────────────────────────────────────────────────

type CategoryRepo struct{ sc scope }

func (r CategoryRepo) Create(_ context.Context, c *entity.Category) error {
	return r.sc.do("Categories.Create", func(st *state) error {
		for _, other := range st.categories {
			if other.BusinessID == c.BusinessID && strings.EqualFold(other.Name, c.Name) {
				return domain.ErrDuplicateName
			}
		}
		st.categories[c.ID] = *c
		return nil
	})
}

func (r CategoryRepo) GetByID(_ context.Context, businessID, id string) (out *entity.Category, err error) {
	err = r.sc.do("Categories.GetByID", func(st *state) error {
		if c, ok := st.categories[id]; ok && c.BusinessID == businessID {
			out = &c
		}
		return nil
	})
	return out, err
}

func (r CategoryRepo) GetByName(_ context.Context, businessID, name string) (out *entity.Category, err error) {
	err = r.sc.do("Categories.GetByName", func(st *state) error {
		for _, c := range st.categories {
			if c.BusinessID == businessID && strings.EqualFold(c.Name, name) {
				c := c
				out = &c
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r CategoryRepo) Update(_ context.Context, c *entity.Category) error {
	return r.sc.do("Categories.Update", func(st *state) error {
		if cur, ok := st.categories[c.ID]; ok && cur.BusinessID == c.BusinessID {
			st.categories[c.ID] = *c
		}
		return nil
	})
}

func (r CategoryRepo) ListByBusiness(_ context.Context, businessID string) (out []*entity.Category, err error) {
	err = r.sc.do("Categories.ListByBusiness", func(st *state) error {
		for _, c := range st.categories {
			if c.BusinessID == businessID {
				c := c
				out = append(out, &c)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name) })
	return out, err
}

func (r CategoryRepo) Delete(_ context.Context, businessID, id string) error {
	return r.sc.do("Categories.Delete", func(st *state) error {
		if c, ok := st.categories[id]; ok && c.BusinessID == businessID {
			delete(st.categories, id)
		}
		return nil
	})
}

// ── Negocios y usuarios ───────────────────────────────────────────────────

type BusinessRepo struct{ sc scope }

func (r BusinessRepo) Create(_ context.Context, b *entity.Business) error {
	return r.sc.do("Businesses.Create", func(st *state) error {
		st.businesses[b.ID] = *b
		return nil
	})
}

func (r BusinessRepo) GetByID(_ context.Context, id string) (out *entity.Business, err error) {
	err = r.sc.do("Businesses.GetByID", func(st *state) error {
		if b, ok := st.businesses[id]; ok {
			out = &b
		}
		return nil
	})
	return out, err
}

func (r BusinessRepo) Update(_ context.Context, b *entity.Business) error {
	return r.sc.do("Businesses.Update", func(st *state) error {
		if _, ok := st.businesses[b.ID]; ok {
			st.businesses[b.ID] = *b
		}
		return nil
	})
}

func (r BusinessRepo) ListAll(_ context.Context) (out []*entity.Business, err error) {
	err = r.sc.do("Businesses.ListAll", func(st *state) error {
		for _, b := range st.businesses {
			b := b
			out = append(out, &b)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, err
}

type UserRepo struct{ sc scope }

func (r UserRepo) Create(_ context.Context, u *entity.StaffUser) error {
	return r.sc.do("Users.Create", func(st *state) error {
		for _, other := range st.users {
			if strings.EqualFold(other.Username, u.Username) {
				return domain.ErrDuplicate
			}
		}
		st.users[u.ID] = *u
		return nil
	})
}

func (r UserRepo) GetByID(_ context.Context, businessID, id string) (out *entity.StaffUser, err error) {
	err = r.sc.do("Users.GetByID", func(st *state) error {
		if u, ok := st.users[id]; ok && u.BusinessID == businessID {
			out = &u
		}
		return nil
	})
	return out, err
}

func (r UserRepo) GetByUsername(_ context.Context, username string) (out *entity.StaffUser, err error) {
	err = r.sc.do("Users.GetByUsername", func(st *state) error {
		for _, u := range st.users {
			if strings.EqualFold(u.Username, username) {
				u := u
				out = &u
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r UserRepo) ListByBusiness(_ context.Context, businessID string) (out []*entity.StaffUser, err error) {
	err = r.sc.do("Users.ListByBusiness", func(st *state) error {
		for _, u := range st.users {
			if u.BusinessID == businessID {
				u := u
				out = append(out, &u)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, err
}

func (r UserRepo) Update(_ context.Context, u *entity.StaffUser) error {
	return r.sc.do("Users.Update", func(st *state) error {
		if cur, ok := st.users[u.ID]; ok && cur.BusinessID == u.BusinessID {
			st.users[u.ID] = *u
		}
		return nil
	})
}

func (r UserRepo) Delete(_ context.Context, businessID, id string) error {
	return r.sc.do("Users.Delete", func(st *state) error {
		if u, ok := st.users[id]; ok && u.BusinessID == businessID {
			delete(st.users, id)
		}
		return nil
	})
}
