// Package memstore implementa los puertos de repositorio en memoria para tests de casos de uso.
//
// Run copia el estado al iniciar y lo reemplaza solo si fn termina sin error: un rollback
// deja el estado intacto, igual que en PostgreSQL.
package memstore

import (
	"context"
	"sync"

	"github.com/jhoicas/retail-inventory/internal/application/inventory"
	"github.com/jhoicas/retail-inventory/internal/domain/entity"
)

type ilKey struct{ locationID, itemID string }

type state struct {
	catalog    map[string]entity.CatalogProduct
	items      map[string]entity.BusinessItem
	locations  map[string]entity.Location
	itemLocs   map[ilKey]entity.ItemLocation
	categories map[string]entity.Category
	businesses map[string]entity.Business
	users      map[string]entity.StaffUser
	snapshots  map[string]entity.InventorySnapshot
	snapItems  map[string][]entity.SnapshotItem
	snapLocs   map[string][]entity.SnapshotLocation
}

func newState() *state {
	return &state{
		catalog:    map[string]entity.CatalogProduct{},
		items:      map[string]entity.BusinessItem{},
		locations:  map[string]entity.Location{},
		itemLocs:   map[ilKey]entity.ItemLocation{},
		categories: map[string]entity.Category{},
		businesses: map[string]entity.Business{},
		users:      map[string]entity.StaffUser{},
		snapshots:  map[string]entity.InventorySnapshot{},
		snapItems:  map[string][]entity.SnapshotItem{},
		snapLocs:   map[string][]entity.SnapshotLocation{},
	}
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (st *state) clone() *state {
	return &state{
		catalog:    cloneMap(st.catalog),
		items:      cloneMap(st.items),
		locations:  cloneMap(st.locations),
		itemLocs:   cloneMap(st.itemLocs),
		categories: cloneMap(st.categories),
		businesses: cloneMap(st.businesses),
		users:      cloneMap(st.users),
		snapshots:  cloneMap(st.snapshots),
		snapItems:  cloneMap(st.snapItems), // los snapshots son inmutables: se comparten los slices
		snapLocs:   cloneMap(st.snapLocs),
	}
}

// Store estado en memoria compartido por todos los repositorios.
type Store struct {
	mu   sync.Mutex // protege data
	txMu sync.Mutex // serializa transacciones
	data *state

	failMu   sync.Mutex
	failures map[string]error

	Commits   int
	Rollbacks int

	// Isolations nivel pedido por cada transacción, en orden.
	Isolations []inventory.Isolation

	lockMu sync.Mutex
	locks  []string
}

var _ inventory.TxRunner = (*Store)(nil)

// New crea un store vacío.
func New() *Store {
	return &Store{data: newState(), failures: map[string]error{}}
}

// InjectError hace que la operación op (ej. "Locations.AddUsage", "Commit") falle con err.
func (s *Store) InjectError(op string, err error) {
	s.failMu.Lock()
	defer s.failMu.Unlock()
	s.failures[op] = err
}

// ClearErrors elimina los errores inyectados.
func (s *Store) ClearErrors() {
	s.failMu.Lock()
	defer s.failMu.Unlock()
	s.failures = map[string]error{}
}

func (s *Store) fail(op string) error {
	s.failMu.Lock()
	defer s.failMu.Unlock()
	return s.failures[op]
}

// Locks devuelve los bloqueos de fila pedidos dentro de transacciones, en orden
// ("item:share:<id>", "item:update:<id>", "location:update:<id>").
func (s *Store) Locks() []string {
	s.lockMu.Lock()
	defer s.lockMu.Unlock()
	return append([]string(nil), s.locks...)
}

// ResetLocks vacía el registro de bloqueos.
func (s *Store) ResetLocks() {
	s.lockMu.Lock()
	defer s.lockMu.Unlock()
	s.locks = nil
}

func (sc scope) lock(kind, mode, id string) {
	if sc.tx == nil {
		return
	}
	sc.s.lockMu.Lock()
	defer sc.s.lockMu.Unlock()
	sc.s.locks = append(sc.s.locks, kind+":"+mode+":"+id)
}

// Run ejecuta fn sobre una copia del estado y la confirma solo si fn y el commit no fallan.
func (s *Store) Run(ctx context.Context, fn func(repos inventory.TxRepos) error, opts ...inventory.TxOption) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	s.Isolations = append(s.Isolations, inventory.ResolveTxOptions(opts...).Isolation)

	s.mu.Lock()
	work := s.data.clone()
	s.mu.Unlock()

	sc := scope{s: s, tx: work}
	if err := fn(sc.repos()); err != nil {
		s.Rollbacks++
		return err
	}
	if err := s.fail("Commit"); err != nil {
		s.Rollbacks++
		return err
	}
	s.mu.Lock()
	s.data = work
	s.mu.Unlock()
	s.Commits++
	return nil
}

// scope resuelve el estado sobre el que opera un repositorio: la copia de la tx o el estado confirmado.
type scope struct {
	s  *Store
	tx *state
}

func (sc scope) do(op string, fn func(st *state) error) error {
	if err := sc.s.fail(op); err != nil {
		return err
	}
	if sc.tx != nil {
		return fn(sc.tx)
	}
	sc.s.mu.Lock()
	defer sc.s.mu.Unlock()
	return fn(sc.s.data)
}

func (sc scope) repos() inventory.TxRepos {
	return inventory.TxRepos{
		Catalog:       CatalogRepo{sc},
		Items:         ItemRepo{sc},
		Locations:     LocationRepo{sc},
		ItemLocations: ItemLocationRepo{sc},
		Categories:    CategoryRepo{sc},
		Snapshots:     SnapshotRepo{sc},
		Businesses:    BusinessRepo{sc},
		Users:         UserRepo{sc},
	}
}

func (s *Store) root() scope                     { return scope{s: s} }

// Repositorios fuera de transacción.
func (s *Store) Catalog() CatalogRepo            { return CatalogRepo{s.root()} }
func (s *Store) Items() ItemRepo                 { return ItemRepo{s.root()} }
func (s *Store) Locations() LocationRepo         { return LocationRepo{s.root()} }
func (s *Store) ItemLocations() ItemLocationRepo { return ItemLocationRepo{s.root()} }
func (s *Store) Categories() CategoryRepo        { return CategoryRepo{s.root()} }
func (s *Store) Snapshots() SnapshotRepo         { return SnapshotRepo{s.root()} }
func (s *Store) Businesses() BusinessRepo        { return BusinessRepo{s.root()} }
func (s *Store) Users() UserRepo                 { return UserRepo{s.root()} }
func (s *Store) Search() SearchRepo              { return SearchRepo{s.root()} }
func (s *Store) Reports() ReportRepo             { return ReportRepo{s.root()} }
func (s *Store) Analytics() AnalyticsRepo        { return AnalyticsRepo{s.root()} }
