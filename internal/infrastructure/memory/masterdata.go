package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/appwms-api/internal/domain/entity"
	"github.com/jhoicas/appwms-api/internal/domain/repository"
)

var (
	_ repository.UserRepository       = (*UserRepo)(nil)
	_ repository.PermissionRepository = (*PermissionRepo)(nil)
	_ repository.Authenticator        = (*Authenticator)(nil)
	_ repository.WarehouseRepository  = (*WarehouseRepo)(nil)
	_ repository.ProductRepository    = (*ProductRepo)(nil)
	_ repository.LotRepository        = (*LotRepo)(nil)
	_ repository.QuantRepository      = (*QuantRepo)(nil)
	_ repository.LocationRepository   = (*LocationRepo)(nil)
	_ repository.NoveltyRepository    = (*NoveltyRepo)(nil)
	_ repository.PurchaseRepository   = (*PurchaseRepo)(nil)
)

// ── Usuarios y permisos ──────────────────────────────────────────────────────

// UserRepo implementa repository.UserRepository.
type UserRepo struct{ s *Store }

// Users devuelve el repositorio de usuarios.
func (s *Store) Users() *UserRepo { return &UserRepo{s: s} }

func (r *UserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	c := *u
	c.AllowedWarehouseIDs = append([]int64(nil), u.AllowedWarehouseIDs...)
	return &c, nil
}

// PermissionRepo implementa repository.PermissionRepository.
type PermissionRepo struct{ s *Store }

// Permissions devuelve el repositorio de permisos.
func (s *Store) Permissions() *PermissionRepo { return &PermissionRepo{s: s} }

func (r *PermissionRepo) GetWMSRole(_ context.Context, userID int64) (string, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	role, ok := r.s.roles[userID]
	return role, ok, nil
}

func (r *PermissionRepo) GetAppPermissions(_ context.Context, userID int64) (*entity.AppPermissions, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.perms[userID]
	if !ok {
		return nil, nil
	}
	c := *p
	return &c, nil
}

func (r *PermissionRepo) GetGeneralConfig(_ context.Context) (*entity.GeneralConfig, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.config == nil {
		return nil, nil
	}
	c := *r.s.config
	return &c, nil
}

// Authenticator implementa repository.Authenticator con las credenciales cargadas.
type Authenticator struct{ s *Store }

// Auth devuelve el autenticador.
func (s *Store) Auth() *Authenticator { return &Authenticator{s: s} }

func (a *Authenticator) Authenticate(_ context.Context, login, password string) (int64, error) {
	a.s.mu.RLock()
	defer a.s.mu.RUnlock()
	c, ok := a.s.credentials[login]
	if !ok || c.password != password {
		return 0, nil
	}
	return c.userID, nil
}

// ── Almacenes ────────────────────────────────────────────────────────────────

// WarehouseRepo implementa repository.WarehouseRepository.
type WarehouseRepo struct{ s *Store }

// Warehouses devuelve el repositorio de almacenes.
func (s *Store) Warehouses() *WarehouseRepo { return &WarehouseRepo{s: s} }

func (r *WarehouseRepo) GetByID(_ context.Context, id int64) (*entity.Warehouse, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	w, ok := r.s.warehouses[id]
	if !ok {
		return nil, nil
	}
	c := *w
	return &c, nil
}

func (r *WarehouseRepo) ListByIDs(_ context.Context, ids []int64) ([]*entity.Warehouse, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Warehouse, 0, len(ids))
	for _, id := range ids {
		if w, ok := r.s.warehouses[id]; ok {
			c := *w
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *WarehouseRepo) InternalPickingType(_ context.Context, warehouseID int64) (*entity.PickingType, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, id := range sortedKeys(r.s.pickingTypes) {
		pt := r.s.pickingTypes[id]
		if pt.WarehouseID == warehouseID && pt.Code == entity.PickingTypeInternal {
			c := *pt
			return &c, nil
		}
	}
	return nil, nil
}

// ── Productos y lotes ────────────────────────────────────────────────────────

// ProductRepo implementa repository.ProductRepository.
type ProductRepo struct{ s *Store }

// Products devuelve el repositorio de productos.
func (s *Store) Products() *ProductRepo { return &ProductRepo{s: s} }

func (r *ProductRepo) GetByID(_ context.Context, id int64) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	c := *p
	return &c, nil
}

func (r *ProductRepo) ListByIDs(_ context.Context, ids []int64) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := r.s.products[id]; ok {
			c := *p
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *ProductRepo) FindByBarcode(_ context.Context, barcode string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, id := range sortedKeys(r.s.products) {
		p := r.s.products[id]
		if p.Barcode == barcode {
			c := *p
			return &c, nil
		}
		for _, b := range p.OtherBarcodes {
			if b == barcode {
				c := *p
				return &c, nil
			}
		}
	}
	return nil, nil
}

// LotRepo implementa repository.LotRepository.
type LotRepo struct{ s *Store }

// Lots devuelve el repositorio de lotes.
func (s *Store) Lots() *LotRepo { return &LotRepo{s: s} }

// lotCopy completa nombre de producto y cantidad desde las existencias. Requiere s.mu tomado.
func (r *LotRepo) lotCopy(l *entity.Lot) *entity.Lot {
	c := *l
	if p, ok := r.s.products[l.ProductID]; ok {
		c.ProductName = p.Name
	}
	qty := decimal.Zero
	for _, q := range r.s.quants {
		if q.LotID == l.ID {
			qty = qty.Add(q.Quantity)
		}
	}
	if !qty.IsZero() {
		c.Quantity = qty
	}
	return &c
}

func (r *LotRepo) GetByID(_ context.Context, id int64) (*entity.Lot, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	l, ok := r.s.lots[id]
	if !ok {
		return nil, nil
	}
	return r.lotCopy(l), nil
}

func (r *LotRepo) ListByProduct(_ context.Context, productID int64) ([]*entity.Lot, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Lot, 0)
	for _, id := range sortedKeys(r.s.lots) {
		if l := r.s.lots[id]; l.ProductID == productID {
			out = append(out, r.lotCopy(l))
		}
	}
	return out, nil
}

func (r *LotRepo) EarliestExpiring(ctx context.Context, productID int64) (*entity.Lot, error) {
	lots, err := r.ListByProduct(ctx, productID)
	if err != nil || len(lots) == 0 {
		return nil, err
	}
	// sin fecha al final, como el orden ascendente del ERP
	sort.SliceStable(lots, func(i, j int) bool {
		a, b := lots[i].ExpirationDate, lots[j].ExpirationDate
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}
		return a.Before(*b)
	})
	return lots[0], nil
}

func (r *LotRepo) FindByName(_ context.Context, name string) (*entity.Lot, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, id := range sortedKeys(r.s.lots) {
		if l := r.s.lots[id]; l.Name == name {
			return r.lotCopy(l), nil
		}
	}
	return nil, nil
}

func (r *LotRepo) Create(_ context.Context, lot *entity.Lot) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	lot.ID = r.s.newID()
	c := *lot
	r.s.lots[c.ID] = &c
	return nil
}

func (r *LotRepo) Update(_ context.Context, lot *entity.Lot) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.lots[lot.ID]
	if !ok {
		return nil
	}
	cur.Name = lot.Name
	cur.ExpirationDate = lot.ExpirationDate
	cur.AlertDate = lot.AlertDate
	cur.UseDate = lot.UseDate
	cur.RemovalDate = lot.RemovalDate
	return nil
}

// ── Existencias y ubicaciones ────────────────────────────────────────────────

// QuantRepo implementa repository.QuantRepository.
type QuantRepo struct{ s *Store }

// Quants devuelve el repositorio de existencias.
func (s *Store) Quants() *QuantRepo { return &QuantRepo{s: s} }

func (r *QuantRepo) List(_ context.Context, f repository.QuantFilter) ([]*entity.Quant, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Quant, 0)
	for _, q := range r.s.quants {
		if f.ProductID != 0 && q.ProductID != f.ProductID {
			continue
		}
		if f.LocationID != 0 && q.Location.ID != f.LocationID {
			continue
		}
		if f.LotID != 0 && q.LotID != f.LotID {
			continue
		}
		if loc, ok := r.s.locations[q.Location.ID]; ok && loc.Usage != entity.LocationUsageInternal {
			continue
		}
		c := *q
		if p, ok := r.s.products[q.ProductID]; ok {
			c.ProductName = p.Name
		}
		if l, ok := r.s.lots[q.LotID]; ok {
			c.LotName = l.Name
		}
		out = append(out, &c)
	}
	return out, nil
}

// LocationRepo implementa repository.LocationRepository.
type LocationRepo struct{ s *Store }

// Locations devuelve el repositorio de ubicaciones.
func (s *Store) Locations() *LocationRepo { return &LocationRepo{s: s} }

func (r *LocationRepo) GetByID(_ context.Context, id int64) (*entity.Location, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	l, ok := r.s.locations[id]
	if !ok {
		return nil, nil
	}
	c := *l
	return &c, nil
}

func (r *LocationRepo) filter(keep func(*entity.Location) bool) []*entity.Location {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Location, 0)
	for _, id := range sortedKeys(r.s.locations) {
		if l := r.s.locations[id]; l.Active && keep(l) {
			c := *l
			out = append(out, &c)
		}
	}
	return out
}

func (r *LocationRepo) ListInternal(_ context.Context) ([]*entity.Location, error) {
	return r.filter(func(l *entity.Location) bool { return l.Usage == entity.LocationUsageInternal }), nil
}

func (r *LocationRepo) ListDocks(_ context.Context) ([]*entity.Location, error) {
	return r.filter(func(l *entity.Location) bool { return l.IsDock }), nil
}

func (r *LocationRepo) FindByBarcode(_ context.Context, barcode string) (*entity.Location, error) {
	found := r.filter(func(l *entity.Location) bool { return strings.EqualFold(l.Barcode, barcode) })
	if len(found) == 0 {
		return nil, nil
	}
	return found[0], nil
}

// NoveltyRepo implementa repository.NoveltyRepository.
type NoveltyRepo struct{ s *Store }

// Novelties devuelve el repositorio de novedades.
func (s *Store) Novelties() *NoveltyRepo { return &NoveltyRepo{s: s} }

func (r *NoveltyRepo) List(_ context.Context) ([]*entity.Novelty, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Novelty, len(r.s.novelties))
	for i, n := range r.s.novelties {
		c := *n
		out[i] = &c
	}
	return out, nil
}

// PurchaseRepo implementa repository.PurchaseRepository.
type PurchaseRepo struct{ s *Store }

// Purchases devuelve el repositorio de órdenes de compra.
func (s *Store) Purchases() *PurchaseRepo { return &PurchaseRepo{s: s} }

func (r *PurchaseRepo) FindIDByName(_ context.Context, name string) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.purchases[name], nil
}
