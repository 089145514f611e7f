// Package memory implementa todos los puertos de repositorio en memoria.
// Lo usan los tests y el backend APP_BACKEND=memory para demos sin ERP ni PostgreSQL.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/appwms-api/internal/domain/entity"
)

type credential struct {
	password string
	userID   int64
}

type batchRecord struct {
	batch  entity.Batch
	fields map[string]time.Time
}

// Store estado compartido por todos los adaptadores en memoria.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex

	nextID int64

	users       map[int64]*entity.User
	credentials map[string]credential
	roles       map[int64]string
	perms       map[int64]*entity.AppPermissions
	config      *entity.GeneralConfig

	warehouses   map[int64]*entity.Warehouse
	pickingTypes map[int64]*entity.PickingType
	products     map[int64]*entity.Product
	lots         map[int64]*entity.Lot
	locations    map[int64]*entity.Location
	quants       []*entity.Quant
	novelties    []*entity.Novelty
	purchases    map[string]int64

	pickings map[int64]*entity.Picking
	moves    map[int64]*entity.Move
	lines    map[int64]*entity.MoveLine
	wizards  map[int64]string

	batches    map[int64]*batchRecord
	batchTimes map[int64]*entity.BatchUserTime
	versions   map[int64]*entity.AppVersion
	postings   []*entity.LinePosting
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		nextID:       1000,
		users:        make(map[int64]*entity.User),
		credentials:  make(map[string]credential),
		roles:        make(map[int64]string),
		perms:        make(map[int64]*entity.AppPermissions),
		warehouses:   make(map[int64]*entity.Warehouse),
		pickingTypes: make(map[int64]*entity.PickingType),
		products:     make(map[int64]*entity.Product),
		lots:         make(map[int64]*entity.Lot),
		locations:    make(map[int64]*entity.Location),
		purchases:    make(map[string]int64),
		pickings:     make(map[int64]*entity.Picking),
		moves:        make(map[int64]*entity.Move),
		lines:        make(map[int64]*entity.MoveLine),
		wizards:      make(map[int64]string),
		batches:      make(map[int64]*batchRecord),
		batchTimes:   make(map[int64]*entity.BatchUserTime),
		versions:     make(map[int64]*entity.AppVersion),
	}
}

// newID devuelve un id nuevo. Requiere s.mu tomado en escritura.
func (s *Store) newID() int64 {
	s.nextID++
	return s.nextID
}

// ref arma la referencia de una ubicación. Requiere s.mu tomado.
func (s *Store) ref(id int64) entity.LocationRef {
	if l, ok := s.locations[id]; ok {
		return l.Ref()
	}
	return entity.LocationRef{ID: id}
}

func sortedKeys[V any](m map[int64]V) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// ── Carga de datos ───────────────────────────────────────────────────────────

// AddUser registra un usuario con sus credenciales de acceso.
func (s *Store) AddUser(u entity.User, login, password string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.Login == "" {
		u.Login = login
	}
	s.users[u.ID] = &u
	if login != "" {
		s.credentials[login] = credential{password: password, userID: u.ID}
	}
}

// SetWMSRole registra al usuario en el módulo WMS con el rol indicado ("" = sin rol).
func (s *Store) SetWMSRole(userID int64, role string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.roles[userID] = role
}

// SetPermissions asigna las banderas de la app a un usuario.
func (s *Store) SetPermissions(userID int64, p entity.AppPermissions) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.perms[userID] = &p
}

// SetGeneralConfig fija la configuración general.
func (s *Store) SetGeneralConfig(c entity.GeneralConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config = &c
}

// AddWarehouse registra un almacén.
func (s *Store) AddWarehouse(w entity.Warehouse) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.warehouses[w.ID] = &w
}

// AddPickingType registra un tipo de operación.
func (s *Store) AddPickingType(pt entity.PickingType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pickingTypes[pt.ID] = &pt
}

// AddProduct registra un producto.
func (s *Store) AddProduct(p entity.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[p.ID] = &p
}

// AddLot registra un lote.
func (s *Store) AddLot(l entity.Lot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lots[l.ID] = &l
}

// AddLocation registra una ubicación.
func (s *Store) AddLocation(l entity.Location) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locations[l.ID] = &l
}

// AddQuant registra una existencia.
func (s *Store) AddQuant(q entity.Quant) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if q.ID == 0 {
		q.ID = s.newID()
	}
	q.Location = s.ref(q.Location.ID)
	s.quants = append(s.quants, &q)
}

// AddNovelty registra una novedad de picking.
func (s *Store) AddNovelty(n entity.Novelty) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.novelties = append(s.novelties, &n)
}

// AddPurchase registra una orden de compra por nombre.
func (s *Store) AddPurchase(id int64, name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purchases[name] = id
}

// AddPicking registra un picking. Las referencias de ubicación se completan desde las ubicaciones cargadas.
func (s *Store) AddPicking(p entity.Picking) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.Location = s.ref(p.Location.ID)
	p.LocationDest = s.ref(p.LocationDest.ID)
	if wh, ok := s.warehouses[p.WarehouseID]; ok && p.WarehouseName == "" {
		p.WarehouseName = wh.Name
	}
	s.pickings[p.ID] = &p
}

// AddMove registra un movimiento. OrderedQty vacío toma ProductQty.
func (s *Store) AddMove(m entity.Move) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m.OrderedQty.IsZero() {
		m.OrderedQty = m.ProductQty
	}
	if p, ok := s.products[m.ProductID]; ok && m.ProductName == "" {
		m.ProductName = p.Name
	}
	m.Location = s.ref(m.Location.ID)
	m.LocationDest = s.ref(m.LocationDest.ID)
	s.moves[m.ID] = &m
}

// AddLine registra una línea de movimiento.
func (s *Store) AddLine(l entity.MoveLine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.products[l.ProductID]; ok && l.ProductName == "" {
		l.ProductName = p.Name
	}
	l.Location = s.ref(l.Location.ID)
	l.LocationDest = s.ref(l.LocationDest.ID)
	s.lines[l.ID] = &l
}

// AddBatch registra un batch de picking.
func (s *Store) AddBatch(b entity.Batch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batches[b.ID] = &batchRecord{batch: b, fields: make(map[string]time.Time)}
}

// RequireWizard hace que la próxima validación del picking pida el asistente indicado.
func (s *Store) RequireWizard(pickingID int64, model string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wizards[pickingID] = model
}

// ── Lectura para tests ───────────────────────────────────────────────────────

// Picking devuelve una copia del picking, o nil.
func (s *Store) Picking(id int64) *entity.Picking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.pickings[id]
	if !ok {
		return nil
	}
	c := *p
	return &c
}

// Lines devuelve copias de las líneas del picking ordenadas por id.
func (s *Store) Lines(pickingID int64) []*entity.MoveLine {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.linesOf(pickingID)
}

// Postings devuelve el diario de postings.
func (s *Store) Postings() []*entity.LinePosting {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*entity.LinePosting, len(s.postings))
	for i, p := range s.postings {
		c := *p
		out[i] = &c
	}
	return out
}

// PickingsAll devuelve copias de todos los pickings ordenados por id.
func (s *Store) PickingsAll() []*entity.Picking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*entity.Picking, 0, len(s.pickings))
	for _, id := range sortedKeys(s.pickings) {
		c := *s.pickings[id]
		out = append(out, &c)
	}
	return out
}

// linesOf requiere s.mu tomado.
func (s *Store) linesOf(pickingID int64) []*entity.MoveLine {
	out := make([]*entity.MoveLine, 0)
	for _, id := range sortedKeys(s.lines) {
		l := s.lines[id]
		if l.PickingID == pickingID {
			c := *l
			out = append(out, &c)
		}
	}
	return out
}
