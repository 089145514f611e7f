package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/appwms-api/internal/domain"
	"github.com/jhoicas/appwms-api/internal/domain/entity"
	"github.com/jhoicas/appwms-api/internal/domain/repository"
)

var (
	_ repository.PickingRepository = (*PickingRepo)(nil)
	_ repository.MoveRepository    = (*MoveRepo)(nil)
	_ repository.StockEngine       = (*Engine)(nil)
)

// PickingRepo implementa repository.PickingRepository.
type PickingRepo struct{ s *Store }

// Pickings devuelve el repositorio de pickings.
func (s *Store) Pickings() *PickingRepo { return &PickingRepo{s: s} }

func (r *PickingRepo) List(_ context.Context, f repository.PickingFilter) ([]*entity.Picking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Picking, 0)
	for _, id := range sortedKeys(r.s.pickings) {
		p := r.s.pickings[id]
		switch {
		case f.WarehouseID != 0 && p.WarehouseID != f.WarehouseID,
			f.TypeCode != "" && p.TypeCode != f.TypeCode,
			f.State != "" && p.State != f.State,
			f.SequenceCode != "" && p.SequenceCode != f.SequenceCode,
			f.ResponsibleID != 0 && p.ResponsibleID != 0 && p.ResponsibleID != f.ResponsibleID,
			f.ExcludeReturns && p.IsReturn:
			continue
		}
		c := *p
		out = append(out, &c)
	}
	return out, nil
}

func (r *PickingRepo) GetByID(_ context.Context, id int64) (*entity.Picking, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.pickings[id]
	if !ok {
		return nil, nil
	}
	c := *p
	return &c, nil
}

func (r *PickingRepo) SetResponsible(_ context.Context, pickingID, userID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.pickings[pickingID]
	if !ok {
		return domain.Detail(domain.ErrNotFound, "Picking %d no encontrado", pickingID)
	}
	p.ResponsibleID = userID
	if u, ok := r.s.users[userID]; ok {
		p.ResponsibleName = u.Name
	}
	return nil
}

func (r *PickingRepo) Create(_ context.Context, in entity.NewTransfer) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	pt, ok := r.s.pickingTypes[in.PickingTypeID]
	if !ok {
		return 0, domain.Detail(domain.ErrNotFound, "Tipo de operación %d no encontrado", in.PickingTypeID)
	}
	id := r.s.newID()
	p := &entity.Picking{
		ID:              id,
		State:           entity.StateDraft,
		TypeCode:        pt.Code,
		SequenceCode:    pt.SequenceCode,
		PickingTypeID:   pt.ID,
		PickingTypeName: pt.Name,
		WarehouseID:     pt.WarehouseID,
		Location:        r.s.ref(in.LocationID),
		LocationDest:    r.s.ref(in.LocationDestID),
		ResponsibleID:   in.ResponsibleID,
		Origin:          in.Origin,
		Priority:        "0",
		CreateDate:      time.Now().UTC(),
	}
	prefix := "WH"
	if wh, ok := r.s.warehouses[pt.WarehouseID]; ok {
		p.WarehouseName = wh.Name
		if wh.Code != "" {
			prefix = wh.Code
		}
	}
	p.Name = fmt.Sprintf("%s/%s/%05d", prefix, pt.SequenceCode, id)
	if u, ok := r.s.users[in.ResponsibleID]; ok {
		p.ResponsibleName = u.Name
	}
	r.s.pickings[id] = p

	for _, l := range in.Lines {
		m := &entity.Move{
			ID:           r.s.newID(),
			PickingID:    id,
			ProductID:    l.ProductID,
			ProductName:  l.Name,
			ProductQty:   l.Quantity,
			OrderedQty:   l.Quantity,
			UomID:        l.UomID,
			Location:     p.Location,
			LocationDest: p.LocationDest,
			State:        entity.StateDraft,
		}
		if prod, ok := r.s.products[l.ProductID]; ok {
			m.UomName = prod.UomName
		}
		r.s.moves[m.ID] = m
	}
	return id, nil
}

// MoveRepo implementa repository.MoveRepository.
type MoveRepo struct{ s *Store }

// Moves devuelve el repositorio de movimientos.
func (s *Store) Moves() *MoveRepo { return &MoveRepo{s: s} }

func (r *MoveRepo) ListByPicking(_ context.Context, pickingID int64) ([]*entity.Move, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Move, 0)
	for _, id := range sortedKeys(r.s.moves) {
		if m := r.s.moves[id]; m.PickingID == pickingID {
			c := *m
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *MoveRepo) ListLinesByPicking(_ context.Context, pickingID int64) ([]*entity.MoveLine, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.linesOf(pickingID), nil
}

func (r *MoveRepo) GetLine(_ context.Context, id int64) (*entity.MoveLine, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	l, ok := r.s.lines[id]
	if !ok {
		return nil, nil
	}
	c := *l
	return &c, nil
}

func (r *MoveRepo) CreateLine(_ context.Context, line *entity.MoveLine) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.moves[line.MoveID]
	if !ok {
		return domain.Detail(domain.ErrNotFound, "Movimiento %d no encontrado", line.MoveID)
	}
	line.ID = r.s.newID()
	c := *line
	c.PickingID = m.PickingID
	if c.State == "" {
		c.State = m.State
	}
	if c.Location.ID == 0 {
		c.Location = m.Location
	}
	r.s.fillLine(&c)
	r.s.lines[c.ID] = &c
	r.s.recomputeDone(m.ID)
	return nil
}

func (r *MoveRepo) UpdateLine(_ context.Context, line *entity.MoveLine) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.lines[line.ID]
	if !ok {
		return domain.Detail(domain.ErrNotFound, "Línea %d no encontrada", line.ID)
	}
	cur.QtyDone = line.QtyDone
	cur.LocationDest = line.LocationDest
	cur.LotID = line.LotID
	cur.LotName = line.LotName
	cur.IsDoneItem = line.IsDoneItem
	cur.DateTransaction = line.DateTransaction
	cur.Observation = line.Observation
	cur.Time = line.Time
	cur.OperatorID = line.OperatorID
	r.s.fillLine(cur)
	r.s.recomputeDone(cur.MoveID)
	return nil
}

// fillLine completa nombres de ubicación y lote. Requiere s.mu tomado.
func (s *Store) fillLine(l *entity.MoveLine) {
	l.Location = s.ref(l.Location.ID)
	l.LocationDest = s.ref(l.LocationDest.ID)
	if lot, ok := s.lots[l.LotID]; ok {
		l.LotName = lot.Name
		l.LotExpiration = lot.ExpirationDate
	}
	if p, ok := s.products[l.ProductID]; ok && l.ProductName == "" {
		l.ProductName = p.Name
	}
}

// recomputeDone suma qty_done de las líneas del movimiento. Requiere s.mu tomado.
func (s *Store) recomputeDone(moveID int64) {
	m, ok := s.moves[moveID]
	if !ok {
		return
	}
	total := decimal.Zero
	for _, l := range s.lines {
		if l.MoveID == moveID {
			total = total.Add(l.QtyDone)
		}
	}
	m.QuantityDone = total
}

// Engine simula el motor de inventario: validación con asistentes, backorders y reservas.
type Engine struct{ s *Store }

// Engine devuelve el motor de inventario en memoria.
func (s *Store) Engine() *Engine { return &Engine{s: s} }

func (e *Engine) Validate(_ context.Context, pickingID int64) (*entity.WizardAction, error) {
	e.s.mu.Lock()
	defer e.s.mu.Unlock()
	p, ok := e.s.pickings[pickingID]
	if !ok {
		return nil, domain.Detail(domain.ErrNotFound, "Picking %d no encontrado", pickingID)
	}
	if p.IsClosed() {
		return nil, domain.Detail(domain.ErrBusinessRule, "El picking %s ya está cerrado", p.Name)
	}
	if model, ok := e.s.wizards[pickingID]; ok {
		return &entity.WizardAction{
			Model:   model,
			Context: map[string]any{"button_validate_picking_ids": []int64{pickingID}},
		}, nil
	}
	e.s.closePicking(p, false)
	return nil, nil
}

func (e *Engine) ResolveWizard(_ context.Context, action *entity.WizardAction, pickingID int64, method string) (int64, error) {
	e.s.mu.Lock()
	defer e.s.mu.Unlock()
	p, ok := e.s.pickings[pickingID]
	if !ok {
		return 0, domain.Detail(domain.ErrNotFound, "Picking %d no encontrado", pickingID)
	}
	delete(e.s.wizards, pickingID)
	switch {
	case action.Model == entity.WizardBackorder && method == "process":
		e.s.closePicking(p, true)
	case action.Model == entity.WizardBackorder && method == "process_cancel_backorder",
		action.Model == entity.WizardImmediate && method == "process":
		e.s.closePicking(p, false)
	default:
		return 0, domain.Detail(domain.ErrBusinessRule, "Método %s no disponible en %s", method, action.Model)
	}
	return e.s.newID(), nil
}

// closePicking marca el picking como hecho; con backorder crea un picking nuevo
// con lo pendiente de cada movimiento. Requiere s.mu tomado en escritura.
func (s *Store) closePicking(p *entity.Picking, backorder bool) {
	p.State = entity.StateDone
	var bo *entity.Picking
	for _, id := range sortedKeys(s.moves) {
		m := s.moves[id]
		if m.PickingID != p.ID || !m.IsOpen() {
			continue
		}
		pending := m.ProductQty.Sub(m.QuantityDone)
		m.State = entity.StateDone
		if !backorder || !pending.IsPositive() {
			continue
		}
		if bo == nil {
			c := *p
			c.ID = s.newID()
			c.Name = p.Name + "-BO"
			c.State = entity.StateAssigned
			c.BackorderID = p.ID
			c.CreateDate = time.Now().UTC()
			bo = &c
			s.pickings[c.ID] = bo
		}
		nm := *m
		nm.ID = s.newID()
		nm.PickingID = bo.ID
		nm.ProductQty = pending
		nm.OrderedQty = pending
		nm.QuantityDone = decimal.Zero
		nm.State = entity.StateAssigned
		s.moves[nm.ID] = &nm
	}
	for _, l := range s.lines {
		if l.PickingID == p.ID {
			l.State = entity.StateDone
		}
	}
}

func (e *Engine) CheckAvailability(_ context.Context, pickingID int64) error {
	e.s.mu.Lock()
	defer e.s.mu.Unlock()
	p, ok := e.s.pickings[pickingID]
	if !ok {
		return domain.Detail(domain.ErrNotFound, "Picking %d no encontrado", pickingID)
	}
	if p.State != entity.StateConfirmed && p.State != entity.StateWaiting && p.State != entity.StateAssigned {
		return nil
	}
	hasLine := make(map[int64]bool)
	for _, l := range e.s.lines {
		hasLine[l.MoveID] = true
	}
	for _, id := range sortedKeys(e.s.moves) {
		m := e.s.moves[id]
		if m.PickingID != p.ID || !m.IsOpen() {
			continue
		}
		m.State = entity.StateAssigned
		if hasLine[m.ID] {
			continue
		}
		l := &entity.MoveLine{
			ID:           e.s.newID(),
			MoveID:       m.ID,
			PickingID:    p.ID,
			ProductID:    m.ProductID,
			ProductName:  m.ProductName,
			ReservedQty:  m.ProductQty,
			Location:     m.Location,
			LocationDest: m.LocationDest,
			UomID:        m.UomID,
			UomName:      m.UomName,
			State:        entity.StateAssigned,
		}
		e.s.lines[l.ID] = l
	}
	p.State = entity.StateAssigned
	return nil
}

func (e *Engine) Confirm(_ context.Context, pickingID int64) error {
	e.s.mu.Lock()
	defer e.s.mu.Unlock()
	p, ok := e.s.pickings[pickingID]
	if !ok {
		return domain.Detail(domain.ErrNotFound, "Picking %d no encontrado", pickingID)
	}
	if p.State != entity.StateDraft {
		return nil
	}
	p.State = entity.StateConfirmed
	for _, m := range e.s.moves {
		if m.PickingID == p.ID && m.State == entity.StateDraft {
			m.State = entity.StateConfirmed
		}
	}
	return nil
}
