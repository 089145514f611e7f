package memory

import (
	"context"
	"time"

	"github.com/jhoicas/appwms-api/internal/application/timing"
	"github.com/jhoicas/appwms-api/internal/domain"
	"github.com/jhoicas/appwms-api/internal/domain/entity"
	"github.com/jhoicas/appwms-api/internal/domain/repository"
)

var (
	_ repository.BatchRepository         = (*BatchRepo)(nil)
	_ repository.BatchUserTimeRepository = (*BatchUserTimeRepo)(nil)
	_ timing.TxRunner                    = (*TxRunner)(nil)
)

// BatchRepo implementa repository.BatchRepository sobre los batches cargados.
type BatchRepo struct{ s *Store }

// Batches devuelve el repositorio de batches.
func (s *Store) Batches() *BatchRepo { return &BatchRepo{s: s} }

func (r *BatchRepo) GetByID(_ context.Context, id int64) (*entity.Batch, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	b, ok := r.s.batches[id]
	if !ok {
		return nil, nil
	}
	c := b.batch
	return &c, nil
}

func (r *BatchRepo) ReadTime(_ context.Context, batchID int64, field string) (*time.Time, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	b, ok := r.s.batches[batchID]
	if !ok {
		return nil, domain.Detail(domain.ErrNotFound, "Batch %d no encontrado", batchID)
	}
	t, ok := b.fields[field]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (r *BatchRepo) WriteTime(_ context.Context, batchID int64, field string, t time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.batches[batchID]
	if !ok {
		return domain.Detail(domain.ErrNotFound, "Batch %d no encontrado", batchID)
	}
	b.fields[field] = t
	return nil
}

// BatchUserTimeRepo implementa repository.BatchUserTimeRepository con la terna única
// (batch, usuario, tipo de operación).
type BatchUserTimeRepo struct{ s *Store }

// BatchUserTimes devuelve el repositorio de tiempos por usuario.
func (s *Store) BatchUserTimes() *BatchUserTimeRepo { return &BatchUserTimeRepo{s: s} }

// find requiere s.mu tomado.
func (r *BatchUserTimeRepo) find(batchID, userID int64, opType string) *entity.BatchUserTime {
	for _, t := range r.s.batchTimes {
		if t.BatchID == batchID && t.UserID == userID && t.OperationType == opType {
			return t
		}
	}
	return nil
}

func (r *BatchUserTimeRepo) InsertStart(_ context.Context, rec *entity.BatchUserTime) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.find(rec.BatchID, rec.UserID, rec.OperationType) != nil {
		return false, nil
	}
	now := time.Now().UTC()
	rec.ID = r.s.newID()
	rec.CreatedAt, rec.UpdatedAt = now, now
	c := *rec
	r.s.batchTimes[c.ID] = &c
	return true, nil
}

func (r *BatchUserTimeRepo) GetForUpdate(_ context.Context, batchID, userID int64, opType string) (*entity.BatchUserTime, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	t := r.find(batchID, userID, opType)
	if t == nil {
		return nil, nil
	}
	c := *t
	return &c, nil
}

func (r *BatchUserTimeRepo) SetEnd(_ context.Context, id int64, end time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.batchTimes[id]
	if !ok {
		return domain.Detail(domain.ErrNotFound, "Registro %d no encontrado", id)
	}
	t.EndTime = &end
	t.UpdatedAt = time.Now().UTC()
	return nil
}

// TxRunner serializa las transacciones de tiempos; equivale al bloqueo FOR UPDATE.
type TxRunner struct{ s *Store }

// Tx devuelve el ejecutor de transacciones.
func (s *Store) Tx() *TxRunner { return &TxRunner{s: s} }

func (t *TxRunner) Run(_ context.Context, fn func(times repository.BatchUserTimeRepository) error) error {
	t.s.txMu.Lock()
	defer t.s.txMu.Unlock()
	return fn(t.s.BatchUserTimes())
}

// BatchUserTime devuelve una copia del registro de la terna, o nil.
func (s *Store) BatchUserTime(batchID, userID int64, opType string) *entity.BatchUserTime {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t := (&BatchUserTimeRepo{s: s}).find(batchID, userID, opType)
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
