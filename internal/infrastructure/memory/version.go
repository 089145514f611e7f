package memory

import (
	"context"
	"time"

	"github.com/jhoicas/appwms-api/internal/domain/entity"
	"github.com/jhoicas/appwms-api/internal/domain/repository"
)

var (
	_ repository.AppVersionRepository = (*AppVersionRepo)(nil)
	_ repository.PostingRepository    = (*PostingRepo)(nil)
)

// AppVersionRepo implementa repository.AppVersionRepository.
type AppVersionRepo struct{ s *Store }

// Versions devuelve el repositorio de versiones.
func (s *Store) Versions() *AppVersionRepo { return &AppVersionRepo{s: s} }

func (r *AppVersionRepo) Create(_ context.Context, v *entity.AppVersion) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	v.ID = r.s.newID()
	v.CreatedAt = time.Now().UTC()
	c := *v
	r.s.versions[c.ID] = &c
	return nil
}

// List devuelve las versiones de la más reciente a la más antigua.
func (r *AppVersionRepo) List(_ context.Context) ([]*entity.AppVersion, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	keys := sortedKeys(r.s.versions)
	out := make([]*entity.AppVersion, 0, len(keys))
	for i := len(keys) - 1; i >= 0; i-- {
		c := *r.s.versions[keys[i]]
		out = append(out, &c)
	}
	return out, nil
}

func (r *AppVersionRepo) Last(ctx context.Context) (*entity.AppVersion, error) {
	list, err := r.List(ctx)
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return list[0], nil
}

func (r *AppVersionRepo) GetByID(_ context.Context, id int64) (*entity.AppVersion, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	v, ok := r.s.versions[id]
	if !ok {
		return nil, nil
	}
	c := *v
	return &c, nil
}

func (r *AppVersionRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.versions, id)
	return nil
}

// PostingRepo implementa repository.PostingRepository.
type PostingRepo struct{ s *Store }

// PostingJournal devuelve el repositorio del diario de postings.
func (s *Store) PostingJournal() *PostingRepo { return &PostingRepo{s: s} }

func (r *PostingRepo) Create(_ context.Context, p *entity.LinePosting) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	c := *p
	r.s.postings = append(r.s.postings, &c)
	return nil
}

func (r *PostingRepo) ListByPicking(_ context.Context, pickingID int64) ([]*entity.LinePosting, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.LinePosting, 0)
	for _, p := range r.s.postings {
		if p.PickingID == pickingID {
			c := *p
			out = append(out, &c)
		}
	}
	return out, nil
}
