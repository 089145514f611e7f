package picking

import (
	"context"

	"github.com/google/uuid"
	"github.com/jhoicas/appwms-api/internal/domain/entity"
	"github.com/jhoicas/appwms-api/internal/domain/repository"
	"github.com/rs/zerolog/log"
)

// Journal registra cada línea enviada en el diario de postings.
// Un fallo del diario no invalida la línea ya escrita en el ERP: se registra como warning.
type Journal struct {
	repo repository.PostingRepository
}

// NewJournal construye el diario; repo nil desactiva el registro.
func NewJournal(repo repository.PostingRepository) *Journal {
	return &Journal{repo: repo}
}

// Record guarda el posting asignándole id y fecha de creación.
func (j *Journal) Record(ctx context.Context, p *entity.LinePosting) {
	if j == nil || j.repo == nil {
		return
	}
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if err := j.repo.Create(ctx, p); err != nil {
		log.Warn().Err(err).
			Str("kind", p.Kind).
			Int64("picking_id", p.PickingID).
			Int64("move_line_id", p.MoveLineID).
			Msg("no se pudo registrar el posting en el diario")
	}
}
