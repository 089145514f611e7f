package odoo

import (
	"context"
	"time"

	"github.com/goccy/go-json"

	"github.com/jhoicas/appwms-api/internal/domain"
	"github.com/jhoicas/appwms-api/internal/domain/entity"
	"github.com/jhoicas/appwms-api/internal/domain/repository"
)

var _ repository.BatchRepository = (*BatchRepository)(nil)

const batchModel = "stock.picking.batch"

// BatchRepository implementa repository.BatchRepository sobre stock.picking.batch.
type BatchRepository struct {
	c *Client
}

func NewBatchRepository(c *Client) *BatchRepository {
	return &BatchRepository{c: c}
}

func (r *BatchRepository) GetByID(ctx context.Context, id int64) (*entity.Batch, error) {
	var rows []struct {
		ID   int64 `json:"id"`
		Name Str   `json:"name"`
	}
	if err := r.c.SearchRead(ctx, batchModel, Domain{Cond("id", "=", id)}, Query{Fields: []string{"id", "name"}, Limit: 1}, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &entity.Batch{ID: rows[0].ID, Name: string(rows[0].Name)}, nil
}

func (r *BatchRepository) checkField(ctx context.Context, field string) error {
	ok, err := r.c.HasField(ctx, batchModel, field)
	if err != nil {
		return err
	}
	if !ok {
		return domain.Detail(domain.ErrInvalidInput, "El campo '%s' no existe en el batch", field)
	}
	return nil
}

func (r *BatchRepository) ReadTime(ctx context.Context, batchID int64, field string) (*time.Time, error) {
	if err := r.checkField(ctx, field); err != nil {
		return nil, err
	}
	var rows []map[string]json.RawMessage
	if err := r.c.SearchRead(ctx, batchModel, Domain{Cond("id", "=", batchID)}, Query{Fields: []string{field}, Limit: 1}, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, domain.Detail(domain.ErrNotFound, "Batch %d no encontrado", batchID)
	}
	var t Time
	if raw, ok := rows[0][field]; ok {
		if err := json.Unmarshal(raw, &t); err != nil {
			return nil, err
		}
	}
	return t.Ptr(), nil
}

func (r *BatchRepository) WriteTime(ctx context.Context, batchID int64, field string, t time.Time) error {
	if err := r.checkField(ctx, field); err != nil {
		return err
	}
	return r.c.Write(ctx, batchModel, []int64{batchID}, map[string]any{field: formatTime(&t)})
}
