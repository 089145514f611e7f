package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/appwms-api/internal/domain/entity"
	"github.com/jhoicas/appwms-api/internal/domain/repository"
)

var _ repository.BatchUserTimeRepository = (*BatchUserTimeRepo)(nil)

// BatchUserTimeRepo tiempos por (batch, usuario, tipo de operación) sobre PostgreSQL (usable con pool o tx).
type BatchUserTimeRepo struct {
	q Querier
}

// NewBatchUserTimeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBatchUserTimeRepository(q Querier) *BatchUserTimeRepo {
	return &BatchUserTimeRepo{q: q}
}

// InsertStart inserta el inicio. La restricción única resuelve la carrera entre dos inicios simultáneos.
func (r *BatchUserTimeRepo) InsertStart(ctx context.Context, rec *entity.BatchUserTime) (bool, error) {
	query := `
		INSERT INTO batch_user_times (batch_id, user_id, operation_type, start_time)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (batch_id, user_id, operation_type) DO NOTHING
		RETURNING id, created_at, updated_at`
	err := r.q.QueryRow(ctx, query, rec.BatchID, rec.UserID, rec.OperationType, rec.StartTime).
		Scan(&rec.ID, &rec.CreatedAt, &rec.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("insert batch user time: %w", err)
	}
	return true, nil
}

// GetForUpdate bloquea la fila hasta el fin de la transacción.
func (r *BatchUserTimeRepo) GetForUpdate(ctx context.Context, batchID, userID int64, operationType string) (*entity.BatchUserTime, error) {
	query := `
		SELECT id, batch_id, user_id, operation_type, start_time, end_time, created_at, updated_at
		FROM batch_user_times
		WHERE batch_id = $1 AND user_id = $2 AND operation_type = $3
		FOR UPDATE`
	var t entity.BatchUserTime
	err := r.q.QueryRow(ctx, query, batchID, userID, operationType).Scan(
		&t.ID, &t.BatchID, &t.UserID, &t.OperationType, &t.StartTime, &t.EndTime, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch user time: %w", err)
	}
	return &t, nil
}

// SetEnd registra la hora de fin.
func (r *BatchUserTimeRepo) SetEnd(ctx context.Context, id int64, end time.Time) error {
	query := `UPDATE batch_user_times SET end_time = $1, updated_at = NOW() WHERE id = $2`
	tag, err := r.q.Exec(ctx, query, end, id)
	if err != nil {
		return fmt.Errorf("update batch user time: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update batch user time: id %d no existe", id)
	}
	return nil
}
