package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/appwms-api/internal/domain"
	"github.com/jhoicas/appwms-api/internal/domain/entity"
	"github.com/jhoicas/appwms-api/internal/domain/repository"
)

var _ repository.PostingRepository = (*PostingRepo)(nil)

// PostingRepo diario de postings de línea sobre PostgreSQL. La cantidad se guarda como NUMERIC.
type PostingRepo struct {
	q Querier
}

// NewPostingRepository construye el adaptador.
func NewPostingRepository(q Querier) *PostingRepo {
	return &PostingRepo{q: q}
}

// Create inserta el posting.
func (r *PostingRepo) Create(ctx context.Context, p *entity.LinePosting) error {
	query := `
		INSERT INTO line_postings (id, kind, picking_id, move_id, move_line_id, product_id, lot_id,
			location_dest_id, quantity, operator_id, user_id, observation, date_transaction, split)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING created_at`
	err := r.q.QueryRow(ctx, query,
		p.ID, p.Kind, p.PickingID, p.MoveID, p.MoveLineID, p.ProductID, nullID(p.LotID),
		nullID(p.LocationDestID), p.Quantity, nullID(p.OperatorID), p.UserID, p.Observation,
		p.DateTransaction, p.Split,
	).Scan(&p.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.Detail(domain.ErrDuplicate, "posting %s ya registrado", p.ID)
		}
		return fmt.Errorf("insert line posting: %w", err)
	}
	return nil
}

// ListByPicking devuelve los postings del picking en orden de registro.
func (r *PostingRepo) ListByPicking(ctx context.Context, pickingID int64) ([]*entity.LinePosting, error) {
	query := `
		SELECT id, kind, picking_id, move_id, move_line_id, product_id, COALESCE(lot_id, 0),
			COALESCE(location_dest_id, 0), quantity, COALESCE(operator_id, 0), user_id, observation,
			date_transaction, split, created_at
		FROM line_postings WHERE picking_id = $1 ORDER BY created_at, id`
	rows, err := r.q.Query(ctx, query, pickingID)
	if err != nil {
		return nil, fmt.Errorf("list line postings: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.LinePosting, 0)
	for rows.Next() {
		var p entity.LinePosting
		if err := rows.Scan(&p.ID, &p.Kind, &p.PickingID, &p.MoveID, &p.MoveLineID, &p.ProductID, &p.LotID,
			&p.LocationDestID, &p.Quantity, &p.OperatorID, &p.UserID, &p.Observation,
			&p.DateTransaction, &p.Split, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan line posting: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// nullID guarda 0 como NULL.
func nullID(id int64) *int64 {
	if id == 0 {
		return nil
	}
	return &id
}
