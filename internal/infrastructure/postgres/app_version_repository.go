package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/appwms-api/internal/domain/entity"
	"github.com/jhoicas/appwms-api/internal/domain/repository"
)

var _ repository.AppVersionRepository = (*AppVersionRepo)(nil)

const appVersionColumns = `id, version, release_date, notes, url_download, created_at`

// AppVersionRepo versiones de la app sobre PostgreSQL.
type AppVersionRepo struct {
	q Querier
}

// NewAppVersionRepository construye el adaptador.
func NewAppVersionRepository(q Querier) *AppVersionRepo {
	return &AppVersionRepo{q: q}
}

// Create persiste la versión y completa ID y CreatedAt.
func (r *AppVersionRepo) Create(ctx context.Context, v *entity.AppVersion) error {
	query := `
		INSERT INTO app_versions (version, release_date, notes, url_download)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`
	if err := r.q.QueryRow(ctx, query, v.Version, v.ReleaseDate, v.Notes, v.URLDownload).Scan(&v.ID, &v.CreatedAt); err != nil {
		return fmt.Errorf("insert app version: %w", err)
	}
	return nil
}

// List devuelve las versiones de la más reciente a la más antigua.
func (r *AppVersionRepo) List(ctx context.Context) ([]*entity.AppVersion, error) {
	rows, err := r.q.Query(ctx, `SELECT `+appVersionColumns+` FROM app_versions ORDER BY id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list app versions: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.AppVersion, 0)
	for rows.Next() {
		v, err := scanAppVersion(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

// Last devuelve la versión de mayor id, o nil.
func (r *AppVersionRepo) Last(ctx context.Context) (*entity.AppVersion, error) {
	row := r.q.QueryRow(ctx, `SELECT `+appVersionColumns+` FROM app_versions ORDER BY id DESC LIMIT 1`)
	v, err := scanAppVersion(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return v, err
}

// GetByID obtiene una versión por id, o nil.
func (r *AppVersionRepo) GetByID(ctx context.Context, id int64) (*entity.AppVersion, error) {
	row := r.q.QueryRow(ctx, `SELECT `+appVersionColumns+` FROM app_versions WHERE id = $1`, id)
	v, err := scanAppVersion(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return v, err
}

// Delete elimina la versión.
func (r *AppVersionRepo) Delete(ctx context.Context, id int64) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM app_versions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete app version: %w", err)
	}
	return nil
}

func scanAppVersion(row pgx.Row) (*entity.AppVersion, error) {
	var (
		v     entity.AppVersion
		notes *string
		url   *string
	)
	if err := row.Scan(&v.ID, &v.Version, &v.ReleaseDate, &notes, &url, &v.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan app version: %w", err)
	}
	if notes != nil {
		v.Notes = *notes
	}
	if url != nil {
		v.URLDownload = *url
	}
	return &v, nil
}
