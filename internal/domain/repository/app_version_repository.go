package repository

import (
	"context"

	"github.com/jhoicas/appwms-api/internal/domain/entity"
)

// AppVersionRepository define el puerto de persistencia para versiones de la app.
type AppVersionRepository interface {
	Create(ctx context.Context, v *entity.AppVersion) error
	List(ctx context.Context) ([]*entity.AppVersion, error)
	// Last devuelve la versión de mayor id, o nil si no hay.
	Last(ctx context.Context) (*entity.AppVersion, error)
	GetByID(ctx context.Context, id int64) (*entity.AppVersion, error)
	Delete(ctx context.Context, id int64) error
}

// PostingRepository diario de líneas enviadas desde la app.
type PostingRepository interface {
	Create(ctx context.Context, p *entity.LinePosting) error
	ListByPicking(ctx context.Context, pickingID int64) ([]*entity.LinePosting, error)
}
