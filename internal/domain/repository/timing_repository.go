package repository

import (
	"context"
	"time"

	"github.com/jhoicas/appwms-api/internal/domain/entity"
)

// BatchRepository define el puerto de lotes de picking (stock.picking.batch) y sus campos de tiempo.
type BatchRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Batch, error)
	// ReadTime devuelve el valor del campo de tiempo o nil si no está registrado.
	ReadTime(ctx context.Context, batchID int64, field string) (*time.Time, error)
	WriteTime(ctx context.Context, batchID int64, field string, t time.Time) error
}

// BatchUserTimeRepository persiste los tiempos por (batch, usuario, tipo de operación).
type BatchUserTimeRepository interface {
	// InsertStart inserta el inicio; inserted=false si ya existía la terna.
	InsertStart(ctx context.Context, rec *entity.BatchUserTime) (inserted bool, err error)
	// GetForUpdate bloquea el registro dentro de la transacción (SELECT ... FOR UPDATE). nil si no existe.
	GetForUpdate(ctx context.Context, batchID, userID int64, operationType string) (*entity.BatchUserTime, error)
	SetEnd(ctx context.Context, id int64, end time.Time) error
}
