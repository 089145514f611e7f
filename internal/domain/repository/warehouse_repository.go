package repository

import (
	"context"

	"github.com/jhoicas/appwms-api/internal/domain/entity"
)

// WarehouseRepository define el puerto de lectura de almacenes y tipos de operación del ERP.
type WarehouseRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Warehouse, error)
	ListByIDs(ctx context.Context, ids []int64) ([]*entity.Warehouse, error)
	// InternalPickingType devuelve el tipo de operación interna del almacén, o nil si no tiene.
	InternalPickingType(ctx context.Context, warehouseID int64) (*entity.PickingType, error)
}
