package repository

import (
	"context"

	"github.com/jhoicas/appwms-api/internal/domain/entity"
)

// QuantFilter criterios de búsqueda de existencias; los campos en cero no filtran.
type QuantFilter struct {
	ProductID  int64
	LocationID int64
	LotID      int64
}

// QuantRepository define el puerto de lectura de existencias en ubicaciones internas (stock.quant).
type QuantRepository interface {
	List(ctx context.Context, f QuantFilter) ([]*entity.Quant, error)
}

// LocationRepository define el puerto de lectura de ubicaciones (stock.location).
type LocationRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Location, error)
	ListInternal(ctx context.Context) ([]*entity.Location, error)
	ListDocks(ctx context.Context) ([]*entity.Location, error)
	FindByBarcode(ctx context.Context, barcode string) (*entity.Location, error)
}

// NoveltyRepository define el puerto de novedades de picking.
type NoveltyRepository interface {
	List(ctx context.Context) ([]*entity.Novelty, error)
}
