package repository

import (
	"context"

	"github.com/jhoicas/appwms-api/internal/domain/entity"
)

// ProductRepository define el puerto de lectura de productos (product.product).
type ProductRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	ListByIDs(ctx context.Context, ids []int64) ([]*entity.Product, error)
	// FindByBarcode busca por código de barras principal o adicional.
	FindByBarcode(ctx context.Context, barcode string) (*entity.Product, error)
}

// LotRepository define el puerto de lotes (stock.production.lot).
type LotRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.Lot, error)
	ListByProduct(ctx context.Context, productID int64) ([]*entity.Lot, error)
	// EarliestExpiring devuelve el lote del producto más próximo a vencer, o nil.
	EarliestExpiring(ctx context.Context, productID int64) (*entity.Lot, error)
	FindByName(ctx context.Context, name string) (*entity.Lot, error)
	Create(ctx context.Context, lot *entity.Lot) error
	Update(ctx context.Context, lot *entity.Lot) error
}
