package timing

import (
	"context"

	"github.com/jhoicas/appwms-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción, pasando el repositorio de tiempos atado a esa tx.
type TxRunner interface {
	Run(ctx context.Context, fn func(times repository.BatchUserTimeRepository) error) error
}
