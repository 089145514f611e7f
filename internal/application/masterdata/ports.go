package masterdata

import (
	"context"
	"time"
)

// Cache almacén de respuestas de datos maestros. Get devuelve found=false si la clave no existe.
type Cache interface {
	Get(ctx context.Context, key string, dst any) (found bool, err error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

// Claves de caché.
const (
	cacheKeyDocks     = "masterdata:muelles"
	cacheKeyNovelties = "masterdata:picking_novelties"
	cacheKeyLocations = "masterdata:ubicaciones"
)
