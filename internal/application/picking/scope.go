package picking

import (
	"context"

	"github.com/jhoicas/appwms-api/internal/domain"
	"github.com/jhoicas/appwms-api/internal/domain/entity"
	"github.com/jhoicas/appwms-api/internal/domain/repository"
)

// LoadUser obtiene el usuario autenticado o domain.ErrUserNotFound.
func LoadUser(ctx context.Context, users repository.UserRepository, id int64) (*entity.User, error) {
	u, err := users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.Detail(domain.ErrUserNotFound, "Usuario no encontrado")
	}
	return u, nil
}

// AllowedWarehouses almacenes permitidos al usuario; sin almacenes devuelve domain.ErrNoWarehouses.
func AllowedWarehouses(ctx context.Context, warehouses repository.WarehouseRepository, u *entity.User) ([]*entity.Warehouse, error) {
	if len(u.AllowedWarehouseIDs) == 0 {
		return nil, domain.Detail(domain.ErrNoWarehouses, "El usuario no tiene acceso a ningún almacén")
	}
	return warehouses.ListByIDs(ctx, u.AllowedWarehouseIDs)
}

// BackorderFlag valor de crear_backorder; ausente equivale a true.
func BackorderFlag(v *bool) bool {
	return v == nil || *v
}
