package repository

import (
	"context"

	"github.com/jhoicas/appwms-api/internal/domain/entity"
)

// UserRepository define el puerto de lectura de usuarios del ERP.
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*entity.User, error)
}

// PermissionRepository resuelve el rol WMS, las banderas de la app y la configuración general.
// GetWMSRole devuelve found=false si el usuario no está registrado en el módulo WMS.
type PermissionRepository interface {
	GetWMSRole(ctx context.Context, userID int64) (role string, found bool, err error)
	GetAppPermissions(ctx context.Context, userID int64) (*entity.AppPermissions, error)
	GetGeneralConfig(ctx context.Context) (*entity.GeneralConfig, error)
}

// Authenticator valida credenciales contra el ERP y devuelve el id del usuario (0 si no son válidas).
type Authenticator interface {
	Authenticate(ctx context.Context, login, password string) (int64, error)
}
