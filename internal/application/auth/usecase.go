package auth

import (
	"context"

	"github.com/jhoicas/appwms-api/internal/application/dto"
	"github.com/jhoicas/appwms-api/internal/application/validation"
	"github.com/jhoicas/appwms-api/internal/domain"
	"github.com/jhoicas/appwms-api/internal/domain/entity"
	"github.com/jhoicas/appwms-api/internal/domain/repository"
	"github.com/jhoicas/appwms-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase login contra el ERP y emisión del JWT de la API.
type AuthUseCase struct {
	authenticator repository.Authenticator
	userRepo      repository.UserRepository
	permRepo      repository.PermissionRepository
	jwtCfg        JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(authenticator repository.Authenticator, userRepo repository.UserRepository, permRepo repository.PermissionRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{authenticator: authenticator, userRepo: userRepo, permRepo: permRepo, jwtCfg: jwtCfg}
}

// Login valida las credenciales en el ERP, resuelve el rol WMS y genera el token.
// Un usuario sin registro WMS recibe el rol USER; /api/configurations le negará el acceso.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	uid, err := uc.authenticator.Authenticate(ctx, in.Login, in.Password)
	if err != nil {
		return nil, err
	}
	if uid == 0 {
		return nil, domain.Detail(domain.ErrUnauthorized, "Credenciales inválidas")
	}
	user, err := uc.userRepo.GetByID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.Detail(domain.ErrUnauthorized, "Credenciales inválidas")
	}
	role, _, err := uc.permRepo.GetWMSRole(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if role == "" {
		role = entity.RoleUser
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Login, role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User: dto.UserResponse{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
			Rol:   role,
		},
	}, nil
}
