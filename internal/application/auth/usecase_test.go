package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/appwms-api/internal/application/auth"
	"github.com/jhoicas/appwms-api/internal/application/dto"
	"github.com/jhoicas/appwms-api/internal/domain"
	"github.com/jhoicas/appwms-api/internal/domain/entity"
	"github.com/jhoicas/appwms-api/internal/infrastructure/memory"
	"github.com/jhoicas/appwms-api/pkg/jwt"
)

const testSecret = "secreto-de-pruebas"

func newAuth() *auth.AuthUseCase {
	s := memory.NewStore()
	s.AddUser(entity.User{ID: 2, Name: "Admin", Email: "admin@example.com"}, "admin", "clave")
	s.AddUser(entity.User{ID: 9, Name: "Sin WMS"}, "nowms", "clave")
	s.SetWMSRole(2, entity.RoleAdmin)
	return auth.NewAuthUseCase(s.Auth(), s.Users(), s.Permissions(), auth.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "appwms-api"})
}

func TestLogin_Correcto(t *testing.T) {
	uc := newAuth()

	resp, err := uc.Login(context.Background(), dto.LoginRequest{Login: "admin", Password: "clave"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.User.ID)
	assert.Equal(t, entity.RoleAdmin, resp.User.Rol)

	uid, login, role, err := jwt.Parse(testSecret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, int64(2), uid)
	assert.Equal(t, "admin", login)
	assert.Equal(t, entity.RoleAdmin, role)
}

func TestLogin_SinRolWMSEsUser(t *testing.T) {
	uc := newAuth()

	resp, err := uc.Login(context.Background(), dto.LoginRequest{Login: "nowms", Password: "clave"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, resp.User.Rol)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc := newAuth()

	_, err := uc.Login(context.Background(), dto.LoginRequest{Login: "admin", Password: "otra"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
	assert.Equal(t, "Credenciales inválidas", err.Error())
}

func TestLogin_CamposRequeridos(t *testing.T) {
	uc := newAuth()

	_, err := uc.Login(context.Background(), dto.LoginRequest{Login: "admin"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}
