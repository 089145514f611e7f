package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/appwms-api/internal/application/dto"
	"github.com/jhoicas/appwms-api/pkg/jwt"
)

// Locals keys para el usuario autenticado en Fiber.
const (
	LocalUserID = "user_id"
	LocalLogin  = "login"
	LocalRole   = "rol"
)

func unauthorized(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.MessageResponse{Code: fiber.StatusUnauthorized, Msg: msg})
}

// AuthMiddleware valida el Bearer Token JWT y deja el usuario, login y rol en c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return unauthorized(c, "Token de autorización requerido")
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return unauthorized(c, "Formato de autorización inválido: Bearer <token>")
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return unauthorized(c, "Token de autorización requerido")
		}
		userID, login, role, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return unauthorized(c, "Token inválido o expirado")
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalLogin, login)
		c.Locals(LocalRole, role)
		return c.Next()
	}
}

// RequireRole permite el paso solo a los roles WMS indicados. Usar después de AuthMiddleware.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return unauthorized(c, "El token no incluye un rol")
		}
		for _, r := range roles {
			if strings.EqualFold(r, role) {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.MessageResponse{
			Code: fiber.StatusForbidden,
			Msg:  "No tienes permisos para realizar esta acción",
		})
	}
}

// GetUserID devuelve el id del usuario autenticado, o 0.
func GetUserID(c *fiber.Ctx) int64 {
	id, _ := c.Locals(LocalUserID).(int64)
	return id
}

// GetLogin devuelve el login del usuario autenticado.
func GetLogin(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalLogin).(string)
	return s
}

// GetRole devuelve el rol WMS del usuario autenticado.
func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRole).(string)
	return s
}
