package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/appwms-api/internal/application/dto"
	"github.com/jhoicas/appwms-api/internal/domain"
)

// statusFor traduce un error de dominio al código HTTP.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrBusinessRule),
		errors.Is(err, domain.ErrDuplicate),
		errors.Is(err, domain.ErrNoWarehouses),
		errors.Is(err, domain.ErrLotRequired),
		errors.Is(err, domain.ErrStartMissing),
		errors.Is(err, domain.ErrEndBeforeStart),
		errors.Is(err, domain.ErrAlreadyAssigned),
		errors.Is(err, domain.ErrNoPendingWork),
		errors.Is(err, domain.ErrUnsupportedWizard):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrNoWMSAccess):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusNotFound
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError escribe el error con el envoltorio {code, msg}.
func respondError(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	msg := err.Error()
	if status == fiber.StatusInternalServerError {
		log.Error().Err(err).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Msg("error interno")
		msg = "Error interno: " + msg
	}
	return c.Status(status).JSON(dto.MessageResponse{Code: status, Msg: msg})
}

func respondData(c *fiber.Ctx, result any) error {
	return c.Status(fiber.StatusOK).JSON(dto.DataResponse{Code: fiber.StatusOK, Result: result})
}

func respondMessage(c *fiber.Ctx, msg string, data any) error {
	return c.Status(fiber.StatusOK).JSON(dto.MessageResponse{Code: fiber.StatusOK, Msg: msg, Data: data})
}

// parseBody decodifica el cuerpo JSON; un cuerpo vacío deja dst en cero.
func parseBody(c *fiber.Ctx, dst any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(dst); err != nil {
		return domain.Detail(domain.ErrInvalidInput, "Cuerpo de la solicitud inválido")
	}
	return nil
}

// paramID lee un parámetro de ruta entero positivo.
func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, domain.Detail(domain.ErrInvalidInput, "El parámetro '%s' no es válido", name)
	}
	return int64(id), nil
}

// ErrorHandler manejador de errores de Fiber (rutas inexistentes, pánicos recuperados, 429).
func ErrorHandler(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		status = fe.Code
	} else {
		return respondError(c, err)
	}
	return c.Status(status).JSON(dto.MessageResponse{Code: status, Msg: fe.Message})
}
