package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/appwms-api/internal/application/dto"
	"github.com/jhoicas/appwms-api/internal/application/version"
)

// VersionHandler versiones publicadas de la app móvil.
type VersionHandler struct {
	uc *version.UseCase
}

// NewVersionHandler construye el handler.
func NewVersionHandler(uc *version.UseCase) *VersionHandler {
	return &VersionHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar versión
// @Tags         versiones
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateVersionRequest  true  "version, release_date, notes, url_download"
// @Success      201  {object}  dto.MessageResponse{data=dto.VersionDetailResponse}
// @Failure      400  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.MessageResponse
// @Router       /api/create-version [post]
func (h *VersionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateVersionRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MessageResponse{
		Code: fiber.StatusCreated,
		Msg:  "Versión creada correctamente",
		Data: out,
	})
}

// List godoc
// @Summary      Listar versiones
// @Tags         versiones
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.DataResponse{result=[]dto.VersionResponse}
// @Router       /api/versions [get]
func (h *VersionHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, out)
}

// Last godoc
// @Summary      Última versión publicada
// @Tags         versiones
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.DataResponse{result=dto.VersionDetailResponse}
// @Failure      404  {object}  dto.MessageResponse
// @Router       /api/last-version [get]
func (h *VersionHandler) Last(c *fiber.Ctx) error {
	out, err := h.uc.Last(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, out)
}

// Delete godoc
// @Summary      Eliminar versión
// @Tags         versiones
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.DeleteVersionRequest  true  "version_id"
// @Success      200  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.MessageResponse
// @Router       /api/delete-version [post]
func (h *VersionHandler) Delete(c *fiber.Ctx) error {
	var in dto.DeleteVersionRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), in); err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, "Versión eliminada correctamente", nil)
}
