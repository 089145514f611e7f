package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/appwms-api/internal/application/dto"
	"github.com/jhoicas/appwms-api/internal/application/reception"
)

// ReceptionHandler recepciones de compra.
type ReceptionHandler struct {
	uc *reception.UseCase
}

// NewReceptionHandler construye el handler.
func NewReceptionHandler(uc *reception.UseCase) *ReceptionHandler {
	return &ReceptionHandler{uc: uc}
}

// List godoc
// @Summary      Recepciones pendientes del usuario
// @Tags         recepciones
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.DataResponse{result=[]dto.ReceptionResponse}
// @Failure      400  {object}  dto.MessageResponse
// @Router       /api/recepciones [get]
func (h *ReceptionHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, out)
}

// Get godoc
// @Summary      Detalle de una recepción
// @Tags         recepciones
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "ID de la recepción"
// @Success      200  {object}  dto.DataResponse{result=dto.ReceptionResponse}
// @Failure      403  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.MessageResponse
// @Router       /api/recepciones/{id} [get]
func (h *ReceptionHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Get(c.UserContext(), GetUserID(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, out)
}

// AssignResponsible godoc
// @Summary      Asignar responsable a una recepción
// @Tags         recepciones
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.AssignResponsibleRequest  true  "id_recepcion, id_responsable"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.MessageResponse
// @Router       /api/asignar_responsable [post]
func (h *ReceptionHandler) AssignResponsible(c *fiber.Ctx) error {
	var in dto.AssignResponsibleRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	if err := h.uc.AssignResponsible(c.UserContext(), in); err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, "Responsable asignado correctamente", nil)
}

// Send godoc
// @Summary      Enviar líneas recibidas
// @Tags         recepciones
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.SendReceptionRequest  true  "id_recepcion, list_items"
// @Success      200  {object}  dto.DataResponse{result=[]dto.LineResult}
// @Failure      400  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.MessageResponse
// @Router       /api/send_recepcion [post]
func (h *ReceptionHandler) Send(c *fiber.Ctx) error {
	var in dto.SendReceptionRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Send(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, out)
}

// Complete godoc
// @Summary      Validar una recepción
// @Tags         recepciones
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CompleteReceptionRequest  true  "id_recepcion, crear_backorder"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.MessageResponse
// @Router       /api/complete_recepcion [post]
func (h *ReceptionHandler) Complete(c *fiber.Ctx) error {
	var in dto.CompleteReceptionRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	msg, err := h.uc.Complete(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, msg, nil)
}
