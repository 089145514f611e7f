package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/appwms-api/internal/application/dto"
	"github.com/jhoicas/appwms-api/internal/application/transfer"
	"github.com/jhoicas/appwms-api/internal/domain"
)

// TransferHandler transferencias internas.
type TransferHandler struct {
	uc *transfer.UseCase
}

// NewTransferHandler construye el handler.
func NewTransferHandler(uc *transfer.UseCase) *TransferHandler {
	return &TransferHandler{uc: uc}
}

// List godoc
// @Summary      Transferencias pendientes del usuario
// @Tags         transferencias
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.DataResponse{result=[]dto.TransferResponse}
// @Failure      400  {object}  dto.MessageResponse
// @Router       /api/transferencias [get]
func (h *TransferHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, out)
}

// Get godoc
// @Summary      Detalle de una transferencia
// @Tags         transferencias
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  int  true  "ID de la transferencia"
// @Success      200  {object}  dto.DataResponse{result=dto.TransferResponse}
// @Failure      403  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.MessageResponse
// @Router       /api/transferencias/{id} [get]
func (h *TransferHandler) Get(c *fiber.Ctx) error {
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

// QuickInfo godoc
// @Summary      Consulta rápida por código escaneado
// @Tags         transferencias
// @Produce      json
// @Security     BearerAuth
// @Param        barcode  query  string  true  "Código de producto, ubicación o lote"
// @Success      200  {object}  dto.DataResponse{result=dto.QuickInfoResponse}
// @Failure      400  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.MessageResponse
// @Router       /api/transferencias/quickinfo [get]
func (h *TransferHandler) QuickInfo(c *fiber.Ctx) error {
	barcode := strings.TrimSpace(c.Query("barcode"))
	if barcode == "" {
		return respondError(c, domain.Detail(domain.ErrInvalidInput, "El parámetro 'barcode' es requerido"))
	}
	out, err := h.uc.QuickInfo(c.UserContext(), barcode)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, out)
}

// Send godoc
// @Summary      Enviar líneas de una transferencia
// @Tags         transferencias
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.SendTransferRequest  true  "id_transferencia, list_items"
// @Success      200  {object}  dto.DataResponse{result=[]dto.LineResult}
// @Failure      400  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.MessageResponse
// @Router       /api/send_transfer [post]
func (h *TransferHandler) Send(c *fiber.Ctx) error {
	var in dto.SendTransferRequest
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
// @Summary      Validar una transferencia
// @Tags         transferencias
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CompleteTransferRequest  true  "id_transferencia, crear_backorder"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.MessageResponse
// @Router       /api/complete_transfer [post]
func (h *TransferHandler) Complete(c *fiber.Ctx) error {
	var in dto.CompleteTransferRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	msg, err := h.uc.Complete(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, msg, nil)
}

// CheckAvailability godoc
// @Summary      Comprobar disponibilidad
// @Tags         transferencias
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CheckAvailabilityRequest  true  "id_transferencia"
// @Success      200  {object}  dto.DataResponse{result=dto.PickingStateResponse}
// @Failure      403  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.MessageResponse
// @Router       /api/comprobar_disponibilidad [post]
func (h *TransferHandler) CheckAvailability(c *fiber.Ctx) error {
	var in dto.CheckAvailabilityRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.CheckAvailability(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, out)
}

// Create godoc
// @Summary      Crear transferencia interna
// @Tags         transferencias
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateTransferRequest  true  "id_almacen, lineas"
// @Success      200  {object}  dto.DataResponse{result=dto.PickingStateResponse}
// @Failure      400  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.MessageResponse
// @Router       /api/crear_transferencia [post]
func (h *TransferHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransferRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, out)
}

// AssignResponsible godoc
// @Summary      Asignar responsable a una transferencia
// @Tags         transferencias
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.AssignTransferRequest  true  "id_transferencia, id_responsable"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.MessageResponse
// @Failure      403  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.MessageResponse
// @Router       /api/transferencias/asignar [post]
func (h *TransferHandler) AssignResponsible(c *fiber.Ctx) error {
	var in dto.AssignTransferRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	if err := h.uc.AssignResponsible(c.UserContext(), GetUserID(c), in); err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, "Responsable asignado correctamente", nil)
}
