package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/appwms-api/internal/application/dto"
	"github.com/jhoicas/appwms-api/internal/application/timing"
)

// TimingHandler tiempos de inicio y fin de los batches.
type TimingHandler struct {
	uc *timing.UseCase
}

// NewTimingHandler construye el handler.
func NewTimingHandler(uc *timing.UseCase) *TimingHandler {
	return &TimingHandler{uc: uc}
}

// UpdateStartTime godoc
// @Summary      Registrar tiempo de inicio en un campo del batch
// @Tags         timing
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.UpdateStartTimeRequest  true  "picking_id, start_time, field_name"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.MessageResponse
// @Router       /api/update_start_time [post]
func (h *TimingHandler) UpdateStartTime(c *fiber.Ctx) error {
	var in dto.UpdateStartTimeRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	msg, err := h.uc.UpdateStartTime(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, msg, nil)
}

// UpdateEndTime godoc
// @Summary      Registrar tiempo de fin en un campo del batch
// @Tags         timing
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.UpdateEndTimeRequest  true  "picking_id, end_time, field_name"
// @Success      200  {object}  dto.MessageResponse
// @Failure      400  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.MessageResponse
// @Router       /api/update_end_time [post]
func (h *TimingHandler) UpdateEndTime(c *fiber.Ctx) error {
	var in dto.UpdateEndTimeRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	msg, err := h.uc.UpdateEndTime(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, msg, nil)
}

// StartBatchUser godoc
// @Summary      Registrar inicio de un usuario sobre un batch
// @Tags         timing
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.BatchUserStartRequest  true  "id_batch, start_time, user_id, operation_type"
// @Success      200  {object}  dto.MessageResponse{data=dto.BatchUserTimeResponse}
// @Failure      400  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.MessageResponse
// @Router       /api/start_time_batch_user [post]
func (h *TimingHandler) StartBatchUser(c *fiber.Ctx) error {
	var in dto.BatchUserStartRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.StartBatchUser(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, "Registro creado con éxito", out)
}

// EndBatchUser godoc
// @Summary      Registrar fin de un usuario sobre un batch
// @Tags         timing
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.BatchUserEndRequest  true  "id_batch, end_time, user_id, operation_type"
// @Success      200  {object}  dto.MessageResponse{data=dto.BatchUserTimeResponse}
// @Failure      400  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.MessageResponse
// @Router       /api/end_time_batch_user [post]
func (h *TimingHandler) EndBatchUser(c *fiber.Ctx) error {
	var in dto.BatchUserEndRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.EndBatchUser(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondMessage(c, "Registro actualizado con éxito", out)
}
