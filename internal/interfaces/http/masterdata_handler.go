package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/appwms-api/internal/application/dto"
	"github.com/jhoicas/appwms-api/internal/application/masterdata"
)

// MasterDataHandler configuración del usuario, muelles, novedades, ubicaciones y lotes.
type MasterDataHandler struct {
	uc *masterdata.UseCase
}

// NewMasterDataHandler construye el handler.
func NewMasterDataHandler(uc *masterdata.UseCase) *MasterDataHandler {
	return &MasterDataHandler{uc: uc}
}

// Configurations godoc
// @Summary      Configuración y permisos del usuario
// @Tags         masterdata
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.DataResponse{result=dto.ConfigurationResponse}
// @Failure      401  {object}  dto.MessageResponse
// @Router       /api/configurations [get]
func (h *MasterDataHandler) Configurations(c *fiber.Ctx) error {
	out, err := h.uc.Configurations(c.UserContext(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, out)
}

// Docks godoc
// @Summary      Muelles
// @Tags         masterdata
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.DataResponse{result=[]dto.DockResponse}
// @Router       /api/muelles [get]
func (h *MasterDataHandler) Docks(c *fiber.Ctx) error {
	out, err := h.uc.Docks(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, out)
}

// Novelties godoc
// @Summary      Novedades de picking
// @Tags         masterdata
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.DataResponse{result=[]dto.NoveltyResponse}
// @Router       /api/picking_novelties [get]
func (h *MasterDataHandler) Novelties(c *fiber.Ctx) error {
	out, err := h.uc.Novelties(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, out)
}

// Locations godoc
// @Summary      Ubicaciones internas activas
// @Tags         masterdata
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.DataResponse{result=[]dto.LocationResponse}
// @Router       /api/ubicaciones [get]
func (h *MasterDataHandler) Locations(c *fiber.Ctx) error {
	out, err := h.uc.Locations(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, out)
}

// Lots godoc
// @Summary      Lotes de un producto
// @Tags         masterdata
// @Produce      json
// @Security     BearerAuth
// @Param        product_id  path  int  true  "ID del producto"
// @Success      200  {object}  dto.DataResponse{result=[]dto.LotResponse}
// @Failure      400  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.MessageResponse
// @Router       /api/lotes/{product_id} [get]
func (h *MasterDataHandler) Lots(c *fiber.Ctx) error {
	id, err := paramID(c, "product_id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Lots(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, out)
}

// CreateLot godoc
// @Summary      Crear lote
// @Tags         masterdata
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.CreateLotRequest  true  "id_producto, nombre_lote, fecha_vencimiento"
// @Success      200  {object}  dto.DataResponse{result=dto.LotResponse}
// @Failure      400  {object}  dto.MessageResponse
// @Router       /api/create_lote [post]
func (h *MasterDataHandler) CreateLot(c *fiber.Ctx) error {
	var in dto.CreateLotRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.CreateLot(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, out)
}

// UpdateLot godoc
// @Summary      Actualizar lote
// @Tags         masterdata
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.UpdateLotRequest  true  "id_lote, nombre_lote, fecha_vencimiento"
// @Success      200  {object}  dto.DataResponse{result=dto.LotResponse}
// @Failure      400  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.MessageResponse
// @Router       /api/update_lote [post]
func (h *MasterDataHandler) UpdateLot(c *fiber.Ctx) error {
	var in dto.UpdateLotRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.UpdateLot(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return respondData(c, out)
}
