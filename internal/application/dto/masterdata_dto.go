package dto

import "github.com/shopspring/decimal"

// ConfigurationResponse usuario, rol WMS, opción de muelle y banderas de UI.
type ConfigurationResponse struct {
	Name         string  `json:"name"`
	ID           int64   `json:"id"`
	LastName     string  `json:"last_name"`
	Email        string  `json:"email"`
	Rol          string  `json:"rol"`
	MuelleOption *string `json:"muelle_option"`

	LocationPickingManual          bool `json:"location_picking_manual"`
	ManualProductSelection         bool `json:"manual_product_selection"`
	ManualQuantity                 bool `json:"manual_quantity"`
	ManualSpringSelection          bool `json:"manual_spring_selection"`
	ShowDetallesPicking            bool `json:"show_detalles_picking"`
	ShowNextLocationsInDetails     bool `json:"show_next_locations_in_details"`
	LocationPackManual             bool `json:"location_pack_manual"`
	ShowDetallesPack               bool `json:"show_detalles_pack"`
	ShowNextLocationsInDetailsPack bool `json:"show_next_locations_in_details_pack"`
	ManualProductSelectionPack     bool `json:"manual_product_selection_pack"`
	ManualQuantityPack             bool `json:"manual_quantity_pack"`
	ManualSpringSelectionPack      bool `json:"manual_spring_selection_pack"`
	ScanProduct                    bool `json:"scan_product"`
	AllowMoveExcess                bool `json:"allow_move_excess"`
	HideExpectedQty                bool `json:"hide_expected_qty"`
	ManualProductReading           bool `json:"manual_product_reading"`
	ManualSourceLocation           bool `json:"manual_source_location"`
	ShowOwnerField                 bool `json:"show_owner_field"`
}

// DockResponse muelle (ubicación interna marcada como muelle).
type DockResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	CompleteName string `json:"complete_name"`
	LocationID   *int64 `json:"location_id"`
	Barcode      string `json:"barcode"`
}

// NoveltyResponse novedad de picking.
type NoveltyResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

// LocationResponse ubicación interna activa.
type LocationResponse struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Barcode      string `json:"barcode"`
	LocationID   int64  `json:"location_id"`
	LocationName string `json:"location_name"`
}

// LotResponse lote de un producto.
type LotResponse struct {
	ID             int64           `json:"id"`
	Name           string          `json:"name"`
	Quantity       decimal.Decimal `json:"quantity"`
	ExpirationDate string          `json:"expiration_date"`
	AlertDate      string          `json:"alert_date"`
	UseDate        string          `json:"use_date"`
	RemovalDate    string          `json:"removal_date,omitempty"`
	ProductID      int64           `json:"product_id"`
	ProductName    string          `json:"product_name"`
}

// CreateLotRequest alta de lote.
type CreateLotRequest struct {
	IDProducto       int64  `json:"id_producto" validate:"required"`
	NombreLote       string `json:"nombre_lote" validate:"required"`
	FechaVencimiento string `json:"fecha_vencimiento"`
}

// UpdateLotRequest actualización de nombre y vencimiento de un lote.
type UpdateLotRequest struct {
	IDLote           int64  `json:"id_lote" validate:"required"`
	NombreLote       string `json:"nombre_lote" validate:"required"`
	FechaVencimiento string `json:"fecha_vencimiento"`
}
