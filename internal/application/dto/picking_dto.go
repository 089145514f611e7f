package dto

import "github.com/shopspring/decimal"

// BarcodeInfo código de barras adicional de un producto.
type BarcodeInfo struct {
	Barcode   string `json:"barcode"`
	IDMove    int64  `json:"id_move"`
	IDProduct int64  `json:"id_product"`
	BatchID   int64  `json:"batch_id"`
}

// PackingInfo empaque de un producto.
type PackingInfo struct {
	Barcode   string          `json:"barcode"`
	Cantidad  decimal.Decimal `json:"cantidad"`
	IDMove    int64           `json:"id_move"`
	IDProduct int64           `json:"id_product"`
	BatchID   int64           `json:"batch_id,omitempty"`
}

// ProductInfo datos de producto repetidos en cada línea.
type ProductInfo struct {
	ProductID       int64           `json:"product_id"`
	ProductName     string          `json:"product_name"`
	ProductCode     string          `json:"product_code"`
	ProductBarcode  string          `json:"product_barcode"`
	ProductTracking string          `json:"product_tracking"`
	DiasVencimiento int             `json:"dias_vencimiento"`
	OtherBarcodes   []BarcodeInfo   `json:"other_barcodes"`
	ProductPacking  []PackingInfo   `json:"product_packing"`
	Weight          decimal.Decimal `json:"weight"`
}

// LocationInfo ubicaciones origen/destino de una línea.
type LocationInfo struct {
	LocationDestID      int64  `json:"location_dest_id"`
	LocationDestName    string `json:"location_dest_name"`
	LocationDestBarcode string `json:"location_dest_barcode"`
	LocationID          int64  `json:"location_id"`
	LocationName        string `json:"location_name"`
	LocationBarcode     string `json:"location_barcode"`
}

// AssignResponsibleRequest asignación de responsable a una recepción.
type AssignResponsibleRequest struct {
	IDRecepcion   int64 `json:"id_recepcion" validate:"required"`
	IDResponsable int64 `json:"id_responsable" validate:"required"`
}

// AssignTransferRequest asignación de responsable a una transferencia.
type AssignTransferRequest struct {
	IDTransferencia int64 `json:"id_transferencia" validate:"required"`
	IDResponsable   int64 `json:"id_responsable" validate:"required"`
}

// PickingStateResponse estado resumido de un picking tras una acción del ERP.
type PickingStateResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	State string `json:"state"`
}
