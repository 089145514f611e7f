package dto

import "github.com/shopspring/decimal"

// TransferResponse transferencia interna pendiente con sus líneas reservadas.
type TransferResponse struct {
	ID                  int64           `json:"id"`
	Name                string          `json:"name"`
	FechaCreacion       string          `json:"fecha_creacion"`
	LocationID          int64           `json:"location_id"`
	LocationName        string          `json:"location_name"`
	LocationDestID      int64           `json:"location_dest_id"`
	LocationDestName    string          `json:"location_dest_name"`
	NumeroTransferencia string          `json:"numero_transferencia"`
	PesoTotal           decimal.Decimal `json:"peso_total"`
	NumeroLineas        int             `json:"numero_lineas"`
	NumeroItems         decimal.Decimal `json:"numero_items"`
	State               string          `json:"state"`
	Origin              string          `json:"origin"`
	Priority            string          `json:"priority"`
	WarehouseID         int64           `json:"warehouse_id"`
	WarehouseName       string          `json:"warehouse_name"`
	ResponsableID       int64           `json:"responsable_id"`
	Responsable         string          `json:"responsable"`
	PickingType         string          `json:"picking_type"`
	Lineas              []TransferLine  `json:"lineas_transferencia"`
	LineasEnviadas      []TransferLine  `json:"lineas_transferencia_enviadas"`
}

// TransferLine línea de movimiento reservada.
type TransferLine struct {
	ID              int64 `json:"id"`
	IDMove          int64 `json:"id_move"`
	IDTransferencia int64 `json:"id_transferencia"`
	ProductInfo
	QuantityOrdered    decimal.Decimal `json:"quantity_ordered"`
	QuantityToTransfer decimal.Decimal `json:"quantity_to_transfer"`
	QuantityDone       decimal.Decimal `json:"quantity_done"`
	Uom                string          `json:"uom"`
	LocationInfo
	LotID            int64  `json:"lot_id"`
	LotName          string `json:"lot_name"`
	FechaVencimiento string `json:"fecha_vencimiento"`
}

// SendTransferRequest líneas procesadas de una transferencia.
type SendTransferRequest struct {
	IDTransferencia int64      `json:"id_transferencia" validate:"required"`
	ListItems       []LineItem `json:"list_items"`
}

// CompleteTransferRequest finalización de una transferencia. CrearBackorder es true por defecto.
type CompleteTransferRequest struct {
	IDTransferencia int64 `json:"id_transferencia" validate:"required"`
	CrearBackorder  *bool `json:"crear_backorder"`
}

// CheckAvailabilityRequest re-cálculo de reservas.
type CheckAvailabilityRequest struct {
	IDTransferencia int64 `json:"id_transferencia" validate:"required"`
}

// CreateTransferRequest alta de transferencia interna.
type CreateTransferRequest struct {
	IDAlmacen      int64                `json:"id_almacen" validate:"required"`
	LocationID     int64                `json:"location_id"`
	LocationDestID int64                `json:"location_dest_id"`
	Origin         string               `json:"origin"`
	Lineas         []CreateTransferLine `json:"lineas" validate:"required,min=1,dive"`
}

// CreateTransferLine producto y cantidad a transferir.
type CreateTransferLine struct {
	IDProducto int64           `json:"id_producto" validate:"required"`
	Cantidad   decimal.Decimal `json:"cantidad"`
}

// QuickInfoResponse resultado de la consulta rápida por código escaneado.
type QuickInfoResponse struct {
	Type        string      `json:"type"` // product, location, lot
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Barcode     string      `json:"barcode"`
	ProductCode string      `json:"product_code,omitempty"`
	Tracking    string      `json:"tracking,omitempty"`
	Uom         string      `json:"uom,omitempty"`
	Existencias []QuantInfo `json:"existencias"`
}

// QuantInfo existencia en una ubicación interna.
type QuantInfo struct {
	ProductID       int64           `json:"product_id"`
	ProductName     string          `json:"product_name"`
	LocationID      int64           `json:"location_id"`
	LocationName    string          `json:"location_name"`
	LocationBarcode string          `json:"location_barcode"`
	LotID           int64           `json:"lot_id"`
	LotName         string          `json:"lot_name"`
	Quantity        decimal.Decimal `json:"quantity"`
	Reserved        decimal.Decimal `json:"reserved_quantity"`
}
