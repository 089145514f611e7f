package dto

import "github.com/shopspring/decimal"

// ReceptionResponse recepción pendiente con sus líneas.
type ReceptionResponse struct {
	ID                 int64               `json:"id"`
	Name               string              `json:"name"`
	FechaCreacion      string              `json:"fecha_creacion"`
	ScheduledDate      string              `json:"scheduled_date,omitempty"`
	ProveedorID        int64               `json:"proveedor_id"`
	Proveedor          string              `json:"proveedor"`
	LocationDestID     int64               `json:"location_dest_id"`
	LocationDestName   string              `json:"location_dest_name"`
	PurchaseOrderID    int64               `json:"purchase_order_id"`
	PurchaseOrderName  string              `json:"purchase_order_name"`
	NumeroEntrada      string              `json:"numero_entrada"`
	PesoTotal          decimal.Decimal     `json:"peso_total"`
	NumeroLineas       int                 `json:"numero_lineas"`
	NumeroItems        decimal.Decimal     `json:"numero_items"`
	State              string              `json:"state"`
	Origin             string              `json:"origin"`
	Priority           string              `json:"priority"`
	WarehouseID        int64               `json:"warehouse_id"`
	WarehouseName      string              `json:"warehouse_name"`
	LocationID         int64               `json:"location_id"`
	LocationName       string              `json:"location_name"`
	ResponsableID      int64               `json:"responsable_id"`
	Responsable        string              `json:"responsable"`
	PickingType        string              `json:"picking_type"`
	StartTimeReception string              `json:"start_time_reception"`
	EndTimeReception   string              `json:"end_time_reception"`
	Lineas             []ReceptionLine     `json:"lineas_recepcion"`
	LineasEnviadas     []ReceptionSentLine `json:"lineas_recepcion_enviadas"`
}

// ReceptionLine movimiento pendiente de recibir.
type ReceptionLine struct {
	ID          int64 `json:"id"`
	IDMove      int64 `json:"id_move"`
	IDRecepcion int64 `json:"id_recepcion"`
	ProductInfo
	FechaVencimiento  string          `json:"fecha_vencimiento"`
	QuantityOrdered   decimal.Decimal `json:"quantity_ordered"`
	QuantityToReceive decimal.Decimal `json:"quantity_to_receive"`
	QuantityDone      decimal.Decimal `json:"quantity_done"`
	Uom               string          `json:"uom"`
	LocationInfo
	DetalleLineas []ReceptionLineDetail `json:"detalle_lineas,omitempty"`
}

// ReceptionLineDetail trazabilidad de una línea de movimiento.
type ReceptionLineDetail struct {
	ID                  int64           `json:"id"`
	QtyDone             decimal.Decimal `json:"qty_done"`
	QtyTodo             decimal.Decimal `json:"qty_todo"`
	ProductUomQty       decimal.Decimal `json:"product_uom_qty"`
	LotID               int64           `json:"lot_id"`
	LotName             string          `json:"lot_name"`
	ExpirationDate      string          `json:"expiration_date"`
	LocationID          int64           `json:"location_id"`
	LocationName        string          `json:"location_name"`
	LocationBarcode     string          `json:"location_barcode"`
	LocationDestID      int64           `json:"location_dest_id"`
	LocationDestName    string          `json:"location_dest_name"`
	LocationDestBarcode string          `json:"location_dest_barcode"`
	PackageID           int64           `json:"package_id"`
	PackageName         string          `json:"package_name"`
	ResultPackageID     int64           `json:"result_package_id"`
	ResultPackageName   string          `json:"result_package_name"`
}

// ReceptionSentLine línea ya enviada desde la app (is_done_item).
type ReceptionSentLine struct {
	ID                int64           `json:"id"`
	IDMoveLine        int64           `json:"id_move_line"`
	IDMove            int64           `json:"id_move"`
	IDRecepcion       int64           `json:"id_recepcion"`
	ProductID         int64           `json:"product_id"`
	ProductName       string          `json:"product_name"`
	ProductCode       string          `json:"product_code"`
	ProductBarcode    string          `json:"product_barcode"`
	ProductTracking   string          `json:"product_tracking"`
	QuantityOrdered   decimal.Decimal `json:"quantity_ordered"`
	QuantityToReceive decimal.Decimal `json:"quantity_to_receive"`
	QuantityDone      decimal.Decimal `json:"quantity_done"`
	Uom               string          `json:"uom"`
	LocationInfo
	IsDoneItem       bool            `json:"is_done_item"`
	DateTransaction  string          `json:"date_transaction"`
	Observation      string          `json:"observation"`
	Time             decimal.Decimal `json:"time"`
	UserOperatorID   int64           `json:"user_operator_id"`
	LotID            int64           `json:"lot_id"`
	LotName          string          `json:"lot_name"`
	FechaVencimiento string          `json:"fecha_vencimiento"`
}

// LineItem posting de una línea desde la app. En recepción IDMove/IDProducto identifican el
// movimiento; en transferencia IDMoveLine identifica la línea reservada.
type LineItem struct {
	IDMoveLine       int64           `json:"id_move_line"`
	IDMove           int64           `json:"id_move"`
	IDProducto       int64           `json:"id_producto"`
	LoteProducto     int64           `json:"lote_producto"`
	UbicacionDestino int64           `json:"ubicacion_destino"`
	CantidadSeparada decimal.Decimal `json:"cantidad_separada"`
	FechaTransaccion string          `json:"fecha_transaccion"`
	Observacion      string          `json:"observacion"`
	IDOperario       int64           `json:"id_operario"`
	TimeLine         decimal.Decimal `json:"time_line"`
	Dividida         bool            `json:"dividida"`
}

// SendReceptionRequest líneas recibidas de una recepción.
type SendReceptionRequest struct {
	IDRecepcion int64      `json:"id_recepcion" validate:"required"`
	ListItems   []LineItem `json:"list_items"`
}

// CompleteReceptionRequest finalización de una recepción. CrearBackorder es true por defecto.
type CompleteReceptionRequest struct {
	IDRecepcion    int64 `json:"id_recepcion" validate:"required"`
	CrearBackorder *bool `json:"crear_backorder"`
}

// LineResult resultado de cada línea enviada.
type LineResult struct {
	IDMoveLine       int64           `json:"id_move_line"`
	Producto         string          `json:"producto"`
	Cantidad         decimal.Decimal `json:"cantidad"`
	Lote             string          `json:"lote"`
	UbicacionDestino int64           `json:"ubicacion_destino"`
	FechaTransaccion string          `json:"fecha_transaccion"`
	DateTransaction  string          `json:"date_transaction"`
	NewObservation   string          `json:"new_observation"`
	Time             decimal.Decimal `json:"time"`
	UserOperatorID   int64           `json:"user_operator_id"`
	IsDoneItem       bool            `json:"is_done_item"`
	Dividida         bool            `json:"dividida,omitempty"`
}
