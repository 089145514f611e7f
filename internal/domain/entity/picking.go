package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un picking (stock.picking.state) y de sus movimientos.
const (
	StateDraft     = "draft"
	StateWaiting   = "waiting"
	StateConfirmed = "confirmed"
	StateAssigned  = "assigned"
	StateDone      = "done"
	StateCancel    = "cancel"
)

// Códigos de tipo de operación.
const (
	PickingTypeIncoming = "incoming"
	PickingTypeInternal = "internal"

	SequenceCodeInternal = "INT"
)

// LocationRef referencia compacta a una ubicación tal como se expone en las líneas.
type LocationRef struct {
	ID      int64
	Name    string // display_name
	Barcode string
}

// Picking documento de recepción o transferencia (stock.picking).
// El ciclo de estados (draft → waiting → assigned → done, con backorder) lo gobierna el ERP.
type Picking struct {
	ID              int64
	Name            string
	State           string
	TypeCode        string
	SequenceCode    string
	PickingTypeID   int64
	PickingTypeName string
	WarehouseID     int64
	WarehouseName   string
	Location        LocationRef
	LocationDest    LocationRef
	PartnerID       int64
	PartnerName     string
	ResponsibleID   int64
	ResponsibleName string
	Origin          string
	Priority        string
	PurchaseID      int64
	PurchaseName    string
	BackorderID     int64
	IsReturn        bool
	CreateDate      time.Time
	ScheduledDate   *time.Time
	StartReception  *time.Time
	EndReception    *time.Time
}

// IsClosed indica si el picking ya no admite postings.
func (p *Picking) IsClosed() bool {
	return p.State == StateDone || p.State == StateCancel
}

// Move cantidad planificada de un producto dentro de un picking (stock.move).
type Move struct {
	ID           int64
	PickingID    int64
	ProductID    int64
	ProductName  string
	ProductQty   decimal.Decimal // cantidad a mover
	OrderedQty   decimal.Decimal // cantidad de la línea de compra, o ProductQty si no hay compra
	QuantityDone decimal.Decimal
	UomID        int64
	UomName      string
	Location     LocationRef
	LocationDest LocationRef
	State        string
}

// IsOpen indica si el movimiento sigue pendiente (ni hecho ni cancelado).
func (m *Move) IsOpen() bool {
	return m.State != StateDone && m.State != StateCancel
}

// MoveLine sub-movimiento reservado o realizado (stock.move.line).
// IsDoneItem, DateTransaction, Observation, Time y OperatorID son los campos de auditoría
// propios del módulo WMS: marcan la línea como completada físicamente.
type MoveLine struct {
	ID                int64
	MoveID            int64
	PickingID         int64
	ProductID         int64
	ProductName       string
	ReservedQty       decimal.Decimal // product_uom_qty
	QtyDone           decimal.Decimal
	LotID             int64
	LotName           string
	LotExpiration     *time.Time
	Location          LocationRef
	LocationDest      LocationRef
	UomID             int64
	UomName           string
	PackageID         int64
	PackageName       string
	ResultPackageID   int64
	ResultPackageName string
	State             string

	IsDoneItem      bool
	DateTransaction *time.Time
	Observation     string
	Time            decimal.Decimal
	OperatorID      int64
}

// WizardAction acción devuelta por la validación del ERP cuando requiere un asistente.
type WizardAction struct {
	Model   string
	Context map[string]any
}

// Modelos de asistente soportados al completar un picking.
const (
	WizardBackorder = "stock.backorder.confirmation"
	WizardImmediate = "stock.immediate.transfer"
)

// NewTransfer datos para crear una transferencia interna.
type NewTransfer struct {
	PickingTypeID  int64
	LocationID     int64
	LocationDestID int64
	Origin         string
	ResponsibleID  int64
	Lines          []NewTransferLine
}

// NewTransferLine producto y cantidad de una transferencia a crear.
type NewTransferLine struct {
	ProductID int64
	Quantity  decimal.Decimal
	UomID     int64
	Name      string
}
