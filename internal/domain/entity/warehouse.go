package entity

// Warehouse representa un almacén del ERP (stock.warehouse).
type Warehouse struct {
	ID   int64
	Name string
	Code string
}

// PickingType tipo de operación de un almacén (stock.picking.type).
type PickingType struct {
	ID                  int64
	Name                string
	Code                string // incoming, internal, outgoing
	SequenceCode        string // IN, INT, OUT...
	WarehouseID         int64
	DefaultLocationID   int64
	DefaultLocationDest int64
}
