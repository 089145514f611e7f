package entity

import "github.com/shopspring/decimal"

// Quant existencia de un producto en una ubicación (stock.quant), opcionalmente por lote.
type Quant struct {
	ID          int64
	ProductID   int64
	ProductName string
	Location    LocationRef
	LotID       int64
	LotName     string
	Quantity    decimal.Decimal
	Reserved    decimal.Decimal
}
