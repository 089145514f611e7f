package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de posting registrados en el diario.
const (
	PostingKindReception = "recepcion"
	PostingKindTransfer  = "transferencia"
)

// LinePosting registro de diario de cada línea enviada desde la app (recepción o transferencia).
type LinePosting struct {
	ID              string
	Kind            string
	PickingID       int64
	MoveID          int64
	MoveLineID      int64
	ProductID       int64
	LotID           int64
	LocationDestID  int64
	Quantity        decimal.Decimal
	OperatorID      int64
	UserID          int64
	Observation     string
	DateTransaction time.Time
	Split           bool
	CreatedAt       time.Time
}
