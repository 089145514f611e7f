package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Lot lote de un producto con sus fechas de caducidad (stock.production.lot).
type Lot struct {
	ID             int64
	Name           string
	ProductID      int64
	ProductName    string
	CompanyID      int64
	Quantity       decimal.Decimal
	ExpirationDate *time.Time
	AlertDate      *time.Time
	UseDate        *time.Time
	RemovalDate    *time.Time
}

// SetExpiration copia la fecha de vencimiento a las fechas de alerta, uso y remoción.
func (l *Lot) SetExpiration(t *time.Time) {
	l.ExpirationDate = t
	l.AlertDate = t
	l.UseDate = t
	l.RemovalDate = t
}
