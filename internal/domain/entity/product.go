package entity

import "github.com/shopspring/decimal"

// Tipos de seguimiento de producto.
const (
	TrackingNone   = "none"
	TrackingLot    = "lot"
	TrackingSerial = "serial"
)

// Product representa una variante de producto del ERP (product.product).
type Product struct {
	ID             int64
	Name           string
	DefaultCode    string
	Barcode        string
	Tracking       string
	Weight         decimal.Decimal
	ExpirationTime int // días de vida útil; 0 si no aplica
	UomID          int64
	UomName        string
	CompanyID      int64 // 0 si el producto es compartido entre compañías
	OtherBarcodes  []string
	Packagings     []Packaging
}

// Packaging empaque de un producto con su código de barras y cantidad contenida.
type Packaging struct {
	Barcode string
	Qty     decimal.Decimal
}

// IsLotTracked indica si el producto exige lote en cada movimiento.
func (p *Product) IsLotTracked() bool {
	return p.Tracking == TrackingLot
}
