package picking

import (
	"github.com/jhoicas/appwms-api/internal/application/dto"
	"github.com/jhoicas/appwms-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// DefaultUom unidad que se muestra cuando la línea no trae unidad de medida.
const DefaultUom = "UND"

// ProductInfo arma los datos de producto de una línea. batchID se omite (0) en el detalle de recepción.
func ProductInfo(p *entity.Product, moveID, batchID int64) dto.ProductInfo {
	if p == nil {
		return dto.ProductInfo{OtherBarcodes: []dto.BarcodeInfo{}, ProductPacking: []dto.PackingInfo{}, Weight: decimal.Zero}
	}
	info := dto.ProductInfo{
		ProductID:       p.ID,
		ProductName:     p.Name,
		ProductCode:     p.DefaultCode,
		ProductBarcode:  p.Barcode,
		ProductTracking: p.Tracking,
		DiasVencimiento: p.ExpirationTime,
		OtherBarcodes:   make([]dto.BarcodeInfo, 0, len(p.OtherBarcodes)),
		ProductPacking:  make([]dto.PackingInfo, 0, len(p.Packagings)),
		Weight:          p.Weight,
	}
	for _, b := range p.OtherBarcodes {
		if b == "" {
			continue
		}
		info.OtherBarcodes = append(info.OtherBarcodes, dto.BarcodeInfo{Barcode: b, IDMove: moveID, IDProduct: p.ID, BatchID: batchID})
	}
	for _, pk := range p.Packagings {
		if pk.Barcode == "" {
			continue
		}
		info.ProductPacking = append(info.ProductPacking, dto.PackingInfo{Barcode: pk.Barcode, Cantidad: pk.Qty, IDMove: moveID, IDProduct: p.ID, BatchID: batchID})
	}
	return info
}

// Locations arma origen/destino de una línea.
func Locations(src, dest entity.LocationRef) dto.LocationInfo {
	return dto.LocationInfo{
		LocationDestID:      dest.ID,
		LocationDestName:    dest.Name,
		LocationDestBarcode: dest.Barcode,
		LocationID:          src.ID,
		LocationName:        src.Name,
		LocationBarcode:     src.Barcode,
	}
}

// UomName devuelve el nombre de la unidad o DefaultUom.
func UomName(name string) string {
	if name == "" {
		return DefaultUom
	}
	return name
}

// ProductIDs ids de producto únicos de los movimientos.
func ProductIDs(moves []*entity.Move, lines []*entity.MoveLine) []int64 {
	seen := make(map[int64]struct{})
	ids := make([]int64, 0, len(moves)+len(lines))
	add := func(id int64) {
		if _, ok := seen[id]; ok || id == 0 {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	for _, m := range moves {
		add(m.ProductID)
	}
	for _, l := range lines {
		add(l.ProductID)
	}
	return ids
}

// IndexProducts indexa productos por id.
func IndexProducts(products []*entity.Product) map[int64]*entity.Product {
	out := make(map[int64]*entity.Product, len(products))
	for _, p := range products {
		out[p.ID] = p
	}
	return out
}

// Weight peso de qty unidades del producto; cero si el producto no tiene peso.
func Weight(p *entity.Product, qty decimal.Decimal) decimal.Decimal {
	if p == nil || p.Weight.IsZero() {
		return decimal.Zero
	}
	return p.Weight.Mul(qty)
}
