package memory

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/appwms-api/internal/domain/entity"
)

// NewSeeded crea un almacén con datos de demostración: un administrador (admin/admin),
// un operario (operario/operario), una recepción con producto por lote y una transferencia.
func NewSeeded() *Store {
	s := NewStore()
	exp := time.Date(2027, 6, 30, 0, 0, 0, 0, time.UTC)

	s.AddWarehouse(entity.Warehouse{ID: 1, Name: "Bodega Principal", Code: "WH"})
	s.AddWarehouse(entity.Warehouse{ID: 2, Name: "Bodega Norte", Code: "BN"})

	s.AddUser(entity.User{ID: 2, Name: "Administrador", Email: "admin@example.com", CompanyID: 1, AllowedWarehouseIDs: []int64{1, 2}, IsStockManager: true}, "admin", "admin")
	s.AddUser(entity.User{ID: 7, Name: "Operario Uno", Email: "operario@example.com", CompanyID: 1, AllowedWarehouseIDs: []int64{1}}, "operario", "operario")
	s.SetWMSRole(2, entity.RoleAdmin)
	s.SetWMSRole(7, "")
	s.SetPermissions(2, entity.AppPermissions{ManualQuantity: true, ManualProductSelection: true, ScanProduct: true, AllowMoveExcess: true})
	s.SetPermissions(7, entity.AppPermissions{ScanProduct: true})
	s.SetGeneralConfig(entity.GeneralConfig{MuelleOption: "multiple"})

	s.AddLocation(entity.Location{ID: 4, Name: "Proveedores", CompleteName: "Partners/Vendors", Usage: "supplier", Active: true})
	s.AddLocation(entity.Location{ID: 8, Name: "Stock", CompleteName: "WH/Stock", Barcode: "WH-STOCK", Usage: entity.LocationUsageInternal, Active: true})
	s.AddLocation(entity.Location{ID: 20, Name: "Muelle 1", CompleteName: "WH/Muelle 1", Barcode: "WH-M1", ParentID: 8, ParentName: "WH/Stock", Usage: entity.LocationUsageInternal, IsDock: true, Active: true})
	s.AddLocation(entity.Location{ID: 21, Name: "Estante A1", CompleteName: "WH/Stock/A1", Barcode: "WH-A1", ParentID: 8, ParentName: "WH/Stock", Usage: entity.LocationUsageInternal, Active: true})

	s.AddPickingType(entity.PickingType{ID: 1, Name: "Recepciones", Code: entity.PickingTypeIncoming, SequenceCode: "IN", WarehouseID: 1, DefaultLocationID: 4, DefaultLocationDest: 8})
	s.AddPickingType(entity.PickingType{ID: 5, Name: "Transferencias internas", Code: entity.PickingTypeInternal, SequenceCode: entity.SequenceCodeInternal, WarehouseID: 1, DefaultLocationID: 8, DefaultLocationDest: 21})

	s.AddProduct(entity.Product{ID: 30, Name: "Leche entera 1L", DefaultCode: "LEC-001", Barcode: "7701234000011", Tracking: entity.TrackingLot, Weight: decimal.RequireFromString("1.03"), ExpirationTime: 90, UomID: 1, UomName: "Unidades", OtherBarcodes: []string{"7701234000028"}, Packagings: []entity.Packaging{{Barcode: "17701234000018", Qty: decimal.NewFromInt(12)}}})
	s.AddProduct(entity.Product{ID: 31, Name: "Arroz 500g", DefaultCode: "ARR-500", Barcode: "7701234000035", Tracking: entity.TrackingNone, Weight: decimal.RequireFromString("0.5"), UomID: 1, UomName: "Unidades"})
	s.AddLot(entity.Lot{ID: 50, Name: "L-2027-06", ProductID: 30, CompanyID: 1, ExpirationDate: &exp, AlertDate: &exp, UseDate: &exp, RemovalDate: &exp})
	s.AddQuant(entity.Quant{ProductID: 30, Location: entity.LocationRef{ID: 21}, LotID: 50, Quantity: decimal.NewFromInt(24)})
	s.AddQuant(entity.Quant{ProductID: 31, Location: entity.LocationRef{ID: 8}, Quantity: decimal.NewFromInt(100)})

	s.AddNovelty(entity.Novelty{ID: 1, Name: "Producto averiado", Code: "AVE"})
	s.AddNovelty(entity.Novelty{ID: 2, Name: "Faltante", Code: "FAL"})
	s.AddPurchase(9, "P00009")
	s.AddBatch(entity.Batch{ID: 3, Name: "BATCH/00003"})

	created := time.Date(2026, 10, 1, 13, 0, 0, 0, time.UTC)
	s.AddPicking(entity.Picking{ID: 100, Name: "WH/IN/00100", State: entity.StateAssigned, TypeCode: entity.PickingTypeIncoming, SequenceCode: "IN", PickingTypeID: 1, PickingTypeName: "Recepciones", WarehouseID: 1, Location: entity.LocationRef{ID: 4}, LocationDest: entity.LocationRef{ID: 8}, PartnerID: 12, PartnerName: "Lácteos del Valle", Origin: "P00009", Priority: "0", PurchaseID: 9, PurchaseName: "P00009", CreateDate: created})
	s.AddMove(entity.Move{ID: 200, PickingID: 100, ProductID: 30, ProductQty: decimal.NewFromInt(48), UomID: 1, UomName: "Unidades", Location: entity.LocationRef{ID: 4}, LocationDest: entity.LocationRef{ID: 8}, State: entity.StateAssigned})
	s.AddMove(entity.Move{ID: 201, PickingID: 100, ProductID: 31, ProductQty: decimal.NewFromInt(20), UomID: 1, UomName: "Unidades", Location: entity.LocationRef{ID: 4}, LocationDest: entity.LocationRef{ID: 8}, State: entity.StateAssigned})

	s.AddPicking(entity.Picking{ID: 110, Name: "WH/INT/00110", State: entity.StateAssigned, TypeCode: entity.PickingTypeInternal, SequenceCode: entity.SequenceCodeInternal, PickingTypeID: 5, PickingTypeName: "Transferencias internas", WarehouseID: 1, Location: entity.LocationRef{ID: 8}, LocationDest: entity.LocationRef{ID: 21}, Priority: "0", CreateDate: created})
	s.AddMove(entity.Move{ID: 210, PickingID: 110, ProductID: 31, ProductQty: decimal.NewFromInt(10), UomID: 1, UomName: "Unidades", Location: entity.LocationRef{ID: 8}, LocationDest: entity.LocationRef{ID: 21}, State: entity.StateAssigned})
	s.AddLine(entity.MoveLine{ID: 310, MoveID: 210, PickingID: 110, ProductID: 31, ReservedQty: decimal.NewFromInt(10), Location: entity.LocationRef{ID: 8}, LocationDest: entity.LocationRef{ID: 21}, UomID: 1, UomName: "Unidades", State: entity.StateAssigned})
	return s
}
