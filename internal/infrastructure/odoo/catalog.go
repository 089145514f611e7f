package odoo

import (
	"context"
	"strings"

	"github.com/jhoicas/appwms-api/internal/domain/entity"
	"github.com/jhoicas/appwms-api/internal/domain/repository"
)

var (
	_ repository.WarehouseRepository = (*WarehouseRepository)(nil)
	_ repository.ProductRepository   = (*ProductRepository)(nil)
	_ repository.LotRepository       = (*LotRepository)(nil)
	_ repository.QuantRepository     = (*QuantRepository)(nil)
	_ repository.LocationRepository  = (*LocationRepository)(nil)
	_ repository.NoveltyRepository   = (*NoveltyRepository)(nil)
	_ repository.PurchaseRepository  = (*PurchaseRepository)(nil)
)

// ── Almacenes ─────────────────────────────────────────────────────────────────

// WarehouseRepository implementa repository.WarehouseRepository sobre stock.warehouse.
type WarehouseRepository struct {
	c *Client
}

func NewWarehouseRepository(c *Client) *WarehouseRepository {
	return &WarehouseRepository{c: c}
}

type warehouseRow struct {
	ID   int64 `json:"id"`
	Name Str   `json:"name"`
	Code Str   `json:"code"`
}

var warehouseFields = []string{"id", "name", "code"}

func (r *WarehouseRepository) GetByID(ctx context.Context, id int64) (*entity.Warehouse, error) {
	list, err := r.ListByIDs(ctx, []int64{id})
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return list[0], nil
}

func (r *WarehouseRepository) ListByIDs(ctx context.Context, ids []int64) ([]*entity.Warehouse, error) {
	out := make([]*entity.Warehouse, 0, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []warehouseRow
	if err := r.c.SearchRead(ctx, "stock.warehouse", Domain{Cond("id", "in", ids)}, Query{Fields: warehouseFields}, &rows); err != nil {
		return nil, err
	}
	byID := make(map[int64]warehouseRow, len(rows))
	for _, row := range rows {
		byID[row.ID] = row
	}
	// respeta el orden de ids
	for _, id := range ids {
		if row, ok := byID[id]; ok {
			out = append(out, &entity.Warehouse{ID: row.ID, Name: string(row.Name), Code: string(row.Code)})
		}
	}
	return out, nil
}

type pickingTypeRow struct {
	ID                    int64    `json:"id"`
	Name                  Str      `json:"name"`
	Code                  Str      `json:"code"`
	SequenceCode          Str      `json:"sequence_code"`
	WarehouseID           Many2One `json:"warehouse_id"`
	DefaultLocationSrcID  Many2One `json:"default_location_src_id"`
	DefaultLocationDestID Many2One `json:"default_location_dest_id"`
}

var pickingTypeFields = []string{
	"id", "name", "code", "sequence_code", "warehouse_id",
	"default_location_src_id", "default_location_dest_id",
}

func (row pickingTypeRow) entity() *entity.PickingType {
	return &entity.PickingType{
		ID:                  row.ID,
		Name:                string(row.Name),
		Code:                string(row.Code),
		SequenceCode:        string(row.SequenceCode),
		WarehouseID:         row.WarehouseID.ID,
		DefaultLocationID:   row.DefaultLocationSrcID.ID,
		DefaultLocationDest: row.DefaultLocationDestID.ID,
	}
}

func (r *WarehouseRepository) InternalPickingType(ctx context.Context, warehouseID int64) (*entity.PickingType, error) {
	var rows []pickingTypeRow
	dom := Domain{
		Cond("warehouse_id", "=", warehouseID),
		Cond("code", "=", entity.PickingTypeInternal),
	}
	if err := r.c.SearchRead(ctx, "stock.picking.type", dom, Query{Fields: pickingTypeFields, Order: "sequence, id", Limit: 1}, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0].entity(), nil
}

// pickingTypes lee tipos de operación por id.
func (c *Client) pickingTypes(ctx context.Context, ids []int64) (map[int64]*entity.PickingType, error) {
	out := make(map[int64]*entity.PickingType, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []pickingTypeRow
	if err := c.SearchRead(ctx, "stock.picking.type", Domain{Cond("id", "in", ids)}, Query{Fields: pickingTypeFields}, &rows); err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.ID] = row.entity()
	}
	return out, nil
}

// ── Productos ─────────────────────────────────────────────────────────────────

// ProductRepository implementa repository.ProductRepository sobre product.product.
// Los códigos de barras adicionales y los empaques solo se leen si el ERP tiene esos campos.
type ProductRepository struct {
	c *Client
}

func NewProductRepository(c *Client) *ProductRepository {
	return &ProductRepository{c: c}
}

type productRow struct {
	ID             int64    `json:"id"`
	DisplayName    Str      `json:"display_name"`
	DefaultCode    Str      `json:"default_code"`
	Barcode        Str      `json:"barcode"`
	Tracking       Str      `json:"tracking"`
	Weight         Num      `json:"weight"`
	ExpirationTime Int      `json:"expiration_time"`
	UomID          Many2One `json:"uom_id"`
	CompanyID      Many2One `json:"company_id"`
	BarcodeIDs     []int64  `json:"barcode_ids"`
	PackagingIDs   []int64  `json:"packaging_ids"`
}

func (r *ProductRepository) search(ctx context.Context, dom Domain, limit int) ([]*entity.Product, error) {
	fields, err := r.c.withOptional(ctx, "product.product",
		[]string{"id", "display_name", "default_code", "barcode", "tracking", "weight", "uom_id", "company_id"},
		"expiration_time", "barcode_ids", "packaging_ids")
	if err != nil {
		return nil, err
	}
	var rows []productRow
	if err := r.c.SearchRead(ctx, "product.product", dom, Query{Fields: fields, Limit: limit}, &rows); err != nil {
		return nil, err
	}

	var barcodeIDs, packagingIDs []int64
	for _, row := range rows {
		barcodeIDs = append(barcodeIDs, row.BarcodeIDs...)
		packagingIDs = append(packagingIDs, row.PackagingIDs...)
	}
	barcodes, err := r.extraBarcodes(ctx, barcodeIDs)
	if err != nil {
		return nil, err
	}
	packagings, err := r.packagings(ctx, packagingIDs)
	if err != nil {
		return nil, err
	}

	out := make([]*entity.Product, 0, len(rows))
	for _, row := range rows {
		p := &entity.Product{
			ID:             row.ID,
			Name:           string(row.DisplayName),
			DefaultCode:    string(row.DefaultCode),
			Barcode:        string(row.Barcode),
			Tracking:       string(row.Tracking),
			Weight:         row.Weight.Decimal,
			ExpirationTime: int(row.ExpirationTime),
			UomID:          row.UomID.ID,
			UomName:        row.UomID.Name,
			CompanyID:      row.CompanyID.ID,
		}
		for _, id := range row.BarcodeIDs {
			if b, ok := barcodes[id]; ok && b != "" {
				p.OtherBarcodes = append(p.OtherBarcodes, b)
			}
		}
		for _, id := range row.PackagingIDs {
			if pk, ok := packagings[id]; ok && pk.Barcode != "" {
				p.Packagings = append(p.Packagings, pk)
			}
		}
		out = append(out, p)
	}
	return out, nil
}

// extraBarcodes lee el nombre de cada código adicional en el modelo relacionado de barcode_ids.
func (r *ProductRepository) extraBarcodes(ctx context.Context, ids []int64) (map[int64]string, error) {
	out := make(map[int64]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	model, err := r.c.Relation(ctx, "product.product", "barcode_ids")
	if err != nil || model == "" {
		return out, err
	}
	var rows []struct {
		ID   int64 `json:"id"`
		Name Str   `json:"name"`
	}
	if err := r.c.Read(ctx, model, ids, []string{"id", "name"}, &rows); err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.ID] = string(row.Name)
	}
	return out, nil
}

func (r *ProductRepository) packagings(ctx context.Context, ids []int64) (map[int64]entity.Packaging, error) {
	out := make(map[int64]entity.Packaging, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []struct {
		ID      int64 `json:"id"`
		Barcode Str   `json:"barcode"`
		Qty     Num   `json:"qty"`
	}
	if err := r.c.Read(ctx, "product.packaging", ids, []string{"id", "barcode", "qty"}, &rows); err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.ID] = entity.Packaging{Barcode: string(row.Barcode), Qty: row.Qty.Decimal}
	}
	return out, nil
}

func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	list, err := r.search(ctx, Domain{Cond("id", "=", id)}, 1)
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return list[0], nil
}

func (r *ProductRepository) ListByIDs(ctx context.Context, ids []int64) ([]*entity.Product, error) {
	if len(ids) == 0 {
		return []*entity.Product{}, nil
	}
	return r.search(ctx, Domain{Cond("id", "in", ids)}, 0)
}

func (r *ProductRepository) FindByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	list, err := r.search(ctx, Domain{Cond("barcode", "=", barcode)}, 1)
	if err != nil {
		return nil, err
	}
	if len(list) > 0 {
		return list[0], nil
	}
	ok, err := r.c.HasField(ctx, "product.product", "barcode_ids")
	if err != nil || !ok {
		return nil, err
	}
	list, err = r.search(ctx, Domain{Cond("barcode_ids.name", "=", barcode)}, 1)
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return list[0], nil
}

// ── Lotes ─────────────────────────────────────────────────────────────────────

// LotRepository implementa repository.LotRepository sobre stock.production.lot.
type LotRepository struct {
	c *Client
}

func NewLotRepository(c *Client) *LotRepository {
	return &LotRepository{c: c}
}

const lotModel = "stock.production.lot"

type lotRow struct {
	ID             int64    `json:"id"`
	Name           Str      `json:"name"`
	ProductID      Many2One `json:"product_id"`
	CompanyID      Many2One `json:"company_id"`
	ProductQty     Num      `json:"product_qty"`
	ExpirationDate Time     `json:"expiration_date"`
	AlertDate      Time     `json:"alert_date"`
	UseDate        Time     `json:"use_date"`
	RemovalDate    Time     `json:"removal_date"`
}

func (row lotRow) entity() *entity.Lot {
	return &entity.Lot{
		ID:             row.ID,
		Name:           string(row.Name),
		ProductID:      row.ProductID.ID,
		ProductName:    row.ProductID.Name,
		CompanyID:      row.CompanyID.ID,
		Quantity:       row.ProductQty.Decimal,
		ExpirationDate: row.ExpirationDate.Ptr(),
		AlertDate:      row.AlertDate.Ptr(),
		UseDate:        row.UseDate.Ptr(),
		RemovalDate:    row.RemovalDate.Ptr(),
	}
}

// Las fechas de caducidad existen solo con el módulo de vencimientos instalado.
func (r *LotRepository) fields(ctx context.Context) ([]string, error) {
	return r.c.withOptional(ctx, lotModel,
		[]string{"id", "name", "product_id", "company_id", "product_qty"},
		"expiration_date", "alert_date", "use_date", "removal_date")
}

func (r *LotRepository) search(ctx context.Context, dom Domain, q Query) ([]*entity.Lot, error) {
	fields, err := r.fields(ctx)
	if err != nil {
		return nil, err
	}
	q.Fields = fields
	var rows []lotRow
	if err := r.c.SearchRead(ctx, lotModel, dom, q, &rows); err != nil {
		return nil, err
	}
	out := make([]*entity.Lot, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.entity())
	}
	return out, nil
}

func (r *LotRepository) first(ctx context.Context, dom Domain, order string) (*entity.Lot, error) {
	list, err := r.search(ctx, dom, Query{Order: order, Limit: 1})
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return list[0], nil
}

func (r *LotRepository) GetByID(ctx context.Context, id int64) (*entity.Lot, error) {
	return r.first(ctx, Domain{Cond("id", "=", id)}, "")
}

func (r *LotRepository) ListByProduct(ctx context.Context, productID int64) ([]*entity.Lot, error) {
	return r.search(ctx, Domain{Cond("product_id", "=", productID)}, Query{})
}

func (r *LotRepository) EarliestExpiring(ctx context.Context, productID int64) (*entity.Lot, error) {
	ok, err := r.c.HasField(ctx, lotModel, "expiration_date")
	if err != nil {
		return nil, err
	}
	order := "id"
	if ok {
		order = "expiration_date asc"
	}
	return r.first(ctx, Domain{Cond("product_id", "=", productID)}, order)
}

func (r *LotRepository) FindByName(ctx context.Context, name string) (*entity.Lot, error) {
	return r.first(ctx, Domain{Cond("name", "=", name)}, "")
}

func (r *LotRepository) vals(ctx context.Context, lot *entity.Lot) (map[string]any, error) {
	vals := map[string]any{"name": lot.Name}
	ok, err := r.c.HasField(ctx, lotModel, "expiration_date")
	if err != nil {
		return nil, err
	}
	if ok {
		vals["expiration_date"] = formatTime(lot.ExpirationDate)
		vals["alert_date"] = formatTime(lot.AlertDate)
		vals["use_date"] = formatTime(lot.UseDate)
		vals["removal_date"] = formatTime(lot.RemovalDate)
	}
	return vals, nil
}

func (r *LotRepository) Create(ctx context.Context, lot *entity.Lot) error {
	vals, err := r.vals(ctx, lot)
	if err != nil {
		return err
	}
	vals["product_id"] = lot.ProductID
	vals["company_id"] = optID(lot.CompanyID)
	id, err := r.c.Create(ctx, lotModel, vals, nil)
	if err != nil {
		return err
	}
	lot.ID = id
	return nil
}

func (r *LotRepository) Update(ctx context.Context, lot *entity.Lot) error {
	vals, err := r.vals(ctx, lot)
	if err != nil {
		return err
	}
	return r.c.Write(ctx, lotModel, []int64{lot.ID}, vals)
}

// ── Existencias ───────────────────────────────────────────────────────────────

// QuantRepository implementa repository.QuantRepository sobre stock.quant en ubicaciones internas.
type QuantRepository struct {
	c *Client
}

func NewQuantRepository(c *Client) *QuantRepository {
	return &QuantRepository{c: c}
}

func (r *QuantRepository) List(ctx context.Context, f repository.QuantFilter) ([]*entity.Quant, error) {
	dom := Domain{Cond("location_id.usage", "=", entity.LocationUsageInternal)}
	if f.ProductID != 0 {
		dom = append(dom, Cond("product_id", "=", f.ProductID))
	}
	if f.LocationID != 0 {
		dom = append(dom, Cond("location_id", "=", f.LocationID))
	}
	if f.LotID != 0 {
		dom = append(dom, Cond("lot_id", "=", f.LotID))
	}
	var rows []struct {
		ID               int64    `json:"id"`
		ProductID        Many2One `json:"product_id"`
		LocationID       Many2One `json:"location_id"`
		LotID            Many2One `json:"lot_id"`
		Quantity         Num      `json:"quantity"`
		ReservedQuantity Num      `json:"reserved_quantity"`
	}
	q := Query{Fields: []string{"id", "product_id", "location_id", "lot_id", "quantity", "reserved_quantity"}}
	if err := r.c.SearchRead(ctx, "stock.quant", dom, q, &rows); err != nil {
		return nil, err
	}
	locIDs := make([]int64, 0, len(rows))
	for _, row := range rows {
		locIDs = append(locIDs, row.LocationID.ID)
	}
	refs, err := r.c.locationRefs(ctx, locIDs)
	if err != nil {
		return nil, err
	}
	out := make([]*entity.Quant, 0, len(rows))
	for _, row := range rows {
		out = append(out, &entity.Quant{
			ID:          row.ID,
			ProductID:   row.ProductID.ID,
			ProductName: row.ProductID.Name,
			Location:    refs.get(row.LocationID),
			LotID:       row.LotID.ID,
			LotName:     row.LotID.Name,
			Quantity:    row.Quantity.Decimal,
			Reserved:    row.ReservedQuantity.Decimal,
		})
	}
	return out, nil
}

// ── Ubicaciones ───────────────────────────────────────────────────────────────

// LocationRepository implementa repository.LocationRepository sobre stock.location.
type LocationRepository struct {
	c *Client
}

func NewLocationRepository(c *Client) *LocationRepository {
	return &LocationRepository{c: c}
}

type locationRow struct {
	ID           int64    `json:"id"`
	Name         Str      `json:"name"`
	CompleteName Str      `json:"complete_name"`
	Barcode      Str      `json:"barcode"`
	LocationID   Many2One `json:"location_id"`
	Usage        Str      `json:"usage"`
	IsADock      bool     `json:"is_a_dock"`
	Active       bool     `json:"active"`
}

func (r *LocationRepository) search(ctx context.Context, dom Domain, limit int) ([]*entity.Location, error) {
	fields, err := r.c.withOptional(ctx, "stock.location",
		[]string{"id", "name", "complete_name", "barcode", "location_id", "usage", "active"},
		"is_a_dock")
	if err != nil {
		return nil, err
	}
	var rows []locationRow
	if err := r.c.SearchRead(ctx, "stock.location", dom, Query{Fields: fields, Limit: limit, Order: "complete_name, id"}, &rows); err != nil {
		return nil, err
	}
	out := make([]*entity.Location, 0, len(rows))
	for _, row := range rows {
		out = append(out, &entity.Location{
			ID:           row.ID,
			Name:         string(row.Name),
			CompleteName: string(row.CompleteName),
			Barcode:      string(row.Barcode),
			ParentID:     row.LocationID.ID,
			ParentName:   row.LocationID.Name,
			Usage:        string(row.Usage),
			IsDock:       row.IsADock,
			Active:       row.Active,
		})
	}
	return out, nil
}

func (r *LocationRepository) GetByID(ctx context.Context, id int64) (*entity.Location, error) {
	list, err := r.search(ctx, Domain{Cond("id", "=", id)}, 1)
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return list[0], nil
}

func (r *LocationRepository) ListInternal(ctx context.Context) ([]*entity.Location, error) {
	return r.search(ctx, Domain{
		Cond("usage", "=", entity.LocationUsageInternal),
		Cond("active", "=", true),
	}, 0)
}

func (r *LocationRepository) ListDocks(ctx context.Context) ([]*entity.Location, error) {
	ok, err := r.c.HasField(ctx, "stock.location", "is_a_dock")
	if err != nil {
		return nil, err
	}
	if !ok {
		return []*entity.Location{}, nil
	}
	return r.search(ctx, Domain{
		Cond("usage", "=", entity.LocationUsageInternal),
		Cond("is_a_dock", "=", true),
	}, 0)
}

func (r *LocationRepository) FindByBarcode(ctx context.Context, barcode string) (*entity.Location, error) {
	list, err := r.search(ctx, Domain{Cond("barcode", "=ilike", strings.TrimSpace(barcode))}, 1)
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return list[0], nil
}

// locationIndex referencias de ubicación por id.
type locationIndex map[int64]entity.LocationRef

// get devuelve la referencia completa, o la del many2one si la ubicación no se leyó.
func (idx locationIndex) get(m Many2One) entity.LocationRef {
	if ref, ok := idx[m.ID]; ok {
		return ref
	}
	return entity.LocationRef{ID: m.ID, Name: m.Name}
}

// locationRefs lee nombre completo y código de barras de las ubicaciones.
func (c *Client) locationRefs(ctx context.Context, ids []int64) (locationIndex, error) {
	ids = uniqueIDs(ids)
	out := make(locationIndex, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []struct {
		ID          int64 `json:"id"`
		DisplayName Str   `json:"display_name"`
		Barcode     Str   `json:"barcode"`
	}
	q := Query{Fields: []string{"id", "display_name", "barcode"}}
	dom := Domain{Cond("id", "in", ids), "|", Cond("active", "=", true), Cond("active", "=", false)}
	if err := c.SearchRead(ctx, "stock.location", dom, q, &rows); err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.ID] = entity.LocationRef{ID: row.ID, Name: string(row.DisplayName), Barcode: string(row.Barcode)}
	}
	return out, nil
}

// uniqueIDs elimina ceros y duplicados conservando el orden.
func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// ── Novedades y compras ───────────────────────────────────────────────────────

// NoveltyRepository implementa repository.NoveltyRepository sobre picking.novelties.
type NoveltyRepository struct {
	c *Client
}

func NewNoveltyRepository(c *Client) *NoveltyRepository {
	return &NoveltyRepository{c: c}
}

func (r *NoveltyRepository) List(ctx context.Context) ([]*entity.Novelty, error) {
	var rows []struct {
		ID   int64 `json:"id"`
		Name Str   `json:"name"`
		Code Str   `json:"code"`
	}
	if err := r.c.SearchRead(ctx, "picking.novelties", nil, Query{Fields: []string{"id", "name", "code"}, Order: "id"}, &rows); err != nil {
		return nil, err
	}
	out := make([]*entity.Novelty, 0, len(rows))
	for _, row := range rows {
		out = append(out, &entity.Novelty{ID: row.ID, Name: string(row.Name), Code: string(row.Code)})
	}
	return out, nil
}

// PurchaseRepository implementa repository.PurchaseRepository sobre purchase.order.
type PurchaseRepository struct {
	c *Client
}

func NewPurchaseRepository(c *Client) *PurchaseRepository {
	return &PurchaseRepository{c: c}
}

func (r *PurchaseRepository) FindIDByName(ctx context.Context, name string) (int64, error) {
	if name == "" {
		return 0, nil
	}
	var rows []struct {
		ID int64 `json:"id"`
	}
	if err := r.c.SearchRead(ctx, "purchase.order", Domain{Cond("name", "=", name)}, Query{Fields: []string{"id"}, Limit: 1}, &rows); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].ID, nil
}
