package odoo

import (
	"context"
	"fmt"

	"github.com/jhoicas/appwms-api/internal/domain"
	"github.com/jhoicas/appwms-api/internal/domain/entity"
	"github.com/jhoicas/appwms-api/internal/domain/repository"
)

var (
	_ repository.PickingRepository = (*PickingRepository)(nil)
	_ repository.MoveRepository    = (*MoveRepository)(nil)
)

const (
	pickingModel  = "stock.picking"
	moveModel     = "stock.move"
	moveLineModel = "stock.move.line"
)

// ── Pickings ──────────────────────────────────────────────────────────────────

// PickingRepository implementa repository.PickingRepository sobre stock.picking.
type PickingRepository struct {
	c *Client
}

func NewPickingRepository(c *Client) *PickingRepository {
	return &PickingRepository{c: c}
}

type pickingRow struct {
	ID                 int64    `json:"id"`
	Name               Str      `json:"name"`
	State              Str      `json:"state"`
	PickingTypeCode    Str      `json:"picking_type_code"`
	PickingTypeID      Many2One `json:"picking_type_id"`
	LocationID         Many2One `json:"location_id"`
	LocationDestID     Many2One `json:"location_dest_id"`
	PartnerID          Many2One `json:"partner_id"`
	UserID             Many2One `json:"user_id"`
	Origin             Str      `json:"origin"`
	Priority           Str      `json:"priority"`
	PurchaseID         Many2One `json:"purchase_id"`
	BackorderID        Many2One `json:"backorder_id"`
	IsReturnPicking    bool     `json:"is_return_picking"`
	CreateDate         Time     `json:"create_date"`
	ScheduledDate      Time     `json:"scheduled_date"`
	StartTimeReception Time     `json:"start_time_reception"`
	EndTimeReception   Time     `json:"end_time_reception"`
}

func (r *PickingRepository) search(ctx context.Context, dom Domain) ([]*entity.Picking, error) {
	fields, err := r.c.withOptional(ctx, pickingModel,
		[]string{
			"id", "name", "state", "picking_type_code", "picking_type_id", "location_id",
			"location_dest_id", "partner_id", "user_id", "origin", "priority", "backorder_id",
			"create_date", "scheduled_date",
		},
		"purchase_id", "is_return_picking", "start_time_reception", "end_time_reception")
	if err != nil {
		return nil, err
	}
	var rows []pickingRow
	if err := r.c.SearchRead(ctx, pickingModel, dom, Query{Fields: fields, Order: "id"}, &rows); err != nil {
		return nil, err
	}

	var typeIDs, locIDs []int64
	for _, row := range rows {
		typeIDs = append(typeIDs, row.PickingTypeID.ID)
		locIDs = append(locIDs, row.LocationID.ID, row.LocationDestID.ID)
	}
	types, err := r.c.pickingTypes(ctx, uniqueIDs(typeIDs))
	if err != nil {
		return nil, err
	}
	refs, err := r.c.locationRefs(ctx, locIDs)
	if err != nil {
		return nil, err
	}
	var whIDs []int64
	for _, pt := range types {
		whIDs = append(whIDs, pt.WarehouseID)
	}
	warehouses, err := NewWarehouseRepository(r.c).ListByIDs(ctx, uniqueIDs(whIDs))
	if err != nil {
		return nil, err
	}
	whNames := make(map[int64]string, len(warehouses))
	for _, w := range warehouses {
		whNames[w.ID] = w.Name
	}

	out := make([]*entity.Picking, 0, len(rows))
	for _, row := range rows {
		p := &entity.Picking{
			ID:              row.ID,
			Name:            string(row.Name),
			State:           string(row.State),
			TypeCode:        string(row.PickingTypeCode),
			PickingTypeID:   row.PickingTypeID.ID,
			PickingTypeName: row.PickingTypeID.Name,
			Location:        refs.get(row.LocationID),
			LocationDest:    refs.get(row.LocationDestID),
			PartnerID:       row.PartnerID.ID,
			PartnerName:     row.PartnerID.Name,
			ResponsibleID:   row.UserID.ID,
			ResponsibleName: row.UserID.Name,
			Origin:          string(row.Origin),
			Priority:        string(row.Priority),
			PurchaseID:      row.PurchaseID.ID,
			PurchaseName:    row.PurchaseID.Name,
			BackorderID:     row.BackorderID.ID,
			IsReturn:        row.IsReturnPicking,
			CreateDate:      row.CreateDate.Value(),
			ScheduledDate:   row.ScheduledDate.Ptr(),
			StartReception:  row.StartTimeReception.Ptr(),
			EndReception:    row.EndTimeReception.Ptr(),
		}
		if pt, ok := types[row.PickingTypeID.ID]; ok {
			p.SequenceCode = pt.SequenceCode
			p.WarehouseID = pt.WarehouseID
			p.WarehouseName = whNames[pt.WarehouseID]
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *PickingRepository) List(ctx context.Context, f repository.PickingFilter) ([]*entity.Picking, error) {
	dom := Domain{}
	if f.State != "" {
		dom = append(dom, Cond("state", "=", f.State))
	}
	if f.TypeCode != "" {
		dom = append(dom, Cond("picking_type_code", "=", f.TypeCode))
	}
	if f.WarehouseID != 0 {
		dom = append(dom, Cond("picking_type_id.warehouse_id", "=", f.WarehouseID))
	}
	if f.SequenceCode != "" {
		dom = append(dom, Cond("picking_type_id.sequence_code", "=", f.SequenceCode))
	}
	if f.ExcludeReturns {
		ok, err := r.c.HasField(ctx, pickingModel, "is_return_picking")
		if err != nil {
			return nil, err
		}
		if ok {
			dom = append(dom, Cond("is_return_picking", "=", false))
		}
	}
	if f.ResponsibleID != 0 {
		dom = append(dom, "|", Cond("user_id", "=", f.ResponsibleID), Cond("user_id", "=", false))
	}
	return r.search(ctx, dom)
}

func (r *PickingRepository) GetByID(ctx context.Context, id int64) (*entity.Picking, error) {
	list, err := r.search(ctx, Domain{Cond("id", "=", id)})
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return list[0], nil
}

func (r *PickingRepository) SetResponsible(ctx context.Context, pickingID, userID int64) error {
	return r.c.Write(ctx, pickingModel, []int64{pickingID}, map[string]any{"user_id": optID(userID)})
}

func (r *PickingRepository) Create(ctx context.Context, in entity.NewTransfer) (int64, error) {
	moves := make([]any, 0, len(in.Lines))
	for _, l := range in.Lines {
		moves = append(moves, []any{0, 0, map[string]any{
			"name":             l.Name,
			"product_id":       l.ProductID,
			"product_uom_qty":  l.Quantity.InexactFloat64(),
			"product_uom":      optID(l.UomID),
			"location_id":      in.LocationID,
			"location_dest_id": in.LocationDestID,
		}})
	}
	vals := map[string]any{
		"picking_type_id":          in.PickingTypeID,
		"location_id":              in.LocationID,
		"location_dest_id":         in.LocationDestID,
		"origin":                   in.Origin,
		"user_id":                  optID(in.ResponsibleID),
		"move_ids_without_package": moves,
	}
	return r.c.Create(ctx, pickingModel, vals, nil)
}

// ── Movimientos y líneas ──────────────────────────────────────────────────────

// MoveRepository implementa repository.MoveRepository sobre stock.move y stock.move.line.
type MoveRepository struct {
	c *Client
}

func NewMoveRepository(c *Client) *MoveRepository {
	return &MoveRepository{c: c}
}

type moveRow struct {
	ID             int64    `json:"id"`
	PickingID      Many2One `json:"picking_id"`
	ProductID      Many2One `json:"product_id"`
	ProductQty     Num      `json:"product_qty"`
	QuantityDone   Num      `json:"quantity_done"`
	ProductUom     Many2One `json:"product_uom"`
	LocationID     Many2One `json:"location_id"`
	LocationDestID Many2One `json:"location_dest_id"`
	State          Str      `json:"state"`
	PurchaseLineID Many2One `json:"purchase_line_id"`
}

func (r *MoveRepository) ListByPicking(ctx context.Context, pickingID int64) ([]*entity.Move, error) {
	fields, err := r.c.withOptional(ctx, moveModel,
		[]string{"id", "picking_id", "product_id", "product_qty", "product_uom", "location_id", "location_dest_id", "state"},
		"quantity_done", "purchase_line_id")
	if err != nil {
		return nil, err
	}
	var rows []moveRow
	if err := r.c.SearchRead(ctx, moveModel, Domain{Cond("picking_id", "=", pickingID)}, Query{Fields: fields, Order: "id"}, &rows); err != nil {
		return nil, err
	}

	var locIDs, purchaseLineIDs []int64
	for _, row := range rows {
		locIDs = append(locIDs, row.LocationID.ID, row.LocationDestID.ID)
		purchaseLineIDs = append(purchaseLineIDs, row.PurchaseLineID.ID)
	}
	refs, err := r.c.locationRefs(ctx, locIDs)
	if err != nil {
		return nil, err
	}
	ordered, err := r.purchaseQty(ctx, uniqueIDs(purchaseLineIDs))
	if err != nil {
		return nil, err
	}

	out := make([]*entity.Move, 0, len(rows))
	for _, row := range rows {
		m := &entity.Move{
			ID:           row.ID,
			PickingID:    row.PickingID.ID,
			ProductID:    row.ProductID.ID,
			ProductName:  row.ProductID.Name,
			ProductQty:   row.ProductQty.Decimal,
			OrderedQty:   row.ProductQty.Decimal,
			QuantityDone: row.QuantityDone.Decimal,
			UomID:        row.ProductUom.ID,
			UomName:      row.ProductUom.Name,
			Location:     refs.get(row.LocationID),
			LocationDest: refs.get(row.LocationDestID),
			State:        string(row.State),
		}
		if q, ok := ordered[row.PurchaseLineID.ID]; ok {
			m.OrderedQty = q.Decimal
		}
		out = append(out, m)
	}
	return out, nil
}

// purchaseQty lee la cantidad pedida de las líneas de compra.
func (r *MoveRepository) purchaseQty(ctx context.Context, ids []int64) (map[int64]Num, error) {
	out := make(map[int64]Num, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []struct {
		ID         int64 `json:"id"`
		ProductQty Num   `json:"product_qty"`
	}
	if err := r.c.Read(ctx, "purchase.order.line", ids, []string{"id", "product_qty"}, &rows); err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.ID] = row.ProductQty
	}
	return out, nil
}

type moveLineRow struct {
	ID              int64    `json:"id"`
	MoveID          Many2One `json:"move_id"`
	PickingID       Many2One `json:"picking_id"`
	ProductID       Many2One `json:"product_id"`
	ProductUomQty   Num      `json:"product_uom_qty"`
	QtyDone         Num      `json:"qty_done"`
	LotID           Many2One `json:"lot_id"`
	LocationID      Many2One `json:"location_id"`
	LocationDestID  Many2One `json:"location_dest_id"`
	ProductUomID    Many2One `json:"product_uom_id"`
	PackageID       Many2One `json:"package_id"`
	ResultPackageID Many2One `json:"result_package_id"`
	State           Str      `json:"state"`
	IsDoneItem      bool     `json:"is_done_item"`
	DateTransaction Time     `json:"date_transaction"`
	NewObservation  Str      `json:"new_observation"`
	Time            Num      `json:"time"`
	UserOperatorID  Many2One `json:"user_operator_id"`
}

// Campos propios del módulo WMS en stock.move.line.
var moveLineAuditFields = []string{"is_done_item", "date_transaction", "new_observation", "time", "user_operator_id"}

func (r *MoveRepository) searchLines(ctx context.Context, dom Domain) ([]*entity.MoveLine, error) {
	fields, err := r.c.withOptional(ctx, moveLineModel,
		[]string{
			"id", "move_id", "picking_id", "product_id", "product_uom_qty", "qty_done", "lot_id",
			"location_id", "location_dest_id", "product_uom_id", "package_id", "result_package_id", "state",
		},
		moveLineAuditFields...)
	if err != nil {
		return nil, err
	}
	var rows []moveLineRow
	if err := r.c.SearchRead(ctx, moveLineModel, dom, Query{Fields: fields, Order: "id"}, &rows); err != nil {
		return nil, err
	}

	var locIDs, lotIDs []int64
	for _, row := range rows {
		locIDs = append(locIDs, row.LocationID.ID, row.LocationDestID.ID)
		lotIDs = append(lotIDs, row.LotID.ID)
	}
	refs, err := r.c.locationRefs(ctx, locIDs)
	if err != nil {
		return nil, err
	}
	expirations, err := r.lotExpirations(ctx, uniqueIDs(lotIDs))
	if err != nil {
		return nil, err
	}

	out := make([]*entity.MoveLine, 0, len(rows))
	for _, row := range rows {
		out = append(out, &entity.MoveLine{
			ID:                row.ID,
			MoveID:            row.MoveID.ID,
			PickingID:         row.PickingID.ID,
			ProductID:         row.ProductID.ID,
			ProductName:       row.ProductID.Name,
			ReservedQty:       row.ProductUomQty.Decimal,
			QtyDone:           row.QtyDone.Decimal,
			LotID:             row.LotID.ID,
			LotName:           row.LotID.Name,
			LotExpiration:     expirations[row.LotID.ID].Ptr(),
			Location:          refs.get(row.LocationID),
			LocationDest:      refs.get(row.LocationDestID),
			UomID:             row.ProductUomID.ID,
			UomName:           row.ProductUomID.Name,
			PackageID:         row.PackageID.ID,
			PackageName:       row.PackageID.Name,
			ResultPackageID:   row.ResultPackageID.ID,
			ResultPackageName: row.ResultPackageID.Name,
			State:             string(row.State),
			IsDoneItem:        row.IsDoneItem,
			DateTransaction:   row.DateTransaction.Ptr(),
			Observation:       string(row.NewObservation),
			Time:              row.Time.Decimal,
			OperatorID:        row.UserOperatorID.ID,
		})
	}
	return out, nil
}

func (r *MoveRepository) lotExpirations(ctx context.Context, ids []int64) (map[int64]Time, error) {
	out := make(map[int64]Time, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	ok, err := r.c.HasField(ctx, lotModel, "expiration_date")
	if err != nil || !ok {
		return out, err
	}
	var rows []struct {
		ID             int64 `json:"id"`
		ExpirationDate Time  `json:"expiration_date"`
	}
	if err := r.c.Read(ctx, lotModel, ids, []string{"id", "expiration_date"}, &rows); err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.ID] = row.ExpirationDate
	}
	return out, nil
}

func (r *MoveRepository) ListLinesByPicking(ctx context.Context, pickingID int64) ([]*entity.MoveLine, error) {
	return r.searchLines(ctx, Domain{Cond("picking_id", "=", pickingID)})
}

func (r *MoveRepository) GetLine(ctx context.Context, id int64) (*entity.MoveLine, error) {
	list, err := r.searchLines(ctx, Domain{Cond("id", "=", id)})
	if err != nil || len(list) == 0 {
		return nil, err
	}
	return list[0], nil
}

// auditVals campos de auditoría que marcan la línea como completada físicamente.
func (r *MoveRepository) auditVals(ctx context.Context, line *entity.MoveLine, vals map[string]any) error {
	set, err := r.c.fieldsOf(ctx, moveLineModel)
	if err != nil {
		return err
	}
	audit := map[string]any{
		"is_done_item":     line.IsDoneItem,
		"date_transaction": formatTime(line.DateTransaction),
		"new_observation":  line.Observation,
		"time":             line.Time.InexactFloat64(),
		"user_operator_id": optID(line.OperatorID),
	}
	for k, v := range audit {
		if _, ok := set[k]; ok {
			vals[k] = v
		}
	}
	return nil
}

func (r *MoveRepository) CreateLine(ctx context.Context, line *entity.MoveLine) error {
	vals := map[string]any{
		"move_id":          line.MoveID,
		"picking_id":       line.PickingID,
		"product_id":       line.ProductID,
		"qty_done":         line.QtyDone.InexactFloat64(),
		"location_id":      line.Location.ID,
		"location_dest_id": line.LocationDest.ID,
		"product_uom_id":   optID(line.UomID),
		"lot_id":           optID(line.LotID),
	}
	if err := r.auditVals(ctx, line, vals); err != nil {
		return err
	}
	id, err := r.c.Create(ctx, moveLineModel, vals, nil)
	if err != nil {
		return err
	}
	line.ID = id
	return nil
}

func (r *MoveRepository) UpdateLine(ctx context.Context, line *entity.MoveLine) error {
	if line.ID == 0 {
		return domain.Detail(domain.ErrInvalidInput, "Línea de movimiento sin id")
	}
	vals := map[string]any{
		"qty_done":         line.QtyDone.InexactFloat64(),
		"location_dest_id": line.LocationDest.ID,
		"lot_id":           optID(line.LotID),
	}
	if err := r.auditVals(ctx, line, vals); err != nil {
		return fmt.Errorf("odoo: campos de auditoría: %w", err)
	}
	return r.c.Write(ctx, moveLineModel, []int64{line.ID}, vals)
}
