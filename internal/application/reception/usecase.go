package reception

import (
	"context"

	"github.com/jhoicas/appwms-api/internal/application/dto"
	"github.com/jhoicas/appwms-api/internal/application/picking"
	"github.com/jhoicas/appwms-api/internal/domain"
	"github.com/jhoicas/appwms-api/internal/domain/entity"
	"github.com/jhoicas/appwms-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// Deps repositorios y servicios que usa el flujo de recepción.
type Deps struct {
	Users      repository.UserRepository
	Warehouses repository.WarehouseRepository
	Pickings   repository.PickingRepository
	Moves      repository.MoveRepository
	Products   repository.ProductRepository
	Lots       repository.LotRepository
	Purchases  repository.PurchaseRepository
	Engine     repository.StockEngine
	Postings   repository.PostingRepository
	Clock      *picking.Clock
}

// UseCase flujo de recepción: listado, detalle, envío de líneas, asignación y finalización.
type UseCase struct {
	users      repository.UserRepository
	warehouses repository.WarehouseRepository
	pickings   repository.PickingRepository
	moves      repository.MoveRepository
	products   repository.ProductRepository
	lots       repository.LotRepository
	purchases  repository.PurchaseRepository
	completer  *picking.Completer
	journal    *picking.Journal
	clock      *picking.Clock
}

// NewUseCase construye el caso de uso.
func NewUseCase(d Deps) *UseCase {
	clock := d.Clock
	if clock == nil {
		clock = picking.NewClock(nil)
	}
	return &UseCase{
		users:      d.Users,
		warehouses: d.Warehouses,
		pickings:   d.Pickings,
		moves:      d.Moves,
		products:   d.Products,
		lots:       d.Lots,
		purchases:  d.Purchases,
		completer:  picking.NewCompleter(d.Engine),
		journal:    picking.NewJournal(d.Postings),
		clock:      clock,
	}
}

// List devuelve las recepciones asignadas (o sin responsable) de los almacenes del usuario
// que aún tienen movimientos por recibir.
func (uc *UseCase) List(ctx context.Context, userID int64) ([]dto.ReceptionResponse, error) {
	user, err := picking.LoadUser(ctx, uc.users, userID)
	if err != nil {
		return nil, err
	}
	warehouses, err := picking.AllowedWarehouses(ctx, uc.warehouses, user)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ReceptionResponse, 0)
	for _, wh := range warehouses {
		pickings, err := uc.pickings.List(ctx, repository.PickingFilter{
			WarehouseID:    wh.ID,
			TypeCode:       entity.PickingTypeIncoming,
			State:          entity.StateAssigned,
			ResponsibleID:  user.ID,
			ExcludeReturns: true,
		})
		if err != nil {
			return nil, err
		}
		for _, p := range pickings {
			moves, err := uc.moves.ListByPicking(ctx, p.ID)
			if err != nil {
				return nil, err
			}
			pending := filterMoves(moves, func(m *entity.Move) bool { return m.State == entity.StateAssigned })
			if len(pending) == 0 {
				continue
			}
			lines, err := uc.moves.ListLinesByPicking(ctx, p.ID)
			if err != nil {
				return nil, err
			}
			resp, err := uc.build(ctx, p, pending, lines, false)
			if err != nil {
				return nil, err
			}
			resp.WarehouseID, resp.WarehouseName = wh.ID, wh.Name
			if len(resp.Lineas) > 0 {
				out = append(out, *resp)
			}
		}
	}
	return out, nil
}

// Get devuelve una recepción con el detalle de sus líneas de movimiento.
func (uc *UseCase) Get(ctx context.Context, userID, id int64) (*dto.ReceptionResponse, error) {
	user, err := picking.LoadUser(ctx, uc.users, userID)
	if err != nil {
		return nil, err
	}
	if id <= 0 {
		return nil, domain.Detail(domain.ErrInvalidInput, "ID de recepción no válido")
	}
	p, err := uc.pickings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil || p.TypeCode != entity.PickingTypeIncoming {
		return nil, domain.Detail(domain.ErrNotFound, "Recepción no encontrada")
	}
	// Los responsables de inventario ven todos los almacenes.
	if !user.IsStockManager && len(user.AllowedWarehouseIDs) > 0 && !user.CanAccessWarehouse(p.WarehouseID) {
		return nil, domain.Detail(domain.ErrForbidden, "Acceso denegado")
	}

	moves, err := uc.moves.ListByPicking(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	pending := filterMoves(moves, (*entity.Move).IsOpen)
	if len(pending) == 0 {
		return nil, domain.Detail(domain.ErrNoPendingWork, "La recepción no tiene movimientos pendientes")
	}
	lines, err := uc.moves.ListLinesByPicking(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	resp, err := uc.build(ctx, p, pending, lines, true)
	if err != nil {
		return nil, err
	}
	resp.WarehouseID, resp.WarehouseName = p.WarehouseID, p.WarehouseName
	resp.ScheduledDate = dto.FormatTime(p.ScheduledDate)
	return resp, nil
}

// build arma la cabecera y las líneas. En el detalle (withDetail) se incluyen todos los
// movimientos abiertos con su trazabilidad; en el listado sólo los que faltan por recibir.
func (uc *UseCase) build(ctx context.Context, p *entity.Picking, moves []*entity.Move, lines []*entity.MoveLine, withDetail bool) (*dto.ReceptionResponse, error) {
	products, err := uc.products.ListByIDs(ctx, picking.ProductIDs(moves, nil))
	if err != nil {
		return nil, err
	}
	byID := picking.IndexProducts(products)

	purchaseID, purchaseName := p.PurchaseID, p.PurchaseName
	if purchaseID == 0 && p.Origin != "" && uc.purchases != nil {
		if id, err := uc.purchases.FindIDByName(ctx, p.Origin); err == nil && id > 0 {
			purchaseID, purchaseName = id, p.Origin
		}
	}

	resp := &dto.ReceptionResponse{
		ID:                 p.ID,
		Name:               p.Name,
		FechaCreacion:      dto.FormatTime(&p.CreateDate),
		ProveedorID:        p.PartnerID,
		Proveedor:          p.PartnerName,
		LocationDestID:     p.LocationDest.ID,
		LocationDestName:   p.LocationDest.Name,
		PurchaseOrderID:    purchaseID,
		PurchaseOrderName:  purchaseName,
		NumeroEntrada:      p.Name,
		PesoTotal:          decimal.Zero,
		NumeroLineas:       len(moves),
		NumeroItems:        decimal.Zero,
		State:              p.State,
		Origin:             p.Origin,
		Priority:           p.Priority,
		LocationID:         p.Location.ID,
		LocationName:       p.Location.Name,
		ResponsableID:      p.ResponsibleID,
		Responsable:        p.ResponsibleName,
		PickingType:        p.PickingTypeName,
		StartTimeReception: dto.FormatTime(p.StartReception),
		EndTimeReception:   dto.FormatTime(p.EndReception),
		Lineas:             make([]dto.ReceptionLine, 0, len(moves)),
		LineasEnviadas:     make([]dto.ReceptionSentLine, 0),
	}

	for _, m := range moves {
		product := byID[m.ProductID]
		resp.PesoTotal = resp.PesoTotal.Add(picking.Weight(product, m.ProductQty))
		resp.NumeroItems = resp.NumeroItems.Add(m.ProductQty)

		if withDetail || m.QuantityDone.LessThan(m.OrderedQty) {
			line, err := uc.pendingLine(ctx, p, m, product, withDetail)
			if err != nil {
				return nil, err
			}
			if withDetail {
				line.DetalleLineas = detailLines(m, lines)
			}
			resp.Lineas = append(resp.Lineas, line)
		}
		if !withDetail {
			for _, ml := range lines {
				if ml.MoveID == m.ID && ml.IsDoneItem {
					resp.LineasEnviadas = append(resp.LineasEnviadas, sentLine(p, m, product, ml))
				}
			}
		}
	}
	return resp, nil
}

func (uc *UseCase) pendingLine(ctx context.Context, p *entity.Picking, m *entity.Move, product *entity.Product, withDetail bool) (dto.ReceptionLine, error) {
	batchID := p.ID
	if withDetail {
		batchID = 0
	}
	line := dto.ReceptionLine{
		ID:                m.ID,
		IDMove:            m.ID,
		IDRecepcion:       p.ID,
		ProductInfo:       picking.ProductInfo(product, m.ID, batchID),
		QuantityOrdered:   m.OrderedQty,
		QuantityToReceive: m.ProductQty,
		QuantityDone:      m.QuantityDone,
		Uom:               picking.UomName(m.UomName),
		LocationInfo:      picking.Locations(m.Location, m.LocationDest),
	}
	// Vencimiento del lote más próximo a vencer.
	if product != nil && product.IsLotTracked() {
		lot, err := uc.lots.EarliestExpiring(ctx, product.ID)
		if err != nil {
			return line, err
		}
		if lot != nil {
			line.FechaVencimiento = dto.FormatTime(lot.ExpirationDate)
		}
	}
	return line, nil
}

func detailLines(m *entity.Move, lines []*entity.MoveLine) []dto.ReceptionLineDetail {
	out := make([]dto.ReceptionLineDetail, 0)
	for _, ml := range lines {
		if ml.MoveID != m.ID {
			continue
		}
		out = append(out, dto.ReceptionLineDetail{
			ID:                  ml.ID,
			QtyDone:             ml.QtyDone,
			QtyTodo:             ml.ReservedQty.Sub(ml.QtyDone),
			ProductUomQty:       ml.ReservedQty,
			LotID:               ml.LotID,
			LotName:             ml.LotName,
			ExpirationDate:      dto.FormatTime(ml.LotExpiration),
			LocationID:          ml.Location.ID,
			LocationName:        ml.Location.Name,
			LocationBarcode:     ml.Location.Barcode,
			LocationDestID:      ml.LocationDest.ID,
			LocationDestName:    ml.LocationDest.Name,
			LocationDestBarcode: ml.LocationDest.Barcode,
			PackageID:           ml.PackageID,
			PackageName:         ml.PackageName,
			ResultPackageID:     ml.ResultPackageID,
			ResultPackageName:   ml.ResultPackageName,
		})
	}
	return out
}

func sentLine(p *entity.Picking, m *entity.Move, product *entity.Product, ml *entity.MoveLine) dto.ReceptionSentLine {
	out := dto.ReceptionSentLine{
		ID:                ml.ID,
		IDMoveLine:        ml.ID,
		IDMove:            m.ID,
		IDRecepcion:       p.ID,
		ProductID:         m.ProductID,
		ProductName:       m.ProductName,
		QuantityOrdered:   m.OrderedQty,
		QuantityToReceive: m.ProductQty,
		QuantityDone:      ml.QtyDone,
		Uom:               picking.UomName(ml.UomName),
		LocationInfo:      picking.Locations(ml.Location, ml.LocationDest),
		IsDoneItem:        ml.IsDoneItem,
		DateTransaction:   dto.FormatTime(ml.DateTransaction),
		Observation:       ml.Observation,
		Time:              ml.Time,
		UserOperatorID:    ml.OperatorID,
		LotID:             ml.LotID,
		LotName:           ml.LotName,
		FechaVencimiento:  dto.FormatTime(ml.LotExpiration),
	}
	if product != nil {
		out.ProductName = product.Name
		out.ProductCode = product.DefaultCode
		out.ProductBarcode = product.Barcode
		out.ProductTracking = product.Tracking
	}
	return out
}

func filterMoves(moves []*entity.Move, keep func(*entity.Move) bool) []*entity.Move {
	out := make([]*entity.Move, 0, len(moves))
	for _, m := range moves {
		if keep(m) {
			out = append(out, m)
		}
	}
	return out
}
