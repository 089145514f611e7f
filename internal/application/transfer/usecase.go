package transfer

import (
	"context"

	"github.com/jhoicas/appwms-api/internal/application/dto"
	"github.com/jhoicas/appwms-api/internal/application/picking"
	"github.com/jhoicas/appwms-api/internal/domain"
	"github.com/jhoicas/appwms-api/internal/domain/entity"
	"github.com/jhoicas/appwms-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// Deps repositorios y servicios que usa el flujo de transferencias.
type Deps struct {
	Users      repository.UserRepository
	Warehouses repository.WarehouseRepository
	Pickings   repository.PickingRepository
	Moves      repository.MoveRepository
	Products   repository.ProductRepository
	Lots       repository.LotRepository
	Locations  repository.LocationRepository
	Quants     repository.QuantRepository
	Engine     repository.StockEngine
	Postings   repository.PostingRepository
	Clock      *picking.Clock
}

// UseCase flujo de transferencias internas.
type UseCase struct {
	users      repository.UserRepository
	warehouses repository.WarehouseRepository
	pickings   repository.PickingRepository
	moves      repository.MoveRepository
	products   repository.ProductRepository
	lots       repository.LotRepository
	locations  repository.LocationRepository
	quants     repository.QuantRepository
	engine     repository.StockEngine
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
		locations:  d.Locations,
		quants:     d.Quants,
		engine:     d.Engine,
		completer:  picking.NewCompleter(d.Engine),
		journal:    picking.NewJournal(d.Postings),
		clock:      clock,
	}
}

// List devuelve las transferencias internas (secuencia INT) asignadas o sin responsable
// de los almacenes del usuario que tienen líneas reservadas.
func (uc *UseCase) List(ctx context.Context, userID int64) ([]dto.TransferResponse, error) {
	user, err := picking.LoadUser(ctx, uc.users, userID)
	if err != nil {
		return nil, err
	}
	warehouses, err := picking.AllowedWarehouses(ctx, uc.warehouses, user)
	if err != nil {
		return nil, err
	}

	out := make([]dto.TransferResponse, 0)
	for _, wh := range warehouses {
		pickings, err := uc.pickings.List(ctx, repository.PickingFilter{
			WarehouseID:   wh.ID,
			TypeCode:      entity.PickingTypeInternal,
			State:         entity.StateAssigned,
			SequenceCode:  entity.SequenceCodeInternal,
			ResponsibleID: user.ID,
		})
		if err != nil {
			return nil, err
		}
		for _, p := range pickings {
			if !user.CanAccessWarehouse(p.WarehouseID) {
				continue
			}
			resp, err := uc.build(ctx, p)
			if err != nil {
				return nil, err
			}
			if resp == nil {
				continue
			}
			resp.WarehouseID, resp.WarehouseName = wh.ID, wh.Name
			out = append(out, *resp)
		}
	}
	return out, nil
}

// Get devuelve una transferencia con sus líneas reservadas.
func (uc *UseCase) Get(ctx context.Context, userID, id int64) (*dto.TransferResponse, error) {
	user, err := picking.LoadUser(ctx, uc.users, userID)
	if err != nil {
		return nil, err
	}
	p, err := uc.accessible(ctx, user, id)
	if err != nil {
		return nil, err
	}
	resp, err := uc.build(ctx, p)
	if err != nil {
		return nil, err
	}
	if resp == nil {
		return nil, domain.Detail(domain.ErrNotFound, "No hay líneas de transferencia pendientes")
	}
	resp.WarehouseID, resp.WarehouseName = p.WarehouseID, p.WarehouseName
	return resp, nil
}

// accessible carga el picking y verifica que su almacén esté permitido al usuario.
func (uc *UseCase) accessible(ctx context.Context, user *entity.User, id int64) (*entity.Picking, error) {
	p, err := uc.pickings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.Detail(domain.ErrNotFound, "Transferencia no encontrada")
	}
	if !user.CanAccessWarehouse(p.WarehouseID) {
		return nil, domain.Detail(domain.ErrForbidden, "No tienes permisos para acceder a esta transferencia")
	}
	return p, nil
}

// accessibleInternal como accessible, pero sólo admite transferencias internas.
func (uc *UseCase) accessibleInternal(ctx context.Context, user *entity.User, id int64) (*entity.Picking, error) {
	p, err := uc.pickings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil || p.TypeCode != entity.PickingTypeInternal {
		return nil, domain.Detail(domain.ErrNotFound, "Transferencia no encontrada")
	}
	if !user.CanAccessWarehouse(p.WarehouseID) {
		return nil, domain.Detail(domain.ErrForbidden, "No tienes permisos para acceder a esta transferencia")
	}
	return p, nil
}

// build arma la transferencia a partir de sus líneas reservadas; nil si no tiene ninguna.
func (uc *UseCase) build(ctx context.Context, p *entity.Picking) (*dto.TransferResponse, error) {
	allLines, err := uc.moves.ListLinesByPicking(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	lines := make([]*entity.MoveLine, 0, len(allLines))
	for _, ml := range allLines {
		if ml.State == entity.StateAssigned {
			lines = append(lines, ml)
		}
	}
	if len(lines) == 0 {
		return nil, nil
	}
	moves, err := uc.moves.ListByPicking(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	moveQty := make(map[int64]decimal.Decimal, len(moves))
	for _, m := range moves {
		moveQty[m.ID] = m.ProductQty
	}
	products, err := uc.products.ListByIDs(ctx, picking.ProductIDs(nil, lines))
	if err != nil {
		return nil, err
	}
	byID := picking.IndexProducts(products)

	resp := &dto.TransferResponse{
		ID:                  p.ID,
		Name:                p.Name,
		FechaCreacion:       dto.FormatTime(&p.CreateDate),
		LocationID:          p.Location.ID,
		LocationName:        p.Location.Name,
		LocationDestID:      p.LocationDest.ID,
		LocationDestName:    p.LocationDest.Name,
		NumeroTransferencia: p.Name,
		PesoTotal:           decimal.Zero,
		NumeroLineas:        len(lines),
		NumeroItems:         decimal.Zero,
		State:               p.State,
		Origin:              p.Origin,
		Priority:            p.Priority,
		ResponsableID:       p.ResponsibleID,
		Responsable:         p.ResponsibleName,
		PickingType:         p.PickingTypeName,
		Lineas:              make([]dto.TransferLine, 0, len(lines)),
		LineasEnviadas:      make([]dto.TransferLine, 0),
	}
	for _, ml := range lines {
		product := byID[ml.ProductID]
		resp.PesoTotal = resp.PesoTotal.Add(picking.Weight(product, ml.QtyDone))
		resp.NumeroItems = resp.NumeroItems.Add(ml.QtyDone)

		line := dto.TransferLine{
			ID:                 ml.ID,
			IDMove:             ml.MoveID,
			IDTransferencia:    p.ID,
			ProductInfo:        picking.ProductInfo(product, ml.MoveID, p.ID),
			QuantityOrdered:    moveQty[ml.MoveID],
			QuantityToTransfer: ml.ReservedQty,
			QuantityDone:       ml.QtyDone,
			Uom:                picking.UomName(ml.UomName),
			LocationInfo:       picking.Locations(ml.Location, ml.LocationDest),
			LotID:              ml.LotID,
			LotName:            ml.LotName,
			FechaVencimiento:   dto.FormatTime(ml.LotExpiration),
		}
		if ml.IsDoneItem {
			resp.LineasEnviadas = append(resp.LineasEnviadas, line)
		} else {
			resp.Lineas = append(resp.Lineas, line)
		}
	}
	return resp, nil
}
