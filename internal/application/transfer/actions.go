package transfer

import (
	"context"

	"github.com/jhoicas/appwms-api/internal/application/dto"
	"github.com/jhoicas/appwms-api/internal/application/picking"
	"github.com/jhoicas/appwms-api/internal/application/validation"
	"github.com/jhoicas/appwms-api/internal/domain"
	"github.com/jhoicas/appwms-api/internal/domain/entity"
	"github.com/jhoicas/appwms-api/internal/domain/repository"
)

// CheckAvailability pide al ERP recalcular las reservas y devuelve el estado resultante.
func (uc *UseCase) CheckAvailability(ctx context.Context, userID int64, in dto.CheckAvailabilityRequest) (*dto.PickingStateResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	user, err := picking.LoadUser(ctx, uc.users, userID)
	if err != nil {
		return nil, err
	}
	p, err := uc.accessible(ctx, user, in.IDTransferencia)
	if err != nil {
		return nil, err
	}
	if p.IsClosed() {
		return nil, domain.Detail(domain.ErrInvalidInput, "La transferencia %s ya está cerrada", p.Name)
	}
	if err := uc.engine.CheckAvailability(ctx, p.ID); err != nil {
		return nil, err
	}
	return uc.state(ctx, p.ID)
}

// Create crea una transferencia interna en el almacén indicado con su tipo de operación
// interna, la confirma y reserva.
func (uc *UseCase) Create(ctx context.Context, userID int64, in dto.CreateTransferRequest) (*dto.PickingStateResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	user, err := picking.LoadUser(ctx, uc.users, userID)
	if err != nil {
		return nil, err
	}
	if !user.CanAccessWarehouse(in.IDAlmacen) {
		return nil, domain.Detail(domain.ErrForbidden, "No tienes permisos sobre el almacén %d", in.IDAlmacen)
	}
	pt, err := uc.warehouses.InternalPickingType(ctx, in.IDAlmacen)
	if err != nil {
		return nil, err
	}
	if pt == nil {
		return nil, domain.Detail(domain.ErrNotFound, "El almacén %d no tiene un tipo de operación interna", in.IDAlmacen)
	}

	nt := entity.NewTransfer{
		PickingTypeID:  pt.ID,
		LocationID:     in.LocationID,
		LocationDestID: in.LocationDestID,
		Origin:         in.Origin,
		ResponsibleID:  user.ID,
	}
	if nt.LocationID == 0 {
		nt.LocationID = pt.DefaultLocationID
	}
	if nt.LocationDestID == 0 {
		nt.LocationDestID = pt.DefaultLocationDest
	}
	for _, id := range []int64{nt.LocationID, nt.LocationDestID} {
		loc, err := uc.locations.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if loc == nil {
			return nil, domain.Detail(domain.ErrNotFound, "Ubicación %d no encontrada", id)
		}
	}
	for _, l := range in.Lineas {
		if !l.Cantidad.IsPositive() {
			return nil, domain.Detail(domain.ErrInvalidInput, "La cantidad del producto %d debe ser mayor que cero", l.IDProducto)
		}
		product, err := uc.products.GetByID(ctx, l.IDProducto)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.Detail(domain.ErrNotFound, "Producto %d no encontrado", l.IDProducto)
		}
		nt.Lines = append(nt.Lines, entity.NewTransferLine{
			ProductID: product.ID,
			Quantity:  l.Cantidad,
			UomID:     product.UomID,
			Name:      product.Name,
		})
	}

	id, err := uc.pickings.Create(ctx, nt)
	if err != nil {
		return nil, err
	}
	if err := uc.engine.Confirm(ctx, id); err != nil {
		return nil, err
	}
	if err := uc.engine.CheckAvailability(ctx, id); err != nil {
		return nil, err
	}
	return uc.state(ctx, id)
}

// QuickInfo resuelve un código escaneado a producto, ubicación o lote con sus existencias.
func (uc *UseCase) QuickInfo(ctx context.Context, barcode string) (*dto.QuickInfoResponse, error) {
	if barcode == "" {
		return nil, domain.Detail(domain.ErrInvalidInput, "El campo 'barcode' es requerido")
	}
	product, err := uc.products.FindByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}
	if product != nil {
		out := &dto.QuickInfoResponse{
			Type:        "product",
			ID:          product.ID,
			Name:        product.Name,
			Barcode:     product.Barcode,
			ProductCode: product.DefaultCode,
			Tracking:    product.Tracking,
			Uom:         product.UomName,
		}
		return uc.withQuants(ctx, out, repository.QuantFilter{ProductID: product.ID})
	}

	loc, err := uc.locations.FindByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}
	if loc != nil {
		out := &dto.QuickInfoResponse{Type: "location", ID: loc.ID, Name: loc.CompleteName, Barcode: loc.Barcode}
		return uc.withQuants(ctx, out, repository.QuantFilter{LocationID: loc.ID})
	}

	lot, err := uc.lots.FindByName(ctx, barcode)
	if err != nil {
		return nil, err
	}
	if lot != nil {
		out := &dto.QuickInfoResponse{Type: "lot", ID: lot.ID, Name: lot.Name, Barcode: lot.Name}
		return uc.withQuants(ctx, out, repository.QuantFilter{LotID: lot.ID})
	}
	return nil, domain.Detail(domain.ErrNotFound, "No se encontró información para el código %s", barcode)
}

func (uc *UseCase) withQuants(ctx context.Context, out *dto.QuickInfoResponse, f repository.QuantFilter) (*dto.QuickInfoResponse, error) {
	quants, err := uc.quants.List(ctx, f)
	if err != nil {
		return nil, err
	}
	out.Existencias = make([]dto.QuantInfo, 0, len(quants))
	for _, q := range quants {
		out.Existencias = append(out.Existencias, dto.QuantInfo{
			ProductID:       q.ProductID,
			ProductName:     q.ProductName,
			LocationID:      q.Location.ID,
			LocationName:    q.Location.Name,
			LocationBarcode: q.Location.Barcode,
			LotID:           q.LotID,
			LotName:         q.LotName,
			Quantity:        q.Quantity,
			Reserved:        q.Reserved,
		})
	}
	return out, nil
}

func (uc *UseCase) state(ctx context.Context, id int64) (*dto.PickingStateResponse, error) {
	p, err := uc.pickings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.Detail(domain.ErrNotFound, "Transferencia no encontrada")
	}
	return &dto.PickingStateResponse{ID: p.ID, Name: p.Name, State: p.State}, nil
}
