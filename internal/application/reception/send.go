package reception

import (
	"context"
	"fmt"

	"github.com/jhoicas/appwms-api/internal/application/dto"
	"github.com/jhoicas/appwms-api/internal/application/picking"
	"github.com/jhoicas/appwms-api/internal/application/validation"
	"github.com/jhoicas/appwms-api/internal/domain"
	"github.com/jhoicas/appwms-api/internal/domain/entity"
)

// AssignResponsible asigna responsable a una recepción que aún no lo tiene.
func (uc *UseCase) AssignResponsible(ctx context.Context, in dto.AssignResponsibleRequest) error {
	if err := validation.Struct(in); err != nil {
		return err
	}
	p, err := uc.pickings.GetByID(ctx, in.IDRecepcion)
	if err != nil {
		return err
	}
	if p == nil || p.TypeCode != entity.PickingTypeIncoming {
		return domain.Detail(domain.ErrNotFound, "Recepción no encontrada")
	}
	if p.ResponsibleID != 0 {
		return domain.Detail(domain.ErrAlreadyAssigned, "La recepción ya tiene un responsable asignado")
	}
	return uc.pickings.SetResponsible(ctx, p.ID, in.IDResponsable)
}

// Send registra las líneas recibidas: por cada ítem crea una línea de movimiento con la cantidad
// y los campos de auditoría. No es atómico: un error deja escritas las líneas anteriores.
func (uc *UseCase) Send(ctx context.Context, userID int64, in dto.SendReceptionRequest) ([]dto.LineResult, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	p, err := uc.pickings.GetByID(ctx, in.IDRecepcion)
	if err != nil {
		return nil, err
	}
	if p == nil || p.TypeCode != entity.PickingTypeIncoming || p.State == entity.StateDone {
		return nil, domain.Detail(domain.ErrNotFound, "Recepción no encontrada o ya completada con ID %d", in.IDRecepcion)
	}
	moves, err := uc.moves.ListByPicking(ctx, p.ID)
	if err != nil {
		return nil, err
	}

	results := make([]dto.LineResult, 0, len(in.ListItems))
	for _, item := range in.ListItems {
		if item.IDProducto == 0 || !item.CantidadSeparada.IsPositive() {
			continue
		}
		product, err := uc.products.GetByID(ctx, item.IDProducto)
		if err != nil {
			return nil, err
		}
		if product == nil {
			continue
		}
		move := resolveMove(moves, item.IDMove, product.ID)
		if move == nil {
			return nil, domain.Detail(domain.ErrInvalidInput, "El producto %s no está en la recepción", product.Name)
		}

		line := &entity.MoveLine{
			MoveID:       move.ID,
			PickingID:    p.ID,
			ProductID:    product.ID,
			ProductName:  product.Name,
			QtyDone:      item.CantidadSeparada,
			Location:     move.Location,
			LocationDest: move.LocationDest,
			UomID:        move.UomID,
			UomName:      move.UomName,
		}
		if item.UbicacionDestino != 0 {
			line.LocationDest = entity.LocationRef{ID: item.UbicacionDestino}
		}

		var lot *entity.Lot
		if product.IsLotTracked() {
			if item.LoteProducto == 0 {
				return nil, domain.Detail(domain.ErrLotRequired, "El producto %s requiere un lote", product.Name)
			}
			lot, err = uc.lots.GetByID(ctx, item.LoteProducto)
			if err != nil {
				return nil, err
			}
			if lot == nil {
				return nil, domain.Detail(domain.ErrInvalidInput, "Lote no encontrado para el producto %s", product.Name)
			}
			line.LotID, line.LotName, line.LotExpiration = lot.ID, lot.Name, lot.ExpirationDate
		}

		txTime, err := uc.clock.TransactionTime(item.FechaTransaccion)
		if err != nil {
			return nil, err
		}
		line.IsDoneItem = true
		line.DateTransaction = &txTime
		line.Observation = item.Observacion
		line.Time = item.TimeLine
		line.OperatorID = item.IDOperario

		if err := uc.moves.CreateLine(ctx, line); err != nil {
			return nil, err
		}
		uc.journal.Record(ctx, &entity.LinePosting{
			Kind:            entity.PostingKindReception,
			PickingID:       p.ID,
			MoveID:          move.ID,
			MoveLineID:      line.ID,
			ProductID:       product.ID,
			LotID:           line.LotID,
			LocationDestID:  line.LocationDest.ID,
			Quantity:        item.CantidadSeparada,
			OperatorID:      item.IDOperario,
			UserID:          userID,
			Observation:     item.Observacion,
			DateTransaction: txTime,
		})

		res := dto.LineResult{
			IDMoveLine:       line.ID,
			Producto:         product.Name,
			Cantidad:         item.CantidadSeparada,
			UbicacionDestino: item.UbicacionDestino,
			FechaTransaccion: item.FechaTransaccion,
			DateTransaction:  dto.FormatTime(line.DateTransaction),
			NewObservation:   line.Observation,
			Time:             line.Time,
			UserOperatorID:   line.OperatorID,
			IsDoneItem:       true,
		}
		if lot != nil {
			res.Lote = lot.Name
		}
		results = append(results, res)
	}
	return results, nil
}

// Complete valida la recepción en el ERP resolviendo el asistente si lo pide.
func (uc *UseCase) Complete(ctx context.Context, in dto.CompleteReceptionRequest) (string, error) {
	if err := validation.Struct(in); err != nil {
		return "", err
	}
	p, err := uc.pickings.GetByID(ctx, in.IDRecepcion)
	if err != nil {
		return "", err
	}
	if p == nil || p.TypeCode != entity.PickingTypeIncoming || p.State == entity.StateDone {
		return "", domain.Detail(domain.ErrNotFound, "Recepción no encontrada o ya completada con ID %d", in.IDRecepcion)
	}
	res, err := uc.completer.Complete(ctx, p.ID, picking.BackorderFlag(in.CrearBackorder))
	if err != nil {
		return "", err
	}
	switch res.Outcome {
	case picking.OutcomeBackorder:
		return fmt.Sprintf("Recepción parcial completada y backorder creado - ID %d", res.WizardID), nil
	case picking.OutcomeNoBackorder:
		return "Recepción parcial completada sin crear backorder", nil
	case picking.OutcomeImmediate:
		return "Recepción procesada con transferencia inmediata", nil
	default:
		return "Recepción completada correctamente", nil
	}
}

// resolveMove busca el movimiento por id y, si no viene, por producto.
func resolveMove(moves []*entity.Move, moveID, productID int64) *entity.Move {
	for _, m := range moves {
		if moveID != 0 && m.ID == moveID {
			return m
		}
		if moveID == 0 && m.ProductID == productID {
			return m
		}
	}
	return nil
}
