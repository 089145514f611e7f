package transfer

import (
	"context"
	"fmt"

	"github.com/jhoicas/appwms-api/internal/application/dto"
	"github.com/jhoicas/appwms-api/internal/application/picking"
	"github.com/jhoicas/appwms-api/internal/application/validation"
	"github.com/jhoicas/appwms-api/internal/domain"
	"github.com/jhoicas/appwms-api/internal/domain/entity"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// Send aplica las líneas procesadas. Un ítem normal sobrescribe la línea reservada; un ítem
// dividido crea una línea adicional bajo el mismo movimiento. No se valida que la suma de
// las divisiones no supere lo reservado: el exceso sólo se registra como warning.
// No es atómico: un error deja escritas las líneas anteriores.
func (uc *UseCase) Send(ctx context.Context, userID int64, in dto.SendTransferRequest) ([]dto.LineResult, error) {
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

	allocated := make(map[int64]decimal.Decimal)
	results := make([]dto.LineResult, 0, len(in.ListItems))
	for _, item := range in.ListItems {
		if item.IDMoveLine == 0 {
			return nil, domain.Detail(domain.ErrInvalidInput, "El campo 'id_move_line' es requerido")
		}
		if !item.CantidadSeparada.IsPositive() {
			continue
		}
		src, err := uc.moves.GetLine(ctx, item.IDMoveLine)
		if err != nil {
			return nil, err
		}
		if src == nil || src.PickingID != p.ID {
			return nil, domain.Detail(domain.ErrNotFound, "Línea de movimiento %d no encontrada en la transferencia", item.IDMoveLine)
		}
		product, err := uc.products.GetByID(ctx, src.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.Detail(domain.ErrNotFound, "Producto %d no encontrado", src.ProductID)
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
		}
		txTime, err := uc.clock.TransactionTime(item.FechaTransaccion)
		if err != nil {
			return nil, err
		}

		line := *src
		if item.Dividida {
			line.ID = 0
			line.ReservedQty = decimal.Zero
			total := allocated[src.ID].Add(item.CantidadSeparada)
			allocated[src.ID] = total
			if total.GreaterThan(src.ReservedQty) {
				log.Warn().
					Int64("picking_id", p.ID).
					Int64("move_line_id", src.ID).
					Str("reservado", src.ReservedQty.String()).
					Str("dividido", total.String()).
					Msg("las divisiones superan la cantidad reservada de la línea")
			}
		}
		line.QtyDone = item.CantidadSeparada
		if item.UbicacionDestino != 0 {
			line.LocationDest = entity.LocationRef{ID: item.UbicacionDestino}
		}
		if lot != nil {
			line.LotID, line.LotName, line.LotExpiration = lot.ID, lot.Name, lot.ExpirationDate
		}
		line.IsDoneItem = true
		line.DateTransaction = &txTime
		line.Observation = item.Observacion
		line.Time = item.TimeLine
		line.OperatorID = item.IDOperario

		if item.Dividida {
			err = uc.moves.CreateLine(ctx, &line)
		} else {
			err = uc.moves.UpdateLine(ctx, &line)
		}
		if err != nil {
			return nil, err
		}
		uc.journal.Record(ctx, &entity.LinePosting{
			Kind:            entity.PostingKindTransfer,
			PickingID:       p.ID,
			MoveID:          line.MoveID,
			MoveLineID:      line.ID,
			ProductID:       product.ID,
			LotID:           line.LotID,
			LocationDestID:  line.LocationDest.ID,
			Quantity:        item.CantidadSeparada,
			OperatorID:      item.IDOperario,
			UserID:          userID,
			Observation:     item.Observacion,
			DateTransaction: txTime,
			Split:           item.Dividida,
		})

		res := dto.LineResult{
			IDMoveLine:       line.ID,
			Producto:         product.Name,
			Cantidad:         item.CantidadSeparada,
			UbicacionDestino: line.LocationDest.ID,
			FechaTransaccion: item.FechaTransaccion,
			DateTransaction:  dto.FormatTime(line.DateTransaction),
			NewObservation:   line.Observation,
			Time:             line.Time,
			UserOperatorID:   line.OperatorID,
			IsDoneItem:       true,
			Dividida:         item.Dividida,
		}
		if lot != nil {
			res.Lote = lot.Name
		}
		results = append(results, res)
	}
	return results, nil
}

// Complete valida la transferencia en el ERP resolviendo el asistente si lo pide.
func (uc *UseCase) Complete(ctx context.Context, userID int64, in dto.CompleteTransferRequest) (string, error) {
	if err := validation.Struct(in); err != nil {
		return "", err
	}
	user, err := picking.LoadUser(ctx, uc.users, userID)
	if err != nil {
		return "", err
	}
	p, err := uc.accessibleInternal(ctx, user, in.IDTransferencia)
	if err != nil {
		return "", err
	}
	if p.State == entity.StateDone {
		return "", domain.Detail(domain.ErrNotFound, "Transferencia no encontrada o ya completada con ID %d", in.IDTransferencia)
	}
	res, err := uc.completer.Complete(ctx, p.ID, picking.BackorderFlag(in.CrearBackorder))
	if err != nil {
		return "", err
	}
	switch res.Outcome {
	case picking.OutcomeBackorder:
		return fmt.Sprintf("Transferencia parcial completada y backorder creado - ID %d", res.WizardID), nil
	case picking.OutcomeNoBackorder:
		return "Transferencia parcial completada sin crear backorder", nil
	case picking.OutcomeImmediate:
		return "Transferencia procesada con transferencia inmediata", nil
	default:
		return "Transferencia completada correctamente", nil
	}
}

// AssignResponsible asigna responsable a una transferencia que aún no lo tiene.
func (uc *UseCase) AssignResponsible(ctx context.Context, userID int64, in dto.AssignTransferRequest) error {
	if err := validation.Struct(in); err != nil {
		return err
	}
	user, err := picking.LoadUser(ctx, uc.users, userID)
	if err != nil {
		return err
	}
	p, err := uc.accessibleInternal(ctx, user, in.IDTransferencia)
	if err != nil {
		return err
	}
	if p.ResponsibleID != 0 {
		return domain.Detail(domain.ErrAlreadyAssigned, "La transferencia ya tiene un responsable asignado")
	}
	return uc.pickings.SetResponsible(ctx, p.ID, in.IDResponsable)
}
