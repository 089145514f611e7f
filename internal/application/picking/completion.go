package picking

import (
	"context"

	"github.com/jhoicas/appwms-api/internal/domain"
	"github.com/jhoicas/appwms-api/internal/domain/entity"
	"github.com/jhoicas/appwms-api/internal/domain/repository"
)

// Outcome resultado de finalizar un picking.
type Outcome int

const (
	// OutcomeDone el ERP validó sin pedir asistente.
	OutcomeDone Outcome = iota
	// OutcomeBackorder se procesó el asistente de backorder creando el backorder.
	OutcomeBackorder
	// OutcomeNoBackorder se procesó el asistente de backorder cancelando el pendiente.
	OutcomeNoBackorder
	// OutcomeImmediate se forzó la transferencia inmediata.
	OutcomeImmediate
)

// Métodos del asistente invocados en el ERP.
const (
	methodProcess                = "process"
	methodProcessCancelBackorder = "process_cancel_backorder"
)

// Completion resultado de Complete; WizardID es el asistente creado (0 si no hubo).
type Completion struct {
	Outcome  Outcome
	WizardID int64
}

// Completer resuelve la finalización de un picking sin intervención humana:
// valida en el ERP y, si éste pide un asistente, lo resuelve según createBackorder.
type Completer struct {
	engine repository.StockEngine
}

// NewCompleter construye el resolvedor.
func NewCompleter(engine repository.StockEngine) *Completer {
	return &Completer{engine: engine}
}

// Complete valida el picking. Un asistente distinto de backorder o transferencia inmediata
// devuelve domain.ErrUnsupportedWizard.
func (c *Completer) Complete(ctx context.Context, pickingID int64, createBackorder bool) (Completion, error) {
	action, err := c.engine.Validate(ctx, pickingID)
	if err != nil {
		return Completion{}, err
	}
	if action == nil || action.Model == "" {
		return Completion{Outcome: OutcomeDone}, nil
	}

	switch action.Model {
	case entity.WizardBackorder:
		method, outcome := methodProcess, OutcomeBackorder
		if !createBackorder {
			method, outcome = methodProcessCancelBackorder, OutcomeNoBackorder
		}
		id, err := c.engine.ResolveWizard(ctx, action, pickingID, method)
		if err != nil {
			return Completion{}, err
		}
		return Completion{Outcome: outcome, WizardID: id}, nil
	case entity.WizardImmediate:
		id, err := c.engine.ResolveWizard(ctx, action, pickingID, methodProcess)
		if err != nil {
			return Completion{}, err
		}
		return Completion{Outcome: OutcomeImmediate, WizardID: id}, nil
	default:
		return Completion{}, domain.Detail(domain.ErrUnsupportedWizard, "Se requiere un asistente no soportado: %s", action.Model)
	}
}
