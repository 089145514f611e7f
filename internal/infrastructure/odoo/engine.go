package odoo

import (
	"bytes"
	"context"

	"github.com/goccy/go-json"

	"github.com/jhoicas/appwms-api/internal/domain/entity"
	"github.com/jhoicas/appwms-api/internal/domain/repository"
)

var _ repository.StockEngine = (*StockEngine)(nil)

// StockEngine invoca las acciones del motor de inventario del ERP sobre stock.picking.
type StockEngine struct {
	c *Client
}

func NewStockEngine(c *Client) *StockEngine {
	return &StockEngine{c: c}
}

type actionResult struct {
	ResModel Str            `json:"res_model"`
	Context  map[string]any `json:"context"`
}

// Validate ejecuta button_validate. Si el ERP responde con una acción de ventana devuelve el asistente.
func (e *StockEngine) Validate(ctx context.Context, pickingID int64) (*entity.WizardAction, error) {
	var raw json.RawMessage
	if err := e.c.ExecuteKW(ctx, pickingModel, "button_validate", []any{[]int64{pickingID}}, nil, &raw); err != nil {
		return nil, err
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return nil, nil
	}
	var act actionResult
	if err := json.Unmarshal(raw, &act); err != nil {
		return nil, err
	}
	if act.ResModel == "" {
		return nil, nil
	}
	return &entity.WizardAction{Model: string(act.ResModel), Context: act.Context}, nil
}

// ResolveWizard crea el asistente con el contexto de la acción y ejecuta method sobre él.
func (e *StockEngine) ResolveWizard(ctx context.Context, action *entity.WizardAction, pickingID int64, method string) (int64, error) {
	vals := map[string]any{"pick_ids": []any{[]any{4, pickingID}}}
	if action.Model == entity.WizardBackorder {
		show, _ := action.Context["default_show_transfers"].(bool)
		vals["show_transfers"] = show
	}
	wizardID, err := e.c.Create(ctx, action.Model, vals, action.Context)
	if err != nil {
		return 0, err
	}
	var kw map[string]any
	if len(action.Context) > 0 {
		kw = map[string]any{"context": action.Context}
	}
	if err := e.c.ExecuteKW(ctx, action.Model, method, []any{[]int64{wizardID}}, kw, nil); err != nil {
		return 0, err
	}
	return wizardID, nil
}

// CheckAvailability ejecuta action_assign.
func (e *StockEngine) CheckAvailability(ctx context.Context, pickingID int64) error {
	return e.c.ExecuteKW(ctx, pickingModel, "action_assign", []any{[]int64{pickingID}}, nil, nil)
}

// Confirm ejecuta action_confirm.
func (e *StockEngine) Confirm(ctx context.Context, pickingID int64) error {
	return e.c.ExecuteKW(ctx, pickingModel, "action_confirm", []any{[]int64{pickingID}}, nil, nil)
}
