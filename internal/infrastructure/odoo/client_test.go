package odoo

import (
	"context"
	"errors"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/appwms-api/internal/domain"
	"github.com/jhoicas/appwms-api/internal/domain/entity"
	"github.com/jhoicas/appwms-api/internal/domain/repository"
)

// serviceAuth autentica la cuenta técnica api/secret con uid 2.
func serviceAuth(args []any) (any, *rpcError) {
	if args[0] == "api" && args[1] == "secret" {
		return 2, nil
	}
	return false, nil
}

// ── Autenticación ─────────────────────────────────────────────────────────────

func TestAuthenticate_CredencialesValidasEInvalidas(t *testing.T) {
	_, c := newFakeERP(t, func(model, method string, args []any, _ map[string]any) (any, *rpcError) {
		if method == "authenticate" {
			if args[0] == "operario" && args[1] == "1234" {
				return 7, nil
			}
			return false, nil
		}
		return nil, fault("odoo.exceptions.UserError", "inesperado")
	})
	ctx := context.Background()

	uid, err := c.Authenticate(ctx, "operario", "1234")
	require.NoError(t, err)
	assert.Equal(t, int64(7), uid)

	uid, err = c.Authenticate(ctx, "operario", "mala")
	require.NoError(t, err)
	assert.Zero(t, uid)
}

func TestExecuteKW_AutenticaUnaSolaVez(t *testing.T) {
	f, c := newFakeERP(t, func(model, method string, args []any, _ map[string]any) (any, *rpcError) {
		if method == "authenticate" {
			return serviceAuth(args)
		}
		return []any{}, nil
	})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		var rows []map[string]any
		require.NoError(t, c.SearchRead(ctx, "stock.location", nil, Query{}, &rows))
	}
	assert.Equal(t, 1, f.count("", "authenticate"))
	assert.Equal(t, 3, f.count("stock.location", "search_read"))
}

func TestExecuteKW_CuentaDeServicioRechazada(t *testing.T) {
	_, c := newFakeERP(t, func(_, method string, _ []any, _ map[string]any) (any, *rpcError) {
		return false, nil
	})
	err := c.ExecuteKW(context.Background(), "res.users", "read", nil, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "credenciales de servicio")
}

// ── Clasificación de fallos ───────────────────────────────────────────────────

func TestClassifyFault(t *testing.T) {
	cases := []struct {
		name string
		want error
	}{
		{"odoo.exceptions.AccessError", domain.ErrForbidden},
		{"odoo.exceptions.MissingError", domain.ErrNotFound},
		{"odoo.exceptions.UserError", domain.ErrBusinessRule},
		{"odoo.exceptions.ValidationError", domain.ErrBusinessRule},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := classifyFault(fault(tc.name, "detalle del ERP"))
			assert.ErrorIs(t, err, tc.want)
			assert.Equal(t, "detalle del ERP", err.Error())
		})
	}

	err := classifyFault(fault("builtins.KeyError", "x"))
	for _, kind := range []error{domain.ErrForbidden, domain.ErrNotFound, domain.ErrBusinessRule} {
		assert.False(t, errors.Is(err, kind))
	}
}

func TestExecuteKW_PropagaFalloClasificado(t *testing.T) {
	_, c := newFakeERP(t, func(model, method string, args []any, _ map[string]any) (any, *rpcError) {
		if method == "authenticate" {
			return serviceAuth(args)
		}
		return nil, fault("odoo.exceptions.UserError", "No hay cantidades para validar")
	})
	err := c.ExecuteKW(context.Background(), "stock.picking", "button_validate", []any{[]int64{1}}, nil, nil)
	assert.ErrorIs(t, err, domain.ErrBusinessRule)
	assert.Equal(t, "No hay cantidades para validar", err.Error())
}

// ── fields_get ────────────────────────────────────────────────────────────────

func TestHasField_CacheaFieldsGet(t *testing.T) {
	f, c := newFakeERP(t, func(model, method string, args []any, _ map[string]any) (any, *rpcError) {
		switch method {
		case "authenticate":
			return serviceAuth(args)
		case "fields_get":
			return fieldsGet("id", "name", "barcode_ids"), nil
		}
		return nil, nil
	})
	ctx := context.Background()

	ok, err := c.HasField(ctx, "product.product", "barcode_ids")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.HasField(ctx, "product.product", "packaging_ids")
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Equal(t, 1, f.count("product.product", "fields_get"))
}

// ── Tipos ─────────────────────────────────────────────────────────────────────

func TestTipos_ValoresFalse(t *testing.T) {
	var row struct {
		Ref  Many2One `json:"ref"`
		Text Str      `json:"text"`
		N    Int      `json:"n"`
		Qty  Num      `json:"qty"`
		At   Time     `json:"at"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"ref":false,"text":false,"n":false,"qty":false,"at":false}`), &row))
	assert.Zero(t, row.Ref.ID)
	assert.Empty(t, row.Text)
	assert.Zero(t, row.N)
	assert.True(t, row.Qty.IsZero())
	assert.Nil(t, row.At.Ptr())
}

func TestTipos_ValoresPresentes(t *testing.T) {
	var row struct {
		Ref  Many2One `json:"ref"`
		Text Str      `json:"text"`
		Qty  Num      `json:"qty"`
		At   Time     `json:"at"`
		Day  Time     `json:"day"`
	}
	raw := `{"ref":[4,"WH/Stock"],"text":"abc","qty":12.5,"at":"2025-03-01 13:00:00","day":"2025-03-02"}`
	require.NoError(t, json.Unmarshal([]byte(raw), &row))
	assert.Equal(t, Many2One{ID: 4, Name: "WH/Stock"}, row.Ref)
	assert.Equal(t, Str("abc"), row.Text)
	assert.Equal(t, "12.5", row.Qty.String())
	require.NotNil(t, row.At.Ptr())
	assert.Equal(t, 13, row.At.Value().Hour())
	assert.Equal(t, 2, row.Day.Value().Day())
}

// ── Motor de inventario ───────────────────────────────────────────────────────

func TestStockEngine_ValidateSinAsistente(t *testing.T) {
	_, c := newFakeERP(t, func(model, method string, args []any, _ map[string]any) (any, *rpcError) {
		if method == "authenticate" {
			return serviceAuth(args)
		}
		return true, nil
	})
	action, err := NewStockEngine(c).Validate(context.Background(), 100)
	require.NoError(t, err)
	assert.Nil(t, action)
}

func TestStockEngine_ValidateYResolverBackorder(t *testing.T) {
	f, c := newFakeERP(t, func(model, method string, args []any, _ map[string]any) (any, *rpcError) {
		switch {
		case method == "authenticate":
			return serviceAuth(args)
		case method == "button_validate":
			return map[string]any{
				"type":      "ir.actions.act_window",
				"res_model": entity.WizardBackorder,
				"context":   map[string]any{"default_show_transfers": true, "button_validate_picking_ids": []int64{100}},
			}, nil
		case method == "create":
			return 55, nil
		}
		return true, nil
	})
	engine := NewStockEngine(c)
	ctx := context.Background()

	action, err := engine.Validate(ctx, 100)
	require.NoError(t, err)
	require.NotNil(t, action)
	assert.Equal(t, entity.WizardBackorder, action.Model)

	id, err := engine.ResolveWizard(ctx, action, 100, "process_cancel_backorder")
	require.NoError(t, err)
	assert.Equal(t, int64(55), id)

	create, ok := f.last(entity.WizardBackorder, "create")
	require.True(t, ok)
	vals := create.Args[0].(map[string]any)
	assert.Equal(t, true, vals["show_transfers"])
	assert.Equal(t, []any{[]any{float64(4), float64(100)}}, vals["pick_ids"])
	assert.Contains(t, create.Kwargs, "context")

	assert.Equal(t, 1, f.count(entity.WizardBackorder, "process_cancel_backorder"))
}

// ── Repositorios ──────────────────────────────────────────────────────────────

func TestPickingRepository_ListConstruyeDominio(t *testing.T) {
	f, c := newFakeERP(t, func(model, method string, args []any, _ map[string]any) (any, *rpcError) {
		switch {
		case method == "authenticate":
			return serviceAuth(args)
		case method == "fields_get" && model == pickingModel:
			return fieldsGet("id", "name", "is_return_picking", "purchase_id"), nil
		case method == "fields_get":
			return fieldsGet("id"), nil
		case model == pickingModel && method == "search_read":
			return []map[string]any{{
				"id": 100, "name": "WH/IN/00100", "state": "assigned", "picking_type_code": "incoming",
				"picking_type_id": []any{1, "Recepciones"}, "location_id": []any{8, "Partners/Vendors"},
				"location_dest_id": []any{4, "WH/Stock"}, "partner_id": []any{9, "Proveedor"},
				"user_id": false, "origin": "P00009", "priority": "0", "purchase_id": false,
				"backorder_id": false, "is_return_picking": false, "create_date": "2025-03-01 10:00:00",
				"scheduled_date": false,
			}}, nil
		case model == "stock.picking.type":
			return []map[string]any{{"id": 1, "name": "Recepciones", "code": "incoming", "sequence_code": "IN", "warehouse_id": []any{1, "Principal"}}}, nil
		case model == "stock.warehouse":
			return []map[string]any{{"id": 1, "name": "Principal", "code": "WH"}}, nil
		case model == "stock.location":
			return []map[string]any{{"id": 4, "display_name": "WH/Stock", "barcode": "LOC-4"}}, nil
		}
		return []any{}, nil
	})

	list, err := NewPickingRepository(c).List(context.Background(), repository.PickingFilter{
		WarehouseID:    1,
		TypeCode:       entity.PickingTypeIncoming,
		State:          entity.StateAssigned,
		ResponsibleID:  7,
		ExcludeReturns: true,
	})
	require.NoError(t, err)
	require.Len(t, list, 1)
	p := list[0]
	assert.Equal(t, "WH/IN/00100", p.Name)
	assert.Equal(t, int64(1), p.WarehouseID)
	assert.Equal(t, "Principal", p.WarehouseName)
	assert.Equal(t, "IN", p.SequenceCode)
	assert.Equal(t, "LOC-4", p.LocationDest.Barcode)
	assert.Equal(t, "Partners/Vendors", p.Location.Name)
	assert.Zero(t, p.ResponsibleID)

	call, ok := f.last(pickingModel, "search_read")
	require.True(t, ok)
	dom := call.Args[0].([]any)
	assert.Contains(t, dom, []any{"is_return_picking", "=", false})
	assert.Contains(t, dom, []any{"picking_type_id.warehouse_id", "=", float64(1)})
	assert.Contains(t, dom, "|")
	assert.Contains(t, dom, []any{"user_id", "=", false})
}

func TestUserRepository_GetByIDDetectaGestorDeInventario(t *testing.T) {
	_, c := newFakeERP(t, func(model, method string, args []any, _ map[string]any) (any, *rpcError) {
		switch {
		case method == "authenticate":
			return serviceAuth(args)
		case method == "fields_get":
			return fieldsGet("id", "name", "allowed_warehouse_ids"), nil
		case model == "res.users":
			return []map[string]any{{
				"id": 2, "name": "Administrador", "login": "admin", "email": false,
				"company_id": []any{1, "Mi compañía"}, "allowed_warehouse_ids": []int64{1, 2},
				"groups_id": []int64{3, 17},
			}}, nil
		case model == "ir.model.data":
			return []map[string]any{{"res_id": 17}}, nil
		}
		return []any{}, nil
	})

	u, err := NewUserRepository(c).GetByID(context.Background(), 2)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.True(t, u.IsStockManager)
	assert.Equal(t, []int64{1, 2}, u.AllowedWarehouseIDs)
	assert.Empty(t, u.Email)
}

func TestUserRepository_GetByIDInexistente(t *testing.T) {
	_, c := newFakeERP(t, func(model, method string, args []any, _ map[string]any) (any, *rpcError) {
		switch method {
		case "authenticate":
			return serviceAuth(args)
		case "fields_get":
			return fieldsGet("id"), nil
		}
		return []any{}, nil
	})
	u, err := NewUserRepository(c).GetByID(context.Background(), 99)
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestBatchRepository_CampoInexistente(t *testing.T) {
	_, c := newFakeERP(t, func(model, method string, args []any, _ map[string]any) (any, *rpcError) {
		switch method {
		case "authenticate":
			return serviceAuth(args)
		case "fields_get":
			return fieldsGet("id", "name", "start_time_pick"), nil
		case "search_read":
			return []map[string]any{{"id": 3, "start_time_pick": "2025-03-01 08:00:00"}}, nil
		}
		return true, nil
	})
	repo := NewBatchRepository(c)
	ctx := context.Background()

	_, err := repo.ReadTime(ctx, 3, "start_time_pack")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := repo.ReadTime(ctx, 3, "start_time_pick")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 8, got.Hour())
}
