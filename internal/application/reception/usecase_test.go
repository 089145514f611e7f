package reception_test

import (
	"context"
	"errors"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/appwms-api/internal/application/dto"
	"github.com/jhoicas/appwms-api/internal/application/picking"
	"github.com/jhoicas/appwms-api/internal/application/reception"
	"github.com/jhoicas/appwms-api/internal/domain"
	"github.com/jhoicas/appwms-api/internal/domain/entity"
	"github.com/jhoicas/appwms-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Escenario: almacenes 1 y 2. El operario 7 sólo tiene el almacén 1.
// Recepción 100 (almacén 1): leche por lote (48) y arroz sin lote (20).
// Recepción 101 (almacén 2): arroz (5), fuera del alcance del operario.
// ──────────────────────────────────────────────────────────────────────────────

func newReception(t *testing.T) (*reception.UseCase, *memory.Store) {
	t.Helper()
	s := memory.NewStore()
	exp := time.Date(2027, 1, 31, 0, 0, 0, 0, time.UTC)

	s.AddWarehouse(entity.Warehouse{ID: 1, Name: "Principal", Code: "WH"})
	s.AddWarehouse(entity.Warehouse{ID: 2, Name: "Norte", Code: "BN"})
	s.AddUser(entity.User{ID: 7, Name: "Operario", AllowedWarehouseIDs: []int64{1}}, "op", "op")
	s.AddUser(entity.User{ID: 8, Name: "Sin almacenes"}, "sin", "sin")
	s.AddLocation(entity.Location{ID: 4, CompleteName: "Partners/Vendors", Usage: "supplier", Active: true})
	s.AddLocation(entity.Location{ID: 8, CompleteName: "WH/Stock", Barcode: "WH-STOCK", Usage: entity.LocationUsageInternal, Active: true})
	s.AddProduct(entity.Product{ID: 30, Name: "Leche", Barcode: "770001", Tracking: entity.TrackingLot, Weight: decimal.NewFromInt(1), UomName: "Unidades"})
	s.AddProduct(entity.Product{ID: 31, Name: "Arroz", Barcode: "770002", Tracking: entity.TrackingNone, Weight: decimal.RequireFromString("0.5")})
	s.AddLot(entity.Lot{ID: 50, Name: "L-01", ProductID: 30, ExpirationDate: &exp})

	for _, p := range []entity.Picking{
		{ID: 100, Name: "WH/IN/00100", State: entity.StateAssigned, TypeCode: entity.PickingTypeIncoming, WarehouseID: 1, Location: entity.LocationRef{ID: 4}, LocationDest: entity.LocationRef{ID: 8}},
		{ID: 101, Name: "BN/IN/00101", State: entity.StateAssigned, TypeCode: entity.PickingTypeIncoming, WarehouseID: 2, Location: entity.LocationRef{ID: 4}, LocationDest: entity.LocationRef{ID: 8}},
	} {
		s.AddPicking(p)
	}
	s.AddMove(entity.Move{ID: 200, PickingID: 100, ProductID: 30, ProductQty: decimal.NewFromInt(48), Location: entity.LocationRef{ID: 4}, LocationDest: entity.LocationRef{ID: 8}, State: entity.StateAssigned})
	s.AddMove(entity.Move{ID: 201, PickingID: 100, ProductID: 31, ProductQty: decimal.NewFromInt(20), Location: entity.LocationRef{ID: 4}, LocationDest: entity.LocationRef{ID: 8}, State: entity.StateAssigned})
	s.AddMove(entity.Move{ID: 210, PickingID: 101, ProductID: 31, ProductQty: decimal.NewFromInt(5), State: entity.StateAssigned})

	bogota, err := time.LoadLocation("America/Bogota")
	require.NoError(t, err)

	uc := reception.NewUseCase(reception.Deps{
		Users:      s.Users(),
		Warehouses: s.Warehouses(),
		Pickings:   s.Pickings(),
		Moves:      s.Moves(),
		Products:   s.Products(),
		Lots:       s.Lots(),
		Purchases:  s.Purchases(),
		Engine:     s.Engine(),
		Postings:   s.PostingJournal(),
		Clock:      picking.NewClock(bogota),
	})
	return uc, s
}

// ── Listado ──────────────────────────────────────────────────────────────────

func TestList_SoloAlmacenesPermitidos(t *testing.T) {
	uc, _ := newReception(t)

	list, err := uc.List(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(100), list[0].ID)
	assert.Equal(t, "Principal", list[0].WarehouseName)
	assert.Len(t, list[0].Lineas, 2)
	assert.Empty(t, list[0].LineasEnviadas)
	assert.True(t, decimal.NewFromInt(58).Equal(list[0].PesoTotal), "48*1 + 20*0.5")
	assert.Equal(t, "2027-01-31 00:00:00", list[0].Lineas[0].FechaVencimiento)
}

func TestList_SinAlmacenes(t *testing.T) {
	uc, _ := newReception(t)

	_, err := uc.List(context.Background(), 8)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNoWarehouses))
}

func TestList_UsuarioInexistente(t *testing.T) {
	uc, _ := newReception(t)

	_, err := uc.List(context.Background(), 999)
	assert.True(t, errors.Is(err, domain.ErrUserNotFound))
}

func TestGet_AlmacenAjeno(t *testing.T) {
	uc, _ := newReception(t)

	_, err := uc.Get(context.Background(), 7, 101)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrForbidden))
}

func TestGet_NoEncontrada(t *testing.T) {
	uc, _ := newReception(t)

	_, err := uc.Get(context.Background(), 7, 555)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Equal(t, "Recepción no encontrada", err.Error())
}

// ── Envío de líneas ──────────────────────────────────────────────────────────

func TestSend_LoteRequerido(t *testing.T) {
	uc, s := newReception(t)

	_, err := uc.Send(context.Background(), 7, dto.SendReceptionRequest{
		IDRecepcion: 100,
		ListItems: []dto.LineItem{
			{IDMove: 200, IDProducto: 30, CantidadSeparada: decimal.NewFromInt(10)},
		},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrLotRequired))
	assert.Empty(t, s.Lines(100), "no debe crearse ninguna línea")
}

func TestSend_CreaLineaYRegistraPosting(t *testing.T) {
	uc, s := newReception(t)

	res, err := uc.Send(context.Background(), 7, dto.SendReceptionRequest{
		IDRecepcion: 100,
		ListItems: []dto.LineItem{
			{IDMove: 200, IDProducto: 30, LoteProducto: 50, CantidadSeparada: decimal.NewFromInt(10), FechaTransaccion: "2024-05-10 08:00:00", IDOperario: 7, Observacion: "ok"},
			{IDProducto: 31, CantidadSeparada: decimal.NewFromInt(4)},
			{IDProducto: 31, CantidadSeparada: decimal.Zero},
		},
	})
	require.NoError(t, err)
	require.Len(t, res, 2, "los ítems sin cantidad se ignoran")
	assert.Equal(t, "L-01", res[0].Lote)
	assert.Equal(t, "2024-05-10 13:00:00", res[0].DateTransaction, "hora local de Bogotá convertida a UTC")

	lines := s.Lines(100)
	require.Len(t, lines, 2)
	assert.True(t, lines[0].IsDoneItem)
	assert.Equal(t, int64(50), lines[0].LotID)
	assert.Equal(t, int64(201), lines[1].MoveID, "el movimiento se resuelve por producto")

	postings := s.Postings()
	require.Len(t, postings, 2)
	assert.Equal(t, entity.PostingKindReception, postings[0].Kind)
	assert.NotEmpty(t, postings[0].ID)

	list, err := uc.List(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Len(t, list[0].LineasEnviadas, 2)
}

func TestSend_RecepcionCompletada(t *testing.T) {
	uc, s := newReception(t)
	s.AddPicking(entity.Picking{ID: 102, Name: "WH/IN/00102", State: entity.StateDone, TypeCode: entity.PickingTypeIncoming, WarehouseID: 1})

	_, err := uc.Send(context.Background(), 7, dto.SendReceptionRequest{IDRecepcion: 102})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

// ── Asignación ───────────────────────────────────────────────────────────────

func TestAssignResponsible_YaAsignada(t *testing.T) {
	uc, s := newReception(t)
	ctx := context.Background()

	require.NoError(t, uc.AssignResponsible(ctx, dto.AssignResponsibleRequest{IDRecepcion: 100, IDResponsable: 7}))
	assert.Equal(t, int64(7), s.Picking(100).ResponsibleID)

	err := uc.AssignResponsible(ctx, dto.AssignResponsibleRequest{IDRecepcion: 100, IDResponsable: 8})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrAlreadyAssigned))
	assert.Equal(t, int64(7), s.Picking(100).ResponsibleID)
}

// ── Finalización ─────────────────────────────────────────────────────────────

func TestComplete_SinAsistente(t *testing.T) {
	uc, s := newReception(t)

	msg, err := uc.Complete(context.Background(), dto.CompleteReceptionRequest{IDRecepcion: 100})
	require.NoError(t, err)
	assert.Equal(t, "Recepción completada correctamente", msg)
	assert.Equal(t, entity.StateDone, s.Picking(100).State)
}

func TestComplete_BackorderPorDefecto(t *testing.T) {
	uc, s := newReception(t)
	s.RequireWizard(100, entity.WizardBackorder)

	msg, err := uc.Complete(context.Background(), dto.CompleteReceptionRequest{IDRecepcion: 100})
	require.NoError(t, err)
	assert.Contains(t, msg, "Recepción parcial completada y backorder creado - ID ")
	assert.Equal(t, entity.StateDone, s.Picking(100).State)

	var backorders int
	for _, p := range s.PickingsAll() {
		if p.BackorderID == 100 {
			backorders++
		}
	}
	assert.Equal(t, 1, backorders)
}

func TestComplete_SinBackorder(t *testing.T) {
	uc, s := newReception(t)
	s.RequireWizard(100, entity.WizardBackorder)
	no := false

	msg, err := uc.Complete(context.Background(), dto.CompleteReceptionRequest{IDRecepcion: 100, CrearBackorder: &no})
	require.NoError(t, err)
	assert.Equal(t, "Recepción parcial completada sin crear backorder", msg)
	for _, p := range s.PickingsAll() {
		assert.NotEqual(t, int64(100), p.BackorderID)
	}
}

func TestComplete_AsistenteNoSoportado(t *testing.T) {
	uc, s := newReception(t)
	s.RequireWizard(100, "stock.return.picking")

	_, err := uc.Complete(context.Background(), dto.CompleteReceptionRequest{IDRecepcion: 100})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnsupportedWizard))
	assert.Equal(t, entity.StateAssigned, s.Picking(100).State)
}
