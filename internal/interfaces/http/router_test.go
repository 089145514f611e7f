package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/appwms-api/internal/application/auth"
	"github.com/jhoicas/appwms-api/internal/application/masterdata"
	"github.com/jhoicas/appwms-api/internal/application/reception"
	"github.com/jhoicas/appwms-api/internal/application/timing"
	"github.com/jhoicas/appwms-api/internal/application/transfer"
	"github.com/jhoicas/appwms-api/internal/application/version"
	"github.com/jhoicas/appwms-api/internal/domain/entity"
	apphttp "github.com/jhoicas/appwms-api/internal/interfaces/http"
	"github.com/jhoicas/appwms-api/internal/infrastructure/memory"
	pkgjwt "github.com/jhoicas/appwms-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Escenario: datos de ejemplo del backend en memoria más una transferencia (120)
// en el almacén 2, al que el operario 7 no tiene acceso.
// ──────────────────────────────────────────────────────────────────────────────

func newAPI(t *testing.T, limiter fiber.Handler) *fiber.App {
	t.Helper()
	s := memory.NewSeeded()
	s.AddPickingType(entity.PickingType{ID: 6, Name: "Internas Norte", Code: entity.PickingTypeInternal, SequenceCode: entity.SequenceCodeInternal, WarehouseID: 2})
	s.AddPicking(entity.Picking{ID: 120, Name: "BN/INT/00120", State: entity.StateAssigned, TypeCode: entity.PickingTypeInternal, SequenceCode: entity.SequenceCodeInternal, PickingTypeID: 6, WarehouseID: 2})
	s.AddMove(entity.Move{ID: 220, PickingID: 120, ProductID: 31, ProductQty: decimal.NewFromInt(1), State: entity.StateAssigned})
	s.AddLine(entity.MoveLine{ID: 320, MoveID: 220, PickingID: 120, ProductID: 31, ReservedQty: decimal.NewFromInt(1), State: entity.StateAssigned})

	deps := apphttp.RouterDeps{
		AuthUC: auth.NewAuthUseCase(s.Auth(), s.Users(), s.Permissions(), auth.JWTConfig{
			Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer,
		}),
		MasterDataUC: masterdata.NewUseCase(masterdata.Deps{
			Users:       s.Users(),
			Permissions: s.Permissions(),
			Locations:   s.Locations(),
			Novelties:   s.Novelties(),
			Products:    s.Products(),
			Lots:        s.Lots(),
		}),
		TimingUC: timing.NewUseCase(s.Batches(), s.Users(), s.BatchUserTimes(), s.Tx()),
		ReceptionUC: reception.NewUseCase(reception.Deps{
			Users:      s.Users(),
			Warehouses: s.Warehouses(),
			Pickings:   s.Pickings(),
			Moves:      s.Moves(),
			Products:   s.Products(),
			Lots:       s.Lots(),
			Purchases:  s.Purchases(),
			Engine:     s.Engine(),
			Postings:   s.PostingJournal(),
		}),
		TransferUC: transfer.NewUseCase(transfer.Deps{
			Users:      s.Users(),
			Warehouses: s.Warehouses(),
			Pickings:   s.Pickings(),
			Moves:      s.Moves(),
			Products:   s.Products(),
			Lots:       s.Lots(),
			Locations:  s.Locations(),
			Quants:     s.Quants(),
			Engine:     s.Engine(),
			Postings:   s.PostingJournal(),
		}),
		VersionUC:   version.NewUseCase(s.Versions()),
		JWTSecret:   testJWTSecret,
		RateLimiter: limiter,
	}
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler})
	apphttp.Router(app, deps)
	return app
}

func bearer(t *testing.T, userID int64, login, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, userID, login, role, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func call(t *testing.T, app *fiber.App, method, path, authHeader string, body any) *http.Response {
	t.Helper()
	var req *http.Request
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		req = httptest.NewRequest(method, path, bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ── Auth ─────────────────────────────────────────────────────────────────────

func TestLogin_CredencialesValidas(t *testing.T) {
	app := newAPI(t, nil)
	resp := call(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{"login": "admin", "password": "admin"})
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		Code int `json:"code"`
		Result struct {
			Token string `json:"token"`
			User  struct {
				ID  int64  `json:"id"`
				Rol string `json:"rol"`
			} `json:"user"`
		} `json:"result"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, http.StatusOK, body.Code)
	assert.NotEmpty(t, body.Result.Token)
	assert.Equal(t, int64(2), body.Result.User.ID)
	assert.Equal(t, entity.RoleAdmin, body.Result.User.Rol)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	app := newAPI(t, nil)
	resp := call(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{"login": "admin", "password": "otra"})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, http.StatusUnauthorized, decodeMessage(t, resp).Code)
}

func TestLogin_CuerpoMalformado(t *testing.T) {
	app := newAPI(t, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString("{login"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRutaProtegida_SinToken(t *testing.T) {
	app := newAPI(t, nil)
	resp := call(t, app, http.MethodGet, "/api/muelles", "", nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ── Transferencias ───────────────────────────────────────────────────────────

func transferIDs(t *testing.T, resp *http.Response) []int64 {
	t.Helper()
	var body struct {
		Result []struct {
			ID int64 `json:"id"`
		} `json:"result"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	ids := make([]int64, 0, len(body.Result))
	for _, r := range body.Result {
		ids = append(ids, r.ID)
	}
	return ids
}

func TestTransferencias_SoloAlmacenesPermitidos(t *testing.T) {
	app := newAPI(t, nil)

	resp := call(t, app, http.MethodGet, "/api/transferencias", bearer(t, 7, "operario", entity.RoleUser), nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []int64{110}, transferIDs(t, resp))

	resp2 := call(t, app, http.MethodGet, "/api/transferencias", bearer(t, 2, "admin", entity.RoleAdmin), nil)
	defer resp2.Body.Close()
	require.Equal(t, http.StatusOK, resp2.StatusCode)
	assert.ElementsMatch(t, []int64{110, 120}, transferIDs(t, resp2))
}

func TestTransferencia_AlmacenAjeno_Retorna403(t *testing.T) {
	app := newAPI(t, nil)
	resp := call(t, app, http.MethodGet, "/api/transferencias/120", bearer(t, 7, "operario", entity.RoleUser), nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestTransferencia_IDInvalido_Retorna400(t *testing.T) {
	app := newAPI(t, nil)
	resp := call(t, app, http.MethodGet, "/api/transferencias/abc", bearer(t, 7, "operario", entity.RoleUser), nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestQuickInfo_ProductoYCodigoDesconocido(t *testing.T) {
	app := newAPI(t, nil)
	tok := bearer(t, 7, "operario", entity.RoleUser)

	resp := call(t, app, http.MethodGet, "/api/transferencias/quickinfo?barcode=7701234000035", tok, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		Result struct {
			Type string `json:"type"`
			ID   int64  `json:"id"`
		} `json:"result"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "product", body.Result.Type)
	assert.Equal(t, int64(31), body.Result.ID)

	resp2 := call(t, app, http.MethodGet, "/api/transferencias/quickinfo?barcode=NO-EXISTE", tok, nil)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp2.StatusCode)

	resp3 := call(t, app, http.MethodGet, "/api/transferencias/quickinfo", tok, nil)
	defer resp3.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp3.StatusCode)
}

// ── Tiempos de batch ─────────────────────────────────────────────────────────

func TestEndTimeBatchUser_SinInicio_Retorna400(t *testing.T) {
	app := newAPI(t, nil)
	resp := call(t, app, http.MethodPost, "/api/end_time_batch_user", bearer(t, 7, "operario", entity.RoleUser), map[string]any{
		"id_batch":       3,
		"end_time":       "2026-10-01 10:00:00",
		"user_id":        7,
		"operation_type": "picking",
	})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestStartTimeBatchUser_Duplicado_Retorna400(t *testing.T) {
	app := newAPI(t, nil)
	tok := bearer(t, 7, "operario", entity.RoleUser)
	body := map[string]any{
		"id_batch":       3,
		"start_time":     "2026-10-01 08:00:00",
		"user_id":        7,
		"operation_type": "picking",
	}

	resp := call(t, app, http.MethodPost, "/api/start_time_batch_user", tok, body)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Registro creado con éxito", decodeMessage(t, resp).Msg)

	resp2 := call(t, app, http.MethodPost, "/api/start_time_batch_user", tok, body)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp2.StatusCode)
}

// ── Versiones ────────────────────────────────────────────────────────────────

func TestCreateVersion_RolUser_Retorna403(t *testing.T) {
	app := newAPI(t, nil)
	resp := call(t, app, http.MethodPost, "/api/create-version", bearer(t, 7, "operario", entity.RoleUser), map[string]any{"version": "1.2.0"})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestVersiones_CrearConsultarEliminar(t *testing.T) {
	app := newAPI(t, nil)
	admin := bearer(t, 2, "admin", entity.RoleAdmin)

	resp := call(t, app, http.MethodPost, "/api/create-version", admin, map[string]any{
		"version": "1.2.0",
		"notes":   []string{"Corrección de lotes"},
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created struct {
		Data struct {
			ID int64 `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	require.NotZero(t, created.Data.ID)

	last := call(t, app, http.MethodGet, "/api/last-version", admin, nil)
	defer last.Body.Close()
	require.Equal(t, http.StatusOK, last.StatusCode)
	var body struct {
		Result struct {
			Version string `json:"version"`
			Notes   []any  `json:"notes"`
		} `json:"result"`
	}
	require.NoError(t, json.NewDecoder(last.Body).Decode(&body))
	assert.Equal(t, "1.2.0", body.Result.Version)
	assert.Equal(t, []any{"Corrección de lotes"}, body.Result.Notes)

	del := call(t, app, http.MethodPost, "/api/delete-version", admin, map[string]any{"version_id": created.Data.ID})
	defer del.Body.Close()
	assert.Equal(t, http.StatusOK, del.StatusCode)
}

func TestCreateVersion_NotasNulasYAusentes(t *testing.T) {
	app := newAPI(t, nil)
	admin := bearer(t, 2, "admin", entity.RoleAdmin)

	notesOf := func(body map[string]any) []any {
		resp := call(t, app, http.MethodPost, "/api/create-version", admin, body)
		defer resp.Body.Close()
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		var created struct {
			Data struct {
				Notes []any `json:"notes"`
			} `json:"data"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
		return created.Data.Notes
	}

	assert.Equal(t, []any{"Sin notas"}, notesOf(map[string]any{"version": "2.0.0", "notes": nil}))
	assert.Equal(t, []any{}, notesOf(map[string]any{"version": "2.0.1"}))
}

func TestDeleteVersion_Inexistente_Retorna404(t *testing.T) {
	app := newAPI(t, nil)
	resp := call(t, app, http.MethodPost, "/api/delete-version", bearer(t, 2, "admin", entity.RoleAdmin), map[string]any{"version_id": 999})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, http.StatusNotFound, decodeMessage(t, resp).Code)
}

// ── Límite de peticiones ─────────────────────────────────────────────────────

func TestRateLimit_Excedido_Retorna429(t *testing.T) {
	limiter, err := apphttp.RateLimit("2-M")
	require.NoError(t, err)
	app := newAPI(t, limiter)
	tok := bearer(t, 7, "operario", entity.RoleUser)

	for i := 0; i < 2; i++ {
		resp := call(t, app, http.MethodGet, "/api/picking_novelties", tok, nil)
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.NotEmpty(t, resp.Header.Get("X-RateLimit-Limit"))
	}

	resp := call(t, app, http.MethodGet, "/api/picking_novelties", tok, nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}

func TestRateLimit_FormatoInvalido(t *testing.T) {
	_, err := apphttp.RateLimit("muchas")
	assert.Error(t, err)
}

func TestRutaInexistente_Retorna404(t *testing.T) {
	app := newAPI(t, nil)
	resp := call(t, app, http.MethodGet, "/no-existe", "", nil)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, http.StatusNotFound, decodeMessage(t, resp).Code)
}
