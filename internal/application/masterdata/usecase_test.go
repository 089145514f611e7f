package masterdata_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/appwms-api/internal/application/dto"
	"github.com/jhoicas/appwms-api/internal/application/masterdata"
	"github.com/jhoicas/appwms-api/internal/domain"
	"github.com/jhoicas/appwms-api/internal/domain/entity"
	"github.com/jhoicas/appwms-api/internal/infrastructure/memory"
)

// mapCache caché en memoria que cuenta lecturas y escrituras.
type mapCache struct {
	mu     sync.Mutex
	items  map[string][]byte
	sets   int
	failOn bool
}

func (c *mapCache) Get(_ context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failOn {
		return false, errors.New("caché caída")
	}
	raw, ok := c.items[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dst)
}

func (c *mapCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failOn {
		return errors.New("caché caída")
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.items[key] = raw
	c.sets++
	return nil
}

func newMasterdata(t *testing.T, cache masterdata.Cache) (*masterdata.UseCase, *memory.Store) {
	t.Helper()
	s := memory.NewStore()
	s.AddUser(entity.User{ID: 2, Name: "Admin", Email: "admin@example.com", CompanyID: 1}, "admin", "admin")
	s.AddUser(entity.User{ID: 7, Name: "Operario"}, "op", "op")
	s.AddUser(entity.User{ID: 9, Name: "Sin WMS"}, "x", "x")
	s.SetWMSRole(2, entity.RoleAdmin)
	s.SetWMSRole(7, "")
	s.SetPermissions(2, entity.AppPermissions{ManualQuantity: true, HideExpectedQty: true})
	s.SetGeneralConfig(entity.GeneralConfig{MuelleOption: "multiple"})
	s.AddLocation(entity.Location{ID: 8, Name: "Stock", CompleteName: "WH/Stock", Usage: entity.LocationUsageInternal, Active: true})
	s.AddLocation(entity.Location{ID: 20, Name: "Muelle 1", CompleteName: "WH/Muelle 1", ParentID: 8, Usage: entity.LocationUsageInternal, IsDock: true, Active: true})
	s.AddLocation(entity.Location{ID: 23, Name: "Vieja", CompleteName: "WH/Vieja", Usage: entity.LocationUsageInternal})
	s.AddProduct(entity.Product{ID: 30, Name: "Leche", Tracking: entity.TrackingLot})
	s.AddProduct(entity.Product{ID: 31, Name: "Arroz", Tracking: entity.TrackingNone})

	uc := masterdata.NewUseCase(masterdata.Deps{
		Users:       s.Users(),
		Permissions: s.Permissions(),
		Locations:   s.Locations(),
		Novelties:   s.Novelties(),
		Products:    s.Products(),
		Lots:        s.Lots(),
		Cache:       cache,
	})
	return uc, s
}

// ── Configuración ────────────────────────────────────────────────────────────

func TestConfigurations_Admin(t *testing.T) {
	uc, _ := newMasterdata(t, nil)

	cfg, err := uc.Configurations(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, cfg.Rol)
	require.NotNil(t, cfg.MuelleOption)
	assert.Equal(t, "multiple", *cfg.MuelleOption)
	assert.True(t, cfg.ManualQuantity)
	assert.True(t, cfg.HideExpectedQty)
	assert.False(t, cfg.ScanProduct)
}

func TestConfigurations_SinRegistroWMS(t *testing.T) {
	uc, _ := newMasterdata(t, nil)

	_, err := uc.Configurations(context.Background(), 9)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNoWMSAccess))
	assert.Equal(t, "El usuario no tiene permisos en el módulo de configuraciones en Odoo", err.Error())
}

func TestConfigurations_SinPermisos(t *testing.T) {
	uc, _ := newMasterdata(t, nil)

	_, err := uc.Configurations(context.Background(), 7)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrNoWMSAccess))
	assert.Equal(t, "El usuario no tiene permisos específicos asignados", err.Error())
}

// ── Listas con caché ─────────────────────────────────────────────────────────

func TestDocks_UsaCache(t *testing.T) {
	cache := &mapCache{items: map[string][]byte{}}
	uc, s := newMasterdata(t, cache)
	ctx := context.Background()

	docks, err := uc.Docks(ctx)
	require.NoError(t, err)
	require.Len(t, docks, 1)
	require.NotNil(t, docks[0].LocationID)
	assert.Equal(t, int64(8), *docks[0].LocationID)
	assert.Equal(t, 1, cache.sets)

	// un muelle nuevo no aparece hasta que expire la caché
	s.AddLocation(entity.Location{ID: 24, Name: "Muelle 2", Usage: entity.LocationUsageInternal, IsDock: true, Active: true})
	docks, err = uc.Docks(ctx)
	require.NoError(t, err)
	assert.Len(t, docks, 1)
	assert.Equal(t, 1, cache.sets)
}

func TestLocations_CacheCaida(t *testing.T) {
	uc, _ := newMasterdata(t, &mapCache{items: map[string][]byte{}, failOn: true})

	locs, err := uc.Locations(context.Background())
	require.NoError(t, err, "un fallo de caché no interrumpe la petición")
	assert.Len(t, locs, 2, "las ubicaciones inactivas se excluyen")
}

// ── Lotes ────────────────────────────────────────────────────────────────────

func TestLots_ProductoSinSeguimiento(t *testing.T) {
	uc, _ := newMasterdata(t, nil)

	_, err := uc.Lots(context.Background(), 31)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestCreateLot_CopiaVencimiento(t *testing.T) {
	uc, _ := newMasterdata(t, nil)
	ctx := context.Background()

	lot, err := uc.CreateLot(ctx, 2, dto.CreateLotRequest{IDProducto: 30, NombreLote: "L-77", FechaVencimiento: "2027-02-28"})
	require.NoError(t, err)
	assert.Equal(t, "2027-02-28 00:00:00", lot.ExpirationDate)
	assert.Equal(t, lot.ExpirationDate, lot.AlertDate)
	assert.Equal(t, lot.ExpirationDate, lot.UseDate)
	assert.Equal(t, lot.ExpirationDate, lot.RemovalDate)

	lots, err := uc.Lots(ctx, 30)
	require.NoError(t, err)
	require.Len(t, lots, 1)
	assert.Equal(t, "L-77", lots[0].Name)
	assert.Empty(t, lots[0].RemovalDate)

	updated, err := uc.UpdateLot(ctx, dto.UpdateLotRequest{IDLote: lot.ID, NombreLote: "L-78", FechaVencimiento: "2027-03-01 10:00:00"})
	require.NoError(t, err)
	assert.Equal(t, "L-78", updated.Name)
	assert.Equal(t, "2027-03-01 10:00:00", updated.UseDate)
}

func TestUpdateLot_Inexistente(t *testing.T) {
	uc, _ := newMasterdata(t, nil)

	_, err := uc.UpdateLot(context.Background(), dto.UpdateLotRequest{IDLote: 404, NombreLote: "x"})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
