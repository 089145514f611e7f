package main

import (
	"context"
	"fmt"

	"github.com/jhoicas/appwms-api/internal/application/timing"
	"github.com/jhoicas/appwms-api/internal/domain/repository"
	"github.com/jhoicas/appwms-api/internal/infrastructure/memory"
	"github.com/jhoicas/appwms-api/internal/infrastructure/odoo"
	"github.com/jhoicas/appwms-api/internal/infrastructure/postgres"
	"github.com/jhoicas/appwms-api/pkg/config"
	"github.com/jhoicas/appwms-api/pkg/logger"
)

// backend repositorios del ERP y tablas propias que consumen los casos de uso.
type backend struct {
	auth        repository.Authenticator
	users       repository.UserRepository
	permissions repository.PermissionRepository
	warehouses  repository.WarehouseRepository
	products    repository.ProductRepository
	lots        repository.LotRepository
	quants      repository.QuantRepository
	locations   repository.LocationRepository
	novelties   repository.NoveltyRepository
	purchases   repository.PurchaseRepository
	pickings    repository.PickingRepository
	moves       repository.MoveRepository
	engine      repository.StockEngine
	batches     repository.BatchRepository
	times       repository.BatchUserTimeRepository
	tx          timing.TxRunner
	versions    repository.AppVersionRepository
	postings    repository.PostingRepository

	close func()
}

// memoryBackend datos de ejemplo en memoria, para desarrollo local sin ERP ni PostgreSQL.
func memoryBackend() *backend {
	s := memory.NewSeeded()
	return &backend{
		auth:        s.Auth(),
		users:       s.Users(),
		permissions: s.Permissions(),
		warehouses:  s.Warehouses(),
		products:    s.Products(),
		lots:        s.Lots(),
		quants:      s.Quants(),
		locations:   s.Locations(),
		novelties:   s.Novelties(),
		purchases:   s.Purchases(),
		pickings:    s.Pickings(),
		moves:       s.Moves(),
		engine:      s.Engine(),
		batches:     s.Batches(),
		times:       s.BatchUserTimes(),
		tx:          s.Tx(),
		versions:    s.Versions(),
		postings:    s.PostingJournal(),
		close:       func() {},
	}
}

// odooBackend ERP por JSON-RPC y tablas propias en PostgreSQL (migradas al arrancar).
func odooBackend(ctx context.Context, cfg *config.Config, log *logger.Logger) (*backend, error) {
	dsn := cfg.DB.ConnectionString()
	if err := postgres.Migrate(dsn); err != nil {
		return nil, fmt.Errorf("migraciones: %w", err)
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}

	client := odoo.NewClient(cfg.ERP)
	if _, err := client.Authenticate(ctx, cfg.ERP.User, cfg.ERP.Password); err != nil {
		log.Warn().Err(err).Str("url", cfg.ERP.URL).Msg("no se pudo validar la cuenta técnica del ERP")
	}

	return &backend{
		auth:        client,
		users:       odoo.NewUserRepository(client),
		permissions: odoo.NewPermissionRepository(client),
		warehouses:  odoo.NewWarehouseRepository(client),
		products:    odoo.NewProductRepository(client),
		lots:        odoo.NewLotRepository(client),
		quants:      odoo.NewQuantRepository(client),
		locations:   odoo.NewLocationRepository(client),
		novelties:   odoo.NewNoveltyRepository(client),
		purchases:   odoo.NewPurchaseRepository(client),
		pickings:    odoo.NewPickingRepository(client),
		moves:       odoo.NewMoveRepository(client),
		engine:      odoo.NewStockEngine(client),
		batches:     odoo.NewBatchRepository(client),
		times:       postgres.NewBatchUserTimeRepository(pool),
		tx:          postgres.NewTxRunner(pool),
		versions:    postgres.NewAppVersionRepository(pool),
		postings:    postgres.NewPostingRepository(pool),
		close:       pool.Close,
	}, nil
}
