package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/goccy/go-json"
	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/appwms-api/internal/application/auth"
	"github.com/jhoicas/appwms-api/internal/application/masterdata"
	"github.com/jhoicas/appwms-api/internal/application/picking"
	"github.com/jhoicas/appwms-api/internal/application/reception"
	"github.com/jhoicas/appwms-api/internal/application/timing"
	"github.com/jhoicas/appwms-api/internal/application/transfer"
	"github.com/jhoicas/appwms-api/internal/application/version"
	"github.com/jhoicas/appwms-api/internal/infrastructure/cache"
	httpRouter "github.com/jhoicas/appwms-api/internal/interfaces/http"
	"github.com/jhoicas/appwms-api/pkg/config"
	"github.com/jhoicas/appwms-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("backend", cfg.App.Backend).
		Msg("iniciando aplicación")

	// cantidades como números JSON
	decimal.MarshalJSONWithoutQuotes = true

	loc, err := cfg.App.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("zona horaria")
	}
	clock := picking.NewClock(loc)

	ctx := context.Background()
	var be *backend
	switch cfg.App.Backend {
	case config.BackendMemory:
		log.Warn().Msg("backend en memoria: datos de ejemplo, no usar en producción")
		be = memoryBackend()
	default:
		be, err = odooBackend(ctx, cfg, log)
		if err != nil {
			log.Fatal().Err(err).Msg("inicializar backend ERP")
		}
	}
	defer be.close()

	var mdCache masterdata.Cache
	if cfg.Redis.Enabled() {
		rc, err := cache.NewRedisCache(ctx, cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("caché deshabilitada")
		} else {
			defer rc.Close()
			mdCache = rc
		}
	}

	authUC := auth.NewAuthUseCase(be.auth, be.users, be.permissions, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	masterDataUC := masterdata.NewUseCase(masterdata.Deps{
		Users:       be.users,
		Permissions: be.permissions,
		Locations:   be.locations,
		Novelties:   be.novelties,
		Products:    be.products,
		Lots:        be.lots,
		Cache:       mdCache,
		CacheTTL:    cfg.Redis.TTL,
	})
	timingUC := timing.NewUseCase(be.batches, be.users, be.times, be.tx)
	receptionUC := reception.NewUseCase(reception.Deps{
		Users:      be.users,
		Warehouses: be.warehouses,
		Pickings:   be.pickings,
		Moves:      be.moves,
		Products:   be.products,
		Lots:       be.lots,
		Purchases:  be.purchases,
		Engine:     be.engine,
		Postings:   be.postings,
		Clock:      clock,
	})
	transferUC := transfer.NewUseCase(transfer.Deps{
		Users:      be.users,
		Warehouses: be.warehouses,
		Pickings:   be.pickings,
		Moves:      be.moves,
		Products:   be.products,
		Lots:       be.lots,
		Locations:  be.locations,
		Quants:     be.quants,
		Engine:     be.engine,
		Postings:   be.postings,
		Clock:      clock,
	})
	versionUC := version.NewUseCase(be.versions)

	var limiter fiber.Handler
	if cfg.HTTP.RateLimit != "" {
		limiter, err = httpRouter.RateLimit(cfg.HTTP.RateLimit)
		if err != nil {
			log.Fatal().Err(err).Str("rate", cfg.HTTP.RateLimit).Msg("HTTP_RATE_LIMIT inválido")
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 60,
		IdleTimeout:  time.Second * 60,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(httpRouter.RequestLogger(log.Zerolog()))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "AppWMS API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "backend": cfg.App.Backend})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		MasterDataUC: masterDataUC,
		TimingUC:     timingUC,
		ReceptionUC:  receptionUC,
		TransferUC:   transferUC,
		VersionUC:    versionUC,
		JWTSecret:    cfg.JWT.Secret,
		RateLimiter:  limiter,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
