package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/appwms-api/internal/application/auth"
	"github.com/jhoicas/appwms-api/internal/application/masterdata"
	"github.com/jhoicas/appwms-api/internal/application/reception"
	"github.com/jhoicas/appwms-api/internal/application/timing"
	"github.com/jhoicas/appwms-api/internal/application/transfer"
	"github.com/jhoicas/appwms-api/internal/application/version"
	"github.com/jhoicas/appwms-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	MasterDataUC *masterdata.UseCase
	TimingUC     *timing.UseCase
	ReceptionUC  *reception.UseCase
	TransferUC   *transfer.UseCase
	VersionUC    *version.UseCase
	JWTSecret    string

	// RateLimiter es opcional; nil desactiva el límite.
	RateLimiter fiber.Handler
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	if deps.RateLimiter != nil {
		authGroup.Use(deps.RateLimiter)
	}
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	if deps.RateLimiter != nil {
		protected.Use(deps.RateLimiter)
	}

	md := NewMasterDataHandler(deps.MasterDataUC)
	protected.Get("/configurations", md.Configurations)
	protected.Get("/muelles", md.Docks)
	protected.Get("/picking_novelties", md.Novelties)
	protected.Get("/ubicaciones", md.Locations)
	protected.Get("/lotes/:product_id", md.Lots)
	protected.Post("/create_lote", md.CreateLot)
	protected.Post("/update_lote", md.UpdateLot)

	// Tiempos de batch
	tm := NewTimingHandler(deps.TimingUC)
	protected.Post("/update_start_time", tm.UpdateStartTime)
	protected.Post("/update_end_time", tm.UpdateEndTime)
	protected.Post("/start_time_batch_user", tm.StartBatchUser)
	protected.Post("/end_time_batch_user", tm.EndBatchUser)

	// Recepciones
	rc := NewReceptionHandler(deps.ReceptionUC)
	protected.Get("/recepciones", rc.List)
	protected.Get("/recepciones/:id", rc.Get)
	protected.Post("/asignar_responsable", rc.AssignResponsible)
	protected.Post("/send_recepcion", rc.Send)
	protected.Post("/complete_recepcion", rc.Complete)

	// Transferencias; quickinfo antes de /:id
	tr := NewTransferHandler(deps.TransferUC)
	protected.Get("/transferencias", tr.List)
	protected.Get("/transferencias/quickinfo", tr.QuickInfo)
	protected.Get("/transferencias/:id", tr.Get)
	protected.Post("/transferencias/asignar", tr.AssignResponsible)
	protected.Post("/send_transfer", tr.Send)
	protected.Post("/complete_transfer", tr.Complete)
	protected.Post("/comprobar_disponibilidad", tr.CheckAvailability)
	protected.Post("/crear_transferencia", tr.Create)

	// Versiones de la app; altas y bajas sólo para ADMIN
	vh := NewVersionHandler(deps.VersionUC)
	protected.Get("/versions", vh.List)
	protected.Get("/last-version", vh.Last)
	protected.Post("/create-version", RequireRole(entity.RoleAdmin), vh.Create)
	protected.Post("/delete-version", RequireRole(entity.RoleAdmin), vh.Delete)
}
