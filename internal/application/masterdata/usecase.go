package masterdata

import (
	"context"
	"time"

	"github.com/jhoicas/appwms-api/internal/application/dto"
	"github.com/jhoicas/appwms-api/internal/application/picking"
	"github.com/jhoicas/appwms-api/internal/application/validation"
	"github.com/jhoicas/appwms-api/internal/domain"
	"github.com/jhoicas/appwms-api/internal/domain/entity"
	"github.com/jhoicas/appwms-api/internal/domain/repository"
	"github.com/rs/zerolog/log"
)

// Deps repositorios de datos maestros.
type Deps struct {
	Users       repository.UserRepository
	Permissions repository.PermissionRepository
	Locations   repository.LocationRepository
	Novelties   repository.NoveltyRepository
	Products    repository.ProductRepository
	Lots        repository.LotRepository
	Cache       Cache
	CacheTTL    time.Duration
}

// UseCase configuración del usuario y datos de referencia de la app.
type UseCase struct {
	users       repository.UserRepository
	permissions repository.PermissionRepository
	locations   repository.LocationRepository
	novelties   repository.NoveltyRepository
	products    repository.ProductRepository
	lots        repository.LotRepository
	cache       Cache
	ttl         time.Duration
}

// NewUseCase construye el caso de uso. Sin Cache las listas se leen siempre del ERP.
func NewUseCase(d Deps) *UseCase {
	ttl := d.CacheTTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &UseCase{
		users:       d.Users,
		permissions: d.Permissions,
		locations:   d.Locations,
		novelties:   d.Novelties,
		products:    d.Products,
		lots:        d.Lots,
		cache:       d.Cache,
		ttl:         ttl,
	}
}

// Configurations devuelve el usuario, su rol WMS, la opción de muelle y las banderas de UI.
func (uc *UseCase) Configurations(ctx context.Context, userID int64) (*dto.ConfigurationResponse, error) {
	user, err := picking.LoadUser(ctx, uc.users, userID)
	if err != nil {
		return nil, err
	}
	cfg, err := uc.permissions.GetGeneralConfig(ctx)
	if err != nil {
		return nil, err
	}
	role, found, err := uc.permissions.GetWMSRole(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, domain.Detail(domain.ErrNoWMSAccess, "El usuario no tiene permisos en el módulo de configuraciones en Odoo")
	}
	perms, err := uc.permissions.GetAppPermissions(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if perms == nil {
		return nil, domain.Detail(domain.ErrNoWMSAccess, "El usuario no tiene permisos específicos asignados")
	}
	if role == "" {
		role = entity.RoleUser
	}

	out := &dto.ConfigurationResponse{
		Name:                           user.Name,
		ID:                             user.ID,
		LastName:                       user.Name,
		Email:                          user.Email,
		Rol:                            role,
		LocationPickingManual:          perms.LocationPickingManual,
		ManualProductSelection:         perms.ManualProductSelection,
		ManualQuantity:                 perms.ManualQuantity,
		ManualSpringSelection:          perms.ManualSpringSelection,
		ShowDetallesPicking:            perms.ShowDetallesPicking,
		ShowNextLocationsInDetails:     perms.ShowNextLocationsInDetails,
		LocationPackManual:             perms.LocationPackManual,
		ShowDetallesPack:               perms.ShowDetallesPack,
		ShowNextLocationsInDetailsPack: perms.ShowNextLocationsInDetailsPack,
		ManualProductSelectionPack:     perms.ManualProductSelectionPack,
		ManualQuantityPack:             perms.ManualQuantityPack,
		ManualSpringSelectionPack:      perms.ManualSpringSelectionPack,
		ScanProduct:                    perms.ScanProduct,
		AllowMoveExcess:                perms.AllowMoveExcess,
		HideExpectedQty:                perms.HideExpectedQty,
		ManualProductReading:           perms.ManualProductReading,
		ManualSourceLocation:           perms.ManualSourceLocation,
		ShowOwnerField:                 perms.ShowOwnerField,
	}
	if cfg != nil && cfg.MuelleOption != "" {
		opt := cfg.MuelleOption
		out.MuelleOption = &opt
	}
	return out, nil
}

// Docks lista las ubicaciones internas marcadas como muelle.
func (uc *UseCase) Docks(ctx context.Context) ([]dto.DockResponse, error) {
	return cached(ctx, uc, cacheKeyDocks, func() ([]dto.DockResponse, error) {
		docks, err := uc.locations.ListDocks(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]dto.DockResponse, 0, len(docks))
		for _, d := range docks {
			r := dto.DockResponse{ID: d.ID, Name: d.Name, CompleteName: d.CompleteName, Barcode: d.Barcode}
			if d.ParentID != 0 {
				parent := d.ParentID
				r.LocationID = &parent
			}
			out = append(out, r)
		}
		return out, nil
	})
}

// Novelties lista las novedades de picking.
func (uc *UseCase) Novelties(ctx context.Context) ([]dto.NoveltyResponse, error) {
	return cached(ctx, uc, cacheKeyNovelties, func() ([]dto.NoveltyResponse, error) {
		items, err := uc.novelties.List(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]dto.NoveltyResponse, 0, len(items))
		for _, n := range items {
			out = append(out, dto.NoveltyResponse{ID: n.ID, Name: n.Name, Code: n.Code})
		}
		return out, nil
	})
}

// Locations lista las ubicaciones internas activas.
func (uc *UseCase) Locations(ctx context.Context) ([]dto.LocationResponse, error) {
	return cached(ctx, uc, cacheKeyLocations, func() ([]dto.LocationResponse, error) {
		locs, err := uc.locations.ListInternal(ctx)
		if err != nil {
			return nil, err
		}
		out := make([]dto.LocationResponse, 0, len(locs))
		for _, l := range locs {
			if !l.Active {
				continue
			}
			out = append(out, dto.LocationResponse{
				ID:           l.ID,
				Name:         l.CompleteName,
				Barcode:      l.Barcode,
				LocationID:   l.ParentID,
				LocationName: l.ParentName,
			})
		}
		return out, nil
	})
}

// cached lee la lista de la caché o la carga y la guarda. Los errores de caché no interrumpen la petición.
func cached[T any](ctx context.Context, uc *UseCase, key string, load func() ([]T, error)) ([]T, error) {
	if uc.cache != nil {
		var hit []T
		found, err := uc.cache.Get(ctx, key, &hit)
		if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("lectura de caché")
		} else if found {
			return hit, nil
		}
	}
	out, err := load()
	if err != nil {
		return nil, err
	}
	if uc.cache != nil {
		if err := uc.cache.Set(ctx, key, out, uc.ttl); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("escritura de caché")
		}
	}
	return out, nil
}

// Lots lista los lotes de un producto con seguimiento por lotes.
func (uc *UseCase) Lots(ctx context.Context, productID int64) ([]dto.LotResponse, error) {
	if productID <= 0 {
		return nil, domain.Detail(domain.ErrInvalidInput, "ID de producto no válido")
	}
	product, err := uc.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.Detail(domain.ErrNotFound, "Producto no encontrado")
	}
	if !product.IsLotTracked() {
		return nil, domain.Detail(domain.ErrInvalidInput, "El producto no tiene seguimiento por lotes")
	}
	lots, err := uc.lots.ListByProduct(ctx, product.ID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LotResponse, 0, len(lots))
	for _, l := range lots {
		r := toLotResponse(l)
		r.RemovalDate = ""
		out = append(out, r)
	}
	return out, nil
}

// CreateLot crea un lote; la fecha de vencimiento se copia a alerta, uso y remoción.
func (uc *UseCase) CreateLot(ctx context.Context, userID int64, in dto.CreateLotRequest) (*dto.LotResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	user, err := picking.LoadUser(ctx, uc.users, userID)
	if err != nil {
		return nil, err
	}
	product, err := uc.products.GetByID(ctx, in.IDProducto)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.Detail(domain.ErrNotFound, "Producto no encontrado")
	}
	exp, err := parseExpiration(in.FechaVencimiento)
	if err != nil {
		return nil, err
	}
	lot := &entity.Lot{
		Name:        in.NombreLote,
		ProductID:   product.ID,
		ProductName: product.Name,
		CompanyID:   product.CompanyID,
	}
	if lot.CompanyID == 0 {
		lot.CompanyID = user.CompanyID
	}
	lot.SetExpiration(exp)
	if err := uc.lots.Create(ctx, lot); err != nil {
		return nil, err
	}
	r := toLotResponse(lot)
	return &r, nil
}

// UpdateLot cambia nombre y vencimiento de un lote.
func (uc *UseCase) UpdateLot(ctx context.Context, in dto.UpdateLotRequest) (*dto.LotResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	lot, err := uc.lots.GetByID(ctx, in.IDLote)
	if err != nil {
		return nil, err
	}
	if lot == nil {
		return nil, domain.Detail(domain.ErrNotFound, "Lote no encontrado")
	}
	exp, err := parseExpiration(in.FechaVencimiento)
	if err != nil {
		return nil, err
	}
	lot.Name = in.NombreLote
	lot.SetExpiration(exp)
	if err := uc.lots.Update(ctx, lot); err != nil {
		return nil, err
	}
	r := toLotResponse(lot)
	return &r, nil
}

// parseExpiration acepta fecha con hora o sólo fecha; vacío deja el lote sin vencimiento.
func parseExpiration(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	for _, layout := range []string{dto.DateTimeLayout, dto.DateLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, domain.Detail(domain.ErrInvalidInput, "Formato de 'fecha_vencimiento' inválido. Debe ser 'YYYY-MM-DD HH:MM:SS'")
}

func toLotResponse(l *entity.Lot) dto.LotResponse {
	return dto.LotResponse{
		ID:             l.ID,
		Name:           l.Name,
		Quantity:       l.Quantity,
		ExpirationDate: dto.FormatTime(l.ExpirationDate),
		AlertDate:      dto.FormatTime(l.AlertDate),
		UseDate:        dto.FormatTime(l.UseDate),
		RemovalDate:    dto.FormatTime(l.RemovalDate),
		ProductID:      l.ProductID,
		ProductName:    l.ProductName,
	}
}
