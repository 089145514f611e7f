package odoo

import (
	"context"

	"github.com/jhoicas/appwms-api/internal/domain/entity"
	"github.com/jhoicas/appwms-api/internal/domain/repository"
)

var (
	_ repository.UserRepository       = (*UserRepository)(nil)
	_ repository.PermissionRepository = (*PermissionRepository)(nil)
	_ repository.Authenticator        = (*Client)(nil)
)

const groupStockManager = "stock.group_stock_manager"

// UserRepository implementa repository.UserRepository sobre res.users.
type UserRepository struct {
	c *Client
}

// NewUserRepository construye el repositorio.
func NewUserRepository(c *Client) *UserRepository {
	return &UserRepository{c: c}
}

type userRow struct {
	ID                  int64    `json:"id"`
	Name                Str      `json:"name"`
	Login               Str      `json:"login"`
	Email               Str      `json:"email"`
	CompanyID           Many2One `json:"company_id"`
	AllowedWarehouseIDs []int64  `json:"allowed_warehouse_ids"`
	GroupsID            []int64  `json:"groups_id"`
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	fields, err := r.c.withOptional(ctx, "res.users",
		[]string{"id", "name", "login", "email", "company_id", "groups_id"},
		"allowed_warehouse_ids")
	if err != nil {
		return nil, err
	}
	var rows []userRow
	if err := r.c.SearchRead(ctx, "res.users", Domain{Cond("id", "=", id)}, Query{Fields: fields, Limit: 1}, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	row := rows[0]
	managerGroup, err := r.c.XMLID(ctx, groupStockManager)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		ID:                  row.ID,
		Name:                string(row.Name),
		Login:               string(row.Login),
		Email:               string(row.Email),
		CompanyID:           row.CompanyID.ID,
		AllowedWarehouseIDs: row.AllowedWarehouseIDs,
	}
	for _, g := range row.GroupsID {
		if managerGroup != 0 && g == managerGroup {
			u.IsStockManager = true
			break
		}
	}
	return u, nil
}

// PermissionRepository implementa repository.PermissionRepository sobre los modelos appwms.*.
type PermissionRepository struct {
	c *Client
}

// NewPermissionRepository construye el repositorio.
func NewPermissionRepository(c *Client) *PermissionRepository {
	return &PermissionRepository{c: c}
}

func (r *PermissionRepository) GetWMSRole(ctx context.Context, userID int64) (string, bool, error) {
	var rows []struct {
		UserRol Str `json:"user_rol"`
	}
	dom := Domain{Cond("user_id", "=", userID)}
	if err := r.c.SearchRead(ctx, "appwms.users_wms", dom, Query{Fields: []string{"user_rol"}, Limit: 1}, &rows); err != nil {
		return "", false, err
	}
	if len(rows) == 0 {
		return "", false, nil
	}
	return string(rows[0].UserRol), true, nil
}

type permissionRow struct {
	LocationPickingManual          bool `json:"location_picking_manual"`
	ManualProductSelection         bool `json:"manual_product_selection"`
	ManualQuantity                 bool `json:"manual_quantity"`
	ManualSpringSelection          bool `json:"manual_spring_selection"`
	ShowDetallesPicking            bool `json:"show_detalles_picking"`
	ShowNextLocationsInDetails     bool `json:"show_next_locations_in_details"`
	LocationPackManual             bool `json:"location_pack_manual"`
	ShowDetallesPack               bool `json:"show_detalles_pack"`
	ShowNextLocationsInDetailsPack bool `json:"show_next_locations_in_details_pack"`
	ManualProductSelectionPack     bool `json:"manual_product_selection_pack"`
	ManualQuantityPack             bool `json:"manual_quantity_pack"`
	ManualSpringSelectionPack      bool `json:"manual_spring_selection_pack"`
	ScanProduct                    bool `json:"scan_product"`
	AllowMoveExcess                bool `json:"allow_move_excess"`
	HideExpectedQty                bool `json:"hide_expected_qty"`
	ManualProductReading           bool `json:"manual_product_reading"`
	ManualSourceLocation           bool `json:"manual_source_location"`
	ShowOwnerField                 bool `json:"show_owner_field"`
}

var permissionFields = []string{
	"location_picking_manual", "manual_product_selection", "manual_quantity",
	"manual_spring_selection", "show_detalles_picking", "show_next_locations_in_details",
	"location_pack_manual", "show_detalles_pack", "show_next_locations_in_details_pack",
	"manual_product_selection_pack", "manual_quantity_pack", "manual_spring_selection_pack",
	"scan_product", "allow_move_excess", "hide_expected_qty", "manual_product_reading",
	"manual_source_location", "show_owner_field",
}

func (r *PermissionRepository) GetAppPermissions(ctx context.Context, userID int64) (*entity.AppPermissions, error) {
	var rows []permissionRow
	dom := Domain{Cond("user_id", "=", userID)}
	if err := r.c.SearchRead(ctx, "appwms.user_permission_app", dom, Query{Fields: permissionFields, Limit: 1}, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	p := entity.AppPermissions(rows[0])
	return &p, nil
}

func (r *PermissionRepository) GetGeneralConfig(ctx context.Context) (*entity.GeneralConfig, error) {
	var rows []struct {
		MuelleOption Str `json:"muelle_option"`
	}
	if err := r.c.SearchRead(ctx, "appwms.config.general", nil, Query{Fields: []string{"muelle_option"}, Limit: 1}, &rows); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &entity.GeneralConfig{MuelleOption: string(rows[0].MuelleOption)}, nil
}
