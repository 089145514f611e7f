package entity

// Roles WMS conocidos (appwms.users_wms.user_rol). Un usuario sin rol asignado se trata como RoleUser.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// User representa un usuario del ERP (res.users) con su alcance de almacenes.
type User struct {
	ID                  int64
	Name                string
	Login               string
	Email               string
	CompanyID           int64
	AllowedWarehouseIDs []int64
	IsStockManager      bool // pertenece a stock.group_stock_manager
}

// CanAccessWarehouse indica si el almacén está dentro de los permitidos al usuario.
func (u *User) CanAccessWarehouse(warehouseID int64) bool {
	for _, id := range u.AllowedWarehouseIDs {
		if id == warehouseID {
			return true
		}
	}
	return false
}
