package entity

// AppPermissions banderas de UI asignadas a un usuario (appwms.user_permission_app).
type AppPermissions struct {
	LocationPickingManual          bool
	ManualProductSelection         bool
	ManualQuantity                 bool
	ManualSpringSelection          bool
	ShowDetallesPicking            bool
	ShowNextLocationsInDetails     bool
	LocationPackManual             bool
	ShowDetallesPack               bool
	ShowNextLocationsInDetailsPack bool
	ManualProductSelectionPack     bool
	ManualQuantityPack             bool
	ManualSpringSelectionPack      bool
	ScanProduct                    bool
	AllowMoveExcess                bool
	HideExpectedQty                bool
	ManualProductReading           bool
	ManualSourceLocation           bool
	ShowOwnerField                 bool
}

// GeneralConfig configuración general del módulo WMS (appwms.config.general).
type GeneralConfig struct {
	MuelleOption string
}
