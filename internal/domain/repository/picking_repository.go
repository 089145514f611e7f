package repository

import (
	"context"

	"github.com/jhoicas/appwms-api/internal/domain/entity"
)

// PickingFilter criterios para listar pickings pendientes de un almacén.
// ResponsibleID incluye los pickings asignados a ese usuario y los que no tienen responsable.
type PickingFilter struct {
	WarehouseID    int64
	TypeCode       string
	State          string
	SequenceCode   string
	ResponsibleID  int64
	ExcludeReturns bool
}

// PickingRepository define el puerto de pickings (stock.picking) en el ERP.
type PickingRepository interface {
	List(ctx context.Context, f PickingFilter) ([]*entity.Picking, error)
	GetByID(ctx context.Context, id int64) (*entity.Picking, error)
	SetResponsible(ctx context.Context, pickingID, userID int64) error
	// Create crea el picking con sus movimientos y devuelve el id.
	Create(ctx context.Context, in entity.NewTransfer) (int64, error)
}

// MoveRepository define el puerto de movimientos y líneas de movimiento.
type MoveRepository interface {
	ListByPicking(ctx context.Context, pickingID int64) ([]*entity.Move, error)
	ListLinesByPicking(ctx context.Context, pickingID int64) ([]*entity.MoveLine, error)
	GetLine(ctx context.Context, id int64) (*entity.MoveLine, error)
	// CreateLine crea la línea y asigna line.ID.
	CreateLine(ctx context.Context, line *entity.MoveLine) error
	// UpdateLine sobrescribe cantidad, ubicación destino, lote y campos de auditoría.
	UpdateLine(ctx context.Context, line *entity.MoveLine) error
}

// StockEngine acciones del motor de inventario del ERP. El servicio nunca las reimplementa.
type StockEngine interface {
	// Validate ejecuta la validación del picking; devuelve la acción de asistente si el ERP la exige.
	Validate(ctx context.Context, pickingID int64) (*entity.WizardAction, error)
	// ResolveWizard crea el asistente con su contexto y ejecuta method sobre él. Devuelve el id del asistente.
	ResolveWizard(ctx context.Context, action *entity.WizardAction, pickingID int64, method string) (int64, error)
	// CheckAvailability vuelve a calcular reservas (action_assign).
	CheckAvailability(ctx context.Context, pickingID int64) error
	// Confirm confirma un picking en borrador (action_confirm).
	Confirm(ctx context.Context, pickingID int64) error
}

// PurchaseRepository resuelve órdenes de compra por nombre (origen del picking).
type PurchaseRepository interface {
	FindIDByName(ctx context.Context, name string) (int64, error)
}
