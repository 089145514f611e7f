package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
// Los casos de uso los devuelven con Detail para conservar el mensaje que ve el cliente;
// la capa HTTP los traduce a códigos con errors.Is.
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrUserNotFound      = errors.New("usuario no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("ya existe un registro con los mismos datos")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrBusinessRule      = errors.New("regla de negocio del ERP")
	ErrNoWMSAccess       = errors.New("el usuario no tiene permisos en el módulo WMS")
	ErrNoWarehouses      = errors.New("el usuario no tiene acceso a ningún almacén")
	ErrLotRequired       = errors.New("el producto requiere un lote")
	ErrStartMissing      = errors.New("no existe un registro de inicio previo")
	ErrEndBeforeStart    = errors.New("la hora de fin debe ser mayor que la de inicio")
	ErrAlreadyAssigned   = errors.New("ya tiene un responsable asignado")
	ErrNoPendingWork     = errors.New("no hay movimientos pendientes")
	ErrUnsupportedWizard = errors.New("se requiere un asistente no soportado")
)

// DetailError asocia un error de dominio con el mensaje que se devuelve al cliente.
type DetailError struct {
	Kind error
	Msg  string
}

func (e *DetailError) Error() string { return e.Msg }

func (e *DetailError) Unwrap() error { return e.Kind }

// Detail construye un DetailError con mensaje formateado.
func Detail(kind error, format string, args ...any) error {
	return &DetailError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}
