package entity

import "time"

// Batch lote de pickings (stock.picking.batch) sobre el que se registran tiempos.
type Batch struct {
	ID   int64
	Name string
}

// BatchUserTime tiempos de inicio/fin de un usuario sobre un batch para un tipo de operación.
// La terna (BatchID, UserID, OperationType) es única.
type BatchUserTime struct {
	ID            int64
	BatchID       int64
	UserID        int64
	OperationType string
	StartTime     *time.Time
	EndTime       *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
