package dto

// UpdateStartTimeRequest registra un campo start_* en un batch.
type UpdateStartTimeRequest struct {
	PickingID int64  `json:"picking_id" validate:"required"`
	StartTime string `json:"start_time" validate:"required"`
	FieldName string `json:"field_name" validate:"required"`
}

// UpdateEndTimeRequest registra un campo end_* en un batch.
type UpdateEndTimeRequest struct {
	PickingID int64  `json:"picking_id" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
	FieldName string `json:"field_name" validate:"required"`
}

// BatchUserStartRequest inicio de un usuario sobre un batch.
type BatchUserStartRequest struct {
	IDBatch       int64  `json:"id_batch" validate:"required"`
	StartTime     string `json:"start_time" validate:"required"`
	UserID        int64  `json:"user_id" validate:"required"`
	OperationType string `json:"operation_type" validate:"required"`
}

// BatchUserEndRequest fin de un usuario sobre un batch.
type BatchUserEndRequest struct {
	IDBatch       int64  `json:"id_batch" validate:"required"`
	EndTime       string `json:"end_time" validate:"required"`
	UserID        int64  `json:"user_id" validate:"required"`
	OperationType string `json:"operation_type" validate:"required"`
}

// BatchUserTimeResponse registro de tiempos por usuario.
type BatchUserTimeResponse struct {
	ID            int64  `json:"id"`
	BatchID       int64  `json:"batch_id"`
	UserID        int64  `json:"user_id"`
	OperationType string `json:"operation_type"`
	StartTime     string `json:"start_time,omitempty"`
	EndTime       string `json:"end_time,omitempty"`
}
