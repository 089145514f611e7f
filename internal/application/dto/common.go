package dto

import "time"

// DateTimeLayout formato de fecha y hora que intercambia la app ("YYYY-MM-DD HH:MM:SS").
const DateTimeLayout = "2006-01-02 15:04:05"

// DateLayout formato de fecha sin hora.
const DateLayout = "2006-01-02"

// DataResponse envoltorio de respuestas con datos. Code coincide con el status HTTP.
type DataResponse struct {
	Code   int `json:"code"`
	Result any `json:"result"`
}

// MessageResponse envoltorio de respuestas con mensaje (éxito o error).
type MessageResponse struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data any    `json:"data,omitempty"`
}

// FormatTime devuelve la fecha en DateTimeLayout, o "" si es nil.
func FormatTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format(DateTimeLayout)
}
