package dto

import "github.com/goccy/go-json"

// CreateVersionRequest alta de versión. Notes debe ser una lista JSON; vacío
// significa que el campo no vino en el cuerpo.
type CreateVersionRequest struct {
	Version     string          `json:"version" validate:"required"`
	ReleaseDate string          `json:"release_date"`
	Notes       json.RawMessage `json:"notes"`
	URLDownload string          `json:"url_download"`
}

// DeleteVersionRequest baja de versión.
type DeleteVersionRequest struct {
	VersionID int64 `json:"version_id" validate:"required"`
}

// VersionResponse versión con las notas tal como se almacenan (texto JSON).
type VersionResponse struct {
	ID          int64  `json:"id"`
	Version     string `json:"version"`
	ReleaseDate string `json:"release_date"`
	Notes       string `json:"notes"`
	URLDownload string `json:"url_download"`
}

// VersionDetailResponse versión con las notas decodificadas a lista.
type VersionDetailResponse struct {
	ID          int64  `json:"id"`
	Version     string `json:"version"`
	ReleaseDate string `json:"release_date"`
	Notes       []any  `json:"notes"`
	URLDownload string `json:"url_download"`
}
