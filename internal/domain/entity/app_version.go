package entity

import "time"

// AppVersion versión publicada de la app móvil. Notes guarda una lista JSON serializada.
type AppVersion struct {
	ID          int64
	Version     string
	ReleaseDate time.Time
	Notes       string
	URLDownload string
	CreatedAt   time.Time
}
