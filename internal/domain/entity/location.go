package entity

// Uso de ubicación interna.
const LocationUsageInternal = "internal"

// Location ubicación de inventario (stock.location).
type Location struct {
	ID           int64
	Name         string
	CompleteName string
	Barcode      string
	ParentID     int64
	ParentName   string
	Usage        string
	IsDock       bool
	Active       bool
}

// Ref devuelve la referencia compacta usada en las líneas.
func (l *Location) Ref() LocationRef {
	return LocationRef{ID: l.ID, Name: l.CompleteName, Barcode: l.Barcode}
}

// Novelty novedad de picking (picking.novelties).
type Novelty struct {
	ID   int64
	Name string
	Code string
}
