package picking

import (
	"time"

	"github.com/jhoicas/appwms-api/internal/application/dto"
	"github.com/jhoicas/appwms-api/internal/domain"
)

// Clock convierte las fechas que envía la app (hora local del cliente) a UTC.
type Clock struct {
	loc *time.Location
	now func() time.Time
}

// NewClock construye el reloj con la zona horaria de los clientes. loc nil equivale a UTC.
func NewClock(loc *time.Location) *Clock {
	if loc == nil {
		loc = time.UTC
	}
	return &Clock{loc: loc, now: time.Now}
}

// WithNow reemplaza la fuente de la hora actual (tests).
func (c *Clock) WithNow(now func() time.Time) *Clock {
	c.now = now
	return c
}

// Now hora actual en UTC.
func (c *Clock) Now() time.Time {
	return c.now().UTC()
}

// TransactionTime interpreta s ("YYYY-MM-DD HH:MM:SS") en la zona del cliente y lo pasa a UTC.
// Vacío devuelve la hora actual.
func (c *Clock) TransactionTime(s string) (time.Time, error) {
	if s == "" {
		return c.Now(), nil
	}
	t, err := time.ParseInLocation(dto.DateTimeLayout, s, c.loc)
	if err != nil {
		return time.Time{}, domain.Detail(domain.ErrInvalidInput, "Formato de 'fecha_transaccion' inválido. Debe ser 'YYYY-MM-DD HH:MM:SS'")
	}
	return t.UTC(), nil
}
