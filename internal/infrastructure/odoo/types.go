package odoo

import (
	"bytes"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

// Domain dominio de búsqueda del ERP: condiciones [campo, operador, valor] y operadores "|", "&".
type Domain []any

// Cond construye una condición.
func Cond(field, op string, value any) []any { return []any{field, op, value} }

func (d Domain) args() []any {
	if d == nil {
		return []any{}
	}
	return d
}

// El ERP serializa los campos vacíos como false.
var jsonFalse = []byte("false")

func isEmpty(b []byte) bool {
	b = bytes.TrimSpace(b)
	return len(b) == 0 || bytes.Equal(b, jsonFalse) || bytes.Equal(b, []byte("null"))
}

// Many2One referencia [id, display_name] o false.
type Many2One struct {
	ID   int64
	Name string
}

func (m *Many2One) UnmarshalJSON(b []byte) error {
	if isEmpty(b) {
		*m = Many2One{}
		return nil
	}
	var pair []json.RawMessage
	if err := json.Unmarshal(b, &pair); err != nil {
		return fmt.Errorf("many2one: %w", err)
	}
	if len(pair) > 0 {
		if err := json.Unmarshal(pair[0], &m.ID); err != nil {
			return fmt.Errorf("many2one id: %w", err)
		}
	}
	if len(pair) > 1 {
		if err := json.Unmarshal(pair[1], &m.Name); err != nil {
			return fmt.Errorf("many2one name: %w", err)
		}
	}
	return nil
}

// Str texto o false.
type Str string

func (s *Str) UnmarshalJSON(b []byte) error {
	if isEmpty(b) {
		*s = ""
		return nil
	}
	var v string
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*s = Str(v)
	return nil
}

// Int entero o false.
type Int int64

func (i *Int) UnmarshalJSON(b []byte) error {
	if isEmpty(b) {
		*i = 0
		return nil
	}
	var v int64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*i = Int(v)
	return nil
}

// Num cantidad decimal; conserva el literal numérico del JSON.
type Num struct{ decimal.Decimal }

func (n *Num) UnmarshalJSON(b []byte) error {
	if isEmpty(b) {
		n.Decimal = decimal.Zero
		return nil
	}
	d, err := decimal.NewFromString(string(bytes.TrimSpace(b)))
	if err != nil {
		return fmt.Errorf("num: %w", err)
	}
	n.Decimal = d
	return nil
}

// Formatos de fecha del ERP (siempre UTC).
const (
	datetimeLayout = "2006-01-02 15:04:05"
	dateLayout     = "2006-01-02"
)

// Time fecha/hora o false.
type Time struct{ t *time.Time }

func (t *Time) UnmarshalJSON(b []byte) error {
	if isEmpty(b) {
		t.t = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	for _, layout := range []string{datetimeLayout, dateLayout} {
		if v, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			t.t = &v
			return nil
		}
	}
	return fmt.Errorf("fecha inválida %q", s)
}

// Ptr devuelve la fecha o nil.
func (t Time) Ptr() *time.Time { return t.t }

// Value devuelve la fecha o el valor cero.
func (t Time) Value() time.Time {
	if t.t == nil {
		return time.Time{}
	}
	return *t.t
}

// formatTime serializa para escribir en el ERP; nil se envía como false.
func formatTime(t *time.Time) any {
	if t == nil {
		return false
	}
	return t.UTC().Format(datetimeLayout)
}

// optID devuelve false para ids vacíos.
func optID(id int64) any {
	if id == 0 {
		return false
	}
	return id
}
