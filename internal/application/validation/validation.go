package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jhoicas/appwms-api/internal/domain"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Los mensajes usan el nombre JSON del campo, que es el que conoce la app.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// Struct valida los tags `validate` del request y devuelve el primer campo inválido
// como domain.ErrInvalidInput con el mensaje para el cliente.
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return domain.Detail(domain.ErrInvalidInput, "Solicitud inválida: %s", err.Error())
	}
	fe := verrs[0]
	switch fe.Tag() {
	case "required":
		return domain.Detail(domain.ErrInvalidInput, "El campo '%s' es requerido", fe.Field())
	case "min":
		return domain.Detail(domain.ErrInvalidInput, "El campo '%s' debe tener al menos %s elemento(s)", fe.Field(), fe.Param())
	default:
		return domain.Detail(domain.ErrInvalidInput, "El campo '%s' no es válido", fe.Field())
	}
}
