// Package validation wraps go-playground/validator with the custom tags used
// by request types and form submissions.
//
// Custom tags:
//   - rut:         a RUT whose check digit verifies
//   - rut_display: text in 12.345.678-9 form (check digit not verified)
//   - cl_mobile:   a Chilean mobile number in any accepted input shape
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"rutcheck/internal/phone"
	"rutcheck/internal/rut"
	dErrors "rutcheck/pkg/domain-errors"
)

// MaxFieldLength bounds any single form field accepted over the wire.
const MaxFieldLength = 64

var (
	once     sync.Once
	instance *validator.Validate
)

// Validator returns the shared, configured validator instance.
func Validator() *validator.Validate {
	once.Do(func() {
		instance = New()
	})
	return instance
}

// New builds a validator with the custom tags registered and JSON field
// names used in error reports.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	mustRegister(v, "rut", func(fl validator.FieldLevel) bool {
		return rut.Validate(fl.Field().String()).Valid
	})
	mustRegister(v, "rut_display", func(fl validator.FieldLevel) bool {
		return rut.MatchesDisplayPattern(fl.Field().String())
	})
	mustRegister(v, "cl_mobile", func(fl validator.FieldLevel) bool {
		_, err := phone.Normalize(fl.Field().String())
		return err == nil
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

// FieldError is one failed rule, keyed by JSON field name.
type FieldError struct {
	Field string
	Tag   string
	Param string
}

// Fields runs the validator and returns per-field failures. A non-nil error
// means s was not a validatable struct.
func Fields(s any) ([]FieldError, error) {
	err := Validator().Struct(s)
	if err == nil {
		return nil, nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, err
	}
	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Tag: fe.Tag(), Param: fe.Param()})
	}
	return out, nil
}

// Struct validates s and converts the first failure into a validation
// domain error suitable for a 400 response.
func Struct(s any) error {
	fields, err := Fields(s)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "request validation misconfigured")
	}
	if len(fields) == 0 {
		return nil
	}
	return dErrors.New(dErrors.CodeValidation, Describe(fields[0]))
}

// Describe renders a FieldError as a client-facing sentence.
func Describe(fe FieldError) string {
	switch fe.Tag {
	case "required":
		return fe.Field + " is required"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field, fe.Param)
	case "min", "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field, fe.Param)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field, fe.Param)
	case "rut":
		return fe.Field + " must be a valid RUT"
	case "rut_display":
		return fe.Field + " must have format 12.345.678-9"
	case "cl_mobile":
		return fe.Field + " must have format " + strings.TrimPrefix(phone.FormatHint, "Format: ")
	default:
		return fe.Field + " is invalid"
	}
}
