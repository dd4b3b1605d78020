package handler

import (
	"strings"
	"unicode/utf8"

	dErrors "rutcheck/pkg/domain-errors"
	"rutcheck/pkg/platform/validation"
)

// ValidateRUTRequest is the body of POST /v1/rut/validate. An empty or
// malformed RUT is not a request error; it yields an invalid verdict.
type ValidateRUTRequest struct {
	RUT string `json:"rut" validate:"max=64"`
}

// Validate implements httputil.Validatable.
func (r *ValidateRUTRequest) Validate() error {
	return validation.Struct(r)
}

// FormatRequest is the body of POST /v1/fields/{field}/format. Text is taken
// verbatim; trimming it would move the cursor.
type FormatRequest struct {
	Text   string `json:"text" validate:"max=64"`
	Cursor int    `json:"cursor" validate:"gte=0"`
}

// Validate implements httputil.Validatable.
func (r *FormatRequest) Validate() error {
	if err := validation.Struct(r); err != nil {
		return err
	}
	if r.Cursor > utf8.RuneCountInString(r.Text) {
		return dErrors.New(dErrors.CodeValidation, "cursor must not be past the end of text")
	}
	return nil
}

// PasteRequest is the body of POST /v1/fields/{field}/paste.
type PasteRequest struct {
	Text string `json:"text" validate:"max=256"`
}

// Validate implements httputil.Validatable.
func (r *PasteRequest) Validate() error {
	return validation.Struct(r)
}

// KeystrokeRequest is the body of POST /v1/fields/{field}/keystroke. Key is
// the browser's KeyboardEvent.key value.
type KeystrokeRequest struct {
	Key string `json:"key" validate:"required,max=16"`
}

// Validate implements httputil.Validatable.
func (r *KeystrokeRequest) Validate() error {
	return validation.Struct(r)
}

// NormalizePhoneRequest is the body of POST /v1/phone/normalize.
type NormalizePhoneRequest struct {
	Telefono string `json:"telefono" validate:"required,max=64"`
}

// Normalize implements httputil.Normalizable.
func (r *NormalizePhoneRequest) Normalize() {
	r.Telefono = strings.TrimSpace(r.Telefono)
}

// Validate implements httputil.Validatable.
func (r *NormalizePhoneRequest) Validate() error {
	return validation.Struct(r)
}

// CheckFormRequest is the body of POST /v1/forms/check. Field rules live in
// service.Submission; here only size is bounded.
type CheckFormRequest struct {
	RUT      string `json:"rut" validate:"max=64"`
	Telefono string `json:"telefono" validate:"max=64"`
}

// Normalize implements httputil.Normalizable.
func (r *CheckFormRequest) Normalize() {
	r.RUT = strings.TrimSpace(r.RUT)
	r.Telefono = strings.TrimSpace(r.Telefono)
}

// Validate implements httputil.Validatable.
func (r *CheckFormRequest) Validate() error {
	return validation.Struct(r)
}
