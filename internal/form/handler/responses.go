package handler

import (
	"rutcheck/internal/form/service"
	"rutcheck/internal/input"
	"rutcheck/internal/rut"
)

// ValidateRUTResponse is the HTTP response for POST /v1/rut/validate.
type ValidateRUTResponse struct {
	Valid     bool   `json:"valid"`
	Reason    string `json:"reason"`
	Message   string `json:"message"`
	Formatted string `json:"formatted,omitempty"`
}

// AnnotationResponse tells the browser which marker and message to show.
// State "none" means remove both.
type AnnotationResponse struct {
	State   string `json:"state"`
	Message string `json:"message,omitempty"`
}

// FieldEditResponse is the HTTP response for format and paste.
type FieldEditResponse struct {
	Text       string             `json:"text"`
	Cursor     int                `json:"cursor"`
	Changed    bool               `json:"changed"`
	Annotation AnnotationResponse `json:"annotation"`
}

// KeystrokeResponse is the HTTP response for POST /v1/fields/{field}/keystroke.
type KeystrokeResponse struct {
	Accepted bool `json:"accepted"`
}

// PhoneResponse is the HTTP response for POST /v1/phone/normalize.
type PhoneResponse struct {
	Display string `json:"display"`
	E164    string `json:"e164"`
}

// FieldVerdictResponse is one field of a checked submission.
type FieldVerdictResponse struct {
	State   string `json:"state"`
	Message string `json:"message,omitempty"`
	Value   string `json:"value,omitempty"`
}

// CheckFormResponse is the HTTP response for POST /v1/forms/check.
type CheckFormResponse struct {
	Valid  bool                            `json:"valid"`
	Fields map[string]FieldVerdictResponse `json:"fields"`
}

// FromResult converts a rut verdict to an HTTP response.
func FromResult(res rut.Result) *ValidateRUTResponse {
	resp := &ValidateRUTResponse{
		Valid:   res.Valid,
		Reason:  string(res.Reason),
		Message: res.Message,
	}
	if res.Valid {
		resp.Formatted = rut.MustParse(res.Body + string(res.CheckDigit)).String()
	}
	return resp
}

// FromAnnotation converts an input annotation.
func FromAnnotation(a input.Annotation) AnnotationResponse {
	return AnnotationResponse{State: string(a.State), Message: a.Message}
}

// FromFieldEdit converts a formatter outcome.
func FromFieldEdit(edit input.FieldEdit) *FieldEditResponse {
	return &FieldEditResponse{
		Text:       edit.Text,
		Cursor:     edit.Cursor,
		Changed:    edit.Changed,
		Annotation: FromAnnotation(edit.Annotation),
	}
}

// FromSubmission converts a checked submission.
func FromSubmission(res service.SubmissionResult) *CheckFormResponse {
	verdict := func(v service.FieldVerdict) FieldVerdictResponse {
		return FieldVerdictResponse{
			State:   string(v.Annotation.State),
			Message: v.Annotation.Message,
			Value:   v.Value,
		}
	}
	return &CheckFormResponse{
		Valid: res.Valid,
		Fields: map[string]FieldVerdictResponse{
			input.FieldRUT.String():   verdict(res.RUT),
			input.FieldPhone.String(): verdict(res.Telefono),
		},
	}
}
