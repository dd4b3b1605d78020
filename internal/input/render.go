package input

import (
	"rutcheck/internal/phone"
	"rutcheck/internal/rut"
)

// State is the marker a field carries.
type State string

const (
	// StateNone means no marker and no message.
	StateNone    State = "none"
	StateValid   State = "valid"
	StateInvalid State = "invalid"
)

// Annotation is what the UI attaches next to a field. Applying one always
// replaces whatever was shown before; StateNone removes it.
type Annotation struct {
	State   State
	Message string
}

// Cleared is the annotation that removes any feedback.
var Cleared = Annotation{State: StateNone}

// RenderRUT maps a rut verdict to an annotation. A nil result clears.
func RenderRUT(res *rut.Result) Annotation {
	if res == nil {
		return Cleared
	}
	if res.Valid {
		return Annotation{State: StateValid, Message: res.Message}
	}
	return Annotation{State: StateInvalid, Message: res.Message}
}

// RenderPhone maps a phone edit to an annotation.
func RenderPhone(edit phone.Edit) Annotation {
	switch edit.Status {
	case phone.StatusValid:
		return Annotation{State: StateValid, Message: edit.Message}
	case phone.StatusInvalid:
		return Annotation{State: StateInvalid, Message: edit.Message}
	default:
		return Cleared
	}
}
