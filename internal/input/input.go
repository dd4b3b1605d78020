// Package input is the boundary between a browser form and the pure rut and
// phone packages: which keys a field accepts, how pasted text is cleaned, and
// what annotation a field should display.
package input

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/width"

	"rutcheck/internal/phone"
	"rutcheck/internal/rut"
)

// Field is the logical role of a form input.
type Field string

const (
	FieldRUT   Field = "rut"
	FieldPhone Field = "telefono"
)

// ParseField validates a field role coming from the outside.
func ParseField(s string) (Field, error) {
	switch f := Field(strings.ToLower(strings.TrimSpace(s))); f {
	case FieldRUT, FieldPhone:
		return f, nil
	default:
		return "", fmt.Errorf("unknown field role %q", s)
	}
}

func (f Field) String() string {
	return string(f)
}

// controlKeys are the navigation and edit keys every field accepts.
var controlKeys = map[string]struct{}{
	"Backspace":  {},
	"Delete":     {},
	"Tab":        {},
	"ArrowLeft":  {},
	"ArrowRight": {},
}

// AllowKey reports whether a key press should reach the field. Keys are
// named as browsers report them: a single character or a control key name.
func AllowKey(field Field, key string) bool {
	if _, ok := controlKeys[key]; ok {
		return true
	}
	if utf8.RuneCountInString(key) != 1 {
		return false
	}

	r, _ := utf8.DecodeRuneInString(key)
	switch {
	case r >= '0' && r <= '9':
		return true
	case r == 'k' || r == 'K':
		return field == FieldRUT
	default:
		return false
	}
}

// SanitizePaste cleans pasted text before it is committed to the field.
// Full-width characters are folded to ASCII first so digits typed on an
// East Asian layout are kept.
func SanitizePaste(field Field, text string) string {
	folded := width.Fold.String(text)
	switch field {
	case FieldRUT:
		return rut.Normalize(folded)
	case FieldPhone:
		return phone.Digits(folded)
	default:
		return ""
	}
}

// FieldEdit is a field-agnostic formatting outcome: what the field should
// contain, where the cursor goes, and which annotation to show.
type FieldEdit struct {
	Text       string
	Cursor     int
	Changed    bool
	Annotation Annotation
}

// Format runs the field's formatter.
func Format(field Field, text string, cursor int) FieldEdit {
	switch field {
	case FieldRUT:
		edit := rut.Format(text, cursor)
		return FieldEdit{Text: edit.Text, Cursor: edit.Cursor, Changed: edit.Changed, Annotation: RenderRUT(edit.Result)}
	case FieldPhone:
		edit := phone.Format(text, cursor)
		return FieldEdit{Text: edit.Text, Cursor: edit.Cursor, Changed: edit.Changed, Annotation: RenderPhone(edit)}
	default:
		return FieldEdit{Text: text, Cursor: cursor}
	}
}

// Paste sanitizes pasted text and immediately formats it. The cursor lands
// at the end of the pasted content.
func Paste(field Field, text string) FieldEdit {
	clean := SanitizePaste(field, text)
	edit := Format(field, clean, utf8.RuneCountInString(clean))
	edit.Changed = edit.Changed || clean != text
	return edit
}
