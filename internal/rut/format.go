package rut

import (
	"strings"
	"unicode/utf8"
)

// minValidateLength is the shortest formatted text worth validating while
// the user is still typing (1.234.567 needs a dash and a digit after it).
const minValidateLength = 10

// Edit is the outcome of re-rendering a field as the user types.
//
// Result is nil while the text is not yet complete enough to judge; the
// caller must then clear any feedback it is showing.
type Edit struct {
	Text    string
	Cursor  int
	Changed bool
	Result  *Result
}

// Format re-renders partially typed input into grouped, dash-separated
// display form and validates it once it looks complete. Cursor positions
// count runes.
func Format(text string, cursor int) Edit {
	clean := Normalize(text)
	if clean == "" {
		return Edit{Text: "", Cursor: 0, Changed: text != ""}
	}

	formatted := render(clean)
	edit := Edit{Text: text, Cursor: cursor}
	if formatted != text {
		edit.Text = formatted
		edit.Cursor = shiftCursor(cursor, utf8.RuneCountInString(formatted)-utf8.RuneCountInString(text))
		edit.Changed = true
	}

	if strings.Contains(edit.Text, "-") && len(edit.Text) >= minValidateLength {
		res := Validate(edit.Text)
		edit.Result = &res
	}
	return edit
}

// render turns normalized input into Body-DV with grouped Body.
func render(clean string) string {
	body, dv := split(clean)
	if body == "" {
		return string(dv)
	}
	return group(body) + "-" + string(dv)
}

// group inserts '.' every three characters counting from the right.
func group(body string) string {
	var b strings.Builder
	b.Grow(len(body) + len(body)/3)
	for i := 0; i < len(body); i++ {
		if i > 0 && (len(body)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteByte(body[i])
	}
	return b.String()
}

func shiftCursor(cursor, delta int) int {
	if c := cursor + delta; c > 0 {
		return c
	}
	return 0
}
