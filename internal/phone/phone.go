// Package phone formats and validates Chilean mobile numbers.
package phone

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/nyaruka/phonenumbers"
)

const (
	mobileDigits = 9
	mobilePrefix = '9'
	countryCode  = "56"
	region       = "CL"

	// FormatHint is shown when the number has the wrong shape.
	FormatHint = "Format: +56 9 1234 5678"
	// ValidMessage is shown once the number has the right shape.
	ValidMessage = "Valid phone number"
)

// ErrInvalidPhone is returned by Normalize for anything that is not a
// Chilean mobile number.
var ErrInvalidPhone = errors.New("phone: invalid format, use +56 9 1234 5678 or 912345678")

// displayPattern matches text that is already in +DD D DDDD DDDD form.
var displayPattern = regexp.MustCompile(`^\+\d{2} \d \d{4} \d{4}$`)

// Status is the feedback state of a phone field.
type Status string

const (
	// StatusPending means "still typing": the caller clears any feedback.
	StatusPending Status = "pending"
	StatusValid   Status = "valid"
	StatusInvalid Status = "invalid"
)

// Edit is the outcome of re-rendering a phone field.
type Edit struct {
	Text    string
	Cursor  int
	Changed bool
	Status  Status
	Message string
}

// Format renders nine mobile digits as +56 9 XXXX XXXX and reports whether
// the field has the right shape. Cursor positions count runes.
func Format(text string, cursor int) Edit {
	digits := Digits(text)
	switch {
	case digits == "":
		return Edit{Text: "", Cursor: 0, Changed: text != "", Status: StatusPending}

	case len(digits) == mobileDigits && digits[0] == mobilePrefix:
		edit := Edit{Text: text, Cursor: cursor, Status: StatusValid, Message: ValidMessage}
		if formatted := display(digits); formatted != text {
			edit.Text = formatted
			edit.Cursor = shiftCursor(cursor, utf8.RuneCountInString(formatted)-utf8.RuneCountInString(text))
			edit.Changed = true
		}
		return edit

	case displayPattern.MatchString(text):
		return Edit{Text: text, Cursor: cursor, Status: StatusValid, Message: ValidMessage}

	case len(digits) < mobileDigits:
		return Edit{Text: text, Cursor: cursor, Status: StatusPending}

	default:
		return Edit{Text: text, Cursor: cursor, Status: StatusInvalid, Message: FormatHint}
	}
}

// Digits strips everything except ASCII decimal digits.
func Digits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// Number is a Chilean mobile number.
//
// Invariants:
//   - exactly nine digits
//   - first digit is 9
type Number struct {
	digits string
}

// Normalize accepts the shapes users actually submit: 912345678,
// 56912345678 and +56 9 1234 5678 (spaces, dashes and '+' are ignored).
func Normalize(raw string) (Number, error) {
	cleaned := strings.NewReplacer(" ", "", "-", "", "+", "").Replace(strings.TrimSpace(raw))
	if Digits(cleaned) != cleaned {
		return Number{}, ErrInvalidPhone
	}

	switch {
	case len(cleaned) == mobileDigits && cleaned[0] == mobilePrefix:
		return Number{digits: cleaned}, nil
	case len(cleaned) == len(countryCode)+mobileDigits && strings.HasPrefix(cleaned, countryCode+string(mobilePrefix)):
		return Number{digits: cleaned[len(countryCode):]}, nil
	default:
		return Number{}, ErrInvalidPhone
	}
}

// Display returns the fixed +56 9 XXXX XXXX pattern.
func (n Number) Display() string {
	if n.IsZero() {
		return ""
	}
	return display(n.digits)
}

// E164 returns the number as +56XXXXXXXXX.
func (n Number) E164() (string, error) {
	if n.IsZero() {
		return "", ErrInvalidPhone
	}
	num, err := phonenumbers.Parse("+"+countryCode+n.digits, region)
	if err != nil {
		return "", err
	}
	return phonenumbers.Format(num, phonenumbers.E164), nil
}

// Digits returns the nine national digits.
func (n Number) Digits() string {
	return n.digits
}

// IsZero returns true if this is the zero value (uninitialized).
func (n Number) IsZero() bool {
	return n.digits == ""
}

func display(digits string) string {
	return "+" + countryCode + " " + digits[:1] + " " + digits[1:5] + " " + digits[5:]
}

func shiftCursor(cursor, delta int) int {
	if c := cursor + delta; c > 0 {
		return c
	}
	return 0
}
