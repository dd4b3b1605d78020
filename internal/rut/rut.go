// Package rut validates and formats Chilean national identity numbers (RUT).
//
// A RUT is a numeric body followed by a modulus-11 check digit (DV). Every
// function in this package is pure: no I/O, no logging, no shared state.
// Callers that want a diagnostic trail log the fields of Result.
package rut

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

const (
	minRawLength        = 3
	minNormalizedLength = 8

	// MinBody and MaxBody bound the numeric value of a RUT body.
	MinBody = 1_000_000
	MaxBody = 99_999_999
)

// Reason identifies which validation gate decided a Result.
type Reason string

const (
	ReasonValid              Reason = "valid"
	ReasonIncomplete         Reason = "incomplete"
	ReasonTooShort           Reason = "too_short"
	ReasonMalformedBody      Reason = "malformed_body"
	ReasonRepetitiveBody     Reason = "repetitive_body"
	ReasonOutOfRange         Reason = "out_of_range"
	ReasonCheckDigitMismatch Reason = "check_digit_mismatch"
)

var reasonMessages = map[Reason]string{
	ReasonValid:              "Valid RUT",
	ReasonIncomplete:         "RUT incomplete",
	ReasonTooShort:           "RUT too short",
	ReasonMalformedBody:      "Invalid RUT",
	ReasonRepetitiveBody:     "Invalid RUT (repetitive)",
	ReasonOutOfRange:         "RUT out of valid range",
	ReasonCheckDigitMismatch: "Invalid RUT (check digit mismatch)",
}

// Message returns the human-readable text shown next to the field.
func (r Reason) Message() string {
	if msg, ok := reasonMessages[r]; ok {
		return msg
	}
	return "Invalid RUT"
}

// Sentinel errors returned by Parse, one per rejecting Reason.
var (
	ErrIncomplete         = errors.New("rut: incomplete")
	ErrTooShort           = errors.New("rut: too short")
	ErrMalformedBody      = errors.New("rut: body must contain only digits")
	ErrRepetitiveBody     = errors.New("rut: body is a single repeated digit")
	ErrOutOfRange         = errors.New("rut: body out of valid range")
	ErrCheckDigitMismatch = errors.New("rut: check digit mismatch")
)

var reasonErrors = map[Reason]error{
	ReasonIncomplete:         ErrIncomplete,
	ReasonTooShort:           ErrTooShort,
	ReasonMalformedBody:      ErrMalformedBody,
	ReasonRepetitiveBody:     ErrRepetitiveBody,
	ReasonOutOfRange:         ErrOutOfRange,
	ReasonCheckDigitMismatch: ErrCheckDigitMismatch,
}

// Err returns the sentinel error for a rejecting reason, nil for ReasonValid.
func (r Reason) Err() error {
	return reasonErrors[r]
}

// Result is the verdict of Validate. It is freshly built on every call.
//
// Body, CheckDigit and Expected are filled in as far as validation got, so a
// caller can log how a verdict was reached. Expected is zero unless the check
// digit was actually computed.
type Result struct {
	Valid      bool
	Reason     Reason
	Message    string
	Body       string
	CheckDigit byte
	Expected   byte
}

func reject(reason Reason) Result {
	return Result{Reason: reason, Message: reason.Message()}
}

// Validate judges raw user input. It never panics: every malformed input is
// reported through Result.Reason.
func Validate(raw string) Result {
	if len([]rune(raw)) < minRawLength {
		return reject(ReasonIncomplete)
	}

	normalized := Normalize(raw)
	if len(normalized) < minNormalizedLength {
		return reject(ReasonTooShort)
	}

	body, dv := split(normalized)
	res := reject(ReasonMalformedBody)
	res.Body, res.CheckDigit = body, dv

	if !isDigits(body) {
		return res
	}
	if isRepetitive(body) {
		res.Reason = ReasonRepetitiveBody
		res.Message = res.Reason.Message()
		return res
	}

	n, err := strconv.ParseUint(body, 10, 64)
	if err != nil || n < MinBody || n > MaxBody {
		res.Reason = ReasonOutOfRange
		res.Message = res.Reason.Message()
		return res
	}

	res.Expected = checkDigit(body)
	if res.Expected != dv {
		res.Reason = ReasonCheckDigitMismatch
		res.Message = res.Reason.Message()
		return res
	}

	res.Valid = true
	res.Reason = ReasonValid
	res.Message = res.Reason.Message()
	return res
}

// Normalize keeps only decimal digits and k/K, uppercased.
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case c >= '0' && c <= '9', c == 'K':
			b.WriteByte(c)
		case c == 'k':
			b.WriteByte('K')
		}
	}
	return b.String()
}

// CheckDigit computes the modulus-11 verifier for a body of decimal digits.
func CheckDigit(body string) (byte, error) {
	if body == "" || !isDigits(body) {
		return 0, ErrMalformedBody
	}
	return checkDigit(body), nil
}

// checkDigit assumes body holds only ASCII digits. Weights run 2..7 from the
// rightmost digit and wrap back to 2.
func checkDigit(body string) byte {
	sum, weight := 0, 2
	for i := len(body) - 1; i >= 0; i-- {
		sum += int(body[i]-'0') * weight
		weight++
		if weight > 7 {
			weight = 2
		}
	}

	switch r := 11 - sum%11; r {
	case 11:
		return '0'
	case 10:
		return 'K'
	default:
		return byte('0' + r)
	}
}

func split(normalized string) (body string, dv byte) {
	last := len(normalized) - 1
	return normalized[:last], normalized[last]
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func isRepetitive(body string) bool {
	if body == "" {
		return false
	}
	return strings.Count(body, body[:1]) == len(body)
}

// displayPattern is the shape accepted on form submit.
var displayPattern = regexp.MustCompile(`^\d{1,2}\.\d{3}\.\d{3}-[\dkK]$`)

// MatchesDisplayPattern reports whether s is already in 12.345.678-9 form.
// It does not check the verifier digit.
func MatchesDisplayPattern(s string) bool {
	return displayPattern.MatchString(s)
}
