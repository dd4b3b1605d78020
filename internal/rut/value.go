package rut

// RUT is a validated identity number.
//
// Invariants:
//   - Body is 7 or 8 digits, value in [MinBody, MaxBody]
//   - Body is not a single repeated digit
//   - CheckDigit matches the modulus-11 verifier of Body
type RUT struct {
	body string
	dv   byte
}

// Parse validates raw and returns the RUT, or the sentinel error for the
// first gate that rejected it.
func Parse(raw string) (RUT, error) {
	res := Validate(raw)
	if !res.Valid {
		return RUT{}, res.Reason.Err()
	}
	return RUT{body: trimLeadingZeros(res.Body), dv: res.CheckDigit}, nil
}

// MustParse creates a RUT, panicking if invalid.
// Use only in tests or when the value is known to be valid.
func MustParse(raw string) RUT {
	r, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return r
}

// Body returns the numeric part without separators.
func (r RUT) Body() string {
	return r.body
}

// CheckDigit returns the verifier character, '0'-'9' or 'K'.
func (r RUT) CheckDigit() byte {
	return r.dv
}

// Compact returns body and check digit with no separators, e.g. 123456785.
func (r RUT) Compact() string {
	if r.IsZero() {
		return ""
	}
	return r.body + string(r.dv)
}

// String returns the display form, e.g. 12.345.678-5.
func (r RUT) String() string {
	if r.IsZero() {
		return ""
	}
	return group(r.body) + "-" + string(r.dv)
}

// Mask hides all but the last three body digits so the value is safe to log.
// Example: 12.345.678-5 -> **.***.678-5
func (r RUT) Mask() string {
	if r.IsZero() {
		return ""
	}
	display := []byte(r.String())
	// the last three body digits sit right before "-DV"
	visibleFrom := len(display) - 5
	for i := 0; i < visibleFrom; i++ {
		if display[i] != '.' {
			display[i] = '*'
		}
	}
	return string(display)
}

// IsZero returns true if this is the zero value (uninitialized).
func (r RUT) IsZero() bool {
	return r.body == ""
}

func trimLeadingZeros(body string) string {
	for len(body) > 1 && body[0] == '0' {
		body = body[1:]
	}
	return body
}
