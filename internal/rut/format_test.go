package rut_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rutcheck/internal/rut"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		cursor      int
		wantText    string
		wantCursor  int
		wantChanged bool
		wantReason  rut.Reason // empty means no validation
	}{
		{
			name:        "single character has no dash",
			text:        "1",
			cursor:      1,
			wantText:    "1",
			wantCursor:  1,
			wantChanged: false,
		},
		{
			name:        "short input gets a dash but is not validated",
			text:        "12345",
			cursor:      5,
			wantText:    "1.234-5",
			wantCursor:  7,
			wantChanged: true,
		},
		{
			name:        "body of three digits gets no leading separator",
			text:        "1234",
			cursor:      4,
			wantText:    "123-4",
			wantCursor:  5,
			wantChanged: true,
		},
		{
			name:        "complete raw digits are grouped and validated",
			text:        "123456785",
			cursor:      9,
			wantText:    "12.345.678-5",
			wantCursor:  12,
			wantChanged: true,
			wantReason:  rut.ReasonValid,
		},
		{
			name:        "cursor counts runes of multibyte input",
			text:        "ñ123456785",
			cursor:      10,
			wantText:    "12.345.678-5",
			wantCursor:  12,
			wantChanged: true,
			wantReason:  rut.ReasonValid,
		},
		{
			name:        "already formatted text keeps cursor",
			text:        "12.345.678-5",
			cursor:      4,
			wantText:    "12.345.678-5",
			wantCursor:  4,
			wantChanged: false,
			wantReason:  rut.ReasonValid,
		},
		{
			name:        "lowercase k is uppercased",
			text:        "8765432k",
			cursor:      8,
			wantText:    "8.765.432-K",
			wantCursor:  11,
			wantChanged: true,
			wantReason:  rut.ReasonValid,
		},
		{
			name:        "seven digit body with wrong digit",
			text:        "12345678",
			cursor:      8,
			wantText:    "1.234.567-8",
			wantCursor:  11,
			wantChanged: true,
			wantReason:  rut.ReasonCheckDigitMismatch,
		},
		{
			name:        "repetitive body is flagged while typing",
			text:        "11111111-1",
			cursor:      10,
			wantText:    "11.111.111-1",
			wantCursor:  12,
			wantChanged: true,
			wantReason:  rut.ReasonRepetitiveBody,
		},
		{
			name:        "nine character formatted text is not validated",
			text:        "1234567",
			cursor:      7,
			wantText:    "123.456-7",
			wantCursor:  9,
			wantChanged: true,
		},
		{
			name:        "removing separators shrinks cursor but never below zero",
			text:        "1..2..3",
			cursor:      1,
			wantText:    "12-3",
			wantCursor:  0,
			wantChanged: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			edit := rut.Format(tt.text, tt.cursor)
			assert.Equal(t, tt.wantText, edit.Text)
			assert.Equal(t, tt.wantCursor, edit.Cursor)
			assert.Equal(t, tt.wantChanged, edit.Changed)

			if tt.wantReason == "" {
				assert.Nil(t, edit.Result)
				return
			}
			require.NotNil(t, edit.Result)
			assert.Equal(t, tt.wantReason, edit.Result.Reason)
		})
	}
}

func TestFormatEmpty(t *testing.T) {
	t.Run("nothing usable clears the field", func(t *testing.T) {
		edit := rut.Format("abc.-", 5)
		assert.Equal(t, "", edit.Text)
		assert.Equal(t, 0, edit.Cursor)
		assert.True(t, edit.Changed)
		assert.Nil(t, edit.Result)
	})

	t.Run("already empty is unchanged", func(t *testing.T) {
		edit := rut.Format("", 0)
		assert.False(t, edit.Changed)
		assert.Nil(t, edit.Result)
	})
}

func TestFormatIdempotent(t *testing.T) {
	inputs := []string{
		"1", "12", "123", "1234", "123456", "1234567", "123456785", "12.345.678-5",
		"8765432k", "1K", "k", "12-3", "9.999.999.999-9", "abc12def34",
	}
	for _, in := range inputs {
		first := rut.Format(in, len(in))
		second := rut.Format(first.Text, first.Cursor)
		assert.Equal(t, first.Text, second.Text, "input %q", in)
		assert.False(t, second.Changed, "input %q", in)
	}
}

func TestRUTValue(t *testing.T) {
	t.Run("eight digit body", func(t *testing.T) {
		r := rut.MustParse("123456785")
		assert.Equal(t, "12345678", r.Body())
		assert.Equal(t, byte('5'), r.CheckDigit())
		assert.Equal(t, "123456785", r.Compact())
		assert.Equal(t, "12.345.678-5", r.String())
		assert.Equal(t, "**.***.678-5", r.Mask())
		assert.False(t, r.IsZero())
	})

	t.Run("seven digit body with K", func(t *testing.T) {
		r := rut.MustParse("8.765.432-k")
		assert.Equal(t, "8.765.432-K", r.String())
		assert.Equal(t, "*.***.432-K", r.Mask())
	})

	t.Run("leading zero is dropped from the body", func(t *testing.T) {
		r := rut.MustParse("01234567-4")
		assert.Equal(t, "1234567", r.Body())
		assert.Equal(t, "1.234.567-4", r.String())
	})

	t.Run("zero value", func(t *testing.T) {
		var r rut.RUT
		assert.True(t, r.IsZero())
		assert.Empty(t, r.String())
		assert.Empty(t, r.Mask())
	})
}

func TestParseErrors(t *testing.T) {
	tests := map[string]error{
		"12":           rut.ErrIncomplete,
		"1234567":      rut.ErrTooShort,
		"1234K5678":    rut.ErrMalformedBody,
		"111111111":    rut.ErrRepetitiveBody,
		"00999999-0":   rut.ErrOutOfRange,
		"12.345.678-9": rut.ErrCheckDigitMismatch,
	}
	for input, want := range tests {
		_, err := rut.Parse(input)
		assert.ErrorIs(t, err, want, "input %q", input)
	}

	assert.Panics(t, func() { rut.MustParse("111111111") })
}
