package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "rutcheck/pkg/domain-errors"
)

type sample struct {
	RUT      string `json:"rut" validate:"required,rut_display,rut"`
	Telefono string `json:"telefono" validate:"omitempty,cl_mobile"`
	Field    string `json:"field" validate:"oneof=rut telefono"`
	Cursor   int    `json:"cursor" validate:"gte=0"`
}

func TestFields(t *testing.T) {
	t.Run("valid struct", func(t *testing.T) {
		fields, err := Fields(sample{RUT: "12.345.678-5", Telefono: "912345678", Field: "rut"})
		require.NoError(t, err)
		assert.Empty(t, fields)
	})

	t.Run("display form required before check digit", func(t *testing.T) {
		fields, err := Fields(sample{RUT: "123456785", Field: "rut"})
		require.NoError(t, err)
		require.Len(t, fields, 1)
		assert.Equal(t, FieldError{Field: "rut", Tag: "rut_display"}, fields[0])
	})

	t.Run("check digit verified", func(t *testing.T) {
		fields, err := Fields(sample{RUT: "12.345.678-9", Field: "rut"})
		require.NoError(t, err)
		require.Len(t, fields, 1)
		assert.Equal(t, "rut", fields[0].Tag)
	})

	t.Run("several failures are reported by json name", func(t *testing.T) {
		fields, err := Fields(sample{RUT: "", Telefono: "812345678", Field: "email", Cursor: -1})
		require.NoError(t, err)
		names := make([]string, 0, len(fields))
		for _, f := range fields {
			names = append(names, f.Field)
		}
		assert.ElementsMatch(t, []string{"rut", "telefono", "field", "cursor"}, names)
	})

	t.Run("non struct is an error", func(t *testing.T) {
		_, err := Fields("nope")
		assert.Error(t, err)
	})
}

func TestStruct(t *testing.T) {
	err := Struct(sample{RUT: "12.345.678-5", Field: "fax"})
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	assert.Equal(t, "field must be one of: rut telefono", err.Error())

	assert.NoError(t, Struct(sample{RUT: "12.345.678-5", Field: "telefono"}))
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "text must be at most 64 characters", Describe(FieldError{Field: "text", Tag: "max", Param: "64"}))
	assert.Equal(t, "telefono must have format +56 9 1234 5678", Describe(FieldError{Field: "telefono", Tag: "cl_mobile"}))
	assert.Equal(t, "x is invalid", Describe(FieldError{Field: "x", Tag: "uuid"}))
}
