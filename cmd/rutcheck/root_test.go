package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestValidateCommand(t *testing.T) {
	t.Run("human output", func(t *testing.T) {
		out, err := runCLI(t, "validate", "12.345.678-5")
		require.NoError(t, err)
		assert.Contains(t, out, "ok")
		assert.Contains(t, out, "Valid RUT")
	})

	t.Run("json output formats valid input", func(t *testing.T) {
		out, err := runCLI(t, "validate", "-o", "json", "123456785", "8765432k")
		require.NoError(t, err)

		var results []validateOutput
		require.NoError(t, json.Unmarshal([]byte(out), &results))
		require.Len(t, results, 2)
		assert.Equal(t, "12.345.678-5", results[0].Formatted)
		assert.Equal(t, "8.765.432-K", results[1].Formatted)
	})

	t.Run("invalid input fails the command", func(t *testing.T) {
		out, err := runCLI(t, "validate", "123456785", "111111111")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "1 of 2 RUTs invalid")
		assert.Contains(t, out, "Invalid RUT (repetitive)")
	})

	t.Run("requires an argument", func(t *testing.T) {
		_, err := runCLI(t, "validate")
		require.Error(t, err)
	})
}

func TestFormatCommand(t *testing.T) {
	t.Run("rut at end of text", func(t *testing.T) {
		out, err := runCLI(t, "format", "-o", "json", "rut", "123456785")
		require.NoError(t, err)

		var got formatOutput
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		assert.Equal(t, formatOutput{
			Text:    "12.345.678-5",
			Cursor:  12,
			Changed: true,
			State:   "valid",
			Message: "Valid RUT",
		}, got)
	})

	t.Run("pasted phone", func(t *testing.T) {
		out, err := runCLI(t, "format", "telefono", "--paste", "9-1234-5678")
		require.NoError(t, err)
		assert.Contains(t, out, "+56 9 1234 5678")
		assert.Contains(t, out, "valid: Valid phone number")
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := runCLI(t, "format", "email", "x")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown field role")
	})

	t.Run("cursor is measured in characters", func(t *testing.T) {
		out, err := runCLI(t, "format", "-o", "json", "rut", "ñ123456785", "--cursor", "10")
		require.NoError(t, err)

		var got formatOutput
		require.NoError(t, json.Unmarshal([]byte(out), &got))
		assert.Equal(t, 12, got.Cursor)
	})

	t.Run("cursor out of range", func(t *testing.T) {
		_, err := runCLI(t, "format", "rut", "12", "--cursor", "5")
		require.Error(t, err)
	})
}

func TestPhoneCommand(t *testing.T) {
	out, err := runCLI(t, "phone", "+56 9 1234 5678")
	require.NoError(t, err)
	assert.Equal(t, "+56 9 1234 5678\n+56912345678\n", out)

	_, err = runCLI(t, "phone", "812345678")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Format: +56 9 1234 5678")
}

func TestSelfTestCommand(t *testing.T) {
	out, err := runCLI(t, "selftest", "-o", "json")
	require.NoError(t, err)

	var rows []selfTestRow
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.NotEmpty(t, rows)
	for _, r := range rows {
		assert.True(t, r.Passed, "row %s", r.Input)
	}
}

func TestUnsupportedOutput(t *testing.T) {
	_, err := runCLI(t, "selftest", "-o", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported format")
}
