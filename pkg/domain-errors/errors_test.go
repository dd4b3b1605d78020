package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasCode(t *testing.T) {
	base := errors.New("boom")
	wrapped := Wrap(base, CodeInternal, "failed to format")
	outer := fmt.Errorf("handler: %w", Wrap(wrapped, CodeTimeout, "deadline"))

	assert.True(t, HasCode(wrapped, CodeInternal))
	assert.True(t, HasCode(outer, CodeTimeout))
	assert.True(t, HasCode(outer, CodeInternal))
	assert.False(t, HasCode(outer, CodeValidation))
	assert.False(t, HasCode(base, CodeInternal))
	assert.ErrorIs(t, outer, base)
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeValidation, CodeOf(New(CodeValidation, "text is required")))
	assert.Equal(t, CodeInternal, CodeOf(errors.New("plain")))
}

func TestErrorMessage(t *testing.T) {
	assert.Equal(t, "bad json", New(CodeBadRequest, "bad json").Error())
	assert.Equal(t, "decode: eof", Wrap(errors.New("eof"), CodeBadRequest, "decode").Error())
}

func TestToHTTPStatus(t *testing.T) {
	tests := map[Code]int{
		CodeBadRequest:   http.StatusBadRequest,
		CodeValidation:   http.StatusBadRequest,
		CodeInvalidInput: http.StatusBadRequest,
		CodeNotFound:     http.StatusNotFound,
		CodeTimeout:      http.StatusGatewayTimeout,
		CodeInternal:     http.StatusInternalServerError,
		Code("unknown"):  http.StatusInternalServerError,
	}
	for code, want := range tests {
		assert.Equal(t, want, ToHTTPStatus(code), "code %s", code)
	}
}
