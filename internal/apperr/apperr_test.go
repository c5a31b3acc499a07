package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCode_HTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeUnauthenticated, http.StatusUnauthorized},
		{CodeForbidden, http.StatusUnauthorized},
		{CodeNotFound, http.StatusNotFound},
		{CodeDuplicateIdentity, http.StatusBadRequest},
		{CodeValidation, http.StatusBadRequest},
		{CodeRateLimited, http.StatusTooManyRequests},
		{CodeInternal, http.StatusInternalServerError},
		{Code("SOMETHING_ELSE"), http.StatusInternalServerError},
	}
	for _, tc := range tests {
		t.Run(string(tc.code), func(t *testing.T) {
			assert.Equal(t, tc.want, tc.code.HTTPStatus())
		})
	}
}

func TestCodeOf_Wrapped(t *testing.T) {
	base := New(CodeNotFound, "Event not found")
	wrapped := fmt.Errorf("get event: %w", base)

	assert.Equal(t, CodeNotFound, CodeOf(wrapped))
	assert.Equal(t, "Event not found", MessageOf(wrapped))
	assert.True(t, errors.Is(wrapped, base))
	assert.True(t, Is(wrapped, CodeNotFound))
}

func TestMessageOf_HidesPlainErrors(t *testing.T) {
	err := errors.New("pq: connection refused")

	assert.Equal(t, CodeInternal, CodeOf(err))
	assert.Equal(t, InternalMessage, MessageOf(err))
	assert.Equal(t, InternalMessage, MessageOf(Wrap(CodeInternal, "db down", err)))
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := Wrap(CodeValidation, "bad input", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "bad input: boom", err.Error())
	assert.Equal(t, "bad input", Validation("bad input").Error())
}
