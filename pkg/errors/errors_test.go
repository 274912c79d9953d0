package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want int
	}{
		{name: "not found", err: NotFound("patient", nil), want: http.StatusNotFound},
		{name: "invalid reference", err: InvalidReference("doctor", nil), want: http.StatusNotFound},
		{name: "bad request", err: BadRequest("invalid payload", nil), want: http.StatusBadRequest},
		{name: "unauthorized", err: Unauthorized(nil), want: http.StatusUnauthorized},
		{name: "conflict", err: Conflict("already exists", nil), want: http.StatusConflict},
		{name: "internal", err: Internal(errors.New("boom")), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.StatusCode())
			assert.Equal(t, tt.want, Status(tt.err))
		})
	}
}

func TestStatusDefaultsToInternal(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, Status(errors.New("plain error")))
}

func TestStatusUnwrapsWrappedAppError(t *testing.T) {
	wrapped := fmt.Errorf("lookup failed: %w", NotFound("department", nil))
	assert.Equal(t, http.StatusNotFound, Status(wrapped))
	assert.Equal(t, "department not found", Message(wrapped))
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "patient not found", Message(NotFound("patient", nil)))
	assert.Equal(t, "unauthorized", Message(Unauthorized(errors.New("bad token"))))
	assert.Equal(t, "internal server error", Message(errors.New("db exploded")))
}

func TestErrorIncludesCause(t *testing.T) {
	cause := errors.New("row missing")
	err := NotFound("appointment", cause)

	assert.Contains(t, err.Error(), "appointment not found")
	assert.Contains(t, err.Error(), "row missing")
	assert.True(t, errors.Is(err, cause))
}

func TestIsCode(t *testing.T) {
	err := Conflict("duplicate email", nil)
	assert.True(t, IsCode(err, ErrConflict))
	assert.False(t, IsCode(err, ErrNotFound))
	assert.False(t, IsCode(errors.New("plain"), ErrConflict))
}
