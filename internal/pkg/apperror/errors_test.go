package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name:     "without wrapped error",
			appErr:   New("VAL_001", "bad input", http.StatusBadRequest),
			expected: "[VAL_001] bad input",
		},
		{
			name:     "with wrapped error",
			appErr:   Wrap("SYS_001", "boom", http.StatusInternalServerError, fmt.Errorf("connection refused")),
			expected: "[SYS_001] boom: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.appErr.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	inner := fmt.Errorf("inner error")
	appErr := ErrUpstream(inner)

	assert.True(t, errors.Is(appErr, inner))
	assert.Nil(t, ErrUnauthorized().Unwrap())
}

func TestAppError_IsMatchesCode(t *testing.T) {
	wrapped := fmt.Errorf("loading balances: %w", ErrRateLimited(errors.New("500")))

	assert.ErrorIs(t, wrapped, ErrRateLimited(nil))
	assert.NotErrorIs(t, wrapped, ErrUpstream(nil))
}

func TestFrom(t *testing.T) {
	appErr := ErrForbidden()
	assert.Same(t, appErr, From(fmt.Errorf("ctx: %w", appErr)))

	plain := errors.New("plain")
	got := From(plain)
	assert.Equal(t, "SYS_001", got.Code)
	assert.Equal(t, http.StatusInternalServerError, got.HTTPStatus)
	assert.ErrorIs(t, got, plain)
}

func TestCodedErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		code       string
		httpStatus int
	}{
		{"Unauthorized", ErrUnauthorized(), "AUTH_001", 401},
		{"SessionExpired", ErrSessionExpired(), "AUTH_002", 401},
		{"Forbidden", ErrForbidden(), "AUTH_003", 403},
		{"InvalidCredentials", ErrInvalidCredentials(), "AUTH_004", 401},
		{"Upstream", ErrUpstream(nil), "UPSTREAM_001", 502},
		{"RateLimited", ErrRateLimited(nil), "UPSTREAM_002", 503},
		{"UpstreamRejected", ErrUpstreamRejected(409, ""), "UPSTREAM_003", 409},
		{"Validation", Validation("x"), "VAL_001", 400},
		{"NotFound", ErrNotFound("wallet"), "VAL_002", 404},
		{"Internal", InternalError(nil), "SYS_001", 500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.httpStatus, tt.err.HTTPStatus)
			assert.NotEmpty(t, tt.err.Message)
		})
	}
	assert.Equal(t, "Conflict", ErrUpstreamRejected(409, "").Message)
	assert.Equal(t, "wallet not found", ErrNotFound("wallet").Message)
}
