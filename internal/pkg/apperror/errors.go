package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is a structured error that maps to HTTP responses and to the
// user-facing banner shown when a view cannot be refreshed.
type AppError struct {
	Code       string `json:"error_code"`
	Message    string `json:"message"`
	HTTPStatus int    `json:"-"`
	Err        error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches on Code so errors.Is works against the constructors below.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// New creates a new AppError.
func New(code string, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an internal error with an AppError.
func Wrap(code string, message string, httpStatus int, err error) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Err:        err,
	}
}

// From returns the AppError in err's chain, or an internal error wrapping err.
func From(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return InternalError(err)
}

// ---- Authentication (AUTH) ----

func ErrUnauthorized() *AppError {
	return New("AUTH_001", "Authentication required", http.StatusUnauthorized)
}

func ErrSessionExpired() *AppError {
	return New("AUTH_002", "Session expired, please sign in again", http.StatusUnauthorized)
}

func ErrForbidden() *AppError {
	return New("AUTH_003", "Insufficient permissions", http.StatusForbidden)
}

func ErrInvalidCredentials() *AppError {
	return New("AUTH_004", "Invalid credentials", http.StatusUnauthorized)
}

// ---- Upstream backend (UPSTREAM) ----

// ErrUpstream is a generic network or HTTP failure talking to the backend.
func ErrUpstream(err error) *AppError {
	return Wrap("UPSTREAM_001", "Unable to reach the portfolio service, data may be out of date", http.StatusBadGateway, err)
}

// ErrRateLimited is the backend's balance provider running out of quota.
func ErrRateLimited(err error) *AppError {
	return Wrap("UPSTREAM_002", "Balance API limit reached, the service is temporarily unavailable. Try again later", http.StatusServiceUnavailable, err)
}

func ErrUpstreamRejected(status int, message string) *AppError {
	if message == "" {
		message = http.StatusText(status)
	}
	return New("UPSTREAM_003", message, status)
}

// ---- Validation (VAL) ----

func Validation(message string) *AppError {
	return New("VAL_001", message, http.StatusBadRequest)
}

func ErrNotFound(entity string) *AppError {
	return New("VAL_002", fmt.Sprintf("%s not found", entity), http.StatusNotFound)
}

// ---- System (SYS) ----

// InternalError wraps an internal error as a SYS_001 error.
func InternalError(err error) *AppError {
	return Wrap("SYS_001", "Internal server error", http.StatusInternalServerError, err)
}
