package errors

import (
	"errors"
	"net/http"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name: "without underlying error",
			appErr: &AppError{
				Code:    CodeNotFound,
				Message: "booking not found",
			},
			expected: "NOT_FOUND: booking not found",
		},
		{
			name: "with underlying error",
			appErr: &AppError{
				Code:    CodeInternal,
				Message: "internal error",
				Err:     errors.New("database connection failed"),
			},
			expected: "INTERNAL_ERROR: internal error (caused by: database connection failed)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.appErr.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestConstructorsSetStatus(t *testing.T) {
	tests := []struct {
		name   string
		err    *AppError
		code   string
		status int
	}{
		{"not found", NotFound("booking"), CodeNotFound, http.StatusNotFound},
		{"validation", Validation("Please fill in all required fields.", nil), CodeValidation, http.StatusUnprocessableEntity},
		{"date restriction", DateRestriction("Wedding bookings must be at least 1 month in advance."), CodeDateRestriction, http.StatusUnprocessableEntity},
		{"invalid input", InvalidInput("Invalid request body"), CodeInvalidInput, http.StatusBadRequest},
		{"unauthorized", Unauthorized("Missing user identity"), CodeUnauthorized, http.StatusUnauthorized},
		{"conflict", Conflict("already exists"), CodeConflict, http.StatusConflict},
		{"internal", Internal("boom", errors.New("cause")), CodeInternal, http.StatusInternalServerError},
		{"unavailable", Unavailable("The parish assistant"), CodeUnavailable, http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("code = %s, want %s", tt.err.Code, tt.code)
			}
			if tt.err.StatusCode() != tt.status {
				t.Errorf("status = %d, want %d", tt.err.StatusCode(), tt.status)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("write failed")
	err := Internal("Failed to create booking. Please try again.", cause)

	if !errors.Is(err, cause) {
		t.Error("errors.Is should reach the wrapped cause")
	}
}

func TestAsAppError(t *testing.T) {
	appErr := NotFound("booking")
	if got := AsAppError(appErr); got != appErr {
		t.Error("AsAppError should return the original AppError unchanged")
	}

	plain := errors.New("some driver error")
	got := AsAppError(plain)
	if got.Code != CodeInternal {
		t.Errorf("code = %s, want %s", got.Code, CodeInternal)
	}
	if got.Message != "An unexpected error occurred" {
		t.Errorf("message = %q, should not leak the cause", got.Message)
	}
	if got.Err != plain {
		t.Error("cause should be preserved for logging")
	}
}

func TestNotFoundWithIDDetails(t *testing.T) {
	err := NotFoundWithID("booking", "665f1c0a2f8b9a0012345678")
	if err.Details["id"] != "665f1c0a2f8b9a0012345678" {
		t.Errorf("details id = %v", err.Details["id"])
	}
}
