// AngelaMos | 2026
// errors_test.go

package core

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestFromErrorSentinelMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"not found", ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"duplicate", ErrDuplicateKey, http.StatusConflict, "CONFLICT"},
		{"invalid input", ErrInvalidInput, http.StatusBadRequest, "BAD_REQUEST"},
		{"token expired", ErrTokenExpired, http.StatusUnauthorized, "TOKEN_EXPIRED"},
		{"token invalid", ErrTokenInvalid, http.StatusUnauthorized, "TOKEN_INVALID"},
		{"unauthorized", ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"forbidden", ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := FromError(fmt.Errorf("context: %w", tt.err))

			if appErr.Status != tt.wantStatus {
				t.Errorf("status = %d, want %d", appErr.Status, tt.wantStatus)
			}
			if appErr.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", appErr.Code, tt.wantCode)
			}
		})
	}
}

func TestFromErrorUnknownIsOpaque(t *testing.T) {
	appErr := FromError(errors.New("pq: connection refused"))

	if appErr.Status != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", appErr.Status)
	}
	if appErr.Code != "INTERNAL" {
		t.Errorf("code = %q, want INTERNAL", appErr.Code)
	}
	if appErr.Message != "internal server error" {
		t.Errorf("message leaks internals: %q", appErr.Message)
	}
}

func TestFromErrorPassthrough(t *testing.T) {
	original := BadRequestError("name too short")

	appErr := FromError(fmt.Errorf("handler: %w", original))
	if appErr != original {
		t.Error("wrapped AppError should pass through unchanged")
	}
}

func TestAppErrorUnwrap(t *testing.T) {
	appErr := NotFoundError("user")

	if !errors.Is(appErr, ErrNotFound) {
		t.Error("NotFoundError should unwrap to ErrNotFound")
	}
}
