// AngelaMos | 2026
// response.go

package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// ErrorEnvelope is the uniform error body: timestamp, path, method,
// message, and a stable machine-readable code.
type ErrorEnvelope struct {
	Timestamp time.Time `json:"timestamp"`
	Path      string    `json:"path"`
	Method    string    `json:"method"`
	Message   string    `json:"message"`
	Code      string    `json:"code"`
}

type PaginatedResponse struct {
	Data       any `json:"data"`
	Limit      int `json:"limit"`
	Offset     int `json:"offset"`
	TotalCount int `json:"totalCount"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("encode response", "error", err)
	}
}

func OK(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, data)
}

func Created(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusCreated, data)
}

func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

func Paginated(w http.ResponseWriter, data any, limit, offset, total int) {
	writeJSON(w, http.StatusOK, PaginatedResponse{
		Data:       data,
		Limit:      limit,
		Offset:     offset,
		TotalCount: total,
	})
}

// JSONError writes the uniform envelope for a domain error, mapping it
// through FromError when it is not already an AppError.
func JSONError(w http.ResponseWriter, r *http.Request, err error) {
	appErr := FromError(err)

	if appErr.Status >= http.StatusInternalServerError {
		slog.Error("request failed",
			"path", r.URL.Path,
			"method", r.Method,
			"error", err,
		)
	}

	writeJSON(w, appErr.Status, ErrorEnvelope{
		Timestamp: time.Now().UTC(),
		Path:      r.URL.Path,
		Method:    r.Method,
		Message:   appErr.Message,
		Code:      appErr.Code,
	})
}

func BadRequest(w http.ResponseWriter, r *http.Request, message string) {
	JSONError(w, r, BadRequestError(message))
}

func NotFound(w http.ResponseWriter, r *http.Request, resource string) {
	JSONError(w, r, NotFoundError(resource))
}

func Conflict(w http.ResponseWriter, r *http.Request, field string) {
	JSONError(w, r, DuplicateError(field))
}

func Unauthorized(w http.ResponseWriter, r *http.Request, message string) {
	JSONError(w, r, UnauthorizedError(message))
}

func Forbidden(w http.ResponseWriter, r *http.Request, message string) {
	JSONError(w, r, ForbiddenError(message))
}

func InternalServerError(w http.ResponseWriter, r *http.Request, err error) {
	JSONError(w, r, err)
}

// FormatValidationError flattens validator.ValidationErrors into a single
// readable message, one clause per failed field.
func FormatValidationError(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return "invalid request"
	}

	clauses := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		clauses = append(clauses, formatFieldError(fe))
	}

	return strings.Join(clauses, "; ")
}

func formatFieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
