package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	apperrors "github.com/lorrc/supporthub-backend/internal/core/errors"
)

// ErrorResponse is the standard JSON error response format
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// ValidationErrorResponse includes field-level validation errors
type ValidationErrorResponse struct {
	Error  string              `json:"error"`
	Code   string              `json:"code"`
	Fields map[string][]string `json:"fields,omitempty"`
}

const codeInternal = "INTERNAL_ERROR"

// ErrorHandler provides centralized error handling with logging
type ErrorHandler struct {
	logger *slog.Logger
}

// NewErrorHandler creates a new error handler with the given logger
func NewErrorHandler(logger *slog.Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// Failure writes an expected service failure with the route's failure status.
func (h *ErrorHandler) Failure(w http.ResponseWriter, r *http.Request, status int, failure *apperrors.AppError) {
	h.log(r, status, failure)
	writeJSON(w, status, ErrorResponse{
		Error: failure.Error(),
		Code:  string(failure.Kind),
	})
}

// Handle writes any error that did not come back inside a Result. Request
// shape problems become 400; everything else is an infrastructure fault.
func (h *ErrorHandler) Handle(w http.ResponseWriter, r *http.Request, err error) {
	var validationErrs *apperrors.ValidationErrors
	if errors.As(err, &validationErrs) {
		h.log(r, http.StatusBadRequest, err)
		writeJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  "Validation failed",
			Code:   string(apperrors.KindValidation),
			Fields: validationErrs.Errors,
		})
		return
	}

	h.log(r, http.StatusInternalServerError, err)
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error: "An unexpected error occurred",
		Code:  codeInternal,
	})
}

func (h *ErrorHandler) log(r *http.Request, status int, err error) {
	attrs := []any{
		"method", r.Method,
		"path", r.URL.Path,
		"status_code", status,
		"error", err.Error(),
	}

	ctx := r.Context()
	if status >= 500 {
		h.logger.ErrorContext(ctx, "server error", attrs...)
		return
	}
	h.logger.WarnContext(ctx, "client error", attrs...)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
