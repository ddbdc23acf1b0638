// Package httputil writes the console's JSON envelopes and file downloads.
package httputil

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	apperrors "github.com/diqie123/sistem-entri-data-inventaris/pkg/errors"
	"github.com/diqie123/sistem-entri-data-inventaris/pkg/logger"
	"github.com/diqie123/sistem-entri-data-inventaris/pkg/validator"
)

// Response is the standard JSON response envelope.
type Response struct {
	Data  any            `json:"data,omitempty"`
	Error *ErrorResponse `json:"error,omitempty"`
}

// ErrorResponse represents an error in the standard response format.
type ErrorResponse struct {
	Code      string            `json:"code"`
	Message   string            `json:"message"`
	Fields    map[string]string `json:"fields,omitempty"`
	RequestID string            `json:"request_id,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Headers are already sent; nothing meaningful can be done if encoding fails.
	_ = json.NewEncoder(w).Encode(v)
}

// WriteFile writes body as a download with the given file name.
func WriteFile(w http.ResponseWriter, filename, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// WriteError writes the error envelope for err. Validation failures carry
// per-field messages; everything else is classified by apperrors.From and
// logged when it maps to a 5xx. The request-scoped logger is preferred over
// fallback.
func WriteError(w http.ResponseWriter, r *http.Request, err error, fallback *slog.Logger) {
	requestID := logger.CorrelationIDFromContext(r.Context())

	var valErr *validator.ValidationError
	if errors.As(err, &valErr) {
		WriteJSON(w, http.StatusBadRequest, Response{Error: validationBody(valErr, requestID)})
		return
	}

	appErr := apperrors.From(err)
	if appErr.Status >= http.StatusInternalServerError {
		l := logger.FromContext(r.Context())
		if l == slog.Default() {
			l = fallback
		}
		l.ErrorContext(r.Context(), "request failed",
			slog.String("code", appErr.Code),
			slog.String("error", err.Error()),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)
	}

	WriteJSON(w, appErr.Status, Response{
		Error: &ErrorResponse{Code: appErr.Code, Message: appErr.Message, RequestID: requestID},
	})
}

func validationBody(err *validator.ValidationError, requestID string) *ErrorResponse {
	return &ErrorResponse{
		Code:      "VALIDATION_ERROR",
		Message:   "request validation failed",
		Fields:    err.Fields(),
		RequestID: requestID,
	}
}

// WriteValidationError writes a standardized validation error response.
// Errors other than ValidationError are reported as INVALID_INPUT.
func WriteValidationError(w http.ResponseWriter, err error) {
	var valErr *validator.ValidationError
	if errors.As(err, &valErr) {
		WriteJSON(w, http.StatusBadRequest, Response{Error: validationBody(valErr, "")})
		return
	}

	WriteJSON(w, http.StatusBadRequest, Response{
		Error: &ErrorResponse{Code: "INVALID_INPUT", Message: err.Error()},
	})
}
