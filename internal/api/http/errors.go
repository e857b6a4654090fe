package http

import (
	"context"
	"errors"
	"net/http"

	apperrors "github.com/avaliafor/avaliafor/internal/errors"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error     string                 `json:"error"`
	Category  string                 `json:"category,omitempty"`
	Code      string                 `json:"code,omitempty"`
	Details   map[string]interface{} `json:"details,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
}

// StatusFor maps an error category to its HTTP status.
func StatusFor(err error) int {
	switch apperrors.GetCategory(err) {
	case apperrors.ErrCategoryValidation:
		return http.StatusBadRequest
	case apperrors.ErrCategoryNotFound:
		return http.StatusNotFound
	case apperrors.ErrCategoryPartialFailure:
		return http.StatusMultiStatus
	case apperrors.ErrCategoryConnectivity:
		return http.StatusServiceUnavailable
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}
	return http.StatusInternalServerError
}

// writeError writes an error response with the given status code.
func writeError(w http.ResponseWriter, statusCode int, message string, requestID ...string) {
	resp := ErrorResponse{Error: message}
	if len(requestID) > 0 {
		resp.RequestID = requestID[0]
	}
	writeJSON(w, statusCode, resp)
}

// writeAppError writes err with the status of its category. Internal
// errors hide their cause.
func writeAppError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	resp := ErrorResponse{
		Error:     err.Error(),
		Category:  string(apperrors.GetCategory(err)),
		Code:      apperrors.GetCode(err),
		Details:   apperrors.GetDetails(err),
		RequestID: GetRequestID(r.Context()),
	}
	if status == http.StatusInternalServerError {
		resp.Error = "internal server error"
		resp.Details = nil
	}
	writeJSON(w, status, resp)
}
