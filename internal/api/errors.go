package api

import (
	"encoding/json"
	"net/http"
)

// Error represents a structured error response.
type Error struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Common error codes.
const (
	ErrCodeBadRequest = "bad_request"
	ErrCodeRejected   = "rejected"
	ErrCodeInternal   = "internal_error"
	ErrCodeStore      = "store_error"
)

// writeJSON writes a JSON response with the given status code and payload.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		//nolint:errcheck // Best-effort write to response; connection may be closed
		json.NewEncoder(w).Encode(v)
	}
}

// writeError writes a structured error response.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, Error{
		Status:  status,
		Code:    code,
		Message: message,
	})
}

// writeBadRequest writes a 400 error response for malformed or incomplete
// request bodies.
func writeBadRequest(w http.ResponseWriter, message string) {
	writeError(w, http.StatusBadRequest, ErrCodeBadRequest, message)
}

// writeRejected writes a 401 error response for domain-level rejections:
// unknown ids or usernames, duplicate usernames, invalid credentials.
func writeRejected(w http.ResponseWriter, message string) {
	writeError(w, http.StatusUnauthorized, ErrCodeRejected, message)
}

// writeInternalError writes a 500 error response.
func writeInternalError(w http.ResponseWriter, message string) {
	writeError(w, http.StatusInternalServerError, ErrCodeInternal, message)
}

// storeError logs a failed store operation in full and writes a 501
// response with a generic message. Driver error text never reaches the
// caller.
func (s *Server) storeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	s.logger.Error(op+" failed",
		"error", err,
		"request_id", r.Context().Value(ctxKeyRequestID),
	)
	writeError(w, http.StatusNotImplemented, ErrCodeStore, "document store error")
}
