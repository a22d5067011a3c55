// Package handlers holds the HTTP request handlers and their shared
// response helpers.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/wishwell/wishwell/internal/interfaces/http/middleware"
	"github.com/wishwell/wishwell/pkg/errors"
)

// getAccountID extracts the authenticated account id set by the auth
// middleware.
func getAccountID(r *http.Request) string {
	return middleware.ContextGetAccountID(r.Context())
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// ErrorResponse is the standard error response body.  Error carries the
// closed tag set callers switch on; Code is the stable condition
// identifier clients key retry affordances on.
type ErrorResponse struct {
	Error   errors.APITag    `json:"error"`
	Code    errors.ErrorCode `json:"code"`
	Message string           `json:"message"`
}

// writeAppError maps an application error to its HTTP status and tag.
// Internal details never reach the caller.
func writeAppError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	status := errors.HTTPStatusForCode(code)
	resp := ErrorResponse{Error: errors.TagForCode(code), Code: code}
	if errors.IsClientError(code) {
		resp.Message = err.Error()
	} else {
		resp.Message = errors.DefaultMessageForCode(code)
	}
	writeJSON(w, status, resp)
}
