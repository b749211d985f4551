// Package httpx writes the few JSON responses the cockpit serves to
// non-HTML clients, such as the 401 for an expired session on an
// Accept: application/json request. Every regular page goes through the
// view layer instead.
package httpx

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the body of every JSON error the cockpit emits.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// JSON marshals payload and writes it with the given status. A nil payload
// becomes the JSON literal null.
func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	body := []byte("null")
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			// Marshal before WriteHeader so a failure never truncates a body
			// the client already started reading.
			http.Error(w, `{"error":"encode_error"}`, http.StatusInternalServerError)
			return
		}
	}
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// JSONError writes an ErrorResponse with the given status.
func JSONError(w http.ResponseWriter, status int, msg string, details any) {
	JSON(w, status, ErrorResponse{Error: msg, Details: details})
}
