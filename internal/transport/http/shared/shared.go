// Package shared holds the JSON plumbing common to all HTTP handlers so
// every endpoint speaks the same envelope.
package shared

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "stellium/pkg/domain-errors"
)

// ErrorResponse is the JSON error envelope returned by every endpoint.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// WriteJSON writes v with the given status. Encoding failures are swallowed;
// by the time Encode fails the status line is already on the wire.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates a domain error into the JSON error envelope.
// Unknown error types collapse to a 500 without leaking internals.
func WriteError(w http.ResponseWriter, err error) {
	var de *dErrors.DomainError
	if errors.As(err, &de) {
		WriteJSON(w, dErrors.ToHTTPStatus(de.Code), ErrorResponse{
			Error:   string(de.Code),
			Message: de.Message,
		})
		return
	}
	WriteJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error: string(dErrors.CodeInternal),
	})
}

// DecodeJSON decodes a request body, rejecting unknown fields so client
// typos surface as 400s instead of silently dropped options.
func DecodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return dErrors.New(dErrors.CodeBadRequest, "invalid request body")
	}
	return nil
}
