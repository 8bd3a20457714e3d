// Package http exposes the sandbox over a JSON API: demo authentication,
// account balances, transfers, the transaction log and invoice generation.
package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/lumenpay/sandbox/pkg/httpx"
)

const maxBodyBytes = 1 << 20 // request bodies are tiny JSON documents

// decodeJSON decodes the request body into v and reports malformed payloads
// to the client. Returns false if a response has already been written.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", "Malformed JSON body")
		return false
	}
	return true
}

// writeRateLimited reports the service-level fixed window being exhausted.
// Distinct from the per-route edge limiter, which sets Retry-After itself.
func writeRateLimited(w http.ResponseWriter) {
	httpx.WriteError(w, http.StatusTooManyRequests,
		"rate_limited", "Too many requests, try again shortly")
}

// validateStruct runs validator tags over the decoded payload. Returns false
// if a response has already been written.
func validateStruct(w http.ResponseWriter, validate *validator.Validate, v any) bool {
	if err := validate.Struct(v); err != nil {
		desc := "Invalid request payload"
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			desc = verrs[0].Field() + " failed on the '" + verrs[0].Tag() + "' rule"
		}
		httpx.WriteError(w, http.StatusBadRequest, "invalid_request", desc)
		return false
	}
	return true
}
