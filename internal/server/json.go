package server

import (
	"encoding/json"
	"net/http"

	"github.com/snapkit/snapcard/pkg/errors"
)

// errorResponse is the JSON error body: a machine-readable code plus a
// user-facing message, never internal error chains.
type errorResponse struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps an error to its HTTP status: validation codes are client
// errors, missing resources are 404, anything else is a 500 with the
// detail kept server-side.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.IsValidation(err):
		status = http.StatusBadRequest
	case errors.Is(err, errors.ErrCodeNotFound) || errors.Is(err, errors.ErrCodeFileNotFound):
		status = http.StatusNotFound
	}

	var resp errorResponse
	resp.Error.Code = string(errors.GetCode(err))
	if resp.Error.Code == "" {
		resp.Error.Code = string(errors.ErrCodeInternal)
	}
	if status == http.StatusInternalServerError {
		resp.Error.Message = "internal error"
	} else {
		resp.Error.Message = errors.UserMessage(err)
	}
	writeJSON(w, status, resp)
}

// decodeJSON reads a request body into v, rejecting unknown fields so
// typos in option names fail loudly instead of silently rendering with
// defaults.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "parse request body")
	}
	return nil
}
