package http

import (
	"encoding/json"
	"net/http"

	"toolshare-backend/internal/apperr"
	"toolshare-backend/internal/logger"
)

// errorResponse is the wire shape of every failure: a human message
// plus a machine reason code, optionally with a suggested remedy.
type errorResponse struct {
	Error  string `json:"error"`
	Code   string `json:"code"`
	Remedy string `json:"remedy,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			logger.Error("Failed to encode response", "error", err)
		}
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := apperr.HTTPStatus(err)
	resp := errorResponse{Error: err.Error(), Code: apperr.CodeOf(err)}
	if e := apperr.From(err); e != nil {
		resp.Error = e.Message
		resp.Remedy = e.Remedy
	} else {
		// Never leak internals on unclassified errors.
		resp.Error = "internal server error"
		logger.Error("Unclassified handler error", "error", err)
	}
	writeJSON(w, status, resp)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, apperr.Validation("invalid_body", "request body is not valid JSON"))
		return false
	}
	return true
}
