// Package handlers exposes the HTTP surface: profiles, vocabulary
// packs, and the run lifecycle with its action envelope.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// writeJSON encodes a response body with the given status.
func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, body interface{}) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

// writeError sends the standard error envelope.
func writeError(w http.ResponseWriter, logger *slog.Logger, status int, msg string) {
	writeJSON(w, logger, status, ErrorResponse{Error: msg})
}
