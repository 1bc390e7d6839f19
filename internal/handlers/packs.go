package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/jwebster45206/spellspire/pkg/storage"
)

type PackHandler struct {
	storage storage.Storage
	logger  *slog.Logger
}

func NewPackHandler(storage storage.Storage, logger *slog.Logger) *PackHandler {
	return &PackHandler{
		storage: storage,
		logger:  logger,
	}
}

// ServeHTTP handles vocabulary pack reads.
// Routes:
// GET /v1/packs       - List pack ids
// GET /v1/packs/{id}  - Read a pack with its word list
func (h *PackHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if r.Method != http.MethodGet {
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed. Supported methods: GET")
		return
	}

	id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/packs"), "/")
	if id == "" {
		ids, err := h.storage.ListPacks(r.Context())
		if err != nil {
			h.logger.Error("Failed to list packs", "error", err)
			writeError(w, h.logger, http.StatusInternalServerError, "Failed to list packs")
			return
		}
		writeJSON(w, h.logger, http.StatusOK, ids)
		return
	}

	pack, err := h.storage.GetPack(r.Context(), id)
	if err != nil {
		h.logger.Warn("Failed to load pack", "id", id, "error", err)
		writeError(w, h.logger, http.StatusNotFound, "Pack not found: "+id)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, pack)
}
