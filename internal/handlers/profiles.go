package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/jwebster45206/spellspire/pkg/actor"
	"github.com/jwebster45206/spellspire/pkg/state"
	"github.com/jwebster45206/spellspire/pkg/storage"
)

// unlockCosts prices the sanctum upgrades in shard currency.
var unlockCosts = map[string]int{
	actor.UnlockBonusHP:      100,
	actor.UnlockBonusGold:    150,
	actor.UnlockBonusStr:     200,
	actor.UnlockBonusRevive:  300,
	actor.UnlockBonusEnergy:  500,
	actor.UnlockShopDiscount: 250,
}

type ProfileHandler struct {
	storage storage.Storage
	logger  *slog.Logger
}

func NewProfileHandler(storage storage.Storage, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{
		storage: storage,
		logger:  logger,
	}
}

// ServeHTTP handles profile operations.
// Routes:
// POST /v1/profiles                - Create profile (limit 3)
// GET /v1/profiles                 - List profiles
// GET /v1/profiles/{id}            - Read profile
// DELETE /v1/profiles/{id}         - Delete profile
// POST /v1/profiles/{id}/unlocks   - Purchase a sanctum unlock
func (h *ProfileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/profiles"), "/")
	parts := []string{}
	if path != "" {
		parts = strings.Split(path, "/")
	}

	switch {
	case len(parts) == 0 && r.Method == http.MethodPost:
		h.handleCreate(w, r)
	case len(parts) == 0 && r.Method == http.MethodGet:
		h.handleList(w, r)
	case len(parts) == 1 && r.Method == http.MethodGet:
		h.handleRead(w, r, parts[0])
	case len(parts) == 1 && r.Method == http.MethodDelete:
		h.handleDelete(w, r, parts[0])
	case len(parts) == 2 && parts[1] == "unlocks" && r.Method == http.MethodPost:
		h.handleUnlock(w, r, parts[0])
	default:
		h.logger.Warn("Method not allowed for profile endpoint", "method", r.Method, "path", r.URL.Path)
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

type CreateProfileRequest struct {
	Name string `json:"name"`
}

func (h *ProfileHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("Invalid JSON in request body", "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	existing, err := h.storage.ListProfiles(r.Context())
	if err != nil {
		h.logger.Error("Failed to list profiles", "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to list profiles")
		return
	}
	if len(existing) >= state.MaxProfiles {
		writeError(w, h.logger, http.StatusBadRequest, "Max profiles reached")
		return
	}

	p := state.NewProfile(req.Name, time.Now())
	if err := h.storage.SaveProfile(r.Context(), p); err != nil {
		h.logger.Error("Failed to save profile", "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to create profile")
		return
	}

	h.logger.Debug("Profile created", "id", p.ID, "name", p.Name)
	writeJSON(w, h.logger, http.StatusCreated, p)
}

func (h *ProfileHandler) handleList(w http.ResponseWriter, r *http.Request) {
	profiles, err := h.storage.ListProfiles(r.Context())
	if err != nil {
		h.logger.Error("Failed to list profiles", "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to list profiles")
		return
	}
	writeJSON(w, h.logger, http.StatusOK, profiles)
}

func (h *ProfileHandler) handleRead(w http.ResponseWriter, r *http.Request, id string) {
	p, err := h.storage.LoadProfile(r.Context(), id)
	if err != nil {
		h.logger.Error("Failed to load profile", "error", err, "id", id)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to load profile")
		return
	}
	if p == nil {
		writeError(w, h.logger, http.StatusNotFound, "Profile not found")
		return
	}
	writeJSON(w, h.logger, http.StatusOK, p)
}

func (h *ProfileHandler) handleDelete(w http.ResponseWriter, r *http.Request, id string) {
	if err := h.storage.DeleteProfile(r.Context(), id); err != nil {
		h.logger.Error("Failed to delete profile", "error", err, "id", id)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to delete profile")
		return
	}
	h.logger.Debug("Profile deleted", "id", id)
	w.WriteHeader(http.StatusNoContent)
}

type UnlockRequest struct {
	UnlockID string `json:"unlockId"`
}

func (h *ProfileHandler) handleUnlock(w http.ResponseWriter, r *http.Request, id string) {
	var req UnlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	cost, ok := unlockCosts[req.UnlockID]
	if !ok {
		writeError(w, h.logger, http.StatusBadRequest, "Unknown unlock: "+req.UnlockID)
		return
	}

	p, err := h.storage.LoadProfile(r.Context(), id)
	if err != nil {
		h.logger.Error("Failed to load profile", "error", err, "id", id)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to load profile")
		return
	}
	if p == nil {
		writeError(w, h.logger, http.StatusNotFound, "Profile not found")
		return
	}

	for _, u := range p.Unlocks {
		if u == req.UnlockID {
			writeError(w, h.logger, http.StatusBadRequest, "Unlock already owned")
			return
		}
	}
	if p.Currency < cost {
		writeError(w, h.logger, http.StatusBadRequest, "Not enough shards")
		return
	}

	p.Currency -= cost
	p.Unlocks = append(p.Unlocks, req.UnlockID)

	if err := h.storage.SaveProfile(r.Context(), p); err != nil {
		h.logger.Error("Failed to save profile", "error", err, "id", id)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to save profile")
		return
	}
	writeJSON(w, h.logger, http.StatusOK, p)
}
