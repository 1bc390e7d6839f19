package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jwebster45206/spellspire/pkg/state"
	"github.com/jwebster45206/spellspire/pkg/storage"
	"github.com/jwebster45206/spellspire/pkg/vocab"
)

type RunHandler struct {
	storage storage.Storage
	logger  *slog.Logger
}

func NewRunHandler(storage storage.Storage, logger *slog.Logger) *RunHandler {
	return &RunHandler{
		storage: storage,
		logger:  logger,
	}
}

// ServeHTTP handles the run lifecycle.
// Routes:
// POST /v1/runs                - Start a run from a pack or uploaded words
// POST /v1/runs/load           - Load a run from a profile save slot
// GET /v1/runs/{id}            - Read the live run
// DELETE /v1/runs/{id}         - Abandon the live run
// POST /v1/runs/{id}/save      - Save the run into a profile slot
// POST /v1/runs/{id}/action    - Apply a game action
func (h *RunHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/v1/runs"), "/")
	parts := []string{}
	if path != "" {
		parts = strings.Split(path, "/")
	}

	switch {
	case len(parts) == 0 && r.Method == http.MethodPost:
		h.handleCreate(w, r)
	case len(parts) == 1 && parts[0] == "load" && r.Method == http.MethodPost:
		h.handleLoad(w, r)
	case len(parts) == 1 && r.Method == http.MethodGet:
		h.handleRead(w, r, parts[0])
	case len(parts) == 1 && r.Method == http.MethodDelete:
		h.handleDelete(w, r, parts[0])
	case len(parts) == 2 && parts[1] == "save" && r.Method == http.MethodPost:
		h.handleSave(w, r, parts[0])
	case len(parts) == 2 && parts[1] == "action" && r.Method == http.MethodPost:
		h.handleAction(w, r, parts[0])
	default:
		h.logger.Warn("Method not allowed for run endpoint", "method", r.Method, "path", r.URL.Path)
		writeError(w, h.logger, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

type CreateRunRequest struct {
	ProfileID   string `json:"profileId"`
	PackID      string `json:"packId"`
	SaveName    string `json:"saveName"`
	CustomWords string `json:"customWords,omitempty"`
}

func (h *RunHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req CreateRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	p, err := h.storage.LoadProfile(r.Context(), req.ProfileID)
	if err != nil {
		h.logger.Error("Failed to load profile", "error", err, "id", req.ProfileID)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to load profile")
		return
	}
	if p == nil {
		writeError(w, h.logger, http.StatusNotFound, "Profile not found")
		return
	}

	var list []vocab.Vocabulary
	packID := req.PackID
	if req.CustomWords != "" {
		list, err = vocab.ParseWordList([]byte(req.CustomWords))
		if err != nil {
			writeError(w, h.logger, http.StatusBadRequest, "Invalid word list: "+err.Error())
			return
		}
		packID = vocab.CustomPackID
	} else {
		pack, err := h.storage.GetPack(r.Context(), packID)
		if err != nil {
			writeError(w, h.logger, http.StatusNotFound, "Pack not found: "+packID)
			return
		}
		list = p.ApplyMastery(pack.Words)
	}

	now := time.Now()
	rng := rand.New(rand.NewSource(now.UnixNano()))
	run := state.NewRun(p, packID, req.SaveName, list, now, rng.Int63(), rng)
	if packID == vocab.CustomPackID {
		run.CustomVocabList = list
	}

	p.Stats.RunsStarted++
	p.SaveRun(run, state.AutoSaveSlot, now)

	if err := h.storage.SaveRunState(r.Context(), run.ID, run); err != nil {
		h.logger.Error("Failed to cache run state", "error", err, "run_id", run.ID)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to save run")
		return
	}
	if err := h.storage.SaveProfile(r.Context(), p); err != nil {
		h.logger.Error("Failed to save profile", "error", err, "id", p.ID)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to save profile")
		return
	}

	h.logger.Debug("Run started", "run_id", run.ID, "profile_id", p.ID, "pack", packID)
	writeJSON(w, h.logger, http.StatusCreated, run)
}

type LoadRunRequest struct {
	ProfileID string `json:"profileId"`
	Slot      int    `json:"slot"`
}

func (h *RunHandler) handleLoad(w http.ResponseWriter, r *http.Request) {
	var req LoadRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}

	p, err := h.storage.LoadProfile(r.Context(), req.ProfileID)
	if err != nil {
		h.logger.Error("Failed to load profile", "error", err, "id", req.ProfileID)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to load profile")
		return
	}
	if p == nil {
		writeError(w, h.logger, http.StatusNotFound, "Profile not found")
		return
	}

	run, ok := p.SaveSlots[req.Slot]
	if !ok || run == nil {
		writeError(w, h.logger, http.StatusNotFound, "No save in slot")
		return
	}
	run.Rehydrate()

	if err := h.storage.SaveRunState(r.Context(), run.ID, run); err != nil {
		h.logger.Error("Failed to cache run state", "error", err, "run_id", run.ID)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to load run")
		return
	}

	h.logger.Debug("Run loaded from slot", "run_id", run.ID, "profile_id", p.ID, "slot", req.Slot)
	writeJSON(w, h.logger, http.StatusOK, run)
}

func (h *RunHandler) handleRead(w http.ResponseWriter, r *http.Request, rawID string) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid run id")
		return
	}
	run, err := h.storage.LoadRunState(r.Context(), id)
	if err != nil {
		h.logger.Error("Failed to load run state", "error", err, "run_id", id)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to load run")
		return
	}
	if run == nil {
		writeError(w, h.logger, http.StatusNotFound, "Run not found")
		return
	}
	run.Rehydrate()
	writeJSON(w, h.logger, http.StatusOK, run)
}

func (h *RunHandler) handleDelete(w http.ResponseWriter, r *http.Request, rawID string) {
	id, err := uuid.Parse(rawID)
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid run id")
		return
	}
	if err := h.storage.DeleteRunState(r.Context(), id); err != nil {
		h.logger.Error("Failed to delete run state", "error", err, "run_id", id)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to delete run")
		return
	}
	h.logger.Debug("Run deleted", "run_id", id)
	w.WriteHeader(http.StatusNoContent)
}

type SaveRunRequest struct {
	Slot int `json:"slot"`
}

func (h *RunHandler) handleSave(w http.ResponseWriter, r *http.Request, rawID string) {
	var req SaveRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid JSON in request body")
		return
	}
	if req.Slot < state.AutoSaveSlot || req.Slot > state.MaxSaveSlot {
		writeError(w, h.logger, http.StatusBadRequest, "Save slot out of range")
		return
	}

	id, err := uuid.Parse(rawID)
	if err != nil {
		writeError(w, h.logger, http.StatusBadRequest, "Invalid run id")
		return
	}
	run, err := h.storage.LoadRunState(r.Context(), id)
	if err != nil {
		h.logger.Error("Failed to load run state", "error", err, "run_id", id)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to load run")
		return
	}
	if run == nil {
		writeError(w, h.logger, http.StatusNotFound, "Run not found")
		return
	}

	p, err := h.loadRunProfile(r.Context(), run)
	if err != nil {
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to load profile")
		return
	}
	if p == nil {
		writeError(w, h.logger, http.StatusNotFound, "Profile not found")
		return
	}

	now := time.Now()
	run.SavedAt = now.UnixMilli()
	p.SaveRun(run, req.Slot, now)
	if err := h.storage.SaveProfile(r.Context(), p); err != nil {
		h.logger.Error("Failed to save profile", "error", err, "id", p.ID)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to save profile")
		return
	}

	h.logger.Debug("Run saved to slot", "run_id", run.ID, "slot", req.Slot)
	writeJSON(w, h.logger, http.StatusOK, p)
}

func (h *RunHandler) loadRunProfile(ctx context.Context, run *state.RunState) (*state.Profile, error) {
	p, err := h.storage.LoadProfile(ctx, run.ProfileID)
	if err != nil {
		h.logger.Error("Failed to load profile", "error", err, "id", run.ProfileID)
		return nil, err
	}
	return p, nil
}

// vocabList resolves the word list a run plays against: the uploaded
// list for custom runs, otherwise the pack overlaid with the profile's
// saved mastery.
func (h *RunHandler) vocabList(ctx context.Context, run *state.RunState, p *state.Profile) ([]vocab.Vocabulary, error) {
	if run.VocabPackID == vocab.CustomPackID {
		return run.CustomVocabList, nil
	}
	pack, err := h.storage.GetPack(ctx, run.VocabPackID)
	if err != nil {
		return nil, err
	}
	return p.ApplyMastery(pack.Words), nil
}
