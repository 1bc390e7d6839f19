package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jwebster45206/spellspire/pkg/deck"
	"github.com/jwebster45206/spellspire/pkg/state"
	"github.com/jwebster45206/spellspire/pkg/vocab"
)

func TestRunHandler_Create(t *testing.T) {
	mock, _, p, run := setupRun(t)

	if run.Phase != state.PhaseMap {
		t.Errorf("Expected MAP phase, got %s", run.Phase)
	}
	if run.Act != 1 {
		t.Errorf("Expected act 1, got %d", run.Act)
	}
	if len(run.Deck) != deck.SessionDeckSize {
		t.Errorf("Expected %d cards, got %d", deck.SessionDeckSize, len(run.Deck))
	}
	if run.Player == nil || run.Player.HP != run.Player.MaxHP {
		t.Error("Expected a fresh full-health player")
	}
	if len(run.Map) == 0 {
		t.Error("Expected a generated map")
	}

	saved, _ := mock.LoadProfile(context.Background(), p.ID)
	if saved.Stats.RunsStarted != 1 {
		t.Errorf("Expected runsStarted 1, got %d", saved.Stats.RunsStarted)
	}
	if saved.SaveSlots[state.AutoSaveSlot] == nil {
		t.Error("Expected autosave in slot 0")
	}
}

func TestRunHandler_CreateCustomWords(t *testing.T) {
	mock, h, p, _ := setupRun(t)
	_ = mock

	body := fmt.Sprintf(`{"profileId":%q,"saveName":"custom","customWords":"dragon\nwizardry\ncastle, a fortified home"}`, p.ID)
	req := httptest.NewRequest(http.MethodPost, "/v1/runs", strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d. Body: %s", rr.Code, rr.Body.String())
	}
	var run state.RunState
	if err := json.NewDecoder(rr.Body).Decode(&run); err != nil {
		t.Fatalf("Failed to decode run: %v", err)
	}
	if run.VocabPackID != vocab.CustomPackID {
		t.Errorf("Expected custom pack id, got %s", run.VocabPackID)
	}
	if len(run.CustomVocabList) != 3 {
		t.Errorf("Expected 3 custom words, got %d", len(run.CustomVocabList))
	}
	if run.CustomVocabList[2].Meaning != "a fortified home" {
		t.Errorf("Expected parsed meaning, got %q", run.CustomVocabList[2].Meaning)
	}
}

func TestRunHandler_CreateUnknownPack(t *testing.T) {
	_, h, p, _ := setupRun(t)

	body := fmt.Sprintf(`{"profileId":%q,"packId":"atlantis","saveName":"x"}`, p.ID)
	req := httptest.NewRequest(http.MethodPost, "/v1/runs", strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 for unknown pack, got %d", rr.Code)
	}
}

func TestRunHandler_Read(t *testing.T) {
	_, h, _, run := setupRun(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/runs/"+run.ID.String(), nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}

	var loaded state.RunState
	if err := json.NewDecoder(rr.Body).Decode(&loaded); err != nil {
		t.Fatalf("Failed to decode run: %v", err)
	}
	if loaded.ID != run.ID {
		t.Errorf("Expected run %s, got %s", run.ID, loaded.ID)
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/runs/00000000-0000-0000-0000-000000000001", nil)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 for unknown run, got %d", rr.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/v1/runs/not-a-uuid", nil)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for malformed id, got %d", rr.Code)
	}
}

func TestRunHandler_SaveAndLoadSlot(t *testing.T) {
	mock, h, p, run := setupRun(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/runs/"+run.ID.String()+"/save", strings.NewReader(`{"slot":2}`))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200 saving, got %d. Body: %s", rr.Code, rr.Body.String())
	}

	saved, _ := mock.LoadProfile(context.Background(), p.ID)
	if saved.SaveSlots[2] == nil {
		t.Fatal("Expected run in slot 2")
	}

	body := fmt.Sprintf(`{"profileId":%q,"slot":2}`, p.ID)
	req = httptest.NewRequest(http.MethodPost, "/v1/runs/load", strings.NewReader(body))
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200 loading, got %d. Body: %s", rr.Code, rr.Body.String())
	}

	var loaded state.RunState
	if err := json.NewDecoder(rr.Body).Decode(&loaded); err != nil {
		t.Fatalf("Failed to decode run: %v", err)
	}
	if loaded.ID != run.ID {
		t.Errorf("Expected run %s from slot, got %s", run.ID, loaded.ID)
	}

	// Empty slot is a 404.
	body = fmt.Sprintf(`{"profileId":%q,"slot":4}`, p.ID)
	req = httptest.NewRequest(http.MethodPost, "/v1/runs/load", strings.NewReader(body))
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 for empty slot, got %d", rr.Code)
	}
}

func TestRunHandler_SaveSlotOutOfRange(t *testing.T) {
	_, h, _, run := setupRun(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/runs/"+run.ID.String()+"/save", strings.NewReader(`{"slot":9}`))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for slot 9, got %d", rr.Code)
	}
}

func TestRunHandler_Delete(t *testing.T) {
	mock, h, _, run := setupRun(t)

	req := httptest.NewRequest(http.MethodDelete, "/v1/runs/"+run.ID.String(), nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("Expected status 204, got %d", rr.Code)
	}

	cached, _ := mock.LoadRunState(context.Background(), run.ID)
	if cached != nil {
		t.Error("Expected run cache cleared after delete")
	}
}
