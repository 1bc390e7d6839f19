package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/jwebster45206/spellspire/pkg/state"
	"github.com/jwebster45206/spellspire/pkg/storage"
	"github.com/jwebster45206/spellspire/pkg/vocab"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testPack() *vocab.Pack {
	return &vocab.Pack{
		ID:          "scholar",
		Name:        "Scholar's Primer",
		Description: "Words for the studious.",
		Words: []vocab.Vocabulary{
			vocab.New("cat", "/kæt/", "a small feline", vocab.DifficultyEasy),
			vocab.New("dog", "/dɔːg/", "a loyal companion", vocab.DifficultyEasy),
			vocab.New("sun", "/sʌn/", "the star above", vocab.DifficultyEasy),
			vocab.New("fire", "/ˈfaɪər/", "burning flame", vocab.DifficultyEasy),
			vocab.New("stone", "/stoʊn/", "hard mineral matter", vocab.DifficultyMedium),
			vocab.New("castle", "/ˈkæsəl/", "a fortified home", vocab.DifficultyMedium),
			vocab.New("wizard", "/ˈwɪzərd/", "a practitioner of magic", vocab.DifficultyMedium),
			vocab.New("mystery", "/ˈmɪstəri/", "something unexplained", vocab.DifficultyMedium),
			vocab.New("adventure", "/ədˈvɛntʃər/", "an exciting journey", vocab.DifficultyLong),
			vocab.New("knowledge", "/ˈnɒlɪdʒ/", "what is known", vocab.DifficultyLong),
			vocab.New("labyrinth", "/ˈlæbərɪnθ/", "a maze of passages", vocab.DifficultyLong),
			vocab.New("phenomenon", "/fəˈnɒmɪnən/", "an observable event", vocab.DifficultyLong),
		},
	}
}

// setupRun seeds a profile and pack, starts a run through the handler,
// and returns the cached run pointer so tests can stage state directly.
func setupRun(t *testing.T) (*storage.MockStorage, *RunHandler, *state.Profile, *state.RunState) {
	t.Helper()

	mock := storage.NewMockStorage()
	mock.AddPack(testPack())
	h := NewRunHandler(mock, testLogger())

	p := state.NewProfile("Tester", time.Now())
	if err := mock.SaveProfile(context.Background(), p); err != nil {
		t.Fatalf("Failed to seed profile: %v", err)
	}

	body := fmt.Sprintf(`{"profileId":%q,"packId":"scholar","saveName":"test run"}`, p.ID)
	req := httptest.NewRequest(http.MethodPost, "/v1/runs", strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("Expected status 201 creating run, got %d. Body: %s", rr.Code, rr.Body.String())
	}

	var created state.RunState
	if err := json.NewDecoder(rr.Body).Decode(&created); err != nil {
		t.Fatalf("Failed to decode run: %v", err)
	}
	run, err := mock.LoadRunState(context.Background(), created.ID)
	if err != nil || run == nil {
		t.Fatalf("Run was not cached after create: %v", err)
	}
	return mock, h, p, run
}

// postAction sends one action envelope to the run action endpoint.
func postAction(t *testing.T, h *RunHandler, run *state.RunState, body string) (*httptest.ResponseRecorder, *ActionResponse) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/v1/runs/"+run.ID.String()+"/action", strings.NewReader(body))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	var resp ActionResponse
	if rr.Code == http.StatusOK {
		if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
			t.Fatalf("Failed to decode action response: %v", err)
		}
	}
	return rr, &resp
}
