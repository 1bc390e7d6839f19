package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"

	"github.com/google/uuid"
	"github.com/jwebster45206/spellspire/pkg/combat"
	"github.com/jwebster45206/spellspire/pkg/event"
	"github.com/jwebster45206/spellspire/pkg/state"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// ActionRequest matches the API's action envelope.
type ActionRequest struct {
	Type           string `json:"type"`
	NodeID         string `json:"nodeId,omitempty"`
	UniqueID       string `json:"uniqueId,omitempty"`
	Attempt        string `json:"attempt,omitempty"`
	UsedHint       bool   `json:"usedHint,omitempty"`
	ChoiceID       string `json:"choiceId,omitempty"`
	ItemID         string `json:"itemId,omitempty"`
	RemoveUniqueID string `json:"removeUniqueId,omitempty"`
}

// ActionResponse matches the API's action result.
type ActionResponse struct {
	Run     *state.RunState    `json:"run"`
	Play    *combat.PlayResult `json:"play,omitempty"`
	Event   *event.Result      `json:"event,omitempty"`
	Message string             `json:"message,omitempty"`
}

func testConnection(client *http.Client, baseURL string) bool {
	resp, err := client.Get(baseURL + "/health")
	if err != nil {
		return false
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()
	return resp.StatusCode == http.StatusOK
}

func decodeError(statusCode int, body []byte) error {
	var errorResp ErrorResponse
	if err := json.Unmarshal(body, &errorResp); err != nil {
		return fmt.Errorf("API returned status %d: %s", statusCode, string(body))
	}
	return fmt.Errorf("%s", errorResp.Error)
}

func listProfiles(client *http.Client, baseURL string) ([]*state.Profile, error) {
	resp, err := client.Get(baseURL + "/v1/profiles")
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp.StatusCode, body)
	}

	var profiles []*state.Profile
	if err := json.Unmarshal(body, &profiles); err != nil {
		return nil, fmt.Errorf("failed to parse profiles response: %w", err)
	}
	sort.Slice(profiles, func(i, j int) bool { return profiles[i].Name < profiles[j].Name })
	return profiles, nil
}

func createProfile(client *http.Client, baseURL, name string) (*state.Profile, error) {
	jsonData, err := json.Marshal(map[string]string{"name": name})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := client.Post(baseURL+"/v1/profiles", "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusCreated {
		return nil, decodeError(resp.StatusCode, body)
	}

	var p state.Profile
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("failed to parse profile response: %w", err)
	}
	return &p, nil
}

func listPacks(client *http.Client, baseURL string) ([]string, error) {
	resp, err := client.Get(baseURL + "/v1/packs")
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp.StatusCode, body)
	}

	var ids []string
	if err := json.Unmarshal(body, &ids); err != nil {
		return nil, fmt.Errorf("failed to parse packs response: %w", err)
	}
	sort.Strings(ids)
	return ids, nil
}

// CreateRunRequest matches the API request structure.
type CreateRunRequest struct {
	ProfileID   string `json:"profileId"`
	PackID      string `json:"packId"`
	SaveName    string `json:"saveName"`
	CustomWords string `json:"customWords,omitempty"`
}

func createRun(client *http.Client, baseURL string, req CreateRunRequest) (*state.RunState, error) {
	jsonData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := client.Post(baseURL+"/v1/runs", "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusCreated {
		return nil, decodeError(resp.StatusCode, body)
	}

	var run state.RunState
	if err := json.Unmarshal(body, &run); err != nil {
		return nil, fmt.Errorf("failed to parse run response: %w", err)
	}
	return &run, nil
}

func getRun(client *http.Client, baseURL string, runID uuid.UUID) (*state.RunState, error) {
	resp, err := client.Get(fmt.Sprintf("%s/v1/runs/%s", baseURL, runID))
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp.StatusCode, body)
	}

	var run state.RunState
	if err := json.Unmarshal(body, &run); err != nil {
		return nil, fmt.Errorf("failed to parse run response: %w", err)
	}
	return &run, nil
}

func doAction(client *http.Client, baseURL string, runID uuid.UUID, req ActionRequest) (*ActionResponse, error) {
	jsonData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	resp, err := client.Post(
		fmt.Sprintf("%s/v1/runs/%s/action", baseURL, runID),
		"application/json",
		bytes.NewBuffer(jsonData),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close() // Ignore error in defer
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, decodeError(resp.StatusCode, body)
	}

	var actionResp ActionResponse
	if err := json.Unmarshal(body, &actionResp); err != nil {
		return nil, fmt.Errorf("failed to parse action response: %w", err)
	}
	return &actionResp, nil
}
