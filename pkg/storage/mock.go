package storage

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/jwebster45206/spellspire/pkg/state"
	"github.com/jwebster45206/spellspire/pkg/vocab"
)

// MockStorage is an in-memory implementation of Storage for testing.
type MockStorage struct {
	mu        sync.RWMutex
	profiles  map[string]*state.Profile
	runs      map[uuid.UUID]*state.RunState
	packs     map[string]*vocab.Pack
	pingError error
}

// Ensure MockStorage implements Storage interface
var _ Storage = (*MockStorage)(nil)

// NewMockStorage creates a new mock storage
func NewMockStorage() *MockStorage {
	return &MockStorage{
		profiles: make(map[string]*state.Profile),
		runs:     make(map[uuid.UUID]*state.RunState),
		packs:    make(map[string]*vocab.Pack),
	}
}

// SetPingError configures the mock to fail on ping with the given error
func (m *MockStorage) SetPingError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pingError = err
}

// AddPack seeds a vocabulary pack into the mock.
func (m *MockStorage) AddPack(p *vocab.Pack) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.packs[p.ID] = p
}

// Ping mocks storage ping
func (m *MockStorage) Ping(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pingError
}

// Close mocks storage close
func (m *MockStorage) Close() error {
	return nil
}

// SaveProfile mocks saving a profile
func (m *MockStorage) SaveProfile(ctx context.Context, p *state.Profile) error {
	if p == nil {
		return errors.New("profile cannot be nil")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[p.ID] = p
	return nil
}

// LoadProfile mocks loading a profile. Returns nil when not found.
func (m *MockStorage) LoadProfile(ctx context.Context, id string) (*state.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.profiles[id], nil
}

// ListProfiles mocks listing all profiles
func (m *MockStorage) ListProfiles(ctx context.Context) ([]*state.Profile, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*state.Profile, 0, len(m.profiles))
	for _, p := range m.profiles {
		out = append(out, p)
	}
	return out, nil
}

// DeleteProfile mocks deleting a profile
func (m *MockStorage) DeleteProfile(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.profiles, id)
	return nil
}

// SaveRunState mocks caching a run
func (m *MockStorage) SaveRunState(ctx context.Context, id uuid.UUID, rs *state.RunState) error {
	if rs == nil {
		return errors.New("run state cannot be nil")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs[id] = rs
	return nil
}

// LoadRunState mocks loading a cached run. Returns nil when not found.
func (m *MockStorage) LoadRunState(ctx context.Context, id uuid.UUID) (*state.RunState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.runs[id], nil
}

// DeleteRunState mocks dropping a cached run
func (m *MockStorage) DeleteRunState(ctx context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.runs, id)
	return nil
}

// ListPacks mocks listing pack ids
func (m *MockStorage) ListPacks(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.packs))
	for id := range m.packs {
		out = append(out, id)
	}
	return out, nil
}

// GetPack mocks loading a pack
func (m *MockStorage) GetPack(ctx context.Context, id string) (*vocab.Pack, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.packs[id]
	if !ok {
		return nil, errors.New("pack not found: " + id)
	}
	return p, nil
}
