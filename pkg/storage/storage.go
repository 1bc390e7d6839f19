package storage

import (
	"context"

	"github.com/google/uuid"
	"github.com/jwebster45206/spellspire/pkg/state"
	"github.com/jwebster45206/spellspire/pkg/vocab"
)

// Storage defines a unified interface for all storage operations:
// profile persistence and the live run cache (Redis) plus vocabulary
// pack loading (filesystem).
type Storage interface {
	// Health and lifecycle
	Ping(ctx context.Context) error
	Close() error

	// Profile operations (Redis-backed)
	SaveProfile(ctx context.Context, p *state.Profile) error
	LoadProfile(ctx context.Context, id string) (*state.Profile, error)
	ListProfiles(ctx context.Context) ([]*state.Profile, error)
	DeleteProfile(ctx context.Context, id string) error

	// Live run cache (Redis-backed, expiring). Durable saves live in
	// the profile's save slots; this holds the run being played.
	SaveRunState(ctx context.Context, id uuid.UUID, rs *state.RunState) error
	LoadRunState(ctx context.Context, id uuid.UUID) (*state.RunState, error)
	DeleteRunState(ctx context.Context, id uuid.UUID) error

	// Vocabulary pack operations (filesystem-backed)
	ListPacks(ctx context.Context) ([]string, error)
	GetPack(ctx context.Context, id string) (*vocab.Pack, error)
}
