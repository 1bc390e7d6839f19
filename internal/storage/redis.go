package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jwebster45206/spellspire/pkg/state"
	"github.com/jwebster45206/spellspire/pkg/storage"
	"github.com/jwebster45206/spellspire/pkg/vocab"
)

const (
	profileKeyPrefix = "profile:"
	profileIndexKey  = "profiles"
	runKeyPrefix     = "run:"

	// Live runs expire from the cache; durable saves live in the
	// profile's save slots.
	runTTL = 24 * time.Hour
)

// RedisStorage implements the Storage interface using Redis for
// profiles and the run cache, and the filesystem for vocabulary packs.
type RedisStorage struct {
	client  *redis.Client
	logger  *slog.Logger
	dataDir string
}

// Ensure RedisStorage implements Storage interface
var _ storage.Storage = (*RedisStorage)(nil)

// NewRedisStorage creates a new Redis storage instance
func NewRedisStorage(redisURL string, dataDir string, logger *slog.Logger) *RedisStorage {
	rdb := redis.NewClient(&redis.Options{
		Addr: redisURL,
	})

	if dataDir == "" {
		dataDir = "./data"
	}

	return &RedisStorage{
		client:  rdb,
		logger:  logger,
		dataDir: dataDir,
	}
}

// Health and lifecycle methods

func (r *RedisStorage) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisStorage) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	r.logger.Info("Redis connection closed")
	return nil
}

// WaitForConnection waits for Redis to become available (used during startup)
func (r *RedisStorage) WaitForConnection(ctx context.Context) error {
	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		if err := r.Ping(ctx); err != nil {
			r.logger.Debug("Redis not ready yet", "error", err, "attempt", i+1)

			select {
			case <-ctx.Done():
				return fmt.Errorf("context cancelled while waiting for redis: %w", ctx.Err())
			case <-time.After(retryDelay):
				continue
			}
		}

		r.logger.Info("Redis connection established")
		return nil
	}

	return fmt.Errorf("redis did not become available after %d attempts", maxRetries)
}

// Profile operations (Redis-backed)

func (r *RedisStorage) SaveProfile(ctx context.Context, p *state.Profile) error {
	data, err := json.Marshal(p)
	if err != nil {
		r.logger.Error("Failed to marshal profile", "id", p.ID, "error", err)
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	if err := r.client.Set(ctx, profileKeyPrefix+p.ID, string(data), 0).Err(); err != nil {
		r.logger.Error("Failed to save profile", "id", p.ID, "error", err)
		return fmt.Errorf("failed to save profile: %w", err)
	}
	if err := r.client.SAdd(ctx, profileIndexKey, p.ID).Err(); err != nil {
		return fmt.Errorf("failed to index profile: %w", err)
	}
	return nil
}

func (r *RedisStorage) LoadProfile(ctx context.Context, id string) (*state.Profile, error) {
	cmd := r.client.Get(ctx, profileKeyPrefix+id)
	if err := cmd.Err(); err != nil {
		if err == redis.Nil {
			return nil, nil // Return nil for not found
		}
		r.logger.Error("Failed to load profile", "id", id, "error", err)
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	var p state.Profile
	if err := json.Unmarshal([]byte(cmd.Val()), &p); err != nil {
		r.logger.Error("Failed to unmarshal profile", "id", id, "error", err)
		return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
	}

	// Older blobs may predate currency, unlocks, actsCleared, or slots.
	if p.Migrate() {
		if err := r.SaveProfile(ctx, &p); err != nil {
			return nil, err
		}
	}
	return &p, nil
}

func (r *RedisStorage) ListProfiles(ctx context.Context) ([]*state.Profile, error) {
	ids, err := r.client.SMembers(ctx, profileIndexKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}

	profiles := make([]*state.Profile, 0, len(ids))
	for _, id := range ids {
		p, err := r.LoadProfile(ctx, id)
		if err != nil {
			return nil, err
		}
		if p == nil {
			// Index entry without a blob; drop it.
			r.client.SRem(ctx, profileIndexKey, id)
			continue
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

func (r *RedisStorage) DeleteProfile(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, profileKeyPrefix+id).Err(); err != nil {
		r.logger.Error("Failed to delete profile", "id", id, "error", err)
		return fmt.Errorf("failed to delete profile: %w", err)
	}
	if err := r.client.SRem(ctx, profileIndexKey, id).Err(); err != nil {
		return fmt.Errorf("failed to unindex profile: %w", err)
	}
	return nil
}

// Run state cache (Redis-backed, expiring)

func (r *RedisStorage) SaveRunState(ctx context.Context, id uuid.UUID, rs *state.RunState) error {
	rs.SavedAt = time.Now().UnixMilli()

	data, err := json.Marshal(rs)
	if err != nil {
		r.logger.Error("Failed to marshal run state", "uuid", id, "error", err)
		return fmt.Errorf("failed to marshal run state: %w", err)
	}

	if err := r.client.Set(ctx, runKeyPrefix+id.String(), string(data), runTTL).Err(); err != nil {
		r.logger.Error("Failed to save run state", "uuid", id, "error", err)
		return fmt.Errorf("failed to save run state: %w", err)
	}
	return nil
}

func (r *RedisStorage) LoadRunState(ctx context.Context, id uuid.UUID) (*state.RunState, error) {
	cmd := r.client.Get(ctx, runKeyPrefix+id.String())
	if err := cmd.Err(); err != nil {
		if err == redis.Nil {
			r.logger.Warn("Run state not found", "uuid", id)
			return nil, nil // Return nil for not found
		}
		r.logger.Error("Failed to load run state", "uuid", id, "error", err)
		return nil, fmt.Errorf("failed to load run state: %w", err)
	}

	var rs state.RunState
	if err := json.Unmarshal([]byte(cmd.Val()), &rs); err != nil {
		r.logger.Error("Failed to unmarshal run state", "uuid", id, "error", err)
		return nil, fmt.Errorf("failed to unmarshal run state: %w", err)
	}
	return &rs, nil
}

func (r *RedisStorage) DeleteRunState(ctx context.Context, id uuid.UUID) error {
	if err := r.client.Del(ctx, runKeyPrefix+id.String()).Err(); err != nil {
		r.logger.Error("Failed to delete run state", "uuid", id, "error", err)
		return fmt.Errorf("failed to delete run state: %w", err)
	}
	return nil
}

// Vocabulary pack operations (filesystem-backed)

func (r *RedisStorage) ListPacks(ctx context.Context) ([]string, error) {
	packsPath := filepath.Join(r.dataDir, "packs")

	entries, err := os.ReadDir(packsPath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to read packs directory: %w", err)
	}

	var packIDs []string
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == ".json" {
			packIDs = append(packIDs, strings.TrimSuffix(entry.Name(), ".json"))
		}
	}
	return packIDs, nil
}

func (r *RedisStorage) GetPack(ctx context.Context, id string) (*vocab.Pack, error) {
	path := filepath.Join(r.dataDir, "packs", id+".json")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("pack not found: %s", id)
		}
		return nil, fmt.Errorf("failed to read pack file %s: %w", path, err)
	}

	var p vocab.Pack
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse pack JSON from %s: %w", path, err)
	}
	p.ID = id // Filename overrides any id in the JSON

	return &p, nil
}
