// internal/matching/cache.go
// Redis-backed candidate snapshot cache. The full candidate set is kept
// under one key and reloaded wholesale on a miss; per-user keys serve
// detail lookups. All values are JSON.

package matching

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/unimate/unimate-backend/internal/common/logger"
)

const (
	candidateSetKey    = "match:candidates:all"
	candidateKeyPrefix = "match:candidate:"
)

// ErrCacheMiss signals that a key is absent from the cache.
var ErrCacheMiss = errors.New("matching: cache miss")

// kvStore is the minimal key/value surface the cache needs. Satisfied by
// redisKV in production and by an in-memory map in tests.
type kvStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

type redisKV struct {
	client *redis.Client
}

func (r *redisKV) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", ErrCacheMiss
	}
	return val, err
}

func (r *redisKV) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *redisKV) Del(ctx context.Context, keys ...string) error {
	return r.client.Del(ctx, keys...).Err()
}

// snapshotLoader feeds the cache from the database on misses.
type snapshotLoader interface {
	LoadAllSnapshots(ctx context.Context) ([]ProfileSnapshot, error)
}

// CandidateCache is a read-through cache over the full candidate set.
// Concurrent misses collapse into a single database reload.
type CandidateCache struct {
	kv      kvStore
	loader  snapshotLoader
	log     *logger.Logger
	setTTL  time.Duration
	itemTTL time.Duration

	reloadMu sync.Mutex
}

// NewCandidateCache builds a cache over the given Redis client.
func NewCandidateCache(client *redis.Client, loader snapshotLoader, log *logger.Logger, setTTL, itemTTL time.Duration) *CandidateCache {
	return newCandidateCache(&redisKV{client: client}, loader, log, setTTL, itemTTL)
}

func newCandidateCache(kv kvStore, loader snapshotLoader, log *logger.Logger, setTTL, itemTTL time.Duration) *CandidateCache {
	return &CandidateCache{
		kv:      kv,
		loader:  loader,
		log:     log,
		setTTL:  setTTL,
		itemTTL: itemTTL,
	}
}

// GetAll returns every cached candidate snapshot, reloading the full set
// from the database when the set key is absent.
func (c *CandidateCache) GetAll(ctx context.Context) ([]ProfileSnapshot, error) {
	raw, err := c.kv.Get(ctx, candidateSetKey)
	if err == nil {
		var snaps []ProfileSnapshot
		if err := json.Unmarshal([]byte(raw), &snaps); err == nil {
			recordCacheRead("hit")
			return snaps, nil
		}
		// Corrupt payload: drop it and fall through to a reload.
		c.log.Warn("discarding unreadable candidate set", "key", candidateSetKey)
		if delErr := c.kv.Del(ctx, candidateSetKey); delErr != nil {
			c.log.Warn("failed to drop candidate set key", "error", delErr)
		}
	} else if !errors.Is(err, ErrCacheMiss) {
		return nil, fmt.Errorf("read candidate set: %w", err)
	}
	recordCacheRead("miss")
	return c.reload(ctx)
}

// GetUser returns one candidate snapshot, populating the per-user key
// from the full set on a miss. Returns ErrCacheMiss when the user is not
// a candidate at all.
func (c *CandidateCache) GetUser(ctx context.Context, userID int64) (*ProfileSnapshot, error) {
	key := userKey(userID)
	raw, err := c.kv.Get(ctx, key)
	if err == nil {
		var snap ProfileSnapshot
		if err := json.Unmarshal([]byte(raw), &snap); err == nil {
			return &snap, nil
		}
		c.log.Warn("discarding unreadable candidate entry", "key", key)
	} else if !errors.Is(err, ErrCacheMiss) {
		return nil, fmt.Errorf("read candidate %d: %w", userID, err)
	}

	snaps, err := c.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range snaps {
		if snaps[i].UserID == userID {
			c.storeUser(ctx, &snaps[i])
			return &snaps[i], nil
		}
	}
	return nil, ErrCacheMiss
}

// InvalidateUser drops both the per-user key and the full set key so the
// next read rebuilds from the database.
func (c *CandidateCache) InvalidateUser(ctx context.Context, userID int64) error {
	if err := c.kv.Del(ctx, userKey(userID), candidateSetKey); err != nil {
		return fmt.Errorf("invalidate candidate %d: %w", userID, err)
	}
	return nil
}

// InvalidateAll drops the full set key.
func (c *CandidateCache) InvalidateAll(ctx context.Context) error {
	if err := c.kv.Del(ctx, candidateSetKey); err != nil {
		return fmt.Errorf("invalidate candidate set: %w", err)
	}
	return nil
}

// WarmUp preloads the candidate set. Failures are logged, never fatal:
// the cache repopulates itself on first read.
func (c *CandidateCache) WarmUp(ctx context.Context) {
	snaps, err := c.reload(ctx)
	if err != nil {
		c.log.Warn("candidate cache warm-up failed", "error", err)
		return
	}
	c.log.Info("candidate cache warmed", "candidates", len(snaps))
}

// reload fetches the full set from the database and rewrites the set
// key. Serialized so a thundering herd of misses issues one query.
func (c *CandidateCache) reload(ctx context.Context) ([]ProfileSnapshot, error) {
	c.reloadMu.Lock()
	defer c.reloadMu.Unlock()

	// Another caller may have finished the reload while we waited.
	if raw, err := c.kv.Get(ctx, candidateSetKey); err == nil {
		var snaps []ProfileSnapshot
		if err := json.Unmarshal([]byte(raw), &snaps); err == nil {
			return snaps, nil
		}
	}

	snaps, err := c.loader.LoadAllSnapshots(ctx)
	if err != nil {
		return nil, fmt.Errorf("load candidate snapshots: %w", err)
	}

	payload, err := json.Marshal(snaps)
	if err != nil {
		return nil, fmt.Errorf("encode candidate set: %w", err)
	}
	if err := c.kv.Set(ctx, candidateSetKey, string(payload), c.setTTL); err != nil {
		// Serving the data matters more than caching it.
		c.log.Warn("failed to write candidate set", "error", err)
	}
	return snaps, nil
}

func (c *CandidateCache) storeUser(ctx context.Context, snap *ProfileSnapshot) {
	payload, err := json.Marshal(snap)
	if err != nil {
		c.log.Warn("failed to encode candidate entry", "user_id", snap.UserID, "error", err)
		return
	}
	if err := c.kv.Set(ctx, userKey(snap.UserID), string(payload), c.itemTTL); err != nil {
		c.log.Warn("failed to write candidate entry", "user_id", snap.UserID, "error", err)
	}
}

func userKey(userID int64) string {
	return fmt.Sprintf("%s%d", candidateKeyPrefix, userID)
}
