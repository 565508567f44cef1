package matching

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/unimate/unimate-backend/internal/common/logger"
)

type fakeKV struct {
	mu   sync.Mutex
	data map[string]string
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: make(map[string]string)}
}

func (f *fakeKV) Get(ctx context.Context, key string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	val, ok := f.data[key]
	if !ok {
		return "", ErrCacheMiss
	}
	return val, nil
}

func (f *fakeKV) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.data[key] = value
	return nil
}

func (f *fakeKV) Del(ctx context.Context, keys ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, key := range keys {
		delete(f.data, key)
	}
	return nil
}

type fakeLoader struct {
	mu    sync.Mutex
	calls int
	snaps []ProfileSnapshot
	err   error
}

func (f *fakeLoader) LoadAllSnapshots(ctx context.Context) ([]ProfileSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.snaps, f.err
}

func (f *fakeLoader) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func testCache(loader *fakeLoader) (*CandidateCache, *fakeKV) {
	kv := newFakeKV()
	cache := newCandidateCache(kv, loader, logger.NewNop(), 5*time.Minute, time.Hour)
	return cache, kv
}

func someSnapshots() []ProfileSnapshot {
	return []ProfileSnapshot{
		{UserID: 1, Name: "Ana", MatchingEnabled: true},
		{UserID: 2, Name: "Bo", MatchingEnabled: true},
	}
}

func TestCandidateCacheGetAllReadThrough(t *testing.T) {
	ctx := context.Background()
	loader := &fakeLoader{snaps: someSnapshots()}
	cache, kv := testCache(loader)

	snaps, err := cache.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(snaps) != 2 {
		t.Fatalf("got %d snapshots, want 2", len(snaps))
	}
	if loader.callCount() != 1 {
		t.Errorf("loader calls = %d, want 1", loader.callCount())
	}
	if _, ok := kv.data[candidateSetKey]; !ok {
		t.Error("set key must be populated after reload")
	}

	// Second read serves from the cache.
	if _, err := cache.GetAll(ctx); err != nil {
		t.Fatalf("second GetAll: %v", err)
	}
	if loader.callCount() != 1 {
		t.Errorf("loader calls after warm read = %d, want 1", loader.callCount())
	}
}

func TestCandidateCacheGetUser(t *testing.T) {
	ctx := context.Background()
	loader := &fakeLoader{snaps: someSnapshots()}
	cache, kv := testCache(loader)

	snap, err := cache.GetUser(ctx, 2)
	if err != nil {
		t.Fatalf("GetUser: %v", err)
	}
	if snap.Name != "Bo" {
		t.Errorf("Name = %q, want Bo", snap.Name)
	}
	if _, ok := kv.data[userKey(2)]; !ok {
		t.Error("per-user key must be populated after a set lookup")
	}

	// A second lookup hits the per-user key without reloading.
	if _, err := cache.GetUser(ctx, 2); err != nil {
		t.Fatalf("second GetUser: %v", err)
	}
	if loader.callCount() != 1 {
		t.Errorf("loader calls = %d, want 1", loader.callCount())
	}
}

func TestCandidateCacheGetUserUnknown(t *testing.T) {
	loader := &fakeLoader{snaps: someSnapshots()}
	cache, _ := testCache(loader)

	_, err := cache.GetUser(context.Background(), 99)
	if !errors.Is(err, ErrCacheMiss) {
		t.Errorf("err = %v, want ErrCacheMiss", err)
	}
}

func TestCandidateCacheInvalidateUser(t *testing.T) {
	ctx := context.Background()
	loader := &fakeLoader{snaps: someSnapshots()}
	cache, kv := testCache(loader)

	if _, err := cache.GetUser(ctx, 1); err != nil {
		t.Fatal(err)
	}
	if err := cache.InvalidateUser(ctx, 1); err != nil {
		t.Fatalf("InvalidateUser: %v", err)
	}
	if _, ok := kv.data[userKey(1)]; ok {
		t.Error("per-user key must be dropped")
	}
	if _, ok := kv.data[candidateSetKey]; ok {
		t.Error("set key must be dropped alongside the user key")
	}

	// Next read reloads.
	if _, err := cache.GetAll(ctx); err != nil {
		t.Fatal(err)
	}
	if loader.callCount() != 2 {
		t.Errorf("loader calls = %d, want 2 after invalidation", loader.callCount())
	}
}

func TestCandidateCacheCorruptPayloadReloads(t *testing.T) {
	ctx := context.Background()
	loader := &fakeLoader{snaps: someSnapshots()}
	cache, kv := testCache(loader)

	kv.data[candidateSetKey] = "{not json"

	snaps, err := cache.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll over corrupt payload: %v", err)
	}
	if len(snaps) != 2 {
		t.Fatalf("got %d snapshots, want 2", len(snaps))
	}
	if loader.callCount() != 1 {
		t.Errorf("loader calls = %d, want 1", loader.callCount())
	}

	var stored []ProfileSnapshot
	if err := json.Unmarshal([]byte(kv.data[candidateSetKey]), &stored); err != nil {
		t.Fatalf("set key not rewritten with valid JSON: %v", err)
	}
}

func TestCandidateCacheLoaderFailure(t *testing.T) {
	loader := &fakeLoader{err: errors.New("db down")}
	cache, _ := testCache(loader)

	if _, err := cache.GetAll(context.Background()); err == nil {
		t.Error("expected error when the loader fails")
	}
}

func TestCandidateCacheWarmUp(t *testing.T) {
	ctx := context.Background()
	loader := &fakeLoader{snaps: someSnapshots()}
	cache, kv := testCache(loader)

	cache.WarmUp(ctx)
	if _, ok := kv.data[candidateSetKey]; !ok {
		t.Error("warm-up must populate the set key")
	}

	// Warm-up failures are swallowed.
	failing := &fakeLoader{err: errors.New("db down")}
	cache, _ = testCache(failing)
	cache.WarmUp(ctx)
}
