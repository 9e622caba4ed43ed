package session

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Minute)

	if _, ok, err := store.Get(ctx, "fp-1"); err != nil || ok {
		t.Fatalf("expected empty store, got ok=%v err=%v", ok, err)
	}

	record := Record{Path: "team/alice", Hash: "hash-a"}
	if err := store.Set(ctx, "fp-1", record); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, ok, err := store.Get(ctx, "fp-1")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if got != record {
		t.Fatalf("expected %+v, got %+v", record, got)
	}

	if _, ok, _ := store.Get(ctx, "fp-2"); ok {
		t.Fatalf("expected keys to stay isolated")
	}

	if err := store.Delete(ctx, "fp-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := store.Get(ctx, "fp-1"); ok {
		t.Fatalf("expected record to be deleted")
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Minute)

	current := time.Now()
	store.now = func() time.Time { return current }

	if err := store.Set(ctx, "fp-1", Record{Path: "team/alice", Hash: "h"}); err != nil {
		t.Fatalf("set: %v", err)
	}

	current = current.Add(30 * time.Second)
	if _, ok, _ := store.Get(ctx, "fp-1"); !ok {
		t.Fatalf("expected record before expiry")
	}

	current = current.Add(time.Minute)
	if _, ok, _ := store.Get(ctx, "fp-1"); ok {
		t.Fatalf("expected record to expire")
	}
}

func TestMemoryStoreSetRefreshesExpiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(time.Minute)

	current := time.Now()
	store.now = func() time.Time { return current }

	if err := store.Set(ctx, "fp-1", Record{Path: "team/alice", Hash: "h"}); err != nil {
		t.Fatalf("set: %v", err)
	}

	current = current.Add(45 * time.Second)
	if err := store.Set(ctx, "fp-1", Record{Path: "team/alice", Hash: "h"}); err != nil {
		t.Fatalf("refresh: %v", err)
	}

	// Past the original expiry but within the refreshed one.
	current = current.Add(30 * time.Second)
	if _, ok, _ := store.Get(ctx, "fp-1"); !ok {
		t.Fatalf("expected refreshed record to survive")
	}
}

func TestMemoryStoreZeroTTLNeverExpires(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore(0)

	current := time.Now()
	store.now = func() time.Time { return current }

	if err := store.Set(ctx, "fp-1", Record{Path: "admin", Hash: "h"}); err != nil {
		t.Fatalf("set: %v", err)
	}

	current = current.Add(240 * time.Hour)
	if _, ok, _ := store.Get(ctx, "fp-1"); !ok {
		t.Fatalf("expected record to persist without ttl")
	}
}
