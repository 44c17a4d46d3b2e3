package cache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestStore_SetGetExpiry(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	current := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }

	ctx := context.Background()
	store.Set(ctx, "export:101", "payload")

	if got, ok := store.Get(ctx, "export:101"); !ok || got != "payload" {
		t.Fatalf("expected cached payload, got %v ok=%v", got, ok)
	}

	current = current.Add(2 * time.Minute)
	if _, ok := store.Get(ctx, "export:101"); ok {
		t.Fatal("expected entry to expire")
	}
}

func TestStore_GetOrLoadCachesValue(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	ctx := context.Background()
	loads := 0

	for i := 0; i < 3; i++ {
		got, err := store.GetOrLoad(ctx, "export:55", func(context.Context) (any, error) {
			loads++
			return "deal", nil
		})
		if err != nil {
			t.Fatalf("get or load: %v", err)
		}
		if got != "deal" {
			t.Fatalf("got %v", got)
		}
	}
	if loads != 1 {
		t.Fatalf("expected one load, got %d", loads)
	}
}

func TestStore_GetOrLoadDoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	ctx := context.Background()
	loads := 0

	_, err := store.GetOrLoad(ctx, "export:66", func(context.Context) (any, error) {
		loads++
		return nil, errors.New("upstream down")
	})
	if err == nil {
		t.Fatal("expected loader error")
	}

	got, err := store.GetOrLoad(ctx, "export:66", func(context.Context) (any, error) {
		loads++
		return "recovered", nil
	})
	if err != nil {
		t.Fatalf("get or load after failure: %v", err)
	}
	if got != "recovered" || loads != 2 {
		t.Fatalf("got %v loads=%d", got, loads)
	}
}

func TestStore_DeletePrefix(t *testing.T) {
	t.Parallel()

	store := NewStore(0)
	ctx := context.Background()
	store.Set(ctx, "export:1", 1)
	store.Set(ctx, "export:2", 2)
	store.Set(ctx, "history:alice", 3)

	store.DeletePrefix(ctx, "export:")

	if _, ok := store.Get(ctx, "export:1"); ok {
		t.Fatal("export:1 should be gone")
	}
	if _, ok := store.Get(ctx, "history:alice"); !ok {
		t.Fatal("history:alice should survive")
	}
}
