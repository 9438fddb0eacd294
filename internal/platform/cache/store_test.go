package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type standing struct {
	Name   string `json:"name"`
	Points int    `json:"points"`
}

func TestGetOrLoad_UsesSingleFlight(t *testing.T) {
	t.Parallel()

	store := NewMemory(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (string, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "value", nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := GetOrLoad(context.Background(), store, "same-key", nil, loader)
			if err != nil {
				errCh <- err
				return
			}
			if v != "value" {
				errCh <- errUnexpectedValue
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestGetOrLoad_DecodesCachedStructs(t *testing.T) {
	t.Parallel()

	store := NewMemory(time.Minute)
	var calls atomic.Int32
	loader := func(context.Context) ([]standing, error) {
		calls.Add(1)
		return []standing{{Name: "ana", Points: 7}}, nil
	}

	if _, err := GetOrLoad(context.Background(), store, "board", nil, loader); err != nil {
		t.Fatalf("first GetOrLoad error: %v", err)
	}
	got, err := GetOrLoad(context.Background(), store, "board", nil, loader)
	if err != nil {
		t.Fatalf("second GetOrLoad error: %v", err)
	}

	if calls.Load() != 1 {
		t.Fatalf("loader called %d times, want 1", calls.Load())
	}
	if len(got) != 1 || got[0].Name != "ana" || got[0].Points != 7 {
		t.Fatalf("unexpected cached value: %+v", got)
	}
}

func TestInvalidateTags_ForcesReload(t *testing.T) {
	t.Parallel()

	store := NewMemory(time.Minute)
	var calls atomic.Int32
	loader := func(context.Context) (int, error) {
		return int(calls.Add(1)), nil
	}

	ctx := context.Background()
	tags := []string{"season:2025"}
	if _, err := GetOrLoad(ctx, store, "leaderboard:2025:all", tags, loader); err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := store.InvalidateTags(ctx, "season:2025"); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	got, err := GetOrLoad(ctx, store, "leaderboard:2025:all", tags, loader)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got != 2 {
		t.Fatalf("expected reload after invalidation, got value %d", got)
	}
}

func TestGetOrLoad_NilStoreCallsLoader(t *testing.T) {
	t.Parallel()

	var store *Store
	got, err := GetOrLoad(context.Background(), store, "k", nil, func(context.Context) (string, error) {
		return "direct", nil
	})
	if err != nil || got != "direct" {
		t.Fatalf("got %q, %v", got, err)
	}
}

func TestGetOrLoad_PropagatesLoaderError(t *testing.T) {
	t.Parallel()

	store := NewMemory(time.Minute)
	wantErr := errors.New("db down")
	_, err := GetOrLoad(context.Background(), store, "k", nil, func(context.Context) (string, error) {
		return "", wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected loader error, got %v", err)
	}
}

var errUnexpectedValue = errors.New("unexpected loaded value")

func TestGetOrLoad_LoadOverlappingInvalidationIsNotStored(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := NewMemory(time.Minute)
	tags := []string{"games"}
	row := "before-write"

	loading := make(chan struct{})
	release := make(chan struct{})
	done := make(chan string, 1)
	go func() {
		v, err := GetOrLoad(ctx, store, "game:id:g1", tags, func(context.Context) (string, error) {
			read := row
			close(loading)
			<-release
			return read, nil
		})
		if err != nil {
			t.Errorf("slow load: %v", err)
		}
		done <- v
	}()

	<-loading
	row = "after-write"
	if err := store.InvalidateTags(ctx, tags...); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	close(release)
	if got := <-done; got != "before-write" {
		t.Fatalf("slow load returned %q", got)
	}

	got, err := GetOrLoad(ctx, store, "game:id:g1", tags, func(context.Context) (string, error) {
		return row, nil
	})
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got != "after-write" {
		t.Fatalf("stale value survived invalidation: %q", got)
	}
}
