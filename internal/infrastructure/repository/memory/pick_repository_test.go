package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/pickem-league/internal/domain/pick"
)

func newTestPick(id, gameID string, participant pick.Participant, isLock bool) pick.Pick {
	now := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)
	return pick.Pick{
		ID:           id,
		Participant:  participant,
		GameID:       gameID,
		Season:       2025,
		Week:         1,
		SelectedTeam: "Alabama",
		IsLock:       isLock,
		Result:       pick.ResultPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestPickRepository_ConcurrentCreatesRespectLimits(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewPickRepository()
	participant := pick.UserParticipant("user-1")
	limits := pick.DefaultLimits()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p := newTestPick(fmt.Sprintf("pick-%02d", i), fmt.Sprintf("game-%02d", i), participant, true)
			_ = repo.Create(ctx, p, limits)
		}(i)
	}
	wg.Wait()

	picks, err := repo.ListByParticipant(ctx, participant, 2025, 1)
	if err != nil {
		t.Fatalf("list picks: %v", err)
	}
	if len(picks) > limits.MaxPicksPerWeek {
		t.Fatalf("stored %d picks, max is %d", len(picks), limits.MaxPicksPerWeek)
	}
	locks := 0
	for _, p := range picks {
		if p.IsLock {
			locks++
		}
	}
	if locks > limits.MaxLocksPerWeek {
		t.Fatalf("stored %d locks, max is %d", locks, limits.MaxLocksPerWeek)
	}
	if len(picks) != 1 {
		t.Fatalf("every candidate was a lock, expected exactly one stored pick, got %d", len(picks))
	}
}

func TestPickRepository_CreateRejectsSeventhPick(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewPickRepository()
	participant := pick.AnonymousParticipant("fan@example.com")

	for i := 0; i < 6; i++ {
		p := newTestPick(fmt.Sprintf("pick-%d", i), fmt.Sprintf("game-%d", i), participant, false)
		if err := repo.Create(ctx, p, pick.DefaultLimits()); err != nil {
			t.Fatalf("create pick %d: %v", i, err)
		}
	}

	err := repo.Create(ctx, newTestPick("pick-6", "game-6", participant, false), pick.DefaultLimits())
	if !errors.Is(err, pick.ErrPickLimitExceeded) {
		t.Fatalf("expected ErrPickLimitExceeded, got %v", err)
	}

	other := newTestPick("pick-other", "game-6", pick.AnonymousParticipant("other@example.com"), false)
	if err := repo.Create(ctx, other, pick.DefaultLimits()); err != nil {
		t.Fatalf("other participant must not be limited: %v", err)
	}
}

func TestPickRepository_UpdateFlipToLockChecksLockLimit(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewPickRepository()
	participant := pick.UserParticipant("user-1")

	if err := repo.Create(ctx, newTestPick("p1", "g1", participant, true), pick.DefaultLimits()); err != nil {
		t.Fatalf("create lock: %v", err)
	}
	regular := newTestPick("p2", "g2", participant, false)
	if err := repo.Create(ctx, regular, pick.DefaultLimits()); err != nil {
		t.Fatalf("create regular: %v", err)
	}

	regular.IsLock = true
	err := repo.Update(ctx, regular, pick.DefaultLimits())
	if !errors.Is(err, pick.ErrLockLimitExceeded) {
		t.Fatalf("expected ErrLockLimitExceeded, got %v", err)
	}

	regular.IsLock = false
	regular.SelectedTeam = "Florida State"
	if err := repo.Update(ctx, regular, pick.DefaultLimits()); err != nil {
		t.Fatalf("team change must not be limited: %v", err)
	}
}

func TestPickRepository_KindsAreSeparate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewPickRepository()
	p := newTestPick("p1", "g1", pick.AnonymousParticipant("fan@example.com"), false)
	if err := repo.Create(ctx, p, pick.DefaultLimits()); err != nil {
		t.Fatalf("create: %v", err)
	}

	if _, ok, _ := repo.GetByID(ctx, pick.KindUser, "p1"); ok {
		t.Fatalf("anonymous pick must not be visible as a user pick")
	}
	if err := repo.Delete(ctx, pick.KindUser, "p1"); !errors.Is(err, pick.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := repo.Delete(ctx, pick.KindAnonymous, "p1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
}

func TestPickRepository_ApplyAndResetResults(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := NewPickRepository()
	p := newTestPick("p1", "g1", pick.UserParticipant("user-1"), true)
	if err := repo.Create(ctx, p, pick.DefaultLimits()); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := repo.ApplyResults(ctx, []pick.ResultUpdate{{PickID: "p1", Kind: pick.KindUser, Result: pick.ResultWin, Points: 2}}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	got, _, _ := repo.GetByID(ctx, pick.KindUser, "p1")
	if got.Result != pick.ResultWin || got.Points != 2 {
		t.Fatalf("unexpected graded pick: %+v", got)
	}

	n, err := repo.ResetResultsByWeek(ctx, 2025, 1)
	if err != nil {
		t.Fatalf("reset: %v", err)
	}
	if n != 1 {
		t.Fatalf("unexpected reset count: %d", n)
	}
	got, _, _ = repo.GetByID(ctx, pick.KindUser, "p1")
	if got.Result != pick.ResultPending || got.Points != 0 {
		t.Fatalf("unexpected reset pick: %+v", got)
	}
}
