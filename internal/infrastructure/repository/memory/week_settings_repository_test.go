package memory

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/pickem-league/internal/domain/weeksettings"
)

func TestWeekSettingsRepository_ExpiredAndReminderCandidates(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Date(2025, 9, 6, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(6 * time.Hour)

	repo := NewWeekSettingsRepository()
	for _, s := range []weeksettings.Settings{
		{Season: 2025, Week: 1, PicksOpen: true, Deadline: &past},
		{Season: 2025, Week: 2, PicksOpen: true, Deadline: &future},
		{Season: 2025, Week: 3, PicksOpen: false, Deadline: &future},
		{Season: 2025, Week: 4, PicksOpen: true},
	} {
		if err := repo.Upsert(ctx, s); err != nil {
			t.Fatalf("upsert: %v", err)
		}
	}

	expired, err := repo.ListExpiredUnlocked(ctx, now)
	if err != nil {
		t.Fatalf("list expired: %v", err)
	}
	if len(expired) != 1 || expired[0].Week != 1 {
		t.Fatalf("unexpected expired weeks: %+v", expired)
	}

	candidates, err := repo.ListReminderCandidates(ctx, now)
	if err != nil {
		t.Fatalf("list candidates: %v", err)
	}
	if len(candidates) != 1 || candidates[0].Week != 2 {
		t.Fatalf("unexpected reminder candidates: %+v", candidates)
	}

	if err := repo.Lock(ctx, 2025, 1); err != nil {
		t.Fatalf("lock: %v", err)
	}
	if err := repo.MarkReminderSent(ctx, 2025, 2, now); err != nil {
		t.Fatalf("mark reminder: %v", err)
	}
	if expired, _ = repo.ListExpiredUnlocked(ctx, now); len(expired) != 0 {
		t.Fatalf("locked week listed as expired: %+v", expired)
	}
	if candidates, _ = repo.ListReminderCandidates(ctx, now); len(candidates) != 0 {
		t.Fatalf("reminded week listed again: %+v", candidates)
	}
}
