package weeksettings

import (
	"context"
	"time"
)

type Repository interface {
	Get(ctx context.Context, season, week int) (Settings, bool, error)
	ListBySeason(ctx context.Context, season int) ([]Settings, error)
	Upsert(ctx context.Context, s Settings) error
	// ListExpiredUnlocked returns weeks whose deadline is at or before now
	// and which are not locked yet.
	ListExpiredUnlocked(ctx context.Context, now time.Time) ([]Settings, error)
	// ListReminderCandidates returns unlocked, open weeks with a deadline
	// after now and no reminder sent.
	ListReminderCandidates(ctx context.Context, now time.Time) ([]Settings, error)
	Lock(ctx context.Context, season, week int) error
	MarkReminderSent(ctx context.Context, season, week int, at time.Time) error
}
