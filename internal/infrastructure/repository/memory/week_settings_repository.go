package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/pickem-league/internal/domain/weeksettings"
)

type weekKey struct {
	season int
	week   int
}

type WeekSettingsRepository struct {
	mu    sync.RWMutex
	items map[weekKey]weeksettings.Settings
	now   func() time.Time
}

func NewWeekSettingsRepository() *WeekSettingsRepository {
	return &WeekSettingsRepository{items: make(map[weekKey]weeksettings.Settings), now: time.Now}
}

func (r *WeekSettingsRepository) Get(_ context.Context, season, week int) (weeksettings.Settings, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.items[weekKey{season, week}]
	return s, ok, nil
}

func (r *WeekSettingsRepository) ListBySeason(_ context.Context, season int) ([]weeksettings.Settings, error) {
	return r.filter(func(s weeksettings.Settings) bool { return s.Season == season }), nil
}

func (r *WeekSettingsRepository) Upsert(_ context.Context, s weeksettings.Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[weekKey{s.Season, s.Week}] = s
	return nil
}

func (r *WeekSettingsRepository) ListExpiredUnlocked(_ context.Context, now time.Time) ([]weeksettings.Settings, error) {
	return r.filter(func(s weeksettings.Settings) bool {
		return !s.IsLocked && s.DeadlinePassed(now)
	}), nil
}

func (r *WeekSettingsRepository) ListReminderCandidates(_ context.Context, now time.Time) ([]weeksettings.Settings, error) {
	return r.filter(func(s weeksettings.Settings) bool {
		return s.ReminderSentAt == nil && s.Deadline != nil && s.AcceptingPicks(now)
	}), nil
}

// Lock is a no-op for weeks without stored settings; those stay open.
func (r *WeekSettingsRepository) Lock(_ context.Context, season, week int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := weekKey{season, week}
	s, ok := r.items[key]
	if !ok {
		return nil
	}
	s.IsLocked = true
	s.UpdatedAt = r.now().UTC()
	r.items[key] = s
	return nil
}

func (r *WeekSettingsRepository) MarkReminderSent(_ context.Context, season, week int, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := weekKey{season, week}
	s, ok := r.items[key]
	if !ok {
		return nil
	}
	at = at.UTC()
	s.ReminderSentAt = &at
	r.items[key] = s
	return nil
}

func (r *WeekSettingsRepository) filter(keep func(weeksettings.Settings) bool) []weeksettings.Settings {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]weeksettings.Settings, 0)
	for _, s := range r.items {
		if keep(s) {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Season != out[j].Season {
			return out[i].Season < out[j].Season
		}
		return out[i].Week < out[j].Week
	})
	return out
}
