package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/riskibarqy/pickem-league/internal/domain/weeksettings"
	basecache "github.com/riskibarqy/pickem-league/internal/platform/cache"
	"github.com/riskibarqy/pickem-league/internal/platform/logging"
)

const weekSettingsTag = "week_settings"

// WeekSettingsRepository caches Get and ListBySeason. Job queries that depend
// on the clock always go to the next repository.
type WeekSettingsRepository struct {
	next   weeksettings.Repository
	cache  *basecache.Store
	logger *logging.Logger
}

func NewWeekSettingsRepository(next weeksettings.Repository, cache *basecache.Store, logger *logging.Logger) *WeekSettingsRepository {
	if logger == nil {
		logger = logging.Default()
	}
	return &WeekSettingsRepository{next: next, cache: cache, logger: logger}
}

type cachedSettings struct {
	Value  weeksettings.Settings
	Exists bool
}

func (r *WeekSettingsRepository) Get(ctx context.Context, season, week int) (weeksettings.Settings, bool, error) {
	key := "week_settings:" + strconv.Itoa(season) + ":" + strconv.Itoa(week)
	cached, err := basecache.GetOrLoad(ctx, r.cache, key, []string{weekSettingsTag}, func(ctx context.Context) (cachedSettings, error) {
		s, exists, err := r.next.Get(ctx, season, week)
		return cachedSettings{Value: s, Exists: exists}, err
	})
	if err != nil {
		return weeksettings.Settings{}, false, err
	}
	return cached.Value, cached.Exists, nil
}

func (r *WeekSettingsRepository) ListBySeason(ctx context.Context, season int) ([]weeksettings.Settings, error) {
	key := "week_settings:season:" + strconv.Itoa(season)
	return basecache.GetOrLoad(ctx, r.cache, key, []string{weekSettingsTag}, func(ctx context.Context) ([]weeksettings.Settings, error) {
		return r.next.ListBySeason(ctx, season)
	})
}

func (r *WeekSettingsRepository) ListExpiredUnlocked(ctx context.Context, now time.Time) ([]weeksettings.Settings, error) {
	return r.next.ListExpiredUnlocked(ctx, now)
}

func (r *WeekSettingsRepository) ListReminderCandidates(ctx context.Context, now time.Time) ([]weeksettings.Settings, error) {
	return r.next.ListReminderCandidates(ctx, now)
}

func (r *WeekSettingsRepository) Upsert(ctx context.Context, s weeksettings.Settings) error {
	defer r.invalidate(ctx)
	return r.next.Upsert(ctx, s)
}

func (r *WeekSettingsRepository) Lock(ctx context.Context, season, week int) error {
	defer r.invalidate(ctx)
	return r.next.Lock(ctx, season, week)
}

func (r *WeekSettingsRepository) MarkReminderSent(ctx context.Context, season, week int, at time.Time) error {
	defer r.invalidate(ctx)
	return r.next.MarkReminderSent(ctx, season, week, at)
}

func (r *WeekSettingsRepository) invalidate(ctx context.Context) {
	if err := r.cache.InvalidateTags(ctx, weekSettingsTag); err != nil {
		r.logger.WarnContext(ctx, "invalidate week settings cache failed", "error", err)
	}
}
