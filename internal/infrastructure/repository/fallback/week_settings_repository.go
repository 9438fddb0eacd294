package fallback

import (
	"context"

	"github.com/riskibarqy/pickem-league/internal/domain/weeksettings"
)

type WeekSettingsRepository struct {
	weeksettings.Repository
	secondary weeksettings.Repository
	reader    reader
}

func NewWeekSettingsRepository(primary, secondary weeksettings.Repository, cfg Config) *WeekSettingsRepository {
	return &WeekSettingsRepository{Repository: primary, secondary: secondary, reader: newReader(cfg)}
}

func (r *WeekSettingsRepository) Get(ctx context.Context, season, week int) (weeksettings.Settings, bool, error) {
	out, err := read(ctx, r.reader, "weeksettings.Get",
		func(ctx context.Context) (found[weeksettings.Settings], error) {
			s, ok, err := r.Repository.Get(ctx, season, week)
			return found[weeksettings.Settings]{value: s, exists: ok}, err
		},
		func(ctx context.Context) (found[weeksettings.Settings], error) {
			s, ok, err := r.secondary.Get(ctx, season, week)
			return found[weeksettings.Settings]{value: s, exists: ok}, err
		},
	)
	return out.value, out.exists, err
}

func (r *WeekSettingsRepository) ListBySeason(ctx context.Context, season int) ([]weeksettings.Settings, error) {
	return read(ctx, r.reader, "weeksettings.ListBySeason",
		func(ctx context.Context) ([]weeksettings.Settings, error) {
			return r.Repository.ListBySeason(ctx, season)
		},
		func(ctx context.Context) ([]weeksettings.Settings, error) {
			return r.secondary.ListBySeason(ctx, season)
		},
	)
}
