package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/pickem-league/internal/domain/weeksettings"
	qb "github.com/riskibarqy/pickem-league/internal/platform/querybuilder"
)

type WeekSettingsRepository struct {
	db *sqlx.DB
}

func NewWeekSettingsRepository(db *sqlx.DB) *WeekSettingsRepository {
	return &WeekSettingsRepository{db: db}
}

func (r *WeekSettingsRepository) Get(ctx context.Context, season, week int) (weeksettings.Settings, bool, error) {
	query, args, err := qb.Select("*").From("week_settings").
		Where(qb.Eq("season", season), qb.Eq("week", week)).
		ToSQL()
	if err != nil {
		return weeksettings.Settings{}, false, fmt.Errorf("build get week settings query: %w", err)
	}

	var row weekSettingsTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return weeksettings.Settings{}, false, nil
		}
		return weeksettings.Settings{}, false, fmt.Errorf("get week settings: %w", err)
	}
	return weekSettingsFromRow(row), true, nil
}

func (r *WeekSettingsRepository) ListBySeason(ctx context.Context, season int) ([]weeksettings.Settings, error) {
	return r.list(ctx, "list week settings", qb.Eq("season", season))
}

func (r *WeekSettingsRepository) ListExpiredUnlocked(ctx context.Context, now time.Time) ([]weeksettings.Settings, error) {
	return r.list(ctx, "list expired weeks",
		qb.Eq("is_locked", false),
		qb.Cmp("deadline", "<=", now.UTC()),
	)
}

func (r *WeekSettingsRepository) ListReminderCandidates(ctx context.Context, now time.Time) ([]weeksettings.Settings, error) {
	return r.list(ctx, "list reminder candidates",
		qb.Eq("is_locked", false),
		qb.Eq("picks_open", true),
		qb.IsNull("reminder_sent_at"),
		qb.Cmp("deadline", ">", now.UTC()),
	)
}

func (r *WeekSettingsRepository) list(ctx context.Context, op string, conds ...qb.Condition) ([]weeksettings.Settings, error) {
	query, args, err := qb.Select("*").From("week_settings").
		Where(conds...).
		OrderBy("season", "week").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build %s query: %w", op, err)
	}

	var rows []weekSettingsTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	out := make([]weeksettings.Settings, 0, len(rows))
	for _, row := range rows {
		out = append(out, weekSettingsFromRow(row))
	}
	return out, nil
}

func (r *WeekSettingsRepository) Upsert(ctx context.Context, s weeksettings.Settings) error {
	query, args, err := qb.UpsertModel("week_settings", weekSettingsTableModel{
		Season:         s.Season,
		Week:           s.Week,
		Deadline:       timePtrToNullTime(s.Deadline),
		PicksOpen:      s.PicksOpen,
		IsLocked:       s.IsLocked,
		ReminderSentAt: timePtrToNullTime(s.ReminderSentAt),
		UpdatedAt:      s.UpdatedAt,
	}, []string{"season", "week"})
	if err != nil {
		return fmt.Errorf("build upsert week settings query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert week settings: %w", err)
	}
	return nil
}

func (r *WeekSettingsRepository) Lock(ctx context.Context, season, week int) error {
	query, args, err := qb.Update("week_settings").
		Set("is_locked", true).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("season", season), qb.Eq("week", week)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build lock week query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("lock week: %w", err)
	}
	return nil
}

func (r *WeekSettingsRepository) MarkReminderSent(ctx context.Context, season, week int, at time.Time) error {
	query, args, err := qb.Update("week_settings").
		Set("reminder_sent_at", at.UTC()).
		Where(qb.Eq("season", season), qb.Eq("week", week)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build mark reminder query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("mark reminder sent: %w", err)
	}
	return nil
}

func weekSettingsFromRow(row weekSettingsTableModel) weeksettings.Settings {
	return weeksettings.Settings{
		Season:         row.Season,
		Week:           row.Week,
		Deadline:       nullTimeToTimePtr(row.Deadline),
		PicksOpen:      row.PicksOpen,
		IsLocked:       row.IsLocked,
		ReminderSentAt: nullTimeToTimePtr(row.ReminderSentAt),
		UpdatedAt:      row.UpdatedAt,
	}
}
