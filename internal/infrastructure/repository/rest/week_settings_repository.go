package rest

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/pickem-league/internal/domain/weeksettings"
)

type WeekSettingsRepository struct {
	client *Client
	now    func() time.Time
}

func NewWeekSettingsRepository(client *Client) *WeekSettingsRepository {
	return &WeekSettingsRepository{client: client, now: time.Now}
}

func (r *WeekSettingsRepository) Get(ctx context.Context, season, week int) (weeksettings.Settings, bool, error) {
	rows, err := r.list(ctx, From("week_settings").Where(Eq("season", season), Eq("week", week)).Limit(1))
	if err != nil {
		return weeksettings.Settings{}, false, err
	}
	if len(rows) == 0 {
		return weeksettings.Settings{}, false, nil
	}
	return rows[0], true, nil
}

func (r *WeekSettingsRepository) ListBySeason(ctx context.Context, season int) ([]weeksettings.Settings, error) {
	return r.list(ctx, From("week_settings").Where(Eq("season", season)))
}

func (r *WeekSettingsRepository) ListExpiredUnlocked(ctx context.Context, now time.Time) ([]weeksettings.Settings, error) {
	return r.list(ctx, From("week_settings").Where(Is("is_locked", false), Lte("deadline", now)))
}

func (r *WeekSettingsRepository) ListReminderCandidates(ctx context.Context, now time.Time) ([]weeksettings.Settings, error) {
	return r.list(ctx, From("week_settings").Where(
		Is("is_locked", false),
		Is("picks_open", true),
		IsNull("reminder_sent_at"),
		Gt("deadline", now),
	))
}

func (r *WeekSettingsRepository) Upsert(ctx context.Context, s weeksettings.Settings) error {
	row := weekSettingsRow{
		Season:         s.Season,
		Week:           s.Week,
		Deadline:       s.Deadline,
		PicksOpen:      s.PicksOpen,
		IsLocked:       s.IsLocked,
		ReminderSentAt: s.ReminderSentAt,
		UpdatedAt:      s.UpdatedAt.UTC(),
	}
	if err := r.client.Upsert(ctx, From("week_settings"), row, nil); err != nil {
		return fmt.Errorf("upsert week settings: %w", err)
	}
	return nil
}

func (r *WeekSettingsRepository) Lock(ctx context.Context, season, week int) error {
	body := map[string]any{"is_locked": true, "updated_at": r.now().UTC()}
	if err := r.client.Update(ctx, From("week_settings").Where(Eq("season", season), Eq("week", week)), body, nil); err != nil {
		return fmt.Errorf("lock week: %w", err)
	}
	return nil
}

func (r *WeekSettingsRepository) MarkReminderSent(ctx context.Context, season, week int, at time.Time) error {
	body := map[string]any{"reminder_sent_at": at.UTC()}
	if err := r.client.Update(ctx, From("week_settings").Where(Eq("season", season), Eq("week", week)), body, nil); err != nil {
		return fmt.Errorf("mark reminder sent: %w", err)
	}
	return nil
}

func (r *WeekSettingsRepository) list(ctx context.Context, q Query) ([]weeksettings.Settings, error) {
	var rows []weekSettingsRow
	if err := r.client.Select(ctx, q.Select("*").Order("season.asc", "week.asc"), &rows); err != nil {
		return nil, fmt.Errorf("list week settings: %w", err)
	}
	out := make([]weeksettings.Settings, 0, len(rows))
	for _, row := range rows {
		out = append(out, weeksettings.Settings{
			Season:         row.Season,
			Week:           row.Week,
			Deadline:       utcPtr(row.Deadline),
			PicksOpen:      row.PicksOpen,
			IsLocked:       row.IsLocked,
			ReminderSentAt: utcPtr(row.ReminderSentAt),
			UpdatedAt:      row.UpdatedAt,
		})
	}
	return out, nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
