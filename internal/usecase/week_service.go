package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/pickem-league/internal/domain/weeksettings"
	"github.com/riskibarqy/pickem-league/internal/platform/logging"
)

type WeekSettingsInput struct {
	Season    int
	Week      int
	Deadline  *time.Time
	PicksOpen bool
	IsLocked  bool
}

type WeekService struct {
	repo   weeksettings.Repository
	logger *logging.Logger
	now    func() time.Time
}

func NewWeekService(repo weeksettings.Repository, logger *logging.Logger) *WeekService {
	if logger == nil {
		logger = logging.Default()
	}
	return &WeekService{repo: repo, logger: logger, now: time.Now}
}

// Get returns the stored settings or the open default when none exist.
func (s *WeekService) Get(ctx context.Context, season, week int) (weeksettings.Settings, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WeekService.Get")
	defer span.End()

	settings, _, err := s.load(ctx, season, week)
	return settings, err
}

// load reads the stored row once; ok is false when the open default was
// returned in its place.
func (s *WeekService) load(ctx context.Context, season, week int) (weeksettings.Settings, bool, error) {
	if err := validateSeasonWeek(season, week); err != nil {
		return weeksettings.Settings{}, false, err
	}
	settings, ok, err := s.repo.Get(ctx, season, week)
	if err != nil {
		return weeksettings.Settings{}, false, fmt.Errorf("get week settings: %w", err)
	}
	if !ok {
		return weeksettings.Default(season, week), false, nil
	}
	return settings, true, nil
}

func (s *WeekService) List(ctx context.Context, season int) ([]weeksettings.Settings, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WeekService.List")
	defer span.End()

	if season <= 0 {
		return nil, fmt.Errorf("%w: season must be > 0", ErrInvalidInput)
	}
	out, err := s.repo.ListBySeason(ctx, season)
	if err != nil {
		return nil, fmt.Errorf("list week settings: %w", err)
	}
	return out, nil
}

func (s *WeekService) Upsert(ctx context.Context, input WeekSettingsInput) (_ weeksettings.Settings, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WeekService.Upsert")
	defer endUsecaseSpan(span, &err)

	current, stored, err := s.load(ctx, input.Season, input.Week)
	if err != nil {
		return weeksettings.Settings{}, err
	}
	return s.save(ctx, current, stored, input)
}

func (s *WeekService) save(ctx context.Context, current weeksettings.Settings, stored bool, input WeekSettingsInput) (weeksettings.Settings, error) {
	next := weeksettings.Settings{
		Season:    input.Season,
		Week:      input.Week,
		PicksOpen: input.PicksOpen,
		IsLocked:  input.IsLocked,
		UpdatedAt: s.now().UTC(),
	}
	if input.Deadline != nil {
		deadline := input.Deadline.UTC()
		next.Deadline = &deadline
	}
	// A moved deadline earns a fresh reminder.
	if stored && sameDeadline(current.Deadline, next.Deadline) {
		next.ReminderSentAt = current.ReminderSentAt
	}

	if err := s.repo.Upsert(ctx, next); err != nil {
		return weeksettings.Settings{}, fmt.Errorf("upsert week settings: %w", err)
	}
	s.logger.InfoContext(ctx, "week settings saved",
		"season", next.Season,
		"week", next.Week,
		"picks_open", next.PicksOpen,
		"is_locked", next.IsLocked,
	)
	return next, nil
}

// LockExpired locks every week whose deadline has passed and returns the
// locked weeks.
func (s *WeekService) LockExpired(ctx context.Context) (_ []weeksettings.Settings, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WeekService.LockExpired")
	defer endUsecaseSpan(span, &err)

	now := s.now().UTC()
	expired, err := s.repo.ListExpiredUnlocked(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("list expired weeks: %w", err)
	}

	locked := make([]weeksettings.Settings, 0, len(expired))
	for _, w := range expired {
		if err := s.repo.Lock(ctx, w.Season, w.Week); err != nil {
			return locked, fmt.Errorf("lock week season=%d week=%d: %w", w.Season, w.Week, err)
		}
		w.IsLocked = true
		locked = append(locked, w)
		s.logger.InfoContext(ctx, "week locked after deadline", "season", w.Season, "week", w.Week)
	}
	return locked, nil
}

// Lock closes the week to picks immediately, creating the settings row if
// needed.
func (s *WeekService) Lock(ctx context.Context, season, week int) (weeksettings.Settings, error) {
	current, stored, err := s.load(ctx, season, week)
	if err != nil {
		return weeksettings.Settings{}, err
	}
	return s.save(ctx, current, stored, WeekSettingsInput{
		Season:    season,
		Week:      week,
		Deadline:  current.Deadline,
		PicksOpen: current.PicksOpen,
		IsLocked:  true,
	})
}

// Open clears the lock and reopens picks. The deadline is kept, so a week
// whose deadline already passed stays closed until the deadline moves.
func (s *WeekService) Open(ctx context.Context, season, week int) (weeksettings.Settings, error) {
	current, stored, err := s.load(ctx, season, week)
	if err != nil {
		return weeksettings.Settings{}, err
	}
	return s.save(ctx, current, stored, WeekSettingsInput{
		Season:    season,
		Week:      week,
		Deadline:  current.Deadline,
		PicksOpen: true,
		IsLocked:  false,
	})
}

func sameDeadline(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}
