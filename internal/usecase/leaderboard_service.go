package usecase

import (
	"context"
	"fmt"
	"strconv"

	"github.com/riskibarqy/pickem-league/internal/domain/leaderboard"
	"github.com/riskibarqy/pickem-league/internal/domain/pick"
	"github.com/riskibarqy/pickem-league/internal/domain/user"
	"github.com/riskibarqy/pickem-league/internal/platform/cache"
	"github.com/riskibarqy/pickem-league/internal/platform/logging"
)

type LeaderboardService struct {
	pickRepo pick.Repository
	userRepo user.Repository
	cache    *cache.Store
	logger   *logging.Logger
}

// NewLeaderboardService builds standings from graded picks. A nil store
// disables caching.
func NewLeaderboardService(pickRepo pick.Repository, userRepo user.Repository, store *cache.Store, logger *logging.Logger) *LeaderboardService {
	if logger == nil {
		logger = logging.Default()
	}
	return &LeaderboardService{
		pickRepo: pickRepo,
		userRepo: userRepo,
		cache:    store,
		logger:   logger,
	}
}

// Season returns standings over every week of the season.
func (s *LeaderboardService) Season(ctx context.Context, season int) ([]leaderboard.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.Season")
	defer span.End()

	if season <= 0 {
		return nil, fmt.Errorf("%w: season must be > 0", ErrInvalidInput)
	}
	return s.load(ctx, season, 0)
}

func (s *LeaderboardService) Week(ctx context.Context, season, week int) ([]leaderboard.Entry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.Week")
	defer span.End()

	if err := validateSeasonWeek(season, week); err != nil {
		return nil, err
	}
	return s.load(ctx, season, week)
}

func (s *LeaderboardService) Invalidate(ctx context.Context, season int) {
	if err := s.cache.InvalidateTags(ctx, seasonTag(season)); err != nil {
		s.logger.WarnContext(ctx, "invalidate leaderboard cache failed", "season", season, "error", err)
	}
}

func (s *LeaderboardService) load(ctx context.Context, season, week int) ([]leaderboard.Entry, error) {
	key := "leaderboard:" + strconv.Itoa(season) + ":all"
	if week > 0 {
		key = "leaderboard:" + strconv.Itoa(season) + ":" + strconv.Itoa(week)
	}

	return cache.GetOrLoad(ctx, s.cache, key, []string{seasonTag(season)}, func(ctx context.Context) ([]leaderboard.Entry, error) {
		picks, err := s.pickRepo.ListBySeason(ctx, season, week)
		if err != nil {
			return nil, fmt.Errorf("list season picks: %w", err)
		}
		names, err := s.userNames(ctx)
		if err != nil {
			return nil, err
		}
		return leaderboard.Build(picks, names), nil
	})
}

func (s *LeaderboardService) userNames(ctx context.Context) (map[pick.Participant]string, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	names := make(map[pick.Participant]string, len(users))
	for _, u := range users {
		names[pick.UserParticipant(u.ID)] = u.Name()
	}
	return names, nil
}

func seasonTag(season int) string {
	return "leaderboard:season:" + strconv.Itoa(season)
}
