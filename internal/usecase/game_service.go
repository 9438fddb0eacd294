package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/pickem-league/internal/domain/game"
	"github.com/riskibarqy/pickem-league/internal/domain/pick"
	idgen "github.com/riskibarqy/pickem-league/internal/platform/id"
	"github.com/riskibarqy/pickem-league/internal/platform/logging"
)

type GameInput struct {
	Season   int
	Week     int
	HomeTeam string
	AwayTeam string
	Spread   float64
	LockAt   time.Time
}

// GradeSummary reports how many picks a grading pass touched.
type GradeSummary struct {
	Games  int
	Picks  int
	Failed int
}

type ResetSummary struct {
	Games int
	Picks int
}

type GameService struct {
	gameRepo    game.Repository
	pickRepo    pick.Repository
	scoring     pick.ScoringRules
	idGen       idgen.Generator
	leaderboard LeaderboardInvalidator
	logger      *logging.Logger
	now         func() time.Time
	regradePool int
}

func NewGameService(
	gameRepo game.Repository,
	pickRepo pick.Repository,
	scoring pick.ScoringRules,
	idGen idgen.Generator,
	leaderboard LeaderboardInvalidator,
	logger *logging.Logger,
	regradeWorkers int,
) *GameService {
	if logger == nil {
		logger = logging.Default()
	}
	if regradeWorkers < 1 {
		regradeWorkers = 1
	}

	return &GameService{
		gameRepo:    gameRepo,
		pickRepo:    pickRepo,
		scoring:     scoring,
		idGen:       idGen,
		leaderboard: leaderboard,
		logger:      logger,
		now:         time.Now,
		regradePool: regradeWorkers,
	}
}

func (s *GameService) ListByWeek(ctx context.Context, season, week int) ([]game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.ListByWeek")
	defer span.End()

	if err := validateSeasonWeek(season, week); err != nil {
		return nil, err
	}
	games, err := s.gameRepo.ListByWeek(ctx, season, week)
	if err != nil {
		return nil, fmt.Errorf("list games by week: %w", err)
	}
	sortGames(games)
	return games, nil
}

func (s *GameService) Get(ctx context.Context, gameID string) (game.Game, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.Get")
	defer span.End()

	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return game.Game{}, fmt.Errorf("%w: game id is required", ErrInvalidInput)
	}
	g, ok, err := s.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		return game.Game{}, fmt.Errorf("get game: %w", err)
	}
	if !ok {
		return game.Game{}, fmt.Errorf("%w: game=%s", ErrNotFound, gameID)
	}
	return g, nil
}

func (s *GameService) Create(ctx context.Context, input GameInput) (_ game.Game, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.Create")
	defer endUsecaseSpan(span, &err)

	gameID, err := s.idGen.NewID()
	if err != nil {
		return game.Game{}, fmt.Errorf("generate game id: %w", err)
	}
	now := s.now().UTC()
	g := game.Game{
		ID:        gameID,
		Season:    input.Season,
		Week:      input.Week,
		HomeTeam:  strings.TrimSpace(input.HomeTeam),
		AwayTeam:  strings.TrimSpace(input.AwayTeam),
		Spread:    input.Spread,
		Status:    game.StatusScheduled,
		LockAt:    input.LockAt.UTC(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := g.Validate(); err != nil {
		return game.Game{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.gameRepo.Create(ctx, g); err != nil {
		return game.Game{}, fmt.Errorf("create game: %w", err)
	}

	s.logger.InfoContext(ctx, "game created", "game_id", g.ID, "season", g.Season, "week", g.Week, "home", g.HomeTeam, "away", g.AwayTeam, "spread", g.Spread)
	return g, nil
}

// Update edits a game. Once picks exist, the matchup and its week are frozen;
// only the spread and lock time may move.
func (s *GameService) Update(ctx context.Context, gameID string, input GameInput) (_ game.Game, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.Update")
	defer endUsecaseSpan(span, &err)

	current, err := s.Get(ctx, gameID)
	if err != nil {
		return game.Game{}, err
	}

	next := current
	next.Season = input.Season
	next.Week = input.Week
	next.HomeTeam = strings.TrimSpace(input.HomeTeam)
	next.AwayTeam = strings.TrimSpace(input.AwayTeam)
	next.Spread = input.Spread
	next.LockAt = input.LockAt.UTC()
	next.UpdatedAt = s.now().UTC()
	if err := next.Validate(); err != nil {
		return game.Game{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	matchupChanged := next.Season != current.Season || next.Week != current.Week ||
		next.HomeTeam != current.HomeTeam || next.AwayTeam != current.AwayTeam
	if matchupChanged {
		count, err := s.pickRepo.CountByGame(ctx, current.ID)
		if err != nil {
			return game.Game{}, fmt.Errorf("count picks by game: %w", err)
		}
		if count > 0 {
			return game.Game{}, fmt.Errorf("%w: game=%s already has %d picks", ErrConflict, current.ID, count)
		}
	}

	if err := s.gameRepo.Update(ctx, next); err != nil {
		return game.Game{}, fmt.Errorf("update game: %w", err)
	}
	if next.IsFinal() && next.Spread != current.Spread {
		if _, err := s.gradeGame(ctx, next); err != nil {
			return game.Game{}, err
		}
		s.invalidate(ctx, next.Season)
	}
	return next, nil
}

func (s *GameService) Delete(ctx context.Context, gameID string) (err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.Delete")
	defer endUsecaseSpan(span, &err)

	current, err := s.Get(ctx, gameID)
	if err != nil {
		return err
	}
	count, err := s.pickRepo.CountByGame(ctx, current.ID)
	if err != nil {
		return fmt.Errorf("count picks by game: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: game=%s has %d picks", ErrConflict, current.ID, count)
	}
	if err := s.gameRepo.Delete(ctx, current.ID); err != nil {
		return fmt.Errorf("delete game: %w", err)
	}
	s.logger.InfoContext(ctx, "game deleted", "game_id", current.ID)
	return nil
}

// RecordScore marks the game final and grades every pick on it.
func (s *GameService) RecordScore(ctx context.Context, gameID string, homeScore, awayScore int) (_ game.Game, _ GradeSummary, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.RecordScore")
	defer endUsecaseSpan(span, &err)

	if homeScore < 0 || awayScore < 0 {
		return game.Game{}, GradeSummary{}, fmt.Errorf("%w: scores must be >= 0", ErrInvalidInput)
	}
	current, err := s.Get(ctx, gameID)
	if err != nil {
		return game.Game{}, GradeSummary{}, err
	}

	if err := s.gameRepo.SetScore(ctx, current.ID, homeScore, awayScore); err != nil {
		return game.Game{}, GradeSummary{}, fmt.Errorf("set game score: %w", err)
	}
	final := current.WithScore(homeScore, awayScore)

	graded, err := s.gradeGame(ctx, final)
	if err != nil {
		return game.Game{}, GradeSummary{}, err
	}
	s.invalidate(ctx, final.Season)

	s.logger.InfoContext(ctx, "game scored",
		"game_id", final.ID,
		"home_score", homeScore,
		"away_score", awayScore,
		"picks_graded", graded,
	)
	return final, GradeSummary{Games: 1, Picks: graded}, nil
}

// ResetWeekScores clears every score of the week and sends its picks back to
// pending.
func (s *GameService) ResetWeekScores(ctx context.Context, season, week int) (_ ResetSummary, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.ResetWeekScores")
	defer endUsecaseSpan(span, &err)

	if err := validateSeasonWeek(season, week); err != nil {
		return ResetSummary{}, err
	}
	games, err := s.gameRepo.ResetScoresByWeek(ctx, season, week)
	if err != nil {
		return ResetSummary{}, fmt.Errorf("reset game scores: %w", err)
	}
	picks, err := s.pickRepo.ResetResultsByWeek(ctx, season, week)
	if err != nil {
		return ResetSummary{}, fmt.Errorf("reset pick results: %w", err)
	}
	s.invalidate(ctx, season)

	s.logger.WarnContext(ctx, "week scores reset", "season", season, "week", week, "games", games, "picks", picks)
	return ResetSummary{Games: games, Picks: picks}, nil
}

// RegradeWeek grades every final game of the week again on a bounded worker
// pool, e.g. after scoring rules changed.
func (s *GameService) RegradeWeek(ctx context.Context, season, week int) (_ GradeSummary, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GameService.RegradeWeek")
	defer endUsecaseSpan(span, &err)

	if err := validateSeasonWeek(season, week); err != nil {
		return GradeSummary{}, err
	}
	games, err := s.gameRepo.ListByWeek(ctx, season, week)
	if err != nil {
		return GradeSummary{}, fmt.Errorf("list games by week: %w", err)
	}

	pool, err := ants.NewPool(s.regradePool)
	if err != nil {
		return GradeSummary{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		workers  sync.WaitGroup
		graded   atomic.Int32
		gamesRun atomic.Int32
		failed   atomic.Int32
		errMu    sync.Mutex
		errs     []error
	)
	for _, g := range games {
		if !g.IsFinal() {
			continue
		}
		g := g
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			count, err := s.gradeGame(ctx, g)
			if err != nil {
				failed.Add(1)
				errMu.Lock()
				errs = append(errs, err)
				errMu.Unlock()
				s.logger.ErrorContext(ctx, "regrade game failed", "game_id", g.ID, "error", err)
				return
			}
			gamesRun.Add(1)
			graded.Add(int32(count))
		}); err != nil {
			workers.Done()
			return GradeSummary{}, fmt.Errorf("submit regrade task: %w", err)
		}
	}
	workers.Wait()
	s.invalidate(ctx, season)

	summary := GradeSummary{Games: int(gamesRun.Load()), Picks: int(graded.Load()), Failed: int(failed.Load())}
	s.logger.InfoContext(ctx, "week regraded", "season", season, "week", week, "games", summary.Games, "picks", summary.Picks, "failed", summary.Failed)
	if len(errs) > 0 {
		return summary, fmt.Errorf("regrade week: %w", errors.Join(errs...))
	}
	return summary, nil
}

func (s *GameService) gradeGame(ctx context.Context, g game.Game) (int, error) {
	covering, push, err := g.CoveringTeam()
	if err != nil {
		return 0, fmt.Errorf("grade game %s: %w", g.ID, err)
	}
	picks, err := s.pickRepo.ListByGame(ctx, g.ID)
	if err != nil {
		return 0, fmt.Errorf("list picks by game: %w", err)
	}
	if len(picks) == 0 {
		return 0, nil
	}

	updates := make([]pick.ResultUpdate, 0, len(picks))
	for _, p := range picks {
		result, points := pick.Grade(p, covering, push, s.scoring)
		updates = append(updates, pick.ResultUpdate{
			PickID: p.ID,
			Kind:   p.Participant.Kind,
			Result: result,
			Points: points,
		})
	}
	if err := s.pickRepo.ApplyResults(ctx, updates); err != nil {
		return 0, fmt.Errorf("apply pick results: %w", err)
	}
	return len(updates), nil
}

func (s *GameService) invalidate(ctx context.Context, season int) {
	if s.leaderboard != nil {
		s.leaderboard.Invalidate(ctx, season)
	}
}

func validateSeasonWeek(season, week int) error {
	if season <= 0 {
		return fmt.Errorf("%w: season must be > 0", ErrInvalidInput)
	}
	if week < game.MinWeek || week > game.MaxWeek {
		return fmt.Errorf("%w: week must be between %d and %d", ErrInvalidInput, game.MinWeek, game.MaxWeek)
	}
	return nil
}

func sortGames(games []game.Game) {
	sort.SliceStable(games, func(i, j int) bool {
		if !games[i].LockAt.Equal(games[j].LockAt) {
			return games[i].LockAt.Before(games[j].LockAt)
		}
		return games[i].ID < games[j].ID
	})
}
