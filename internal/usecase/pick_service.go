package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/pickem-league/internal/domain/game"
	"github.com/riskibarqy/pickem-league/internal/domain/pick"
	"github.com/riskibarqy/pickem-league/internal/domain/weeksettings"
	idgen "github.com/riskibarqy/pickem-league/internal/platform/id"
	"github.com/riskibarqy/pickem-league/internal/platform/logging"
)

type SubmitPickInput struct {
	Participant  pick.Participant
	GameID       string
	SelectedTeam string
	IsLock       bool
}

// UpdatePickInput changes an existing pick. An empty GameID keeps the game.
type UpdatePickInput struct {
	Participant  pick.Participant
	PickID       string
	GameID       string
	SelectedTeam string
	IsLock       bool
}

type AnonymousPickInput struct {
	GameID       string
	SelectedTeam string
	IsLock       bool
}

// LeaderboardInvalidator drops cached standings of a season.
type LeaderboardInvalidator interface {
	Invalidate(ctx context.Context, season int)
}

type PickService struct {
	gameRepo     game.Repository
	settingsRepo weeksettings.Repository
	pickRepo     pick.Repository
	limits       pick.Limits
	idGen        idgen.Generator
	leaderboard  LeaderboardInvalidator
	logger       *logging.Logger
	now          func() time.Time
}

func NewPickService(
	gameRepo game.Repository,
	settingsRepo weeksettings.Repository,
	pickRepo pick.Repository,
	limits pick.Limits,
	idGen idgen.Generator,
	leaderboard LeaderboardInvalidator,
	logger *logging.Logger,
) *PickService {
	if logger == nil {
		logger = logging.Default()
	}

	return &PickService{
		gameRepo:     gameRepo,
		settingsRepo: settingsRepo,
		pickRepo:     pickRepo,
		limits:       limits,
		idGen:        idGen,
		leaderboard:  leaderboard,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *PickService) SubmitPick(ctx context.Context, input SubmitPickInput) (_ pick.Pick, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickService.SubmitPick")
	defer endUsecaseSpan(span, &err)

	if err := input.Participant.Validate(); err != nil {
		return pick.Pick{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	g, err := s.openGame(ctx, input.GameID)
	if err != nil {
		return pick.Pick{}, err
	}
	team := g.CanonicalTeam(input.SelectedTeam)
	if team == "" {
		return pick.Pick{}, fmt.Errorf("%w: team=%q game=%s", pick.ErrInvalidSelection, input.SelectedTeam, g.ID)
	}

	pickID, err := s.idGen.NewID()
	if err != nil {
		return pick.Pick{}, fmt.Errorf("generate pick id: %w", err)
	}

	now := s.now().UTC()
	p := pick.Pick{
		ID:           pickID,
		Participant:  input.Participant,
		GameID:       g.ID,
		Season:       g.Season,
		Week:         g.Week,
		SelectedTeam: team,
		IsLock:       input.IsLock,
		Result:       pick.ResultPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.pickRepo.Create(ctx, p, s.limits); err != nil {
		return pick.Pick{}, fmt.Errorf("create pick: %w", err)
	}

	s.invalidate(ctx, p.Season)
	s.logger.InfoContext(ctx, "pick submitted",
		"pick_id", p.ID,
		"participant_kind", string(p.Participant.Kind),
		"game_id", p.GameID,
		"season", p.Season,
		"week", p.Week,
		"is_lock", p.IsLock,
	)
	return p, nil
}

func (s *PickService) UpdatePick(ctx context.Context, input UpdatePickInput) (_ pick.Pick, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickService.UpdatePick")
	defer endUsecaseSpan(span, &err)

	if err := input.Participant.Validate(); err != nil {
		return pick.Pick{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	current, err := s.ownedPick(ctx, input.Participant, input.PickID)
	if err != nil {
		return pick.Pick{}, err
	}
	if _, err := s.openGame(ctx, current.GameID); err != nil {
		return pick.Pick{}, err
	}

	gameID := strings.TrimSpace(input.GameID)
	if gameID == "" {
		gameID = current.GameID
	}
	g, err := s.openGame(ctx, gameID)
	if err != nil {
		return pick.Pick{}, err
	}
	team := g.CanonicalTeam(input.SelectedTeam)
	if team == "" {
		return pick.Pick{}, fmt.Errorf("%w: team=%q game=%s", pick.ErrInvalidSelection, input.SelectedTeam, g.ID)
	}

	next := current
	next.GameID = g.ID
	next.Season = g.Season
	next.Week = g.Week
	next.SelectedTeam = team
	next.IsLock = input.IsLock
	next.UpdatedAt = s.now().UTC()
	if err := s.pickRepo.Update(ctx, next, s.limits); err != nil {
		return pick.Pick{}, fmt.Errorf("update pick: %w", err)
	}

	s.invalidate(ctx, current.Season)
	if next.Season != current.Season {
		s.invalidate(ctx, next.Season)
	}
	s.logger.InfoContext(ctx, "pick updated",
		"pick_id", next.ID,
		"game_id", next.GameID,
		"is_lock", next.IsLock,
	)
	return next, nil
}

func (s *PickService) DeletePick(ctx context.Context, participant pick.Participant, pickID string) (err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickService.DeletePick")
	defer endUsecaseSpan(span, &err)

	if err := participant.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	current, err := s.ownedPick(ctx, participant, pickID)
	if err != nil {
		return err
	}
	if _, err := s.openGame(ctx, current.GameID); err != nil {
		return err
	}
	if err := s.pickRepo.Delete(ctx, participant.Kind, current.ID); err != nil {
		return fmt.Errorf("delete pick: %w", err)
	}

	s.invalidate(ctx, current.Season)
	s.logger.InfoContext(ctx, "pick deleted", "pick_id", current.ID, "game_id", current.GameID)
	return nil
}

// ListPicks returns a participant's picks; week 0 returns the whole season.
func (s *PickService) ListPicks(ctx context.Context, participant pick.Participant, season, week int) ([]pick.Pick, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickService.ListPicks")
	defer span.End()

	if err := participant.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if season <= 0 || week < 0 {
		return nil, fmt.Errorf("%w: season is required and week must be >= 0", ErrInvalidInput)
	}

	picks, err := s.pickRepo.ListByParticipant(ctx, participant, season, week)
	if err != nil {
		return nil, fmt.Errorf("list picks: %w", err)
	}
	return picks, nil
}

// SubmitAnonymousPicks validates the whole batch before writing any pick, so
// a request that would exceed a limit leaves nothing behind unless a
// concurrent writer wins the race in between.
func (s *PickService) SubmitAnonymousPicks(ctx context.Context, email string, inputs []AnonymousPickInput) (_ []pick.Pick, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PickService.SubmitAnonymousPicks")
	defer endUsecaseSpan(span, &err)

	participant := pick.AnonymousParticipant(email)
	if err := participant.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("%w: at least one pick is required", ErrInvalidInput)
	}
	if s.limits.MaxPicksPerWeek > 0 && len(inputs) > s.limits.MaxPicksPerWeek {
		return nil, fmt.Errorf("%w: max=%d", pick.ErrPickLimitExceeded, s.limits.MaxPicksPerWeek)
	}

	now := s.now().UTC()
	planned := make([]pick.Pick, 0, len(inputs))
	existingByWeek := make(map[[2]int][]pick.Pick)
	for _, in := range inputs {
		g, err := s.openGame(ctx, in.GameID)
		if err != nil {
			return nil, err
		}
		team := g.CanonicalTeam(in.SelectedTeam)
		if team == "" {
			return nil, fmt.Errorf("%w: team=%q game=%s", pick.ErrInvalidSelection, in.SelectedTeam, g.ID)
		}

		key := [2]int{g.Season, g.Week}
		existing, ok := existingByWeek[key]
		if !ok {
			existing, err = s.pickRepo.ListByParticipant(ctx, participant, g.Season, g.Week)
			if err != nil {
				return nil, fmt.Errorf("list anonymous picks: %w", err)
			}
		}

		pickID, err := s.idGen.NewID()
		if err != nil {
			return nil, fmt.Errorf("generate pick id: %w", err)
		}
		p := pick.Pick{
			ID:           pickID,
			Participant:  participant,
			GameID:       g.ID,
			Season:       g.Season,
			Week:         g.Week,
			SelectedTeam: team,
			IsLock:       in.IsLock,
			Result:       pick.ResultPending,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := pick.CheckWrite(existing, p, nil, s.limits); err != nil {
			return nil, err
		}
		existingByWeek[key] = append(existing, p)
		planned = append(planned, p)
	}

	created := make([]pick.Pick, 0, len(planned))
	for _, p := range planned {
		if err := s.pickRepo.Create(ctx, p, s.limits); err != nil {
			return created, fmt.Errorf("create anonymous pick: %w", err)
		}
		created = append(created, p)
	}

	seasons := make(map[int]struct{})
	for _, p := range created {
		if _, done := seasons[p.Season]; done {
			continue
		}
		seasons[p.Season] = struct{}{}
		s.invalidate(ctx, p.Season)
	}
	s.logger.InfoContext(ctx, "anonymous picks submitted", "email", participant.Key, "count", len(created))
	return created, nil
}

func (s *PickService) ownedPick(ctx context.Context, participant pick.Participant, pickID string) (pick.Pick, error) {
	pickID = strings.TrimSpace(pickID)
	if pickID == "" {
		return pick.Pick{}, fmt.Errorf("%w: pick id is required", ErrInvalidInput)
	}
	current, ok, err := s.pickRepo.GetByID(ctx, participant.Kind, pickID)
	if err != nil {
		return pick.Pick{}, fmt.Errorf("get pick: %w", err)
	}
	if !ok {
		return pick.Pick{}, fmt.Errorf("%w: pick=%s", ErrNotFound, pickID)
	}
	if current.Participant != participant {
		return pick.Pick{}, fmt.Errorf("%w: pick=%s belongs to another participant", ErrForbidden, pickID)
	}
	return current, nil
}

// openGame loads a game and verifies both the game and its week still accept
// picks.
func (s *PickService) openGame(ctx context.Context, gameID string) (game.Game, error) {
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

	now := s.now()
	if g.IsLocked(now) || g.IsFinal() {
		return game.Game{}, fmt.Errorf("%w: game=%s locked at %s", pick.ErrPicksClosed, g.ID, g.LockAt.UTC().Format(time.RFC3339))
	}

	settings, ok, err := s.settingsRepo.Get(ctx, g.Season, g.Week)
	if err != nil {
		return game.Game{}, fmt.Errorf("get week settings: %w", err)
	}
	if !ok {
		settings = weeksettings.Default(g.Season, g.Week)
	}
	if !settings.AcceptingPicks(now) {
		return game.Game{}, fmt.Errorf("%w: season=%d week=%d", pick.ErrPicksClosed, g.Season, g.Week)
	}
	return g, nil
}

func (s *PickService) invalidate(ctx context.Context, season int) {
	if s.leaderboard != nil {
		s.leaderboard.Invalidate(ctx, season)
	}
}

// IsPickRuleError reports whether err is a pick rule rejection rather than a
// failure.
func IsPickRuleError(err error) bool {
	return errors.Is(err, pick.ErrPickLimitExceeded) ||
		errors.Is(err, pick.ErrLockLimitExceeded) ||
		errors.Is(err, pick.ErrDuplicatePick) ||
		errors.Is(err, pick.ErrPicksClosed) ||
		errors.Is(err, pick.ErrInvalidSelection)
}
