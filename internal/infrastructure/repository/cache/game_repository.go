package cache

import (
	"context"
	"strconv"

	"github.com/riskibarqy/pickem-league/internal/domain/game"
	basecache "github.com/riskibarqy/pickem-league/internal/platform/cache"
	"github.com/riskibarqy/pickem-league/internal/platform/logging"
)

const gamesTag = "games"

// GameRepository caches game reads. Every write drops all cached games once
// it completes; reads that overlapped the write are not stored.
type GameRepository struct {
	next   game.Repository
	cache  *basecache.Store
	logger *logging.Logger
}

func NewGameRepository(next game.Repository, cache *basecache.Store, logger *logging.Logger) *GameRepository {
	if logger == nil {
		logger = logging.Default()
	}
	return &GameRepository{next: next, cache: cache, logger: logger}
}

type cachedGame struct {
	Value  game.Game
	Exists bool
}

func (r *GameRepository) GetByID(ctx context.Context, gameID string) (game.Game, bool, error) {
	cached, err := basecache.GetOrLoad(ctx, r.cache, "game:id:"+gameID, []string{gamesTag}, func(ctx context.Context) (cachedGame, error) {
		g, exists, err := r.next.GetByID(ctx, gameID)
		return cachedGame{Value: g, Exists: exists}, err
	})
	if err != nil {
		return game.Game{}, false, err
	}
	return cached.Value, cached.Exists, nil
}

func (r *GameRepository) ListByWeek(ctx context.Context, season, week int) ([]game.Game, error) {
	key := "game:week:" + strconv.Itoa(season) + ":" + strconv.Itoa(week)
	return basecache.GetOrLoad(ctx, r.cache, key, []string{gamesTag}, func(ctx context.Context) ([]game.Game, error) {
		return r.next.ListByWeek(ctx, season, week)
	})
}

func (r *GameRepository) ListBySeason(ctx context.Context, season int) ([]game.Game, error) {
	key := "game:season:" + strconv.Itoa(season)
	return basecache.GetOrLoad(ctx, r.cache, key, []string{gamesTag}, func(ctx context.Context) ([]game.Game, error) {
		return r.next.ListBySeason(ctx, season)
	})
}

func (r *GameRepository) Create(ctx context.Context, g game.Game) error {
	defer r.invalidate(ctx)
	return r.next.Create(ctx, g)
}

func (r *GameRepository) Update(ctx context.Context, g game.Game) error {
	defer r.invalidate(ctx)
	return r.next.Update(ctx, g)
}

func (r *GameRepository) Delete(ctx context.Context, gameID string) error {
	defer r.invalidate(ctx)
	return r.next.Delete(ctx, gameID)
}

func (r *GameRepository) SetScore(ctx context.Context, gameID string, homeScore, awayScore int) error {
	defer r.invalidate(ctx)
	return r.next.SetScore(ctx, gameID, homeScore, awayScore)
}

func (r *GameRepository) ResetScoresByWeek(ctx context.Context, season, week int) (int, error) {
	defer r.invalidate(ctx)
	return r.next.ResetScoresByWeek(ctx, season, week)
}

func (r *GameRepository) invalidate(ctx context.Context) {
	if err := r.cache.InvalidateTags(ctx, gamesTag); err != nil {
		r.logger.WarnContext(ctx, "invalidate game cache failed", "error", err)
	}
}
