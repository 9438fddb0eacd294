package fallback

import (
	"context"

	"github.com/riskibarqy/pickem-league/internal/domain/game"
)

type GameRepository struct {
	game.Repository
	secondary game.Repository
	reader    reader
}

func NewGameRepository(primary, secondary game.Repository, cfg Config) *GameRepository {
	return &GameRepository{Repository: primary, secondary: secondary, reader: newReader(cfg)}
}

func (r *GameRepository) GetByID(ctx context.Context, gameID string) (game.Game, bool, error) {
	out, err := read(ctx, r.reader, "game.GetByID",
		func(ctx context.Context) (found[game.Game], error) {
			g, ok, err := r.Repository.GetByID(ctx, gameID)
			return found[game.Game]{value: g, exists: ok}, err
		},
		func(ctx context.Context) (found[game.Game], error) {
			g, ok, err := r.secondary.GetByID(ctx, gameID)
			return found[game.Game]{value: g, exists: ok}, err
		},
	)
	return out.value, out.exists, err
}

func (r *GameRepository) ListByWeek(ctx context.Context, season, week int) ([]game.Game, error) {
	return read(ctx, r.reader, "game.ListByWeek",
		func(ctx context.Context) ([]game.Game, error) { return r.Repository.ListByWeek(ctx, season, week) },
		func(ctx context.Context) ([]game.Game, error) { return r.secondary.ListByWeek(ctx, season, week) },
	)
}

func (r *GameRepository) ListBySeason(ctx context.Context, season int) ([]game.Game, error) {
	return read(ctx, r.reader, "game.ListBySeason",
		func(ctx context.Context) ([]game.Game, error) { return r.Repository.ListBySeason(ctx, season) },
		func(ctx context.Context) ([]game.Game, error) { return r.secondary.ListBySeason(ctx, season) },
	)
}
