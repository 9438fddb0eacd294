package game

import "context"

type Repository interface {
	GetByID(ctx context.Context, gameID string) (Game, bool, error)
	ListByWeek(ctx context.Context, season, week int) ([]Game, error)
	ListBySeason(ctx context.Context, season int) ([]Game, error)
	Create(ctx context.Context, g Game) error
	Update(ctx context.Context, g Game) error
	Delete(ctx context.Context, gameID string) error
	SetScore(ctx context.Context, gameID string, homeScore, awayScore int) error
	// ResetScoresByWeek clears scores of every game in the week and returns
	// how many games were reset.
	ResetScoresByWeek(ctx context.Context, season, week int) (int, error)
}
