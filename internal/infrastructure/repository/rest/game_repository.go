package rest

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/pickem-league/internal/domain/game"
)

type GameRepository struct {
	client *Client
	now    func() time.Time
}

func NewGameRepository(client *Client) *GameRepository {
	return &GameRepository{client: client, now: time.Now}
}

func (r *GameRepository) GetByID(ctx context.Context, gameID string) (game.Game, bool, error) {
	var rows []gameRow
	if err := r.client.Select(ctx, From("games").Select("*").Where(Eq("id", gameID)).Limit(1), &rows); err != nil {
		return game.Game{}, false, fmt.Errorf("get game: %w", err)
	}
	if len(rows) == 0 {
		return game.Game{}, false, nil
	}
	return gameFromRow(rows[0]), true, nil
}

func (r *GameRepository) ListByWeek(ctx context.Context, season, week int) ([]game.Game, error) {
	return r.list(ctx, From("games").Where(Eq("season", season), Eq("week", week)))
}

func (r *GameRepository) ListBySeason(ctx context.Context, season int) ([]game.Game, error) {
	return r.list(ctx, From("games").Where(Eq("season", season)))
}

func (r *GameRepository) list(ctx context.Context, q Query) ([]game.Game, error) {
	var rows []gameRow
	if err := r.client.Select(ctx, q.Select("*").Order("week.asc", "lock_at.asc", "id.asc"), &rows); err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	out := make([]game.Game, 0, len(rows))
	for _, row := range rows {
		out = append(out, gameFromRow(row))
	}
	return out, nil
}

func (r *GameRepository) Create(ctx context.Context, g game.Game) error {
	if err := r.client.Insert(ctx, From("games"), gameToRow(g), nil); err != nil {
		return fmt.Errorf("create game: %w", err)
	}
	return nil
}

func (r *GameRepository) Update(ctx context.Context, g game.Game) error {
	row := gameToRow(g)
	row.UpdatedAt = r.now().UTC()
	return r.patch(ctx, g.ID, row)
}

func (r *GameRepository) Delete(ctx context.Context, gameID string) error {
	var rows []gameRow
	if err := r.client.Delete(ctx, From("games").Where(Eq("id", gameID)), &rows); err != nil {
		return fmt.Errorf("delete game: %w", err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("%w: %s", game.ErrNotFound, gameID)
	}
	return nil
}

func (r *GameRepository) SetScore(ctx context.Context, gameID string, homeScore, awayScore int) error {
	return r.patch(ctx, gameID, map[string]any{
		"home_score": homeScore,
		"away_score": awayScore,
		"status":     string(game.StatusFinal),
		"updated_at": r.now().UTC(),
	})
}

func (r *GameRepository) ResetScoresByWeek(ctx context.Context, season, week int) (int, error) {
	var rows []gameRow
	err := r.client.Update(ctx,
		From("games").
			Where(Eq("season", season), Eq("week", week)).
			Or(NotNull("home_score"), Neq("status", string(game.StatusScheduled))),
		map[string]any{
			"home_score": nil,
			"away_score": nil,
			"status":     string(game.StatusScheduled),
			"updated_at": r.now().UTC(),
		},
		&rows,
	)
	if err != nil {
		return 0, fmt.Errorf("reset scores: %w", err)
	}
	return len(rows), nil
}

func (r *GameRepository) patch(ctx context.Context, gameID string, body any) error {
	var rows []gameRow
	if err := r.client.Update(ctx, From("games").Where(Eq("id", gameID)), body, &rows); err != nil {
		return fmt.Errorf("update game: %w", err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("%w: %s", game.ErrNotFound, gameID)
	}
	return nil
}

func gameFromRow(row gameRow) game.Game {
	return game.Game{
		ID:        row.ID,
		Season:    row.Season,
		Week:      row.Week,
		HomeTeam:  row.HomeTeam,
		AwayTeam:  row.AwayTeam,
		Spread:    row.Spread,
		HomeScore: row.HomeScore,
		AwayScore: row.AwayScore,
		Status:    game.Status(row.Status),
		LockAt:    row.LockAt.UTC(),
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func gameToRow(g game.Game) gameRow {
	status := g.Status
	if status == "" {
		status = game.StatusScheduled
	}
	return gameRow{
		ID:        g.ID,
		Season:    g.Season,
		Week:      g.Week,
		HomeTeam:  g.HomeTeam,
		AwayTeam:  g.AwayTeam,
		Spread:    g.Spread,
		HomeScore: g.HomeScore,
		AwayScore: g.AwayScore,
		Status:    string(status),
		LockAt:    g.LockAt.UTC(),
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
}
