package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/pickem-league/internal/domain/game"
	qb "github.com/riskibarqy/pickem-league/internal/platform/querybuilder"
)

type GameRepository struct {
	db *sqlx.DB
}

func NewGameRepository(db *sqlx.DB) *GameRepository {
	return &GameRepository{db: db}
}

func (r *GameRepository) GetByID(ctx context.Context, gameID string) (game.Game, bool, error) {
	query, args, err := gameBaseSelectBuilder().
		Where(qb.Eq("id", gameID)).
		ToSQL()
	if err != nil {
		return game.Game{}, false, fmt.Errorf("build get game query: %w", err)
	}

	var row gameTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return game.Game{}, false, nil
		}
		return game.Game{}, false, fmt.Errorf("get game: %w", err)
	}
	return gameFromRow(row), true, nil
}

func (r *GameRepository) ListByWeek(ctx context.Context, season, week int) ([]game.Game, error) {
	return r.list(ctx, "list games by week", qb.Eq("season", season), qb.Eq("week", week))
}

func (r *GameRepository) ListBySeason(ctx context.Context, season int) ([]game.Game, error) {
	return r.list(ctx, "list games by season", qb.Eq("season", season))
}

func (r *GameRepository) list(ctx context.Context, op string, conds ...qb.Condition) ([]game.Game, error) {
	query, args, err := gameBaseSelectBuilder().
		Where(conds...).
		OrderBy("week", "lock_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build %s query: %w", op, err)
	}

	var rows []gameTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]game.Game, 0, len(rows))
	for _, row := range rows {
		out = append(out, gameFromRow(row))
	}
	return out, nil
}

func (r *GameRepository) Create(ctx context.Context, g game.Game) error {
	query, args, err := qb.InsertModel("games", gameToRow(g))
	if err != nil {
		return fmt.Errorf("build create game query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("create game: %w", err)
	}
	return nil
}

func (r *GameRepository) Update(ctx context.Context, g game.Game) error {
	row := gameToRow(g)
	query, args, err := qb.Update("games").
		Set("season", row.Season).
		Set("week", row.Week).
		Set("home_team", row.HomeTeam).
		Set("away_team", row.AwayTeam).
		Set("spread", row.Spread).
		Set("home_score", row.HomeScore).
		Set("away_score", row.AwayScore).
		Set("status", row.Status).
		Set("lock_at", row.LockAt).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", g.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update game query: %w", err)
	}
	return r.exec(ctx, "update game", g.ID, query, args)
}

func (r *GameRepository) Delete(ctx context.Context, gameID string) error {
	query, args, err := qb.DeleteFrom("games").Where(qb.Eq("id", gameID)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete game query: %w", err)
	}
	return r.exec(ctx, "delete game", gameID, query, args)
}

func (r *GameRepository) SetScore(ctx context.Context, gameID string, homeScore, awayScore int) error {
	query, args, err := qb.Update("games").
		Set("home_score", homeScore).
		Set("away_score", awayScore).
		Set("status", string(game.StatusFinal)).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", gameID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build set score query: %w", err)
	}
	return r.exec(ctx, "set game score", gameID, query, args)
}

func (r *GameRepository) ResetScoresByWeek(ctx context.Context, season, week int) (int, error) {
	query, args, err := qb.Update("games").
		SetExpr("home_score", "NULL").
		SetExpr("away_score", "NULL").
		Set("status", string(game.StatusScheduled)).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("season", season),
			qb.Eq("week", week),
			qb.Or(qb.Expr("home_score IS NOT NULL"), qb.Cmp("status", "<>", string(game.StatusScheduled))),
		).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build reset scores query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("reset scores: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected reset scores: %w", err)
	}
	return int(affected), nil
}

func (r *GameRepository) exec(ctx context.Context, op, gameID, query string, args []any) error {
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := requireAffected(res, op); err != nil {
		return fmt.Errorf("%w: %s", game.ErrNotFound, gameID)
	}
	return nil
}

func gameBaseSelectBuilder() *qb.SelectBuilder {
	return qb.Select("*").From("games")
}

func gameFromRow(row gameTableModel) game.Game {
	return game.Game{
		ID:        row.ID,
		Season:    row.Season,
		Week:      row.Week,
		HomeTeam:  row.HomeTeam,
		AwayTeam:  row.AwayTeam,
		Spread:    row.Spread,
		HomeScore: nullInt64ToIntPtr(row.HomeScore),
		AwayScore: nullInt64ToIntPtr(row.AwayScore),
		Status:    game.Status(row.Status),
		LockAt:    row.LockAt.UTC(),
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func gameToRow(g game.Game) gameTableModel {
	status := g.Status
	if status == "" {
		status = game.StatusScheduled
	}
	return gameTableModel{
		ID:        g.ID,
		Season:    g.Season,
		Week:      g.Week,
		HomeTeam:  g.HomeTeam,
		AwayTeam:  g.AwayTeam,
		Spread:    g.Spread,
		HomeScore: intPtrToNullInt64(g.HomeScore),
		AwayScore: intPtrToNullInt64(g.AwayScore),
		Status:    string(status),
		LockAt:    g.LockAt.UTC(),
		CreatedAt: g.CreatedAt,
		UpdatedAt: g.UpdatedAt,
	}
}
