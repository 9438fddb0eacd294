package postgres

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/pickem-league/internal/domain/pick"
	qb "github.com/riskibarqy/pickem-league/internal/platform/querybuilder"
)

// PickRepository stores user picks in picks and anonymous picks in
// anonymous_picks. Writes take a transaction-scoped advisory lock on
// (participant, season, week) before checking limits, and the table triggers
// repeat the check.
type PickRepository struct {
	db *sqlx.DB
}

func NewPickRepository(db *sqlx.DB) *PickRepository {
	return &PickRepository{db: db}
}

func pickTable(kind pick.ParticipantKind) (table, identityColumn string, err error) {
	switch kind {
	case pick.KindUser:
		return "picks", "user_id", nil
	case pick.KindAnonymous:
		return "anonymous_picks", "email", nil
	default:
		return "", "", fmt.Errorf("unknown participant kind %q", kind)
	}
}

func pickSelectBuilder(kind pick.ParticipantKind) (*qb.SelectBuilder, error) {
	table, identity, err := pickTable(kind)
	if err != nil {
		return nil, err
	}
	return qb.Select(
		"id",
		identity+" AS identity",
		"game_id",
		"season",
		"week",
		"selected_team",
		"is_lock",
		"result",
		"points",
		"created_at",
		"updated_at",
	).From(table), nil
}

func (r *PickRepository) GetByID(ctx context.Context, kind pick.ParticipantKind, pickID string) (pick.Pick, bool, error) {
	builder, err := pickSelectBuilder(kind)
	if err != nil {
		return pick.Pick{}, false, err
	}
	query, args, err := builder.Where(qb.Eq("id", pickID)).ToSQL()
	if err != nil {
		return pick.Pick{}, false, fmt.Errorf("build get pick query: %w", err)
	}

	var row pickTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return pick.Pick{}, false, nil
		}
		return pick.Pick{}, false, fmt.Errorf("get pick: %w", err)
	}
	return pickFromRow(kind, row), true, nil
}

func (r *PickRepository) ListByParticipant(ctx context.Context, participant pick.Participant, season, week int) ([]pick.Pick, error) {
	_, identity, err := pickTable(participant.Kind)
	if err != nil {
		return nil, err
	}
	conds := []qb.Condition{qb.Eq(identity, participant.Key), qb.Eq("season", season)}
	if week > 0 {
		conds = append(conds, qb.Eq("week", week))
	}
	out, err := r.list(ctx, r.db, participant.Kind, conds...)
	if err != nil {
		return nil, fmt.Errorf("list picks by participant: %w", err)
	}
	return out, nil
}

func (r *PickRepository) ListByGame(ctx context.Context, gameID string) ([]pick.Pick, error) {
	return r.listBothKinds(ctx, "list picks by game", qb.Eq("game_id", gameID))
}

func (r *PickRepository) ListBySeason(ctx context.Context, season, week int) ([]pick.Pick, error) {
	conds := []qb.Condition{qb.Eq("season", season)}
	if week > 0 {
		conds = append(conds, qb.Eq("week", week))
	}
	return r.listBothKinds(ctx, "list picks by season", conds...)
}

func (r *PickRepository) CountByGame(ctx context.Context, gameID string) (int, error) {
	total := 0
	for _, kind := range []pick.ParticipantKind{pick.KindUser, pick.KindAnonymous} {
		table, _, _ := pickTable(kind)
		query, args, err := qb.Select("COUNT(*)").From(table).Where(qb.Eq("game_id", gameID)).ToSQL()
		if err != nil {
			return 0, fmt.Errorf("build count picks query: %w", err)
		}
		var n int
		if err := r.db.GetContext(ctx, &n, query, args...); err != nil {
			return 0, fmt.Errorf("count %s: %w", table, err)
		}
		total += n
	}
	return total, nil
}

func (r *PickRepository) Create(ctx context.Context, p pick.Pick, limits pick.Limits) error {
	table, identity, err := pickTable(p.Participant.Kind)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx create pick: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := r.lockWeek(ctx, tx, p, limits); err != nil {
		return err
	}
	existing, err := r.list(ctx, tx, p.Participant.Kind,
		qb.Eq(identity, p.Participant.Key), qb.Eq("season", p.Season), qb.Eq("week", p.Week))
	if err != nil {
		return fmt.Errorf("list week picks: %w", err)
	}
	if err := pick.CheckWrite(existing, p, nil, limits); err != nil {
		return err
	}

	query, args, err := qb.InsertInto(table).
		Columns("id", identity, "game_id", "season", "week", "selected_team", "is_lock", "result", "points", "created_at", "updated_at").
		Values(p.ID, p.Participant.Key, p.GameID, p.Season, p.Week, p.SelectedTeam, p.IsLock, string(resultOrPending(p.Result)), p.Points, p.CreatedAt, p.UpdatedAt).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build create pick query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("create pick: %w", mapPickWriteError(err))
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create pick tx: %w", err)
	}
	return nil
}

func (r *PickRepository) Update(ctx context.Context, p pick.Pick, limits pick.Limits) error {
	table, identity, err := pickTable(p.Participant.Kind)
	if err != nil {
		return err
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx update pick: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := r.lockWeek(ctx, tx, p, limits); err != nil {
		return err
	}

	builder, _ := pickSelectBuilder(p.Participant.Kind)
	query, args, err := builder.Where(qb.Eq("id", p.ID)).ForUpdate().ToSQL()
	if err != nil {
		return fmt.Errorf("build get pick for update query: %w", err)
	}
	var row pickTableModel
	if err := tx.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return fmt.Errorf("%w: %s", pick.ErrNotFound, p.ID)
		}
		return fmt.Errorf("get pick for update: %w", err)
	}
	previous := pickFromRow(p.Participant.Kind, row)

	existing, err := r.list(ctx, tx, p.Participant.Kind,
		qb.Eq(identity, p.Participant.Key), qb.Eq("season", p.Season), qb.Eq("week", p.Week))
	if err != nil {
		return fmt.Errorf("list week picks: %w", err)
	}
	if err := pick.CheckWrite(existing, p, &previous, limits); err != nil {
		return err
	}

	query, args, err = qb.Update(table).
		Set("game_id", p.GameID).
		Set("season", p.Season).
		Set("week", p.Week).
		Set("selected_team", p.SelectedTeam).
		Set("is_lock", p.IsLock).
		Set("updated_at", p.UpdatedAt).
		Where(qb.Eq("id", p.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update pick query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update pick: %w", mapPickWriteError(err))
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit update pick tx: %w", err)
	}
	return nil
}

func (r *PickRepository) Delete(ctx context.Context, kind pick.ParticipantKind, pickID string) error {
	table, _, err := pickTable(kind)
	if err != nil {
		return err
	}
	query, args, err := qb.DeleteFrom(table).Where(qb.Eq("id", pickID)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete pick query: %w", err)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete pick: %w", err)
	}
	if err := requireAffected(res, "delete pick"); err != nil {
		return fmt.Errorf("%w: %s", pick.ErrNotFound, pickID)
	}
	return nil
}

func (r *PickRepository) ApplyResults(ctx context.Context, updates []pick.ResultUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx apply results: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, u := range updates {
		table, _, err := pickTable(u.Kind)
		if err != nil {
			return err
		}
		query, args, err := qb.Update(table).
			Set("result", string(u.Result)).
			Set("points", u.Points).
			SetExpr("updated_at", "NOW()").
			Where(qb.Eq("id", u.PickID)).
			ToSQL()
		if err != nil {
			return fmt.Errorf("build apply result query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("apply result pick=%s: %w", u.PickID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit apply results tx: %w", err)
	}
	return nil
}

func (r *PickRepository) ResetResultsByWeek(ctx context.Context, season, week int) (int, error) {
	total := 0
	for _, kind := range []pick.ParticipantKind{pick.KindUser, pick.KindAnonymous} {
		table, _, _ := pickTable(kind)
		query, args, err := qb.Update(table).
			Set("result", string(pick.ResultPending)).
			Set("points", 0).
			SetExpr("updated_at", "NOW()").
			Where(
				qb.Eq("season", season),
				qb.Eq("week", week),
				qb.Or(qb.Cmp("result", "<>", string(pick.ResultPending)), qb.Cmp("points", "<>", 0)),
			).
			ToSQL()
		if err != nil {
			return 0, fmt.Errorf("build reset results query: %w", err)
		}
		res, err := r.db.ExecContext(ctx, query, args...)
		if err != nil {
			return 0, fmt.Errorf("reset %s results: %w", table, err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("rows affected reset %s: %w", table, err)
		}
		total += int(affected)
	}
	return total, nil
}

// lockWeek serializes writers of one participant's week and hands the
// configured caps to the trigger for this transaction.
func (r *PickRepository) lockWeek(ctx context.Context, tx *sqlx.Tx, p pick.Pick, limits pick.Limits) error {
	key := p.Participant.String() + ":" + strconv.Itoa(p.Season) + ":" + strconv.Itoa(p.Week)
	if _, err := tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", key); err != nil {
		return fmt.Errorf("lock pick week: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		"SELECT set_config('pickem.max_picks_per_week', $1, true), set_config('pickem.max_locks_per_week', $2, true)",
		strconv.Itoa(limits.MaxPicksPerWeek), strconv.Itoa(limits.MaxLocksPerWeek),
	); err != nil {
		return fmt.Errorf("set pick limits: %w", err)
	}
	return nil
}

func (r *PickRepository) list(ctx context.Context, q sqlx.QueryerContext, kind pick.ParticipantKind, conds ...qb.Condition) ([]pick.Pick, error) {
	builder, err := pickSelectBuilder(kind)
	if err != nil {
		return nil, err
	}
	query, args, err := builder.Where(conds...).OrderBy("week", "created_at", "id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list picks query: %w", err)
	}

	var rows []pickTableModel
	if err := sqlx.SelectContext(ctx, q, &rows, query, args...); err != nil {
		return nil, err
	}
	out := make([]pick.Pick, 0, len(rows))
	for _, row := range rows {
		out = append(out, pickFromRow(kind, row))
	}
	return out, nil
}

func (r *PickRepository) listBothKinds(ctx context.Context, op string, conds ...qb.Condition) ([]pick.Pick, error) {
	users, err := r.list(ctx, r.db, pick.KindUser, conds...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	anonymous, err := r.list(ctx, r.db, pick.KindAnonymous, conds...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	out := append(users, anonymous...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Week != out[j].Week {
			return out[i].Week < out[j].Week
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func pickFromRow(kind pick.ParticipantKind, row pickTableModel) pick.Pick {
	return pick.Pick{
		ID:           row.ID,
		Participant:  pick.Participant{Kind: kind, Key: row.Identity},
		GameID:       row.GameID,
		Season:       row.Season,
		Week:         row.Week,
		SelectedTeam: row.SelectedTeam,
		IsLock:       row.IsLock,
		Result:       pick.Result(row.Result),
		Points:       row.Points,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}

func resultOrPending(r pick.Result) pick.Result {
	if r == "" {
		return pick.ResultPending
	}
	return r
}
