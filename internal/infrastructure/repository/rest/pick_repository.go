package rest

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/pickem-league/internal/domain/pick"
)

// PickRepository checks limits before writing and relies on the database
// triggers to reject writes that race past the check.
type PickRepository struct {
	client *Client
	now    func() time.Time
}

func NewPickRepository(client *Client) *PickRepository {
	return &PickRepository{client: client, now: time.Now}
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

func (r *PickRepository) GetByID(ctx context.Context, kind pick.ParticipantKind, pickID string) (pick.Pick, bool, error) {
	table, _, err := pickTable(kind)
	if err != nil {
		return pick.Pick{}, false, err
	}
	var rows []pickRow
	if err := r.client.Select(ctx, From(table).Select("*").Where(Eq("id", pickID)).Limit(1), &rows); err != nil {
		return pick.Pick{}, false, fmt.Errorf("get pick: %w", err)
	}
	if len(rows) == 0 {
		return pick.Pick{}, false, nil
	}
	return pickFromRow(kind, rows[0]), true, nil
}

func (r *PickRepository) ListByParticipant(ctx context.Context, participant pick.Participant, season, week int) ([]pick.Pick, error) {
	_, identity, err := pickTable(participant.Kind)
	if err != nil {
		return nil, err
	}
	filters := []Filter{Eq(identity, participant.Key), Eq("season", season)}
	if week > 0 {
		filters = append(filters, Eq("week", week))
	}
	return r.list(ctx, participant.Kind, filters...)
}

func (r *PickRepository) ListByGame(ctx context.Context, gameID string) ([]pick.Pick, error) {
	return r.listBothKinds(ctx, Eq("game_id", gameID))
}

func (r *PickRepository) ListBySeason(ctx context.Context, season, week int) ([]pick.Pick, error) {
	filters := []Filter{Eq("season", season)}
	if week > 0 {
		filters = append(filters, Eq("week", week))
	}
	return r.listBothKinds(ctx, filters...)
}

func (r *PickRepository) CountByGame(ctx context.Context, gameID string) (int, error) {
	picks, err := r.ListByGame(ctx, gameID)
	if err != nil {
		return 0, err
	}
	return len(picks), nil
}

func (r *PickRepository) Create(ctx context.Context, p pick.Pick, limits pick.Limits) error {
	table, identity, err := pickTable(p.Participant.Kind)
	if err != nil {
		return err
	}
	existing, err := r.list(ctx, p.Participant.Kind, Eq(identity, p.Participant.Key), Eq("season", p.Season), Eq("week", p.Week))
	if err != nil {
		return err
	}
	if err := pick.CheckWrite(existing, p, nil, limits); err != nil {
		return err
	}

	if err := r.client.Insert(ctx, From(table), pickToRow(p), nil); err != nil {
		return fmt.Errorf("create pick: %w", mapPickAPIError(err))
	}
	return nil
}

func (r *PickRepository) Update(ctx context.Context, p pick.Pick, limits pick.Limits) error {
	table, identity, err := pickTable(p.Participant.Kind)
	if err != nil {
		return err
	}
	previous, ok, err := r.GetByID(ctx, p.Participant.Kind, p.ID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", pick.ErrNotFound, p.ID)
	}
	existing, err := r.list(ctx, p.Participant.Kind, Eq(identity, p.Participant.Key), Eq("season", p.Season), Eq("week", p.Week))
	if err != nil {
		return err
	}
	if err := pick.CheckWrite(existing, p, &previous, limits); err != nil {
		return err
	}

	body := map[string]any{
		"game_id":       p.GameID,
		"season":        p.Season,
		"week":          p.Week,
		"selected_team": p.SelectedTeam,
		"is_lock":       p.IsLock,
		"updated_at":    p.UpdatedAt.UTC(),
	}
	var rows []pickRow
	if err := r.client.Update(ctx, From(table).Where(Eq("id", p.ID)), body, &rows); err != nil {
		return fmt.Errorf("update pick: %w", mapPickAPIError(err))
	}
	if len(rows) == 0 {
		return fmt.Errorf("%w: %s", pick.ErrNotFound, p.ID)
	}
	return nil
}

func (r *PickRepository) Delete(ctx context.Context, kind pick.ParticipantKind, pickID string) error {
	table, _, err := pickTable(kind)
	if err != nil {
		return err
	}
	var rows []pickRow
	if err := r.client.Delete(ctx, From(table).Where(Eq("id", pickID)), &rows); err != nil {
		return fmt.Errorf("delete pick: %w", err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("%w: %s", pick.ErrNotFound, pickID)
	}
	return nil
}

func (r *PickRepository) ApplyResults(ctx context.Context, updates []pick.ResultUpdate) error {
	now := r.now().UTC()
	for _, u := range updates {
		table, _, err := pickTable(u.Kind)
		if err != nil {
			return err
		}
		body := map[string]any{"result": string(u.Result), "points": u.Points, "updated_at": now}
		if err := r.client.Update(ctx, From(table).Where(Eq("id", u.PickID)), body, nil); err != nil {
			return fmt.Errorf("apply result pick=%s: %w", u.PickID, err)
		}
	}
	return nil
}

func (r *PickRepository) ResetResultsByWeek(ctx context.Context, season, week int) (int, error) {
	total := 0
	for _, kind := range []pick.ParticipantKind{pick.KindUser, pick.KindAnonymous} {
		table, _, _ := pickTable(kind)
		var rows []pickRow
		err := r.client.Update(ctx,
			From(table).
				Where(Eq("season", season), Eq("week", week)).
				Or(Neq("result", string(pick.ResultPending)), Neq("points", 0)),
			map[string]any{"result": string(pick.ResultPending), "points": 0, "updated_at": r.now().UTC()},
			&rows,
		)
		if err != nil {
			return total, fmt.Errorf("reset %s results: %w", table, err)
		}
		total += len(rows)
	}
	return total, nil
}

func (r *PickRepository) list(ctx context.Context, kind pick.ParticipantKind, filters ...Filter) ([]pick.Pick, error) {
	table, _, err := pickTable(kind)
	if err != nil {
		return nil, err
	}
	var rows []pickRow
	q := From(table).Select("*").Where(filters...).Order("week.asc", "created_at.asc", "id.asc")
	if err := r.client.Select(ctx, q, &rows); err != nil {
		return nil, fmt.Errorf("list %s: %w", table, err)
	}
	out := make([]pick.Pick, 0, len(rows))
	for _, row := range rows {
		out = append(out, pickFromRow(kind, row))
	}
	return out, nil
}

func (r *PickRepository) listBothKinds(ctx context.Context, filters ...Filter) ([]pick.Pick, error) {
	users, err := r.list(ctx, pick.KindUser, filters...)
	if err != nil {
		return nil, err
	}
	anonymous, err := r.list(ctx, pick.KindAnonymous, filters...)
	if err != nil {
		return nil, err
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

// mapPickAPIError translates trigger and unique-constraint rejections.
func mapPickAPIError(err error) error {
	apiErr, ok := asAPIError(err)
	if !ok {
		return err
	}
	msg := strings.ToLower(apiErr.Message)
	switch apiErr.Code {
	case "23505":
		return pick.ErrDuplicatePick
	case "23514":
		switch {
		case strings.Contains(msg, "pick limit"):
			return pick.ErrPickLimitExceeded
		case strings.Contains(msg, "lock limit"):
			return pick.ErrLockLimitExceeded
		}
	}
	return err
}

func pickFromRow(kind pick.ParticipantKind, row pickRow) pick.Pick {
	key := row.UserID
	if kind == pick.KindAnonymous {
		key = row.Email
	}
	return pick.Pick{
		ID:           row.ID,
		Participant:  pick.Participant{Kind: kind, Key: key},
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

func pickToRow(p pick.Pick) pickRow {
	row := pickRow{
		ID:           p.ID,
		GameID:       p.GameID,
		Season:       p.Season,
		Week:         p.Week,
		SelectedTeam: p.SelectedTeam,
		IsLock:       p.IsLock,
		Result:       string(p.Result),
		Points:       p.Points,
		CreatedAt:    p.CreatedAt.UTC(),
		UpdatedAt:    p.UpdatedAt.UTC(),
	}
	if row.Result == "" {
		row.Result = string(pick.ResultPending)
	}
	if p.Participant.Kind == pick.KindAnonymous {
		row.Email = p.Participant.Key
	} else {
		row.UserID = p.Participant.Key
	}
	return row
}
