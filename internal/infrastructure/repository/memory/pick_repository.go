package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/riskibarqy/pickem-league/internal/domain/pick"
)

// PickRepository keeps user and anonymous picks in one map. A single mutex
// serializes writers, which makes the weekly limit check atomic.
type PickRepository struct {
	mu    sync.RWMutex
	items map[string]pick.Pick
}

func NewPickRepository() *PickRepository {
	return &PickRepository{items: make(map[string]pick.Pick)}
}

func (r *PickRepository) GetByID(_ context.Context, kind pick.ParticipantKind, pickID string) (pick.Pick, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[pickID]
	if !ok || p.Participant.Kind != kind {
		return pick.Pick{}, false, nil
	}
	return p, true, nil
}

func (r *PickRepository) ListByParticipant(_ context.Context, participant pick.Participant, season, week int) ([]pick.Pick, error) {
	return r.filter(func(p pick.Pick) bool {
		return p.Participant == participant && p.Season == season && (week == 0 || p.Week == week)
	}), nil
}

func (r *PickRepository) ListByGame(_ context.Context, gameID string) ([]pick.Pick, error) {
	return r.filter(func(p pick.Pick) bool { return p.GameID == gameID }), nil
}

func (r *PickRepository) ListBySeason(_ context.Context, season, week int) ([]pick.Pick, error) {
	return r.filter(func(p pick.Pick) bool {
		return p.Season == season && (week == 0 || p.Week == week)
	}), nil
}

func (r *PickRepository) CountByGame(ctx context.Context, gameID string) (int, error) {
	picks, err := r.ListByGame(ctx, gameID)
	return len(picks), err
}

func (r *PickRepository) Create(_ context.Context, p pick.Pick, limits pick.Limits) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[p.ID]; exists {
		return fmt.Errorf("pick %s already exists", p.ID)
	}
	if err := pick.CheckWrite(r.weekLocked(p), p, nil, limits); err != nil {
		return err
	}
	r.items[p.ID] = p
	return nil
}

func (r *PickRepository) Update(_ context.Context, p pick.Pick, limits pick.Limits) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	previous, exists := r.items[p.ID]
	if !exists || previous.Participant.Kind != p.Participant.Kind {
		return fmt.Errorf("%w: %s", pick.ErrNotFound, p.ID)
	}
	if err := pick.CheckWrite(r.weekLocked(p), p, &previous, limits); err != nil {
		return err
	}
	r.items[p.ID] = p
	return nil
}

func (r *PickRepository) Delete(_ context.Context, kind pick.ParticipantKind, pickID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, exists := r.items[pickID]
	if !exists || p.Participant.Kind != kind {
		return fmt.Errorf("%w: %s", pick.ErrNotFound, pickID)
	}
	delete(r.items, pickID)
	return nil
}

func (r *PickRepository) ApplyResults(_ context.Context, updates []pick.ResultUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range updates {
		p, exists := r.items[u.PickID]
		if !exists || p.Participant.Kind != u.Kind {
			continue
		}
		p.Result = u.Result
		p.Points = u.Points
		r.items[u.PickID] = p
	}
	return nil
}

func (r *PickRepository) ResetResultsByWeek(_ context.Context, season, week int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	reset := 0
	for id, p := range r.items {
		if p.Season != season || p.Week != week {
			continue
		}
		if p.Result == pick.ResultPending && p.Points == 0 {
			continue
		}
		p.Result = pick.ResultPending
		p.Points = 0
		r.items[id] = p
		reset++
	}
	return reset, nil
}

// weekLocked returns the participant's picks for p's week. Caller holds mu.
func (r *PickRepository) weekLocked(p pick.Pick) []pick.Pick {
	out := make([]pick.Pick, 0, 8)
	for _, existing := range r.items {
		if existing.Participant == p.Participant && existing.Season == p.Season && existing.Week == p.Week {
			out = append(out, existing)
		}
	}
	return out
}

func (r *PickRepository) filter(keep func(pick.Pick) bool) []pick.Pick {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pick.Pick, 0)
	for _, p := range r.items {
		if keep(p) {
			out = append(out, p)
		}
	}
	sortPicks(out)
	return out
}
