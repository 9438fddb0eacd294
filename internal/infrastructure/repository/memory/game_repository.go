package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/riskibarqy/pickem-league/internal/domain/game"
)

type GameRepository struct {
	mu    sync.RWMutex
	items map[string]game.Game
	now   func() time.Time
}

func NewGameRepository(games []game.Game) *GameRepository {
	items := make(map[string]game.Game, len(games))
	for _, g := range games {
		items[g.ID] = cloneGame(g)
	}
	return &GameRepository{items: items, now: time.Now}
}

func (r *GameRepository) GetByID(_ context.Context, gameID string) (game.Game, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	g, ok := r.items[gameID]
	if !ok {
		return game.Game{}, false, nil
	}
	return cloneGame(g), true, nil
}

func (r *GameRepository) ListByWeek(_ context.Context, season, week int) ([]game.Game, error) {
	return r.filter(func(g game.Game) bool { return g.Season == season && g.Week == week }), nil
}

func (r *GameRepository) ListBySeason(_ context.Context, season int) ([]game.Game, error) {
	return r.filter(func(g game.Game) bool { return g.Season == season }), nil
}

func (r *GameRepository) Create(_ context.Context, g game.Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[g.ID]; exists {
		return fmt.Errorf("game %s already exists", g.ID)
	}
	r.items[g.ID] = cloneGame(g)
	return nil
}

func (r *GameRepository) Update(_ context.Context, g game.Game) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[g.ID]; !exists {
		return fmt.Errorf("%w: %s", game.ErrNotFound, g.ID)
	}
	r.items[g.ID] = cloneGame(g)
	return nil
}

func (r *GameRepository) Delete(_ context.Context, gameID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[gameID]; !exists {
		return fmt.Errorf("%w: %s", game.ErrNotFound, gameID)
	}
	delete(r.items, gameID)
	return nil
}

func (r *GameRepository) SetScore(_ context.Context, gameID string, homeScore, awayScore int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	g, exists := r.items[gameID]
	if !exists {
		return fmt.Errorf("%w: %s", game.ErrNotFound, gameID)
	}
	g = g.WithScore(homeScore, awayScore)
	g.UpdatedAt = r.now().UTC()
	r.items[gameID] = g
	return nil
}

func (r *GameRepository) ResetScoresByWeek(_ context.Context, season, week int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	reset := 0
	for id, g := range r.items {
		if g.Season != season || g.Week != week || (g.HomeScore == nil && g.Status == game.StatusScheduled) {
			continue
		}
		g = g.WithoutScore()
		g.UpdatedAt = r.now().UTC()
		r.items[id] = g
		reset++
	}
	return reset, nil
}

func (r *GameRepository) filter(keep func(game.Game) bool) []game.Game {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]game.Game, 0)
	for _, g := range r.items {
		if keep(g) {
			out = append(out, cloneGame(g))
		}
	}
	sortGames(out)
	return out
}

func cloneGame(g game.Game) game.Game {
	if g.HomeScore != nil {
		v := *g.HomeScore
		g.HomeScore = &v
	}
	if g.AwayScore != nil {
		v := *g.AwayScore
		g.AwayScore = &v
	}
	return g
}
