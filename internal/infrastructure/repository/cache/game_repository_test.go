package cache

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/pickem-league/internal/domain/game"
	"github.com/riskibarqy/pickem-league/internal/infrastructure/repository/memory"
	basecache "github.com/riskibarqy/pickem-league/internal/platform/cache"
	"github.com/riskibarqy/pickem-league/internal/platform/logging"
)

type countingGames struct {
	game.Repository
	gets int
}

func (c *countingGames) GetByID(ctx context.Context, gameID string) (game.Game, bool, error) {
	c.gets++
	return c.Repository.GetByID(ctx, gameID)
}

func TestGameRepository_CachesUntilWrite(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	now := time.Date(2025, 8, 25, 12, 0, 0, 0, time.UTC)
	inner := &countingGames{Repository: memory.NewGameRepository(memory.SeedGames(now))}
	repo := NewGameRepository(inner, basecache.NewMemory(time.Minute), logging.NewNop())

	for i := 0; i < 3; i++ {
		g, ok, err := repo.GetByID(ctx, "w1-bama-fsu")
		if err != nil || !ok {
			t.Fatalf("get game: ok=%v err=%v", ok, err)
		}
		if g.HomeScore != nil {
			t.Fatalf("seed game must be unscored")
		}
	}
	if inner.gets != 1 {
		t.Fatalf("expected one backend read, got %d", inner.gets)
	}

	if err := repo.SetScore(ctx, "w1-bama-fsu", 35, 14); err != nil {
		t.Fatalf("set score: %v", err)
	}
	g, _, err := repo.GetByID(ctx, "w1-bama-fsu")
	if err != nil {
		t.Fatalf("get after write: %v", err)
	}
	if inner.gets != 2 {
		t.Fatalf("expected a fresh backend read after write, got %d reads", inner.gets)
	}
	if !g.IsFinal() || *g.HomeScore != 35 {
		t.Fatalf("stale game returned: %+v", g)
	}
}

func TestGameRepository_CachesMisses(t *testing.T) {
	t.Parallel()

	inner := &countingGames{Repository: memory.NewGameRepository(nil)}
	repo := NewGameRepository(inner, basecache.NewMemory(time.Minute), logging.NewNop())

	for i := 0; i < 2; i++ {
		if _, ok, err := repo.GetByID(context.Background(), "missing"); err != nil || ok {
			t.Fatalf("expected miss, ok=%v err=%v", ok, err)
		}
	}
	if inner.gets != 1 {
		t.Fatalf("expected cached miss, got %d reads", inner.gets)
	}
}
