package fallback

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/pickem-league/internal/domain/game"
	"github.com/riskibarqy/pickem-league/internal/domain/weeksettings"
	"github.com/riskibarqy/pickem-league/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/pickem-league/internal/platform/logging"
	"github.com/riskibarqy/pickem-league/internal/platform/resilience"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 8, 25, 12, 0, 0, 0, time.UTC)

type slowGames struct {
	game.Repository
	calls int
}

func (s *slowGames) GetByID(ctx context.Context, _ string) (game.Game, bool, error) {
	s.calls++
	<-ctx.Done()
	return game.Game{}, false, ctx.Err()
}

type failingGames struct {
	game.Repository
	calls int
}

func (f *failingGames) ListByWeek(context.Context, int, int) ([]game.Game, error) {
	f.calls++
	return nil, errors.New("connection refused")
}

func TestGameRepository_PrimaryTimeoutUsesSecondary(t *testing.T) {
	t.Parallel()

	secondary := memory.NewGameRepository(memory.SeedGames(testNow))
	repo := NewGameRepository(&slowGames{}, secondary, Config{Timeout: 10 * time.Millisecond, Logger: logging.NewNop()})

	g, ok, err := repo.GetByID(context.Background(), "w1-bama-fsu")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Alabama", g.HomeTeam)
}

func TestGameRepository_PrimarySuccessSkipsSecondary(t *testing.T) {
	t.Parallel()

	primary := memory.NewGameRepository(memory.SeedGames(testNow))
	secondary := &failingGames{Repository: memory.NewGameRepository(nil)}
	repo := NewGameRepository(primary, secondary, Config{Timeout: time.Second, Logger: logging.NewNop()})

	games, err := repo.ListByWeek(context.Background(), memory.SeedSeason, 1)
	require.NoError(t, err)
	assert.NotEmpty(t, games)
	assert.Equal(t, 0, secondary.calls)
}

func TestGameRepository_OpenBreakerSkipsPrimary(t *testing.T) {
	t.Parallel()

	primary := &failingGames{Repository: memory.NewGameRepository(nil)}
	secondary := memory.NewGameRepository(memory.SeedGames(testNow))
	breaker := resilience.NewCircuitBreaker(1, time.Minute, 1)
	repo := NewGameRepository(primary, secondary, Config{Timeout: time.Second, Breaker: breaker, Logger: logging.NewNop()})

	for i := 0; i < 3; i++ {
		games, err := repo.ListByWeek(context.Background(), memory.SeedSeason, 1)
		require.NoError(t, err)
		assert.NotEmpty(t, games)
	}
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, resilience.CircuitStateOpen, breaker.State())
}

func TestGameRepository_BothFailReturnsJoinedError(t *testing.T) {
	t.Parallel()

	primary := &failingGames{Repository: memory.NewGameRepository(nil)}
	secondary := &failingGames{Repository: memory.NewGameRepository(nil)}
	repo := NewGameRepository(primary, secondary, Config{Timeout: time.Second, Logger: logging.NewNop()})

	_, err := repo.ListByWeek(context.Background(), memory.SeedSeason, 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "primary")
	assert.Contains(t, err.Error(), "secondary")
}

func TestGameRepository_WritesGoToPrimary(t *testing.T) {
	t.Parallel()

	primary := memory.NewGameRepository(memory.SeedGames(testNow))
	secondary := memory.NewGameRepository(memory.SeedGames(testNow))
	repo := NewGameRepository(primary, secondary, Config{Timeout: time.Second, Logger: logging.NewNop()})

	require.NoError(t, repo.SetScore(context.Background(), "w1-bama-fsu", 28, 10))

	g, _, err := primary.GetByID(context.Background(), "w1-bama-fsu")
	require.NoError(t, err)
	assert.True(t, g.IsFinal())
	g, _, err = secondary.GetByID(context.Background(), "w1-bama-fsu")
	require.NoError(t, err)
	assert.False(t, g.IsFinal())
}

func TestWeekSettingsRepository_MissingRowIsNotRetried(t *testing.T) {
	t.Parallel()

	primary := memory.NewWeekSettingsRepository()
	secondary := memory.NewWeekSettingsRepository()
	require.NoError(t, secondary.Upsert(context.Background(), weeksettings.Settings{Season: 2025, Week: 1, IsLocked: true}))
	repo := NewWeekSettingsRepository(primary, secondary, Config{Timeout: time.Second, Logger: logging.NewNop()})

	_, ok, err := repo.Get(context.Background(), 2025, 1)
	require.NoError(t, err)
	assert.False(t, ok)
}
