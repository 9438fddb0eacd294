package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/pickem-league/internal/domain/pick"
	"github.com/riskibarqy/pickem-league/internal/domain/user"
	"github.com/riskibarqy/pickem-league/internal/platform/cache"
	"github.com/riskibarqy/pickem-league/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeaderboardService_RanksGradedPicks(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	l := newLeague(t)
	_, err := l.users.Upsert(ctx, user.User{ID: "u1", Email: "ann@example.com", DisplayName: "Ann", CreatedAt: fixtureNow})
	require.NoError(t, err)
	_, err = l.users.Upsert(ctx, user.User{ID: "u2", Email: "bo@example.com", CreatedAt: fixtureNow})
	require.NoError(t, err)

	l.submit(t, pick.UserParticipant("u1"), "w1-bama-fsu", "Alabama", true)
	l.submit(t, pick.UserParticipant("u2"), "w1-bama-fsu", "Florida State", false)
	_, err = l.pickSvc.SubmitAnonymousPicks(ctx, "jordan@example.com", []AnonymousPickInput{{GameID: "w1-bama-fsu", SelectedTeam: "Alabama"}})
	require.NoError(t, err)

	_, _, err = l.gameSvc.RecordScore(ctx, "w1-bama-fsu", 35, 10)
	require.NoError(t, err)

	entries, err := l.leaderboard.Season(ctx, 2025)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "Ann", entries[0].DisplayName)
	assert.Equal(t, 2, entries[0].Points)
	assert.Equal(t, 1, entries[0].LockWins)
	assert.Equal(t, 1, entries[0].Rank)

	assert.Equal(t, "jo****@example.com", entries[1].DisplayName)
	assert.Equal(t, 2, entries[1].Rank)

	assert.Equal(t, "bo", entries[2].DisplayName)
	assert.Equal(t, 1, entries[2].Losses)
	assert.Equal(t, 3, entries[2].Rank)

	week, err := l.leaderboard.Week(ctx, 2025, 1)
	require.NoError(t, err)
	assert.Len(t, week, 3)

	_, err = l.leaderboard.Week(ctx, 2025, 2)
	require.NoError(t, err)
	_, err = l.leaderboard.Season(ctx, 0)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestLeaderboardService_CachesUntilInvalidated(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	l := newLeague(t)
	svc := NewLeaderboardService(l.picks, l.users, cache.NewMemory(time.Minute), logging.NewNop())

	l.submit(t, pick.UserParticipant("u1"), "w1-bama-fsu", "Alabama", false)
	first, err := svc.Season(ctx, 2025)
	require.NoError(t, err)
	require.Len(t, first, 1)

	l.submit(t, pick.UserParticipant("u2"), "w1-uga-clem", "Georgia", false)
	cached, err := svc.Season(ctx, 2025)
	require.NoError(t, err)
	assert.Len(t, cached, 1)

	svc.Invalidate(ctx, 2025)
	fresh, err := svc.Season(ctx, 2025)
	require.NoError(t, err)
	assert.Len(t, fresh, 2)
}
