package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/pickem-league/internal/domain/game"
	"github.com/riskibarqy/pickem-league/internal/domain/pick"
	gamemock "github.com/riskibarqy/pickem-league/internal/mocks/domain/game"
	pickmock "github.com/riskibarqy/pickem-league/internal/mocks/domain/pick"
	"github.com/riskibarqy/pickem-league/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestGameService_RecordScore_GradesPicks(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	l := newLeague(t)
	cover := l.submit(t, pick.UserParticipant("u1"), "w1-bama-fsu", "Alabama", true)
	miss := l.submit(t, pick.UserParticipant("u2"), "w1-bama-fsu", "Florida State", false)
	push := l.submit(t, pick.UserParticipant("u1"), "w1-tex-mich", "Michigan", false)

	// Alabama -13.5 wins by 16.
	final, summary, err := l.gameSvc.RecordScore(ctx, "w1-bama-fsu", 30, 14)
	require.NoError(t, err)
	assert.True(t, final.IsFinal())
	assert.Equal(t, GradeSummary{Games: 1, Picks: 2}, summary)

	// Texas -3 wins by exactly 3.
	_, _, err = l.gameSvc.RecordScore(ctx, "w1-tex-mich", 24, 21)
	require.NoError(t, err)

	got, ok, err := l.picks.GetByID(ctx, pick.KindUser, cover.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, pick.ResultWin, got.Result)
	assert.Equal(t, 2, got.Points)

	got, _, err = l.picks.GetByID(ctx, pick.KindUser, miss.ID)
	require.NoError(t, err)
	assert.Equal(t, pick.ResultLoss, got.Result)
	assert.Zero(t, got.Points)

	got, _, err = l.picks.GetByID(ctx, pick.KindUser, push.ID)
	require.NoError(t, err)
	assert.Equal(t, pick.ResultPush, got.Result)

	assert.GreaterOrEqual(t, l.invalidator.count(), 2)
}

func TestGameService_RecordScore_RejectsNegativeScore(t *testing.T) {
	t.Parallel()

	l := newLeague(t)
	_, _, err := l.gameSvc.RecordScore(context.Background(), "w1-bama-fsu", -1, 3)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestGameService_ResetAndRegradeWeek(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	l := newLeague(t)
	p := l.submit(t, pick.UserParticipant("u1"), "w1-uga-clem", "Clemson", false)

	_, _, err := l.gameSvc.RecordScore(ctx, "w1-uga-clem", 20, 17)
	require.NoError(t, err)

	reset, err := l.gameSvc.ResetWeekScores(ctx, 2025, 1)
	require.NoError(t, err)
	assert.Equal(t, ResetSummary{Games: 1, Picks: 1}, reset)

	got, _, err := l.picks.GetByID(ctx, pick.KindUser, p.ID)
	require.NoError(t, err)
	assert.Equal(t, pick.ResultPending, got.Result)

	g, err := l.gameSvc.Get(ctx, "w1-uga-clem")
	require.NoError(t, err)
	assert.False(t, g.IsFinal())

	require.NoError(t, l.games.SetScore(ctx, "w1-uga-clem", 20, 17))
	summary, err := l.gameSvc.RegradeWeek(ctx, 2025, 1)
	require.NoError(t, err)
	assert.Equal(t, GradeSummary{Games: 1, Picks: 1}, summary)

	got, _, err = l.picks.GetByID(ctx, pick.KindUser, p.ID)
	require.NoError(t, err)
	assert.Equal(t, pick.ResultWin, got.Result)
	assert.Equal(t, 1, got.Points)
}

func TestGameService_ValidatesWeek(t *testing.T) {
	t.Parallel()

	l := newLeague(t)
	_, err := l.gameSvc.ListByWeek(context.Background(), 2025, game.MaxWeek+1)
	require.ErrorIs(t, err, ErrInvalidInput)
	_, err = l.gameSvc.RegradeWeek(context.Background(), 0, 1)
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestGameService_UpdateFreezesMatchupWithPicks(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	games := gamemock.NewRepository(t)
	picks := pickmock.NewRepository(t)
	svc := NewGameService(games, picks, pick.DefaultScoring(), &sequenceIDs{}, nil, logging.NewNop(), 1)
	svc.now = func() time.Time { return fixtureNow }

	current := game.Game{
		ID: "g1", Season: 2025, Week: 2, HomeTeam: "Oregon", AwayTeam: "Utah",
		Spread: -3, Status: game.StatusScheduled, LockAt: fixtureNow.Add(48 * time.Hour),
	}

	games.On("GetByID", mock.Anything, "g1").Return(current, true, nil).Once()
	picks.On("CountByGame", mock.Anything, "g1").Return(4, nil).Once()

	_, err := svc.Update(ctx, "g1", GameInput{
		Season: 2025, Week: 2, HomeTeam: "Oregon", AwayTeam: "USC", Spread: -3, LockAt: current.LockAt,
	})
	require.ErrorIs(t, err, ErrConflict)

	// Moving only the spread is allowed.
	games.On("GetByID", mock.Anything, "g1").Return(current, true, nil).Once()
	games.On("Update", mock.Anything, mock.MatchedBy(func(g game.Game) bool {
		return g.ID == "g1" && g.Spread == -4.5
	})).Return(nil).Once()

	updated, err := svc.Update(ctx, "g1", GameInput{
		Season: 2025, Week: 2, HomeTeam: "Oregon", AwayTeam: "Utah", Spread: -4.5, LockAt: current.LockAt,
	})
	require.NoError(t, err)
	assert.Equal(t, -4.5, updated.Spread)
}

func TestGameService_DeleteRejectsGameWithPicks(t *testing.T) {
	t.Parallel()

	games := gamemock.NewRepository(t)
	picks := pickmock.NewRepository(t)
	svc := NewGameService(games, picks, pick.DefaultScoring(), &sequenceIDs{}, nil, logging.NewNop(), 1)

	games.On("GetByID", mock.Anything, "g1").Return(game.Game{ID: "g1"}, true, nil).Once()
	picks.On("CountByGame", mock.Anything, "g1").Return(1, nil).Once()

	err := svc.Delete(context.Background(), "g1")
	require.ErrorIs(t, err, ErrConflict)

	games.On("GetByID", mock.Anything, "missing").Return(game.Game{}, false, nil).Once()
	err = svc.Delete(context.Background(), "missing")
	require.ErrorIs(t, err, ErrNotFound)
}
