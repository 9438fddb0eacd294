package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/pickem-league/internal/domain/email"
	"github.com/riskibarqy/pickem-league/internal/domain/pick"
	"github.com/riskibarqy/pickem-league/internal/infrastructure/repository/memory"
	idgen "github.com/riskibarqy/pickem-league/internal/platform/id"
	"github.com/riskibarqy/pickem-league/internal/platform/logging"
)

var fixtureNow = time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)

type sequenceIDs struct {
	mu   sync.Mutex
	next int
}

func (g *sequenceIDs) NewID() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.next++
	return fmt.Sprintf("id-%03d", g.next), nil
}

var _ idgen.Generator = (*sequenceIDs)(nil)

type countingInvalidator struct {
	mu      sync.Mutex
	seasons []int
}

func (c *countingInvalidator) Invalidate(_ context.Context, season int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seasons = append(c.seasons, season)
}

func (c *countingInvalidator) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.seasons)
}

type outbox struct {
	mu   sync.Mutex
	sent []email.Message
	fail map[string]error
}

func (o *outbox) Send(_ context.Context, msg email.Message) (email.Receipt, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	for _, to := range msg.To {
		if err := o.fail[to]; err != nil {
			return email.Receipt{}, err
		}
	}
	o.sent = append(o.sent, msg)
	return email.Receipt{MessageID: fmt.Sprintf("msg-%d", len(o.sent))}, nil
}

func (o *outbox) recipients() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	var out []string
	for _, m := range o.sent {
		out = append(out, m.To...)
	}
	return out
}

// league wires the services over the memory repositories seeded with one
// week of games kicking off a week after fixtureNow.
type league struct {
	games       *memory.GameRepository
	settings    *memory.WeekSettingsRepository
	picks       *memory.PickRepository
	users       *memory.UserRepository
	invalidator *countingInvalidator
	outbox      *outbox

	pickSvc     *PickService
	gameSvc     *GameService
	weekSvc     *WeekService
	leaderboard *LeaderboardService
	reminders   *ReminderService
}

func newLeague(t *testing.T) *league {
	t.Helper()

	logger := logging.NewNop()
	l := &league{
		games:       memory.NewGameRepository(memory.SeedGames(fixtureNow)),
		settings:    memory.NewWeekSettingsRepository(),
		picks:       memory.NewPickRepository(),
		users:       memory.NewUserRepository(memory.SeedUsers(fixtureNow)),
		invalidator: &countingInvalidator{},
		outbox:      &outbox{fail: map[string]error{}},
	}
	ids := &sequenceIDs{}
	now := func() time.Time { return fixtureNow }

	l.pickSvc = NewPickService(l.games, l.settings, l.picks, pick.DefaultLimits(), ids, l.invalidator, logger)
	l.pickSvc.now = now
	l.gameSvc = NewGameService(l.games, l.picks, pick.DefaultScoring(), ids, l.invalidator, logger, 2)
	l.gameSvc.now = now
	l.weekSvc = NewWeekService(l.settings, logger)
	l.weekSvc.now = now
	l.leaderboard = NewLeaderboardService(l.picks, l.users, nil, logger)
	l.reminders = NewReminderService(l.settings, l.users, l.picks, NewEmailService(l.outbox, "league@example.com", logger), ReminderConfig{
		Lead:      48 * time.Hour,
		PublicURL: "https://pickem.example.com",
		Workers:   2,
		MaxPicks:  pick.DefaultMaxPicksPerWeek,
	}, logger)
	l.reminders.now = now
	return l
}

func (l *league) submit(t *testing.T, participant pick.Participant, gameID, team string, isLock bool) pick.Pick {
	t.Helper()
	p, err := l.pickSvc.SubmitPick(context.Background(), SubmitPickInput{
		Participant:  participant,
		GameID:       gameID,
		SelectedTeam: team,
		IsLock:       isLock,
	})
	if err != nil {
		t.Fatalf("submit pick %s: %v", gameID, err)
	}
	return p
}
