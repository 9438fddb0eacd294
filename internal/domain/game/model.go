package game

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

const (
	MinWeek = 1
	MaxWeek = 20
)

var (
	ErrNotFinal = errors.New("game is not final")
	ErrNotFound = errors.New("game not found")
)

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusFinal     Status = "final"
)

// Game is a single matchup graded against the spread. Spread is the line
// applied to the home team: -7.5 means the home team is favoured by 7.5.
type Game struct {
	ID        string
	Season    int
	Week      int
	HomeTeam  string
	AwayTeam  string
	Spread    float64
	HomeScore *int
	AwayScore *int
	Status    Status
	LockAt    time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (g Game) Validate() error {
	if g.Season <= 0 {
		return fmt.Errorf("season must be > 0")
	}
	if g.Week < MinWeek || g.Week > MaxWeek {
		return fmt.Errorf("week must be between %d and %d", MinWeek, MaxWeek)
	}
	home := strings.TrimSpace(g.HomeTeam)
	away := strings.TrimSpace(g.AwayTeam)
	if home == "" || away == "" {
		return fmt.Errorf("home and away teams are required")
	}
	if strings.EqualFold(home, away) {
		return fmt.Errorf("home and away teams must differ")
	}
	if math.IsNaN(g.Spread) || math.IsInf(g.Spread, 0) {
		return fmt.Errorf("spread must be a finite number")
	}
	if g.LockAt.IsZero() {
		return fmt.Errorf("lock time is required")
	}
	if (g.HomeScore == nil) != (g.AwayScore == nil) {
		return fmt.Errorf("both scores must be set together")
	}
	return nil
}

// IsLocked reports whether picks on this game are frozen at now.
func (g Game) IsLocked(now time.Time) bool {
	return !g.LockAt.IsZero() && !now.Before(g.LockAt)
}

func (g Game) IsFinal() bool {
	return g.Status == StatusFinal && g.HomeScore != nil && g.AwayScore != nil
}

// HasTeam reports whether team plays in this game (case-insensitive).
func (g Game) HasTeam(team string) bool {
	team = strings.TrimSpace(team)
	return strings.EqualFold(team, g.HomeTeam) || strings.EqualFold(team, g.AwayTeam)
}

// CanonicalTeam returns the stored spelling of team, or "" when team does
// not play in the game.
func (g Game) CanonicalTeam(team string) string {
	team = strings.TrimSpace(team)
	switch {
	case strings.EqualFold(team, g.HomeTeam):
		return g.HomeTeam
	case strings.EqualFold(team, g.AwayTeam):
		return g.AwayTeam
	default:
		return ""
	}
}

// CoveringTeam returns the team that beat the spread. push is true when the
// adjusted margin is exactly zero, in which case team is empty.
func (g Game) CoveringTeam() (team string, push bool, err error) {
	if !g.IsFinal() {
		return "", false, ErrNotFinal
	}
	adjustedHome := float64(*g.HomeScore) + g.Spread
	away := float64(*g.AwayScore)
	switch {
	case adjustedHome > away:
		return g.HomeTeam, false, nil
	case adjustedHome < away:
		return g.AwayTeam, false, nil
	default:
		return "", true, nil
	}
}

// WithScore returns a copy of g marked final with the given score.
func (g Game) WithScore(home, away int) Game {
	g.HomeScore = &home
	g.AwayScore = &away
	g.Status = StatusFinal
	return g
}

// WithoutScore returns a copy of g back in the scheduled state.
func (g Game) WithoutScore() Game {
	g.HomeScore = nil
	g.AwayScore = nil
	g.Status = StatusScheduled
	return g
}
