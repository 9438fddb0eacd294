package pick

import (
	"errors"
	"fmt"
)

var (
	ErrPickLimitExceeded = errors.New("weekly pick limit reached")
	ErrLockLimitExceeded = errors.New("weekly lock limit reached")
	ErrDuplicatePick     = errors.New("game already picked")
	ErrPicksClosed       = errors.New("picks are closed")
	ErrInvalidSelection  = errors.New("selected team does not play in this game")
	ErrNotFound          = errors.New("pick not found")
)

const (
	DefaultMaxPicksPerWeek = 6
	DefaultMaxLocksPerWeek = 1
)

// Limits bounds how many picks and lock picks one participant may hold in a
// single week of a season.
type Limits struct {
	MaxPicksPerWeek int
	MaxLocksPerWeek int
}

func DefaultLimits() Limits {
	return Limits{
		MaxPicksPerWeek: DefaultMaxPicksPerWeek,
		MaxLocksPerWeek: DefaultMaxLocksPerWeek,
	}
}

// CheckWrite validates candidate against the participant's other picks for
// the same week and season. previous is the stored row when candidate is an
// update, nil for an insert. existing may include the stored row itself.
func CheckWrite(existing []Pick, candidate Pick, previous *Pick, limits Limits) error {
	for _, p := range existing {
		if p.ID == candidate.ID || !sameWeek(p, candidate) {
			continue
		}
		if p.GameID == candidate.GameID {
			return fmt.Errorf("%w: game=%s", ErrDuplicatePick, candidate.GameID)
		}
	}
	return CheckLimits(existing, candidate, previous, limits)
}

// CheckLimits enforces the weekly caps. Counting runs on insert and on any
// update that moves the pick to another game, week, season or participant.
// The lock cap is also checked when an update turns a regular pick into a
// lock.
func CheckLimits(existing []Pick, candidate Pick, previous *Pick, limits Limits) error {
	moved := previous == nil ||
		previous.GameID != candidate.GameID ||
		previous.Week != candidate.Week ||
		previous.Season != candidate.Season ||
		previous.Participant != candidate.Participant
	becameLock := previous != nil && !previous.IsLock && candidate.IsLock

	if !moved && !becameLock {
		return nil
	}

	var picks, locks int
	for _, p := range existing {
		if p.ID == candidate.ID {
			continue
		}
		if !sameWeek(p, candidate) {
			continue
		}
		picks++
		if p.IsLock {
			locks++
		}
	}

	if moved && limits.MaxPicksPerWeek > 0 && picks >= limits.MaxPicksPerWeek {
		return fmt.Errorf("%w: max=%d week=%d season=%d", ErrPickLimitExceeded, limits.MaxPicksPerWeek, candidate.Week, candidate.Season)
	}
	if candidate.IsLock && limits.MaxLocksPerWeek > 0 && locks >= limits.MaxLocksPerWeek {
		return fmt.Errorf("%w: max=%d week=%d season=%d", ErrLockLimitExceeded, limits.MaxLocksPerWeek, candidate.Week, candidate.Season)
	}
	return nil
}

func sameWeek(a, b Pick) bool {
	return a.Participant == b.Participant && a.Week == b.Week && a.Season == b.Season
}

// ScoringRules assigns points per graded outcome. Lock picks use the Lock
// values.
type ScoringRules struct {
	Win      int
	LockWin  int
	Push     int
	Loss     int
	LockLoss int
}

func DefaultScoring() ScoringRules {
	return ScoringRules{
		Win:     1,
		LockWin: 2,
	}
}

// Grade scores p given the team that covered the spread. push means the
// game landed exactly on the number.
func Grade(p Pick, coveringTeam string, push bool, rules ScoringRules) (Result, int) {
	switch {
	case push:
		return ResultPush, rules.Push
	case p.SelectedTeam == coveringTeam:
		if p.IsLock {
			return ResultWin, rules.LockWin
		}
		return ResultWin, rules.Win
	default:
		if p.IsLock {
			return ResultLoss, rules.LockLoss
		}
		return ResultLoss, rules.Loss
	}
}
