package weeksettings

import (
	"fmt"
	"time"
)

// Settings controls the pick window of one week. A week without stored
// settings is open.
type Settings struct {
	Season         int
	Week           int
	Deadline       *time.Time
	PicksOpen      bool
	IsLocked       bool
	ReminderSentAt *time.Time
	UpdatedAt      time.Time
}

// Default is the implicit settings of a week nobody configured.
func Default(season, week int) Settings {
	return Settings{Season: season, Week: week, PicksOpen: true}
}

func (s Settings) Validate() error {
	if s.Season <= 0 {
		return fmt.Errorf("season must be > 0")
	}
	if s.Week <= 0 {
		return fmt.Errorf("week must be > 0")
	}
	return nil
}

// AcceptingPicks reports whether picks may be created, changed or removed.
func (s Settings) AcceptingPicks(now time.Time) bool {
	if !s.PicksOpen || s.IsLocked {
		return false
	}
	return s.Deadline == nil || now.Before(*s.Deadline)
}

// DeadlinePassed reports whether a deadline exists and has elapsed.
func (s Settings) DeadlinePassed(now time.Time) bool {
	return s.Deadline != nil && !now.Before(*s.Deadline)
}

// ReminderDue reports whether the deadline reminder should go out at now.
func (s Settings) ReminderDue(now time.Time, lead time.Duration) bool {
	if s.ReminderSentAt != nil || s.Deadline == nil || !s.AcceptingPicks(now) {
		return false
	}
	return !now.Before(s.Deadline.Add(-lead))
}
