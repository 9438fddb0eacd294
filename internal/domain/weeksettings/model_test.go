package weeksettings

import (
	"testing"
	"time"
)

func TestAcceptingPicks(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 10, 4, 12, 0, 0, 0, time.UTC)
	later := now.Add(time.Hour)
	earlier := now.Add(-time.Hour)

	tests := []struct {
		name     string
		settings Settings
		want     bool
	}{
		{name: "default open", settings: Default(2025, 6), want: true},
		{name: "closed by admin", settings: Settings{Season: 2025, Week: 6}, want: false},
		{name: "locked", settings: Settings{Season: 2025, Week: 6, PicksOpen: true, IsLocked: true}, want: false},
		{name: "before deadline", settings: Settings{Season: 2025, Week: 6, PicksOpen: true, Deadline: &later}, want: true},
		{name: "after deadline", settings: Settings{Season: 2025, Week: 6, PicksOpen: true, Deadline: &earlier}, want: false},
		{name: "at deadline", settings: Settings{Season: 2025, Week: 6, PicksOpen: true, Deadline: &now}, want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.settings.AcceptingPicks(now); got != tc.want {
				t.Fatalf("AcceptingPicks()=%v want %v", got, tc.want)
			}
		})
	}
}

func TestReminderDue(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 10, 4, 12, 0, 0, 0, time.UTC)
	deadline := now.Add(6 * time.Hour)
	s := Settings{Season: 2025, Week: 6, PicksOpen: true, Deadline: &deadline}

	if !s.ReminderDue(now, 24*time.Hour) {
		t.Fatalf("expected reminder due inside lead window")
	}
	if s.ReminderDue(now, time.Hour) {
		t.Fatalf("expected reminder not due outside lead window")
	}
	sent := now
	s.ReminderSentAt = &sent
	if s.ReminderDue(now, 24*time.Hour) {
		t.Fatalf("expected no reminder once sent")
	}
}
