package pick

import (
	"errors"
	"fmt"
	"testing"
)

var ana = UserParticipant("user-ana")

func weekPicks(n, locks int) []Pick {
	out := make([]Pick, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, Pick{
			ID:           fmt.Sprintf("p%d", i),
			Participant:  ana,
			GameID:       fmt.Sprintf("g%d", i),
			Season:       2025,
			Week:         4,
			SelectedTeam: "Team",
			IsLock:       i < locks,
		})
	}
	return out
}

func candidate(id, gameID string, lock bool) Pick {
	return Pick{ID: id, Participant: ana, GameID: gameID, Season: 2025, Week: 4, SelectedTeam: "Team", IsLock: lock}
}

func TestCheckWrite_InsertLimits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		existing []Pick
		pick     Pick
		wantErr  error
	}{
		{name: "first pick", pick: candidate("new", "g9", false)},
		{name: "sixth pick allowed", existing: weekPicks(5, 0), pick: candidate("new", "g9", false)},
		{name: "seventh pick rejected", existing: weekPicks(6, 0), pick: candidate("new", "g9", false), wantErr: ErrPickLimitExceeded},
		{name: "first lock allowed", existing: weekPicks(3, 0), pick: candidate("new", "g9", true)},
		{name: "second lock rejected", existing: weekPicks(3, 1), pick: candidate("new", "g9", true), wantErr: ErrLockLimitExceeded},
		{name: "duplicate game rejected", existing: weekPicks(2, 0), pick: candidate("new", "g1", false), wantErr: ErrDuplicatePick},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckWrite(tc.existing, tc.pick, nil, DefaultLimits())
			if tc.wantErr == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestCheckWrite_OtherWeeksAndParticipantsIgnored(t *testing.T) {
	t.Parallel()

	existing := weekPicks(6, 1)
	for i := range existing {
		existing[i].Week = 5
	}
	existing = append(existing, Pick{ID: "x", Participant: AnonymousParticipant("ana@example.com"), GameID: "g1", Season: 2025, Week: 4, IsLock: true})

	if err := CheckWrite(existing, candidate("new", "g1", true), nil, DefaultLimits()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCheckWrite_DuplicateScopedToWeek(t *testing.T) {
	t.Parallel()

	current := []Pick{{ID: "a", Participant: ana, GameID: "g1", Season: 2025, Week: 4}}
	if err := CheckWrite(current, candidate("new", "g1", false), nil, DefaultLimits()); !errors.Is(err, ErrDuplicatePick) {
		t.Fatalf("expected duplicate in the same week, got %v", err)
	}

	otherSeason := []Pick{{ID: "a", Participant: ana, GameID: "g1", Season: 2024, Week: 4}}
	if err := CheckWrite(otherSeason, candidate("new", "g1", false), nil, DefaultLimits()); err != nil {
		t.Fatalf("rows from another season must not count as duplicates: %v", err)
	}
}

func TestCheckLimits_UpdateInPlace(t *testing.T) {
	t.Parallel()

	existing := weekPicks(6, 1)

	t.Run("changing team on a full week is allowed", func(t *testing.T) {
		prev := existing[3]
		next := prev
		next.SelectedTeam = "Other"
		if err := CheckWrite(existing, next, &prev, DefaultLimits()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("keeping the existing lock is allowed", func(t *testing.T) {
		prev := existing[0]
		next := prev
		next.SelectedTeam = "Other"
		if err := CheckWrite(existing, next, &prev, DefaultLimits()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("turning a second pick into a lock is rejected", func(t *testing.T) {
		prev := existing[2]
		next := prev
		next.IsLock = true
		if err := CheckWrite(existing, next, &prev, DefaultLimits()); !errors.Is(err, ErrLockLimitExceeded) {
			t.Fatalf("expected ErrLockLimitExceeded, got %v", err)
		}
	})

	t.Run("moving a pick to another game in a full week recounts excluding itself", func(t *testing.T) {
		prev := existing[4]
		next := prev
		next.GameID = "g42"
		if err := CheckWrite(existing, next, &prev, DefaultLimits()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("moving a pick into a full week is rejected", func(t *testing.T) {
		prev := candidate("other-week", "g77", false)
		prev.Week = 3
		next := prev
		next.Week = 4
		if err := CheckWrite(existing, next, &prev, DefaultLimits()); !errors.Is(err, ErrPickLimitExceeded) {
			t.Fatalf("expected ErrPickLimitExceeded, got %v", err)
		}
	})
}

func TestGrade(t *testing.T) {
	t.Parallel()

	rules := DefaultScoring()
	tests := []struct {
		name       string
		pick       Pick
		covering   string
		push       bool
		wantResult Result
		wantPoints int
	}{
		{name: "win", pick: Pick{SelectedTeam: "Ohio State"}, covering: "Ohio State", wantResult: ResultWin, wantPoints: 1},
		{name: "lock win doubles", pick: Pick{SelectedTeam: "Ohio State", IsLock: true}, covering: "Ohio State", wantResult: ResultWin, wantPoints: 2},
		{name: "loss", pick: Pick{SelectedTeam: "Michigan"}, covering: "Ohio State", wantResult: ResultLoss},
		{name: "lock loss", pick: Pick{SelectedTeam: "Michigan", IsLock: true}, covering: "Ohio State", wantResult: ResultLoss},
		{name: "push", pick: Pick{SelectedTeam: "Michigan", IsLock: true}, push: true, wantResult: ResultPush},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result, points := Grade(tc.pick, tc.covering, tc.push, rules)
			if result != tc.wantResult || points != tc.wantPoints {
				t.Fatalf("got %s/%d, want %s/%d", result, points, tc.wantResult, tc.wantPoints)
			}
		})
	}

	custom := ScoringRules{Win: 1, LockWin: 3, Push: 1, LockLoss: -1}
	if _, points := Grade(Pick{SelectedTeam: "A", IsLock: true}, "B", false, custom); points != -1 {
		t.Fatalf("expected lock loss penalty, got %d", points)
	}
}

func TestParticipantValidate(t *testing.T) {
	t.Parallel()

	if err := AnonymousParticipant("  Fan@Example.com ").Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := AnonymousParticipant("  Fan@Example.com ").Key; got != "fan@example.com" {
		t.Fatalf("expected normalized email key, got %q", got)
	}
	if err := AnonymousParticipant("nope").Validate(); err == nil {
		t.Fatalf("expected invalid email error")
	}
	if err := UserParticipant("").Validate(); err == nil {
		t.Fatalf("expected missing user id error")
	}
	if err := (Participant{Kind: "robot", Key: "x"}).Validate(); err == nil {
		t.Fatalf("expected unknown kind error")
	}
}
