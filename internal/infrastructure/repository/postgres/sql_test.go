package postgres

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/riskibarqy/pickem-league/internal/domain/pick"
)

func TestMapPickWriteError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want error
	}{
		{
			name: "trigger pick limit",
			err:  &pq.Error{Code: pqCheckViolation, Message: "pick limit exceeded: max 6 picks per week"},
			want: pick.ErrPickLimitExceeded,
		},
		{
			name: "trigger lock limit",
			err:  &pq.Error{Code: pqCheckViolation, Message: "lock limit exceeded: max 1 lock per week"},
			want: pick.ErrLockLimitExceeded,
		},
		{
			name: "unique participant and game",
			err:  &pq.Error{Code: pqUniqueViolation, Constraint: "anonymous_picks_email_game_key"},
			want: pick.ErrDuplicatePick,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := mapPickWriteError(tc.err); !errors.Is(got, tc.want) {
				t.Fatalf("unexpected mapped error: got=%v want=%v", got, tc.want)
			}
		})
	}

	t.Run("passes through unrelated errors", func(t *testing.T) {
		original := &pq.Error{Code: "42P01", Message: "relation picks does not exist"}
		if got := mapPickWriteError(original); got != error(original) {
			t.Fatalf("expected original error, got %v", got)
		}
	})

	t.Run("other check constraints are not limits", func(t *testing.T) {
		original := &pq.Error{Code: pqCheckViolation, Message: "new row violates check constraint \"picks_result_check\""}
		if got := mapPickWriteError(original); got != error(original) {
			t.Fatalf("expected original error, got %v", got)
		}
	})
}

func TestNullableConversions(t *testing.T) {
	t.Parallel()

	if nullTimeToTimePtr(sql.NullTime{}) != nil {
		t.Fatalf("expected nil for null time")
	}
	now := time.Date(2025, 9, 6, 16, 0, 0, 0, time.UTC)
	if got := nullTimeToTimePtr(timePtrToNullTime(&now)); got == nil || !got.Equal(now) {
		t.Fatalf("unexpected time round trip: %v", got)
	}

	if nullInt64ToIntPtr(sql.NullInt64{}) != nil {
		t.Fatalf("expected nil for null int")
	}
	score := 31
	if got := nullInt64ToIntPtr(intPtrToNullInt64(&score)); got == nil || *got != 31 {
		t.Fatalf("unexpected int round trip: %v", got)
	}
}

func TestPickTable(t *testing.T) {
	t.Parallel()

	table, identity, err := pickTable(pick.KindAnonymous)
	if err != nil || table != "anonymous_picks" || identity != "email" {
		t.Fatalf("unexpected anonymous table: %s %s %v", table, identity, err)
	}
	table, identity, err = pickTable(pick.KindUser)
	if err != nil || table != "picks" || identity != "user_id" {
		t.Fatalf("unexpected user table: %s %s %v", table, identity, err)
	}
	if _, _, err := pickTable("robot"); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}
