package postgres

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/lib/pq"
	"github.com/riskibarqy/pickem-league/internal/domain/pick"
)

const (
	pqUniqueViolation = "23505"
	pqCheckViolation  = "23514"
)

func isNotFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// mapPickWriteError turns constraint and trigger failures on the pick tables
// into domain errors. Other errors pass through unchanged.
func mapPickWriteError(err error) error {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}
	switch string(pqErr.Code) {
	case pqUniqueViolation:
		if strings.Contains(pqErr.Constraint, "_game_key") {
			return pick.ErrDuplicatePick
		}
	case pqCheckViolation:
		msg := strings.ToLower(pqErr.Message)
		switch {
		case strings.Contains(msg, "pick limit"):
			return pick.ErrPickLimitExceeded
		case strings.Contains(msg, "lock limit"):
			return pick.ErrLockLimitExceeded
		}
	}
	return err
}

func nullTimeToTimePtr(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time.UTC()
	return &t
}

func nullInt64ToIntPtr(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

func timePtrToNullTime(v *time.Time) sql.NullTime {
	if v == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: v.UTC(), Valid: true}
}

func intPtrToNullInt64(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func requireAffected(res sql.Result, what string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return errors.New(what + ": not found")
	}
	return nil
}
