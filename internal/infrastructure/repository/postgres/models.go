package postgres

import (
	"database/sql"
	"time"
)

type userTableModel struct {
	ID           string    `db:"id"`
	Email        string    `db:"email"`
	DisplayName  string    `db:"display_name"`
	IsAdmin      bool      `db:"is_admin"`
	PaymentEmail string    `db:"payment_email"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type gameTableModel struct {
	ID        string        `db:"id"`
	Season    int           `db:"season"`
	Week      int           `db:"week"`
	HomeTeam  string        `db:"home_team"`
	AwayTeam  string        `db:"away_team"`
	Spread    float64       `db:"spread"`
	HomeScore sql.NullInt64 `db:"home_score"`
	AwayScore sql.NullInt64 `db:"away_score"`
	Status    string        `db:"status"`
	LockAt    time.Time     `db:"lock_at"`
	CreatedAt time.Time     `db:"created_at"`
	UpdatedAt time.Time     `db:"updated_at"`
}

// pickTableModel covers both pick tables; the identity column is aliased.
type pickTableModel struct {
	ID           string    `db:"id"`
	Identity     string    `db:"identity"`
	GameID       string    `db:"game_id"`
	Season       int       `db:"season"`
	Week         int       `db:"week"`
	SelectedTeam string    `db:"selected_team"`
	IsLock       bool      `db:"is_lock"`
	Result       string    `db:"result"`
	Points       int       `db:"points"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type weekSettingsTableModel struct {
	Season         int          `db:"season"`
	Week           int          `db:"week"`
	Deadline       sql.NullTime `db:"deadline"`
	PicksOpen      bool         `db:"picks_open"`
	IsLocked       bool         `db:"is_locked"`
	ReminderSentAt sql.NullTime `db:"reminder_sent_at"`
	UpdatedAt      time.Time    `db:"updated_at"`
}

type blogPostTableModel struct {
	ID          string       `db:"id"`
	Slug        string       `db:"slug"`
	Title       string       `db:"title"`
	Body        string       `db:"body"`
	AuthorID    string       `db:"author_id"`
	Published   bool         `db:"published"`
	PublishedAt sql.NullTime `db:"published_at"`
	CreatedAt   time.Time    `db:"created_at"`
	UpdatedAt   time.Time    `db:"updated_at"`
}
