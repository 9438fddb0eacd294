package rest

import "time"

type userRow struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"display_name"`
	IsAdmin      bool      `json:"is_admin"`
	PaymentEmail string    `json:"payment_email"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type gameRow struct {
	ID        string    `json:"id"`
	Season    int       `json:"season"`
	Week      int       `json:"week"`
	HomeTeam  string    `json:"home_team"`
	AwayTeam  string    `json:"away_team"`
	Spread    float64   `json:"spread"`
	HomeScore *int      `json:"home_score"`
	AwayScore *int      `json:"away_score"`
	Status    string    `json:"status"`
	LockAt    time.Time `json:"lock_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// pickRow reads both pick tables; only one of UserID and Email is set.
type pickRow struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id,omitempty"`
	Email        string    `json:"email,omitempty"`
	GameID       string    `json:"game_id"`
	Season       int       `json:"season"`
	Week         int       `json:"week"`
	SelectedTeam string    `json:"selected_team"`
	IsLock       bool      `json:"is_lock"`
	Result       string    `json:"result"`
	Points       int       `json:"points"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type weekSettingsRow struct {
	Season         int        `json:"season"`
	Week           int        `json:"week"`
	Deadline       *time.Time `json:"deadline"`
	PicksOpen      bool       `json:"picks_open"`
	IsLocked       bool       `json:"is_locked"`
	ReminderSentAt *time.Time `json:"reminder_sent_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

type blogPostRow struct {
	ID          string     `json:"id"`
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Body        string     `json:"body"`
	AuthorID    string     `json:"author_id"`
	Published   bool       `json:"published"`
	PublishedAt *time.Time `json:"published_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
