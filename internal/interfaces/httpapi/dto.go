package httpapi

import (
	"fmt"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/pickem-league/internal/domain/blog"
	"github.com/riskibarqy/pickem-league/internal/domain/game"
	"github.com/riskibarqy/pickem-league/internal/domain/leaderboard"
	"github.com/riskibarqy/pickem-league/internal/domain/pick"
	"github.com/riskibarqy/pickem-league/internal/domain/user"
	"github.com/riskibarqy/pickem-league/internal/domain/weeksettings"
	"github.com/riskibarqy/pickem-league/internal/usecase"
)

type gameRequest struct {
	Season   int       `json:"season" validate:"required,gt=0"`
	Week     int       `json:"week" validate:"required,min=1,max=20"`
	HomeTeam string    `json:"home_team" validate:"required,max=100"`
	AwayTeam string    `json:"away_team" validate:"required,max=100,nefield=HomeTeam"`
	Spread   *float64  `json:"spread" validate:"required"`
	LockAt   time.Time `json:"lock_at" validate:"required"`
}

func (r gameRequest) toInput() usecase.GameInput {
	return usecase.GameInput{
		Season:   r.Season,
		Week:     r.Week,
		HomeTeam: r.HomeTeam,
		AwayTeam: r.AwayTeam,
		Spread:   *r.Spread,
		LockAt:   r.LockAt,
	}
}

type scoreRequest struct {
	HomeScore *int `json:"home_score" validate:"required,gte=0"`
	AwayScore *int `json:"away_score" validate:"required,gte=0"`
}

type pickRequest struct {
	GameID       string `json:"game_id" validate:"required"`
	SelectedTeam string `json:"selected_team" validate:"required"`
	IsLock       bool   `json:"is_lock"`
}

type updatePickRequest struct {
	GameID       string `json:"game_id"`
	SelectedTeam string `json:"selected_team" validate:"required"`
	IsLock       bool   `json:"is_lock"`
}

type anonymousPicksRequest struct {
	Email string        `json:"email" validate:"required,email"`
	Picks []pickRequest `json:"picks" validate:"required,min=1,dive"`
}

type weekSettingsRequest struct {
	Deadline  *time.Time `json:"deadline"`
	PicksOpen *bool      `json:"picks_open" validate:"required"`
	IsLocked  bool       `json:"is_locked"`
}

type profileRequest struct {
	DisplayName string `json:"display_name" validate:"max=60"`
}

type paymentEmailRequest struct {
	PaymentEmail string `json:"payment_email" validate:"omitempty,email"`
}

type setAdminRequest struct {
	IsAdmin *bool `json:"is_admin" validate:"required"`
}

type blogPostRequest struct {
	Title     string `json:"title" validate:"required,max=200"`
	Slug      string `json:"slug" validate:"omitempty,max=120"`
	Body      string `json:"body" validate:"required"`
	Published bool   `json:"published"`
}

// recipientList accepts either a single address or an array of addresses.
type recipientList []string

func (l *recipientList) UnmarshalJSON(raw []byte) error {
	trimmed := strings.TrimSpace(string(raw))
	if strings.HasPrefix(trimmed, "[") {
		var many []string
		if err := sonic.Unmarshal(raw, &many); err != nil {
			return err
		}
		*l = many
		return nil
	}
	var one string
	if err := sonic.Unmarshal(raw, &one); err != nil {
		return fmt.Errorf("to must be a string or an array of strings")
	}
	*l = recipientList{one}
	return nil
}

type sendEmailRequest struct {
	To      recipientList `json:"to" validate:"required,min=1,dive,email"`
	Subject string        `json:"subject" validate:"required,max=998"`
	HTML    string        `json:"html" validate:"required"`
	Text    string        `json:"text"`
	From    string        `json:"from" validate:"omitempty"`
}

type sendEmailResponse struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId"`
}

type gameDTO struct {
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
	Locked    bool      `json:"locked"`
	Covering  string    `json:"covering_team,omitempty"`
	Push      bool      `json:"push,omitempty"`
}

func gameToDTO(g game.Game, now time.Time) gameDTO {
	out := gameDTO{
		ID:        g.ID,
		Season:    g.Season,
		Week:      g.Week,
		HomeTeam:  g.HomeTeam,
		AwayTeam:  g.AwayTeam,
		Spread:    g.Spread,
		HomeScore: g.HomeScore,
		AwayScore: g.AwayScore,
		Status:    string(g.Status),
		LockAt:    g.LockAt.UTC(),
		Locked:    g.IsLocked(now),
	}
	if covering, push, err := g.CoveringTeam(); err == nil {
		out.Covering = covering
		out.Push = push
	}
	return out
}

type pickDTO struct {
	ID           string    `json:"id"`
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

func pickToDTO(p pick.Pick) pickDTO {
	return pickDTO{
		ID:           p.ID,
		GameID:       p.GameID,
		Season:       p.Season,
		Week:         p.Week,
		SelectedTeam: p.SelectedTeam,
		IsLock:       p.IsLock,
		Result:       string(p.Result),
		Points:       p.Points,
		CreatedAt:    p.CreatedAt.UTC(),
		UpdatedAt:    p.UpdatedAt.UTC(),
	}
}

func picksToDTO(picks []pick.Pick) []pickDTO {
	out := make([]pickDTO, 0, len(picks))
	for _, p := range picks {
		out = append(out, pickToDTO(p))
	}
	return out
}

type weekSettingsDTO struct {
	Season         int        `json:"season"`
	Week           int        `json:"week"`
	Deadline       *time.Time `json:"deadline"`
	PicksOpen      bool       `json:"picks_open"`
	IsLocked       bool       `json:"is_locked"`
	AcceptingPicks bool       `json:"accepting_picks"`
}

func weekSettingsToDTO(s weeksettings.Settings, now time.Time) weekSettingsDTO {
	return weekSettingsDTO{
		Season:         s.Season,
		Week:           s.Week,
		Deadline:       s.Deadline,
		PicksOpen:      s.PicksOpen,
		IsLocked:       s.IsLocked,
		AcceptingPicks: s.AcceptingPicks(now),
	}
}

type leaderboardEntryDTO struct {
	Rank        int    `json:"rank"`
	Kind        string `json:"participant_kind"`
	UserID      string `json:"user_id,omitempty"`
	DisplayName string `json:"display_name"`
	Points      int    `json:"points"`
	Wins        int    `json:"wins"`
	Losses      int    `json:"losses"`
	Pushes      int    `json:"pushes"`
	LockWins    int    `json:"lock_wins"`
	LockLosses  int    `json:"lock_losses"`
	Pending     int    `json:"pending"`
	PicksMade   int    `json:"picks_made"`
}

func leaderboardToDTO(entries []leaderboard.Entry) []leaderboardEntryDTO {
	out := make([]leaderboardEntryDTO, 0, len(entries))
	for _, e := range entries {
		item := leaderboardEntryDTO{
			Rank:        e.Rank,
			Kind:        string(e.Participant.Kind),
			DisplayName: e.DisplayName,
			Points:      e.Points,
			Wins:        e.Wins,
			Losses:      e.Losses,
			Pushes:      e.Pushes,
			LockWins:    e.LockWins,
			LockLosses:  e.LockLosses,
			Pending:     e.Pending,
			PicksMade:   e.PicksMade,
		}
		if e.Participant.Kind == pick.KindUser {
			item.UserID = e.Participant.Key
		}
		out = append(out, item)
	}
	return out
}

type userDTO struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	DisplayName  string    `json:"display_name"`
	IsAdmin      bool      `json:"is_admin"`
	PaymentEmail string    `json:"payment_email,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func userToDTO(u user.User) userDTO {
	return userDTO{
		ID:           u.ID,
		Email:        u.Email,
		DisplayName:  u.Name(),
		IsAdmin:      u.IsAdmin,
		PaymentEmail: u.PaymentEmail,
		CreatedAt:    u.CreatedAt.UTC(),
	}
}

type blogPostDTO struct {
	ID          string     `json:"id"`
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Body        string     `json:"body"`
	AuthorID    string     `json:"author_id"`
	Published   bool       `json:"published"`
	PublishedAt *time.Time `json:"published_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func blogPostToDTO(p blog.Post) blogPostDTO {
	return blogPostDTO{
		ID:          p.ID,
		Slug:        p.Slug,
		Title:       p.Title,
		Body:        p.Body,
		AuthorID:    p.AuthorID,
		Published:   p.Published,
		PublishedAt: p.PublishedAt,
		UpdatedAt:   p.UpdatedAt.UTC(),
	}
}

type gradeSummaryDTO struct {
	Games  int `json:"games"`
	Picks  int `json:"picks"`
	Failed int `json:"failed"`
}
