package pick

import (
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/pickem-league/internal/domain/user"
)

type ParticipantKind string

const (
	KindUser      ParticipantKind = "user"
	KindAnonymous ParticipantKind = "anonymous"
)

// Participant identifies who owns a pick: a registered user by id, or an
// anonymous entrant by normalized email.
type Participant struct {
	Kind ParticipantKind
	Key  string
}

func UserParticipant(userID string) Participant {
	return Participant{Kind: KindUser, Key: strings.TrimSpace(userID)}
}

func AnonymousParticipant(email string) Participant {
	return Participant{Kind: KindAnonymous, Key: user.NormalizeEmail(email)}
}

func (p Participant) Validate() error {
	switch p.Kind {
	case KindUser:
		if p.Key == "" {
			return fmt.Errorf("user id is required")
		}
	case KindAnonymous:
		if err := user.ValidateEmail(p.Key); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown participant kind %q", p.Kind)
	}
	return nil
}

func (p Participant) String() string {
	return string(p.Kind) + ":" + p.Key
}

type Result string

const (
	ResultPending Result = "pending"
	ResultWin     Result = "win"
	ResultLoss    Result = "loss"
	ResultPush    Result = "push"
)

// Pick is a participant's selection of one team in one game against the
// spread. Season and Week are copied from the game at write time.
type Pick struct {
	ID           string
	Participant  Participant
	GameID       string
	Season       int
	Week         int
	SelectedTeam string
	IsLock       bool
	Result       Result
	Points       int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (p Pick) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("pick id is required")
	}
	if err := p.Participant.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(p.GameID) == "" {
		return fmt.Errorf("game id is required")
	}
	if p.Season <= 0 || p.Week <= 0 {
		return fmt.Errorf("season and week are required")
	}
	if strings.TrimSpace(p.SelectedTeam) == "" {
		return fmt.Errorf("selected team is required")
	}
	return nil
}

// ResultUpdate carries a graded outcome for one stored pick.
type ResultUpdate struct {
	PickID string
	Kind   ParticipantKind
	Result Result
	Points int
}
