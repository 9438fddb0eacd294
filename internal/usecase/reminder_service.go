package usecase

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/riskibarqy/pickem-league/internal/domain/email"
	"github.com/riskibarqy/pickem-league/internal/domain/pick"
	"github.com/riskibarqy/pickem-league/internal/domain/user"
	"github.com/riskibarqy/pickem-league/internal/domain/weeksettings"
	"github.com/riskibarqy/pickem-league/internal/platform/logging"
	"github.com/sourcegraph/conc/pool"
)

//go:embed templates/*.html
var templatesFS embed.FS

var reminderTemplate = template.Must(template.ParseFS(templatesFS, "templates/deadline_reminder.html"))

type ReminderConfig struct {
	Lead      time.Duration
	PublicURL string
	Workers   int
	MaxPicks  int
}

type ReminderSummary struct {
	Weeks  int
	Sent   int
	Failed int
}

type reminderView struct {
	Name         string
	Season       int
	Week         int
	PicksMade    int
	MaxPicks     int
	HasLock      bool
	DeadlineIn   string
	DeadlineText string
	PicksURL     string
}

// ReminderService emails members who have not filled their picks before a
// week's deadline.
type ReminderService struct {
	settingsRepo weeksettings.Repository
	userRepo     user.Repository
	pickRepo     pick.Repository
	mailer       *EmailService
	cfg          ReminderConfig
	logger       *logging.Logger
	now          func() time.Time
}

func NewReminderService(
	settingsRepo weeksettings.Repository,
	userRepo user.Repository,
	pickRepo pick.Repository,
	mailer *EmailService,
	cfg ReminderConfig,
	logger *logging.Logger,
) *ReminderService {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.MaxPicks < 1 {
		cfg.MaxPicks = pick.DefaultMaxPicksPerWeek
	}
	return &ReminderService{
		settingsRepo: settingsRepo,
		userRepo:     userRepo,
		pickRepo:     pickRepo,
		mailer:       mailer,
		cfg:          cfg,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *ReminderService) SendDeadlineReminders(ctx context.Context) (_ ReminderSummary, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReminderService.SendDeadlineReminders")
	defer endUsecaseSpan(span, &err)

	now := s.now().UTC()
	candidates, err := s.settingsRepo.ListReminderCandidates(ctx, now)
	if err != nil {
		return ReminderSummary{}, fmt.Errorf("list reminder candidates: %w", err)
	}

	var summary ReminderSummary
	for _, week := range candidates {
		if !week.ReminderDue(now, s.cfg.Lead) {
			continue
		}
		sent, failed, err := s.remindWeek(ctx, week, now)
		if err != nil {
			return summary, err
		}
		summary.Weeks++
		summary.Sent += sent
		summary.Failed += failed

		// A week where every delivery failed stays due so the next run retries it.
		if sent == 0 && failed > 0 {
			s.logger.WarnContext(ctx, "deadline reminders undelivered, will retry",
				"season", week.Season,
				"week", week.Week,
				"failed", failed,
			)
			continue
		}
		if err := s.settingsRepo.MarkReminderSent(ctx, week.Season, week.Week, now); err != nil {
			return summary, fmt.Errorf("mark reminder sent: %w", err)
		}
	}
	return summary, nil
}

func (s *ReminderService) remindWeek(ctx context.Context, week weeksettings.Settings, now time.Time) (int, int, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("list users: %w", err)
	}
	picks, err := s.pickRepo.ListBySeason(ctx, week.Season, week.Week)
	if err != nil {
		return 0, 0, fmt.Errorf("list week picks: %w", err)
	}

	made := make(map[string]int, len(users))
	locked := make(map[string]bool, len(users))
	for _, p := range picks {
		if p.Participant.Kind != pick.KindUser {
			continue
		}
		made[p.Participant.Key]++
		if p.IsLock {
			locked[p.Participant.Key] = true
		}
	}

	var sent, failed atomic.Int32
	workers := pool.New().WithMaxGoroutines(s.cfg.Workers)
	for _, u := range users {
		if made[u.ID] >= s.cfg.MaxPicks {
			continue
		}
		u := u
		view := reminderView{
			Name:         u.Name(),
			Season:       week.Season,
			Week:         week.Week,
			PicksMade:    made[u.ID],
			MaxPicks:     s.cfg.MaxPicks,
			HasLock:      locked[u.ID],
			DeadlineIn:   humanize.RelTime(*week.Deadline, now, "ago", "from now"),
			DeadlineText: week.Deadline.Format("Mon Jan 2, 3:04 PM MST"),
			PicksURL:     fmt.Sprintf("%s/picks?season=%d&week=%d", s.cfg.PublicURL, week.Season, week.Week),
		}
		workers.Go(func() {
			if err := s.sendReminder(ctx, u, view); err != nil {
				failed.Add(1)
				s.logger.WarnContext(ctx, "deadline reminder failed", "user_id", u.ID, "season", view.Season, "week", view.Week, "error", err)
				return
			}
			sent.Add(1)
		})
	}
	workers.Wait()

	s.logger.InfoContext(ctx, "deadline reminders sent",
		"season", week.Season,
		"week", week.Week,
		"sent", sent.Load(),
		"failed", failed.Load(),
	)
	return int(sent.Load()), int(failed.Load()), nil
}

func (s *ReminderService) sendReminder(ctx context.Context, u user.User, view reminderView) error {
	var body bytes.Buffer
	if err := reminderTemplate.Execute(&body, view); err != nil {
		return fmt.Errorf("render reminder: %w", err)
	}
	_, err := s.mailer.Send(ctx, email.Message{
		To:      []string{u.Email},
		Subject: fmt.Sprintf("Week %d picks close %s", view.Week, view.DeadlineIn),
		HTML:    body.String(),
		Text: fmt.Sprintf("You have made %d of %d picks for week %d. Picks lock %s: %s",
			view.PicksMade, view.MaxPicks, view.Week, view.DeadlineIn, view.PicksURL),
	})
	return err
}
