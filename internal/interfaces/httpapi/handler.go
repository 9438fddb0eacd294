package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/pickem-league/internal/domain/pick"
	"github.com/riskibarqy/pickem-league/internal/domain/user"
	"github.com/riskibarqy/pickem-league/internal/platform/logging"
	"github.com/riskibarqy/pickem-league/internal/usecase"
)

const maxBodyBytes = 1 << 20

type Handler struct {
	gameService        *usecase.GameService
	pickService        *usecase.PickService
	weekService        *usecase.WeekService
	leaderboardService *usecase.LeaderboardService
	userService        *usecase.UserService
	blogService        *usecase.BlogService
	emailService       *usecase.EmailService
	reminderService    *usecase.ReminderService
	logger             *logging.Logger
	validator          *validator.Validate
	now                func() time.Time
}

func NewHandler(
	gameService *usecase.GameService,
	pickService *usecase.PickService,
	weekService *usecase.WeekService,
	leaderboardService *usecase.LeaderboardService,
	userService *usecase.UserService,
	blogService *usecase.BlogService,
	emailService *usecase.EmailService,
	reminderService *usecase.ReminderService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		gameService:        gameService,
		pickService:        pickService,
		weekService:        weekService,
		leaderboardService: leaderboardService,
		userService:        userService,
		blogService:        blogService,
		emailService:       emailService,
		reminderService:    reminderService,
		logger:             logger,
		validator:          validator.New(),
		now:                time.Now,
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) decodeRequest(ctx context.Context, r *http.Request, payload any) error {
	decoder := sonic.ConfigDefault.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(payload); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return h.validateRequest(ctx, payload)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

// fail logs and writes err. Rule rejections and bad requests are expected
// traffic and log at info.
func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, msg string, err error, args ...any) {
	args = append(args, "error", err)
	switch status := mapError(err).HTTPStatus; {
	case usecase.IsPickRuleError(err), status < http.StatusInternalServerError:
		h.logger.InfoContext(ctx, msg, args...)
	default:
		h.logger.ErrorContext(ctx, msg, args...)
	}
	writeError(ctx, w, err)
}

func currentMember(ctx context.Context) (user.User, error) {
	member, ok := memberFromContext(ctx)
	if !ok {
		return user.User{}, fmt.Errorf("%w: member is missing from request context", usecase.ErrUnauthorized)
	}
	return member, nil
}

func memberParticipant(ctx context.Context) (user.User, pick.Participant, error) {
	member, err := currentMember(ctx)
	if err != nil {
		return user.User{}, pick.Participant{}, err
	}
	return member, pick.UserParticipant(member.ID), nil
}

func pathInt(r *http.Request, name string) (int, error) {
	raw := strings.TrimSpace(r.PathValue(name))
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", usecase.ErrInvalidInput, name)
	}
	return v, nil
}

func seasonWeekFromPath(r *http.Request) (int, int, error) {
	season, err := pathInt(r, "season")
	if err != nil {
		return 0, 0, err
	}
	week, err := pathInt(r, "week")
	if err != nil {
		return 0, 0, err
	}
	return season, week, nil
}

// queryInt returns fallback when the parameter is absent.
func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", usecase.ErrInvalidInput, name)
	}
	return v, nil
}
