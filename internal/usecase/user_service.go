package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/pickem-league/internal/domain/user"
	"github.com/riskibarqy/pickem-league/internal/platform/logging"
)

type UserService struct {
	repo   user.Repository
	logger *logging.Logger
	now    func() time.Time
}

func NewUserService(repo user.Repository, logger *logging.Logger) *UserService {
	if logger == nil {
		logger = logging.Default()
	}
	return &UserService{repo: repo, logger: logger, now: time.Now}
}

// EnsureUser registers the principal on first sight and returns the stored
// user.
func (s *UserService) EnsureUser(ctx context.Context, principal user.Principal) (_ user.User, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.UserService.EnsureUser")
	defer endUsecaseSpan(span, &err)

	principal.UserID = strings.TrimSpace(principal.UserID)
	principal.Email = strings.TrimSpace(principal.Email)
	if principal.UserID == "" {
		return user.User{}, fmt.Errorf("%w: principal user id is required", ErrUnauthorized)
	}

	existing, ok, err := s.repo.GetByID(ctx, principal.UserID)
	if err != nil {
		return user.User{}, fmt.Errorf("get user: %w", err)
	}
	if ok && strings.EqualFold(existing.Email, principal.Email) {
		return existing, nil
	}

	now := s.now().UTC()
	candidate := user.User{
		ID:        principal.UserID,
		Email:     principal.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := candidate.Validate(); err != nil {
		return user.User{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	stored, err := s.repo.Upsert(ctx, candidate)
	if err != nil {
		return user.User{}, fmt.Errorf("upsert user: %w", err)
	}
	if !ok {
		s.logger.InfoContext(ctx, "user registered", "user_id", stored.ID, "email", stored.Email)
	}
	return stored, nil
}

func (s *UserService) Get(ctx context.Context, userID string) (user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.UserService.Get")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return user.User{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	u, ok, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return user.User{}, fmt.Errorf("get user: %w", err)
	}
	if !ok {
		return user.User{}, fmt.Errorf("%w: user=%s", ErrNotFound, userID)
	}
	return u, nil
}

// IsAdmin reports whether the user exists and carries the admin flag.
func (s *UserService) IsAdmin(ctx context.Context, userID string) (bool, error) {
	u, ok, err := s.repo.GetByID(ctx, strings.TrimSpace(userID))
	if err != nil {
		return false, fmt.Errorf("get user: %w", err)
	}
	return ok && u.IsAdmin, nil
}

func (s *UserService) List(ctx context.Context) ([]user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.UserService.List")
	defer span.End()

	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (s *UserService) UpdateDisplayName(ctx context.Context, userID, displayName string) (user.User, error) {
	u, err := s.Get(ctx, userID)
	if err != nil {
		return user.User{}, err
	}
	u.DisplayName = strings.TrimSpace(displayName)
	return s.saveProfile(ctx, u)
}

// LinkPaymentEmail records the email of the account the member pays the
// entry fee from. An empty value unlinks it.
func (s *UserService) LinkPaymentEmail(ctx context.Context, userID, paymentEmail string) (user.User, error) {
	u, err := s.Get(ctx, userID)
	if err != nil {
		return user.User{}, err
	}
	u.PaymentEmail = user.NormalizeEmail(paymentEmail)
	updated, err := s.saveProfile(ctx, u)
	if err != nil {
		return user.User{}, err
	}
	s.logger.InfoContext(ctx, "payment email linked", "user_id", updated.ID, "linked", updated.PaymentEmail != "")
	return updated, nil
}

func (s *UserService) saveProfile(ctx context.Context, u user.User) (user.User, error) {
	if err := u.Validate(); err != nil {
		return user.User{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.repo.UpdateProfile(ctx, u.ID, u.DisplayName, u.PaymentEmail); err != nil {
		return user.User{}, fmt.Errorf("update profile: %w", err)
	}
	u.UpdatedAt = s.now().UTC()
	return u, nil
}

// SetAdmin grants or revokes the admin flag. Admins cannot revoke their own
// flag so the league always keeps one.
func (s *UserService) SetAdmin(ctx context.Context, actorID, userID string, isAdmin bool) (_ user.User, err error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.UserService.SetAdmin")
	defer endUsecaseSpan(span, &err)

	if strings.TrimSpace(actorID) == strings.TrimSpace(userID) && !isAdmin {
		return user.User{}, fmt.Errorf("%w: admins cannot revoke their own access", ErrConflict)
	}
	u, err := s.Get(ctx, userID)
	if err != nil {
		return user.User{}, err
	}
	if err := s.repo.SetAdmin(ctx, u.ID, isAdmin); err != nil {
		return user.User{}, fmt.Errorf("set admin: %w", err)
	}
	u.IsAdmin = isAdmin
	s.logger.InfoContext(ctx, "admin flag changed", "actor_id", actorID, "user_id", u.ID, "is_admin", isAdmin)
	return u, nil
}
