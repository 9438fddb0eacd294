package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/riskibarqy/pickem-league/internal/domain/user"
)

type UserRepository struct {
	mu    sync.RWMutex
	items map[string]user.User
	now   func() time.Time
}

func NewUserRepository(users []user.User) *UserRepository {
	items := make(map[string]user.User, len(users))
	for _, u := range users {
		items[u.ID] = u
	}
	return &UserRepository{items: items, now: time.Now}
}

func (r *UserRepository) GetByID(_ context.Context, userID string) (user.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.items[userID]
	return u, ok, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (user.User, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	email = user.NormalizeEmail(email)
	for _, u := range r.items {
		if strings.EqualFold(u.Email, email) {
			return u, true, nil
		}
	}
	return user.User{}, false, nil
}

func (r *UserRepository) List(_ context.Context) ([]user.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]user.User, 0, len(r.items))
	for _, u := range r.items {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *UserRepository) Upsert(_ context.Context, u user.User) (user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.items[u.ID]
	if !ok {
		r.items[u.ID] = u
		return u, nil
	}
	existing.Email = u.Email
	existing.UpdatedAt = u.UpdatedAt
	r.items[u.ID] = existing
	return existing, nil
}

func (r *UserRepository) UpdateProfile(_ context.Context, userID, displayName, paymentEmail string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.items[userID]
	if !ok {
		return fmt.Errorf("user %s not found", userID)
	}
	u.DisplayName = displayName
	u.PaymentEmail = paymentEmail
	u.UpdatedAt = r.now().UTC()
	r.items[userID] = u
	return nil
}

func (r *UserRepository) SetAdmin(_ context.Context, userID string, isAdmin bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.items[userID]
	if !ok {
		return fmt.Errorf("user %s not found", userID)
	}
	u.IsAdmin = isAdmin
	u.UpdatedAt = r.now().UTC()
	r.items[userID] = u
	return nil
}
