package rest

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/pickem-league/internal/domain/user"
)

type UserRepository struct {
	client *Client
	now    func() time.Time
}

func NewUserRepository(client *Client) *UserRepository {
	return &UserRepository{client: client, now: time.Now}
}

func (r *UserRepository) GetByID(ctx context.Context, userID string) (user.User, bool, error) {
	return r.first(ctx, Eq("id", userID))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (user.User, bool, error) {
	return r.first(ctx, ILike("email", user.NormalizeEmail(email)))
}

func (r *UserRepository) first(ctx context.Context, filter Filter) (user.User, bool, error) {
	var rows []userRow
	if err := r.client.Select(ctx, From("users").Select("*").Where(filter).Limit(1), &rows); err != nil {
		return user.User{}, false, fmt.Errorf("get user: %w", err)
	}
	if len(rows) == 0 {
		return user.User{}, false, nil
	}
	return userFromRow(rows[0]), true, nil
}

func (r *UserRepository) List(ctx context.Context) ([]user.User, error) {
	var rows []userRow
	if err := r.client.Select(ctx, From("users").Select("*").Order("created_at.asc", "id.asc"), &rows); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	out := make([]user.User, 0, len(rows))
	for _, row := range rows {
		out = append(out, userFromRow(row))
	}
	return out, nil
}

// Upsert inserts first and refreshes the email when the row already exists,
// leaving admin and profile columns untouched.
func (r *UserRepository) Upsert(ctx context.Context, u user.User) (user.User, error) {
	existing, ok, err := r.GetByID(ctx, u.ID)
	if err != nil {
		return user.User{}, err
	}
	if ok {
		var rows []userRow
		body := map[string]any{"email": u.Email, "updated_at": u.UpdatedAt.UTC()}
		if err := r.client.Update(ctx, From("users").Where(Eq("id", u.ID)), body, &rows); err != nil {
			return user.User{}, fmt.Errorf("refresh user: %w", err)
		}
		if len(rows) == 0 {
			return existing, nil
		}
		return userFromRow(rows[0]), nil
	}

	var rows []userRow
	row := userRow{
		ID:           u.ID,
		Email:        u.Email,
		DisplayName:  u.DisplayName,
		IsAdmin:      u.IsAdmin,
		PaymentEmail: u.PaymentEmail,
		CreatedAt:    u.CreatedAt.UTC(),
		UpdatedAt:    u.UpdatedAt.UTC(),
	}
	if err := r.client.Insert(ctx, From("users"), row, &rows); err != nil {
		return user.User{}, fmt.Errorf("insert user: %w", err)
	}
	if len(rows) == 0 {
		return u, nil
	}
	return userFromRow(rows[0]), nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, userID, displayName, paymentEmail string) error {
	return r.patch(ctx, userID, map[string]any{
		"display_name":  displayName,
		"payment_email": paymentEmail,
		"updated_at":    r.now().UTC(),
	})
}

func (r *UserRepository) SetAdmin(ctx context.Context, userID string, isAdmin bool) error {
	return r.patch(ctx, userID, map[string]any{"is_admin": isAdmin, "updated_at": r.now().UTC()})
}

func (r *UserRepository) patch(ctx context.Context, userID string, body map[string]any) error {
	var rows []userRow
	if err := r.client.Update(ctx, From("users").Where(Eq("id", userID)), body, &rows); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("update user %s: not found", userID)
	}
	return nil
}

func userFromRow(row userRow) user.User {
	return user.User{
		ID:           row.ID,
		Email:        row.Email,
		DisplayName:  row.DisplayName,
		IsAdmin:      row.IsAdmin,
		PaymentEmail: row.PaymentEmail,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
}
