package user

import "context"

type Repository interface {
	GetByID(ctx context.Context, userID string) (User, bool, error)
	GetByEmail(ctx context.Context, email string) (User, bool, error)
	List(ctx context.Context) ([]User, error)
	// Upsert inserts the user or refreshes the email of an existing row.
	// Admin flag, display name and payment email are left untouched on conflict.
	Upsert(ctx context.Context, u User) (User, error)
	UpdateProfile(ctx context.Context, userID, displayName, paymentEmail string) error
	SetAdmin(ctx context.Context, userID string, isAdmin bool) error
}
