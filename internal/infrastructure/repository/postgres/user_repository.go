package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/pickem-league/internal/domain/user"
	qb "github.com/riskibarqy/pickem-league/internal/platform/querybuilder"
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, userID string) (user.User, bool, error) {
	return r.get(ctx, "get user", qb.Eq("id", userID))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (user.User, bool, error) {
	return r.get(ctx, "get user by email", qb.Expr("LOWER(email) = ?", user.NormalizeEmail(email)))
}

func (r *UserRepository) get(ctx context.Context, op string, cond qb.Condition) (user.User, bool, error) {
	query, args, err := qb.Select("*").From("users").Where(cond).ToSQL()
	if err != nil {
		return user.User{}, false, fmt.Errorf("build %s query: %w", op, err)
	}

	var row userTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return user.User{}, false, nil
		}
		return user.User{}, false, fmt.Errorf("%s: %w", op, err)
	}
	return userFromRow(row), true, nil
}

func (r *UserRepository) List(ctx context.Context) ([]user.User, error) {
	query, args, err := qb.Select("*").From("users").OrderBy("created_at", "id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list users query: %w", err)
	}

	var rows []userTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	out := make([]user.User, 0, len(rows))
	for _, row := range rows {
		out = append(out, userFromRow(row))
	}
	return out, nil
}

func (r *UserRepository) Upsert(ctx context.Context, u user.User) (user.User, error) {
	query, args, err := qb.InsertInto("users").
		Columns("id", "email", "display_name", "is_admin", "payment_email", "created_at", "updated_at").
		Values(u.ID, u.Email, u.DisplayName, u.IsAdmin, u.PaymentEmail, u.CreatedAt, u.UpdatedAt).
		OnConflict("id").
		DoUpdate("email", "updated_at").
		Returning("*").
		ToSQL()
	if err != nil {
		return user.User{}, fmt.Errorf("build upsert user query: %w", err)
	}

	var row userTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return user.User{}, fmt.Errorf("upsert user: %w", err)
	}
	return userFromRow(row), nil
}

func (r *UserRepository) UpdateProfile(ctx context.Context, userID, displayName, paymentEmail string) error {
	query, args, err := qb.Update("users").
		Set("display_name", displayName).
		Set("payment_email", paymentEmail).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", userID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update profile query: %w", err)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	return requireAffected(res, "update profile")
}

func (r *UserRepository) SetAdmin(ctx context.Context, userID string, isAdmin bool) error {
	query, args, err := qb.Update("users").
		Set("is_admin", isAdmin).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", userID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build set admin query: %w", err)
	}
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("set admin: %w", err)
	}
	return requireAffected(res, "set admin")
}

func userFromRow(row userTableModel) user.User {
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
