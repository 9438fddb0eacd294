package user

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// rules applies the same "email" tag the HTTP request structs use.
var rules = validator.New()

// User is a registered league member. ID is the auth subject id issued by the
// identity backend.
type User struct {
	ID           string
	Email        string
	DisplayName  string
	IsAdmin      bool
	PaymentEmail string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Principal is the identity carried by a verified bearer token.
type Principal struct {
	UserID string
	Email  string
}

// Name returns the display name, falling back to the local part of the email.
func (u User) Name() string {
	if strings.TrimSpace(u.DisplayName) != "" {
		return u.DisplayName
	}
	local, _, _ := strings.Cut(u.Email, "@")
	return local
}

func (u User) Validate() error {
	if strings.TrimSpace(u.ID) == "" {
		return fmt.Errorf("user id is required")
	}
	if err := ValidateEmail(u.Email); err != nil {
		return err
	}
	if u.PaymentEmail != "" {
		if err := ValidateEmail(u.PaymentEmail); err != nil {
			return fmt.Errorf("payment email: %w", err)
		}
	}
	if len(u.DisplayName) > 64 {
		return fmt.Errorf("display name must be at most 64 characters")
	}
	return nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if err := rules.Var(email, "email"); err != nil {
		return fmt.Errorf("invalid email %q", email)
	}
	return nil
}
