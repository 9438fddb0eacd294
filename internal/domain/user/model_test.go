package user

import "testing"

func TestUserValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		user    User
		wantErr bool
	}{
		{name: "valid", user: User{ID: "u1", Email: "ana@example.com"}},
		{name: "valid with payment email", user: User{ID: "u1", Email: "ana@example.com", PaymentEmail: "pay@example.com"}},
		{name: "missing id", user: User{Email: "ana@example.com"}, wantErr: true},
		{name: "bad email", user: User{ID: "u1", Email: "not-an-email"}, wantErr: true},
		{name: "display name form", user: User{ID: "u1", Email: "Ana <ana@example.com>"}, wantErr: true},
		{name: "bad payment email", user: User{ID: "u1", Email: "ana@example.com", PaymentEmail: "x"}, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.user.Validate()
			if tc.wantErr && err == nil {
				t.Fatalf("expected error")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestUserName(t *testing.T) {
	t.Parallel()

	if got := (User{Email: "coach@example.com"}).Name(); got != "coach" {
		t.Fatalf("expected email local part, got %q", got)
	}
	if got := (User{Email: "coach@example.com", DisplayName: "Coach K"}).Name(); got != "Coach K" {
		t.Fatalf("expected display name, got %q", got)
	}
}
