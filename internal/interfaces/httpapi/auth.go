package httpapi

import (
	"context"
	"crypto/subtle"
	"fmt"
	"net/http"
	"strings"

	"github.com/riskibarqy/pickem-league/internal/domain/user"
	"github.com/riskibarqy/pickem-league/internal/usecase"
)

const internalJobTokenHeader = "X-Internal-Job-Token"

// TokenVerifier verifies bearer tokens against the auth backend.
type TokenVerifier interface {
	VerifyAccessToken(ctx context.Context, token string) (user.Principal, error)
}

// MemberResolver turns a verified principal into the stored league member.
type MemberResolver interface {
	EnsureUser(ctx context.Context, principal user.Principal) (user.User, error)
}

type memberKey struct{}

func withMember(ctx context.Context, u user.User) context.Context {
	return context.WithValue(ctx, memberKey{}, u)
}

func memberFromContext(ctx context.Context) (user.User, bool) {
	u, ok := ctx.Value(memberKey{}).(user.User)
	return u, ok
}

func bearerToken(r *http.Request) (string, error) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return "", fmt.Errorf("%w: missing Authorization header", usecase.ErrUnauthorized)
	}
	scheme, token, ok := strings.Cut(header, " ")
	token = strings.TrimSpace(token)
	if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", fmt.Errorf("%w: invalid Authorization header format", usecase.ErrUnauthorized)
	}
	return token, nil
}

// RequireAuth verifies the bearer token and registers the caller as a league
// member on first sight.
func RequireAuth(verifier TokenVerifier, members MemberResolver, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		token, err := bearerToken(r)
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		principal, err := verifier.VerifyAccessToken(ctx, token)
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		member, err := members.EnsureUser(ctx, principal)
		if err != nil {
			writeError(ctx, w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(withMember(ctx, member)))
	})
}

// RequireAdmin must run inside RequireAuth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		member, ok := memberFromContext(r.Context())
		switch {
		case !ok:
			writeError(r.Context(), w, fmt.Errorf("%w: member is missing from request context", usecase.ErrUnauthorized))
		case !member.IsAdmin:
			writeError(r.Context(), w, fmt.Errorf("%w: admin access required", usecase.ErrForbidden))
		default:
			next.ServeHTTP(w, r)
		}
	})
}

// RequireInternalJobToken guards the endpoints an external cron calls.
func RequireInternalJobToken(token string, next http.Handler) http.Handler {
	expected := strings.TrimSpace(token)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := checkJobToken(expected, r.Header.Get(internalJobTokenHeader)); err != nil {
			writeError(r.Context(), w, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdminOrJobToken admits a caller presenting the job token and sends
// everyone else through the admin check.
func RequireAdminOrJobToken(verifier TokenVerifier, members MemberResolver, token string, next http.Handler) http.Handler {
	expected := strings.TrimSpace(token)
	admin := RequireAuth(verifier, members, RequireAdmin(next))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		provided := r.Header.Get(internalJobTokenHeader)
		if expected == "" || strings.TrimSpace(provided) == "" {
			admin.ServeHTTP(w, r)
			return
		}
		if err := checkJobToken(expected, provided); err != nil {
			writeError(r.Context(), w, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func checkJobToken(expected, provided string) error {
	if expected == "" {
		return fmt.Errorf("%w: internal job token is not configured", usecase.ErrDependencyUnavailable)
	}
	provided = strings.TrimSpace(provided)
	if provided == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(expected)) != 1 {
		return fmt.Errorf("%w: invalid internal job token", usecase.ErrUnauthorized)
	}
	return nil
}
