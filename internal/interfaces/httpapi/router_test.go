package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/pickem-league/internal/domain/email"
	"github.com/riskibarqy/pickem-league/internal/domain/pick"
	"github.com/riskibarqy/pickem-league/internal/domain/user"
	"github.com/riskibarqy/pickem-league/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/pickem-league/internal/platform/id"
	"github.com/riskibarqy/pickem-league/internal/platform/logging"
	"github.com/riskibarqy/pickem-league/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	adminToken  = "admin-token"
	memberToken = "member-token"
	jobToken    = "job-secret"
)

type stubVerifier map[string]user.Principal

func (s stubVerifier) VerifyAccessToken(_ context.Context, token string) (user.Principal, error) {
	p, ok := s[token]
	if !ok {
		return user.Principal{}, fmt.Errorf("%w: unknown token", usecase.ErrUnauthorized)
	}
	return p, nil
}

type recordingSender struct {
	mu   sync.Mutex
	sent []email.Message
}

func (s *recordingSender) Send(_ context.Context, msg email.Message) (email.Receipt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, msg)
	return email.Receipt{MessageID: fmt.Sprintf("msg-%d", len(s.sent))}, nil
}

type testEnvelope struct {
	Data  any `json:"data"`
	Error *struct {
		Code   int `json:"code"`
		Errors []struct {
			Reason string `json:"reason"`
		} `json:"errors"`
	} `json:"error"`
}

type testServer struct {
	router http.Handler
	sender *recordingSender
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	now := time.Now()
	logger := logging.NewNop()
	ids := id.NewUUIDGenerator()

	gameRepo := memory.NewGameRepository(memory.SeedGames(now))
	settingsRepo := memory.NewWeekSettingsRepository()
	pickRepo := memory.NewPickRepository()
	userRepo := memory.NewUserRepository(memory.SeedUsers(now))
	blogRepo := memory.NewBlogRepository()
	sender := &recordingSender{}

	leaderboardService := usecase.NewLeaderboardService(pickRepo, userRepo, nil, logger)
	userService := usecase.NewUserService(userRepo, logger)
	emailService := usecase.NewEmailService(sender, "league@example.com", logger)
	handler := NewHandler(
		usecase.NewGameService(gameRepo, pickRepo, pick.DefaultScoring(), ids, leaderboardService, logger, 2),
		usecase.NewPickService(gameRepo, settingsRepo, pickRepo, pick.DefaultLimits(), ids, leaderboardService, logger),
		usecase.NewWeekService(settingsRepo, logger),
		leaderboardService,
		userService,
		usecase.NewBlogService(blogRepo, ids, logger),
		emailService,
		usecase.NewReminderService(settingsRepo, userRepo, pickRepo, emailService, usecase.ReminderConfig{Lead: time.Hour}, logger),
		logger,
	)

	verifier := stubVerifier{
		adminToken:  {UserID: memory.SeedAdminUserID, Email: "commissioner@example.com"},
		memberToken: {UserID: "member-1", Email: "fan@example.com"},
	}
	return &testServer{
		router: NewRouter(handler, verifier, userService, logger, []string{"*"}, jobToken),
		sender: sender,
	}
}

func (s *testServer) do(t *testing.T, method, path, token, body string, headers ...string) (int, testEnvelope) {
	t.Helper()

	code, raw := s.doRaw(t, method, path, token, body, headers...)
	var env testEnvelope
	if len(raw) > 0 {
		require.NoError(t, sonic.Unmarshal(raw, &env), string(raw))
	}
	return code, env
}

func (s *testServer) doRaw(t *testing.T, method, path, token, body string, headers ...string) (int, []byte) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec.Code, rec.Body.Bytes()
}

func (e testEnvelope) field(name string) any {
	obj, _ := e.Data.(map[string]any)
	return obj[name]
}

func reasonOf(env testEnvelope) string {
	if env.Error == nil || len(env.Error.Errors) == 0 {
		return ""
	}
	return env.Error.Errors[0].Reason
}

func TestRouter_Healthz(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	code, env := srv.do(t, http.MethodGet, "/healthz", "", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", env.field("status"))
}

func TestRouter_AuthAndAdminGuards(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	code, _ := srv.do(t, http.MethodGet, "/v1/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = srv.do(t, http.MethodGet, "/v1/me", "bogus", "")
	assert.Equal(t, http.StatusUnauthorized, code)

	code, env := srv.do(t, http.MethodGet, "/v1/me", memberToken, "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "member-1", env.field("id"))

	code, env = srv.do(t, http.MethodGet, "/v1/admin/users", memberToken, "")
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "forbidden", reasonOf(env))

	code, _ = srv.do(t, http.MethodGet, "/v1/admin/users", adminToken, "")
	assert.Equal(t, http.StatusOK, code)
}

func TestRouter_PickLimitReturnsConflict(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	picks := map[string]string{
		"w1-bama-fsu": "Alabama",
		"w1-uga-clem": "Clemson",
		"w1-tex-mich": "Texas",
		"w1-nd-tamu":  "Notre Dame",
		"w1-lsu-usc":  "usc",
		"w1-osu-psu":  "Ohio State",
	}
	for gameID, team := range picks {
		body := fmt.Sprintf(`{"game_id":%q,"selected_team":%q}`, gameID, team)
		code, env := srv.do(t, http.MethodPost, "/v1/picks", memberToken, body)
		require.Equal(t, http.StatusCreated, code, "game %s: %+v", gameID, env.Error)
	}

	code, env := srv.do(t, http.MethodPost, "/v1/picks", memberToken, `{"game_id":"w1-ore-wash","selected_team":"Oregon"}`)
	require.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "pickLimitExceeded", reasonOf(env))
}

func TestRouter_ClosedWeekReturnsLocked(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	code, _ := srv.do(t, http.MethodPut, "/v1/admin/seasons/2025/weeks/1/settings", adminToken, `{"picks_open":false}`)
	require.Equal(t, http.StatusOK, code)

	code, env := srv.do(t, http.MethodPost, "/v1/picks", memberToken, `{"game_id":"w1-bama-fsu","selected_team":"Alabama"}`)
	require.Equal(t, http.StatusLocked, code)
	assert.Equal(t, "picksClosed", reasonOf(env))

	code, _ = srv.do(t, http.MethodPost, "/v1/admin/seasons/2025/weeks/1/open", adminToken, "")
	require.Equal(t, http.StatusOK, code)

	code, _ = srv.do(t, http.MethodPost, "/v1/picks", memberToken, `{"game_id":"w1-bama-fsu","selected_team":"Alabama"}`)
	assert.Equal(t, http.StatusCreated, code)
}

func TestRouter_AnonymousPicksRequireEmail(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	code, _ := srv.do(t, http.MethodPost, "/v1/anonymous-picks", "", `{"email":"not-an-email","picks":[{"game_id":"w1-bama-fsu","selected_team":"Alabama"}]}`)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = srv.do(t, http.MethodPost, "/v1/anonymous-picks", "", `{"email":"Guest@Example.com","picks":[{"game_id":"w1-bama-fsu","selected_team":"Alabama","is_lock":true}]}`)
	require.Equal(t, http.StatusCreated, code)

	code, _ = srv.do(t, http.MethodGet, "/v1/anonymous-picks?season=2025&week=1", "", "")
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = srv.do(t, http.MethodGet, "/v1/anonymous-picks?email=guest@example.com&season=2025&week=1", "", "")
	assert.Equal(t, http.StatusOK, code)
}

func TestRouter_SendEmailAcceptsStringOrArray(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	code, raw := srv.doRaw(t, http.MethodPost, "/v1/email/send", adminToken, `{"to":"fan@example.com","subject":"Week 1","html":"<p>Picks due</p>"}`)
	require.Equal(t, http.StatusOK, code)
	var body map[string]any
	require.NoError(t, sonic.Unmarshal(raw, &body), string(raw))
	assert.Equal(t, map[string]any{"success": true, "messageId": "msg-1"}, body)

	code, _ = srv.do(t, http.MethodPost, "/v1/email/send", "", `{"to":["a@example.com","b@example.com"],"subject":"Week 1","html":"<p>x</p>"}`,
		internalJobTokenHeader, jobToken)
	require.Equal(t, http.StatusOK, code)

	code, env := srv.do(t, http.MethodPost, "/v1/email/send", adminToken, `{"to":["nope"],"subject":"s","html":"h"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	require.NotNil(t, env.Error)
	assert.Equal(t, http.StatusBadRequest, env.Error.Code)

	code, _ = srv.do(t, http.MethodPost, "/v1/email/send", memberToken, `{"to":"fan@example.com","subject":"s","html":"h"}`)
	assert.Equal(t, http.StatusForbidden, code)

	srv.sender.mu.Lock()
	defer srv.sender.mu.Unlock()
	require.Len(t, srv.sender.sent, 2)
	assert.Equal(t, []string{"fan@example.com"}, srv.sender.sent[0].To)
	assert.Equal(t, "league@example.com", srv.sender.sent[0].From)
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, srv.sender.sent[1].To)
}

func TestRouter_InternalJobsRequireToken(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	code, _ := srv.do(t, http.MethodPost, "/v1/internal/jobs/lock-weeks", "", "")
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = srv.do(t, http.MethodPost, "/v1/internal/jobs/lock-weeks", "", "", internalJobTokenHeader, "wrong")
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = srv.do(t, http.MethodPost, "/v1/internal/jobs/lock-weeks", "", "", internalJobTokenHeader, jobToken)
	assert.Equal(t, http.StatusOK, code)

	code, env := srv.do(t, http.MethodPost, "/v1/internal/jobs/send-reminders", "", "", internalJobTokenHeader, jobToken)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 0, env.field("sent"))
}

func TestRouter_BlogDraftsHiddenUntilPublished(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)
	code, env := srv.do(t, http.MethodPost, "/v1/admin/blog/posts", adminToken, `{"title":"Week One Preview","body":"Lines are out."}`)
	require.Equal(t, http.StatusCreated, code)
	postID, _ := env.field("id").(string)
	slug, _ := env.field("slug").(string)
	require.NotEmpty(t, postID)
	require.Equal(t, "week-one-preview", slug)

	code, _ = srv.do(t, http.MethodGet, "/v1/blog/posts/"+slug, "", "")
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = srv.do(t, http.MethodPost, "/v1/admin/blog/posts/"+postID+"/publish", adminToken, "")
	require.Equal(t, http.StatusOK, code)

	code, env = srv.do(t, http.MethodGet, "/v1/blog/posts/"+slug, "", "")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, env.field("published"))
}

func TestRouter_RecoversPanics(t *testing.T) {
	t.Parallel()

	handler := recoverPanic(logging.NewNop(), http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "boom")
}
