package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/riskibarqy/pickem-league/internal/config"
	"github.com/riskibarqy/pickem-league/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/pickem-league/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryConfig() config.Config {
	return config.Config{
		AppEnv:               config.EnvDev,
		ServiceName:          "pickem-league-api",
		HTTPAddr:             ":0",
		CORSAllowedOrigins:   []string{"*"},
		StorageDriver:        config.StorageDriverMemory,
		CacheEnabled:         true,
		CacheDriver:          "memory",
		CacheTTL:             time.Minute,
		BaaSAuthCacheTTL:     30 * time.Second,
		MaxPicksPerWeek:      6,
		MaxLocksPerWeek:      1,
		ScoringWinPoints:     1,
		ScoringLockWin:       2,
		RegradeWorkerCount:   2,
		ReminderWorkerCount:  2,
		EmailProvider:        config.EmailProviderLog,
		EmailFrom:            "picks@example.com",
		JobLockWeeksInterval: time.Minute,
		JobReminderInterval:  time.Minute,
		ReminderLead:         24 * time.Hour,
	}
}

func TestNewServices_MemoryDriver(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	services, err := NewServices(ctx, memoryConfig(), logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(services.Close)

	games, err := services.Games.ListByWeek(ctx, memory.SeedSeason, 1)
	require.NoError(t, err)
	assert.NotEmpty(t, games)

	admin, err := services.Users.IsAdmin(ctx, memory.SeedAdminUserID)
	require.NoError(t, err)
	assert.True(t, admin)
}

func TestNewHTTPServer_ServesHealthz(t *testing.T) {
	t.Parallel()

	cfg := memoryConfig()
	services, err := NewServices(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(services.Close)

	srv, err := NewHTTPServer(cfg, services, logging.NewNop())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	cfg.HTTPAddr = ""
	_, err = NewHTTPServer(cfg, services, logging.NewNop())
	assert.Error(t, err)
}

func TestNewScheduler(t *testing.T) {
	t.Parallel()

	cfg := memoryConfig()
	services, err := NewServices(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(services.Close)

	s, err := NewScheduler(cfg, services, logging.NewNop())
	require.NoError(t, err)
	assert.Nil(t, s)

	cfg.SchedulerEnabled = true
	s, err = NewScheduler(cfg, services, logging.NewNop())
	require.NoError(t, err)
	require.NotNil(t, s)
	s.Start()
	t.Cleanup(func() { _ = s.Stop() })
	require.NoError(t, s.RunNow(JobLockWeeks))
}

func TestNewServices_RejectsUnknownDriver(t *testing.T) {
	t.Parallel()

	cfg := memoryConfig()
	cfg.StorageDriver = "sqlite"
	_, err := NewServices(context.Background(), cfg, logging.NewNop())
	assert.Error(t, err)
}
