package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/pickem-league/internal/platform/logging"
	"github.com/stretchr/testify/require"
)

func TestScheduler_RunNowExecutesJob(t *testing.T) {
	t.Parallel()

	s, err := New(logging.NewNop())
	require.NoError(t, err)

	ran := make(chan struct{}, 1)
	require.NoError(t, s.Add(Job{
		Name:     "lock-weeks",
		Interval: time.Hour,
		Timeout:  time.Second,
		Run: func(ctx context.Context) error {
			if _, ok := ctx.Deadline(); !ok {
				return errors.New("expected deadline")
			}
			ran <- struct{}{}
			return nil
		},
	}))
	s.Start()
	t.Cleanup(func() { _ = s.Stop() })

	require.NoError(t, s.RunNow("lock-weeks"))
	select {
	case <-ran:
	case <-time.After(5 * time.Second):
		t.Fatal("job did not run")
	}
}

func TestScheduler_FailingJobKeepsRunning(t *testing.T) {
	t.Parallel()

	s, err := New(logging.NewNop())
	require.NoError(t, err)

	var calls atomic.Int32
	require.NoError(t, s.Add(Job{
		Name:     "reminders",
		Interval: 50 * time.Millisecond,
		Run: func(context.Context) error {
			calls.Add(1)
			return errors.New("provider down")
		},
	}))
	s.Start()
	t.Cleanup(func() { _ = s.Stop() })

	require.Eventually(t, func() bool { return calls.Load() >= 2 }, 5*time.Second, 10*time.Millisecond)
}

func TestScheduler_Validation(t *testing.T) {
	t.Parallel()

	s, err := New(logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Stop() })

	require.Error(t, s.Add(Job{Name: "", Interval: time.Minute, Run: func(context.Context) error { return nil }}))
	require.Error(t, s.Add(Job{Name: "x", Interval: 0, Run: func(context.Context) error { return nil }}))
	require.Error(t, s.RunNow("missing"))
}
