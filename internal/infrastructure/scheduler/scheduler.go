package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/riskibarqy/pickem-league/internal/platform/logging"
)

// JobFunc is one run of a periodic job.
type JobFunc func(ctx context.Context) error

type Job struct {
	Name     string
	Interval time.Duration
	Timeout  time.Duration
	Run      JobFunc
}

// Scheduler runs interval jobs in singleton mode, so a slow run is never
// overlapped by the next tick.
type Scheduler struct {
	gocron gocron.Scheduler
	logger *logging.Logger
	ctx    context.Context
	cancel context.CancelFunc

	mu   sync.Mutex
	jobs map[string]gocron.Job

	stopOnce sync.Once
	stopErr  error
}

func New(logger *logging.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = logging.Default()
	}
	logger = logger.Named("scheduler")

	sched, err := gocron.NewScheduler(
		gocron.WithGlobalJobOptions(
			gocron.WithEventListeners(
				gocron.AfterJobRunsWithPanic(func(jobID uuid.UUID, jobName string, recoverData any) {
					logger.Error("scheduler job panicked", "job_id", jobID.String(), "job", jobName, "panic", recoverData)
				}),
			),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		gocron: sched,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
		jobs:   make(map[string]gocron.Job),
	}, nil
}

func (s *Scheduler) Add(job Job) error {
	if job.Name == "" || job.Run == nil {
		return fmt.Errorf("job name and func are required")
	}
	if job.Interval <= 0 {
		return fmt.Errorf("job %s: interval must be > 0", job.Name)
	}

	handle, err := s.gocron.NewJob(
		gocron.DurationJob(job.Interval),
		gocron.NewTask(func() { s.run(job) }),
		gocron.WithName(job.Name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("create job %s: %w", job.Name, err)
	}

	s.mu.Lock()
	s.jobs[job.Name] = handle
	s.mu.Unlock()
	s.logger.Info("job scheduled", "job", job.Name, "interval", job.Interval.String())
	return nil
}

// RunNow triggers a registered job outside its schedule.
func (s *Scheduler) RunNow(name string) error {
	s.mu.Lock()
	handle, ok := s.jobs[name]
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("job %s not found", name)
	}
	if err := handle.RunNow(); err != nil {
		return fmt.Errorf("trigger job %s: %w", name, err)
	}
	return nil
}

func (s *Scheduler) Start() {
	s.gocron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.gocron.Jobs()))
}

func (s *Scheduler) Stop() error {
	s.stopOnce.Do(func() {
		s.cancel()
		s.stopErr = s.gocron.Shutdown()
		s.logger.Info("scheduler stopped")
	})
	return s.stopErr
}

func (s *Scheduler) run(job Job) {
	ctx := s.ctx
	if job.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, job.Timeout)
		defer cancel()
	}

	started := time.Now()
	if err := job.Run(ctx); err != nil {
		s.logger.ErrorContext(ctx, "job failed", "job", job.Name, "duration", time.Since(started).String(), "error", err)
		return
	}
	s.logger.DebugContext(ctx, "job finished", "job", job.Name, "duration", time.Since(started).String())
}
