package scheduler

import (
	"context"
	"fmt"
	"time"

	"church-app-go/pkg/logger"
	"github.com/robfig/cron/v3"
)

const jobTimeout = 4 * time.Minute

type Job func(ctx context.Context) error

// Observer is told about every finished run.
type Observer interface {
	JobFinished(job string, elapsed time.Duration, err error)
}

type Scheduler struct {
	cron     *cron.Cron
	log      logger.Logger
	observer Observer
}

func New(log logger.Logger, loc *time.Location, observer Observer) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	return &Scheduler{
		cron:     cron.New(cron.WithLocation(loc), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		log:      log,
		observer: observer,
	}
}

// Add registers job under a standard five-field cron spec.
func (s *Scheduler) Add(name, spec string, job Job) error {
	if _, err := s.cron.AddFunc(spec, func() { s.Run(name, job) }); err != nil {
		return fmt.Errorf("schedule %s: %w", name, err)
	}
	s.log.Info("scheduler: job registered", "job", name, "spec", spec)
	return nil
}

// Run executes job once with a timeout, recording the outcome.
func (s *Scheduler) Run(name string, job Job) {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	start := time.Now()
	err := runJob(ctx, job)
	elapsed := time.Since(start)

	if s.observer != nil {
		s.observer.JobFinished(name, elapsed, err)
	}
	if err != nil {
		s.log.InternalError("scheduler: job failed", err, "job", name)
		return
	}
	s.log.Debug("scheduler: job finished", "job", name, "elapsed", elapsed)
}

// runJob turns a panic into an error so one bad run cannot take down the
// process.
func runJob(ctx context.Context, job Job) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("job panicked: %v", r)
		}
	}()
	return job(ctx)
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop waits for running jobs or until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}

func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}
