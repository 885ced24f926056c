// internal/app/system/tasks/tasks.go
package tasks

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Job is a recurring background task. Exactly one of Interval or Next
// drives the schedule:
//   - Interval: fixed-period jobs (cleanup every hour).
//   - Next: calendar jobs; given the current time it returns the next
//     firing instant (the monthly awards job fires at the last day of
//     the month, 23:59).
//
// Runs of the same job are serialized: a firing completes (or fails)
// before the next one is scheduled.
type Job struct {
	Name     string
	Interval time.Duration
	Next     func(now time.Time) time.Time
	Run      func(ctx context.Context) error
}

// Runner owns a set of background jobs. Start launches one goroutine
// per job; Stop cancels them and waits for in-flight runs to finish.
type Runner struct {
	log    *zap.Logger
	jobs   []Job
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewRunner(logger *zap.Logger) *Runner {
	return &Runner{log: logger}
}

// Add registers a job. Call before Start.
func (r *Runner) Add(j Job) {
	r.jobs = append(r.jobs, j)
}

// Start launches all registered jobs.
func (r *Runner) Start(ctx context.Context) {
	ctx, r.cancel = context.WithCancel(ctx)
	for _, j := range r.jobs {
		r.wg.Add(1)
		go r.loop(ctx, j)
	}
}

// Stop cancels all jobs and blocks until their loops exit.
func (r *Runner) Stop() {
	if r.cancel != nil {
		r.cancel()
	}
	r.wg.Wait()
}

func (r *Runner) loop(ctx context.Context, j Job) {
	defer r.wg.Done()

	for {
		wait := j.Interval
		if j.Next != nil {
			wait = time.Until(j.Next(time.Now()))
		}
		if wait < 0 {
			wait = 0
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		start := time.Now()
		r.log.Info("job starting", zap.String("job", j.Name))
		if err := j.Run(ctx); err != nil {
			r.log.Error("job failed",
				zap.String("job", j.Name),
				zap.Duration("took", time.Since(start)),
				zap.Error(err))
			continue
		}
		r.log.Info("job finished",
			zap.String("job", j.Name),
			zap.Duration("took", time.Since(start)))
	}
}
