// Package schedule runs recurring jobs on fixed intervals.
//
//	jobs := schedule.New()
//	jobs.Every(time.Hour, "orders:export", exportOrders)
//	go jobs.Run(ctx)
//
// A job runs on the first tick after Run starts and then once per interval.
// A run that is still going when the job is due again is skipped.
package schedule

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-faster/errors"

	"github.com/shashiranjanraj/shopdesk/pkg/logger"
)

// Job is the function signature for a scheduled task.
type Job func(ctx context.Context) error

type entry struct {
	name    string
	every   time.Duration
	job     Job
	lastRun time.Time
	running bool
}

// Scheduler dispatches registered jobs. The zero value is not usable; call
// New.
type Scheduler struct {
	mu      sync.Mutex
	entries []*entry
	tick    time.Duration
	wg      sync.WaitGroup
}

func New() *Scheduler {
	return &Scheduler{tick: time.Second}
}

// Every registers job to run every d.
func (s *Scheduler) Every(d time.Duration, name string, job Job) error {
	if d <= 0 {
		return errors.Errorf("schedule: %s: interval must be positive", name)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, &entry{name: name, every: d, job: job})
	return nil
}

// List describes every registered job, for CLI display.
func (s *Scheduler) List() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, fmt.Sprintf("%s  [every %s]", e.name, e.every))
	}
	return out
}

// Run dispatches due jobs until ctx is cancelled, then waits for running
// jobs to return. Jobs receive ctx.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	logger.Info("schedule: scheduler started", "jobs", len(s.List()))
	for {
		select {
		case <-ctx.Done():
			s.wg.Wait()
			logger.Info("schedule: scheduler stopped")
			return
		case now := <-ticker.C:
			s.dispatchDue(ctx, now)
		}
	}
}

func (s *Scheduler) dispatchDue(ctx context.Context, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.entries {
		if !e.lastRun.IsZero() && now.Sub(e.lastRun) < e.every {
			continue
		}
		if e.running {
			logger.Warn("schedule: skipping overlapping job", "job", e.name)
			continue
		}
		e.running = true
		e.lastRun = now

		s.wg.Add(1)
		go s.run(ctx, e)
	}
}

func (s *Scheduler) run(ctx context.Context, e *entry) {
	defer s.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			logger.Error("schedule: job panicked", "job", e.name, "panic", r)
		}
		s.mu.Lock()
		e.running = false
		s.mu.Unlock()
	}()

	start := time.Now()
	if err := e.job(ctx); err != nil {
		logger.Error("schedule: job failed", "job", e.name, "error", err)
		return
	}
	logger.Info("schedule: job done", "job", e.name, "took", time.Since(start).String())
}
