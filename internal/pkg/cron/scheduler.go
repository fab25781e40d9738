// Package cron drives the engine's recurring passes in-process: the
// transaction sweep, the due-action sweep, and the legacy migration
// sweep. Each pass runs on a fixed interval in its own goroutine.
package cron

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Job is one recurring engine pass
type Job struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) error
}

// Scheduler owns the registered passes. All passes share one context;
// Stop cancels it and waits for in-flight runs to finish, so a pass
// mid-batch is never abandoned.
type Scheduler struct {
	jobs   []Job
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	mu     sync.Mutex
}

func NewScheduler() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		ctx:    ctx,
		cancel: cancel,
	}
}

// AddJob registers a pass. Registration after Start has no effect on
// the running set.
func (s *Scheduler) AddJob(name string, interval time.Duration, run func(ctx context.Context) error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.jobs = append(s.jobs, Job{Name: name, Interval: interval, Run: run})
	slog.Info("Pass registered", "name", name, "interval", interval)
}

// Start launches every registered pass
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, job := range s.jobs {
		s.wg.Add(1)
		go s.loop(job)
	}
	slog.Info("Scheduler started", "passes", len(s.jobs))
}

// Stop cancels all passes and blocks until in-flight runs return
func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	slog.Info("Scheduler stopped")
}

func (s *Scheduler) loop(job Job) {
	defer s.wg.Done()

	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	// The first run fires at startup, not after one full interval, so
	// work queued while the process was down is picked up right away.
	s.run(s.ctx, job)

	for {
		select {
		case <-s.ctx.Done():
			slog.Info("Pass stopping", "name", job.Name)
			return
		case <-ticker.C:
			s.run(s.ctx, job)
		}
	}
}

func (s *Scheduler) run(ctx context.Context, job Job) {
	start := time.Now()
	if err := job.Run(ctx); err != nil {
		// A failed pass is retried on the next tick; per-record errors
		// inside the engine already surfaced in its report.
		slog.Error("Pass failed", "name", job.Name, "error", err, "duration", time.Since(start))
		return
	}
	slog.Debug("Pass completed", "name", job.Name, "duration", time.Since(start))
}

// RunOnce runs every registered pass a single time on the caller's
// context, bypassing the tickers.
func (s *Scheduler) RunOnce(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, job := range s.jobs {
		s.run(ctx, job)
	}
}
