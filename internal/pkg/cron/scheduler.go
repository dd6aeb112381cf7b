package cron

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

type job struct {
	name     string
	interval time.Duration
	run      func(ctx context.Context) error
}

// Scheduler runs the background maintenance jobs (holiday calendar refresh,
// expired-token cleanup) on fixed intervals, one goroutine per job.
type Scheduler struct {
	jobs   []job
	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewScheduler() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		ctx:    ctx,
		cancel: cancel,
	}
}

// AddJob registers a job. Registration happens during startup, before
// Start; the scheduler does not support adding jobs while running.
func (s *Scheduler) AddJob(name string, interval time.Duration, run func(ctx context.Context) error) {
	s.jobs = append(s.jobs, job{name: name, interval: interval, run: run})
	slog.Info("Cron job registered", "name", name, "interval", interval)
}

// Start launches every registered job. Each job fires once immediately so
// the holiday cache is warm before the first rekap request, then on its
// interval.
func (s *Scheduler) Start() {
	for _, j := range s.jobs {
		s.wg.Add(1)
		go s.loop(j)
	}
	slog.Info("Cron scheduler started", "job_count", len(s.jobs))
}

// Stop cancels all jobs and waits for in-flight runs to finish.
func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
	slog.Info("Cron scheduler stopped")
}

func (s *Scheduler) loop(j job) {
	defer s.wg.Done()

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	s.execute(j)

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.execute(j)
		}
	}
}

// execute runs one job iteration. A failing job is logged and retried on
// the next tick; it never stops the scheduler.
func (s *Scheduler) execute(j job) {
	start := time.Now()
	if err := j.run(s.ctx); err != nil {
		slog.Error("Cron job failed", "name", j.name, "error", err, "duration", time.Since(start))
		return
	}
	slog.Debug("Cron job completed", "name", j.name, "duration", time.Since(start))
}

// RunOnce executes every registered job once with the given context,
// without starting the tickers.
func (s *Scheduler) RunOnce(ctx context.Context) {
	for _, j := range s.jobs {
		if err := j.run(ctx); err != nil {
			slog.Error("Cron job failed", "name", j.name, "error", err)
		}
	}
}
