package scheduler

import (
	"sync"
	"time"

	"boildown/internal/logger"
)

// Sweeper evicts sessions idle for at least maxIdle and returns how many it evicted.
type Sweeper interface {
	Sweep(maxIdle time.Duration) int
}

type Scheduler struct {
	sweeper  Sweeper
	interval time.Duration
	maxIdle  time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

func New(sweeper Sweeper, interval, maxIdle time.Duration) *Scheduler {
	return &Scheduler{
		sweeper:  sweeper,
		interval: interval,
		maxIdle:  maxIdle,
		stopCh:   make(chan struct{}),
	}
}

func (s *Scheduler) Start() {
	s.wg.Add(1)
	go s.run()
	logger.Info("scheduler started", "module", "scheduler", "action", "sweep", "resource", "session", "result", "ok", "interval_ms", s.interval.Milliseconds(), "max_idle_ms", s.maxIdle.Milliseconds())
}

// Stop waits for the running sweep to finish. Safe to call more than once.
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() { close(s.stopCh) })
	s.wg.Wait()
	logger.Info("scheduler stopped", "module", "scheduler", "action", "sweep", "resource", "session", "result", "ok")
}

func (s *Scheduler) run() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stopCh:
			return
		}
	}
}

func (s *Scheduler) sweep() {
	evicted := s.sweeper.Sweep(s.maxIdle)
	if evicted > 0 {
		logger.Info("idle sessions evicted", "module", "scheduler", "action", "sweep", "resource", "session", "result", "ok", "count", evicted)
		return
	}
	logger.Debug("session sweep completed", "module", "scheduler", "action", "sweep", "resource", "session", "result", "ok")
}
