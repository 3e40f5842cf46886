package scheduler

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type countingSweeper struct {
	mu      sync.Mutex
	calls   int
	maxIdle time.Duration
}

func (s *countingSweeper) Sweep(maxIdle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	s.maxIdle = maxIdle
	return 1
}

func (s *countingSweeper) snapshot() (int, time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls, s.maxIdle
}

func TestScheduler_SweepsOnInterval(t *testing.T) {
	sweeper := &countingSweeper{}
	s := New(sweeper, 10*time.Millisecond, time.Minute)
	s.Start()

	require.Eventually(t, func() bool {
		calls, _ := sweeper.snapshot()
		return calls >= 2
	}, time.Second, 5*time.Millisecond)

	s.Stop()
	calls, maxIdle := sweeper.snapshot()
	require.Equal(t, time.Minute, maxIdle)

	time.Sleep(30 * time.Millisecond)
	after, _ := sweeper.snapshot()
	require.Equal(t, calls, after)
}

func TestScheduler_StopTwice(t *testing.T) {
	s := New(&countingSweeper{}, time.Hour, time.Minute)
	s.Start()
	s.Stop()
	s.Stop()
}
