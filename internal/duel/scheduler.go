package duel

import (
	"sync"
	"time"
)

// Scheduler runs a continuation after a delay. The returned cancel func
// prevents the continuation from running if it has not started yet.
type Scheduler interface {
	Schedule(delay time.Duration, fn func()) (cancel func())
}

// TimerScheduler schedules continuations on the runtime timer.
type TimerScheduler struct{}

// Schedule implements Scheduler with time.AfterFunc.
func (TimerScheduler) Schedule(delay time.Duration, fn func()) func() {
	timer := time.AfterFunc(delay, fn)
	return func() { timer.Stop() }
}

// ManualScheduler queues continuations until the host calls Tick. The
// delay is recorded but not waited for.
type ManualScheduler struct {
	mu      sync.Mutex
	pending []*manualTask
}

type manualTask struct {
	delay     time.Duration
	fn        func()
	cancelled bool
}

// NewManualScheduler creates an empty tick-driven scheduler.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// Schedule queues fn for the next Tick.
func (m *ManualScheduler) Schedule(delay time.Duration, fn func()) func() {
	task := &manualTask{delay: delay, fn: fn}
	m.mu.Lock()
	m.pending = append(m.pending, task)
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		task.cancelled = true
		m.mu.Unlock()
	}
}

// Pending returns the number of queued, non-cancelled continuations.
func (m *ManualScheduler) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	count := 0
	for _, task := range m.pending {
		if !task.cancelled {
			count++
		}
	}
	return count
}

// LastDelay returns the delay of the most recently queued continuation.
func (m *ManualScheduler) LastDelay() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.pending) == 0 {
		return 0
	}
	return m.pending[len(m.pending)-1].delay
}

// Tick runs every continuation queued before the call, in FIFO order, and
// returns how many ran. Continuations scheduled while ticking wait for the
// next Tick.
func (m *ManualScheduler) Tick() int {
	m.mu.Lock()
	tasks := m.pending
	m.pending = nil
	m.mu.Unlock()

	ran := 0
	for _, task := range tasks {
		m.mu.Lock()
		cancelled := task.cancelled
		m.mu.Unlock()
		if cancelled {
			continue
		}
		task.fn()
		ran++
	}
	return ran
}
