package duel

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManualSchedulerRunsInOrder(t *testing.T) {
	s := NewManualScheduler()
	var order []int
	s.Schedule(time.Second, func() { order = append(order, 1) })
	s.Schedule(2*time.Second, func() { order = append(order, 2) })

	assert.Equal(t, 2, s.Pending())
	assert.Equal(t, 2*time.Second, s.LastDelay())

	assert.Equal(t, 2, s.Tick())
	assert.Equal(t, []int{1, 2}, order)
	assert.Equal(t, 0, s.Pending())
	assert.Equal(t, 0, s.Tick())
}

func TestManualSchedulerCancel(t *testing.T) {
	s := NewManualScheduler()
	ran := false
	cancel := s.Schedule(0, func() { ran = true })

	cancel()

	assert.Equal(t, 0, s.Pending())
	assert.Equal(t, 0, s.Tick())
	assert.False(t, ran)
}

func TestManualSchedulerDefersNestedSchedules(t *testing.T) {
	s := NewManualScheduler()
	inner := false
	s.Schedule(0, func() {
		s.Schedule(0, func() { inner = true })
	})

	require.Equal(t, 1, s.Tick())
	assert.False(t, inner)
	assert.Equal(t, 1, s.Pending())

	require.Equal(t, 1, s.Tick())
	assert.True(t, inner)
}

func TestTimerScheduler(t *testing.T) {
	var fired atomic.Int32
	s := TimerScheduler{}

	s.Schedule(time.Millisecond, func() { fired.Add(1) })
	cancel := s.Schedule(time.Hour, func() { fired.Add(100) })
	cancel()

	require.Eventually(t, func() bool { return fired.Load() == 1 }, time.Second, time.Millisecond)
}
