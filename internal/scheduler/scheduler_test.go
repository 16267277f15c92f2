package scheduler

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleEvery(t *testing.T) {
	t.Run("returns job id for valid interval", func(t *testing.T) {
		s, err := New()
		require.NoError(t, err)
		t.Cleanup(func() { _ = s.Stop() })

		id, err := s.ScheduleEvery("persist", 3*time.Minute, func() {})
		require.NoError(t, err)
		assert.NotEmpty(t, id)
		assert.Equal(t, 1, s.Jobs())
	})

	t.Run("rejects non-positive interval", func(t *testing.T) {
		s, err := New()
		require.NoError(t, err)
		t.Cleanup(func() { _ = s.Stop() })

		_, err = s.ScheduleEvery("persist", 0, func() {})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidInterval))
		assert.Equal(t, 0, s.Jobs())
	})
}

func TestScheduleEveryRuns(t *testing.T) {
	s, err := New()
	require.NoError(t, err)

	var runs atomic.Int32
	_, err = s.ScheduleEvery("tick", 20*time.Millisecond, func() { runs.Add(1) })
	require.NoError(t, err)

	s.Start()
	assert.Eventually(t, func() bool { return runs.Load() >= 2 }, 5*time.Second, 10*time.Millisecond)
	require.NoError(t, s.Stop())

	stopped := runs.Load()
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, stopped, runs.Load(), "no runs after Stop")
}
