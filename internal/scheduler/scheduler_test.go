package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRefresher struct {
	calls   atomic.Int32
	written int
	err     error
}

func (f *fakeRefresher) RefreshSnapshots(ctx context.Context) (int, error) {
	f.calls.Add(1)
	if _, ok := ctx.Deadline(); !ok {
		return 0, errors.New("refresh must run with a deadline")
	}
	return f.written, f.err
}

func TestNew_InvalidSchedule(t *testing.T) {
	_, err := New(&fakeRefresher{}, "every tuesday", nil)
	assert.ErrorContains(t, err, "invalid snapshot schedule")
}

func TestRunOnce(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		log, hook := test.NewNullLogger()
		r := &fakeRefresher{written: 3}
		s, err := New(r, "@daily", log)
		require.NoError(t, err)

		s.RunOnce()

		assert.EqualValues(t, 1, r.calls.Load())
		entry := hook.LastEntry()
		require.NotNil(t, entry)
		assert.Equal(t, logrus.InfoLevel, entry.Level)
		assert.Equal(t, 3, entry.Data["written"])
		assert.Equal(t, "scheduler", entry.Data["component"])
	})

	t.Run("failure is logged", func(t *testing.T) {
		log, hook := test.NewNullLogger()
		r := &fakeRefresher{written: 1, err: errors.New("store down")}
		s, err := New(r, "@hourly", log)
		require.NoError(t, err)

		s.RunOnce()

		entry := hook.LastEntry()
		require.NotNil(t, entry)
		assert.Equal(t, logrus.ErrorLevel, entry.Level)
		assert.Equal(t, "store down", entry.Data[logrus.ErrorKey].(error).Error())
	})
}

func TestStartStop(t *testing.T) {
	log, _ := test.NewNullLogger()
	r := &fakeRefresher{}
	s, err := New(r, "@every 1s", log)
	require.NoError(t, err)

	s.Start()
	assert.Eventually(t, func() bool { return r.calls.Load() > 0 }, 5*time.Second, 5*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))
}
