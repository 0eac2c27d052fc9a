package scheduler

import (
	"context"
	"testing"
	"time"

	"learnhub/backend/config"
	"learnhub/backend/testutil"
	"learnhub/backend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSweeper struct {
	calls int
}

func (f *fakeSweeper) SweepStaleStreaks(ctx context.Context, now time.Time) (int64, error) {
	f.calls++
	return 2, nil
}

func TestStartPerCompletionSchedulesNothing(t *testing.T) {
	cfg := testutil.Config()
	s := New(cfg, &fakeSweeper{}, utils.NopLogger())

	require.NoError(t, s.Start())
	defer s.Stop()
	assert.Zero(t, s.scheduler.Len())
}

func TestStartDailySchedulesSweep(t *testing.T) {
	cfg := testutil.Config()
	cfg.StreakMode = config.StreakDaily
	sweeper := &fakeSweeper{}
	s := New(cfg, sweeper, utils.NopLogger())

	require.NoError(t, s.Start())
	defer s.Stop()
	assert.Equal(t, 1, s.scheduler.Len())

	s.sweepStreaks()
	assert.Equal(t, 1, sweeper.calls)
}
