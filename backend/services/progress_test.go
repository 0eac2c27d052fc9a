package services

import (
	"context"
	"testing"
	"time"

	"learnhub/backend/config"
	"learnhub/backend/models"
	"learnhub/backend/testutil"
	"learnhub/backend/utils"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestRecordProgressAdvancesStreak(t *testing.T) {
	svc, db := newTestServices(t)
	ctx := context.Background()
	user := testutil.CreateUser(t, db, "u1", models.RoleUser)
	lesson := testutil.CreateLesson(t, db, "Intro", true)
	testutil.SetStreak(t, db, user.ID, 2, 5, nil)

	result, err := svc.Progress.RecordProgress(ctx, user.ID, lesson.ID, ProgressPayload{Completed: true, Score: intPtr(80), TimeSpent: intPtr(120)})
	require.NoError(t, err)

	assert.True(t, result.Progress.Completed)
	assert.Equal(t, 80, *result.Progress.Score)
	assert.Equal(t, 120, result.Progress.TimeSpent)
	assert.NotNil(t, result.Progress.CompletedAt)
	assert.Equal(t, 3, result.Streak.Current)
	assert.Equal(t, 5, result.Streak.Longest)

	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.Equal(t, 3, stored.CurrentStreak)
	assert.Equal(t, 5, stored.LongestStreak)
}

func TestRecordProgressStreakProperty(t *testing.T) {
	svc, db := newTestServices(t)
	ctx := context.Background()
	user := testutil.CreateUser(t, db, "u1", models.RoleUser)
	lesson := testutil.CreateLesson(t, db, "Intro", true)

	prev := StreakState{}
	for i := 0; i < 4; i++ {
		result, err := svc.Progress.RecordProgress(ctx, user.ID, lesson.ID, ProgressPayload{Completed: true})
		require.NoError(t, err)
		assert.Equal(t, prev.Current+1, result.Streak.Current)
		want := prev.Longest
		if result.Streak.Current > want {
			want = result.Streak.Current
		}
		assert.Equal(t, want, result.Streak.Longest)
		prev = result.Streak
	}
}

func TestRecordProgressUpsertsOneRecord(t *testing.T) {
	svc, db := newTestServices(t)
	ctx := context.Background()
	user := testutil.CreateUser(t, db, "u1", models.RoleUser)
	lesson := testutil.CreateLesson(t, db, "Intro", true)

	_, err := svc.Progress.RecordProgress(ctx, user.ID, lesson.ID, ProgressPayload{TimeSpent: intPtr(30)})
	require.NoError(t, err)
	result, err := svc.Progress.RecordProgress(ctx, user.ID, lesson.ID, ProgressPayload{Completed: true, TimeSpent: intPtr(45)})
	require.NoError(t, err)
	result, err = svc.Progress.RecordProgress(ctx, user.ID, lesson.ID, ProgressPayload{Completed: false})
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.LessonProgress{}).Where("user_id = ? AND lesson_id = ?", user.ID, lesson.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
	assert.True(t, result.Progress.Completed, "completion is sticky")
	assert.Equal(t, 75, result.Progress.TimeSpent)
	assert.Equal(t, 1, result.Streak.Current, "non-completion leaves the streak alone")
}

func TestRecordProgressUnpublishedLesson(t *testing.T) {
	svc, db := newTestServices(t)
	user := testutil.CreateUser(t, db, "u1", models.RoleUser)
	draft := testutil.CreateLesson(t, db, "Draft", false)

	_, err := svc.Progress.RecordProgress(context.Background(), user.ID, draft.ID, ProgressPayload{Completed: true})
	assert.True(t, errors.Is(err, utils.ErrNotFound))

	_, err = svc.Progress.RecordProgress(context.Background(), user.ID, 9999, ProgressPayload{Completed: true})
	assert.True(t, errors.Is(err, utils.ErrNotFound))
}

func TestRecordProgressDailyMode(t *testing.T) {
	svc, db := newTestServices(t)
	ctx := context.Background()
	svc.Progress.Streaks = StreakEngine{Mode: config.StreakDaily}
	user := testutil.CreateUser(t, db, "u1", models.RoleUser)
	a := testutil.CreateLesson(t, db, "A", true)
	b := testutil.CreateLesson(t, db, "B", true)
	c := testutil.CreateLesson(t, db, "C", true)

	now := time.Date(2026, 10, 18, 10, 0, 0, 0, time.UTC)
	svc.Progress.Now = func() time.Time { return now }

	result, err := svc.Progress.RecordProgress(ctx, user.ID, a.ID, ProgressPayload{Completed: true})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Streak.Current)

	result, err = svc.Progress.RecordProgress(ctx, user.ID, b.ID, ProgressPayload{Completed: true})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Streak.Current, "same day does not increment")

	now = now.AddDate(0, 0, 1)
	result, err = svc.Progress.RecordProgress(ctx, user.ID, c.ID, ProgressPayload{Completed: true})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Streak.Current)
	assert.Equal(t, 2, result.Streak.Longest)
}

func TestResetProgress(t *testing.T) {
	svc, db := newTestServices(t)
	ctx := context.Background()
	user := testutil.CreateUser(t, db, "u1", models.RoleUser)
	other := testutil.CreateUser(t, db, "u2", models.RoleUser)
	for _, title := range []string{"A", "B", "C"} {
		lesson := testutil.CreateLesson(t, db, title, true)
		_, err := svc.Progress.RecordProgress(ctx, user.ID, lesson.ID, ProgressPayload{Completed: true})
		require.NoError(t, err)
		_, err = svc.Progress.RecordProgress(ctx, other.ID, lesson.ID, ProgressPayload{Completed: true})
		require.NoError(t, err)
	}

	require.NoError(t, svc.Progress.ResetProgress(ctx, user.ID))

	var count int64
	require.NoError(t, db.Model(&models.LessonProgress{}).Where("user_id = ?", user.ID).Count(&count).Error)
	assert.Zero(t, count)

	var stored models.User
	require.NoError(t, db.First(&stored, user.ID).Error)
	assert.Zero(t, stored.CurrentStreak)
	assert.Zero(t, stored.LongestStreak)
	assert.Nil(t, stored.LastActiveDate)

	require.NoError(t, db.Model(&models.LessonProgress{}).Where("user_id = ?", other.ID).Count(&count).Error)
	assert.Equal(t, int64(3), count, "other users are untouched")

	err := svc.Progress.ResetProgress(ctx, 9999)
	assert.True(t, errors.Is(err, utils.ErrNotFound))
}

func TestSweepStaleStreaks(t *testing.T) {
	svc, db := newTestServices(t)
	now := time.Date(2026, 10, 19, 0, 5, 0, 0, time.UTC)

	fresh := testutil.CreateUser(t, db, "fresh", models.RoleUser)
	testutil.SetStreak(t, db, fresh.ID, 4, 4, day(2026, 10, 18))
	stale := testutil.CreateUser(t, db, "stale", models.RoleUser)
	testutil.SetStreak(t, db, stale.ID, 6, 8, day(2026, 10, 16))

	n, err := svc.Progress.SweepStaleStreaks(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	var got models.User
	require.NoError(t, db.First(&got, stale.ID).Error)
	assert.Zero(t, got.CurrentStreak)
	assert.Equal(t, 8, got.LongestStreak)

	require.NoError(t, db.First(&got, fresh.ID).Error)
	assert.Equal(t, 4, got.CurrentStreak)
}

func TestOverview(t *testing.T) {
	svc, db := newTestServices(t)
	ctx := context.Background()
	user := testutil.CreateUser(t, db, "u1", models.RoleUser)
	a := testutil.CreateLesson(t, db, "A", true)
	b := testutil.CreateLesson(t, db, "B", true)

	_, err := svc.Progress.RecordProgress(ctx, user.ID, a.ID, ProgressPayload{Completed: true})
	require.NoError(t, err)
	_, err = svc.Progress.RecordProgress(ctx, user.ID, b.ID, ProgressPayload{TimeSpent: intPtr(10)})
	require.NoError(t, err)

	overview, err := svc.Progress.Overview(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), overview.TotalProgress)
	assert.Equal(t, int64(1), overview.LessonsCompleted)
	assert.Equal(t, 1, overview.CurrentStreak)
	require.Len(t, overview.MonthlyProgress, 4)
	assert.Equal(t, int64(1), overview.MonthlyProgress[0].LessonsCompleted)
	assert.Equal(t, 1, overview.MonthlyProgress[0].ActiveDays)
}
