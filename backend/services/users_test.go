package services

import (
	"context"
	"testing"

	"learnhub/backend/models"
	"learnhub/backend/testutil"
	"learnhub/backend/utils"

	"github.com/golang-jwt/jwt/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func claimsFor(subject, name, email string) *utils.SubjectClaims {
	return &utils.SubjectClaims{
		Name:             name,
		Email:            email,
		RegisteredClaims: jwt.RegisteredClaims{Subject: subject},
	}
}

func TestResolveSubjectCreatesOnce(t *testing.T) {
	svc, db := newTestServices(t)
	ctx := context.Background()

	first, err := svc.Users.ResolveSubject(ctx, claimsFor("auth0|ann", "Ann", "Ann@X.com"))
	require.NoError(t, err)
	assert.NotZero(t, first.ID)
	assert.Equal(t, "ann@x.com", first.Email)
	assert.Equal(t, models.RoleUser, first.Role)
	assert.True(t, first.IsActive)

	second, err := svc.Users.ResolveSubject(ctx, claimsFor("auth0|ann", "Ann", "ann@x.com"))
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	_, err = svc.Users.ResolveSubject(ctx, claimsFor("", "", ""))
	assert.True(t, errors.Is(err, utils.ErrUnauthenticated))
}

func TestResolveSubjectSeededAdmin(t *testing.T) {
	svc, _ := newTestServices(t, "auth0|root")

	user, err := svc.Users.ResolveSubject(context.Background(), claimsFor("auth0|root", "Root", "root@x.com"))
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)
	assert.True(t, svc.Policy.IsAdmin(context.Background(), user.ID))
}

func TestSetActive(t *testing.T) {
	svc, db := newTestServices(t)
	ctx := context.Background()
	user := testutil.CreateUser(t, db, "u1", models.RoleUser)

	updated, err := svc.Users.SetActive(ctx, user.ID, false)
	require.NoError(t, err)
	assert.False(t, updated.IsActive)

	updated, err = svc.Users.SetActive(ctx, user.ID, true)
	require.NoError(t, err)
	assert.True(t, updated.IsActive)

	_, err = svc.Users.SetActive(ctx, 9999, false)
	assert.True(t, errors.Is(err, utils.ErrNotFound))
}

func TestListSummaries(t *testing.T) {
	svc, db := newTestServices(t)
	ctx := context.Background()
	ann := testutil.CreateUser(t, db, "ann", models.RoleUser)
	bob := testutil.CreateUser(t, db, "bob", models.RoleAdmin)
	testutil.SetStreak(t, db, ann.ID, 3, 6, nil)

	for i, title := range []string{"A", "B", "C"} {
		lesson := testutil.CreateLesson(t, db, title, true)
		require.NoError(t, db.Create(&models.LessonProgress{UserID: ann.ID, LessonID: lesson.ID, Completed: i < 2}).Error)
	}

	summaries, err := svc.Users.ListSummaries(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	assert.Equal(t, ann.ID, summaries[0].ID)
	assert.Equal(t, int64(3), summaries[0].TotalProgress)
	assert.Equal(t, int64(2), summaries[0].CompletedLessons)
	assert.Equal(t, 3, summaries[0].CurrentStreak)
	assert.Equal(t, 6, summaries[0].LongestStreak)

	assert.Equal(t, bob.ID, summaries[1].ID)
	assert.Equal(t, models.RoleAdmin, summaries[1].Role)
	assert.Zero(t, summaries[1].TotalProgress)
}
