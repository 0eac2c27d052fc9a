package services

import (
	"context"
	"testing"

	"learnhub/backend/testutil"
	"learnhub/backend/utils"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestServices(t *testing.T, adminSeed ...string) (*Services, *gorm.DB) {
	t.Helper()
	db := testutil.DB(t)
	cfg := testutil.Config()
	cfg.AdminUserIDs = adminSeed

	svc := New(db, cfg, utils.NopLogger())
	require.NoError(t, svc.Achievements.Seed(context.Background(), DefaultAchievements))
	return svc, db
}
