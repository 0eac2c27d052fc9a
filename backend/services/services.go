package services

import (
	"context"

	"learnhub/backend/config"
	"learnhub/backend/utils"

	"gorm.io/gorm"
)

// Services bundles the domain services shared by routes and the scheduler.
type Services struct {
	Policy       *AuthorizationPolicy
	Users        *UserService
	Achievements *AchievementService
	Progress     *ProgressService
	Bookmarks    *BookmarkService
}

func New(db *gorm.DB, cfg *config.Config, log *utils.Logger) *Services {
	policy := NewAuthorizationPolicy(db, log, cfg.AdminUserIDs)
	achievements := NewAchievementService(db, log)
	return &Services{
		Policy:       policy,
		Users:        NewUserService(db, log, policy),
		Achievements: achievements,
		Progress:     NewProgressService(db, log, StreakEngine{Mode: cfg.StreakMode}, achievements),
		Bookmarks:    NewBookmarkService(db, log, achievements),
	}
}

// Bootstrap seeds the achievement catalogue and the admin allow-list.
func (s *Services) Bootstrap(ctx context.Context) error {
	if err := s.Achievements.Seed(ctx, DefaultAchievements); err != nil {
		return err
	}
	promoted, err := s.Policy.SeedAdmins(ctx)
	if err != nil {
		return err
	}
	if promoted > 0 {
		s.Policy.Log.Info("admin allow-list seeded", "promoted", promoted)
	}
	return nil
}
