package services

import (
	"context"
	"time"

	"learnhub/backend/models"
	"learnhub/backend/utils"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultAchievements is the built-in rule set, in evaluation order.
var DefaultAchievements = []models.Achievement{
	{Key: "first_lesson", Title: "First Steps", Description: "Complete your first lesson", Icon: "🎯", Kind: models.AchievementLessonsCompleted, Threshold: 1, SortOrder: 10},
	{Key: "five_lessons", Title: "Getting Started", Description: "Complete 5 lessons", Icon: "📘", Kind: models.AchievementLessonsCompleted, Threshold: 5, SortOrder: 20},
	{Key: "ten_lessons", Title: "Dedicated Learner", Description: "Complete 10 lessons", Icon: "📚", Kind: models.AchievementLessonsCompleted, Threshold: 10, SortOrder: 30},
	{Key: "twenty_five_lessons", Title: "Knowledge Seeker", Description: "Complete 25 lessons", Icon: "🏅", Kind: models.AchievementLessonsCompleted, Threshold: 25, SortOrder: 40},
	{Key: "streak_3", Title: "On a Roll", Description: "Reach a 3 day streak", Icon: "🔥", Kind: models.AchievementStreak, Threshold: 3, SortOrder: 50},
	{Key: "streak_7", Title: "Week Warrior", Description: "Reach a 7 day streak", Icon: "⚡", Kind: models.AchievementStreak, Threshold: 7, SortOrder: 60},
	{Key: "streak_30", Title: "Unstoppable", Description: "Reach a 30 day streak", Icon: "🏆", Kind: models.AchievementStreak, Threshold: 30, SortOrder: 70},
	{Key: "first_bookmark", Title: "Collector", Description: "Bookmark your first lesson", Icon: "🔖", Kind: models.AchievementBookmarks, Threshold: 1, SortOrder: 80},
}

// UserStats are the aggregates achievement rules are evaluated against.
type UserStats struct {
	LessonsCompleted int64
	CurrentStreak    int
	LongestStreak    int
	Bookmarks        int64
}

// Satisfies evaluates one rule. Streak rules use the longest streak.
func (st UserStats) Satisfies(a models.Achievement) bool {
	switch a.Kind {
	case models.AchievementLessonsCompleted:
		return st.LessonsCompleted >= int64(a.Threshold)
	case models.AchievementStreak:
		return st.LongestStreak >= a.Threshold
	case models.AchievementBookmarks:
		return st.Bookmarks >= int64(a.Threshold)
	default:
		return false
	}
}

type AchievementService struct {
	DB  *gorm.DB
	Log *utils.Logger
	Now func() time.Time
}

func NewAchievementService(db *gorm.DB, log *utils.Logger) *AchievementService {
	return &AchievementService{DB: db, Log: log, Now: time.Now}
}

// Seed upserts the catalogue by key.
func (s *AchievementService) Seed(ctx context.Context, rules []models.Achievement) error {
	for _, rule := range rules {
		a := rule
		err := s.DB.WithContext(ctx).Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"title", "description", "icon", "kind", "threshold", "sort_order"}),
		}).Create(&a).Error
		if err != nil {
			return errors.Wrapf(err, "seed achievement %s", rule.Key)
		}
	}
	return nil
}

// CheckAndUnlock unlocks every newly satisfied achievement and returns them in
// rule order. A second call without new progress returns an empty list.
func (s *AchievementService) CheckAndUnlock(ctx context.Context, userID uint) ([]models.Achievement, error) {
	var unlocked []models.Achievement
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		unlocked, err = s.checkAndUnlock(tx, userID, s.Now().UTC())
		return err
	})
	return unlocked, err
}

func (s *AchievementService) checkAndUnlock(tx *gorm.DB, userID uint, now time.Time) ([]models.Achievement, error) {
	stats, err := loadStats(tx, userID)
	if err != nil {
		return nil, err
	}

	var catalogue []models.Achievement
	if err := tx.Order("sort_order, id").Find(&catalogue).Error; err != nil {
		return nil, errors.Wrap(err, "load achievements")
	}

	var have []uint
	if err := tx.Model(&models.UserAchievement{}).Where("user_id = ?", userID).Pluck("achievement_id", &have).Error; err != nil {
		return nil, errors.Wrap(err, "load unlocks")
	}
	owned := make(map[uint]struct{}, len(have))
	for _, id := range have {
		owned[id] = struct{}{}
	}

	unlocked := []models.Achievement{}
	for _, a := range catalogue {
		if _, ok := owned[a.ID]; ok || !stats.Satisfies(a) {
			continue
		}
		ua := models.UserAchievement{UserID: userID, AchievementID: a.ID, UnlockedAt: now}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&ua)
		if res.Error != nil {
			return nil, errors.Wrapf(res.Error, "unlock %s", a.Key)
		}
		if res.RowsAffected == 1 {
			unlocked = append(unlocked, a)
		}
	}
	return unlocked, nil
}

func loadStats(tx *gorm.DB, userID uint) (UserStats, error) {
	var st UserStats
	var user models.User
	if err := tx.Select("id", "current_streak", "longest_streak").First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return st, errors.Wrap(utils.ErrNotFound, "User not found")
		}
		return st, errors.Wrap(err, "load user")
	}
	st.CurrentStreak = user.CurrentStreak
	st.LongestStreak = user.LongestStreak

	if err := tx.Model(&models.LessonProgress{}).Where("user_id = ? AND completed = ?", userID, true).Count(&st.LessonsCompleted).Error; err != nil {
		return st, errors.Wrap(err, "count completed")
	}
	if err := tx.Model(&models.Bookmark{}).Where("user_id = ?", userID).Count(&st.Bookmarks).Error; err != nil {
		return st, errors.Wrap(err, "count bookmarks")
	}
	return st, nil
}

// ListForUser returns the user's unlocks, oldest first.
func (s *AchievementService) ListForUser(ctx context.Context, userID uint) ([]models.UserAchievement, error) {
	var unlocks []models.UserAchievement
	err := s.DB.WithContext(ctx).Preload("Achievement").
		Where("user_id = ?", userID).
		Order("unlocked_at, id").
		Find(&unlocks).Error
	if err != nil {
		return nil, errors.Wrap(err, "list achievements")
	}
	return unlocks, nil
}

// Catalogue returns every achievement in rule order.
func (s *AchievementService) Catalogue(ctx context.Context) ([]models.Achievement, error) {
	var catalogue []models.Achievement
	if err := s.DB.WithContext(ctx).Order("sort_order, id").Find(&catalogue).Error; err != nil {
		return nil, errors.Wrap(err, "list catalogue")
	}
	return catalogue, nil
}
