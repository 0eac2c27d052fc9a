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

type ProgressPayload struct {
	Completed bool `json:"completed"`
	Score     *int `json:"score" validate:"omitempty,min=0,max=100"`
	TimeSpent *int `json:"timeSpent" validate:"omitempty,min=0"`
}

type ProgressResult struct {
	Progress        models.LessonProgress `json:"progress"`
	Streak          StreakState           `json:"streak"`
	NewAchievements []models.Achievement  `json:"newAchievements,omitempty"`
}

type ProgressService struct {
	DB           *gorm.DB
	Log          *utils.Logger
	Streaks      StreakEngine
	Achievements *AchievementService
	Now          func() time.Time
}

func NewProgressService(db *gorm.DB, log *utils.Logger, streaks StreakEngine, achievements *AchievementService) *ProgressService {
	return &ProgressService{
		DB:           db,
		Log:          log,
		Streaks:      streaks,
		Achievements: achievements,
		Now:          time.Now,
	}
}

// RecordProgress upserts the (user, lesson) record and, on completion, advances
// the streak and unlocks achievements. All steps share one transaction.
func (s *ProgressService) RecordProgress(ctx context.Context, userID, lessonID uint, payload ProgressPayload) (*ProgressResult, error) {
	now := s.Now().UTC()
	result := &ProgressResult{}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var lesson models.Lesson
		if err := tx.Select("id").Where("id = ? AND is_published = ?", lessonID, true).First(&lesson).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.Wrap(utils.ErrNotFound, "Lesson not found")
			}
			return errors.Wrap(err, "load lesson")
		}

		seed := models.LessonProgress{UserID: userID, LessonID: lessonID, LastAccessedAt: now}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&seed).Error; err != nil {
			return errors.Wrap(err, "create progress")
		}

		progress := &result.Progress
		if err := forUpdate(tx).Where("user_id = ? AND lesson_id = ?", userID, lessonID).First(progress).Error; err != nil {
			return errors.Wrap(err, "load progress")
		}

		if payload.Completed && !progress.Completed {
			progress.Completed = true
			progress.CompletedAt = &now
		}
		if payload.Score != nil {
			progress.Score = payload.Score
		}
		if payload.TimeSpent != nil {
			progress.TimeSpent += *payload.TimeSpent
		}
		progress.LastAccessedAt = now
		if err := tx.Save(progress).Error; err != nil {
			return errors.Wrap(err, "save progress")
		}

		var user models.User
		if err := forUpdate(tx).First(&user, userID).Error; err != nil {
			return errors.Wrap(err, "load user")
		}
		result.Streak = StreakState{Current: user.CurrentStreak, Longest: user.LongestStreak, LastActive: user.LastActiveDate}

		if !payload.Completed {
			return nil
		}

		result.Streak = s.Streaks.Advance(result.Streak, now)
		err := tx.Model(&user).Updates(map[string]interface{}{
			"current_streak":   result.Streak.Current,
			"longest_streak":   result.Streak.Longest,
			"last_active_date": result.Streak.LastActive,
		}).Error
		if err != nil {
			return errors.Wrap(err, "update streak")
		}

		unlocked, err := s.Achievements.checkAndUnlock(tx, userID, now)
		if err != nil {
			return err
		}
		result.NewAchievements = unlocked
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(result.NewAchievements) > 0 {
		s.Log.Info("achievements unlocked", "user_id", userID, "count", len(result.NewAchievements))
	}
	return result, nil
}

// ResetProgress deletes every progress record of the user and zeroes the streak.
func (s *ProgressService) ResetProgress(ctx context.Context, userID uint) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := forUpdate(tx).First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.Wrap(utils.ErrNotFound, "User not found")
			}
			return errors.Wrap(err, "load user")
		}

		if err := tx.Where("user_id = ?", userID).Delete(&models.LessonProgress{}).Error; err != nil {
			return errors.Wrap(err, "delete progress")
		}

		return tx.Model(&user).Updates(map[string]interface{}{
			"current_streak":   0,
			"longest_streak":   0,
			"last_active_date": nil,
		}).Error
	})
}

// SweepStaleStreaks zeroes the current streak of users whose last active day
// is before yesterday. It returns the number of users touched.
func (s *ProgressService) SweepStaleStreaks(ctx context.Context, now time.Time) (int64, error) {
	res := s.DB.WithContext(ctx).Model(&models.User{}).
		Where("current_streak > 0 AND (last_active_date IS NULL OR last_active_date < ?)", staleCutoff(now)).
		Update("current_streak", 0)
	if res.Error != nil {
		return 0, errors.Wrap(res.Error, "sweep streaks")
	}
	return res.RowsAffected, nil
}

// Get returns the user's progress on a lesson, or nil when there is none.
func (s *ProgressService) Get(ctx context.Context, userID, lessonID uint) (*models.LessonProgress, error) {
	var progress models.LessonProgress
	err := s.DB.WithContext(ctx).Where("user_id = ? AND lesson_id = ?", userID, lessonID).First(&progress).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "get progress")
	}
	return &progress, nil
}

// Overview summarises a user's progress, with completions for the last four months.
func (s *ProgressService) Overview(ctx context.Context, userID uint) (*models.ProgressOverview, error) {
	db := s.DB.WithContext(ctx)

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.Wrap(utils.ErrNotFound, "User not found")
		}
		return nil, errors.Wrap(err, "load user")
	}

	overview := &models.ProgressOverview{
		CurrentStreak: user.CurrentStreak,
		LongestStreak: user.LongestStreak,
	}
	if err := db.Model(&models.LessonProgress{}).Where("user_id = ?", userID).Count(&overview.TotalProgress).Error; err != nil {
		return nil, errors.Wrap(err, "count progress")
	}
	if err := db.Model(&models.LessonProgress{}).Where("user_id = ? AND completed = ?", userID, true).Count(&overview.LessonsCompleted).Error; err != nil {
		return nil, errors.Wrap(err, "count completed")
	}
	if err := db.Model(&models.Bookmark{}).Where("user_id = ?", userID).Count(&overview.Bookmarks).Error; err != nil {
		return nil, errors.Wrap(err, "count bookmarks")
	}

	var completions []models.LessonProgress
	now := s.Now().UTC()
	since := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -3, 0)
	err := db.Select("completed_at").
		Where("user_id = ? AND completed = ? AND completed_at >= ?", userID, true, since).
		Find(&completions).Error
	if err != nil {
		return nil, errors.Wrap(err, "load completions")
	}

	months := make([]models.MonthlyProgress, 4)
	days := make([]map[string]struct{}, 4)
	for i := range months {
		month := since.AddDate(0, 3-i, 0)
		months[i] = models.MonthlyProgress{Month: month.Month(), Year: month.Year()}
		days[i] = make(map[string]struct{})
	}
	for _, p := range completions {
		if p.CompletedAt == nil {
			continue
		}
		at := p.CompletedAt.UTC()
		i := (now.Year()-at.Year())*12 + int(now.Month()) - int(at.Month())
		if i < 0 || i > 3 {
			continue
		}
		months[i].LessonsCompleted++
		days[i][at.Format("2006-01-02")] = struct{}{}
	}
	for i := range months {
		months[i].ActiveDays = len(days[i])
	}
	overview.MonthlyProgress = months

	return overview, nil
}

// forUpdate row-locks the selected rows where the dialect supports it.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}
