package services

import (
	"context"

	"learnhub/backend/models"
	"learnhub/backend/utils"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookmarkService struct {
	DB           *gorm.DB
	Log          *utils.Logger
	Achievements *AchievementService
}

func NewBookmarkService(db *gorm.DB, log *utils.Logger, achievements *AchievementService) *BookmarkService {
	return &BookmarkService{DB: db, Log: log, Achievements: achievements}
}

// Toggle flips the bookmark for (user, lesson) and returns the new state.
func (s *BookmarkService) Toggle(ctx context.Context, userID, lessonID uint) (bool, error) {
	var bookmarked bool
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Lesson{}).Where("id = ?", lessonID).Count(&count).Error; err != nil {
			return errors.Wrap(err, "load lesson")
		}
		if count == 0 {
			return errors.Wrap(utils.ErrNotFound, "Lesson not found")
		}

		res := tx.Where("user_id = ? AND lesson_id = ?", userID, lessonID).Delete(&models.Bookmark{})
		if res.Error != nil {
			return errors.Wrap(res.Error, "delete bookmark")
		}
		if res.RowsAffected > 0 {
			bookmarked = false
			return nil
		}

		bookmark := models.Bookmark{UserID: userID, LessonID: lessonID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&bookmark).Error; err != nil {
			return errors.Wrap(err, "create bookmark")
		}
		bookmarked = true

		unlocked, err := s.Achievements.checkAndUnlock(tx, userID, s.Achievements.Now().UTC())
		if err != nil {
			return err
		}
		if len(unlocked) > 0 {
			s.Log.Info("achievements unlocked", "user_id", userID, "count", len(unlocked))
		}
		return nil
	})
	return bookmarked, err
}

// List returns the user's bookmarks, newest first, with lessons attached.
func (s *BookmarkService) List(ctx context.Context, userID uint) ([]models.Bookmark, error) {
	bookmarks := []models.Bookmark{}
	err := s.DB.WithContext(ctx).Preload("Lesson").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&bookmarks).Error
	if err != nil {
		return nil, errors.Wrap(err, "list bookmarks")
	}
	return bookmarks, nil
}

func (s *BookmarkService) IsBookmarked(ctx context.Context, userID, lessonID uint) (bool, error) {
	var count int64
	err := s.DB.WithContext(ctx).Model(&models.Bookmark{}).
		Where("user_id = ? AND lesson_id = ?", userID, lessonID).
		Count(&count).Error
	if err != nil {
		return false, errors.Wrap(err, "check bookmark")
	}
	return count > 0, nil
}
