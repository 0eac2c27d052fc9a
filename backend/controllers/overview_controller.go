package controllers

import (
	"context"
	"strings"

	"learnhub/backend/middleware"
	"learnhub/backend/models"
	"learnhub/backend/services"
	"learnhub/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const recommendationLimit = 3

type OverviewController struct {
	DB       *gorm.DB
	Log      *utils.Logger
	Progress *services.ProgressService
}

func NewOverviewController(db *gorm.DB, log *utils.Logger, progress *services.ProgressService) *OverviewController {
	return &OverviewController{DB: db, Log: log, Progress: progress}
}

// SearchLessons возвращает опубликованные уроки по критериям поиска
func (oc *OverviewController) SearchLessons(c *fiber.Ctx) error {
	search := strings.ToLower(strings.TrimSpace(c.Query("search")))
	sort := c.Query("sort", "sequence") // sequence, newest, popularity

	query := oc.DB.WithContext(c.UserContext()).Model(&models.Lesson{}).
		Preload("Category").
		Where("is_published = ?", true)

	// Поиск по названию/описанию
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}
	if category := c.QueryInt("category"); category > 0 {
		query = query.Where("category_id = ?", category)
	}

	switch sort {
	case "newest":
		query = query.Order("created_at DESC, id DESC")
	case "popularity":
		query = query.Order("(SELECT COUNT(*) FROM lesson_progresses WHERE lesson_progresses.lesson_id = lessons.id) DESC, id")
	default:
		query = query.Order("sequence_order, id")
	}

	lessons := []models.Lesson{}
	if err := query.Find(&lessons).Error; err != nil {
		return utils.HandleError(c, oc.Log, err)
	}
	return c.JSON(fiber.Map{"lessons": lessons})
}

// GetUserOverview возвращает обзорную информацию для пользователя
func (oc *OverviewController) GetUserOverview(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	ctx := c.UserContext()

	overview, err := oc.Progress.Overview(ctx, user.ID)
	if err != nil {
		return utils.HandleError(c, oc.Log, err)
	}

	// Начатые, но не завершённые уроки
	active := []models.LessonProgress{}
	err = oc.DB.WithContext(ctx).
		Where("user_id = ? AND completed = ?", user.ID, false).
		Order("last_accessed_at DESC").
		Limit(recommendationLimit).
		Find(&active).Error
	if err != nil {
		return utils.HandleError(c, oc.Log, err)
	}

	recommended, err := oc.nextLessons(ctx, user.ID)
	if err != nil {
		return utils.HandleError(c, oc.Log, err)
	}

	return c.JSON(fiber.Map{
		"currentStreak":    overview.CurrentStreak,
		"longestStreak":    overview.LongestStreak,
		"lessonsCompleted": overview.LessonsCompleted,
		"activeLessons":    active,
		"recommendations":  recommended,
	})
}

// nextLessons returns the earliest published lessons the user has not started.
func (oc *OverviewController) nextLessons(ctx context.Context, userID uint) ([]fiber.Map, error) {
	db := oc.DB.WithContext(ctx)
	var lessons []models.Lesson
	err := db.
		Where("is_published = ?", true).
		Where("id NOT IN (?)", db.Model(&models.LessonProgress{}).Select("lesson_id").Where("user_id = ?", userID)).
		Order("sequence_order, id").
		Limit(recommendationLimit).
		Find(&lessons).Error
	if err != nil {
		return nil, err
	}

	recommendations := make([]fiber.Map, 0, len(lessons))
	for _, lesson := range lessons {
		recommendations = append(recommendations, fiber.Map{
			"id":          lesson.ID,
			"title":       lesson.Title,
			"description": lesson.Description,
			"reason":      "Next in sequence",
		})
	}
	return recommendations, nil
}
