package controllers

import (
	"errors"
	"strings"

	"learnhub/backend/config"
	"learnhub/backend/middleware"
	"learnhub/backend/models"
	"learnhub/backend/services"
	"learnhub/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

type LessonsController struct {
	DB        *gorm.DB
	Cfg       *config.Config
	Log       *utils.Logger
	Policy    *services.AuthorizationPolicy
	Progress  *services.ProgressService
	Bookmarks *services.BookmarkService
}

func NewLessonsController(db *gorm.DB, cfg *config.Config, log *utils.Logger, policy *services.AuthorizationPolicy, progress *services.ProgressService, bookmarks *services.BookmarkService) *LessonsController {
	return &LessonsController{DB: db, Cfg: cfg, Log: log, Policy: policy, Progress: progress, Bookmarks: bookmarks}
}

type LessonRequest struct {
	Title         string `json:"title" validate:"required,max=200"`
	Description   string `json:"description"`
	Content       string `json:"content"`
	CategoryID    *uint  `json:"categoryId"`
	IsPublished   bool   `json:"isPublished"`
	SequenceOrder int    `json:"sequenceOrder" validate:"min=0"`
	Duration      int    `json:"duration" validate:"min=0"`
}

type LessonUpdateRequest struct {
	Title         *string `json:"title" validate:"omitempty,max=200"`
	Description   *string `json:"description"`
	Content       *string `json:"content"`
	CategoryID    *uint   `json:"categoryId"`
	SequenceOrder *int    `json:"sequenceOrder" validate:"omitempty,min=0"`
	Duration      *int    `json:"duration" validate:"omitempty,min=0"`
}

type PublishRequest struct {
	IsPublished *bool `json:"isPublished" validate:"required"`
}

type CategoryRequest struct {
	Name string `json:"name" validate:"required,max=100"`
	Slug string `json:"slug"`
}

// ListLessons godoc
// @Summary List lessons
// @Description Published lessons, optionally filtered by category; admins also see drafts
// @Tags lessons
// @Produce json
// @Param category query int false "Category ID"
// @Success 200 {object} map[string]interface{}
// @Security ApiKeyAuth
// @Router /lessons [get]
func (lc *LessonsController) ListLessons(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	query := lc.DB.WithContext(c.UserContext()).Model(&models.Lesson{}).Preload("Category")
	if !lc.Policy.IsAdmin(c.UserContext(), user.ID) {
		query = query.Where("is_published = ?", true)
	}
	if category := c.QueryInt("category"); category > 0 {
		query = query.Where("category_id = ?", category)
	}

	lessons := []models.Lesson{}
	if err := query.Order("sequence_order, id").Find(&lessons).Error; err != nil {
		return utils.HandleError(c, lc.Log, err)
	}

	return c.JSON(fiber.Map{"lessons": lessons})
}

// GetLesson godoc
// @Summary Get lesson
// @Description Lesson with the caller's progress and bookmark state. Unpublished lessons are 404 for non-admins
// @Tags lessons
// @Produce json
// @Param id path int true "Lesson ID"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /lessons/{id} [get]
func (lc *LessonsController) GetLesson(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	ctx := c.UserContext()

	lessonID, ok := paramID(c, "id")
	if !ok {
		return utils.BadRequest(c, "Invalid lesson ID")
	}

	var lesson models.Lesson
	if err := lc.DB.WithContext(ctx).Preload("Category").First(&lesson, lessonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Lesson not found")
		}
		return utils.HandleError(c, lc.Log, err)
	}
	if !lesson.IsPublished && !lc.Policy.IsAdmin(ctx, user.ID) {
		return utils.NotFound(c, "Lesson not found")
	}

	progress, err := lc.Progress.Get(ctx, user.ID, lesson.ID)
	if err != nil {
		return utils.HandleError(c, lc.Log, err)
	}
	bookmarked, err := lc.Bookmarks.IsBookmarked(ctx, user.ID, lesson.ID)
	if err != nil {
		return utils.HandleError(c, lc.Log, err)
	}

	return c.JSON(fiber.Map{
		"lesson": fiber.Map{
			"id":            lesson.ID,
			"title":         lesson.Title,
			"description":   lesson.Description,
			"content":       lesson.Content,
			"categoryId":    lesson.CategoryID,
			"category":      lesson.Category,
			"isPublished":   lesson.IsPublished,
			"sequenceOrder": lesson.SequenceOrder,
			"duration":      lesson.Duration,
			"createdAt":     lesson.CreatedAt,
			"updatedAt":     lesson.UpdatedAt,
			"userProgress":  progress,
			"isBookmarked":  bookmarked,
		},
	})
}

// RecordProgress godoc
// @Summary Record lesson progress
// @Description Upserts the caller's progress; a completion advances the streak and may unlock achievements
// @Tags lessons
// @Accept json
// @Produce json
// @Param id path int true "Lesson ID"
// @Param input body services.ProgressPayload true "Progress"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /lessons/{id}/progress [post]
func (lc *LessonsController) RecordProgress(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	lessonID, ok := paramID(c, "id")
	if !ok {
		return utils.BadRequest(c, "Invalid lesson ID")
	}

	var input services.ProgressPayload
	if err := utils.BindAndValidate(c, &input); err != nil {
		return utils.RespondBindError(c, err)
	}

	result, err := lc.Progress.RecordProgress(c.UserContext(), user.ID, lessonID, input)
	if err != nil {
		return utils.HandleError(c, lc.Log, err)
	}

	body := fiber.Map{
		"progress": result.Progress,
		"streak":   result.Streak,
	}
	if len(result.NewAchievements) > 0 {
		body["newAchievements"] = result.NewAchievements
	}
	return c.JSON(body)
}

// ListCategories godoc
// @Summary List categories
// @Tags lessons
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security ApiKeyAuth
// @Router /categories [get]
func (lc *LessonsController) ListCategories(c *fiber.Ctx) error {
	categories := []models.Category{}
	if err := lc.DB.WithContext(c.UserContext()).Order("name").Find(&categories).Error; err != nil {
		return utils.HandleError(c, lc.Log, err)
	}
	return c.JSON(fiber.Map{"categories": categories})
}

func (lc *LessonsController) CreateCategory(c *fiber.Ctx) error {
	var input CategoryRequest
	if err := utils.BindAndValidate(c, &input); err != nil {
		return utils.RespondBindError(c, err)
	}

	category := models.Category{Name: strings.TrimSpace(input.Name), Slug: input.Slug}
	if category.Slug == "" {
		category.Slug = slug.Make(category.Name)
	}
	if err := lc.DB.WithContext(c.UserContext()).Create(&category).Error; err != nil {
		return utils.HandleError(c, lc.Log, err)
	}
	return utils.Created(c, category)
}

// AdminListLessons returns every lesson, drafts included.
func (lc *LessonsController) AdminListLessons(c *fiber.Ctx) error {
	lessons := []models.Lesson{}
	if err := lc.DB.WithContext(c.UserContext()).Preload("Category").Order("sequence_order, id").Find(&lessons).Error; err != nil {
		return utils.HandleError(c, lc.Log, err)
	}
	return c.JSON(fiber.Map{"lessons": lessons})
}

func (lc *LessonsController) CreateLesson(c *fiber.Ctx) error {
	var input LessonRequest
	if err := utils.BindAndValidate(c, &input); err != nil {
		return utils.RespondBindError(c, err)
	}

	lesson := models.Lesson{
		Title:         input.Title,
		Description:   input.Description,
		Content:       input.Content,
		CategoryID:    input.CategoryID,
		IsPublished:   input.IsPublished,
		SequenceOrder: input.SequenceOrder,
		Duration:      input.Duration,
	}

	db := lc.DB.WithContext(c.UserContext())
	// Get current lesson count to set sequence order
	if lesson.SequenceOrder == 0 {
		var lessonCount int64
		if err := db.Model(&models.Lesson{}).Count(&lessonCount).Error; err != nil {
			return utils.HandleError(c, lc.Log, err)
		}
		lesson.SequenceOrder = int(lessonCount) + 1
	}

	if err := db.Create(&lesson).Error; err != nil {
		return utils.HandleError(c, lc.Log, err)
	}
	return utils.Created(c, lesson)
}

func (lc *LessonsController) UpdateLesson(c *fiber.Ctx) error {
	lessonID, ok := paramID(c, "id")
	if !ok {
		return utils.BadRequest(c, "Invalid lesson ID")
	}

	var input LessonUpdateRequest
	if err := utils.BindAndValidate(c, &input); err != nil {
		return utils.RespondBindError(c, err)
	}

	db := lc.DB.WithContext(c.UserContext())
	var lesson models.Lesson
	if err := db.First(&lesson, lessonID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Lesson not found")
		}
		return utils.HandleError(c, lc.Log, err)
	}

	// Update fields
	if input.Title != nil && *input.Title != "" {
		lesson.Title = *input.Title
	}
	if input.Description != nil {
		lesson.Description = *input.Description
	}
	if input.Content != nil {
		lesson.Content = *input.Content
	}
	if input.CategoryID != nil {
		lesson.CategoryID = input.CategoryID
	}
	if input.SequenceOrder != nil {
		lesson.SequenceOrder = *input.SequenceOrder
	}
	if input.Duration != nil {
		lesson.Duration = *input.Duration
	}

	if err := db.Save(&lesson).Error; err != nil {
		return utils.HandleError(c, lc.Log, err)
	}
	return c.JSON(fiber.Map{
		"message": "Lesson updated",
		"lesson":  lesson,
	})
}

// PublishLesson godoc
// @Summary Publish or unpublish a lesson
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "Lesson ID"
// @Param input body PublishRequest true "Publish state"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/lessons/{id}/publish [patch]
func (lc *LessonsController) PublishLesson(c *fiber.Ctx) error {
	lessonID, ok := paramID(c, "id")
	if !ok {
		return utils.BadRequest(c, "Invalid lesson ID")
	}

	var input PublishRequest
	if err := utils.BindAndValidate(c, &input); err != nil {
		return utils.RespondBindError(c, err)
	}

	db := lc.DB.WithContext(c.UserContext())
	res := db.Model(&models.Lesson{}).Where("id = ?", lessonID).Update("is_published", *input.IsPublished)
	if res.Error != nil {
		return utils.HandleError(c, lc.Log, res.Error)
	}
	if res.RowsAffected == 0 {
		return utils.NotFound(c, "Lesson not found")
	}

	var lesson models.Lesson
	if err := db.First(&lesson, lessonID).Error; err != nil {
		return utils.HandleError(c, lc.Log, err)
	}

	message := "Lesson unpublished"
	if lesson.IsPublished {
		message = "Lesson published"
	}
	return utils.Message(c, message, fiber.Map{"lesson": lesson})
}
