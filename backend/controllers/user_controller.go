package controllers

import (
	"learnhub/backend/config"
	"learnhub/backend/middleware"
	"learnhub/backend/services"
	"learnhub/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type UserController struct {
	DB           *gorm.DB
	Cfg          *config.Config
	Log          *utils.Logger
	Progress     *services.ProgressService
	Achievements *services.AchievementService
}

func NewUserController(db *gorm.DB, cfg *config.Config, log *utils.Logger, progress *services.ProgressService, achievements *services.AchievementService) *UserController {
	return &UserController{DB: db, Cfg: cfg, Log: log, Progress: progress, Achievements: achievements}
}

// GetProfile godoc
// @Summary Get user profile
// @Description Returns the caller's profile, progress overview and unlocked achievements
// @Tags users
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /user/profile [get]
func (uc *UserController) GetProfile(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	ctx := c.UserContext()

	stats, err := uc.Progress.Overview(ctx, user.ID)
	if err != nil {
		return utils.HandleError(c, uc.Log, err)
	}

	achievements, err := uc.Achievements.ListForUser(ctx, user.ID)
	if err != nil {
		return utils.HandleError(c, uc.Log, err)
	}

	return c.JSON(fiber.Map{
		"user":         user,
		"stats":        stats,
		"achievements": achievements,
	})
}

// GetAchievements godoc
// @Summary List achievements
// @Description Returns the full catalogue with the caller's unlock state
// @Tags users
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security ApiKeyAuth
// @Router /achievements [get]
func (uc *UserController) GetAchievements(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	ctx := c.UserContext()

	catalogue, err := uc.Achievements.Catalogue(ctx)
	if err != nil {
		return utils.HandleError(c, uc.Log, err)
	}
	unlocks, err := uc.Achievements.ListForUser(ctx, user.ID)
	if err != nil {
		return utils.HandleError(c, uc.Log, err)
	}
	unlockedAt := make(map[uint]interface{}, len(unlocks))
	for _, u := range unlocks {
		unlockedAt[u.AchievementID] = u.UnlockedAt
	}

	result := make([]fiber.Map, 0, len(catalogue))
	for _, a := range catalogue {
		at, ok := unlockedAt[a.ID]
		result = append(result, fiber.Map{
			"key":         a.Key,
			"title":       a.Title,
			"description": a.Description,
			"icon":        a.Icon,
			"threshold":   a.Threshold,
			"unlocked":    ok,
			"unlockedAt":  at,
		})
	}

	return c.JSON(fiber.Map{"achievements": result})
}
