package controllers

import (
	"learnhub/backend/middleware"
	"learnhub/backend/services"
	"learnhub/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type ProgressController struct {
	Log      *utils.Logger
	Progress *services.ProgressService
}

func NewProgressController(log *utils.Logger, progress *services.ProgressService) *ProgressController {
	return &ProgressController{Log: log, Progress: progress}
}

// GetProgress godoc
// @Summary Get user progress
// @Description Returns user's completions for the last 4 months, current month first
// @Tags progress
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /progress [get]
func (pc *ProgressController) GetProgress(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	overview, err := pc.Progress.Overview(c.UserContext(), user.ID)
	if err != nil {
		return utils.HandleError(c, pc.Log, err)
	}

	return c.JSON(fiber.Map{
		"progress": overview.MonthlyProgress,
	})
}

// GetProgressOverview godoc
// @Summary Get progress overview
// @Description Returns summary of user's progress
// @Tags progress
// @Produce json
// @Success 200 {object} models.ProgressOverview
// @Failure 401 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /progress/overview [get]
func (pc *ProgressController) GetProgressOverview(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	overview, err := pc.Progress.Overview(c.UserContext(), user.ID)
	if err != nil {
		return utils.HandleError(c, pc.Log, err)
	}
	return c.JSON(overview)
}
