package controllers

import (
	"bytes"
	"fmt"
	"time"

	"learnhub/backend/services"
	"learnhub/backend/utils"

	"github.com/gofiber/fiber/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type AdminUsersController struct {
	Log      *utils.Logger
	Users    *services.UserService
	Progress *services.ProgressService
	Now      func() time.Time
}

func NewAdminUsersController(log *utils.Logger, users *services.UserService, progress *services.ProgressService) *AdminUsersController {
	return &AdminUsersController{Log: log, Users: users, Progress: progress, Now: time.Now}
}

type UserStatusRequest struct {
	IsActive *bool `json:"isActive" validate:"required"`
}

// ListUsers returns every user with progress counts and streaks.
func (uc *AdminUsersController) ListUsers(c *fiber.Ctx) error {
	users, err := uc.Users.ListSummaries(c.UserContext())
	if err != nil {
		return utils.HandleError(c, uc.Log, err)
	}
	return c.JSON(fiber.Map{"users": users})
}

// ResetProgress godoc
// @Summary Reset a user's progress
// @Description Deletes all progress records and zeroes the streak
// @Tags admin
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/users/{id}/reset-progress [post]
func (uc *AdminUsersController) ResetProgress(c *fiber.Ctx) error {
	userID, ok := paramID(c, "id")
	if !ok {
		return utils.BadRequest(c, "Invalid user ID")
	}

	if err := uc.Progress.ResetProgress(c.UserContext(), userID); err != nil {
		return utils.HandleError(c, uc.Log, err)
	}

	uc.Log.Info("progress reset", "user_id", userID)
	return utils.Message(c, "User progress has been reset")
}

// UpdateStatus godoc
// @Summary Activate or deactivate a user
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param input body UserStatusRequest true "Active state"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/users/{id}/status [patch]
func (uc *AdminUsersController) UpdateStatus(c *fiber.Ctx) error {
	userID, ok := paramID(c, "id")
	if !ok {
		return utils.BadRequest(c, "Invalid user ID")
	}

	var input UserStatusRequest
	if err := utils.BindAndValidate(c, &input); err != nil {
		return utils.RespondBindError(c, err)
	}

	user, err := uc.Users.SetActive(c.UserContext(), userID, *input.IsActive)
	if err != nil {
		return utils.HandleError(c, uc.Log, err)
	}

	message := "User deactivated"
	if user.IsActive {
		message = "User activated"
	}
	return utils.Message(c, message, fiber.Map{"user": user})
}

// ExportUsers godoc
// @Summary Export users
// @Description CSV by default, XLSX with format=xlsx
// @Tags admin
// @Produce text/csv
// @Param format query string false "csv or xlsx"
// @Success 200 {file} file
// @Security ApiKeyAuth
// @Router /admin/users/export [get]
func (uc *AdminUsersController) ExportUsers(c *fiber.Ctx) error {
	users, err := uc.Users.ListSummaries(c.UserContext())
	if err != nil {
		return utils.HandleError(c, uc.Log, err)
	}

	var buf bytes.Buffer
	format := c.Query("format", "csv")
	switch format {
	case "csv":
		err = services.WriteUsersCSV(&buf, users)
		c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	case "xlsx":
		err = services.WriteUsersXLSX(&buf, users)
		c.Set(fiber.HeaderContentType, xlsxContentType)
	default:
		return utils.BadRequest(c, "Unsupported export format")
	}
	if err != nil {
		return utils.HandleError(c, uc.Log, err)
	}

	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", services.ExportFilename(uc.Now(), format)))
	return c.Send(buf.Bytes())
}
