package controllers

import (
	"learnhub/backend/middleware"
	"learnhub/backend/services"
	"learnhub/backend/utils"

	"github.com/gofiber/fiber/v2"
)

type BookmarksController struct {
	Log       *utils.Logger
	Bookmarks *services.BookmarkService
}

func NewBookmarksController(log *utils.Logger, bookmarks *services.BookmarkService) *BookmarksController {
	return &BookmarksController{Log: log, Bookmarks: bookmarks}
}

type ToggleBookmarkRequest struct {
	LessonID uint `json:"lessonId" validate:"required"`
}

// GetBookmarks godoc
// @Summary List bookmarks
// @Tags bookmarks
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security ApiKeyAuth
// @Router /bookmarks [get]
func (bc *BookmarksController) GetBookmarks(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	bookmarks, err := bc.Bookmarks.List(c.UserContext(), user.ID)
	if err != nil {
		return utils.HandleError(c, bc.Log, err)
	}
	return c.JSON(fiber.Map{"bookmarks": bookmarks})
}

// ToggleBookmark godoc
// @Summary Toggle a bookmark
// @Description Creates the bookmark when absent, removes it when present
// @Tags bookmarks
// @Accept json
// @Produce json
// @Param input body ToggleBookmarkRequest true "Lesson to toggle"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /bookmarks [post]
func (bc *BookmarksController) ToggleBookmark(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var input ToggleBookmarkRequest
	if err := utils.BindAndValidate(c, &input); err != nil {
		return utils.BadRequest(c, "Lesson ID is required")
	}

	bookmarked, err := bc.Bookmarks.Toggle(c.UserContext(), user.ID, input.LessonID)
	if err != nil {
		return utils.HandleError(c, bc.Log, err)
	}

	message := "Bookmark removed"
	if bookmarked {
		message = "Bookmark added"
	}
	return c.JSON(fiber.Map{
		"isBookmarked": bookmarked,
		"message":      message,
	})
}
