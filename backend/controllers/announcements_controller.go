package controllers

import (
	"time"

	"learnhub/backend/models"
	"learnhub/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AnnouncementsController struct {
	DB  *gorm.DB
	Log *utils.Logger
}

func NewAnnouncementsController(db *gorm.DB, log *utils.Logger) *AnnouncementsController {
	return &AnnouncementsController{DB: db, Log: log}
}

type AnnouncementRequest struct {
	Message  string     `json:"message" validate:"required,max=1000"`
	IsActive *bool      `json:"isActive"`
	StartsAt *time.Time `json:"startsAt"`
	EndsAt   *time.Time `json:"endsAt"`
}

type ToggleAnnouncementRequest struct {
	IsActive *bool `json:"isActive" validate:"required"`
}

// GetActiveAnnouncements returns announcements visible right now.
func (ac *AnnouncementsController) GetActiveAnnouncements(c *fiber.Ctx) error {
	var all []models.Announcement
	err := ac.DB.WithContext(c.UserContext()).
		Where("is_active = ?", true).
		Order("created_at DESC, id DESC").
		Find(&all).Error
	if err != nil {
		return utils.HandleError(c, ac.Log, err)
	}

	now := time.Now().UTC()
	visible := make([]models.Announcement, 0, len(all))
	for _, a := range all {
		if a.Visible(now) {
			visible = append(visible, a)
		}
	}
	return c.JSON(fiber.Map{"announcements": visible})
}

func (ac *AnnouncementsController) ListAnnouncements(c *fiber.Ctx) error {
	announcements := []models.Announcement{}
	if err := ac.DB.WithContext(c.UserContext()).Order("created_at DESC, id DESC").Find(&announcements).Error; err != nil {
		return utils.HandleError(c, ac.Log, err)
	}
	return c.JSON(fiber.Map{"announcements": announcements})
}

func (ac *AnnouncementsController) CreateAnnouncement(c *fiber.Ctx) error {
	var input AnnouncementRequest
	if err := utils.BindAndValidate(c, &input); err != nil {
		return utils.RespondBindError(c, err)
	}
	if input.StartsAt != nil && input.EndsAt != nil && !input.EndsAt.After(*input.StartsAt) {
		return utils.ValidationError(c, map[string]string{"endsAt": "must be after startsAt"})
	}

	announcement := models.Announcement{
		Message:  input.Message,
		IsActive: input.IsActive == nil || *input.IsActive,
		StartsAt: input.StartsAt,
		EndsAt:   input.EndsAt,
	}
	if err := ac.DB.WithContext(c.UserContext()).Create(&announcement).Error; err != nil {
		return utils.HandleError(c, ac.Log, err)
	}
	return utils.Created(c, announcement)
}

// DeleteAnnouncement godoc
// @Summary Delete an announcement
// @Tags admin
// @Produce json
// @Param id path int true "Announcement ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/announcements/{id} [delete]
func (ac *AnnouncementsController) DeleteAnnouncement(c *fiber.Ctx) error {
	announcementID, ok := paramID(c, "id")
	if !ok {
		return utils.BadRequest(c, "Invalid announcement ID")
	}

	res := ac.DB.WithContext(c.UserContext()).Delete(&models.Announcement{}, announcementID)
	if res.Error != nil {
		return utils.HandleError(c, ac.Log, res.Error)
	}
	if res.RowsAffected == 0 {
		return utils.NotFound(c, "Announcement not found")
	}
	return utils.Message(c, "Announcement deleted")
}

// ToggleAnnouncement godoc
// @Summary Activate or deactivate an announcement
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "Announcement ID"
// @Param input body ToggleAnnouncementRequest true "Active state"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Security ApiKeyAuth
// @Router /admin/announcements/{id}/toggle [patch]
func (ac *AnnouncementsController) ToggleAnnouncement(c *fiber.Ctx) error {
	announcementID, ok := paramID(c, "id")
	if !ok {
		return utils.BadRequest(c, "Invalid announcement ID")
	}

	var input ToggleAnnouncementRequest
	if err := utils.BindAndValidate(c, &input); err != nil {
		return utils.RespondBindError(c, err)
	}

	db := ac.DB.WithContext(c.UserContext())
	res := db.Model(&models.Announcement{}).Where("id = ?", announcementID).Update("is_active", *input.IsActive)
	if res.Error != nil {
		return utils.HandleError(c, ac.Log, res.Error)
	}
	if res.RowsAffected == 0 {
		return utils.NotFound(c, "Announcement not found")
	}

	var announcement models.Announcement
	if err := db.First(&announcement, announcementID).Error; err != nil {
		return utils.HandleError(c, ac.Log, err)
	}

	message := "Announcement deactivated"
	if announcement.IsActive {
		message = "Announcement activated"
	}
	return utils.Message(c, message, fiber.Map{"announcement": announcement})
}
