package controllers

import (
	"errors"

	"learnhub/backend/models"
	"learnhub/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CareersController struct {
	DB  *gorm.DB
	Log *utils.Logger
}

func NewCareersController(db *gorm.DB, log *utils.Logger) *CareersController {
	return &CareersController{DB: db, Log: log}
}

type CareerRequest struct {
	Title          string   `json:"title" validate:"required,max=200"`
	Department     string   `json:"department"`
	Location       string   `json:"location"`
	EmploymentType string   `json:"employmentType" validate:"omitempty,oneof=full-time part-time contract internship"`
	Description    string   `json:"description" validate:"required"`
	Requirements   []string `json:"requirements"`
	Benefits       []string `json:"benefits"`
	IsActive       *bool    `json:"isActive"`
}

func (cc *CareersController) ListCareers(c *fiber.Ctx) error {
	careers := []models.Career{}
	if err := cc.DB.WithContext(c.UserContext()).Order("created_at DESC, id DESC").Find(&careers).Error; err != nil {
		return utils.HandleError(c, cc.Log, err)
	}
	return c.JSON(careers)
}

func (cc *CareersController) CreateCareer(c *fiber.Ctx) error {
	var input CareerRequest
	if err := utils.BindAndValidate(c, &input); err != nil {
		return utils.RespondBindError(c, err)
	}

	career := models.Career{
		Title:          input.Title,
		Department:     input.Department,
		Location:       input.Location,
		EmploymentType: input.EmploymentType,
		Description:    input.Description,
		Requirements:   stringsOrEmpty(input.Requirements),
		Benefits:       stringsOrEmpty(input.Benefits),
		IsActive:       input.IsActive == nil || *input.IsActive,
	}

	if err := cc.DB.WithContext(c.UserContext()).Create(&career).Error; err != nil {
		return utils.HandleError(c, cc.Log, err)
	}
	return utils.Created(c, career)
}

// UpdateCareer replaces every field of the listing.
func (cc *CareersController) UpdateCareer(c *fiber.Ctx) error {
	careerID, ok := paramID(c, "id")
	if !ok {
		return utils.BadRequest(c, "Invalid career ID")
	}

	var input CareerRequest
	if err := utils.BindAndValidate(c, &input); err != nil {
		return utils.RespondBindError(c, err)
	}

	db := cc.DB.WithContext(c.UserContext())
	var career models.Career
	if err := db.First(&career, careerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFound(c, "Career not found")
		}
		return utils.HandleError(c, cc.Log, err)
	}

	career.Title = input.Title
	career.Department = input.Department
	career.Location = input.Location
	career.EmploymentType = input.EmploymentType
	career.Description = input.Description
	career.Requirements = stringsOrEmpty(input.Requirements)
	career.Benefits = stringsOrEmpty(input.Benefits)
	if input.IsActive != nil {
		career.IsActive = *input.IsActive
	}

	if err := db.Save(&career).Error; err != nil {
		return utils.HandleError(c, cc.Log, err)
	}
	return c.JSON(career)
}

func (cc *CareersController) DeleteCareer(c *fiber.Ctx) error {
	careerID, ok := paramID(c, "id")
	if !ok {
		return utils.BadRequest(c, "Invalid career ID")
	}

	res := cc.DB.WithContext(c.UserContext()).Delete(&models.Career{}, careerID)
	if res.Error != nil {
		return utils.HandleError(c, cc.Log, res.Error)
	}
	if res.RowsAffected == 0 {
		return utils.NotFound(c, "Career not found")
	}
	return utils.Message(c, "Career deleted")
}
