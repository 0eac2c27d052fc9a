package controllers

import (
	"errors"
	"strings"
	"time"

	"learnhub/backend/config"
	"learnhub/backend/models"
	"learnhub/backend/services"
	"learnhub/backend/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/gofiber/fiber/v2"
)

// localAuthPrefix namespaces external-auth references issued by this service.
const localAuthPrefix = "local|"

type AuthController struct {
	DB     *gorm.DB
	Cfg    *config.Config
	Log    *utils.Logger
	Policy *services.AuthorizationPolicy
}

func NewAuthController(db *gorm.DB, cfg *config.Config, log *utils.Logger, policy *services.AuthorizationPolicy) *AuthController {
	return &AuthController{DB: db, Cfg: cfg, Log: log, Policy: policy}
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Register godoc
// @Summary Register a new user
// @Description Creates a local account and returns a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param user body RegisterRequest true "User registration data"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /auth/register [post]
func (ac *AuthController) Register(c *fiber.Ctx) error {
	var input RegisterRequest
	if err := utils.BindAndValidate(c, &input); err != nil {
		return utils.RespondBindError(c, err)
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	externalID := localAuthPrefix + email

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return utils.HandleError(c, ac.Log, err)
	}

	user := models.User{
		ExternalAuthID: externalID,
		Name:           input.Name,
		Email:          email,
		PasswordHash:   string(hashedPassword),
		Role:           ac.Policy.RoleForNewSubject(externalID),
		IsActive:       true,
	}
	// The unique external-auth index settles concurrent registrations.
	if err := ac.DB.WithContext(c.UserContext()).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return utils.Error(c, fiber.StatusConflict, "Email already registered")
		}
		return utils.HandleError(c, ac.Log, err)
	}

	token, err := utils.GenerateJWTToken(user.ExternalAuthID, user.Name, user.Email, ac.Cfg)
	if err != nil {
		return utils.HandleError(c, ac.Log, err)
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Login godoc
// @Summary User login
// @Description Authenticate a local account and return a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse
// @Router /auth/login [post]
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var input LoginRequest
	if err := utils.BindAndValidate(c, &input); err != nil {
		return utils.RespondBindError(c, err)
	}

	// Find user
	db := ac.DB.WithContext(c.UserContext())
	var user models.User
	externalID := localAuthPrefix + strings.ToLower(strings.TrimSpace(input.Email))
	if err := db.Where("external_auth_id = ?", externalID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.Unauthorized(c, "Invalid credentials")
		}
		return utils.HandleError(c, ac.Log, err)
	}

	// Check password
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return utils.Unauthorized(c, "Invalid credentials")
	}

	if !user.IsActive {
		return utils.Forbidden(c, "Account is deactivated")
	}

	token, err := utils.GenerateJWTToken(user.ExternalAuthID, user.Name, user.Email, ac.Cfg)
	if err != nil {
		return utils.HandleError(c, ac.Log, err)
	}

	// Update login history
	loginHistory := models.LoginHistory{
		UserID:    user.ID,
		LoginTime: time.Now().UTC(),
	}
	if err := db.Create(&loginHistory).Error; err != nil {
		ac.Log.Warn("login history not recorded", "user_id", user.ID, "error", err)
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}
