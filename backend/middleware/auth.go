package middleware

import (
	"learnhub/backend/config"
	"learnhub/backend/models"
	"learnhub/backend/services"
	"learnhub/backend/utils"

	"github.com/gofiber/fiber/v2"
)

const userKey = "user"

// AuthMiddleware resolves the calling subject from the bearer token and stores
// the user row in the request locals. Inactive users are refused.
func AuthMiddleware(cfg *config.Config, users *services.UserService, log *utils.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := utils.ExtractSubjectFromToken(c, cfg)
		if err != nil {
			return utils.Unauthorized(c, "Unauthorized")
		}

		user, err := users.ResolveSubject(c.UserContext(), claims)
		if err != nil {
			return utils.HandleError(c, log, err)
		}
		if !user.IsActive {
			return utils.Forbidden(c, "Account is deactivated")
		}

		c.Locals(userKey, user)
		return c.Next()
	}
}

// AdminMiddleware must run after AuthMiddleware.
func AdminMiddleware(policy *services.AuthorizationPolicy, log *utils.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var userID uint
		if user := CurrentUser(c); user != nil {
			userID = user.ID
		}
		if err := policy.RequireAdmin(c.UserContext(), userID); err != nil {
			return utils.HandleError(c, log, err)
		}
		return c.Next()
	}
}

// CurrentUser returns the subject resolved by AuthMiddleware, or nil.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(userKey).(*models.User)
	return user
}
