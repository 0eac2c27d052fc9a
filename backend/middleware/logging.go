package middleware

import (
	"time"

	"learnhub/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// LoggingMiddleware tags the request with an id and logs it once it completes.
func LoggingMiddleware(logger *utils.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		requestID := c.Get(fiber.HeaderXRequestID)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Locals(utils.RequestIDKey, requestID)
		c.Set(fiber.HeaderXRequestID, requestID)

		// Передаем управление следующему обработчику
		err := c.Next()
		if err != nil {
			// Resolve the error here so the logged status is the one sent.
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		fields := []interface{}{
			"request_id", requestID,
			"method", c.Method(),
			"path", c.Path(),
			"status", c.Response().StatusCode(),
			"latency", time.Since(start),
			"ip", c.IP(),
		}
		if user := CurrentUser(c); user != nil {
			fields = append(fields, "user_id", user.ID)
		}
		if err != nil {
			fields = append(fields, "error", err)
		}

		status := c.Response().StatusCode()
		switch {
		case status >= fiber.StatusInternalServerError:
			logger.Error("request", fields...)
		case status >= fiber.StatusBadRequest:
			logger.Warn("request", fields...)
		default:
			logger.Info("request", fields...)
		}

		return nil
	}
}
