package utils

import (
	"github.com/gofiber/fiber/v2"
)

const RequestIDKey = "request_id"

// ErrorResponse is the body of every non-2xx JSON answer.
type ErrorResponse struct {
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

// Error writes {"error": message}.
func Error(c *fiber.Ctx, status int, message string, details ...interface{}) error {
	response := ErrorResponse{Error: message}
	if len(details) > 0 {
		response.Details = details[0]
	}
	return c.Status(status).JSON(response)
}

// Message writes {"success": true, "message": message} plus any extra fields.
func Message(c *fiber.Ctx, message string, extra ...fiber.Map) error {
	body := fiber.Map{
		"success": true,
		"message": message,
	}
	for _, m := range extra {
		for k, v := range m {
			body[k] = v
		}
	}
	return c.JSON(body)
}

// Created отправляет ответ 201 Created
func Created(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(data)
}

// ValidationError отвечает 400 с ошибками по полям
func ValidationError(c *fiber.Ctx, errors map[string]string) error {
	return Error(c, fiber.StatusBadRequest, "Validation failed", errors)
}

func NotFound(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusNotFound, message)
}

func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusUnauthorized, message)
}

func Forbidden(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusForbidden, message)
}

func InternalServerError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, message)
}
