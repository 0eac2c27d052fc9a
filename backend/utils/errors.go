package utils

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
	ErrNotFound        = errors.New("not found")
	ErrInvalidInput    = errors.New("invalid input")
)

// StatusFor maps an error from the service layer to an HTTP status.
func StatusFor(err error) int {
	var fe *fiber.Error
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return fiber.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrInvalidInput):
		return fiber.StatusBadRequest
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fiber.StatusConflict
	case errors.As(err, &fe):
		return fe.Code
	default:
		return fiber.StatusInternalServerError
	}
}

// HandleError writes the error envelope for err. Internal failures are logged
// and answered with a generic message.
func HandleError(c *fiber.Ctx, log *Logger, err error) error {
	status := StatusFor(err)
	if status >= fiber.StatusInternalServerError {
		log.Error("request failed",
			"request_id", c.Locals(RequestIDKey),
			"method", c.Method(),
			"path", c.Path(),
			"error", err,
		)
		return InternalServerError(c, "Internal server error")
	}
	return Error(c, status, publicMessage(err))
}

var defaultMessages = map[error]string{
	ErrUnauthenticated:    "Unauthorized",
	ErrForbidden:          "Forbidden",
	ErrNotFound:           "Not found",
	ErrInvalidInput:       "Invalid input",
	gorm.ErrDuplicatedKey: "Already exists",
}

// publicMessage is the wrap message of a sentinel error, without the sentinel
// text appended by errors.Wrap.
func publicMessage(err error) string {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Message
	}
	cause := errors.Cause(err)
	if msg, ok := defaultMessages[cause]; ok {
		if err == cause {
			return msg
		}
		return strings.TrimSuffix(err.Error(), ": "+cause.Error())
	}
	return err.Error()
}
