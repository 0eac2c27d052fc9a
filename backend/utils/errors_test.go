package utils

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestStatusFor(t *testing.T) {
	assert.Equal(t, fiber.StatusUnauthorized, StatusFor(ErrUnauthenticated))
	assert.Equal(t, fiber.StatusForbidden, StatusFor(errors.Wrap(ErrForbidden, "Admin access required")))
	assert.Equal(t, fiber.StatusNotFound, StatusFor(errors.Wrap(ErrNotFound, "Lesson not found")))
	assert.Equal(t, fiber.StatusBadRequest, StatusFor(ErrInvalidInput))
	assert.Equal(t, fiber.StatusConflict, StatusFor(fiber.NewError(fiber.StatusConflict, "taken")))
	assert.Equal(t, fiber.StatusConflict, StatusFor(errors.Wrap(gorm.ErrDuplicatedKey, "create category")))
	assert.Equal(t, fiber.StatusInternalServerError, StatusFor(errors.New("boom")))
}

func TestHandleError(t *testing.T) {
	app := fiber.New()
	app.Get("/:kind", func(c *fiber.Ctx) error {
		switch c.Params("kind") {
		case "forbidden":
			return HandleError(c, NopLogger(), errors.Wrap(ErrForbidden, "Admin access required"))
		case "duplicate":
			return HandleError(c, NopLogger(), gorm.ErrDuplicatedKey)
		case "missing":
			return HandleError(c, NopLogger(), ErrNotFound)
		default:
			return HandleError(c, NopLogger(), errors.New("pq: connection refused"))
		}
	})

	tests := []struct {
		kind    string
		status  int
		message string
	}{
		{"forbidden", fiber.StatusForbidden, "Admin access required"},
		{"missing", fiber.StatusNotFound, "Not found"},
		{"duplicate", fiber.StatusConflict, "Already exists"},
		{"internal", fiber.StatusInternalServerError, "Internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			resp, err := app.Test(httptest.NewRequest("GET", "/"+tt.kind, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)

			var body ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.message, body.Error)
		})
	}
}
