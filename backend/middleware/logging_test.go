package middleware

import (
	"net/http/httptest"
	"testing"

	"learnhub/backend/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observedLogger() (*utils.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return &utils.Logger{SugaredLogger: zap.New(core).Sugar()}, logs
}

func TestLoggingMiddlewareLogsFinalStatus(t *testing.T) {
	logger, logs := observedLogger()
	app := fiber.New()
	app.Use(LoggingMiddleware(logger))
	app.Get("/conflict", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusConflict, "taken")
	})
	app.Get("/ok", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/conflict", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))

	entries := logs.TakeAll()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.EqualValues(t, fiber.StatusConflict, entries[0].ContextMap()["status"])

	req := httptest.NewRequest("GET", "/ok", nil)
	req.Header.Set(fiber.HeaderXRequestID, "req-1")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "req-1", resp.Header.Get(fiber.HeaderXRequestID))

	entries = logs.TakeAll()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "req-1", entries[0].ContextMap()["request_id"])
}

func TestLoggingMiddlewareUsesAppErrorHandler(t *testing.T) {
	logger, logs := observedLogger()
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return utils.HandleError(c, utils.NopLogger(), err)
		},
	})
	app.Use(LoggingMiddleware(logger))
	app.Get("/missing", func(c *fiber.Ctx) error {
		return utils.ErrNotFound
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	entries := logs.TakeAll()
	require.Len(t, entries, 1)
	assert.EqualValues(t, fiber.StatusNotFound, entries[0].ContextMap()["status"])
}
