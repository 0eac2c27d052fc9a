package utils

import (
	"net/http/httptest"
	"testing"
	"time"

	"learnhub/backend/config"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{JWTSecret: "testsecret", JWTTTL: time.Hour}
}

func TestGenerateAndParseToken(t *testing.T) {
	cfg := testConfig()

	token, err := GenerateJWTToken("auth0|ann", "Ann", "ann@x.com", cfg)
	require.NoError(t, err)

	claims, err := ParseSubjectToken(token, cfg)
	require.NoError(t, err)
	assert.Equal(t, "auth0|ann", claims.Subject)
	assert.Equal(t, "Ann", claims.Name)
	assert.Equal(t, "ann@x.com", claims.Email)
}

func TestParseSubjectTokenRejects(t *testing.T) {
	cfg := testConfig()

	other := &config.Config{JWTSecret: "othersecret", JWTTTL: time.Hour}
	forged, err := GenerateJWTToken("auth0|ann", "", "", other)
	require.NoError(t, err)
	_, err = ParseSubjectToken(forged, cfg)
	assert.Error(t, err)

	expired := &config.Config{JWTSecret: cfg.JWTSecret, JWTTTL: -time.Minute}
	stale, err := GenerateJWTToken("auth0|ann", "", "", expired)
	require.NoError(t, err)
	_, err = ParseSubjectToken(stale, cfg)
	assert.Error(t, err)

	anonymous, err := GenerateJWTToken("", "", "", cfg)
	require.NoError(t, err)
	_, err = ParseSubjectToken(anonymous, cfg)
	assert.Error(t, err)

	_, err = ParseSubjectToken("not-a-token", cfg)
	assert.Equal(t, fiber.StatusUnauthorized, StatusFor(err))
}

func TestExtractSubjectFromToken(t *testing.T) {
	cfg := testConfig()
	token, err := GenerateJWTToken("auth0|ann", "Ann", "ann@x.com", cfg)
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		claims, err := ExtractSubjectFromToken(c, cfg)
		if err != nil {
			return Unauthorized(c, "Unauthorized")
		}
		return c.SendString(claims.Subject)
	})

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"bearer", "Bearer " + token, fiber.StatusOK},
		{"bare", token, fiber.StatusOK},
		{"missing", "", fiber.StatusUnauthorized},
		{"garbage", "Bearer nope", fiber.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}
}
