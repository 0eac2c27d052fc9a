package utils

import (
	"strings"
	"time"

	"learnhub/backend/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// SubjectClaims is the token payload shared with the identity provider.
// Subject carries the external-auth reference.
type SubjectClaims struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

func GenerateJWTToken(externalID, name, email string, cfg *config.Config) (string, error) {
	now := time.Now()
	claims := SubjectClaims{
		Name:  name,
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   externalID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(cfg.JWTTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.JWTSecret))
}

// ExtractSubjectFromToken resolves the calling subject from the Authorization
// header. Both "Bearer <token>" and a bare token are accepted.
func ExtractSubjectFromToken(c *fiber.Ctx, cfg *config.Config) (*SubjectClaims, error) {
	tokenString := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	tokenString = strings.TrimSpace(strings.TrimPrefix(tokenString, "Bearer "))
	if tokenString == "" {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Missing authorization token")
	}
	return ParseSubjectToken(tokenString, cfg)
}

func ParseSubjectToken(tokenString string, cfg *config.Config) (*SubjectClaims, error) {
	claims := &SubjectClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid signing method")
		}
		return []byte(cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
	}

	if claims.Subject == "" {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "Invalid subject in token")
	}

	return claims, nil
}
