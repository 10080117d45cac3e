package middleware

import (
	"github.com/ahmetcoskunkizilkaya/shoutspot-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/shoutspot-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/shoutspot-backend/internal/dto"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
)

// JWTProtected rejects requests without a valid bearer token before any
// handler runs.
func JWTProtected(cfg *config.Config) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey: jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		ContextKey: auth.LocalsKey,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:   true,
				Code:    dto.CodeUnauthorized,
				Message: "Unauthorized: invalid or expired token",
			})
		},
	})
}
