package handlers

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/ahmetcoskunkizilkaya/shoutspot-backend/internal/auth"
	"github.com/ahmetcoskunkizilkaya/shoutspot-backend/internal/dto"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
)

func respondError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(dto.ErrorResponse{
		Error:   true,
		Code:    code,
		Message: message,
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return respondError(c, fiber.StatusBadRequest, dto.CodeValidation, message)
}

// invalidInput answers 400 with the field-level message when err came from
// request validation.
func invalidInput(c *fiber.Ctx, err error) error {
	var ve *dto.ValidationError
	if errors.As(err, &ve) {
		return badRequest(c, ve.Message)
	}
	return badRequest(c, "Invalid request body")
}

// upstreamFailed logs the underlying error and answers 500 without
// exposing it.
func upstreamFailed(c *fiber.Ctx, message string, err error) error {
	slog.Error(message, requestAttrs(c, "error", err)...)
	if hub := sentryfiber.GetHubFromContext(c); hub != nil {
		hub.CaptureException(err)
	}
	return respondError(c, fiber.StatusInternalServerError, dto.CodeUpstream, message)
}

func requestAttrs(c *fiber.Ctx, extra ...any) []any {
	attrs := []any{"method", c.Method(), "path", c.Path()}
	if rid, ok := c.Locals("requestid").(string); ok {
		attrs = append(attrs, "request_id", rid)
	}
	if userID, err := auth.UserID(c); err == nil {
		attrs = append(attrs, "user_id", userID)
	}
	return append(attrs, extra...)
}

// queryID parses a positive integer query parameter.
func queryID(c *fiber.Ctx, key string) (uint, bool) {
	n, err := strconv.ParseUint(c.Query(key), 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

// parseBody decodes and validates a JSON request body into req.
func parseBody(c *fiber.Ctx, req any) error {
	if err := c.BodyParser(req); err != nil {
		return err
	}
	return dto.Validate(req)
}
