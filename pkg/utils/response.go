package utils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/radaiko/ReadRiser/pkg/apperr"
)

func Success(c *fiber.Ctx, status int, data interface{}) error {
	return c.Status(status).JSON(fiber.Map{
		"success": true,
		"data":    data,
	})
}

func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

// FromError maps an engine error to its transport status. A missing actor is
// reported exactly like a denied one.
func FromError(c *fiber.Ctx, err error) error {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return Error(c, statusForKind(appErr.Kind), appErr.Message)
	}
	return Error(c, fiber.StatusInternalServerError, "internal server error")
}

func statusForKind(kind apperr.Kind) int {
	switch kind {
	case apperr.KindActorNotFound, apperr.KindPermissionDenied:
		return fiber.StatusForbidden
	case apperr.KindNotFound:
		return fiber.StatusNotFound
	case apperr.KindInvalidRequest:
		return fiber.StatusBadRequest
	case apperr.KindConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}
