package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/radaiko/ReadRiser/pkg/logger"
)

func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		requestID := logger.GenerateRequestID()
		c.Locals("requestID", requestID)

		err := c.Next()

		latency := time.Since(start)
		statusCode := c.Response().StatusCode()
		actorID := logger.GetActorIDFromContext(c)

		details := map[string]interface{}{
			"method":      c.Method(),
			"path":        c.Path(),
			"status_code": statusCode,
			"latency_ms":  latency.Milliseconds(),
			"ip":          c.IP(),
			"request_id":  requestID,
		}

		if actorID != nil {
			if statusCode >= 400 {
				logger.ErrorWithActor(*actorID, "http_request", err, details)
			} else {
				logger.InfoWithActor(*actorID, "http_request", details)
			}
		} else {
			if statusCode >= 400 {
				logger.Error("http_request", err, details)
			} else {
				logger.Info("http_request", details)
			}
		}

		return err
	}
}

// SecurityLogger flags denied and probing requests so authorization refusals
// show up in the log stream even when the handler treated them as routine.
func SecurityLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()

		statusCode := c.Response().StatusCode()
		actorID := logger.GetActorIDFromContext(c)

		if statusCode == fiber.StatusForbidden || statusCode == fiber.StatusNotFound {
			reason := "access_denied"
			if statusCode == fiber.StatusNotFound {
				reason = "not_found"
			}
			details := map[string]interface{}{
				"method": c.Method(),
				"path":   c.Path(),
				"ip":     c.IP(),
				"reason": reason,
			}

			if actorID != nil {
				logger.WarnWithActor(*actorID, reason, details)
			} else {
				logger.Warn(reason+"_unidentified", details)
			}
		}

		return err
	}
}
