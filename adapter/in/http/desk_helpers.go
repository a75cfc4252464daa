// Package http exposes the dashboard API over Fiber.
package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// =============================================================================
// Response Helpers
// =============================================================================

// The dashboard frontend expects flat {"status": ..., "message": ...}
// envelopes; keep every handler on these two helpers.

// errorResponse sends {"status":"error","message":...} with the given status.
func errorResponse(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"status":  "error",
		"message": message,
	})
}

// successResponse sends {"status":"success","message":...}.
func successResponse(c *fiber.Ctx, message string) error {
	return c.JSON(fiber.Map{
		"status":  "success",
		"message": message,
	})
}

// =============================================================================
// Middleware
// =============================================================================

// RequestIDMiddleware assigns a request id for log correlation.
func RequestIDMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := c.Get("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Locals("request_id", requestID)
		c.Set("X-Request-ID", requestID)
		return c.Next()
	}
}
