package middleware

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"github.com/saikumarreddyappidi/Education/services"
)

// CaptureRequests snapshots JSON bodies of authenticated write requests so
// that work lost to a client crash can be restored later. Capture is fire and
// forget; it never blocks or fails the request being handled.
func CaptureRequests(recovery *services.RecoveryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if recovery == nil {
			return c.Next()
		}

		if c.Method() != fiber.MethodPost && c.Method() != fiber.MethodPut {
			return c.Next()
		}

		userID, ok := GetUserID(c)
		if !ok {
			return c.Next()
		}

		body := c.Body()
		if len(body) == 0 || !json.Valid(body) {
			return c.Next()
		}

		// Fiber reuses the request buffer after the handler returns.
		snapshot := make([]byte, len(body))
		copy(snapshot, body)
		method := c.Method()
		path := c.Path()

		go recovery.Capture(userID, method, path, snapshot)

		return c.Next()
	}
}
