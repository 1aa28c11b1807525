package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/saikumarreddyappidi/Education/database"
)

// HandleCheckHealth reports liveness plus the storage backend's health.
func HandleCheckHealth(c *fiber.Ctx, store database.Storage) error {
	status := "ok"
	if err := store.HealthCheck(); err != nil {
		status = "degraded"
	}
	return c.JSON(fiber.Map{"status": status})
}
