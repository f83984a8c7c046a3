package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// BaseRoutes: endpoint non-bisnis (health check untuk LB/uptime monitor).
func BaseRoutes(app *fiber.App, db *gorm.DB) {
	app.Get("/health", func(c *fiber.Ctx) error {
		dbStatus := "ok"
		if db != nil {
			if sqlDB, err := db.DB(); err != nil {
				dbStatus = "error"
			} else if err := sqlDB.PingContext(c.UserContext()); err != nil {
				dbStatus = "error"
			}
		} else {
			dbStatus = "down"
		}

		status := fiber.StatusOK
		if dbStatus != "ok" {
			status = fiber.StatusServiceUnavailable
		}
		return c.Status(status).JSON(fiber.Map{
			"status":    dbStatus,
			"service":   "rotasiku-backend",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})
}
