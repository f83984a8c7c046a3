package middlewares

import (
	"github.com/gofiber/fiber/v2"

	loggerMW "rotasiku_backend/internals/middlewares/logger"
)

// SetupMiddlewares memasang middleware dasar (urutan penting:
// recovery paling luar supaya panic di mana pun tetap jadi 500 rapi).
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(loggerMW.LoggerMiddleware())
}
