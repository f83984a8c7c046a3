package route

import (
	"github.com/gofiber/fiber/v2"

	"rotasiku_backend/internals/features/users/controller"
	"rotasiku_backend/internals/middlewares"
	"rotasiku_backend/internals/ratelimit"
)

// AuthRoutes: endpoint publik /auth — dibatasi limiter login per-IP.
func AuthRoutes(r fiber.Router, ctrl *controller.AuthController, limiters *ratelimit.Registry) {
	auth := r.Group("/auth")
	auth.Post("/login", middlewares.LoginRateLimiter(limiters), ctrl.Login)
}

// UserRoutes: endpoint profil (group /u, sudah AuthJWT).
func UserRoutes(r fiber.Router, ctrl *controller.AuthController) {
	r.Get("/me", ctrl.Me)
}
