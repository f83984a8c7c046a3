package route

import (
	"github.com/gofiber/fiber/v2"

	"rotasiku_backend/internals/features/school/rotations/controller"
)

// RotationUserRoutes: student melihat rotasinya sendiri (group /u).
func RotationUserRoutes(r fiber.Router, ctrl *controller.RotationController) {
	r.Get("/rotations", ctrl.ListMine)
}

// RotationAdminRoutes: CRUD rotasi oleh admin (group /a).
func RotationAdminRoutes(r fiber.Router, ctrl *controller.RotationController) {
	rot := r.Group("/rotations")
	rot.Post("/", ctrl.Create)
	rot.Get("/", ctrl.List)
	rot.Get("/:id", ctrl.GetByID)
	rot.Put("/:id", ctrl.Update)
	rot.Delete("/:id", ctrl.Delete)
}
