package route

import (
	"github.com/gofiber/fiber/v2"

	"rotasiku_backend/internals/features/school/time_records/controller"
	"rotasiku_backend/internals/middlewares"
	"rotasiku_backend/internals/ratelimit"
)

// TimeRecordUserRoutes: endpoint self-service student (group /u, sudah AuthJWT).
func TimeRecordUserRoutes(r fiber.Router, clockCtrl *controller.ClockController, recCtrl *controller.TimeRecordController, limiters *ratelimit.Registry) {
	tr := r.Group("/time-records")

	// endpoint clock dapat limiter khusus yang lebih ketat
	tr.Post("/clock", middlewares.ClockRateLimiter(limiters), clockCtrl.Clock)
	tr.Get("/clock-status", clockCtrl.ClockStatus)

	tr.Get("/", recCtrl.ListMine)
	tr.Delete("/:id", recCtrl.Delete)
}

// TimeRecordAdminRoutes: endpoint approver/admin (group /a, sudah AuthJWT).
func TimeRecordAdminRoutes(r fiber.Router, recCtrl *controller.TimeRecordController) {
	r.Get("/rotations/:id/time-records", recCtrl.ListByRotation)

	tr := r.Group("/time-records")
	tr.Post("/:id/approve", recCtrl.Approve)
	tr.Post("/:id/reject", recCtrl.Reject)
}
