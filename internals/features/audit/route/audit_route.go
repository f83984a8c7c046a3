package route

import (
	"github.com/gofiber/fiber/v2"

	"rotasiku_backend/internals/features/audit/controller"
)

// AuditAdminRoutes: audit log read-only (group /a, sudah AuthJWT).
func AuditAdminRoutes(r fiber.Router, ctrl *controller.AuditController) {
	r.Get("/audit-events", ctrl.List)
}
