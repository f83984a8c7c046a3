package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"rotasiku_backend/internals/configs"
	rediscache "rotasiku_backend/internals/databases/rediscache"
	auditcontroller "rotasiku_backend/internals/features/audit/controller"
	auditroute "rotasiku_backend/internals/features/audit/route"
	auditservice "rotasiku_backend/internals/features/audit/service"
	rotcontroller "rotasiku_backend/internals/features/school/rotations/controller"
	rotroute "rotasiku_backend/internals/features/school/rotations/route"
	rotservice "rotasiku_backend/internals/features/school/rotations/service"
	trcontroller "rotasiku_backend/internals/features/school/time_records/controller"
	trroute "rotasiku_backend/internals/features/school/time_records/route"
	trservice "rotasiku_backend/internals/features/school/time_records/service"
	usercontroller "rotasiku_backend/internals/features/users/controller"
	userroute "rotasiku_backend/internals/features/users/route"
	"rotasiku_backend/internals/helpers/dbtime"
	middlewares "rotasiku_backend/internals/middlewares"
	authmw "rotasiku_backend/internals/middlewares/auth"
	"rotasiku_backend/internals/ratelimit"
)

// Deps: dependensi runtime yang dirakit di main lalu disuntik ke route.
type Deps struct {
	DB       *gorm.DB
	Cache    *rediscache.Client
	Audit    *auditservice.Dispatcher
	Limiters *ratelimit.Registry
}

func SetupRoutes(app *fiber.App, d *Deps) {
	// rakit clock engine: store transaksional + rotation reader + jam nyata
	store := trservice.NewGormClockStore(d.DB, configs.App.Clock)
	rotations := rotservice.NewGormRotationReader(d.DB)
	clockSvc := trservice.NewClockService(store, rotations, dbtime.NewRealClock(), configs.App.Clock)

	clockCtrl := trcontroller.NewClockController(clockSvc, d.Audit, d.Cache)
	recCtrl := trcontroller.NewTimeRecordController(d.DB, d.Audit, d.Cache)
	rotCtrl := rotcontroller.NewRotationController(d.DB)
	authCtrl := usercontroller.NewAuthController(d.DB)
	auditCtrl := auditcontroller.NewAuditController(d.DB)

	BaseRoutes(app, d.DB)

	api := app.Group("/api")

	// 🔓 publik
	userroute.AuthRoutes(api, authCtrl, d.Limiters)

	jwtGuard := authmw.AuthJWT(authmw.AuthJWTOpts{
		Secret:              configs.JWTSecret,
		AllowCookieFallback: true,
	})

	// 👤 /api/u — user login (student & lainnya)
	u := api.Group("/u", jwtGuard, middlewares.APIRateLimiter(d.Limiters))
	userroute.UserRoutes(u, authCtrl)
	rotroute.RotationUserRoutes(u, rotCtrl)
	trroute.TimeRecordUserRoutes(u, clockCtrl, recCtrl, d.Limiters)

	// 🛡 /api/a — approver/admin
	a := api.Group("/a", jwtGuard, middlewares.APIRateLimiter(d.Limiters))
	rotroute.RotationAdminRoutes(a, rotCtrl)
	trroute.TimeRecordAdminRoutes(a, recCtrl)
	auditroute.AuditAdminRoutes(a, auditCtrl)
}
