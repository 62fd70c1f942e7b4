// file: internals/features/school/sessions/route/admin_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/Yuguda999/school-management-system-sub006/internals/constants"
	sessionCtl "github.com/Yuguda999/school-management-system-sub006/internals/features/school/sessions/controller"
	authMiddleware "github.com/Yuguda999/school-management-system-sub006/internals/middlewares/auth"
)

// AcademicSessionAdminRoutes mounts the mutating session endpoints.
func AcademicSessionAdminRoutes(api fiber.Router, db *gorm.DB) {
	ctl := sessionCtl.NewAcademicSessionController(db, nil)
	termCtl := sessionCtl.NewTermController(db, nil)

	base := api.Group("",
		authMiddleware.OnlyRolesSlice(
			constants.RoleErrorAdmin("managing academic sessions"),
			constants.AdminAndAbove,
		),
	)

	base.Post("/sessions", ctl.Create)
	base.Patch("/sessions/:id", ctl.Update)
	base.Delete("/sessions/:id", ctl.Delete)

	// Lifecycle
	base.Post("/sessions/:id/start", ctl.Start)
	base.Post("/sessions/:id/complete", ctl.Complete)
	base.Post("/sessions/:id/archive", ctl.Archive)
	base.Post("/sessions/:id/set-current", ctl.SetCurrent)

	// Terms
	base.Post("/sessions/:id/terms", termCtl.Create)
	base.Post("/sessions/:id/terms/:term_id/set-current", termCtl.SetCurrent)
}

// AcademicSessionAllRoutes mounts the read-only session endpoints for every
// authenticated role.
func AcademicSessionAllRoutes(api fiber.Router, db *gorm.DB) {
	ctl := sessionCtl.NewAcademicSessionController(db, nil)
	termCtl := sessionCtl.NewTermController(db, nil)

	api.Get("/sessions", ctl.List)
	api.Get("/sessions/:id", ctl.GetByID)
	api.Get("/sessions/:id/terms", termCtl.List)
}
