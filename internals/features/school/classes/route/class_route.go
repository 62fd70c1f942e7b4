// file: internals/features/school/classes/route/class_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/Yuguda999/school-management-system-sub006/internals/constants"
	classCtl "github.com/Yuguda999/school-management-system-sub006/internals/features/school/classes/controller"
	authMiddleware "github.com/Yuguda999/school-management-system-sub006/internals/middlewares/auth"
)

func ClassAdminRoutes(api fiber.Router, db *gorm.DB) {
	ctl := classCtl.NewClassController(db, nil)

	base := api.Group("",
		authMiddleware.OnlyRolesSlice(
			constants.RoleErrorAdmin("managing classes"),
			constants.AdminAndAbove,
		),
	)

	base.Post("/classes", ctl.Create)
	base.Patch("/classes/:id", ctl.Update)
}

func ClassAllRoutes(api fiber.Router, db *gorm.DB) {
	ctl := classCtl.NewClassController(db, nil)

	// progression-map registered before /classes/:id style routes would
	// ever be added, so the literal segment keeps priority
	api.Get("/classes/progression-map", ctl.ProgressionMap)
	api.Get("/classes", ctl.List)
}
