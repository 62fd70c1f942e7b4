// file: internals/route/index.go
package routes

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	classRoute "github.com/Yuguda999/school-management-system-sub006/internals/features/school/classes/route"
	promotionRoute "github.com/Yuguda999/school-management-system-sub006/internals/features/school/promotions/route"
	sessionRoute "github.com/Yuguda999/school-management-system-sub006/internals/features/school/sessions/route"
	authMiddleware "github.com/Yuguda999/school-management-system-sub006/internals/middlewares/auth"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	// Everything behind JWT; role split happens per feature route group.
	api := app.Group("/api/a", authMiddleware.AuthMiddleware())

	log.Println("[INFO] Setting up session routes...")
	sessionRoute.AcademicSessionAllRoutes(api, db)
	sessionRoute.AcademicSessionAdminRoutes(api, db)

	log.Println("[INFO] Setting up class routes...")
	classRoute.ClassAllRoutes(api, db)
	classRoute.ClassAdminRoutes(api, db)

	log.Println("[INFO] Setting up promotion routes...")
	promotionRoute.PromotionTeacherRoutes(api, db)
	promotionRoute.PromotionAdminRoutes(api, db)
}
