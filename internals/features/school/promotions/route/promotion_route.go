// file: internals/features/school/promotions/route/promotion_route.go
package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/Yuguda999/school-management-system-sub006/internals/constants"
	promotionCtl "github.com/Yuguda999/school-management-system-sub006/internals/features/school/promotions/controller"
	"github.com/Yuguda999/school-management-system-sub006/internals/middlewares"
	authMiddleware "github.com/Yuguda999/school-management-system-sub006/internals/middlewares/auth"
)

// PromotionTeacherRoutes: a class teacher previews candidates and submits a
// decision set for approval, but never executes it directly.
func PromotionTeacherRoutes(api fiber.Router, db *gorm.DB) {
	promoCtl := promotionCtl.NewPromotionController(db, nil)
	approvalCtl := promotionCtl.NewApprovalController(db, nil)

	base := api.Group("",
		authMiddleware.OnlyRolesSlice(
			constants.RoleErrorTeacher("promotion preview and submission"),
			constants.TeacherAndAbove,
		),
	)

	base.Get("/promotions/preview", promoCtl.Preview)
	base.Post("/promotions/requests", approvalCtl.Submit)
}

// PromotionAdminRoutes: direct execution plus the approval queue.
func PromotionAdminRoutes(api fiber.Router, db *gorm.DB) {
	promoCtl := promotionCtl.NewPromotionController(db, nil)
	approvalCtl := promotionCtl.NewApprovalController(db, nil)

	base := api.Group("",
		authMiddleware.OnlyRolesSlice(
			constants.RoleErrorAdmin("executing promotions"),
			constants.AdminAndAbove,
		),
	)

	bulk := middlewares.BulkActionRateLimiter()
	base.Post("/promotions/execute", bulk, promoCtl.Execute)
	base.Post("/promotions/auto", bulk, promoCtl.Auto)

	base.Get("/promotions/requests", approvalCtl.ListPending)
	base.Post("/promotions/requests/:id/approve", bulk, approvalCtl.Approve)
	base.Post("/promotions/requests/:id/reject", approvalCtl.Reject)
}
