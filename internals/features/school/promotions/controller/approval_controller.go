// file: internals/features/school/promotions/controller/approval_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "github.com/Yuguda999/school-management-system-sub006/internals/features/school/promotions/dto"
	service "github.com/Yuguda999/school-management-system-sub006/internals/features/school/promotions/service"
	helper "github.com/Yuguda999/school-management-system-sub006/internals/helpers"
	helperAuth "github.com/Yuguda999/school-management-system-sub006/internals/helpers/auth"
)

/* ============================================
   Controller
============================================ */

type ApprovalController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Approval  *service.ApprovalService
}

func NewApprovalController(db *gorm.DB, v *validator.Validate) *ApprovalController {
	if v == nil {
		v = validator.New()
	}
	return &ApprovalController{
		DB:        db,
		Validator: v,
		Approval:  service.NewApprovalService(db, nil, nil, nil),
	}
}

func requestIDParam(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid request id")
	}
	return id, nil
}

/* ============================================
   SUBMIT (teacher and above)
   POST /promotions/requests
============================================ */

func (ctl *ApprovalController) Submit(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return httpErr(c, err.(*fiber.Error).Code, err.Error())
	}
	submitterID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return httpErr(c, err.(*fiber.Error).Code, err.Error())
	}

	var p dto.SubmitPromotionRequestDTO
	if err := bindAndValidate(c, ctl.Validator, &p); err != nil {
		return httpErr(c, err.(*fiber.Error).Code, err.Error())
	}

	ent, err := ctl.Approval.Submit(schoolID, p.SessionID, p.ClassID, submitterID, p.Decisions)
	if err != nil {
		return promotionErr(c, err)
	}

	decisions, _ := service.DecodeDecisions(ent)
	return helper.JsonCreated(c, "Promotion request submitted for approval", dto.RequestFromModel(*ent, decisions))
}

/* ============================================
   LIST PENDING (admin only)
   GET /promotions/requests?session_id=
============================================ */

func (ctl *ApprovalController) ListPending(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return httpErr(c, err.(*fiber.Error).Code, err.Error())
	}
	if err := helperAuth.EnsureAdminSchool(c, schoolID); err != nil {
		return err
	}
	sessionID, err := querySessionID(c, false)
	if err != nil {
		return httpErr(c, err.(*fiber.Error).Code, err.Error())
	}

	paging := helper.ResolvePaging(c, 20, 100)
	list, total, err := ctl.Approval.ListPending(schoolID, sessionID, paging.Offset, paging.Limit)
	if err != nil {
		return promotionErr(c, err)
	}

	out := make([]dto.PromotionRequestResponseDTO, 0, len(list))
	for i := range list {
		decisions, _ := service.DecodeDecisions(&list[i])
		out = append(out, dto.RequestFromModel(list[i], decisions))
	}
	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "Pending promotion requests fetched", out, &pagination)
}

/* ============================================
   APPROVE (admin only)
   POST /promotions/requests/:id/approve
============================================ */

func (ctl *ApprovalController) Approve(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return httpErr(c, err.(*fiber.Error).Code, err.Error())
	}
	if err := helperAuth.EnsureAdminSchool(c, schoolID); err != nil {
		return err
	}
	reviewerID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return httpErr(c, err.(*fiber.Error).Code, err.Error())
	}
	requestID, err := requestIDParam(c)
	if err != nil {
		return httpErr(c, err.(*fiber.Error).Code, err.Error())
	}

	result, ent, err := ctl.Approval.Approve(schoolID, requestID, reviewerID)
	if err != nil {
		return promotionErr(c, err)
	}
	return helper.JsonOK(c, "Promotion request approved and executed", fiber.Map{
		"request": dto.RequestFromModel(*ent, nil),
		"result":  result,
	})
}

/* ============================================
   REJECT (admin only)
   POST /promotions/requests/:id/reject
============================================ */

func (ctl *ApprovalController) Reject(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return httpErr(c, err.(*fiber.Error).Code, err.Error())
	}
	if err := helperAuth.EnsureAdminSchool(c, schoolID); err != nil {
		return err
	}
	reviewerID, err := helperAuth.GetUserIDFromToken(c)
	if err != nil {
		return httpErr(c, err.(*fiber.Error).Code, err.Error())
	}
	requestID, err := requestIDParam(c)
	if err != nil {
		return httpErr(c, err.(*fiber.Error).Code, err.Error())
	}

	var p dto.RejectPromotionRequestDTO
	// Body is optional on reject
	if len(c.Body()) > 0 {
		if err := bindAndValidate(c, ctl.Validator, &p); err != nil {
			return httpErr(c, err.(*fiber.Error).Code, err.Error())
		}
	}

	ent, err := ctl.Approval.Reject(schoolID, requestID, reviewerID, p.Reason)
	if err != nil {
		return promotionErr(c, err)
	}
	return helper.JsonUpdated(c, "Promotion request rejected", dto.RequestFromModel(*ent, nil))
}
