// file: internals/features/school/promotions/controller/promotion_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "github.com/Yuguda999/school-management-system-sub006/internals/features/school/promotions/dto"
	service "github.com/Yuguda999/school-management-system-sub006/internals/features/school/promotions/service"
	sessionSvc "github.com/Yuguda999/school-management-system-sub006/internals/features/school/sessions/service"
	helper "github.com/Yuguda999/school-management-system-sub006/internals/helpers"
	helperAuth "github.com/Yuguda999/school-management-system-sub006/internals/helpers/auth"
)

/* ============================================
   Controller
============================================ */

type PromotionController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Builder   *service.CandidateBuilder
	Collector *service.DecisionCollector
	Executor  *service.BulkPromotionExecutor
}

func NewPromotionController(db *gorm.DB, v *validator.Validate) *PromotionController {
	if v == nil {
		v = validator.New()
	}
	builder := service.NewCandidateBuilder(db, nil)
	collector := service.NewDecisionCollector(db)
	return &PromotionController{
		DB:        db,
		Validator: v,
		Builder:   builder,
		Collector: collector,
		Executor:  service.NewBulkPromotionExecutor(db, nil, builder, collector),
	}
}

/* ============================================
   RESP/ERR helpers
============================================ */

func httpErr(c *fiber.Ctx, code int, msg string) error {
	return helper.JsonError(c, code, msg)
}

func bindAndValidate[T any](c *fiber.Ctx, v *validator.Validate, dst *T) error {
	if err := c.BodyParser(dst); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	if v != nil {
		if err := v.Struct(dst); err != nil {
			return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
		}
	}
	return nil
}

// promotionErr maps promotion service errors onto the response envelope.
// Decision validation issues become a field-error map so the caller can fix
// every problem from one response.
func promotionErr(c *fiber.Ctx, err error) error {
	var vErr *service.DecisionValidationError
	switch {
	case errors.As(err, &vErr):
		fieldErrors := make(map[string][]string, len(vErr.Issues))
		for _, is := range vErr.Issues {
			key := is.StudentID.String()
			fieldErrors[key] = append(fieldErrors[key], is.Code+": "+is.Message)
		}
		return helper.JsonValidationError(c, fieldErrors)
	case errors.Is(err, service.ErrEmptyDecisionSet):
		return httpErr(c, fiber.StatusUnprocessableEntity, "Decision set is empty")
	case errors.Is(err, service.ErrAlreadyFinalized):
		return httpErr(c, fiber.StatusConflict, "Request has already been approved or rejected")
	case errors.Is(err, service.ErrRequestNotFound):
		return httpErr(c, fiber.StatusNotFound, "Promotion request not found")
	case errors.Is(err, sessionSvc.ErrSessionNotFound):
		return httpErr(c, fiber.StatusNotFound, "Academic session not found")
	default:
		return httpErr(c, fiber.StatusInternalServerError, "Operation failed")
	}
}

func querySessionID(c *fiber.Ctx, required bool) (*uuid.UUID, error) {
	raw := c.Query("session_id")
	if raw == "" {
		if required {
			return nil, fiber.NewError(fiber.StatusBadRequest, "session_id is required")
		}
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid session_id")
	}
	return &id, nil
}

/* ============================================
   PREVIEW (teacher and above)
   GET /promotions/preview?session_id=&class_id=
============================================ */

// Preview recomputes the candidate list on every call; suggestions are
// advisory and never persisted.
func (ctl *PromotionController) Preview(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return httpErr(c, err.(*fiber.Error).Code, err.Error())
	}
	sessionID, err := querySessionID(c, true)
	if err != nil {
		return httpErr(c, err.(*fiber.Error).Code, err.Error())
	}

	var classID *uuid.UUID
	if raw := c.Query("class_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return httpErr(c, fiber.StatusBadRequest, "Invalid class_id")
		}
		classID = &id
	}

	candidates, err := ctl.Builder.Build(schoolID, *sessionID, classID)
	if err != nil {
		return promotionErr(c, err)
	}
	return helper.JsonOK(c, "Promotion preview computed", candidates)
}

/* ============================================
   EXECUTE (admin only)
   POST /promotions/execute
============================================ */

func (ctl *PromotionController) Execute(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return httpErr(c, err.(*fiber.Error).Code, err.Error())
	}
	if err := helperAuth.EnsureAdminSchool(c, schoolID); err != nil {
		return err
	}

	var p dto.ExecutePromotionsDTO
	if err := bindAndValidate(c, ctl.Validator, &p); err != nil {
		return httpErr(c, err.(*fiber.Error).Code, err.Error())
	}

	// Structural validation first: no mutation happens unless the whole
	// decision set is valid against fresh candidates.
	candidates, err := ctl.Builder.Build(schoolID, p.SessionID, nil)
	if err != nil {
		return promotionErr(c, err)
	}
	validated, err := ctl.Collector.Validate(schoolID, candidates, p.Decisions)
	if err != nil {
		return promotionErr(c, err)
	}

	result, err := ctl.Executor.Execute(schoolID, p.SessionID, validated)
	if err != nil {
		return promotionErr(c, err)
	}
	return helper.JsonOK(c, "Promotions executed", result)
}

/* ============================================
   AUTO PROMOTE (admin only)
   POST /promotions/auto?session_id=
============================================ */

func (ctl *PromotionController) Auto(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return httpErr(c, err.(*fiber.Error).Code, err.Error())
	}
	if err := helperAuth.EnsureAdminSchool(c, schoolID); err != nil {
		return err
	}
	sessionID, err := querySessionID(c, true)
	if err != nil {
		return httpErr(c, err.(*fiber.Error).Code, err.Error())
	}

	result, err := ctl.Executor.AutoPromote(schoolID, *sessionID)
	if err != nil {
		return promotionErr(c, err)
	}
	return helper.JsonOK(c, "Auto promotion executed", result)
}
