// file: internals/features/school/sessions/controller/term_controller.go
package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "github.com/Yuguda999/school-management-system-sub006/internals/features/school/sessions/dto"
	model "github.com/Yuguda999/school-management-system-sub006/internals/features/school/sessions/model"
	service "github.com/Yuguda999/school-management-system-sub006/internals/features/school/sessions/service"
	helper "github.com/Yuguda999/school-management-system-sub006/internals/helpers"
	helperAuth "github.com/Yuguda999/school-management-system-sub006/internals/helpers/auth"
)

type TermController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Lifecycle *service.SessionLifecycleService
}

func NewTermController(db *gorm.DB, v *validator.Validate) *TermController {
	if v == nil {
		v = validator.New()
	}
	return &TermController{DB: db, Validator: v, Lifecycle: service.NewSessionLifecycleService(db)}
}

/* ============================================
   LIST (any authenticated role)
   GET /sessions/:id/terms
============================================ */

func (ctl *TermController) List(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return httpErr(c, err.(*fiber.Error).Code, err.Error())
	}
	sessionID, err := sessionIDParam(c)
	if err != nil {
		return httpErr(c, err.(*fiber.Error).Code, err.Error())
	}
	if _, err := ctl.Lifecycle.Get(schoolID, sessionID); err != nil {
		return lifecycleErr(c, err)
	}

	var list []model.TermModel
	if err := ctl.DB.
		Where("term_school_id = ? AND term_academic_session_id = ?", schoolID, sessionID).
		Order("term_sequence ASC").
		Find(&list).Error; err != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Failed to list terms")
	}
	return helper.JsonOK(c, "Terms fetched", dto.TermFromModels(list))
}

/* ============================================
   CREATE (admin only)
   POST /sessions/:id/terms
============================================ */

func (ctl *TermController) Create(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return httpErr(c, err.(*fiber.Error).Code, err.Error())
	}
	if err := helperAuth.EnsureAdminSchool(c, schoolID); err != nil {
		return err
	}
	sessionID, err := sessionIDParam(c)
	if err != nil {
		return httpErr(c, err.(*fiber.Error).Code, err.Error())
	}

	session, err := ctl.Lifecycle.Get(schoolID, sessionID)
	if err != nil {
		return lifecycleErr(c, err)
	}
	if session.AcademicSessionStatus == model.AcademicSessionStatusArchived {
		return httpErr(c, fiber.StatusConflict, "Archived sessions are immutable")
	}

	var p dto.TermCreateDTO
	if err := bindAndValidate(c, ctl.Validator, &p); err != nil {
		return httpErr(c, err.(*fiber.Error).Code, err.Error())
	}
	p.Normalize()

	if p.TermSequence > session.AcademicSessionTermCount {
		return httpErr(c, fiber.StatusUnprocessableEntity, "Term sequence exceeds the session's term count")
	}

	var cnt int64
	if err := ctl.DB.Model(&model.TermModel{}).
		Where("term_academic_session_id = ? AND term_sequence = ?", sessionID, p.TermSequence).
		Count(&cnt).Error; err != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Failed to check term sequence")
	}
	if cnt > 0 {
		return httpErr(c, fiber.StatusConflict, "A term with this sequence already exists")
	}

	ent := p.ToModel(schoolID, sessionID)
	if err := ctl.DB.Create(&ent).Error; err != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Failed to create term")
	}
	return helper.JsonCreated(c, "Term created", dto.TermFromModel(ent))
}

/* ============================================
   SET CURRENT TERM (admin only)
   POST /sessions/:id/terms/:term_id/set-current
============================================ */

// SetCurrent swaps the session-scoped current-term flag in one transaction,
// same shape as the session-level current swap.
func (ctl *TermController) SetCurrent(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return httpErr(c, err.(*fiber.Error).Code, err.Error())
	}
	if err := helperAuth.EnsureAdminSchool(c, schoolID); err != nil {
		return err
	}
	sessionID, err := sessionIDParam(c)
	if err != nil {
		return httpErr(c, err.(*fiber.Error).Code, err.Error())
	}
	termID, err := uuid.Parse(c.Params("term_id"))
	if err != nil {
		return httpErr(c, fiber.StatusBadRequest, "Invalid term id")
	}

	var ent model.TermModel
	txErr := ctl.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("term_school_id = ? AND term_academic_session_id = ? AND term_id = ?", schoolID, sessionID, termID).
			First(&ent).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.TermModel{}).
			Where("term_academic_session_id = ? AND term_is_current = ?", sessionID, true).
			Update("term_is_current", false).Error; err != nil {
			return err
		}
		return tx.Model(&model.TermModel{}).
			Where("term_id = ?", termID).
			Update("term_is_current", true).Error
	})
	if txErr != nil {
		if txErr == gorm.ErrRecordNotFound {
			return httpErr(c, fiber.StatusNotFound, "Term not found in this session")
		}
		return httpErr(c, fiber.StatusInternalServerError, "Failed to set current term")
	}

	ent.TermIsCurrent = true
	return helper.JsonUpdated(c, "Current term changed", dto.TermFromModel(ent))
}
