// file: internals/features/school/sessions/controller/academic_session_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	dto "github.com/Yuguda999/school-management-system-sub006/internals/features/school/sessions/dto"
	model "github.com/Yuguda999/school-management-system-sub006/internals/features/school/sessions/model"
	service "github.com/Yuguda999/school-management-system-sub006/internals/features/school/sessions/service"
	helper "github.com/Yuguda999/school-management-system-sub006/internals/helpers"
	helperAuth "github.com/Yuguda999/school-management-system-sub006/internals/helpers/auth"
)

/* ============================================
   Controller
============================================ */

type AcademicSessionController struct {
	DB        *gorm.DB
	Validator *validator.Validate
	Lifecycle *service.SessionLifecycleService
}

func NewAcademicSessionController(db *gorm.DB, v *validator.Validate) *AcademicSessionController {
	if v == nil {
		v = validator.New()
	}
	return &AcademicSessionController{
		DB:        db,
		Validator: v,
		Lifecycle: service.NewSessionLifecycleService(db),
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

// lifecycleErr maps lifecycle service errors onto the response envelope.
func lifecycleErr(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		return httpErr(c, fiber.StatusNotFound, "Academic session not found")
	case errors.Is(err, service.ErrInvalidTransition):
		return httpErr(c, fiber.StatusConflict, "Illegal session status transition")
	case errors.Is(err, service.ErrSessionArchived):
		return httpErr(c, fiber.StatusConflict, "Archived sessions are immutable")
	case errors.Is(err, service.ErrHasDependents):
		return httpErr(c, fiber.StatusConflict, "Session still has terms or enrollments")
	default:
		return httpErr(c, fiber.StatusInternalServerError, "Operation failed")
	}
}

func sessionIDParam(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid session id")
	}
	return id, nil
}

/* ============================================
   LIST / DETAIL (any authenticated role)
   GET /sessions
   GET /sessions/:id
============================================ */

func (ctl *AcademicSessionController) List(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return httpErr(c, err.(*fiber.Error).Code, err.Error())
	}

	var f dto.AcademicSessionFilterDTO
	if err := c.QueryParser(&f); err != nil {
		return httpErr(c, fiber.StatusBadRequest, "Invalid query parameters")
	}
	if err := ctl.Validator.Struct(&f); err != nil {
		return httpErr(c, fiber.StatusUnprocessableEntity, err.Error())
	}

	paging := helper.ResolvePaging(c, 20, 200)

	q := ctl.DB.Model(&model.AcademicSessionModel{}).
		Where("academic_session_school_id = ?", schoolID)
	if f.Status != nil {
		q = q.Where("academic_session_status = ?", *f.Status)
	}
	if f.Current != nil {
		q = q.Where("academic_session_is_current = ?", *f.Current)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Failed to list sessions")
	}

	var list []model.AcademicSessionModel
	if err := q.Order("academic_session_start_date DESC").
		Offset(paging.Offset).Limit(paging.Limit).
		Find(&list).Error; err != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Failed to list sessions")
	}

	pagination := helper.BuildPaginationFromPage(total, paging.Page, paging.PerPage)
	return helper.JsonList(c, "Sessions fetched", dto.FromModels(list), &pagination)
}

func (ctl *AcademicSessionController) GetByID(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return httpErr(c, err.(*fiber.Error).Code, err.Error())
	}
	id, err := sessionIDParam(c)
	if err != nil {
		return httpErr(c, err.(*fiber.Error).Code, err.Error())
	}

	ent, err := ctl.Lifecycle.Get(schoolID, id)
	if err != nil {
		return lifecycleErr(c, err)
	}
	return helper.JsonOK(c, "Session fetched", dto.FromModel(*ent))
}

/* ============================================
   CREATE (admin only)
   POST /sessions
============================================ */

func (ctl *AcademicSessionController) Create(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return httpErr(c, err.(*fiber.Error).Code, err.Error())
	}
	if err := helperAuth.EnsureAdminSchool(c, schoolID); err != nil {
		return err
	}

	var p dto.AcademicSessionCreateDTO
	if err := bindAndValidate(c, ctl.Validator, &p); err != nil {
		return httpErr(c, err.(*fiber.Error).Code, err.Error())
	}
	p.Normalize()

	ent := p.ToModel(schoolID)
	if err := ctl.DB.Create(&ent).Error; err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return httpErr(c, fiber.StatusConflict, "A session with this name already exists")
		}
		return httpErr(c, fiber.StatusInternalServerError, "Failed to create session")
	}
	return helper.JsonCreated(c, "Session created", dto.FromModel(ent))
}

/* ============================================
   UPDATE (admin only)
   PATCH /sessions/:id
============================================ */

func (ctl *AcademicSessionController) Update(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return httpErr(c, err.(*fiber.Error).Code, err.Error())
	}
	if err := helperAuth.EnsureAdminSchool(c, schoolID); err != nil {
		return err
	}
	id, err := sessionIDParam(c)
	if err != nil {
		return httpErr(c, err.(*fiber.Error).Code, err.Error())
	}

	ent, err := ctl.Lifecycle.Get(schoolID, id)
	if err != nil {
		return lifecycleErr(c, err)
	}
	if ent.AcademicSessionStatus == model.AcademicSessionStatusArchived {
		return httpErr(c, fiber.StatusConflict, "Archived sessions are immutable")
	}

	var p dto.AcademicSessionUpdateDTO
	if err := bindAndValidate(c, ctl.Validator, &p); err != nil {
		return httpErr(c, err.(*fiber.Error).Code, err.Error())
	}
	p.ApplyUpdates(ent)

	if err := ctl.DB.Save(ent).Error; err != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Failed to update session")
	}
	return helper.JsonUpdated(c, "Session updated", dto.FromModel(*ent))
}

/* ============================================
   LIFECYCLE (admin only)
   POST /sessions/:id/start | complete | archive | set-current
============================================ */

func (ctl *AcademicSessionController) Start(c *fiber.Ctx) error {
	return ctl.lifecycleAction(c, ctl.Lifecycle.Start, "Session started")
}

func (ctl *AcademicSessionController) Complete(c *fiber.Ctx) error {
	return ctl.lifecycleAction(c, ctl.Lifecycle.Complete, "Session completed")
}

func (ctl *AcademicSessionController) Archive(c *fiber.Ctx) error {
	return ctl.lifecycleAction(c, ctl.Lifecycle.Archive, "Session archived")
}

func (ctl *AcademicSessionController) SetCurrent(c *fiber.Ctx) error {
	return ctl.lifecycleAction(c, ctl.Lifecycle.SetCurrent, "Current session changed")
}

func (ctl *AcademicSessionController) lifecycleAction(
	c *fiber.Ctx,
	fn func(schoolID, sessionID uuid.UUID) (*model.AcademicSessionModel, error),
	okMsg string,
) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return httpErr(c, err.(*fiber.Error).Code, err.Error())
	}
	if err := helperAuth.EnsureAdminSchool(c, schoolID); err != nil {
		return err
	}
	id, err := sessionIDParam(c)
	if err != nil {
		return httpErr(c, err.(*fiber.Error).Code, err.Error())
	}

	ent, err := fn(schoolID, id)
	if err != nil {
		return lifecycleErr(c, err)
	}
	return helper.JsonUpdated(c, okMsg, dto.FromModel(*ent))
}

/* ============================================
   DELETE (admin only, upcoming + no dependents)
   DELETE /sessions/:id
============================================ */

func (ctl *AcademicSessionController) Delete(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return httpErr(c, err.(*fiber.Error).Code, err.Error())
	}
	if err := helperAuth.EnsureAdminSchool(c, schoolID); err != nil {
		return err
	}
	id, err := sessionIDParam(c)
	if err != nil {
		return httpErr(c, err.(*fiber.Error).Code, err.Error())
	}

	if err := ctl.Lifecycle.Delete(schoolID, id); err != nil {
		return lifecycleErr(c, err)
	}
	return helper.JsonDeleted(c, "Session deleted", fiber.Map{"academic_session_id": id})
}
