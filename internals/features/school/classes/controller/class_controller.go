// file: internals/features/school/classes/controller/class_controller.go
package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "github.com/Yuguda999/school-management-system-sub006/internals/features/school/classes/dto"
	model "github.com/Yuguda999/school-management-system-sub006/internals/features/school/classes/model"
	helper "github.com/Yuguda999/school-management-system-sub006/internals/helpers"
	helperAuth "github.com/Yuguda999/school-management-system-sub006/internals/helpers/auth"
)

/* ============================================
   Controller
============================================ */

type ClassController struct {
	DB        *gorm.DB
	Validator *validator.Validate
}

func NewClassController(db *gorm.DB, v *validator.Validate) *ClassController {
	if v == nil {
		v = validator.New()
	}
	return &ClassController{DB: db, Validator: v}
}

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

/* ============================================
   LIST (any authenticated role)
   GET /classes
============================================ */

func (ctl *ClassController) List(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return httpErr(c, err.(*fiber.Error).Code, err.Error())
	}

	var list []model.ClassModel
	if err := ctl.DB.
		Where("class_school_id = ?", schoolID).
		Order("class_level ASC, class_name ASC").
		Find(&list).Error; err != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Failed to list classes")
	}
	return helper.JsonOK(c, "Classes fetched", dto.FromModels(list))
}

/* ============================================
   CREATE (admin only)
   POST /classes
============================================ */

func (ctl *ClassController) Create(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return httpErr(c, err.(*fiber.Error).Code, err.Error())
	}
	if err := helperAuth.EnsureAdminSchool(c, schoolID); err != nil {
		return err
	}

	var p dto.ClassCreateDTO
	if err := bindAndValidate(c, ctl.Validator, &p); err != nil {
		return httpErr(c, err.(*fiber.Error).Code, err.Error())
	}
	p.Normalize()

	if p.ClassPromotesToID != nil {
		if err := ctl.ensureClassExists(schoolID, *p.ClassPromotesToID); err != nil {
			return httpErr(c, fiber.StatusUnprocessableEntity, "class_promotes_to_id is not a class of this school")
		}
	}

	ent := p.ToModel(schoolID)
	if err := ctl.DB.Create(&ent).Error; err != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Failed to create class")
	}
	return helper.JsonCreated(c, "Class created", dto.FromModel(ent))
}

/* ============================================
   UPDATE (admin only)
   PATCH /classes/:id
============================================ */

func (ctl *ClassController) Update(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return httpErr(c, err.(*fiber.Error).Code, err.Error())
	}
	if err := helperAuth.EnsureAdminSchool(c, schoolID); err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return httpErr(c, fiber.StatusBadRequest, "Invalid class id")
	}

	var ent model.ClassModel
	if err := ctl.DB.
		Where("class_school_id = ? AND class_id = ?", schoolID, id).
		First(&ent).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return httpErr(c, fiber.StatusNotFound, "Class not found")
		}
		return httpErr(c, fiber.StatusInternalServerError, "Failed to fetch class")
	}

	var p dto.ClassUpdateDTO
	if err := bindAndValidate(c, ctl.Validator, &p); err != nil {
		return httpErr(c, err.(*fiber.Error).Code, err.Error())
	}
	if p.ClassPromotesToID != nil && !p.ClearPromotesTo {
		if err := ctl.ensureClassExists(schoolID, *p.ClassPromotesToID); err != nil {
			return httpErr(c, fiber.StatusUnprocessableEntity, "class_promotes_to_id is not a class of this school")
		}
	}
	p.ApplyUpdates(&ent)

	if err := ctl.DB.Save(&ent).Error; err != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Failed to update class")
	}
	return helper.JsonUpdated(c, "Class updated", dto.FromModel(ent))
}

/* ============================================
   PROGRESSION MAP (any authenticated role)
   GET /classes/progression-map
============================================ */

// ProgressionMap resolves each class to its configured next class. Terminal
// classes (no next class) graduate their students at year end.
func (ctl *ClassController) ProgressionMap(c *fiber.Ctx) error {
	schoolID, err := helperAuth.GetSchoolIDFromToken(c)
	if err != nil {
		return httpErr(c, err.(*fiber.Error).Code, err.Error())
	}

	var list []model.ClassModel
	if err := ctl.DB.
		Where("class_school_id = ?", schoolID).
		Order("class_level ASC, class_name ASC").
		Find(&list).Error; err != nil {
		return httpErr(c, fiber.StatusInternalServerError, "Failed to load classes")
	}

	nameByID := make(map[uuid.UUID]string, len(list))
	for _, cls := range list {
		nameByID[cls.ClassID] = cls.ClassName
	}

	out := make([]dto.ClassProgressionDTO, 0, len(list))
	for _, cls := range list {
		row := dto.ClassProgressionDTO{
			ClassID:    cls.ClassID,
			ClassName:  cls.ClassName,
			IsTerminal: cls.ClassPromotesToID == nil,
		}
		if cls.ClassPromotesToID != nil {
			row.NextClassID = cls.ClassPromotesToID
			if name, ok := nameByID[*cls.ClassPromotesToID]; ok {
				row.NextClassName = &name
			}
		}
		out = append(out, row)
	}
	return helper.JsonOK(c, "Progression map fetched", out)
}

func (ctl *ClassController) ensureClassExists(schoolID, classID uuid.UUID) error {
	var cnt int64
	if err := ctl.DB.Model(&model.ClassModel{}).
		Where("class_school_id = ? AND class_id = ?", schoolID, classID).
		Count(&cnt).Error; err != nil {
		return err
	}
	if cnt == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
