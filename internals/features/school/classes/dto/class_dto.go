// file: internals/features/school/classes/dto/class_dto.go
package dto

import (
	"strings"

	"github.com/google/uuid"

	model "github.com/Yuguda999/school-management-system-sub006/internals/features/school/classes/model"
)

/* =======================
   Request DTO
======================= */

type ClassCreateDTO struct {
	ClassName          string     `json:"class_name"  validate:"required,min=1"`
	ClassLevel         int        `json:"class_level" validate:"required,min=1,max=20"`
	ClassPromotesToID  *uuid.UUID `json:"class_promotes_to_id,omitempty"`
	ClassPassThreshold *float64   `json:"class_pass_threshold,omitempty" validate:"omitempty,min=0,max=100"`
}

type ClassUpdateDTO struct {
	ClassName          *string    `json:"class_name,omitempty"  validate:"omitempty,min=1"`
	ClassLevel         *int       `json:"class_level,omitempty" validate:"omitempty,min=1,max=20"`
	ClassPromotesToID  *uuid.UUID `json:"class_promotes_to_id,omitempty"`
	ClassPassThreshold *float64   `json:"class_pass_threshold,omitempty" validate:"omitempty,min=0,max=100"`
	// true clears the progression pointer (marks the class terminal)
	ClearPromotesTo bool `json:"clear_promotes_to,omitempty"`
}

/* =======================
   Response DTO
======================= */

type ClassResponseDTO struct {
	ClassID            uuid.UUID  `json:"class_id"`
	ClassSchoolID      uuid.UUID  `json:"class_school_id"`
	ClassName          string     `json:"class_name"`
	ClassLevel         int        `json:"class_level"`
	ClassPromotesToID  *uuid.UUID `json:"class_promotes_to_id,omitempty"`
	ClassPassThreshold *float64   `json:"class_pass_threshold,omitempty"`
}

// One row of the resolved class progression map.
type ClassProgressionDTO struct {
	ClassID       uuid.UUID  `json:"class_id"`
	ClassName     string     `json:"class_name"`
	NextClassID   *uuid.UUID `json:"next_class_id,omitempty"`
	NextClassName *string    `json:"next_class_name,omitempty"`
	IsTerminal    bool       `json:"is_terminal"`
}

/* =======================
   Helpers
======================= */

func (p *ClassCreateDTO) Normalize() {
	p.ClassName = strings.TrimSpace(p.ClassName)
}

func (p *ClassCreateDTO) ToModel(schoolID uuid.UUID) model.ClassModel {
	return model.ClassModel{
		ClassSchoolID:      schoolID,
		ClassName:          p.ClassName,
		ClassLevel:         p.ClassLevel,
		ClassPromotesToID:  p.ClassPromotesToID,
		ClassPassThreshold: p.ClassPassThreshold,
	}
}

func (u *ClassUpdateDTO) ApplyUpdates(ent *model.ClassModel) {
	if u.ClassName != nil {
		ent.ClassName = strings.TrimSpace(*u.ClassName)
	}
	if u.ClassLevel != nil {
		ent.ClassLevel = *u.ClassLevel
	}
	if u.ClearPromotesTo {
		ent.ClassPromotesToID = nil
	} else if u.ClassPromotesToID != nil {
		ent.ClassPromotesToID = u.ClassPromotesToID
	}
	if u.ClassPassThreshold != nil {
		ent.ClassPassThreshold = u.ClassPassThreshold
	}
}

func FromModel(ent model.ClassModel) ClassResponseDTO {
	return ClassResponseDTO{
		ClassID:            ent.ClassID,
		ClassSchoolID:      ent.ClassSchoolID,
		ClassName:          ent.ClassName,
		ClassLevel:         ent.ClassLevel,
		ClassPromotesToID:  ent.ClassPromotesToID,
		ClassPassThreshold: ent.ClassPassThreshold,
	}
}

func FromModels(list []model.ClassModel) []ClassResponseDTO {
	out := make([]ClassResponseDTO, 0, len(list))
	for _, it := range list {
		out = append(out, FromModel(it))
	}
	return out
}
