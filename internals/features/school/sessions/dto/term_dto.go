// file: internals/features/school/sessions/dto/term_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	model "github.com/Yuguda999/school-management-system-sub006/internals/features/school/sessions/model"
)

type TermCreateDTO struct {
	TermSequence  int       `json:"term_sequence"   validate:"required,min=1,max=3"`
	TermName      string    `json:"term_name"       validate:"required"`
	TermStartDate time.Time `json:"term_start_date" validate:"required"`
	TermEndDate   time.Time `json:"term_end_date"   validate:"required,gtefield=TermStartDate"`
}

type TermResponseDTO struct {
	TermID                uuid.UUID `json:"term_id"`
	TermAcademicSessionID uuid.UUID `json:"term_academic_session_id"`
	TermSequence          int       `json:"term_sequence"`
	TermName              string    `json:"term_name"`
	TermStartDate         time.Time `json:"term_start_date"`
	TermEndDate           time.Time `json:"term_end_date"`
	TermIsCurrent         bool      `json:"term_is_current"`
}

func (p *TermCreateDTO) Normalize() {
	p.TermName = strings.TrimSpace(p.TermName)
}

func (p *TermCreateDTO) ToModel(schoolID, sessionID uuid.UUID) model.TermModel {
	return model.TermModel{
		TermSchoolID:          schoolID,
		TermAcademicSessionID: sessionID,
		TermSequence:          p.TermSequence,
		TermName:              p.TermName,
		TermStartDate:         p.TermStartDate,
		TermEndDate:           p.TermEndDate,
	}
}

func TermFromModel(ent model.TermModel) TermResponseDTO {
	return TermResponseDTO{
		TermID:                ent.TermID,
		TermAcademicSessionID: ent.TermAcademicSessionID,
		TermSequence:          ent.TermSequence,
		TermName:              ent.TermName,
		TermStartDate:         ent.TermStartDate,
		TermEndDate:           ent.TermEndDate,
		TermIsCurrent:         ent.TermIsCurrent,
	}
}

func TermFromModels(list []model.TermModel) []TermResponseDTO {
	out := make([]TermResponseDTO, 0, len(list))
	for _, it := range list {
		out = append(out, TermFromModel(it))
	}
	return out
}
