// file: internals/features/school/sessions/dto/academic_session_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	model "github.com/Yuguda999/school-management-system-sub006/internals/features/school/sessions/model"
)

/* =======================
   Request DTO
======================= */

type AcademicSessionCreateDTO struct {
	AcademicSessionName      string    `json:"academic_session_name"       validate:"required,min=4"`
	AcademicSessionStartDate time.Time `json:"academic_session_start_date" validate:"required"`
	// gtefield mirrors the DB CHECK (end >= start)
	AcademicSessionEndDate   time.Time `json:"academic_session_end_date"   validate:"required,gtefield=AcademicSessionStartDate"`
	AcademicSessionTermCount *int      `json:"academic_session_term_count,omitempty" validate:"omitempty,oneof=2 3"`
}

type AcademicSessionUpdateDTO struct {
	AcademicSessionName      *string    `json:"academic_session_name,omitempty"       validate:"omitempty,min=4"`
	AcademicSessionStartDate *time.Time `json:"academic_session_start_date,omitempty"`
	AcademicSessionEndDate   *time.Time `json:"academic_session_end_date,omitempty"`
	AcademicSessionTermCount *int       `json:"academic_session_term_count,omitempty" validate:"omitempty,oneof=2 3"`
}

type AcademicSessionFilterDTO struct {
	Status   *string `query:"status"  validate:"omitempty,oneof=upcoming active completed archived"`
	Current  *bool   `query:"current" validate:"omitempty"`
	Page     int     `query:"page"      validate:"omitempty,min=1"`
	PageSize int     `query:"page_size" validate:"omitempty,min=1,max=200"`
}

/* =======================
   Response DTO
======================= */

type AcademicSessionResponseDTO struct {
	AcademicSessionID                 uuid.UUID `json:"academic_session_id"`
	AcademicSessionSchoolID           uuid.UUID `json:"academic_session_school_id"`
	AcademicSessionName               string    `json:"academic_session_name"`
	AcademicSessionStartDate          time.Time `json:"academic_session_start_date"`
	AcademicSessionEndDate            time.Time `json:"academic_session_end_date"`
	AcademicSessionStatus             string    `json:"academic_session_status"`
	AcademicSessionTermCount          int       `json:"academic_session_term_count"`
	AcademicSessionIsCurrent          bool      `json:"academic_session_is_current"`
	AcademicSessionPromotionCompleted bool      `json:"academic_session_promotion_completed"`
	AcademicSessionCreatedAt          time.Time `json:"academic_session_created_at"`
	AcademicSessionUpdatedAt          time.Time `json:"academic_session_updated_at"`
}

/* =======================
   Helpers
======================= */

func (p *AcademicSessionCreateDTO) Normalize() {
	p.AcademicSessionName = strings.TrimSpace(p.AcademicSessionName)
}

func (p *AcademicSessionCreateDTO) ToModel(schoolID uuid.UUID) model.AcademicSessionModel {
	termCount := 3
	if p.AcademicSessionTermCount != nil {
		termCount = *p.AcademicSessionTermCount
	}
	return model.AcademicSessionModel{
		AcademicSessionSchoolID:  schoolID,
		AcademicSessionName:      p.AcademicSessionName,
		AcademicSessionStartDate: p.AcademicSessionStartDate,
		AcademicSessionEndDate:   p.AcademicSessionEndDate,
		AcademicSessionStatus:    model.AcademicSessionStatusUpcoming,
		AcademicSessionTermCount: termCount,
	}
}

func (u *AcademicSessionUpdateDTO) ApplyUpdates(ent *model.AcademicSessionModel) {
	if u.AcademicSessionName != nil {
		ent.AcademicSessionName = strings.TrimSpace(*u.AcademicSessionName)
	}
	if u.AcademicSessionStartDate != nil {
		ent.AcademicSessionStartDate = *u.AcademicSessionStartDate
	}
	if u.AcademicSessionEndDate != nil {
		ent.AcademicSessionEndDate = *u.AcademicSessionEndDate
	}
	if u.AcademicSessionTermCount != nil {
		ent.AcademicSessionTermCount = *u.AcademicSessionTermCount
	}
}

// Mapper entity -> response
func FromModel(ent model.AcademicSessionModel) AcademicSessionResponseDTO {
	return AcademicSessionResponseDTO{
		AcademicSessionID:                 ent.AcademicSessionID,
		AcademicSessionSchoolID:           ent.AcademicSessionSchoolID,
		AcademicSessionName:               ent.AcademicSessionName,
		AcademicSessionStartDate:          ent.AcademicSessionStartDate,
		AcademicSessionEndDate:            ent.AcademicSessionEndDate,
		AcademicSessionStatus:             ent.AcademicSessionStatus,
		AcademicSessionTermCount:          ent.AcademicSessionTermCount,
		AcademicSessionIsCurrent:          ent.AcademicSessionIsCurrent,
		AcademicSessionPromotionCompleted: ent.AcademicSessionPromotionCompleted,
		AcademicSessionCreatedAt:          ent.AcademicSessionCreatedAt,
		AcademicSessionUpdatedAt:          ent.AcademicSessionUpdatedAt,
	}
}

func FromModels(list []model.AcademicSessionModel) []AcademicSessionResponseDTO {
	out := make([]AcademicSessionResponseDTO, 0, len(list))
	for _, it := range list {
		out = append(out, FromModel(it))
	}
	return out
}
