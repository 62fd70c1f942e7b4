// file: internals/features/school/promotions/dto/promotion_dto.go
package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	model "github.com/Yuguda999/school-management-system-sub006/internals/features/school/promotions/model"
)

/* =======================
   Actions
======================= */

const (
	PromotionActionPromote  = "promote"
	PromotionActionRepeat   = "repeat"
	PromotionActionGraduate = "graduate"
	PromotionActionTransfer = "transfer"
)

// ActionNeedsTargetClass reports whether the action moves the student into
// an explicit destination class.
func ActionNeedsTargetClass(action string) bool {
	return action == PromotionActionPromote || action == PromotionActionTransfer
}

/* =======================
   Candidate (advisory, recomputed on every preview)
======================= */

type PromotionCandidateDTO struct {
	StudentID        uuid.UUID  `json:"student_id"`
	StudentName      string     `json:"student_name"`
	CurrentClassID   uuid.UUID  `json:"current_class_id"`
	CurrentClassName string     `json:"current_class_name"`
	SessionAverage   *float64   `json:"session_average"` // nil = no grade data
	SuggestedAction  string     `json:"suggested_action"`
	NextClassID      *uuid.UUID `json:"next_class_id"` // nil when graduating
	// false when the suggestion rests on no grade data
	PromotionEligible bool `json:"promotion_eligible"`
}

/* =======================
   Decision (binding, caller-supplied)
======================= */

type PromotionDecisionDTO struct {
	StudentID   uuid.UUID  `json:"student_id"   validate:"required"`
	Action      string     `json:"action"       validate:"required,oneof=promote repeat graduate transfer"`
	NextClassID *uuid.UUID `json:"next_class_id,omitempty"`
	Remarks     *string    `json:"remarks,omitempty" validate:"omitempty,max=500"`
}

func (d *PromotionDecisionDTO) Normalize() {
	d.Action = strings.ToLower(strings.TrimSpace(d.Action))
	if d.Remarks != nil {
		r := strings.TrimSpace(*d.Remarks)
		if r == "" {
			d.Remarks = nil
		} else {
			d.Remarks = &r
		}
	}
}

/* =======================
   Request payloads
======================= */

type ExecutePromotionsDTO struct {
	SessionID uuid.UUID              `json:"session_id" validate:"required"`
	Decisions []PromotionDecisionDTO `json:"decisions"  validate:"required,min=1,dive"`
}

type SubmitPromotionRequestDTO struct {
	SessionID uuid.UUID              `json:"session_id" validate:"required"`
	ClassID   *uuid.UUID             `json:"class_id,omitempty"`
	Decisions []PromotionDecisionDTO `json:"decisions"  validate:"required,dive"`
}

type RejectPromotionRequestDTO struct {
	Reason *string `json:"reason,omitempty" validate:"omitempty,max=500"`
}

/* =======================
   Results
======================= */

type PromotionResultDTO struct {
	StudentID   uuid.UUID  `json:"student_id"`
	Success     bool       `json:"success"`
	Action      string     `json:"action"`
	FromClassID uuid.UUID  `json:"from_class_id"`
	ToClassID   *uuid.UUID `json:"to_class_id,omitempty"`
	Error       string     `json:"error,omitempty"`
}

type BulkPromotionResultDTO struct {
	TotalProcessed int                  `json:"total_processed"`
	Successful     int                  `json:"successful"`
	Failed         int                  `json:"failed"`
	Promoted       int                  `json:"promoted"`
	Repeated       int                  `json:"repeated"`
	Graduated      int                  `json:"graduated"`
	Transferred    int                  `json:"transferred"`
	Results        []PromotionResultDTO `json:"results"`
}

/* =======================
   Pending request responses
======================= */

type PromotionRequestResponseDTO struct {
	PromotionRequestID                uuid.UUID              `json:"promotion_request_id"`
	PromotionRequestSchoolID          uuid.UUID              `json:"promotion_request_school_id"`
	PromotionRequestAcademicSessionID uuid.UUID              `json:"promotion_request_academic_session_id"`
	PromotionRequestClassID           *uuid.UUID             `json:"promotion_request_class_id,omitempty"`
	PromotionRequestSubmittedBy       uuid.UUID              `json:"promotion_request_submitted_by"`
	PromotionRequestSubmittedAt       time.Time              `json:"promotion_request_submitted_at"`
	PromotionRequestStatus            string                 `json:"promotion_request_status"`
	PromotionRequestDecisionCount     int                    `json:"promotion_request_decision_count"`
	PromotionRequestDecisions         []PromotionDecisionDTO `json:"promotion_request_decisions,omitempty"`
	PromotionRequestReviewedBy        *uuid.UUID             `json:"promotion_request_reviewed_by,omitempty"`
	PromotionRequestReviewedAt        *time.Time             `json:"promotion_request_reviewed_at,omitempty"`
	PromotionRequestRejectionReason   *string                `json:"promotion_request_rejection_reason,omitempty"`
}

func RequestFromModel(ent model.PendingPromotionRequestModel, decisions []PromotionDecisionDTO) PromotionRequestResponseDTO {
	return PromotionRequestResponseDTO{
		PromotionRequestID:                ent.PromotionRequestID,
		PromotionRequestSchoolID:          ent.PromotionRequestSchoolID,
		PromotionRequestAcademicSessionID: ent.PromotionRequestAcademicSessionID,
		PromotionRequestClassID:           ent.PromotionRequestClassID,
		PromotionRequestSubmittedBy:       ent.PromotionRequestSubmittedBy,
		PromotionRequestSubmittedAt:       ent.PromotionRequestSubmittedAt,
		PromotionRequestStatus:            ent.PromotionRequestStatus,
		PromotionRequestDecisionCount:     ent.PromotionRequestDecisionCount,
		PromotionRequestDecisions:         decisions,
		PromotionRequestReviewedBy:        ent.PromotionRequestReviewedBy,
		PromotionRequestReviewedAt:        ent.PromotionRequestReviewedAt,
		PromotionRequestRejectionReason:   ent.PromotionRequestRejectionReason,
	}
}

/* =======================
   Decision validation issues
======================= */

type DecisionIssueDTO struct {
	StudentID uuid.UUID `json:"student_id"`
	Code      string    `json:"code"`
	Message   string    `json:"message"`
}
