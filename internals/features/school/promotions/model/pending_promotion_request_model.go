// file: internals/features/school/promotions/model/pending_promotion_request_model.go
package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/* =========================
   Constants
========================= */

const (
	PromotionRequestStatusPending  = "pending"
	PromotionRequestStatusApproved = "approved"
	PromotionRequestStatusRejected = "rejected"
)

/* =========================
   Model
========================= */

// PendingPromotionRequestModel is a staged, not-yet-executed decision set.
// The decision list is serialized as JSON; it only becomes student history
// when an approver finalizes the request.
type PendingPromotionRequestModel struct {
	// PK & Tenant
	PromotionRequestID       uuid.UUID `gorm:"type:uuid;primaryKey;column:promotion_request_id" json:"promotion_request_id"`
	PromotionRequestSchoolID uuid.UUID `gorm:"type:uuid;not null;index;column:promotion_request_school_id" json:"promotion_request_school_id"`

	PromotionRequestAcademicSessionID uuid.UUID `gorm:"type:uuid;not null;index;column:promotion_request_academic_session_id" json:"promotion_request_academic_session_id"`

	// Optional single-class scope (a class teacher submitting their own class)
	PromotionRequestClassID *uuid.UUID `gorm:"type:uuid;column:promotion_request_class_id" json:"promotion_request_class_id,omitempty"`

	PromotionRequestSubmittedBy uuid.UUID `gorm:"type:uuid;not null;column:promotion_request_submitted_by" json:"promotion_request_submitted_by"`
	PromotionRequestSubmittedAt time.Time `gorm:"not null;column:promotion_request_submitted_at" json:"promotion_request_submitted_at"`

	// pending -> approved | rejected, terminal either way
	PromotionRequestStatus string `gorm:"type:text;not null;default:'pending';column:promotion_request_status" json:"promotion_request_status"`

	// Serialized []PromotionDecision
	PromotionRequestDecisions     datatypes.JSON `gorm:"type:jsonb;not null;column:promotion_request_decisions" json:"promotion_request_decisions"`
	PromotionRequestDecisionCount int            `gorm:"type:integer;not null;default:0;column:promotion_request_decision_count" json:"promotion_request_decision_count"`

	// Review trail
	PromotionRequestReviewedBy      *uuid.UUID `gorm:"type:uuid;column:promotion_request_reviewed_by" json:"promotion_request_reviewed_by,omitempty"`
	PromotionRequestReviewedAt      *time.Time `gorm:"column:promotion_request_reviewed_at" json:"promotion_request_reviewed_at,omitempty"`
	PromotionRequestRejectionReason *string    `gorm:"type:text;column:promotion_request_rejection_reason" json:"promotion_request_rejection_reason,omitempty"`

	// Audit / soft delete
	PromotionRequestCreatedAt time.Time      `gorm:"not null;autoCreateTime;column:promotion_request_created_at" json:"promotion_request_created_at"`
	PromotionRequestUpdatedAt time.Time      `gorm:"not null;autoUpdateTime;column:promotion_request_updated_at" json:"promotion_request_updated_at"`
	PromotionRequestDeletedAt gorm.DeletedAt `gorm:"column:promotion_request_deleted_at;index" json:"promotion_request_deleted_at,omitempty"`
}

func (PendingPromotionRequestModel) TableName() string { return "pending_promotion_requests" }

func (m *PendingPromotionRequestModel) BeforeCreate(tx *gorm.DB) error {
	if m.PromotionRequestID == uuid.Nil {
		m.PromotionRequestID = uuid.New()
	}
	if m.PromotionRequestSubmittedAt.IsZero() {
		m.PromotionRequestSubmittedAt = time.Now()
	}
	return nil
}

func (m *PendingPromotionRequestModel) BeforeSave(tx *gorm.DB) error {
	switch m.PromotionRequestStatus {
	case "":
		m.PromotionRequestStatus = PromotionRequestStatusPending
	case PromotionRequestStatusPending, PromotionRequestStatusApproved, PromotionRequestStatusRejected:
	default:
		return errors.New("invalid promotion_request_status")
	}
	return nil
}
