// file: internals/features/school/promotions/service/approval_service.go
package service

import (
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	dto "github.com/Yuguda999/school-management-system-sub006/internals/features/school/promotions/dto"
	model "github.com/Yuguda999/school-management-system-sub006/internals/features/school/promotions/model"
)

// ApprovalService runs the teacher-submits / admin-reviews cycle. A request
// is finalized by exactly one approve or reject; the winner of a racing
// pair is decided by a guarded status update.
type ApprovalService struct {
	DB        *gorm.DB
	Builder   *CandidateBuilder
	Collector *DecisionCollector
	Executor  *BulkPromotionExecutor
}

func NewApprovalService(db *gorm.DB, builder *CandidateBuilder, collector *DecisionCollector, executor *BulkPromotionExecutor) *ApprovalService {
	if builder == nil {
		builder = NewCandidateBuilder(db, nil)
	}
	if collector == nil {
		collector = NewDecisionCollector(db)
	}
	if executor == nil {
		executor = NewBulkPromotionExecutor(db, nil, builder, collector)
	}
	return &ApprovalService{DB: db, Builder: builder, Collector: collector, Executor: executor}
}

// Submit validates the decision set against fresh candidates and stages it
// as a pending request. Nothing is mutated on student records.
func (s *ApprovalService) Submit(schoolID, sessionID uuid.UUID, classID *uuid.UUID, submitterID uuid.UUID, decisions []dto.PromotionDecisionDTO) (*model.PendingPromotionRequestModel, error) {
	if len(decisions) == 0 {
		return nil, ErrEmptyDecisionSet
	}

	candidates, err := s.Builder.Build(schoolID, sessionID, classID)
	if err != nil {
		return nil, err
	}
	validated, err := s.Collector.Validate(schoolID, candidates, decisions)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(validated)
	if err != nil {
		return nil, err
	}

	ent := model.PendingPromotionRequestModel{
		PromotionRequestSchoolID:          schoolID,
		PromotionRequestAcademicSessionID: sessionID,
		PromotionRequestClassID:           classID,
		PromotionRequestSubmittedBy:       submitterID,
		PromotionRequestSubmittedAt:       time.Now(),
		PromotionRequestStatus:            model.PromotionRequestStatusPending,
		PromotionRequestDecisions:         datatypes.JSON(raw),
		PromotionRequestDecisionCount:     len(validated),
	}
	if err := s.DB.Create(&ent).Error; err != nil {
		return nil, err
	}
	log.Printf("[APPROVAL] submitted request=%s session=%s decisions=%d by=%s",
		ent.PromotionRequestID, sessionID, len(validated), submitterID)
	return &ent, nil
}

// Approve finalizes the request and runs the staged decisions. The guarded
// pending->approved update makes concurrent approvals mutually exclusive:
// the loser sees no rows affected and gets ErrAlreadyFinalized. Partial
// per-student failures in the executor still leave the request approved;
// retries go through a fresh submission of the failed subset.
func (s *ApprovalService) Approve(schoolID, requestID, reviewerID uuid.UUID) (*dto.BulkPromotionResultDTO, *model.PendingPromotionRequestModel, error) {
	now := time.Now()
	claim := s.DB.Model(&model.PendingPromotionRequestModel{}).
		Where("promotion_request_school_id = ? AND promotion_request_id = ?", schoolID, requestID).
		Where("promotion_request_status = ?", model.PromotionRequestStatusPending).
		Updates(map[string]any{
			"promotion_request_status":      model.PromotionRequestStatusApproved,
			"promotion_request_reviewed_by": reviewerID,
			"promotion_request_reviewed_at": now,
		})
	if claim.Error != nil {
		return nil, nil, claim.Error
	}
	if claim.RowsAffected == 0 {
		return nil, nil, s.finalizeLoss(schoolID, requestID)
	}

	ent, err := s.get(schoolID, requestID)
	if err != nil {
		s.revertClaim(schoolID, requestID)
		return nil, nil, err
	}
	decisions, err := DecodeDecisions(ent)
	if err != nil {
		s.revertClaim(schoolID, requestID)
		return nil, nil, err
	}

	result, err := s.Executor.Execute(schoolID, ent.PromotionRequestAcademicSessionID, decisions)
	if err != nil {
		// The executor refused the whole batch (bad session, empty set).
		// Nothing ran, so the request goes back to the pending queue
		// instead of sitting terminally approved with unexecuted
		// decisions.
		s.revertClaim(schoolID, requestID)
		return nil, nil, err
	}
	log.Printf("[APPROVAL] approved request=%s by=%s ok=%d failed=%d",
		requestID, reviewerID, result.Successful, result.Failed)
	return result, ent, nil
}

// Reject finalizes the request without touching any student record.
func (s *ApprovalService) Reject(schoolID, requestID, reviewerID uuid.UUID, reason *string) (*model.PendingPromotionRequestModel, error) {
	now := time.Now()
	claim := s.DB.Model(&model.PendingPromotionRequestModel{}).
		Where("promotion_request_school_id = ? AND promotion_request_id = ?", schoolID, requestID).
		Where("promotion_request_status = ?", model.PromotionRequestStatusPending).
		Updates(map[string]any{
			"promotion_request_status":           model.PromotionRequestStatusRejected,
			"promotion_request_reviewed_by":      reviewerID,
			"promotion_request_reviewed_at":      now,
			"promotion_request_rejection_reason": reason,
		})
	if claim.Error != nil {
		return nil, claim.Error
	}
	if claim.RowsAffected == 0 {
		return nil, s.finalizeLoss(schoolID, requestID)
	}
	log.Printf("[APPROVAL] rejected request=%s by=%s", requestID, reviewerID)
	return s.get(schoolID, requestID)
}

// ListPending returns the approver's queue, optionally scoped to a session.
func (s *ApprovalService) ListPending(schoolID uuid.UUID, sessionID *uuid.UUID, offset, limit int) ([]model.PendingPromotionRequestModel, int64, error) {
	q := s.DB.Model(&model.PendingPromotionRequestModel{}).
		Where("promotion_request_school_id = ?", schoolID).
		Where("promotion_request_status = ?", model.PromotionRequestStatusPending)
	if sessionID != nil {
		q = q.Where("promotion_request_academic_session_id = ?", *sessionID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var list []model.PendingPromotionRequestModel
	if err := q.Order("promotion_request_submitted_at ASC").
		Offset(offset).Limit(limit).
		Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (s *ApprovalService) Get(schoolID, requestID uuid.UUID) (*model.PendingPromotionRequestModel, error) {
	return s.get(schoolID, requestID)
}

func (s *ApprovalService) get(schoolID, requestID uuid.UUID) (*model.PendingPromotionRequestModel, error) {
	var ent model.PendingPromotionRequestModel
	if err := s.DB.
		Where("promotion_request_school_id = ? AND promotion_request_id = ?", schoolID, requestID).
		First(&ent).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	return &ent, nil
}

// revertClaim returns a claimed request to pending when the executor could
// not run at all. Per-student failures never come through here; those leave
// the request approved and are retried via a fresh submission.
func (s *ApprovalService) revertClaim(schoolID, requestID uuid.UUID) {
	err := s.DB.Model(&model.PendingPromotionRequestModel{}).
		Where("promotion_request_school_id = ? AND promotion_request_id = ?", schoolID, requestID).
		Where("promotion_request_status = ?", model.PromotionRequestStatusApproved).
		Updates(map[string]any{
			"promotion_request_status":      model.PromotionRequestStatusPending,
			"promotion_request_reviewed_by": nil,
			"promotion_request_reviewed_at": nil,
		}).Error
	if err != nil {
		log.Printf("[APPROVAL] failed to revert claim request=%s: %v", requestID, err)
	}
}

// finalizeLoss tells a losing caller why the guarded update missed.
func (s *ApprovalService) finalizeLoss(schoolID, requestID uuid.UUID) error {
	if _, err := s.get(schoolID, requestID); err != nil {
		return err
	}
	return ErrAlreadyFinalized
}

// DecodeDecisions unpacks the serialized decision list of a request.
func DecodeDecisions(ent *model.PendingPromotionRequestModel) ([]dto.PromotionDecisionDTO, error) {
	var decisions []dto.PromotionDecisionDTO
	if len(ent.PromotionRequestDecisions) == 0 {
		return decisions, nil
	}
	if err := json.Unmarshal(ent.PromotionRequestDecisions, &decisions); err != nil {
		return nil, err
	}
	return decisions, nil
}
