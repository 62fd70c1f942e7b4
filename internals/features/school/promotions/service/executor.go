// file: internals/features/school/promotions/service/executor.go
package service

import (
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	classModel "github.com/Yuguda999/school-management-system-sub006/internals/features/school/classes/model"
	dto "github.com/Yuguda999/school-management-system-sub006/internals/features/school/promotions/dto"
	sessionSvc "github.com/Yuguda999/school-management-system-sub006/internals/features/school/sessions/service"
)

// BulkPromotionExecutor applies a validated decision set one student at a
// time. Each student's close-old/open-new history pair commits in its own
// transaction; a failure is recorded in the aggregate result and never
// aborts the rest of the batch. The caller retries by re-submitting only
// the failed student ids.
type BulkPromotionExecutor struct {
	DB        *gorm.DB
	Lifecycle *sessionSvc.SessionLifecycleService
	Builder   *CandidateBuilder
	Collector *DecisionCollector
}

func NewBulkPromotionExecutor(db *gorm.DB, lifecycle *sessionSvc.SessionLifecycleService, builder *CandidateBuilder, collector *DecisionCollector) *BulkPromotionExecutor {
	if lifecycle == nil {
		lifecycle = sessionSvc.NewSessionLifecycleService(db)
	}
	if builder == nil {
		builder = NewCandidateBuilder(db, nil)
	}
	if collector == nil {
		collector = NewDecisionCollector(db)
	}
	return &BulkPromotionExecutor{DB: db, Lifecycle: lifecycle, Builder: builder, Collector: collector}
}

// Execute runs an already-validated decision set against the session.
func (e *BulkPromotionExecutor) Execute(schoolID, sessionID uuid.UUID, decisions []dto.PromotionDecisionDTO) (*dto.BulkPromotionResultDTO, error) {
	if len(decisions) == 0 {
		return nil, ErrEmptyDecisionSet
	}
	if _, err := e.Lifecycle.Get(schoolID, sessionID); err != nil {
		return nil, err
	}

	// The destination session is resolved once per batch: the school's
	// current session, unless that is still the session being promoted out
	// of, in which case the new rows stay unset until session rollover.
	var destSession *uuid.UUID
	current, err := e.Lifecycle.Current(schoolID)
	if err != nil {
		return nil, err
	}
	if current != nil && current.AcademicSessionID != sessionID {
		id := current.AcademicSessionID
		destSession = &id
	}

	res := &dto.BulkPromotionResultDTO{Results: make([]dto.PromotionResultDTO, 0, len(decisions))}
	for _, d := range decisions {
		r := e.applyOne(schoolID, sessionID, destSession, d)
		res.Results = append(res.Results, r)
		res.TotalProcessed++
		if !r.Success {
			res.Failed++
			continue
		}
		res.Successful++
		switch r.Action {
		case dto.PromotionActionPromote:
			res.Promoted++
		case dto.PromotionActionRepeat:
			res.Repeated++
		case dto.PromotionActionGraduate:
			res.Graduated++
		case dto.PromotionActionTransfer:
			res.Transferred++
		}
	}

	// promotion_completed only on a clean run, so a partially failed batch
	// can be retried for just the failed subset.
	if err := e.Lifecycle.MarkPromotionCompleted(sessionID, res.Failed == 0); err != nil {
		return nil, err
	}

	log.Printf("[PROMOTE] session=%s processed=%d ok=%d failed=%d (promote=%d repeat=%d graduate=%d transfer=%d)",
		sessionID, res.TotalProcessed, res.Successful, res.Failed,
		res.Promoted, res.Repeated, res.Graduated, res.Transferred)
	return res, nil
}

// applyOne wraps a single student's mutation in its own transaction. Any
// error is caught here and turned into a failed result.
func (e *BulkPromotionExecutor) applyOne(schoolID, sessionID uuid.UUID, destSession *uuid.UUID, d dto.PromotionDecisionDTO) dto.PromotionResultDTO {
	result := dto.PromotionResultDTO{
		StudentID: d.StudentID,
		Action:    d.Action,
	}

	err := e.DB.Transaction(func(tx *gorm.DB) error {
		var hist classModel.StudentClassHistoryModel
		if err := tx.
			Where("student_class_history_school_id = ?", schoolID).
			Where("student_class_history_student_id = ?", d.StudentID).
			Where("student_class_history_academic_session_id = ?", sessionID).
			Where("student_class_history_ended_at IS NULL").
			First(&hist).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("no open class history record for this session")
			}
			return err
		}
		result.FromClassID = hist.StudentClassHistoryClassID

		now := time.Now()
		if err := tx.Model(&classModel.StudentClassHistoryModel{}).
			Where("student_class_history_id = ?", hist.StudentClassHistoryID).
			Update("student_class_history_ended_at", now).Error; err != nil {
			return err
		}

		switch d.Action {
		case dto.PromotionActionPromote, dto.PromotionActionTransfer:
			if d.NextClassID == nil {
				return errors.New("next_class_id is required for " + d.Action)
			}
			result.ToClassID = d.NextClassID
			return tx.Create(&classModel.StudentClassHistoryModel{
				StudentClassHistorySchoolID:          schoolID,
				StudentClassHistoryStudentID:         d.StudentID,
				StudentClassHistoryClassID:           *d.NextClassID,
				StudentClassHistoryAcademicSessionID: destSession,
				StudentClassHistoryStartedAt:         now,
			}).Error

		case dto.PromotionActionRepeat:
			to := hist.StudentClassHistoryClassID
			result.ToClassID = &to
			return tx.Create(&classModel.StudentClassHistoryModel{
				StudentClassHistorySchoolID:          schoolID,
				StudentClassHistoryStudentID:         d.StudentID,
				StudentClassHistoryClassID:           to,
				StudentClassHistoryAcademicSessionID: destSession,
				StudentClassHistoryStartedAt:         now,
			}).Error

		case dto.PromotionActionGraduate:
			// No new history row; the student leaves the school roll.
			// UpdateColumn skips the save hooks, which validate fields this
			// single-column update never loads.
			return tx.Model(&classModel.StudentModel{}).
				Where("student_id = ? AND student_school_id = ?", d.StudentID, schoolID).
				UpdateColumn("student_status", classModel.StudentStatusGraduated).Error

		default:
			return errors.New("unknown promotion action: " + d.Action)
		}
	})
	if err != nil {
		log.Printf("[PROMOTE] student=%s action=%s FAILED: %v", d.StudentID, d.Action, err)
		result.Success = false
		result.Error = err.Error()
		return result
	}

	result.Success = true
	return result
}

// AutoPromote is the one-call convenience path: build candidates with no
// overrides and feed their suggestions straight into the executor.
func (e *BulkPromotionExecutor) AutoPromote(schoolID, sessionID uuid.UUID) (*dto.BulkPromotionResultDTO, error) {
	candidates, err := e.Builder.Build(schoolID, sessionID, nil)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, ErrEmptyDecisionSet
	}

	decisions := make([]dto.PromotionDecisionDTO, 0, len(candidates))
	for _, c := range candidates {
		decisions = append(decisions, dto.PromotionDecisionDTO{
			StudentID:   c.StudentID,
			Action:      c.SuggestedAction,
			NextClassID: c.NextClassID,
		})
	}
	return e.Execute(schoolID, sessionID, decisions)
}
