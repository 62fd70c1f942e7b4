// file: internals/features/school/sessions/service/lifecycle_service.go
package service

import (
	"errors"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	model "github.com/Yuguda999/school-management-system-sub006/internals/features/school/sessions/model"
)

/* ============================================
   Domain errors
============================================ */

var (
	ErrSessionNotFound   = errors.New("academic session not found")
	ErrInvalidTransition = errors.New("invalid session status transition")
	ErrSessionArchived   = errors.New("archived sessions are immutable")
	ErrHasDependents     = errors.New("session has dependent terms or enrollments")
)

/* ============================================
   Service
============================================ */

// SessionLifecycleService owns the legal state transitions of an academic
// session and the single-current-session invariant.
type SessionLifecycleService struct {
	DB *gorm.DB
}

func NewSessionLifecycleService(db *gorm.DB) *SessionLifecycleService {
	return &SessionLifecycleService{DB: db}
}

func (s *SessionLifecycleService) Get(schoolID, sessionID uuid.UUID) (*model.AcademicSessionModel, error) {
	var ent model.AcademicSessionModel
	if err := s.DB.
		Where("academic_session_school_id = ? AND academic_session_id = ?", schoolID, sessionID).
		First(&ent).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &ent, nil
}

// Current returns the session holding is_current, or nil when none does.
func (s *SessionLifecycleService) Current(schoolID uuid.UUID) (*model.AcademicSessionModel, error) {
	var ent model.AcademicSessionModel
	err := s.DB.
		Where("academic_session_school_id = ? AND academic_session_is_current = ?", schoolID, true).
		First(&ent).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ent, nil
}

// Start moves upcoming -> active.
func (s *SessionLifecycleService) Start(schoolID, sessionID uuid.UUID) (*model.AcademicSessionModel, error) {
	return s.transition(schoolID, sessionID, model.AcademicSessionStatusUpcoming, model.AcademicSessionStatusActive)
}

// Complete moves active -> completed. Promotion stays a separate explicit
// call so a school can review results before moving students.
func (s *SessionLifecycleService) Complete(schoolID, sessionID uuid.UUID) (*model.AcademicSessionModel, error) {
	return s.transition(schoolID, sessionID, model.AcademicSessionStatusActive, model.AcademicSessionStatusCompleted)
}

// Archive moves completed -> archived. Archived sessions never change again.
func (s *SessionLifecycleService) Archive(schoolID, sessionID uuid.UUID) (*model.AcademicSessionModel, error) {
	ent, err := s.transition(schoolID, sessionID, model.AcademicSessionStatusCompleted, model.AcademicSessionStatusArchived)
	if err != nil {
		return nil, err
	}
	// An archived session cannot stay current.
	if ent.AcademicSessionIsCurrent {
		if err := s.DB.Model(&model.AcademicSessionModel{}).
			Where("academic_session_id = ?", ent.AcademicSessionID).
			Update("academic_session_is_current", false).Error; err != nil {
			return nil, err
		}
		ent.AcademicSessionIsCurrent = false
	}
	return ent, nil
}

// transition applies a guarded status move. The WHERE clause carries the
// expected source status, so racing callers cannot double-apply: the loser
// sees RowsAffected == 0 and reports the transition error.
func (s *SessionLifecycleService) transition(schoolID, sessionID uuid.UUID, from, to string) (*model.AcademicSessionModel, error) {
	res := s.DB.Model(&model.AcademicSessionModel{}).
		Where("academic_session_school_id = ? AND academic_session_id = ? AND academic_session_status = ?",
			schoolID, sessionID, from).
		Updates(map[string]any{
			"academic_session_status":     to,
			"academic_session_updated_at": time.Now(),
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		// Distinguish NotFound from illegal move.
		ent, err := s.Get(schoolID, sessionID)
		if err != nil {
			return nil, err
		}
		log.Printf("[SESSION] illegal transition %s -> %s (current=%s) id=%s",
			from, to, ent.AcademicSessionStatus, sessionID)
		return nil, ErrInvalidTransition
	}
	log.Printf("[SESSION] %s -> %s id=%s", from, to, sessionID)
	return s.Get(schoolID, sessionID)
}

// SetCurrent swaps the school's current-session pointer in one transaction:
// clear whichever session holds it, set it on the target. Legal on any
// non-archived session.
func (s *SessionLifecycleService) SetCurrent(schoolID, sessionID uuid.UUID) (*model.AcademicSessionModel, error) {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var target model.AcademicSessionModel
		if err := tx.
			Where("academic_session_school_id = ? AND academic_session_id = ?", schoolID, sessionID).
			First(&target).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrSessionNotFound
			}
			return err
		}
		if target.AcademicSessionStatus == model.AcademicSessionStatusArchived {
			return ErrSessionArchived
		}

		if err := tx.Model(&model.AcademicSessionModel{}).
			Where("academic_session_school_id = ? AND academic_session_is_current = ?", schoolID, true).
			Update("academic_session_is_current", false).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.AcademicSessionModel{}).
			Where("academic_session_id = ?", sessionID).
			Update("academic_session_is_current", true).Error; err != nil {
			return err
		}

		// Promotions executed before any successor session existed leave
		// their open enrollment rows with a NULL session. The new current
		// session adopts them here so those students show up in its
		// candidate list.
		return tx.Table("student_class_histories").
			Where("student_class_history_school_id = ?", schoolID).
			Where("student_class_history_academic_session_id IS NULL").
			Where("student_class_history_ended_at IS NULL").
			Where("student_class_history_deleted_at IS NULL").
			Update("student_class_history_academic_session_id", sessionID).Error
	})
	if err != nil {
		return nil, err
	}
	log.Printf("[SESSION] set current id=%s school=%s", sessionID, schoolID)
	return s.Get(schoolID, sessionID)
}

// Delete removes an upcoming session with no dependent rows.
func (s *SessionLifecycleService) Delete(schoolID, sessionID uuid.UUID) error {
	ent, err := s.Get(schoolID, sessionID)
	if err != nil {
		return err
	}
	if ent.AcademicSessionStatus != model.AcademicSessionStatusUpcoming {
		return ErrInvalidTransition
	}

	var termCount int64
	if err := s.DB.Model(&model.TermModel{}).
		Where("term_academic_session_id = ?", sessionID).
		Count(&termCount).Error; err != nil {
		return err
	}
	var enrollmentCount int64
	if err := s.DB.Table("student_class_histories").
		Where("student_class_history_academic_session_id = ? AND student_class_history_deleted_at IS NULL", sessionID).
		Count(&enrollmentCount).Error; err != nil {
		return err
	}
	if termCount > 0 || enrollmentCount > 0 {
		return ErrHasDependents
	}

	return s.DB.Delete(&model.AcademicSessionModel{}, "academic_session_id = ?", sessionID).Error
}

// MarkPromotionCompleted is flipped by the bulk executor after a clean run.
func (s *SessionLifecycleService) MarkPromotionCompleted(sessionID uuid.UUID, completed bool) error {
	return s.DB.Model(&model.AcademicSessionModel{}).
		Where("academic_session_id = ?", sessionID).
		Update("academic_session_promotion_completed", completed).Error
}
