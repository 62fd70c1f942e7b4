// file: internals/features/school/promotions/service/candidate_builder.go
package service

import (
	"sort"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Yuguda999/school-management-system-sub006/internals/configs"
	classModel "github.com/Yuguda999/school-management-system-sub006/internals/features/school/classes/model"
	gradeSvc "github.com/Yuguda999/school-management-system-sub006/internals/features/school/grades/service"
	dto "github.com/Yuguda999/school-management-system-sub006/internals/features/school/promotions/dto"
)

// CandidateBuilder assembles the advisory promotion list for a session:
// enrolled students, their class, their session average, and the suggested
// action. Read-only; candidates are recomputed on every call because the
// underlying grades can change between previews.
type CandidateBuilder struct {
	DB      *gorm.DB
	Grading gradeSvc.GradingService
}

func NewCandidateBuilder(db *gorm.DB, grading gradeSvc.GradingService) *CandidateBuilder {
	if grading == nil {
		grading = gradeSvc.NewGradingService()
	}
	return &CandidateBuilder{DB: db, Grading: grading}
}

type enrollmentRow struct {
	StudentID     uuid.UUID
	StudentName   string
	ClassID       uuid.UUID
	ClassName     string
	PromotesToID  *uuid.UUID
	PassThreshold *float64
}

// Build returns candidates for every active student with an open class
// history row in the session, optionally restricted to one class.
func (b *CandidateBuilder) Build(schoolID, sessionID uuid.UUID, classID *uuid.UUID) ([]dto.PromotionCandidateDTO, error) {
	q := b.DB.Table("student_class_histories AS h").
		Select(`s.student_id AS student_id,
			s.student_full_name AS student_name,
			c.class_id AS class_id,
			c.class_name AS class_name,
			c.class_promotes_to_id AS promotes_to_id,
			c.class_pass_threshold AS pass_threshold`).
		Joins("JOIN students s ON s.student_id = h.student_class_history_student_id").
		Joins("JOIN classes c ON c.class_id = h.student_class_history_class_id").
		Where("h.student_class_history_school_id = ?", schoolID).
		Where("h.student_class_history_academic_session_id = ?", sessionID).
		Where("h.student_class_history_ended_at IS NULL").
		Where("h.student_class_history_deleted_at IS NULL").
		Where("s.student_status = ?", classModel.StudentStatusActive).
		Where("s.student_deleted_at IS NULL").
		Where("c.class_deleted_at IS NULL")
	if classID != nil {
		q = q.Where("c.class_id = ?", *classID)
	}

	var rows []enrollmentRow
	if err := q.Scan(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]dto.PromotionCandidateDTO, 0, len(rows))
	for _, r := range rows {
		avg, err := b.Grading.SessionAverage(b.DB, schoolID, r.StudentID, sessionID)
		if err != nil {
			return nil, err
		}

		threshold := configs.PromotionPassThreshold
		if r.PassThreshold != nil {
			threshold = *r.PassThreshold
		}

		action, eligible := EvaluateEligibility(avg, threshold, r.PromotesToID != nil)

		var nextClass *uuid.UUID
		if action == dto.PromotionActionPromote {
			nextClass = r.PromotesToID
		}

		out = append(out, dto.PromotionCandidateDTO{
			StudentID:         r.StudentID,
			StudentName:       r.StudentName,
			CurrentClassID:    r.ClassID,
			CurrentClassName:  r.ClassName,
			SessionAverage:    avg,
			SuggestedAction:   action,
			NextClassID:       nextClass,
			PromotionEligible: eligible,
		})
	}

	// Stable order: class name, then student name, so previews and tests
	// always see the same list.
	sort.SliceStable(out, func(i, j int) bool {
		if ci, cj := strings.ToLower(out[i].CurrentClassName), strings.ToLower(out[j].CurrentClassName); ci != cj {
			return ci < cj
		}
		return strings.ToLower(out[i].StudentName) < strings.ToLower(out[j].StudentName)
	})
	return out, nil
}
