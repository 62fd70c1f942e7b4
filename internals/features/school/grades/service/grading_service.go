// file: internals/features/school/grades/service/grading_service.go
package service

import (
	"gorm.io/gorm"

	"github.com/google/uuid"
)

// GradingService answers the one question the promotion engine asks of the
// gradebook: a student's average score for a session.
type GradingService interface {
	SessionAverage(tx *gorm.DB, schoolID, studentID, sessionID uuid.UUID) (*float64, error)
}

type gradingSvc struct{}

func NewGradingService() GradingService {
	return &gradingSvc{}
}

// SessionAverage returns the mean of all grade rows for the student in the
// session, or nil when the student has no grades recorded at all.
func (s *gradingSvc) SessionAverage(tx *gorm.DB, schoolID, studentID, sessionID uuid.UUID) (*float64, error) {
	var row struct {
		Avg *float64
	}
	err := tx.Table("student_grades").
		Select("AVG(student_grade_score) AS avg").
		Where("student_grade_school_id = ?", schoolID).
		Where("student_grade_student_id = ?", studentID).
		Where("student_grade_academic_session_id = ?", sessionID).
		Where("student_grade_deleted_at IS NULL").
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return row.Avg, nil
}
