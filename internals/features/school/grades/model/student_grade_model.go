// file: internals/features/school/grades/model/student_grade_model.go
package model

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StudentGradeModel is one subject score for a student in one session.
// The promotion engine only ever reads these through the session average.
type StudentGradeModel struct {
	// PK & Tenant
	StudentGradeID       uuid.UUID `gorm:"type:uuid;primaryKey;column:student_grade_id" json:"student_grade_id"`
	StudentGradeSchoolID uuid.UUID `gorm:"type:uuid;not null;index;column:student_grade_school_id" json:"student_grade_school_id"`

	StudentGradeStudentID         uuid.UUID `gorm:"type:uuid;not null;index;column:student_grade_student_id" json:"student_grade_student_id"`
	StudentGradeAcademicSessionID uuid.UUID `gorm:"type:uuid;not null;index;column:student_grade_academic_session_id" json:"student_grade_academic_session_id"`

	StudentGradeSubject string  `gorm:"type:text;not null;column:student_grade_subject" json:"student_grade_subject"`
	StudentGradeScore   float64 `gorm:"type:numeric(5,2);not null;column:student_grade_score" json:"student_grade_score"`

	// Audit / soft delete
	StudentGradeCreatedAt time.Time      `gorm:"not null;autoCreateTime;column:student_grade_created_at" json:"student_grade_created_at"`
	StudentGradeUpdatedAt time.Time      `gorm:"not null;autoUpdateTime;column:student_grade_updated_at" json:"student_grade_updated_at"`
	StudentGradeDeletedAt gorm.DeletedAt `gorm:"column:student_grade_deleted_at;index" json:"student_grade_deleted_at,omitempty"`
}

func (StudentGradeModel) TableName() string { return "student_grades" }

func (m *StudentGradeModel) BeforeCreate(tx *gorm.DB) error {
	if m.StudentGradeID == uuid.Nil {
		m.StudentGradeID = uuid.New()
	}
	return nil
}

func (m *StudentGradeModel) BeforeSave(tx *gorm.DB) error {
	m.StudentGradeSubject = strings.TrimSpace(m.StudentGradeSubject)
	if m.StudentGradeSubject == "" {
		return errors.New("student_grade_subject is required")
	}
	if m.StudentGradeScore < 0 || m.StudentGradeScore > 100 {
		return errors.New("student_grade_score must be between 0 and 100")
	}
	return nil
}
