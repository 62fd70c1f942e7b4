// file: internals/features/school/classes/model/student_class_history_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StudentClassHistoryModel records which class a student sat in during one
// enrollment span. An open row (ended_at IS NULL) is the student's active
// enrollment; the bulk promotion executor closes it and opens the next one.
type StudentClassHistoryModel struct {
	// PK & Tenant
	StudentClassHistoryID       uuid.UUID `gorm:"type:uuid;primaryKey;column:student_class_history_id" json:"student_class_history_id"`
	StudentClassHistorySchoolID uuid.UUID `gorm:"type:uuid;not null;index;column:student_class_history_school_id" json:"student_class_history_school_id"`

	StudentClassHistoryStudentID uuid.UUID `gorm:"type:uuid;not null;index;column:student_class_history_student_id" json:"student_class_history_student_id"`
	StudentClassHistoryClassID   uuid.UUID `gorm:"type:uuid;not null;index;column:student_class_history_class_id" json:"student_class_history_class_id"`

	// NULL when the row was opened by a promotion that ran before the next
	// session existed; back-filled at session rollover.
	StudentClassHistoryAcademicSessionID *uuid.UUID `gorm:"type:uuid;index;column:student_class_history_academic_session_id" json:"student_class_history_academic_session_id,omitempty"`

	StudentClassHistoryStartedAt time.Time  `gorm:"not null;column:student_class_history_started_at" json:"student_class_history_started_at"`
	StudentClassHistoryEndedAt   *time.Time `gorm:"column:student_class_history_ended_at" json:"student_class_history_ended_at,omitempty"`

	// Audit / soft delete
	StudentClassHistoryCreatedAt time.Time      `gorm:"not null;autoCreateTime;column:student_class_history_created_at" json:"student_class_history_created_at"`
	StudentClassHistoryUpdatedAt time.Time      `gorm:"not null;autoUpdateTime;column:student_class_history_updated_at" json:"student_class_history_updated_at"`
	StudentClassHistoryDeletedAt gorm.DeletedAt `gorm:"column:student_class_history_deleted_at;index" json:"student_class_history_deleted_at,omitempty"`
}

func (StudentClassHistoryModel) TableName() string { return "student_class_histories" }

func (m *StudentClassHistoryModel) BeforeCreate(tx *gorm.DB) error {
	if m.StudentClassHistoryID == uuid.Nil {
		m.StudentClassHistoryID = uuid.New()
	}
	if m.StudentClassHistoryStartedAt.IsZero() {
		m.StudentClassHistoryStartedAt = time.Now()
	}
	return nil
}
