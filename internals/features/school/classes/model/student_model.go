// file: internals/features/school/classes/model/student_model.go
package model

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================
   Constants
========================= */

const (
	StudentStatusActive      = "active"
	StudentStatusGraduated   = "graduated"
	StudentStatusTransferred = "transferred"
	StudentStatusWithdrawn   = "withdrawn"
)

/* =========================
   Model
========================= */

type StudentModel struct {
	// PK & Tenant
	StudentID       uuid.UUID `gorm:"type:uuid;primaryKey;column:student_id" json:"student_id"`
	StudentSchoolID uuid.UUID `gorm:"type:uuid;not null;index;column:student_school_id" json:"student_school_id"`

	StudentAdmissionNo string `gorm:"type:varchar(32);not null;column:student_admission_no" json:"student_admission_no"`
	StudentFullName    string `gorm:"type:text;not null;column:student_full_name" json:"student_full_name"`

	StudentStatus string `gorm:"type:text;not null;default:'active';column:student_status" json:"student_status"`

	// Audit / soft delete
	StudentCreatedAt time.Time      `gorm:"not null;autoCreateTime;column:student_created_at" json:"student_created_at"`
	StudentUpdatedAt time.Time      `gorm:"not null;autoUpdateTime;column:student_updated_at" json:"student_updated_at"`
	StudentDeletedAt gorm.DeletedAt `gorm:"column:student_deleted_at;index" json:"student_deleted_at,omitempty"`
}

func (StudentModel) TableName() string { return "students" }

func (m *StudentModel) BeforeCreate(tx *gorm.DB) error {
	if m.StudentID == uuid.Nil {
		m.StudentID = uuid.New()
	}
	return nil
}

func (m *StudentModel) BeforeSave(tx *gorm.DB) error {
	m.StudentFullName = strings.TrimSpace(m.StudentFullName)
	m.StudentAdmissionNo = strings.TrimSpace(m.StudentAdmissionNo)
	if m.StudentFullName == "" {
		return errors.New("student_full_name is required")
	}
	switch m.StudentStatus {
	case "":
		m.StudentStatus = StudentStatusActive
	case StudentStatusActive, StudentStatusGraduated, StudentStatusTransferred, StudentStatusWithdrawn:
	default:
		return errors.New("invalid student_status")
	}
	return nil
}
