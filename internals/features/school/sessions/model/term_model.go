// file: internals/features/school/sessions/model/term_model.go
package model

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TermModel struct {
	// PK & Tenant
	TermID       uuid.UUID `gorm:"type:uuid;primaryKey;column:term_id" json:"term_id"`
	TermSchoolID uuid.UUID `gorm:"type:uuid;not null;index;column:term_school_id" json:"term_school_id"`

	// Owning session
	TermAcademicSessionID uuid.UUID `gorm:"type:uuid;not null;index;column:term_academic_session_id" json:"term_academic_session_id"`

	// 1..term_count within the session
	TermSequence int    `gorm:"type:smallint;not null;column:term_sequence" json:"term_sequence"`
	TermName     string `gorm:"type:text;not null;column:term_name" json:"term_name"`

	TermStartDate time.Time `gorm:"not null;column:term_start_date" json:"term_start_date"`
	TermEndDate   time.Time `gorm:"not null;column:term_end_date" json:"term_end_date"`

	// Current flag is scoped within the owning session
	TermIsCurrent bool `gorm:"not null;default:false;column:term_is_current" json:"term_is_current"`

	// Audit / soft delete
	TermCreatedAt time.Time      `gorm:"not null;autoCreateTime;column:term_created_at" json:"term_created_at"`
	TermUpdatedAt time.Time      `gorm:"not null;autoUpdateTime;column:term_updated_at" json:"term_updated_at"`
	TermDeletedAt gorm.DeletedAt `gorm:"column:term_deleted_at;index" json:"term_deleted_at,omitempty"`
}

func (TermModel) TableName() string { return "academic_terms" }

func (m *TermModel) BeforeCreate(tx *gorm.DB) error {
	if m.TermID == uuid.Nil {
		m.TermID = uuid.New()
	}
	return nil
}

func (m *TermModel) BeforeSave(tx *gorm.DB) error {
	if m.TermEndDate.Before(m.TermStartDate) {
		return errors.New("term_end_date must be >= term_start_date")
	}
	if m.TermSequence < 1 || m.TermSequence > 3 {
		return errors.New("term_sequence must be between 1 and 3")
	}
	m.TermName = strings.TrimSpace(m.TermName)
	return nil
}
