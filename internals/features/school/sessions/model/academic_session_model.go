// file: internals/features/school/sessions/model/academic_session_model.go
package model

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================
   Status constants
========================= */

const (
	AcademicSessionStatusUpcoming  = "upcoming"
	AcademicSessionStatusActive    = "active"
	AcademicSessionStatusCompleted = "completed"
	AcademicSessionStatusArchived  = "archived"
)

// AcademicSessionStatusOrder drives the forward-only lifecycle check.
var AcademicSessionStatusOrder = map[string]int{
	AcademicSessionStatusUpcoming:  0,
	AcademicSessionStatusActive:    1,
	AcademicSessionStatusCompleted: 2,
	AcademicSessionStatusArchived:  3,
}

/* =========================
   Model
========================= */

type AcademicSessionModel struct {
	// PK & Tenant
	AcademicSessionID       uuid.UUID `gorm:"type:uuid;primaryKey;column:academic_session_id" json:"academic_session_id"`
	AcademicSessionSchoolID uuid.UUID `gorm:"type:uuid;not null;index;column:academic_session_school_id" json:"academic_session_school_id"`

	// Identity, e.g. "2024/2025"
	AcademicSessionName string `gorm:"type:text;not null;column:academic_session_name" json:"academic_session_name"`

	AcademicSessionStartDate time.Time `gorm:"not null;column:academic_session_start_date" json:"academic_session_start_date"`
	AcademicSessionEndDate   time.Time `gorm:"not null;column:academic_session_end_date" json:"academic_session_end_date"`

	// Lifecycle: upcoming -> active -> completed -> archived, forward only
	AcademicSessionStatus string `gorm:"type:text;not null;default:'upcoming';column:academic_session_status" json:"academic_session_status"`

	// 2 or 3 terms per session
	AcademicSessionTermCount int `gorm:"type:smallint;not null;default:3;column:academic_session_term_count" json:"academic_session_term_count"`

	// At most one current session per school (partial unique index in DB)
	AcademicSessionIsCurrent bool `gorm:"not null;default:false;column:academic_session_is_current" json:"academic_session_is_current"`

	// Set by the bulk executor once every decision in a run succeeded
	AcademicSessionPromotionCompleted bool `gorm:"not null;default:false;column:academic_session_promotion_completed" json:"academic_session_promotion_completed"`

	// Audit / soft delete
	AcademicSessionCreatedAt time.Time      `gorm:"not null;autoCreateTime;column:academic_session_created_at" json:"academic_session_created_at"`
	AcademicSessionUpdatedAt time.Time      `gorm:"not null;autoUpdateTime;column:academic_session_updated_at" json:"academic_session_updated_at"`
	AcademicSessionDeletedAt gorm.DeletedAt `gorm:"column:academic_session_deleted_at;index" json:"academic_session_deleted_at,omitempty"`
}

func (AcademicSessionModel) TableName() string { return "academic_sessions" }

/* =========================
   Hooks
========================= */

func (m *AcademicSessionModel) BeforeCreate(tx *gorm.DB) error {
	if m.AcademicSessionID == uuid.Nil {
		m.AcademicSessionID = uuid.New()
	}
	return nil
}

func (m *AcademicSessionModel) BeforeSave(tx *gorm.DB) error {
	// Mirror CHECK: end >= start
	if m.AcademicSessionEndDate.Before(m.AcademicSessionStartDate) {
		return errors.New("academic_session_end_date must be >= academic_session_start_date")
	}

	m.AcademicSessionName = strings.TrimSpace(m.AcademicSessionName)

	if m.AcademicSessionTermCount == 0 {
		m.AcademicSessionTermCount = 3
	}
	if m.AcademicSessionTermCount != 2 && m.AcademicSessionTermCount != 3 {
		return errors.New("academic_session_term_count must be 2 or 3")
	}

	if m.AcademicSessionStatus == "" {
		m.AcademicSessionStatus = AcademicSessionStatusUpcoming
	}
	if _, ok := AcademicSessionStatusOrder[m.AcademicSessionStatus]; !ok {
		return errors.New("invalid academic_session_status")
	}
	return nil
}
