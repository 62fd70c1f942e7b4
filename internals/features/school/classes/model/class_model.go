// file: internals/features/school/classes/model/class_model.go
package model

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClassModel struct {
	// PK & Tenant
	ClassID       uuid.UUID `gorm:"type:uuid;primaryKey;column:class_id" json:"class_id"`
	ClassSchoolID uuid.UUID `gorm:"type:uuid;not null;index;column:class_school_id" json:"class_school_id"`

	ClassName  string `gorm:"type:text;not null;column:class_name" json:"class_name"`
	ClassLevel int    `gorm:"type:smallint;not null;default:1;column:class_level" json:"class_level"`

	// Progression map: the class a student moves into on promotion.
	// NULL marks a terminal (graduating) class.
	ClassPromotesToID *uuid.UUID `gorm:"type:uuid;column:class_promotes_to_id" json:"class_promotes_to_id,omitempty"`

	// Per-class pass mark override; NULL falls back to the school default.
	ClassPassThreshold *float64 `gorm:"type:numeric(5,2);column:class_pass_threshold" json:"class_pass_threshold,omitempty"`

	// Audit / soft delete
	ClassCreatedAt time.Time      `gorm:"not null;autoCreateTime;column:class_created_at" json:"class_created_at"`
	ClassUpdatedAt time.Time      `gorm:"not null;autoUpdateTime;column:class_updated_at" json:"class_updated_at"`
	ClassDeletedAt gorm.DeletedAt `gorm:"column:class_deleted_at;index" json:"class_deleted_at,omitempty"`
}

func (ClassModel) TableName() string { return "classes" }

func (m *ClassModel) BeforeCreate(tx *gorm.DB) error {
	if m.ClassID == uuid.Nil {
		m.ClassID = uuid.New()
	}
	return nil
}

func (m *ClassModel) BeforeSave(tx *gorm.DB) error {
	m.ClassName = strings.TrimSpace(m.ClassName)
	if m.ClassName == "" {
		return errors.New("class_name is required")
	}
	if m.ClassPassThreshold != nil && (*m.ClassPassThreshold < 0 || *m.ClassPassThreshold > 100) {
		return errors.New("class_pass_threshold must be between 0 and 100")
	}
	// A class never promotes into itself
	if m.ClassPromotesToID != nil && *m.ClassPromotesToID == m.ClassID {
		return errors.New("class_promotes_to_id must not reference the class itself")
	}
	return nil
}
