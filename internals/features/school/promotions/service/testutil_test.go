// file: internals/features/school/promotions/service/testutil_test.go
package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	database "github.com/Yuguda999/school-management-system-sub006/internals/databases"
	classModel "github.com/Yuguda999/school-management-system-sub006/internals/features/school/classes/model"
	gradeModel "github.com/Yuguda999/school-management-system-sub006/internals/features/school/grades/model"
	promoModel "github.com/Yuguda999/school-management-system-sub006/internals/features/school/promotions/model"
	sessionModel "github.com/Yuguda999/school-management-system-sub006/internals/features/school/sessions/model"
)

// newTestDB opens a private in-memory database per test. The shared-cache
// name keeps every pooled connection on the same database; the busy
// timeout keeps the concurrency tests from tripping over SQLite's
// single-writer lock.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=busy_timeout(10000)", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)

	// One connection serializes writers; the guarded-update semantics under
	// test decide winners at the SQL level, not the pool level.
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(1)
	}

	require.NoError(t, db.AutoMigrate(
		&sessionModel.AcademicSessionModel{},
		&sessionModel.TermModel{},
		&classModel.ClassModel{},
		&classModel.StudentModel{},
		&classModel.StudentClassHistoryModel{},
		&gradeModel.StudentGradeModel{},
		&promoModel.PendingPromotionRequestModel{},
	))
	require.NoError(t, database.EnsureConstraints(db))
	return db
}

func seedSession(t *testing.T, db *gorm.DB, schoolID uuid.UUID, name, status string, current bool) *sessionModel.AcademicSessionModel {
	t.Helper()
	ent := sessionModel.AcademicSessionModel{
		AcademicSessionSchoolID:  schoolID,
		AcademicSessionName:      name,
		AcademicSessionStartDate: time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC),
		AcademicSessionEndDate:   time.Date(2025, 7, 31, 0, 0, 0, 0, time.UTC),
		AcademicSessionStatus:    status,
		AcademicSessionTermCount: 3,
		AcademicSessionIsCurrent: current,
	}
	require.NoError(t, db.Create(&ent).Error)
	return &ent
}

func seedClass(t *testing.T, db *gorm.DB, schoolID uuid.UUID, name string, level int, promotesTo *uuid.UUID, threshold *float64) *classModel.ClassModel {
	t.Helper()
	ent := classModel.ClassModel{
		ClassSchoolID:      schoolID,
		ClassName:          name,
		ClassLevel:         level,
		ClassPromotesToID:  promotesTo,
		ClassPassThreshold: threshold,
	}
	require.NoError(t, db.Create(&ent).Error)
	return &ent
}

func seedStudent(t *testing.T, db *gorm.DB, schoolID uuid.UUID, name string) *classModel.StudentModel {
	t.Helper()
	ent := classModel.StudentModel{
		StudentSchoolID:    schoolID,
		StudentAdmissionNo: "ADM-" + uuid.NewString()[:8],
		StudentFullName:    name,
	}
	require.NoError(t, db.Create(&ent).Error)
	return &ent
}

func enroll(t *testing.T, db *gorm.DB, schoolID, studentID, classID, sessionID uuid.UUID) *classModel.StudentClassHistoryModel {
	t.Helper()
	sid := sessionID
	ent := classModel.StudentClassHistoryModel{
		StudentClassHistorySchoolID:          schoolID,
		StudentClassHistoryStudentID:         studentID,
		StudentClassHistoryClassID:           classID,
		StudentClassHistoryAcademicSessionID: &sid,
		StudentClassHistoryStartedAt:         time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, db.Create(&ent).Error)
	return &ent
}

func addGrade(t *testing.T, db *gorm.DB, schoolID, studentID, sessionID uuid.UUID, subject string, score float64) {
	t.Helper()
	require.NoError(t, db.Create(&gradeModel.StudentGradeModel{
		StudentGradeSchoolID:          schoolID,
		StudentGradeStudentID:         studentID,
		StudentGradeAcademicSessionID: sessionID,
		StudentGradeSubject:           subject,
		StudentGradeScore:             score,
	}).Error)
}

func openHistoryCount(t *testing.T, db *gorm.DB, studentID uuid.UUID) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&classModel.StudentClassHistoryModel{}).
		Where("student_class_history_student_id = ?", studentID).
		Where("student_class_history_ended_at IS NULL").
		Count(&n).Error)
	return n
}
