// file: internals/features/school/grades/service/grading_service_test.go
package service

import (
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	model "github.com/Yuguda999/school-management-system-sub006/internals/features/school/grades/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.StudentGradeModel{}))
	return db
}

func addGrade(t *testing.T, db *gorm.DB, schoolID, studentID, sessionID uuid.UUID, subject string, score float64) {
	t.Helper()
	require.NoError(t, db.Create(&model.StudentGradeModel{
		StudentGradeSchoolID:          schoolID,
		StudentGradeStudentID:         studentID,
		StudentGradeAcademicSessionID: sessionID,
		StudentGradeSubject:           subject,
		StudentGradeScore:             score,
	}).Error)
}

func TestSessionAverage(t *testing.T) {
	db := newTestDB(t)
	svc := NewGradingService()
	school, student, session := uuid.New(), uuid.New(), uuid.New()

	addGrade(t, db, school, student, session, "Mathematics", 80)
	addGrade(t, db, school, student, session, "English", 60)
	addGrade(t, db, school, student, session, "Basic Science", 70)

	avg, err := svc.SessionAverage(db, school, student, session)
	require.NoError(t, err)
	require.NotNil(t, avg)
	assert.InDelta(t, 70.0, *avg, 0.001)
}

// No grade rows at all is a distinct state from an average of zero: the
// evaluator treats it as "no data" and withholds eligibility.
func TestSessionAverageNilWithoutGrades(t *testing.T) {
	db := newTestDB(t)
	svc := NewGradingService()

	avg, err := svc.SessionAverage(db, uuid.New(), uuid.New(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, avg)
}

func TestSessionAverageScopedToSessionAndStudent(t *testing.T) {
	db := newTestDB(t)
	svc := NewGradingService()
	school, student, session := uuid.New(), uuid.New(), uuid.New()

	addGrade(t, db, school, student, session, "Mathematics", 40)
	addGrade(t, db, school, student, uuid.New(), "Mathematics", 95)   // other session
	addGrade(t, db, school, uuid.New(), session, "Mathematics", 95)   // other student
	addGrade(t, db, uuid.New(), student, session, "Mathematics", 95)  // other school

	avg, err := svc.SessionAverage(db, school, student, session)
	require.NoError(t, err)
	require.NotNil(t, avg)
	assert.InDelta(t, 40.0, *avg, 0.001)
}

func TestGradeValidation(t *testing.T) {
	db := newTestDB(t)
	school, student, session := uuid.New(), uuid.New(), uuid.New()

	err := db.Create(&model.StudentGradeModel{
		StudentGradeSchoolID:          school,
		StudentGradeStudentID:         student,
		StudentGradeAcademicSessionID: session,
		StudentGradeSubject:           "Mathematics",
		StudentGradeScore:             120,
	}).Error
	assert.Error(t, err)

	err = db.Create(&model.StudentGradeModel{
		StudentGradeSchoolID:          school,
		StudentGradeStudentID:         student,
		StudentGradeAcademicSessionID: session,
		StudentGradeSubject:           "   ",
		StudentGradeScore:             50,
	}).Error
	assert.Error(t, err)
}
