// file: internals/features/school/promotions/service/candidate_builder_test.go
package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dto "github.com/Yuguda999/school-management-system-sub006/internals/features/school/promotions/dto"
	sessionModel "github.com/Yuguda999/school-management-system-sub006/internals/features/school/sessions/model"
)

func TestCandidateBuilderSuggestionsAndOrder(t *testing.T) {
	db := newTestDB(t)
	school := uuid.New()
	session := seedSession(t, db, school, "2024/2025", sessionModel.AcademicSessionStatusActive, true)

	// JSS2 <- JSS1, SSS3 terminal
	jss2 := seedClass(t, db, school, "JSS 2", 2, nil, nil)
	jss1 := seedClass(t, db, school, "JSS 1", 1, &jss2.ClassID, nil)
	sss3 := seedClass(t, db, school, "SSS 3", 6, nil, nil)

	passer := seedStudent(t, db, school, "Amina Bello")
	repeater := seedStudent(t, db, school, "Chidi Okafor")
	finalist := seedStudent(t, db, school, "Zainab Musa")
	ungraded := seedStudent(t, db, school, "Bola Adeyemi")

	enroll(t, db, school, passer.StudentID, jss1.ClassID, session.AcademicSessionID)
	enroll(t, db, school, repeater.StudentID, jss1.ClassID, session.AcademicSessionID)
	enroll(t, db, school, finalist.StudentID, sss3.ClassID, session.AcademicSessionID)
	enroll(t, db, school, ungraded.StudentID, jss1.ClassID, session.AcademicSessionID)

	addGrade(t, db, school, passer.StudentID, session.AcademicSessionID, "Mathematics", 80)
	addGrade(t, db, school, passer.StudentID, session.AcademicSessionID, "English", 60)
	addGrade(t, db, school, repeater.StudentID, session.AcademicSessionID, "Mathematics", 30)
	addGrade(t, db, school, finalist.StudentID, session.AcademicSessionID, "Mathematics", 90)

	builder := NewCandidateBuilder(db, nil)
	candidates, err := builder.Build(school, session.AcademicSessionID, nil)
	require.NoError(t, err)
	require.Len(t, candidates, 4)

	// Stable order: class name, then student name.
	assert.Equal(t, "Amina Bello", candidates[0].StudentName)
	assert.Equal(t, "Bola Adeyemi", candidates[1].StudentName)
	assert.Equal(t, "Chidi Okafor", candidates[2].StudentName)
	assert.Equal(t, "Zainab Musa", candidates[3].StudentName)

	byName := map[string]dto.PromotionCandidateDTO{}
	for _, c := range candidates {
		byName[c.StudentName] = c
	}

	pass := byName["Amina Bello"]
	assert.Equal(t, dto.PromotionActionPromote, pass.SuggestedAction)
	require.NotNil(t, pass.SessionAverage)
	assert.InDelta(t, 70.0, *pass.SessionAverage, 0.001)
	require.NotNil(t, pass.NextClassID)
	assert.Equal(t, jss2.ClassID, *pass.NextClassID)
	assert.True(t, pass.PromotionEligible)

	rep := byName["Chidi Okafor"]
	assert.Equal(t, dto.PromotionActionRepeat, rep.SuggestedAction)
	assert.Nil(t, rep.NextClassID)

	fin := byName["Zainab Musa"]
	assert.Equal(t, dto.PromotionActionGraduate, fin.SuggestedAction)
	assert.Nil(t, fin.NextClassID)

	// Zero grade rows must not error: promote suggestion, flagged.
	ung := byName["Bola Adeyemi"]
	assert.Nil(t, ung.SessionAverage)
	assert.Equal(t, dto.PromotionActionPromote, ung.SuggestedAction)
	assert.False(t, ung.PromotionEligible)
}

func TestCandidateBuilderClassFilter(t *testing.T) {
	db := newTestDB(t)
	school := uuid.New()
	session := seedSession(t, db, school, "2024/2025", sessionModel.AcademicSessionStatusActive, true)

	a := seedClass(t, db, school, "JSS 1", 1, nil, nil)
	b := seedClass(t, db, school, "JSS 2", 2, nil, nil)

	s1 := seedStudent(t, db, school, "Student One")
	s2 := seedStudent(t, db, school, "Student Two")
	enroll(t, db, school, s1.StudentID, a.ClassID, session.AcademicSessionID)
	enroll(t, db, school, s2.StudentID, b.ClassID, session.AcademicSessionID)

	builder := NewCandidateBuilder(db, nil)
	candidates, err := builder.Build(school, session.AcademicSessionID, &a.ClassID)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, s1.StudentID, candidates[0].StudentID)
}

func TestCandidateBuilderSkipsClosedAndInactive(t *testing.T) {
	db := newTestDB(t)
	school := uuid.New()
	session := seedSession(t, db, school, "2024/2025", sessionModel.AcademicSessionStatusActive, true)
	cls := seedClass(t, db, school, "JSS 1", 1, nil, nil)

	gone := seedStudent(t, db, school, "Graduated Already")
	require.NoError(t, db.Model(gone).Update("student_status", "graduated").Error)
	enroll(t, db, school, gone.StudentID, cls.ClassID, session.AcademicSessionID)

	closed := seedStudent(t, db, school, "Closed Row")
	h := enroll(t, db, school, closed.StudentID, cls.ClassID, session.AcademicSessionID)
	require.NoError(t, db.Model(h).Update("student_class_history_ended_at", h.StudentClassHistoryStartedAt).Error)

	builder := NewCandidateBuilder(db, nil)
	candidates, err := builder.Build(school, session.AcademicSessionID, nil)
	require.NoError(t, err)
	assert.Empty(t, candidates)
}
