// file: internals/features/school/promotions/service/decision_collector_test.go
package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	classModel "github.com/Yuguda999/school-management-system-sub006/internals/features/school/classes/model"
	dto "github.com/Yuguda999/school-management-system-sub006/internals/features/school/promotions/dto"
	sessionModel "github.com/Yuguda999/school-management-system-sub006/internals/features/school/sessions/model"
)

type collectorFixture struct {
	school     uuid.UUID
	session    uuid.UUID
	jss1       *classModel.ClassModel
	jss2       *classModel.ClassModel
	student    *classModel.StudentModel
	candidates []dto.PromotionCandidateDTO
	collector  *DecisionCollector
}

func newCollectorFixture(t *testing.T) *collectorFixture {
	db := newTestDB(t)
	school := uuid.New()
	session := seedSession(t, db, school, "2024/2025", sessionModel.AcademicSessionStatusActive, true)

	jss2 := seedClass(t, db, school, "JSS 2", 2, nil, nil)
	jss1 := seedClass(t, db, school, "JSS 1", 1, &jss2.ClassID, nil)

	student := seedStudent(t, db, school, "Amina Bello")
	enroll(t, db, school, student.StudentID, jss1.ClassID, session.AcademicSessionID)

	builder := NewCandidateBuilder(db, nil)
	candidates, err := builder.Build(school, session.AcademicSessionID, nil)
	require.NoError(t, err)

	return &collectorFixture{
		school:     school,
		session:    session.AcademicSessionID,
		jss1:       jss1,
		jss2:       jss2,
		student:    student,
		candidates: candidates,
		collector:  NewDecisionCollector(db),
	}
}

func TestDecisionCollectorAcceptsValidSet(t *testing.T) {
	f := newCollectorFixture(t)

	out, err := f.collector.Validate(f.school, f.candidates, []dto.PromotionDecisionDTO{
		{StudentID: f.student.StudentID, Action: dto.PromotionActionPromote, NextClassID: &f.jss2.ClassID},
	})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, dto.PromotionActionPromote, out[0].Action)
}

func TestDecisionCollectorEmptySet(t *testing.T) {
	f := newCollectorFixture(t)

	_, err := f.collector.Validate(f.school, f.candidates, nil)
	assert.ErrorIs(t, err, ErrEmptyDecisionSet)
}

func TestDecisionCollectorUnknownStudent(t *testing.T) {
	f := newCollectorFixture(t)

	_, err := f.collector.Validate(f.school, f.candidates, []dto.PromotionDecisionDTO{
		{StudentID: uuid.New(), Action: dto.PromotionActionRepeat},
	})
	var vErr *DecisionValidationError
	require.ErrorAs(t, err, &vErr)
	require.Len(t, vErr.Issues, 1)
	assert.Equal(t, IssueUnknownStudent, vErr.Issues[0].Code)
}

func TestDecisionCollectorMissingTargetClass(t *testing.T) {
	f := newCollectorFixture(t)

	_, err := f.collector.Validate(f.school, f.candidates, []dto.PromotionDecisionDTO{
		{StudentID: f.student.StudentID, Action: dto.PromotionActionPromote}, // no next_class_id
	})
	var vErr *DecisionValidationError
	require.ErrorAs(t, err, &vErr)
	require.Len(t, vErr.Issues, 1)
	assert.Equal(t, IssueMissingTargetClass, vErr.Issues[0].Code)
}

func TestDecisionCollectorCollectsAllIssues(t *testing.T) {
	f := newCollectorFixture(t)
	ghost := uuid.New()
	badClass := uuid.New()

	_, err := f.collector.Validate(f.school, f.candidates, []dto.PromotionDecisionDTO{
		{StudentID: ghost, Action: dto.PromotionActionRepeat},
		{StudentID: f.student.StudentID, Action: dto.PromotionActionTransfer, NextClassID: &badClass},
	})
	var vErr *DecisionValidationError
	require.ErrorAs(t, err, &vErr)
	require.Len(t, vErr.Issues, 2)

	codes := []string{vErr.Issues[0].Code, vErr.Issues[1].Code}
	assert.Contains(t, codes, IssueUnknownStudent)
	assert.Contains(t, codes, IssueUnknownTargetClass)
}

func TestDecisionCollectorDuplicateDecision(t *testing.T) {
	f := newCollectorFixture(t)

	_, err := f.collector.Validate(f.school, f.candidates, []dto.PromotionDecisionDTO{
		{StudentID: f.student.StudentID, Action: dto.PromotionActionRepeat},
		{StudentID: f.student.StudentID, Action: dto.PromotionActionPromote, NextClassID: &f.jss2.ClassID},
	})
	var vErr *DecisionValidationError
	require.ErrorAs(t, err, &vErr)
	require.Len(t, vErr.Issues, 1)
	assert.Equal(t, IssueDuplicateDecision, vErr.Issues[0].Code)
}

// The evaluator's suggestion is a default: graduating a student whose class
// still has a next class is a human judgment call and must pass.
func TestDecisionCollectorGraduateOverrideAllowed(t *testing.T) {
	f := newCollectorFixture(t)

	out, err := f.collector.Validate(f.school, f.candidates, []dto.PromotionDecisionDTO{
		{StudentID: f.student.StudentID, Action: dto.PromotionActionGraduate},
	})
	require.NoError(t, err)
	require.Len(t, out, 1)
}
