// file: internals/features/school/promotions/service/approval_service_test.go
package service

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	dto "github.com/Yuguda999/school-management-system-sub006/internals/features/school/promotions/dto"
	model "github.com/Yuguda999/school-management-system-sub006/internals/features/school/promotions/model"
	sessionModel "github.com/Yuguda999/school-management-system-sub006/internals/features/school/sessions/model"
	sessionSvc "github.com/Yuguda999/school-management-system-sub006/internals/features/school/sessions/service"
)

type approvalFixture struct {
	db        *gorm.DB
	school    uuid.UUID
	session   uuid.UUID
	jss1      uuid.UUID
	jss2      uuid.UUID
	studentID uuid.UUID
	teacher   uuid.UUID
	admin     uuid.UUID
	svc       *ApprovalService
}

func newApprovalFixture(t *testing.T) *approvalFixture {
	db := newTestDB(t)
	school := uuid.New()
	session := seedSession(t, db, school, "2024/2025", sessionModel.AcademicSessionStatusActive, true)

	jss2 := seedClass(t, db, school, "JSS 2", 2, nil, nil)
	jss1 := seedClass(t, db, school, "JSS 1", 1, &jss2.ClassID, nil)
	student := seedStudent(t, db, school, "Amina Bello")
	enroll(t, db, school, student.StudentID, jss1.ClassID, session.AcademicSessionID)
	addGrade(t, db, school, student.StudentID, session.AcademicSessionID, "Mathematics", 75)

	return &approvalFixture{
		db:        db,
		school:    school,
		session:   session.AcademicSessionID,
		jss1:      jss1.ClassID,
		jss2:      jss2.ClassID,
		studentID: student.StudentID,
		teacher:   uuid.New(),
		admin:     uuid.New(),
		svc:       NewApprovalService(db, nil, nil, nil),
	}
}

func (f *approvalFixture) submit(t *testing.T) *model.PendingPromotionRequestModel {
	t.Helper()
	ent, err := f.svc.Submit(f.school, f.session, nil, f.teacher, []dto.PromotionDecisionDTO{
		{StudentID: f.studentID, Action: dto.PromotionActionPromote, NextClassID: &f.jss2},
	})
	require.NoError(t, err)
	return ent
}

func TestApprovalSubmitStagesWithoutMutating(t *testing.T) {
	f := newApprovalFixture(t)
	ent := f.submit(t)

	assert.Equal(t, model.PromotionRequestStatusPending, ent.PromotionRequestStatus)
	assert.Equal(t, 1, ent.PromotionRequestDecisionCount)
	assert.Equal(t, f.teacher, ent.PromotionRequestSubmittedBy)

	decisions, err := DecodeDecisions(ent)
	require.NoError(t, err)
	require.Len(t, decisions, 1)
	assert.Equal(t, f.studentID, decisions[0].StudentID)

	// Staging must not touch the student's history.
	assertOpenClass(t, f.db, f.studentID, f.jss1)
}

func TestApprovalSubmitRejectsInvalidSet(t *testing.T) {
	f := newApprovalFixture(t)

	_, err := f.svc.Submit(f.school, f.session, nil, f.teacher, []dto.PromotionDecisionDTO{
		{StudentID: uuid.New(), Action: dto.PromotionActionRepeat},
	})
	var vErr *DecisionValidationError
	assert.ErrorAs(t, err, &vErr)

	_, err = f.svc.Submit(f.school, f.session, nil, f.teacher, nil)
	assert.ErrorIs(t, err, ErrEmptyDecisionSet)
}

func TestApprovalApproveRunsDecisions(t *testing.T) {
	f := newApprovalFixture(t)
	ent := f.submit(t)

	result, reviewed, err := f.svc.Approve(f.school, ent.PromotionRequestID, f.admin)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Successful)
	assert.Equal(t, 1, result.Promoted)
	assert.Equal(t, model.PromotionRequestStatusApproved, reviewed.PromotionRequestStatus)
	require.NotNil(t, reviewed.PromotionRequestReviewedBy)
	assert.Equal(t, f.admin, *reviewed.PromotionRequestReviewedBy)
	assert.NotNil(t, reviewed.PromotionRequestReviewedAt)

	assertOpenClass(t, f.db, f.studentID, f.jss2)
}

func TestApprovalApproveTwiceFails(t *testing.T) {
	f := newApprovalFixture(t)
	ent := f.submit(t)

	_, _, err := f.svc.Approve(f.school, ent.PromotionRequestID, f.admin)
	require.NoError(t, err)

	_, _, err = f.svc.Approve(f.school, ent.PromotionRequestID, f.admin)
	assert.ErrorIs(t, err, ErrAlreadyFinalized)

	// The student moved exactly once.
	assert.EqualValues(t, 1, openHistoryCount(t, f.db, f.studentID))
}

// When the executor refuses the whole batch the request must come back to
// the queue, not sit terminally approved with nothing executed.
func TestApprovalApproveRevertsOnExecutorError(t *testing.T) {
	f := newApprovalFixture(t)
	ent := f.submit(t)

	// Session vanishes between submit and approve.
	require.NoError(t, f.db.Delete(&sessionModel.AcademicSessionModel{}, "academic_session_id = ?", f.session).Error)

	_, _, err := f.svc.Approve(f.school, ent.PromotionRequestID, f.admin)
	assert.ErrorIs(t, err, sessionSvc.ErrSessionNotFound)

	reloaded, err := f.svc.Get(f.school, ent.PromotionRequestID)
	require.NoError(t, err)
	assert.Equal(t, model.PromotionRequestStatusPending, reloaded.PromotionRequestStatus)
	assert.Nil(t, reloaded.PromotionRequestReviewedBy)
	assert.Nil(t, reloaded.PromotionRequestReviewedAt)
	assertOpenClass(t, f.db, f.studentID, f.jss1)

	// Once the session is back, the same request approves normally.
	require.NoError(t, f.db.Unscoped().Model(&sessionModel.AcademicSessionModel{}).
		Where("academic_session_id = ?", f.session).
		Update("academic_session_deleted_at", nil).Error)
	result, reviewed, err := f.svc.Approve(f.school, ent.PromotionRequestID, f.admin)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Successful)
	assert.Equal(t, model.PromotionRequestStatusApproved, reviewed.PromotionRequestStatus)
	assertOpenClass(t, f.db, f.studentID, f.jss2)
}

func TestApprovalRejectLeavesRecordsAlone(t *testing.T) {
	f := newApprovalFixture(t)
	ent := f.submit(t)

	reason := "wrong class assignments, resubmit"
	reviewed, err := f.svc.Reject(f.school, ent.PromotionRequestID, f.admin, &reason)
	require.NoError(t, err)

	assert.Equal(t, model.PromotionRequestStatusRejected, reviewed.PromotionRequestStatus)
	require.NotNil(t, reviewed.PromotionRequestRejectionReason)
	assert.Equal(t, reason, *reviewed.PromotionRequestRejectionReason)

	assertOpenClass(t, f.db, f.studentID, f.jss1)

	_, _, err = f.svc.Approve(f.school, ent.PromotionRequestID, f.admin)
	assert.ErrorIs(t, err, ErrAlreadyFinalized)
}

func TestApprovalUnknownRequest(t *testing.T) {
	f := newApprovalFixture(t)

	_, _, err := f.svc.Approve(f.school, uuid.New(), f.admin)
	assert.ErrorIs(t, err, ErrRequestNotFound)

	_, err = f.svc.Reject(f.school, uuid.New(), f.admin, nil)
	assert.ErrorIs(t, err, ErrRequestNotFound)
}

// Two admins race to approve the same request. The guarded status update
// lets exactly one through; the other learns the request is already done.
func TestApprovalConcurrentApprove(t *testing.T) {
	f := newApprovalFixture(t)
	ent := f.submit(t)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _, errs[i] = f.svc.Approve(f.school, ent.PromotionRequestID, uuid.New())
		}(i)
	}
	wg.Wait()

	var won, lost int
	for _, err := range errs {
		switch {
		case err == nil:
			won++
		case assert.ErrorIs(t, err, ErrAlreadyFinalized):
			lost++
		}
	}
	assert.Equal(t, 1, won)
	assert.Equal(t, 1, lost)

	assert.EqualValues(t, 1, openHistoryCount(t, f.db, f.studentID))
	assertOpenClass(t, f.db, f.studentID, f.jss2)
}

func TestApprovalListPending(t *testing.T) {
	f := newApprovalFixture(t)
	first := f.submit(t)

	other := seedStudent(t, f.db, f.school, "Chidi Okafor")
	enroll(t, f.db, f.school, other.StudentID, f.jss1, f.session)
	second, err := f.svc.Submit(f.school, f.session, nil, f.teacher, []dto.PromotionDecisionDTO{
		{StudentID: other.StudentID, Action: dto.PromotionActionRepeat},
	})
	require.NoError(t, err)

	list, total, err := f.svc.ListPending(f.school, nil, 0, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, list, 2)
	// Oldest submission first.
	assert.Equal(t, first.PromotionRequestID, list[0].PromotionRequestID)
	assert.Equal(t, second.PromotionRequestID, list[1].PromotionRequestID)

	// Finalized requests leave the queue.
	_, _, err = f.svc.Approve(f.school, first.PromotionRequestID, f.admin)
	require.NoError(t, err)
	list, total, err = f.svc.ListPending(f.school, &f.session, 0, 20)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, list, 1)
	assert.Equal(t, second.PromotionRequestID, list[0].PromotionRequestID)
}
