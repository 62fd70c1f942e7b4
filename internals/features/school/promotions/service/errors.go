// file: internals/features/school/promotions/service/errors.go
package service

import (
	"errors"

	dto "github.com/Yuguda999/school-management-system-sub006/internals/features/school/promotions/dto"
)

// Structural errors abort the whole call before any mutation. Per-student
// execution failures are never surfaced as errors here; they ride inside
// the bulk result instead.
var (
	ErrEmptyDecisionSet = errors.New("decision set is empty")
	ErrAlreadyFinalized = errors.New("promotion request is already finalized")
	ErrRequestNotFound  = errors.New("promotion request not found")
)

// Decision validation issue codes (collected, not fail-fast).
const (
	IssueUnknownStudent     = "UNKNOWN_STUDENT"
	IssueMissingTargetClass = "MISSING_TARGET_CLASS"
	IssueUnknownTargetClass = "UNKNOWN_TARGET_CLASS"
	IssueDuplicateDecision  = "DUPLICATE_DECISION"
)

// DecisionValidationError carries every problem found in a decision set so
// the caller can fix all of them from a single response.
type DecisionValidationError struct {
	Issues []dto.DecisionIssueDTO
}

func (e *DecisionValidationError) Error() string {
	if len(e.Issues) == 1 {
		return "decision set invalid: " + e.Issues[0].Message
	}
	return "decision set invalid"
}
