// file: internals/features/school/promotions/service/decision_collector.go
package service

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dto "github.com/Yuguda999/school-management-system-sub006/internals/features/school/promotions/dto"
)

// DecisionCollector validates a caller-supplied decision set against the
// freshly built candidate list for the same session. All problems are
// collected before returning so one response is enough to fix everything.
type DecisionCollector struct {
	DB *gorm.DB
}

func NewDecisionCollector(db *gorm.DB) *DecisionCollector {
	return &DecisionCollector{DB: db}
}

// Validate returns the normalized decision set, or a *DecisionValidationError
// listing every issue. The evaluator's suggestion is a default, not a cage:
// a caller may graduate or transfer any candidate, so actions themselves are
// never rejected, only unknown students and missing/unknown target classes.
func (v *DecisionCollector) Validate(schoolID uuid.UUID, candidates []dto.PromotionCandidateDTO, decisions []dto.PromotionDecisionDTO) ([]dto.PromotionDecisionDTO, error) {
	if len(decisions) == 0 {
		return nil, ErrEmptyDecisionSet
	}

	candidateByStudent := make(map[uuid.UUID]dto.PromotionCandidateDTO, len(candidates))
	for _, c := range candidates {
		candidateByStudent[c.StudentID] = c
	}

	classIDs, err := v.validClassIDs(schoolID)
	if err != nil {
		return nil, err
	}

	var issues []dto.DecisionIssueDTO
	seen := make(map[uuid.UUID]bool, len(decisions))
	out := make([]dto.PromotionDecisionDTO, 0, len(decisions))

	for _, d := range decisions {
		d.Normalize()

		if seen[d.StudentID] {
			issues = append(issues, dto.DecisionIssueDTO{
				StudentID: d.StudentID,
				Code:      IssueDuplicateDecision,
				Message:   fmt.Sprintf("more than one decision for student %s", d.StudentID),
			})
			continue
		}
		seen[d.StudentID] = true

		if _, ok := candidateByStudent[d.StudentID]; !ok {
			issues = append(issues, dto.DecisionIssueDTO{
				StudentID: d.StudentID,
				Code:      IssueUnknownStudent,
				Message:   fmt.Sprintf("student %s is not a promotion candidate for this session", d.StudentID),
			})
			continue
		}

		if dto.ActionNeedsTargetClass(d.Action) {
			if d.NextClassID == nil {
				issues = append(issues, dto.DecisionIssueDTO{
					StudentID: d.StudentID,
					Code:      IssueMissingTargetClass,
					Message:   fmt.Sprintf("action %q requires next_class_id", d.Action),
				})
				continue
			}
			if !classIDs[*d.NextClassID] {
				issues = append(issues, dto.DecisionIssueDTO{
					StudentID: d.StudentID,
					Code:      IssueUnknownTargetClass,
					Message:   fmt.Sprintf("next_class_id %s is not a class of this school", *d.NextClassID),
				})
				continue
			}
		}

		out = append(out, d)
	}

	if len(issues) > 0 {
		return nil, &DecisionValidationError{Issues: issues}
	}
	return out, nil
}

func (v *DecisionCollector) validClassIDs(schoolID uuid.UUID) (map[uuid.UUID]bool, error) {
	var ids []uuid.UUID
	if err := v.DB.Table("classes").
		Where("class_school_id = ? AND class_deleted_at IS NULL", schoolID).
		Pluck("class_id", &ids).Error; err != nil {
		return nil, err
	}
	set := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}
