// file: internals/features/school/promotions/service/eligibility.go
package service

import (
	dto "github.com/Yuguda999/school-management-system-sub006/internals/features/school/promotions/dto"
)

// EvaluateEligibility is the pure year-end rule: given a student's session
// average (nil = no grades recorded), the class pass threshold, and whether
// the class has a configured next class, it suggests an action.
//
//   - terminal class (no next class): graduate, regardless of average
//   - nil average: promote on benefit of the doubt, but flagged ineligible
//     so UIs can surface "insufficient data"
//   - average >= threshold: promote
//   - average < threshold: repeat
func EvaluateEligibility(sessionAverage *float64, passThreshold float64, hasNextClass bool) (action string, promotionEligible bool) {
	if !hasNextClass {
		return dto.PromotionActionGraduate, sessionAverage != nil
	}
	if sessionAverage == nil {
		return dto.PromotionActionPromote, false
	}
	if *sessionAverage >= passThreshold {
		return dto.PromotionActionPromote, true
	}
	return dto.PromotionActionRepeat, true
}
