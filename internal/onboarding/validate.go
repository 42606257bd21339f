// ==============================================================================
// DRAFT VALIDATION - internal/onboarding/validate.go
// ==============================================================================
package onboarding

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Validate returns the field-level violations for one step of the draft.
// The organization name is the only hard-required field in the workflow; all
// other fields may stay empty so partial drafts always validate. Pure
// function of draft and step.
func Validate(d *Draft, step int) []FieldViolation {
	var violations []FieldViolation

	switch step {
	case StepBasicInfo, StepReview:
		if strings.TrimSpace(d.Profile.OrganizationName) == "" {
			violations = append(violations, FieldViolation{
				Field:   string(FieldOrganizationName),
				Message: "organization name is required",
			})
		}
	case StepUBOs:
		for i, ubo := range d.UBOs {
			if ubo.OwnershipPercentage.IsNegative() || ubo.OwnershipPercentage.GreaterThan(hundred) {
				violations = append(violations, FieldViolation{
					Field:   fmt.Sprintf("ubos[%d].ownership_percentage", i),
					Message: "ownership percentage must be between 0 and 100",
				})
			}
		}
	}

	return violations
}

// ValidateUBOSum checks that declared ownership stakes sum to at most 100%.
// The stricter rule is opt-in on the service; the default workflow accepts
// any per-row-valid stakes.
func ValidateUBOSum(d *Draft) []FieldViolation {
	sum := decimal.Zero
	for _, ubo := range d.UBOs {
		sum = sum.Add(ubo.OwnershipPercentage)
	}
	if sum.GreaterThan(hundred) {
		return []FieldViolation{{
			Field:   "ubos",
			Message: fmt.Sprintf("combined ownership exceeds 100%% (declared %s%%)", sum.String()),
		}}
	}
	return nil
}
