package onboarding

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRequiresOrganizationName(t *testing.T) {
	d := NewDraft(nil)

	violations := Validate(d, StepBasicInfo)
	require.Len(t, violations, 1)
	assert.Equal(t, "organization_name", violations[0].Field)

	violations = Validate(d, StepReview)
	require.Len(t, violations, 1)

	// Whitespace-only names do not count.
	require.NoError(t, d.SetField(FieldOrganizationName, "   "))
	assert.Len(t, Validate(d, StepReview), 1)

	require.NoError(t, d.SetField(FieldOrganizationName, "Relief Works"))
	assert.Empty(t, Validate(d, StepReview))
}

func TestValidateOtherStepsAcceptEmptyDraft(t *testing.T) {
	d := NewDraft(nil)

	for step := 2; step < StepReview; step++ {
		assert.Empty(t, Validate(d, step), "step %d should accept an empty draft", step)
	}
}

func TestValidateUBOPercentageBounds(t *testing.T) {
	d := NewDraft(nil)

	idx := d.AddUBO()
	require.NoError(t, d.UpdateUBO(idx, UBOFieldOwnershipPercentage, "100"))
	assert.Empty(t, Validate(d, StepUBOs))

	require.NoError(t, d.UpdateUBO(idx, UBOFieldOwnershipPercentage, "100.01"))
	violations := Validate(d, StepUBOs)
	require.Len(t, violations, 1)
	assert.Equal(t, "ubos[0].ownership_percentage", violations[0].Field)

	d.UBOs[idx].OwnershipPercentage = decimal.NewFromInt(-1)
	assert.Len(t, Validate(d, StepUBOs), 1)
}

func TestValidateUBOSum(t *testing.T) {
	d := NewDraft(nil)

	a := d.AddUBO()
	b := d.AddUBO()
	require.NoError(t, d.UpdateUBO(a, UBOFieldOwnershipPercentage, "60"))
	require.NoError(t, d.UpdateUBO(b, UBOFieldOwnershipPercentage, "40"))

	assert.Empty(t, ValidateUBOSum(d))

	require.NoError(t, d.UpdateUBO(b, UBOFieldOwnershipPercentage, "40.5"))
	violations := ValidateUBOSum(d)
	require.Len(t, violations, 1)
	assert.Equal(t, "ubos", violations[0].Field)
	assert.Contains(t, violations[0].Message, "100.5")
}

func TestValidateUBOSumEmptyDraft(t *testing.T) {
	assert.Empty(t, ValidateUBOSum(NewDraft(nil)))
}
