// ==============================================================================
// STEP NAVIGATOR - internal/onboarding/steps.go
// ==============================================================================
package onboarding

// Navigator sequences the onboarding steps. Transitions move one step at a
// time and clamp at the first and last step; the navigator itself performs
// no field validation.
type Navigator struct {
	current int
}

// NewNavigator returns a navigator positioned at the first step.
func NewNavigator() *Navigator {
	return &Navigator{current: 1}
}

// Current returns the current step index in [1, StepCount].
func (n *Navigator) Current() int {
	return n.current
}

// Advance moves forward one step, staying put at the final step.
func (n *Navigator) Advance() int {
	if n.current < StepCount {
		n.current++
	}
	return n.current
}

// Retreat moves back one step, staying put at the first step.
func (n *Navigator) Retreat() int {
	if n.current > 1 {
		n.current--
	}
	return n.current
}

// IsFinal reports whether the navigator is at the review step, where the
// exposed action changes from advancing to submitting.
func (n *Navigator) IsFinal() bool {
	return n.current == StepCount
}

// CurrentStep returns the catalog entry for the current step.
func (n *Navigator) CurrentStep() FormStep {
	return formSteps[n.current-1]
}
