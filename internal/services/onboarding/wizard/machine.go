package wizard

import (
	"fmt"

	apperrors "github.com/louisbranch/inpact/internal/platform/errors"
)

// Flow selects which onboarding wizard a state belongs to.
type Flow string

const (
	FlowCreator Flow = "creator"
	FlowBrand   Flow = "brand"
)

// Step names one state of a wizard machine.
type Step string

// Creator flow steps.
const (
	StepRoleSelect      Step = "role_select"
	StepPersonalDetails Step = "personal_details"
	StepPlatforms       Step = "platforms"
	StepPlatformDetails Step = "platform_details"
	StepPricing         Step = "pricing"
	StepAsset           Step = "asset"
	StepReview          Step = "review"
)

// Brand flow steps.
const (
	StepBrandInfo         Step = "brand_info"
	StepContactInfo       Step = "contact_info"
	StepSocialLinks       Step = "social_links"
	StepCollabPreferences Step = "collab_preferences"
	StepBrandReview       Step = "brand_review"
)

// ErrInvalidTransition indicates a step change outside the machine's table.
var ErrInvalidTransition = apperrors.New(apperrors.CodeInvalidTransition, "wizard transition is not allowed")

// Machine is an explicit finite-state machine over wizard steps.
type Machine struct {
	flow  Flow
	steps []Step
	next  map[Step]Step
	back  map[Step]Step
}

var (
	creatorMachine = newLinearMachine(FlowCreator,
		StepRoleSelect,
		StepPersonalDetails,
		StepPlatforms,
		StepPlatformDetails,
		StepPricing,
		StepAsset,
		StepReview,
	)
	brandMachine = newLinearMachine(FlowBrand,
		StepBrandInfo,
		StepContactInfo,
		StepSocialLinks,
		StepCollabPreferences,
		StepBrandReview,
	)
)

// CreatorMachine returns the creator onboarding machine.
func CreatorMachine() Machine {
	return creatorMachine
}

// BrandMachine returns the brand onboarding machine.
func BrandMachine() Machine {
	return brandMachine
}

// MachineFor returns the machine for flow, defaulting to the creator flow.
func MachineFor(flow Flow) Machine {
	if flow == FlowBrand {
		return brandMachine
	}
	return creatorMachine
}

func newLinearMachine(flow Flow, steps ...Step) Machine {
	m := Machine{
		flow:  flow,
		steps: steps,
		next:  make(map[Step]Step, len(steps)),
		back:  make(map[Step]Step, len(steps)),
	}
	for idx := 0; idx+1 < len(steps); idx++ {
		m.next[steps[idx]] = steps[idx+1]
		m.back[steps[idx+1]] = steps[idx]
	}
	return m
}

// Flow returns the flow this machine drives.
func (m Machine) Flow() Flow {
	return m.flow
}

// Initial returns the first step.
func (m Machine) Initial() Step {
	if len(m.steps) == 0 {
		return ""
	}
	return m.steps[0]
}

// Final returns the review step that gates submission.
func (m Machine) Final() Step {
	if len(m.steps) == 0 {
		return ""
	}
	return m.steps[len(m.steps)-1]
}

// Steps returns the steps in display order.
func (m Machine) Steps() []Step {
	out := make([]Step, len(m.steps))
	copy(out, m.steps)
	return out
}

// Contains reports whether step belongs to this machine.
func (m Machine) Contains(step Step) bool {
	_, ok := m.Position(step)
	return ok
}

// Position returns the 1-based position of step for "step N of M" display.
func (m Machine) Position(step Step) (int, bool) {
	for idx, candidate := range m.steps {
		if candidate == step {
			return idx + 1, true
		}
	}
	return 0, false
}

// Allowed reports whether the table permits from -> to.
func (m Machine) Allowed(from, to Step) bool {
	if next, ok := m.next[from]; ok && next == to {
		return true
	}
	if back, ok := m.back[from]; ok && back == to {
		return true
	}
	return false
}

// Next returns the step after from.
func (m Machine) Next(from Step) (Step, error) {
	to, ok := m.next[from]
	if !ok {
		return from, transitionError(from, "next")
	}
	return to, nil
}

// Back returns the step before from.
func (m Machine) Back(from Step) (Step, error) {
	to, ok := m.back[from]
	if !ok {
		return from, transitionError(from, "back")
	}
	return to, nil
}

// Transition validates an explicit from -> to move.
func (m Machine) Transition(from, to Step) error {
	if !m.Allowed(from, to) {
		return transitionError(from, string(to))
	}
	return nil
}

func transitionError(from Step, to string) error {
	return apperrors.WithMetadata(
		apperrors.CodeInvalidTransition,
		fmt.Sprintf("wizard transition not allowed: %s -> %s", from, to),
		map[string]string{"From": string(from), "To": to},
	)
}
