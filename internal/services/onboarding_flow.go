package services

import "errors"

var (
	ErrOnboardingStepOrder      = errors.New("action not allowed at current onboarding step")
	ErrOnboardingUnknownStep    = errors.New("unknown onboarding step")
	ErrPartnerProfileIncomplete = errors.New("partner profile incomplete")
)

// OnboardingStep names a screen of the onboarding wizard. Steps form a
// fixed forward sequence; the single non-linear edge is the edit jump
// from summary back to selection.
type OnboardingStep string

const (
	StepWelcome     OnboardingStep = "welcome"
	StepSelection   OnboardingStep = "selection"
	StepNaming      OnboardingStep = "naming"
	StepPreferences OnboardingStep = "preferences"
	StepSummary     OnboardingStep = "summary"
	StepSignup      OnboardingStep = "signup"
)

// Direction records how the user arrived at the current step. It only
// affects transition presentation, never which transitions are legal.
type Direction string

const (
	DirectionForward  Direction = "forward"
	DirectionBackward Direction = "backward"
)

var forwardSteps = map[OnboardingStep]OnboardingStep{
	StepWelcome:     StepSelection,
	StepSelection:   StepNaming,
	StepNaming:      StepPreferences,
	StepPreferences: StepSummary,
	StepSummary:     StepSignup,
}

// PartnerProfile is the persona assembled field by field while the
// user advances. It is complete only when every field is populated.
type PartnerProfile struct {
	Name        string `json:"name"`
	Gender      string `json:"gender"`
	Personality string `json:"personality"`
	Preference  string `json:"preference"`
}

func (profile PartnerProfile) Complete() bool {
	return profile.Name != "" &&
		profile.Gender != "" &&
		profile.Personality != "" &&
		profile.Preference != ""
}

// OnboardingFlow is the wizard state machine. Every mutating method
// validates its input first and leaves the flow untouched on error, so
// an invalid submission can never change the step.
type OnboardingFlow struct {
	Step         OnboardingStep `json:"step"`
	Direction    Direction      `json:"direction"`
	Profile      PartnerProfile `json:"profile"`
	ReferralCode string         `json:"referral_code,omitempty"`
}

func NewOnboardingFlow() OnboardingFlow {
	return OnboardingFlow{
		Step:      StepWelcome,
		Direction: DirectionForward,
	}
}

func ValidOnboardingStep(step OnboardingStep) bool {
	switch step {
	case StepWelcome, StepSelection, StepNaming, StepPreferences, StepSummary, StepSignup:
		return true
	}
	return false
}

// Confirm moves past the welcome screen. It needs no input.
func (flow *OnboardingFlow) Confirm() error {
	return flow.advanceFrom(StepWelcome)
}

// ChooseAppearance records gender and personality and advances to
// naming. Both selections are required.
func (flow *OnboardingFlow) ChooseAppearance(gender string, personality string) error {
	if flow.Step != StepSelection {
		return ErrOnboardingStepOrder
	}

	parsedGender, err := ParseGender(gender)
	if err != nil {
		return err
	}
	parsedPersonality, err := ParsePersonality(personality)
	if err != nil {
		return err
	}

	flow.Profile.Gender = parsedGender
	flow.Profile.Personality = parsedPersonality
	return flow.advanceFrom(StepSelection)
}

// NamePartner records the trimmed partner name and advances to
// preferences.
func (flow *OnboardingFlow) NamePartner(name string) error {
	if flow.Step != StepNaming {
		return ErrOnboardingStepOrder
	}

	validName, err := ValidatePartnerName(name)
	if err != nil {
		return err
	}

	flow.Profile.Name = validName
	return flow.advanceFrom(StepNaming)
}

// ChoosePreference records the relationship preference and advances to
// the summary.
func (flow *OnboardingFlow) ChoosePreference(preference string) error {
	if flow.Step != StepPreferences {
		return ErrOnboardingStepOrder
	}

	parsed, err := ParsePreference(preference)
	if err != nil {
		return err
	}

	flow.Profile.Preference = parsed
	return flow.advanceFrom(StepPreferences)
}

// ContinueToSignup confirms the summary. A profile that lost a field
// along the way can never reach signup.
func (flow *OnboardingFlow) ContinueToSignup() error {
	if flow.Step != StepSummary {
		return ErrOnboardingStepOrder
	}
	if !flow.Profile.Complete() {
		return ErrPartnerProfileIncomplete
	}
	return flow.advanceFrom(StepSummary)
}

// EditFromSummary jumps back to selection regardless of how the user
// reached the summary. Previously entered fields are kept so the user
// only re-confirms what they change.
func (flow *OnboardingFlow) EditFromSummary() error {
	if flow.Step != StepSummary {
		return ErrOnboardingStepOrder
	}
	flow.Step = StepSelection
	flow.Direction = DirectionBackward
	return nil
}

func (flow *OnboardingFlow) advanceFrom(current OnboardingStep) error {
	if flow.Step != current {
		return ErrOnboardingStepOrder
	}
	next, known := forwardSteps[current]
	if !known {
		return ErrOnboardingStepOrder
	}
	flow.Step = next
	flow.Direction = DirectionForward
	return nil
}
