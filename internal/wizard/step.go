package wizard

// Step is one ordinal stage of the linear will-creation flow. Steps are
// totally ordered; normal navigation only ever moves by one.
type Step int

const (
	StepLanding Step = iota
	StepEligibility
	StepPersonalInfo
	StepExecutors
	StepChildren
	StepBeneficiaries
	StepResiduary
	StepReview
	StepDonation
	StepWitness
	StepSignature
	StepCompletion
)

// ResumptionStep is where the sequencer lands after a verified payment
// return: immediately after the donation step.
const ResumptionStep = StepWitness

func (s Step) String() string {
	switch s {
	case StepLanding:
		return "landing"
	case StepEligibility:
		return "eligibility"
	case StepPersonalInfo:
		return "personal_info"
	case StepExecutors:
		return "executors"
	case StepChildren:
		return "children"
	case StepBeneficiaries:
		return "beneficiaries"
	case StepResiduary:
		return "residuary"
	case StepReview:
		return "review"
	case StepDonation:
		return "donation"
	case StepWitness:
		return "witness"
	case StepSignature:
		return "signature"
	case StepCompletion:
		return "completion"
	}
	return "unknown"
}

// Valid reports whether s is within the step enumeration. Values outside it
// only ever come from a caller bug, never from normal navigation.
func (s Step) Valid() bool {
	return s >= StepLanding && s <= StepCompletion
}
