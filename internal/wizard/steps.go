package wizard

// Step identifies a wizard step.
type Step string

// Wizard steps in their natural order. The lift plan step is present only
// when the session includes a lifting plan.
const (
	StepMaster   Step = "master"
	StepRAMS     Step = "rams"
	StepLiftPlan Step = "lift_plan"
	StepReview   Step = "review"
)

// Label returns the display name of the step.
func (s Step) Label() string {
	switch s {
	case StepMaster:
		return "Master Document"
	case StepRAMS:
		return "RAMS Document"
	case StepLiftPlan:
		return "Lifting Plan"
	case StepReview:
		return "Review"
	default:
		return string(s)
	}
}

func stepList(includeLiftPlan bool) []Step {
	if includeLiftPlan {
		return []Step{StepMaster, StepRAMS, StepLiftPlan, StepReview}
	}
	return []Step{StepMaster, StepRAMS, StepReview}
}

func stepIndex(steps []Step, step Step) int {
	for i, s := range steps {
		if s == step {
			return i
		}
	}
	return -1
}
