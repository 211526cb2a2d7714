package validation

import (
	"strings"

	"github.com/jonathan/internship-wizard/internal/types"
)

// Step is one screen of the questionnaire, numbered from 1.
type Step int

const (
	StepMethod   Step = 1 // input method choice
	StepProfile  Step = 2 // education and experience
	StepSkills   Step = 3
	StepSectors  Step = 4
	StepGoal     Step = 5
	StepLocation Step = 6
)

// TotalSteps is the number of screens; StepLocation is the submit step.
const TotalSteps = 6

// Valid reports whether s names an existing step.
func (s Step) Valid() bool {
	return s >= 1 && s <= TotalSteps
}

func (s Step) String() string {
	switch s {
	case StepMethod:
		return "method"
	case StepProfile:
		return "profile"
	case StepSkills:
		return "skills"
	case StepSectors:
		return "sectors"
	case StepGoal:
		return "goal"
	case StepLocation:
		return "location"
	default:
		return "unknown"
	}
}

// Check returns nil when the snapshot satisfies the rule for step, or an
// *InputError naming the first unmet requirement. It has no side effects.
func Check(step Step, f *types.FormSnapshot) error {
	if !step.Valid() {
		return &InputError{Field: "step", Message: "no such step"}
	}
	if f == nil {
		f = types.NewFormSnapshot()
	}

	switch step {
	case StepProfile:
		if strings.TrimSpace(f.EducationLevel) == "" {
			return &InputError{Field: "education_level", Message: "education level is required"}
		}
		if strings.TrimSpace(f.ExperienceLevel) == "" {
			return &InputError{Field: "experience_level", Message: "experience level is required"}
		}
	case StepSkills:
		if f.Skills.Empty() {
			return &InputError{Field: "skills", Message: "select at least one skill"}
		}
	case StepSectors:
		if f.Sectors.Empty() {
			return &InputError{Field: "sector_interests", Message: "select at least one sector"}
		}
	}
	// method, goal and location steps are always valid
	return nil
}

// Gate reports whether the wizard may leave step (advance, or submit on the
// last step) with the given snapshot.
func Gate(step Step, f *types.FormSnapshot) bool {
	return Check(step, f) == nil
}
