package types

import "github.com/go-playground/validator/v10"

// Sector is one selectable sector card.
type Sector struct {
	ID          SectorID `json:"id" validate:"required"`
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
}

// Validate validates the Sector using the validator.
func (s *Sector) Validate() error {
	validate := validator.New()
	return validate.Struct(s)
}

// ResumeExtractionResult is the structured profile recovered from an uploaded resume.
// Only Skills, EducationLevel and ExperienceLevel are merged into the form; the
// remaining fields are shown in the preview.
type ResumeExtractionResult struct {
	Skills          []string `json:"skills"`
	EducationLevel  string   `json:"education_level,omitempty"`
	ExperienceLevel string   `json:"experience_level,omitempty"`

	Name       string `json:"name,omitempty"`
	Email      string `json:"email,omitempty"`
	Education  string `json:"education,omitempty"`
	Experience string `json:"experience,omitempty"`

	Error string `json:"error,omitempty"`
}

// MarketStats summarizes demand for a career goal across known internships.
type MarketStats struct {
	TotalInternships int            `json:"totalInternships"`
	HighDemandSkills []string       `json:"highDemandSkills,omitempty"`
	SkillFrequency   map[string]int `json:"skillFrequency,omitempty"`
	AvgMatchScore    float64        `json:"avgMatchScore,omitempty"`
}

// GoalRequirement lists what a career goal asks for. It is replaced wholesale
// whenever a new goal is selected.
type GoalRequirement struct {
	Goal           string       `json:"goal,omitempty"`
	RequiredSkills []string     `json:"skills"`
	LearningPath   []string     `json:"learningPath"`
	MarketStats    *MarketStats `json:"marketAnalysis,omitempty"`

	Error string `json:"error,omitempty"`
}
