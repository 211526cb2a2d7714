// Package types provides the data model shared by the wizard, the resume
// pipeline and the backend collaborators.
package types

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/internship-wizard/internal/selection"
)

// SectorID is the categorical identifier of a sector interest (e.g. "technology").
type SectorID string

// FormSnapshot is the candidate profile collected by the wizard.
// Skills keep insertion order for display; sectors are compared as a set.
type FormSnapshot struct {
	EducationLevel     string
	ExperienceLevel    string
	CareerGoal         string
	LocationPreference string
	RemoteWork         bool

	Skills  *selection.Set[string]
	Sectors *selection.Set[SectorID]
}

// NewFormSnapshot returns an empty snapshot with initialized selections.
func NewFormSnapshot() *FormSnapshot {
	return &FormSnapshot{
		Skills:  selection.New[string](),
		Sectors: selection.New[SectorID](),
	}
}

// Clone returns a deep copy of the snapshot.
func (f *FormSnapshot) Clone() *FormSnapshot {
	if f == nil {
		return NewFormSnapshot()
	}
	c := *f
	c.Skills = f.Skills.Clone()
	c.Sectors = f.Sectors.Clone()
	return &c
}

// Payload converts the snapshot into its wire form.
func (f *FormSnapshot) Payload() ProfilePayload {
	sectors := f.Sectors.Values()
	ids := make([]string, len(sectors))
	for i, s := range sectors {
		ids[i] = string(s)
	}
	return ProfilePayload{
		EducationLevel:       f.EducationLevel,
		ExperienceLevel:      f.ExperienceLevel,
		Skills:               f.Skills.Values(),
		SectorInterests:      ids,
		CareerGoal:           f.CareerGoal,
		LocationPreference:   f.LocationPreference,
		RemoteWorkPreference: f.RemoteWork,
	}
}

// ProfilePayload is the JSON shape of a candidate profile, used both for
// profile storage and as the body of a recommendation request.
type ProfilePayload struct {
	EducationLevel       string   `json:"education_level"`
	ExperienceLevel      string   `json:"experience_level"`
	Skills               []string `json:"skills"`
	SectorInterests      []string `json:"sector_interests"`
	CareerGoal           string   `json:"career_goal,omitempty"`
	LocationPreference   string   `json:"location_preference,omitempty"`
	RemoteWorkPreference bool     `json:"remote_work_preference"`
}

// Snapshot rebuilds a FormSnapshot from the wire form. Blank skills are
// dropped and duplicates collapse onto their first occurrence.
func (p ProfilePayload) Snapshot() *FormSnapshot {
	f := NewFormSnapshot()
	f.EducationLevel = p.EducationLevel
	f.ExperienceLevel = p.ExperienceLevel
	f.CareerGoal = p.CareerGoal
	f.LocationPreference = p.LocationPreference
	f.RemoteWork = p.RemoteWorkPreference
	for _, s := range p.Skills {
		if s = strings.TrimSpace(s); s != "" {
			f.Skills.Add(s)
		}
	}
	for _, s := range p.SectorInterests {
		if s != "" {
			f.Sectors.Add(SectorID(s))
		}
	}
	return f
}

// RecommendationRequest is the submission sent to the matching service.
type RecommendationRequest struct {
	ProfilePayload
	NumRecommendations int `json:"num_recommendations"`
}

// submissionRules mirrors the fields the matching service refuses to run without.
type submissionRules struct {
	EducationLevel     string   `validate:"required"`
	Skills             []string `validate:"min=1,dive,required"`
	SectorInterests    []string `validate:"min=1,dive,required"`
	NumRecommendations int      `validate:"gte=1,lte=100"`
}

// Validate checks the request against the service's required fields.
func (r *RecommendationRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(submissionRules{
		EducationLevel:     r.EducationLevel,
		Skills:             r.Skills,
		SectorInterests:    r.SectorInterests,
		NumRecommendations: r.NumRecommendations,
	})
}

// GoalRecommendationRequest asks for internships that lead towards a career
// goal, given the skills owned so far. Education and sectors are not needed.
type GoalRecommendationRequest struct {
	CareerGoal         string   `json:"career_goal" validate:"required"`
	Skills             []string `json:"skills" validate:"dive,required"`
	NumRecommendations int      `json:"num_recommendations" validate:"gte=1,lte=100"`
}

// Validate checks the goal request.
func (r *GoalRecommendationRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
